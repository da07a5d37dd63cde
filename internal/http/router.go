package http

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/pribylovaa/invest-tips/internal/http/handlers"
	"github.com/pribylovaa/invest-tips/internal/http/middleware"
	"github.com/pribylovaa/invest-tips/internal/metrics"
)

// Options - параметры сборки HTTP-роутера.
type Options struct {
	Logger  *slog.Logger
	Timeout time.Duration
	Metrics *metrics.Metrics
	// Auth проверяет Bearer-токены защищённых маршрутов.
	Auth middleware.TokenValidator
}

// NewRouter собирает http.Handler с chi и подключёнными middleware/роутами.
func NewRouter(svc handlers.Service, opts Options) http.Handler {
	root := chi.NewRouter()

	// Middleware (внешний -> внутренний).
	root.Use(
		middleware.Recover(),            // безопасно ловим паники
		middleware.RequestID(),          // формируем/прокидываем X-Request-Id (до логирования!)
		middleware.Logging(opts.Logger), // кладём request-scoped логгер в контекст и логируем
		middleware.Metrics(opts.Metrics),
	)
	if opts.Timeout > 0 {
		root.Use(middleware.Timeout(opts.Timeout))
	}

	registerRoutes(root, handlers.New(svc), middleware.Authenticate(opts.Auth))
	return root
}

// registerRoutes - единая точка регистрации всех REST-эндпойнтов.
func registerRoutes(r chi.Router, h *handlers.Handlers, auth middleware.Middleware) {
	// tips
	r.Get("/tips", h.ListTips)
	r.Get("/tips/search", h.SearchTips)
	r.Get("/tips/{id}", h.GetTip)

	// auth
	r.Post("/api/auth/register", h.Register)
	r.Post("/api/auth/login", h.Login)
	r.With(auth).Get("/api/auth/me", h.Me)

	// favorites
	r.Route("/api/user/favorites", func(r chi.Router) {
		r.Use(auth)
		r.Get("/", h.ListFavorites)
		r.Post("/", h.AddFavorite)
		r.Delete("/", h.RemoveFavorite)
	})
}
