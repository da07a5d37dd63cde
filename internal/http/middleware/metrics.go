package middleware

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/pribylovaa/invest-tips/internal/metrics"
)

// Metrics фиксирует запрос в Prometheus с шаблоном маршрута chi
// ("/tips/{id}"), чтобы не плодить метки на каждый id.
func Metrics(m *metrics.Metrics) Middleware {
	return func(next http.Handler) http.Handler {
		if m == nil {
			return next
		}

		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			sw := newStatusWriter(w)
			start := time.Now()
			next.ServeHTTP(sw, r)

			var route string
			if rctx := chi.RouteContext(r.Context()); rctx != nil {
				route = rctx.RoutePattern()
			}

			m.ObserveHTTP(route, r.Method, sw.code(), time.Since(start))
		})
	}
}
