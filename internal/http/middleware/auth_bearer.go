package middleware

import (
	"context"
	"net/http"
	"strings"

	"github.com/google/uuid"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	apierrors "github.com/pribylovaa/invest-tips/internal/errors"
)

// TokenValidator проверяет access-токен и возвращает идентификатор пользователя.
type TokenValidator interface {
	ValidateToken(accessToken string) (uuid.UUID, error)
}

type userIDKey struct{}

// UserID возвращает идентификатор пользователя, положенный Authenticate.
func UserID(ctx context.Context) (uuid.UUID, bool) {
	uid, ok := ctx.Value(userIDKey{}).(uuid.UUID)
	return uid, ok
}

// WithUserID кладёт идентификатор пользователя в контекст.
func WithUserID(ctx context.Context, uid uuid.UUID) context.Context {
	return context.WithValue(ctx, userIDKey{}, uid)
}

// Authenticate требует заголовок "Authorization: Bearer <token>".
// Отсутствующий или невалидный токен даёт 401, до хендлера запрос не доходит.
func Authenticate(v TokenValidator) Middleware {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			token, ok := bearerToken(r)
			if !ok {
				apierrors.WriteError(w, r, status.Error(codes.Unauthenticated, "authentication token required"))
				return
			}

			uid, err := v.ValidateToken(token)
			if err != nil {
				apierrors.WriteError(w, r, err)
				return
			}

			next.ServeHTTP(w, r.WithContext(WithUserID(r.Context(), uid)))
		})
	}
}

func bearerToken(r *http.Request) (string, bool) {
	const prefix = "Bearer "

	auth := r.Header.Get("Authorization")
	if !strings.HasPrefix(auth, prefix) {
		return "", false
	}

	token := strings.TrimSpace(auth[len(prefix):])
	return token, token != ""
}
