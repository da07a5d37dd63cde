// handlers содержит REST-хендлеры сервиса идей: выдачу идей,
// регистрацию и вход, избранное.
package handlers

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/google/uuid"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"github.com/pribylovaa/invest-tips/internal/models"
)

// Service - операции бизнес-слоя, нужные хендлерам.
type Service interface {
	ListTips(ctx context.Context, q models.TipQuery) (*models.TipPage, error)
	TipByID(ctx context.Context, id int64) (*models.Tip, error)

	RegisterUser(ctx context.Context, name, email, password string) (*models.User, error)
	LoginUser(ctx context.Context, email, password string) (*models.Session, error)
	UserByID(ctx context.Context, id uuid.UUID) (*models.User, error)

	ListFavorites(ctx context.Context, userID uuid.UUID) ([]models.Tip, error)
	AddFavorite(ctx context.Context, userID uuid.UUID, tipID int64) (*models.Tip, error)
	RemoveFavorite(ctx context.Context, userID uuid.UUID, tipID int64) error
}

// Handlers агрегирует зависимости хендлеров.
type Handlers struct {
	svc Service
}

func New(svc Service) *Handlers {
	return &Handlers{svc: svc}
}

// writeJSON - единый ответ JSON с нужным Content-Type.
// Ошибки выводим через apierrors.WriteError.
func writeJSON(w http.ResponseWriter, status int, value any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(value)
}

// decodeStrict - строгий JSON-декодер: запрещаем неизвестные поля.
func decodeStrict(r *http.Request, value any) error {
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	return dec.Decode(value)
}

// invalidArgument - локальная ошибка разбора запроса -> gRPC InvalidArgument.
func invalidArgument(msg string) error {
	return status.Error(codes.InvalidArgument, msg)
}
