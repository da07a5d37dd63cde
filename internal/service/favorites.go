package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/pribylovaa/invest-tips/internal/models"
	"github.com/pribylovaa/invest-tips/internal/pkg/log"
	"github.com/pribylovaa/invest-tips/internal/storage"
)

// ListFavorites возвращает избранные идеи пользователя, новые сверху.
func (s *Service) ListFavorites(ctx context.Context, userID uuid.UUID) ([]models.Tip, error) {
	const op = "service.favorites.ListFavorites"

	tips, err := s.storage.ListFavorites(ctx, userID)
	if err != nil {
		log.From(ctx).Error("list_favorites_storage_error",
			slog.String("op", op),
			slog.String("user_id", userID.String()),
			slog.String("err", err.Error()),
		)
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return tips, nil
}

// AddFavorite добавляет идею в избранное и возвращает её.
//
// Ошибки:
// - ErrInvalidArgument - tipID <= 0;
// - ErrNotFound - идеи не существует;
// - ErrAlreadyFavorited - идея уже в избранном.
func (s *Service) AddFavorite(ctx context.Context, userID uuid.UUID, tipID int64) (*models.Tip, error) {
	const op = "service.favorites.AddFavorite"

	lg := log.From(ctx)

	if tipID <= 0 {
		return nil, fmt.Errorf("%s: %w: tip id must be positive", op, ErrInvalidArgument)
	}

	tip, err := s.storage.TipByID(ctx, tipID)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return nil, fmt.Errorf("%s: %w", op, ErrNotFound)
		}

		return nil, fmt.Errorf("%s: %w", op, err)
	}

	fav := models.Favorite{
		UserID:    userID,
		TipID:     tipID,
		CreatedAt: time.Now().UTC(),
	}

	if err := s.storage.AddFavorite(ctx, fav); err != nil {
		switch {
		case errors.Is(err, storage.ErrAlreadyExists):
			return nil, fmt.Errorf("%s: %w", op, ErrAlreadyFavorited)
		case errors.Is(err, storage.ErrNotFound):
			return nil, fmt.Errorf("%s: %w", op, ErrNotFound)
		}

		lg.Error("add_favorite_storage_error",
			slog.String("op", op),
			slog.String("err", err.Error()),
		)
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	lg.Info("add_favorite_ok",
		slog.String("op", op),
		slog.String("user_id", userID.String()),
		slog.Int64("tip_id", tipID),
	)

	return tip, nil
}

// RemoveFavorite удаляет идею из избранного.
// Отсутствующая запись даёт ErrNotFound.
func (s *Service) RemoveFavorite(ctx context.Context, userID uuid.UUID, tipID int64) error {
	const op = "service.favorites.RemoveFavorite"

	if tipID <= 0 {
		return fmt.Errorf("%s: %w: tip id must be positive", op, ErrInvalidArgument)
	}

	if err := s.storage.RemoveFavorite(ctx, userID, tipID); err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return fmt.Errorf("%s: %w", op, ErrNotFound)
		}

		return fmt.Errorf("%s: %w", op, err)
	}

	log.From(ctx).Info("remove_favorite_ok",
		slog.String("op", op),
		slog.String("user_id", userID.String()),
		slog.Int64("tip_id", tipID),
	)

	return nil
}
