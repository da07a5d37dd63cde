package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/pribylovaa/invest-tips/internal/models"
	"github.com/pribylovaa/invest-tips/internal/storage"
)

// AddFavorite добавляет идею в избранное пользователя.
//
// Повторная отметка - storage.ErrAlreadyExists;
// несуществующая идея или пользователь - storage.ErrNotFound.
func (s *Storage) AddFavorite(ctx context.Context, fav models.Favorite) error {
	const op = "storage.postgres.AddFavorite"

	createdAt := fav.CreatedAt
	if createdAt.IsZero() {
		createdAt = time.Now()
	}

	_, err := s.db.Exec(ctx, `
        INSERT INTO favorites(user_id, tip_id, created_at)
        VALUES ($1, $2, $3)
    `, fav.UserID, fav.TipID, createdAt.UTC())
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) {
			switch pgErr.Code {
			case pgerrcode.UniqueViolation:
				return fmt.Errorf("%s: %w", op, storage.ErrAlreadyExists)
			case pgerrcode.ForeignKeyViolation:
				return fmt.Errorf("%s: %w", op, storage.ErrNotFound)
			}
		}

		return fmt.Errorf("%s: %w", op, err)
	}

	return nil
}

// RemoveFavorite снимает отметку. Если её не было - storage.ErrNotFound.
func (s *Storage) RemoveFavorite(ctx context.Context, userID uuid.UUID, tipID int64) error {
	const op = "storage.postgres.RemoveFavorite"

	cmdTag, err := s.db.Exec(ctx, `
        DELETE FROM favorites
        WHERE user_id = $1 AND tip_id = $2
    `, userID, tipID)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	if cmdTag.RowsAffected() == 0 {
		return fmt.Errorf("%s: %w", op, storage.ErrNotFound)
	}

	return nil
}

// ListFavorites возвращает избранные идеи пользователя, последние отмеченные первыми.
func (s *Storage) ListFavorites(ctx context.Context, userID uuid.UUID) ([]models.Tip, error) {
	const op = "storage.postgres.ListFavorites"

	rows, err := s.db.Query(ctx, "SELECT"+tipColumns+tipFrom+`
	JOIN favorites f ON f.tip_id = t.id
	WHERE f.user_id = $1
	ORDER BY f.created_at DESC, t.id DESC`, userID)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	defer rows.Close()

	tips, err := scanTips(rows)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return tips, nil
}
