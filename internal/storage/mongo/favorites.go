package mongo

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	mongodriver "go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/pribylovaa/invest-tips/internal/models"
	"github.com/pribylovaa/invest-tips/internal/storage"
)

type favoriteDoc struct {
	UserID    string    `bson:"user_id"`
	TipID     int64     `bson:"tip_id"`
	CreatedAt time.Time `bson:"created_at"`
}

// AddFavorite добавляет идею в избранное.
// Несуществующая идея - storage.ErrNotFound, повтор - storage.ErrAlreadyExists.
func (m *Mongo) AddFavorite(ctx context.Context, fav models.Favorite) error {
	const op = "storage/mongo/AddFavorite"

	n, err := m.tips.CountDocuments(ctx, bson.D{{Key: "_id", Value: fav.TipID}}, options.Count().SetLimit(1))
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	if n == 0 {
		return fmt.Errorf("%s: %w", op, storage.ErrNotFound)
	}

	createdAt := fav.CreatedAt
	if createdAt.IsZero() {
		createdAt = time.Now()
	}

	_, err = m.favorites.InsertOne(ctx, favoriteDoc{
		UserID:    fav.UserID.String(),
		TipID:     fav.TipID,
		CreatedAt: toMS(createdAt),
	})
	if err != nil {
		if mongodriver.IsDuplicateKeyError(err) {
			return fmt.Errorf("%s: %w", op, storage.ErrAlreadyExists)
		}

		return fmt.Errorf("%s: %w", op, err)
	}

	return nil
}

// RemoveFavorite снимает отметку. Если её не было - storage.ErrNotFound.
func (m *Mongo) RemoveFavorite(ctx context.Context, userID uuid.UUID, tipID int64) error {
	const op = "storage/mongo/RemoveFavorite"

	res, err := m.favorites.DeleteOne(ctx, bson.D{
		{Key: "user_id", Value: userID.String()},
		{Key: "tip_id", Value: tipID},
	})
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	if res.DeletedCount == 0 {
		return fmt.Errorf("%s: %w", op, storage.ErrNotFound)
	}

	return nil
}

// ListFavorites возвращает избранные идеи пользователя, последние отмеченные первыми.
// Отметки на удалённые идеи пропускаются.
func (m *Mongo) ListFavorites(ctx context.Context, userID uuid.UUID) ([]models.Tip, error) {
	const op = "storage/mongo/ListFavorites"

	cur, err := m.favorites.Find(ctx,
		bson.D{{Key: "user_id", Value: userID.String()}},
		options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}, {Key: "tip_id", Value: -1}}),
	)
	if err != nil {
		return nil, fmt.Errorf("%s: find favorites: %w", op, err)
	}

	var favs []favoriteDoc
	if err := cur.All(ctx, &favs); err != nil {
		return nil, fmt.Errorf("%s: decode favorites: %w", op, err)
	}

	if len(favs) == 0 {
		return []models.Tip{}, nil
	}

	ids := make(bson.A, len(favs))
	for i, f := range favs {
		ids[i] = f.TipID
	}

	tipCur, err := m.tips.Find(ctx, bson.D{{Key: "_id", Value: bson.D{{Key: "$in", Value: ids}}}})
	if err != nil {
		return nil, fmt.Errorf("%s: find tips: %w", op, err)
	}

	found, err := decodeTips(ctx, tipCur)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	byID := make(map[int64]models.Tip, len(found))
	for _, t := range found {
		byID[t.ID] = t
	}

	out := make([]models.Tip, 0, len(favs))
	for _, f := range favs {
		if t, ok := byID[f.TipID]; ok {
			out = append(out, t)
		}
	}

	return out, nil
}
