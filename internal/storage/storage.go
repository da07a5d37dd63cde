// storage определяет контракты доступа к БД для сервиса инвестиционных идей.
package storage

//go:generate mockgen -source=storage.go -destination=../../mocks/storage.go -package=mocks

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/pribylovaa/invest-tips/internal/models"
)

var (
	// ErrNotFound - сущность отсутствует в хранилище.
	ErrNotFound = errors.New("not found")
	// ErrAlreadyExists - конфликт уникальности (email пользователя, пара user/tip в избранном).
	ErrAlreadyExists = errors.New("already exists")
	// ErrInvalidSort - неизвестное направление сортировки.
	ErrInvalidSort = errors.New("invalid sort")
)

// TipStorage описывает операции над сущностью models.Tip.
//
// ListTips и CountTips обязаны трактовать один и тот же фильтр одинаково:
// CountTips игнорирует окно, ListTips его применяет.
type TipStorage interface {
	// SaveTips сохраняет пачку идей; категории и теги создаются по имени.
	// Возвращает идеи с присвоенными ID.
	SaveTips(ctx context.Context, tips []models.Tip) ([]models.Tip, error)
	// ListTips возвращает страницу идей, удовлетворяющих фильтру.
	// Неизвестное направление сортировки - ErrInvalidSort.
	ListTips(ctx context.Context, filter models.TipFilter, sort models.TipSort, window models.Window) ([]models.Tip, error)
	// CountTips возвращает число идей, удовлетворяющих фильтру.
	CountTips(ctx context.Context, filter models.TipFilter) (int64, error)
	// TipByID возвращает идею по идентификатору. Если запись не найдена - ErrNotFound.
	TipByID(ctx context.Context, id int64) (*models.Tip, error)
}

// UserStorage описывает операции над пользователями.
type UserStorage interface {
	// SaveUser сохраняет пользователя. Занятый email - ErrAlreadyExists.
	SaveUser(ctx context.Context, user *models.User) error
	// UserByEmail ищет пользователя по email (в нижнем регистре). Нет записи - ErrNotFound.
	UserByEmail(ctx context.Context, email string) (*models.User, error)
	// UserByID ищет пользователя по идентификатору. Нет записи - ErrNotFound.
	UserByID(ctx context.Context, id uuid.UUID) (*models.User, error)
}

// FavoriteStorage описывает операции над избранным.
type FavoriteStorage interface {
	// AddFavorite добавляет идею в избранное. Повтор - ErrAlreadyExists,
	// отсутствующая идея - ErrNotFound.
	AddFavorite(ctx context.Context, fav models.Favorite) error
	// RemoveFavorite удаляет отметку. Нет отметки - ErrNotFound.
	RemoveFavorite(ctx context.Context, userID uuid.UUID, tipID int64) error
	// ListFavorites возвращает избранные идеи пользователя, новые первыми.
	ListFavorites(ctx context.Context, userID uuid.UUID) ([]models.Tip, error)
}

// Storage задаёт контракт доступа к хранилищу.
type Storage interface {
	TipStorage
	UserStorage
	FavoriteStorage
	Close()
}
