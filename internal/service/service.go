// service содержит бизнес-логику сервиса инвестиционных идей:
// выборку идей, регистрацию и вход, избранное и загрузку данных.
package service

import (
	"errors"

	"github.com/pribylovaa/invest-tips/internal/cache"
	"github.com/pribylovaa/invest-tips/internal/config"
	"github.com/pribylovaa/invest-tips/internal/metrics"
	"github.com/pribylovaa/invest-tips/internal/storage"
)

var (
	// ErrNotFound - сущность отсутствует.
	// Транспорт: codes.NotFound.
	ErrNotFound = errors.New("not found")
	// ErrInvalidArgument - некорректные входные аргументы.
	// Транспорт: codes.InvalidArgument.
	ErrInvalidArgument = errors.New("invalid argument")
	// ErrAlreadyFavorited - идея уже в избранном.
	// Транспорт: codes.AlreadyExists.
	ErrAlreadyFavorited = errors.New("tip already in favorites")

	// Ошибки аутентификации. Транспорт: codes.Unauthenticated.
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrInvalidToken       = errors.New("invalid token")
	ErrTokenExpired       = errors.New("token expired")

	// Ошибки регистрации. Транспорт: codes.InvalidArgument / codes.AlreadyExists.
	ErrEmailTaken    = errors.New("email already registered")
	ErrInvalidEmail  = errors.New("invalid email")
	ErrWeakPassword  = errors.New("password does not meet policy")
	ErrEmptyPassword = errors.New("password is required")
)

// Service - описывает бизнес-логику сервиса.
type Service struct {
	storage storage.Storage
	cache   cache.PageCache
	metrics *metrics.Metrics
	cfg     config.Config
}

// Option настраивает необязательные зависимости Service.
type Option func(*Service)

// WithCache подключает кэш страниц списка.
func WithCache(c cache.PageCache) Option {
	return func(s *Service) { s.cache = c }
}

// WithMetrics подключает счётчики попаданий/промахов кэша.
func WithMetrics(m *metrics.Metrics) Option {
	return func(s *Service) { s.metrics = m }
}

// New создает новый экземпляр Service.
func New(storage storage.Storage, cfg config.Config, opts ...Option) *Service {
	s := &Service{
		storage: storage,
		cfg:     cfg,
	}

	for _, opt := range opts {
		opt(s)
	}

	return s
}
