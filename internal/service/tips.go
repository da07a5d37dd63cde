package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"math"

	"github.com/pribylovaa/invest-tips/internal/models"
	"github.com/pribylovaa/invest-tips/internal/pkg/log"
	"github.com/pribylovaa/invest-tips/internal/query"
	"github.com/pribylovaa/invest-tips/internal/storage"
)

// ListTips возвращает страницу идей и общее число совпадений.
//
// Правила нормализации:
// - page < 1 -> 1;
// - limit <= 0 -> cfg.LimitsConfig.Default;
// - limit > max -> cfg.LimitsConfig.Max.
//
// Страница и счётчик запрашиваются с одним и тем же фильтром.
// Пустая страница ошибкой не считается: решение принимает транспорт.
//
// Ошибки:
// - ErrInvalidArgument - неизвестное направление сортировки (storage.ErrInvalidSort)
//   или page, при котором смещение переполняет int;
// - прочие ошибки стораджа - обёрнутые и прокинуты наверх.
func (s *Service) ListTips(ctx context.Context, q models.TipQuery) (*models.TipPage, error) {
	const op = "service.tips.ListTips"

	lg := log.From(ctx)

	if q.Page < 1 {
		q.Page = 1
	}

	if q.Limit <= 0 {
		q.Limit = s.cfg.LimitsConfig.Default
	}

	if s.cfg.LimitsConfig.Max > 0 && q.Limit > s.cfg.LimitsConfig.Max {
		q.Limit = s.cfg.LimitsConfig.Max
	}

	if q.Page > math.MaxInt/q.Limit {
		return nil, fmt.Errorf("%s: %w: page is too large", op, ErrInvalidArgument)
	}

	lg.Info("list_tips_request",
		slog.String("op", op),
		slog.Int("page", q.Page),
		slog.Int("limit", q.Limit),
		slog.String("sort", string(q.Sort.Field)+" "+q.Sort.Order),
		slog.Bool("filtered", !q.Filter.IsEmpty()),
	)

	if page, ok := s.cachedPage(ctx, q); ok {
		return page, nil
	}

	tips, err := s.storage.ListTips(ctx, q.Filter, q.Sort, query.Paginate(q.Page, q.Limit))
	if err != nil {
		return nil, s.listError(ctx, op, err)
	}

	total, err := s.storage.CountTips(ctx, q.Filter)
	if err != nil {
		return nil, s.listError(ctx, op, err)
	}

	page := &models.TipPage{
		Tips:        tips,
		Total:       total,
		TotalPages:  query.TotalPages(total, q.Limit),
		CurrentPage: q.Page,
	}

	s.storePage(ctx, q, page)

	lg.Info("list_tips_ok",
		slog.String("op", op),
		slog.Int("items", len(tips)),
		slog.Int64("total", total),
	)

	return page, nil
}

func (s *Service) listError(ctx context.Context, op string, err error) error {
	lg := log.From(ctx)

	if errors.Is(err, storage.ErrInvalidSort) {
		lg.Warn("list_tips_invalid_sort",
			slog.String("op", op),
			slog.String("err", err.Error()),
		)

		return fmt.Errorf("%s: %w: %w", op, ErrInvalidArgument, err)
	}

	lg.Error("list_tips_storage_error",
		slog.String("op", op),
		slog.String("err", err.Error()),
	)

	return fmt.Errorf("%s: %w", op, err)
}

// cachedPage читает страницу из кэша. Ошибки кэша не прерывают запрос.
func (s *Service) cachedPage(ctx context.Context, q models.TipQuery) (*models.TipPage, bool) {
	if s.cache == nil {
		return nil, false
	}

	page, ok, err := s.cache.Get(ctx, q)
	if err != nil {
		log.From(ctx).Warn("tips_cache_get_failed", slog.String("err", err.Error()))
		return nil, false
	}

	if !ok {
		s.metrics.CacheMiss()
		return nil, false
	}

	s.metrics.CacheHit()
	return page, true
}

func (s *Service) storePage(ctx context.Context, q models.TipQuery, page *models.TipPage) {
	if s.cache == nil {
		return
	}

	if err := s.cache.Set(ctx, q, page); err != nil {
		log.From(ctx).Warn("tips_cache_set_failed", slog.String("err", err.Error()))
	}
}

// TipByID возвращает идею по идентификатору.
//
// Ошибки:
// - ErrNotFound - если запись отсутствует (маппинг storage.ErrNotFound);
// - прочие ошибки стораджа - обёрнутые и прокинуты наверх.
func (s *Service) TipByID(ctx context.Context, id int64) (*models.Tip, error) {
	const op = "service.tips.TipByID"

	lg := log.From(ctx)

	tip, err := s.storage.TipByID(ctx, id)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			lg.Warn("tip_by_id_not_found",
				slog.String("op", op),
				slog.Int64("id", id),
			)

			return nil, fmt.Errorf("%s: %w", op, ErrNotFound)
		}

		lg.Error("tip_by_id_storage_error",
			slog.String("op", op),
			slog.Int64("id", id),
			slog.String("err", err.Error()),
		)

		return nil, fmt.Errorf("%s: %w", op, err)
	}

	lg.Debug("tip_by_id_ok",
		slog.String("op", op),
		slog.Int64("id", id),
	)

	return tip, nil
}
