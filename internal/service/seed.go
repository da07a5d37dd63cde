package service

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"strings"
	"time"

	"github.com/pribylovaa/invest-tips/internal/models"
	"github.com/pribylovaa/invest-tips/internal/pkg/log"
	"gopkg.in/yaml.v3"
)

// seedFile - формат YAML-файла начальных данных.
type seedFile struct {
	Tips []seedTip `yaml:"tips"`
}

type seedTip struct {
	Title          string    `yaml:"title"`
	Description    string    `yaml:"description"`
	Content        string    `yaml:"content"`
	Category       string    `yaml:"category"`
	RiskLevel      string    `yaml:"riskLevel"`
	ExpectedReturn *float64  `yaml:"expectedReturn"`
	Tags           []string  `yaml:"tags"`
	AuthorEmail    string    `yaml:"authorEmail"`
	CreatedAt      time.Time `yaml:"createdAt"`
}

// LoadSeed разбирает YAML с идеями. Пустой title у любой записи является ошибкой.
// Отсутствующий createdAt заменяется текущим временем.
func LoadSeed(r io.Reader) ([]models.Tip, error) {
	const op = "service.seed.LoadSeed"

	var f seedFile
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(&f); err != nil {
		if err == io.EOF {
			return nil, nil
		}
		return nil, fmt.Errorf("%s: %w: %w", op, ErrInvalidArgument, err)
	}

	now := time.Now().UTC()
	tips := make([]models.Tip, 0, len(f.Tips))

	for i, st := range f.Tips {
		title := strings.TrimSpace(st.Title)
		if title == "" {
			return nil, fmt.Errorf("%s: %w: tips[%d]: title is required", op, ErrInvalidArgument, i)
		}

		tip := models.Tip{
			Title:          title,
			Description:    st.Description,
			Content:        st.Content,
			Category:       strings.TrimSpace(st.Category),
			RiskLevel:      strings.TrimSpace(st.RiskLevel),
			ExpectedReturn: st.ExpectedReturn,
			Tags:           st.Tags,
			CreatedAt:      st.CreatedAt.UTC(),
		}
		if st.CreatedAt.IsZero() {
			tip.CreatedAt = now
		}
		if email := strings.TrimSpace(st.AuthorEmail); email != "" {
			tip.Author = &models.Author{Email: strings.ToLower(email)}
		}

		tips = append(tips, tip)
	}

	return tips, nil
}

// SeedTips сохраняет идеи и сбрасывает кэш страниц.
func (s *Service) SeedTips(ctx context.Context, tips []models.Tip) ([]models.Tip, error) {
	const op = "service.seed.SeedTips"

	lg := log.From(ctx)

	if len(tips) == 0 {
		return nil, nil
	}

	saved, err := s.storage.SaveTips(ctx, tips)
	if err != nil {
		lg.Error("seed_tips_storage_error",
			slog.String("op", op),
			slog.String("err", err.Error()),
		)
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	if s.cache != nil {
		if err := s.cache.Purge(ctx); err != nil {
			lg.Warn("seed_cache_purge_failed",
				slog.String("op", op),
				slog.String("err", err.Error()),
			)
		}
	}

	lg.Info("seed_tips_ok",
		slog.String("op", op),
		slog.Int("count", len(saved)),
	)

	return saved, nil
}
