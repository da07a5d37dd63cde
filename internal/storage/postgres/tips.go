package postgres

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/pribylovaa/invest-tips/internal/models"
	"github.com/pribylovaa/invest-tips/internal/storage"
)

// SaveTips сохраняет пачку идей в одной транзакции.
//
// Категории и теги создаются по имени (upsert), автор ищется по email;
// неизвестный email автора - storage.ErrNotFound.
func (s *Storage) SaveTips(ctx context.Context, tips []models.Tip) ([]models.Tip, error) {
	const op = "storage.postgres.SaveTips"

	if len(tips) == 0 {
		return nil, nil
	}

	tx, err := s.db.Begin(ctx)
	if err != nil {
		return nil, fmt.Errorf("%s: begin: %w", op, err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	saved := make([]models.Tip, 0, len(tips))
	for i, tip := range tips {
		out, err := saveTip(ctx, tx, tip)
		if err != nil {
			return nil, fmt.Errorf("%s: item %d: %w", op, i, err)
		}
		saved = append(saved, out)
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, fmt.Errorf("%s: commit: %w", op, err)
	}

	return saved, nil
}

func saveTip(ctx context.Context, tx pgx.Tx, tip models.Tip) (models.Tip, error) {
	var categoryID *int64
	if name := strings.TrimSpace(tip.Category); name != "" {
		var id int64
		if err := tx.QueryRow(ctx, `
		INSERT INTO categories (name) VALUES ($1)
		ON CONFLICT (name) DO UPDATE SET name = EXCLUDED.name
		RETURNING id
		`, name).Scan(&id); err != nil {
			return models.Tip{}, fmt.Errorf("category: %w", err)
		}
		categoryID = &id
	}

	var authorID *uuid.UUID
	if tip.Author != nil && tip.Author.Email != "" {
		var a models.Author
		err := tx.QueryRow(ctx, `
		SELECT id, name, email FROM users WHERE email = $1
		`, strings.ToLower(strings.TrimSpace(tip.Author.Email))).Scan(&a.ID, &a.Name, &a.Email)
		if err != nil {
			if errors.Is(err, pgx.ErrNoRows) {
				return models.Tip{}, fmt.Errorf("author %q: %w", tip.Author.Email, storage.ErrNotFound)
			}
			return models.Tip{}, fmt.Errorf("author: %w", err)
		}
		authorID = &a.ID
		tip.Author = &a
	} else {
		tip.Author = nil
	}

	createdAt := tip.CreatedAt
	if createdAt.IsZero() {
		createdAt = time.Now()
	}

	err := tx.QueryRow(ctx, `
	INSERT INTO tips (title, description, content, category_id, risk_level, risk_rank, expected_return, author_id, created_at)
	VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
	RETURNING id, created_at
	`, tip.Title, tip.Description, tip.Content, categoryID, tip.RiskLevel,
		models.RiskRank(tip.RiskLevel), tip.ExpectedReturn, authorID, createdAt.UTC()).Scan(&tip.ID, &tip.CreatedAt)
	if err != nil {
		return models.Tip{}, fmt.Errorf("tip: %w", err)
	}
	tip.CreatedAt = tip.CreatedAt.UTC()

	tags := make([]string, 0, len(tip.Tags))
	for _, name := range tip.Tags {
		name = strings.TrimSpace(name)
		if name == "" {
			continue
		}

		var tagID int64
		if err := tx.QueryRow(ctx, `
		INSERT INTO tags (name) VALUES ($1)
		ON CONFLICT (name) DO UPDATE SET name = EXCLUDED.name
		RETURNING id
		`, name).Scan(&tagID); err != nil {
			return models.Tip{}, fmt.Errorf("tag %q: %w", name, err)
		}

		if _, err := tx.Exec(ctx, `
		INSERT INTO tip_tags (tip_id, tag_id) VALUES ($1, $2)
		ON CONFLICT DO NOTHING
		`, tip.ID, tagID); err != nil {
			return models.Tip{}, fmt.Errorf("tip tag %q: %w", name, err)
		}
		tags = append(tags, name)
	}
	tip.Tags = tags

	return tip, nil
}

// ListTips возвращает страницу идей по фильтру, сортировке и окну.
// Неизвестное направление сортировки - storage.ErrInvalidSort.
func (s *Storage) ListTips(ctx context.Context, filter models.TipFilter, sort models.TipSort, window models.Window) ([]models.Tip, error) {
	const op = "storage.postgres.ListTips"

	order, err := orderBy(sort)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	w := buildWhere(filter)
	q := "SELECT" + tipColumns + tipFrom + w.sql() + order +
		" OFFSET " + w.next(window.Offset) + " LIMIT " + w.next(window.Limit)

	rows, err := s.db.Query(ctx, q, w.args...)
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

// CountTips возвращает число идей, удовлетворяющих фильтру (без окна).
func (s *Storage) CountTips(ctx context.Context, filter models.TipFilter) (int64, error) {
	const op = "storage.postgres.CountTips"

	w := buildWhere(filter)

	var total int64
	if err := s.db.QueryRow(ctx, "SELECT COUNT(*)"+tipFrom+w.sql(), w.args...).Scan(&total); err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}

	return total, nil
}

// TipByID возвращает идею по идентификатору.
// Если запись не найдена - storage.ErrNotFound.
func (s *Storage) TipByID(ctx context.Context, id int64) (*models.Tip, error) {
	const op = "storage.postgres.TipByID"

	rows, err := s.db.Query(ctx, "SELECT"+tipColumns+tipFrom+" WHERE t.id = $1", id)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	defer rows.Close()

	tips, err := scanTips(rows)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	if len(tips) == 0 {
		return nil, fmt.Errorf("%s: %w", op, storage.ErrNotFound)
	}

	return &tips[0], nil
}

// scanTips читает строки в порядке колонок tipColumns.
func scanTips(rows pgx.Rows) ([]models.Tip, error) {
	tips := make([]models.Tip, 0)
	for rows.Next() {
		var (
			tip         models.Tip
			authorID    *uuid.UUID
			authorName  *string
			authorEmail *string
		)

		if err := rows.Scan(
			&tip.ID,
			&tip.Title,
			&tip.Description,
			&tip.Content,
			&tip.Category,
			&tip.RiskLevel,
			&tip.ExpectedReturn,
			&tip.Tags,
			&authorID,
			&authorName,
			&authorEmail,
			&tip.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("scan row: %w", err)
		}

		if authorID != nil {
			tip.Author = &models.Author{ID: *authorID}
			if authorName != nil {
				tip.Author.Name = *authorName
			}
			if authorEmail != nil {
				tip.Author.Email = *authorEmail
			}
		}

		tip.CreatedAt = tip.CreatedAt.UTC()
		tips = append(tips, tip)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("rows: %w", err)
	}

	return tips, nil
}
