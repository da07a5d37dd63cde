package postgres

import (
	"fmt"
	"strings"

	"github.com/pribylovaa/invest-tips/internal/models"
	"github.com/pribylovaa/invest-tips/internal/storage"
)

// tipFrom - общий FROM для выборки страницы и подсчёта,
// чтобы оба запроса видели одинаковый набор строк.
const tipFrom = `
	FROM tips t
	LEFT JOIN categories c ON c.id = t.category_id
	LEFT JOIN users u ON u.id = t.author_id`

const tipColumns = `
	t.id, t.title, t.description, t.content, COALESCE(c.name, ''), t.risk_level, t.expected_return,
	COALESCE((SELECT array_agg(g.name ORDER BY g.name)
		FROM tip_tags tt JOIN tags g ON g.id = tt.tag_id
		WHERE tt.tip_id = t.id), '{}'),
	u.id, u.name, u.email, t.created_at`

// whereClause переводит фильтр в параметризованное условие WHERE.
// Нумерация плейсхолдеров начинается с $1; возвращает пустую строку для пустого фильтра.
type whereClause struct {
	parts []string
	args  []any
}

func (w *whereClause) next(v any) string {
	w.args = append(w.args, v)
	return fmt.Sprintf("$%d", len(w.args))
}

func (w *whereClause) sql() string {
	if len(w.parts) == 0 {
		return ""
	}
	return " WHERE " + strings.Join(w.parts, " AND ")
}

func buildWhere(f models.TipFilter) *whereClause {
	w := &whereClause{}

	if f.Search != "" {
		p := w.next("%" + escapeLike(f.Search) + "%")
		w.parts = append(w.parts, fmt.Sprintf(
			`(t.title ILIKE %[1]s ESCAPE '\' OR t.description ILIKE %[1]s ESCAPE '\' OR t.content ILIKE %[1]s ESCAPE '\')`, p))
	}

	if f.Category != "" {
		w.parts = append(w.parts, "c.name = "+w.next(f.Category))
	}

	if f.RiskLevel != "" {
		w.parts = append(w.parts, "t.risk_level = "+w.next(f.RiskLevel))
	}

	if r := f.Return; r != nil && (r.Min != nil || r.Max != nil) {
		var bounds []string
		if r.Min != nil {
			bounds = append(bounds, "t.expected_return >= "+w.next(*r.Min))
		}
		if r.Max != nil {
			bounds = append(bounds, "t.expected_return <= "+w.next(*r.Max))
		}
		w.parts = append(w.parts, "("+strings.Join(bounds, " AND ")+")")
	}

	if len(f.Tags) > 0 {
		lowered := make([]string, len(f.Tags))
		for i, tag := range f.Tags {
			lowered[i] = strings.ToLower(tag)
		}
		w.parts = append(w.parts, fmt.Sprintf(
			"EXISTS (SELECT 1 FROM tip_tags tt JOIN tags g ON g.id = tt.tag_id WHERE tt.tip_id = t.id AND lower(g.name) = ANY(%s))",
			w.next(lowered)))
	}

	return w
}

// orderBy переводит сортировку в ORDER BY с тай-брейком по id.
func orderBy(s models.TipSort) (string, error) {
	if !s.ValidOrder() {
		return "", fmt.Errorf("%w: %q", storage.ErrInvalidSort, s.Order)
	}

	dir := strings.ToUpper(s.Order)

	var col string
	switch s.Field {
	case models.SortByTitle:
		col = "t.title"
	case models.SortByExpectedReturn:
		col = "t.expected_return"
	case models.SortByRiskLevel:
		col = "t.risk_rank"
	default:
		col = "t.created_at"
	}

	return fmt.Sprintf(" ORDER BY %s %s NULLS LAST, t.id %s", col, dir, dir), nil
}

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

func escapeLike(s string) string {
	return likeEscaper.Replace(s)
}
