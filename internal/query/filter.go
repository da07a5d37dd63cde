package query

import (
	"strings"

	"github.com/pribylovaa/invest-tips/internal/models"
)

// Fields - маска активных полей фильтра.
type Fields uint8

const (
	FieldSearch Fields = 1 << iota
	FieldCategory
	FieldRiskLevel
	FieldReturn
	FieldTags
)

// Маски эндпоинтов: список принимает только категорию и риск,
// поиск - все поля.
const (
	ListFields   = FieldCategory | FieldRiskLevel
	SearchFields = FieldSearch | FieldCategory | FieldRiskLevel | FieldReturn | FieldTags
)

// Has сообщает, включено ли поле f в маску.
func (m Fields) Has(f Fields) bool { return m&f != 0 }

// BuildFilter строит предикат из параметров, учитывая только поля из маски.
// Отсутствующий параметр не добавляет условия.
func BuildFilter(p Params, fields Fields) (models.TipFilter, error) {
	var f models.TipFilter

	if fields.Has(FieldSearch) {
		f.Search = strings.TrimSpace(p.SearchTerm)
	}
	if fields.Has(FieldCategory) {
		f.Category = strings.TrimSpace(p.Category)
	}
	if fields.Has(FieldRiskLevel) {
		f.RiskLevel = strings.TrimSpace(p.RiskLevel)
	}

	if fields.Has(FieldReturn) {
		lo, err := parseFloat(ParamMinReturn, p.MinReturn)
		if err != nil {
			return models.TipFilter{}, err
		}
		hi, err := parseFloat(ParamMaxReturn, p.MaxReturn)
		if err != nil {
			return models.TipFilter{}, err
		}
		if lo != nil || hi != nil {
			f.Return = &models.ReturnRange{Min: lo, Max: hi}
		}
	}

	if fields.Has(FieldTags) {
		f.Tags = SplitTags(p.Tags)
	}

	return f, nil
}

// SplitTags разбивает список тегов через запятую, обрезает пробелы,
// приводит к нижнему регистру и отбрасывает пустые токены.
func SplitTags(raw string) []string {
	if strings.TrimSpace(raw) == "" {
		return nil
	}

	parts := strings.Split(raw, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		p = strings.ToLower(strings.TrimSpace(p))
		if p == "" {
			continue
		}
		out = append(out, p)
	}

	if len(out) == 0 {
		return nil
	}

	return out
}
