// query строит запрос выборки идей из параметров HTTP-запроса:
// предикат фильтрации, окно пагинации и сортировку.
//
// Пакет не имеет состояния: каждый вызов строит новое значение,
// поэтому функции безопасны для конкурентного использования.
package query

import (
	"errors"
	"fmt"
	"math"
	"net/url"
	"strconv"
	"strings"

	"github.com/pribylovaa/invest-tips/internal/models"
)

// ErrInvalidParam - параметр запроса не удалось разобрать.
var ErrInvalidParam = errors.New("invalid query parameter")

// Значения по умолчанию для пагинации.
const (
	DefaultPage  = 1
	DefaultLimit = 10
)

// Имена параметров запроса.
const (
	ParamSearchTerm = "searchTerm"
	ParamCategory   = "category"
	ParamRiskLevel  = "riskLevel"
	ParamMinReturn  = "minReturn"
	ParamMaxReturn  = "maxReturn"
	ParamTags       = "tags"
	ParamPage       = "page"
	ParamLimit      = "limit"
	ParamSortBy     = "sortBy"
	ParamSortOrder  = "sortOrder"
)

// Params - сырые параметры запроса в строковом виде.
// Пустая строка означает, что параметр не передан.
type Params struct {
	SearchTerm string
	Category   string
	RiskLevel  string
	MinReturn  string
	MaxReturn  string
	Tags       string
	Page       string
	Limit      string
	SortBy     string
	SortOrder  string
}

// ParamsFromValues извлекает Params из query-строки.
func ParamsFromValues(v url.Values) Params {
	return Params{
		SearchTerm: v.Get(ParamSearchTerm),
		Category:   v.Get(ParamCategory),
		RiskLevel:  v.Get(ParamRiskLevel),
		MinReturn:  v.Get(ParamMinReturn),
		MaxReturn:  v.Get(ParamMaxReturn),
		Tags:       v.Get(ParamTags),
		Page:       v.Get(ParamPage),
		Limit:      v.Get(ParamLimit),
		SortBy:     v.Get(ParamSortBy),
		SortOrder:  v.Get(ParamSortOrder),
	}
}

// Build собирает полный запрос выборки: фильтр по маске полей,
// номер страницы, лимит и сортировку.
//
// Нечисловые page/limit/minReturn/maxReturn отклоняются с ErrInvalidParam.
// Неположительные page/limit заменяются значениями по умолчанию,
// page, при котором смещение переполняет int, отклоняется с ErrInvalidParam.
func Build(p Params, fields Fields) (models.TipQuery, error) {
	filter, err := BuildFilter(p, fields)
	if err != nil {
		return models.TipQuery{}, err
	}

	page, err := parsePositive(ParamPage, p.Page, DefaultPage)
	if err != nil {
		return models.TipQuery{}, err
	}

	limit, err := parsePositive(ParamLimit, p.Limit, DefaultLimit)
	if err != nil {
		return models.TipQuery{}, err
	}

	// Смещение (page-1)*limit должно помещаться в int.
	if page > math.MaxInt/limit {
		return models.TipQuery{}, fmt.Errorf("%w: %s is too large", ErrInvalidParam, ParamPage)
	}

	return models.TipQuery{
		Filter: filter,
		Sort:   ResolveSort(p.SortBy, p.SortOrder),
		Page:   page,
		Limit:  limit,
	}, nil
}

func parsePositive(name, raw string, def int) (int, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return def, nil
	}

	n, err := strconv.Atoi(raw)
	if err != nil {
		return 0, fmt.Errorf("%w: %s must be an integer", ErrInvalidParam, name)
	}

	if n <= 0 {
		return def, nil
	}

	return n, nil
}

func parseFloat(name, raw string) (*float64, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil, nil
	}

	f, err := strconv.ParseFloat(raw, 64)
	if err != nil || math.IsNaN(f) || math.IsInf(f, 0) {
		return nil, fmt.Errorf("%w: %s must be a number", ErrInvalidParam, name)
	}

	return &f, nil
}
