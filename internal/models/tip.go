// models содержит доменные сущности сервиса инвестиционных идей.
// Эти типы используются слоями бизнес-логики, хранилища и транспорта.
package models

import (
	"strings"
	"time"

	"github.com/google/uuid"
)

// Tip - доменная сущность инвестиционной идеи.
//
// Особенности:
//   - ID - числовой идентификатор, присваивается хранилищем;
//   - ExpectedReturn может отсутствовать (nil);
//   - CreatedAt - в UTC.
type Tip struct {
	ID             int64
	Title          string
	Description    string
	Content        string
	Category       string
	RiskLevel      string
	ExpectedReturn *float64
	Tags           []string
	Author         *Author
	CreatedAt      time.Time
}

// Author - публичная проекция автора идеи.
type Author struct {
	ID    uuid.UUID
	Name  string
	Email string
}

// ReturnRange - диапазон ожидаемой доходности.
// Обе границы включительные; nil означает отсутствие границы.
type ReturnRange struct {
	Min *float64 `json:"gte,omitempty"`
	Max *float64 `json:"lte,omitempty"`
}

// TipFilter - предикат выборки идей.
//
// Пустое поле означает отсутствие условия. Все условия объединяются по AND,
// Search - OR-группа по title/description/content без учёта регистра.
type TipFilter struct {
	Search    string       `json:"search,omitempty"`
	Category  string       `json:"category,omitempty"`
	RiskLevel string       `json:"riskLevel,omitempty"`
	Return    *ReturnRange `json:"expectedReturn,omitempty"`
	Tags      []string     `json:"tags,omitempty"`
}

// IsEmpty сообщает, что фильтр не содержит ни одного условия.
func (f TipFilter) IsEmpty() bool {
	return f.Search == "" && f.Category == "" && f.RiskLevel == "" &&
		f.Return == nil && len(f.Tags) == 0
}

// SortField - поле сортировки списка идей.
type SortField string

const (
	SortByCreatedAt      SortField = "createdAt"
	SortByTitle          SortField = "title"
	SortByExpectedReturn SortField = "expectedReturn"
	SortByRiskLevel      SortField = "riskLevel"
)

// Направления сортировки.
const (
	SortAsc  = "asc"
	SortDesc = "desc"
)

// TipSort - разрешённая спецификация сортировки.
// Order не валидируется здесь: неизвестное направление отклоняет хранилище.
type TipSort struct {
	Field SortField `json:"field"`
	Order string    `json:"order"`
}

// ValidOrder сообщает, что направление - asc или desc.
func (s TipSort) ValidOrder() bool {
	return s.Order == SortAsc || s.Order == SortDesc
}

// Window - окно выборки (OFFSET/LIMIT).
type Window struct {
	Offset int `json:"offset"`
	Limit  int `json:"limit"`
}

// TipQuery - полный запрос списка идей.
type TipQuery struct {
	Filter TipFilter `json:"filter"`
	Sort   TipSort   `json:"sort"`
	Page   int       `json:"page"`
	Limit  int       `json:"limit"`
}

// TipPage - страница результатов с метаданными пагинации.
type TipPage struct {
	Tips        []Tip `json:"tips"`
	Total       int64 `json:"total"`
	TotalPages  int   `json:"totalPages"`
	CurrentPage int   `json:"currentPage"`
}

var riskRanks = map[string]int{
	"very low":  1,
	"low":       2,
	"medium":    3,
	"high":      4,
	"very high": 5,
}

// UnknownRiskRank - ранг для нераспознанных уровней риска (сортируются последними).
const UnknownRiskRank = 6

// RiskRank возвращает порядковый ранг уровня риска без учёта регистра.
func RiskRank(level string) int {
	if r, ok := riskRanks[strings.ToLower(strings.TrimSpace(level))]; ok {
		return r
	}
	return UnknownRiskRank
}
