package query

import (
	"strings"

	"github.com/pribylovaa/invest-tips/internal/models"
)

var sortFields = map[string]models.SortField{
	"createdat":      models.SortByCreatedAt,
	"title":          models.SortByTitle,
	"expectedreturn": models.SortByExpectedReturn,
	"risklevel":      models.SortByRiskLevel,
}

// ResolveSort разрешает поле и направление сортировки.
//
// Неизвестное или пустое поле заменяется на createdAt. Направление
// приводится к нижнему регистру, пустое становится desc; прочие значения
// передаются как есть и проверяются хранилищем.
func ResolveSort(field, order string) models.TipSort {
	f, ok := sortFields[strings.ToLower(strings.TrimSpace(field))]
	if !ok {
		f = models.SortByCreatedAt
	}

	o := strings.ToLower(strings.TrimSpace(order))
	if o == "" {
		o = models.SortDesc
	}

	return models.TipSort{Field: f, Order: o}
}
