package query

import "github.com/pribylovaa/invest-tips/internal/models"

// Paginate переводит номер страницы и лимит в окно выборки.
// Ожидает page >= 1 и limit >= 1.
func Paginate(page, limit int) models.Window {
	return models.Window{
		Offset: (page - 1) * limit,
		Limit:  limit,
	}
}

// TotalPages возвращает ceil(total/limit); 0 при total == 0.
func TotalPages(total int64, limit int) int {
	if total <= 0 || limit <= 0 {
		return 0
	}
	l := int64(limit)
	return int((total + l - 1) / l)
}
