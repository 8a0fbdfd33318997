package persistence

import (
	"fmt"
	"strings"

	"github.com/erp/pdv/internal/domain/shared"
	"gorm.io/gorm"
)

const maxPageSize = 500

// sortOrder normalizes a direction to ASC or DESC, defaulting to DESC
func sortOrder(dir string) string {
	if strings.EqualFold(strings.TrimSpace(dir), "asc") {
		return "ASC"
	}
	return "DESC"
}

// sortField returns field if it is whitelisted, else def
func sortField(field string, allowed map[string]bool, def string) string {
	field = strings.TrimSpace(field)
	if allowed[field] {
		return field
	}
	return def
}

// paginate applies ordering and page window from the filter
func paginate(q *gorm.DB, f shared.Filter, allowed map[string]bool, def string) *gorm.DB {
	q = q.Order(sortField(f.OrderBy, allowed, def) + " " + sortOrder(f.OrderDir)).Order("id " + sortOrder(f.OrderDir))
	if f.PageSize > 0 {
		size := f.PageSize
		if size > maxPageSize {
			size = maxPageSize
		}
		q = q.Offset(f.Offset()).Limit(size)
	}
	return q
}

// likePattern builds a case-insensitive contains pattern
func likePattern(s string) string {
	return "%" + strings.ToLower(strings.TrimSpace(s)) + "%"
}

var (
	productSortFields  = map[string]bool{"id": true, "name": true, "price": true, "stock": true, "category": true, "created_at": true}
	customerSortFields = map[string]bool{"id": true, "name": true, "created_at": true}
	saleSortFields     = map[string]bool{"id": true, "total": true, "created_at": true}
	movementSortFields = map[string]bool{"id": true, "created_at": true, "quantity": true}
	creditorSortFields = map[string]bool{"id": true, "due_date": true, "remaining_amount": true, "customer_name": true, "created_at": true}
	returnSortFields   = map[string]bool{"id": true, "created_at": true, "total_refund": true}
	expenseSortFields  = map[string]bool{"id": true, "due_date": true, "amount": true, "created_at": true}
	userSortFields     = map[string]bool{"id": true, "username": true, "created_at": true}
)

// toString unwraps string-kinded enum values for query arguments
func toString(v any) any {
	switch s := v.(type) {
	case fmt.Stringer:
		return s.String()
	default:
		return v
	}
}
