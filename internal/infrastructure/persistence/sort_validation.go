package persistence

import (
	"strings"

	"github.com/credito/backend/internal/domain/shared"
	"github.com/credito/backend/internal/infrastructure/schema"
	"gorm.io/gorm"
)

// ValidateSortOrder validates and normalizes the sort order to ASC or DESC.
// Returns "DESC" as the default if the input is invalid or empty.
func ValidateSortOrder(orderDir string) string {
	normalized := strings.ToUpper(strings.TrimSpace(orderDir))
	if normalized == "ASC" {
		return "ASC"
	}
	return "DESC"
}

// ValidateSortField validates the sort field against a whitelist of allowed fields.
// Returns the defaultField if the input is invalid, empty, or not in the whitelist.
func ValidateSortField(sortField string, allowedFields map[string]bool, defaultField string) string {
	trimmed := strings.TrimSpace(sortField)
	if trimmed == "" {
		return defaultField
	}
	if allowedFields[trimmed] {
		return trimmed
	}
	return defaultField
}

// SortFields returns the sortable columns of a registry table: every declared
// column except free text.
func SortFields(registry *schema.Registry, table string) map[string]bool {
	t, ok := registry.Table(table)
	if !ok {
		return map[string]bool{}
	}
	fields := make(map[string]bool, len(t.Columns))
	for _, c := range t.Columns {
		if c.Type == schema.TypeText {
			continue
		}
		fields[c.Name] = true
	}
	return fields
}

// applyFilter adds ordering and pagination. Unknown sort columns fall back to id.
func applyFilter(query *gorm.DB, filter shared.Filter, allowed map[string]bool) *gorm.DB {
	orderBy := ValidateSortField(filter.OrderBy, allowed, "id")
	orderDir := ValidateSortOrder(filter.OrderDir)
	return query.
		Order(orderBy + " " + orderDir).
		Offset(filter.Offset()).
		Limit(filter.Limit())
}

// paginate counts the rows query matches, then loads the page the filter
// selects and converts each row with convert.
func paginate[M any, T any](query *gorm.DB, filter shared.Filter, allowed map[string]bool, entity string, convert func(*M) T) (shared.Paginated[T], error) {
	base := query.Model(new(M)).Session(&gorm.Session{})

	var total int64
	if err := base.Count(&total).Error; err != nil {
		return shared.Paginated[T]{}, translateError(err, entity)
	}

	var rows []M
	if err := applyFilter(base, filter, allowed).Find(&rows).Error; err != nil {
		return shared.Paginated[T]{}, translateError(err, entity)
	}
	items := make([]T, len(rows))
	for i := range rows {
		items[i] = convert(&rows[i])
	}
	return shared.NewPaginated(items, total, filter.PageNumber(), filter.Limit()), nil
}
