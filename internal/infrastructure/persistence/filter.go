package persistence

import (
	"strings"

	"github.com/clinicerp/backend/internal/domain/shared"
	"gorm.io/gorm"
)

// ValidateSortOrder normalizes the sort order to ASC or DESC.
// Returns "DESC" when the input is invalid or empty.
func ValidateSortOrder(orderDir string) string {
	if strings.ToUpper(strings.TrimSpace(orderDir)) == "ASC" {
		return "ASC"
	}
	return "DESC"
}

// ValidateSortField validates the sort field against a whitelist of allowed
// fields. Returns the defaultField when the input is empty or not allowed.
// Sort fields reach SQL verbatim, so anything outside the whitelist is
// dropped rather than escaped.
func ValidateSortField(sortField string, allowedFields map[string]bool, defaultField string) string {
	trimmed := strings.TrimSpace(sortField)
	if trimmed == "" || !allowedFields[trimmed] {
		return defaultField
	}
	return trimmed
}

// applyFilter applies pagination and whitelisted ordering to a query
func applyFilter(query *gorm.DB, filter shared.Filter, allowedFields map[string]bool) *gorm.DB {
	if filter.Page > 0 && filter.PageSize > 0 {
		offset := (filter.Page - 1) * filter.PageSize
		query = query.Offset(offset).Limit(filter.PageSize)
	}

	field := ValidateSortField(filter.OrderBy, allowedFields, "created_at")
	return query.Order(field + " " + ValidateSortOrder(filter.OrderDir))
}

// commonSortFields contains fields present on every aggregate
var commonSortFields = map[string]bool{
	"id":         true,
	"created_at": true,
	"updated_at": true,
}

func withCommonSortFields(extra ...string) map[string]bool {
	fields := make(map[string]bool, len(commonSortFields)+len(extra))
	for field := range commonSortFields {
		fields[field] = true
	}
	for _, field := range extra {
		fields[field] = true
	}
	return fields
}

var accountSortFields = withCommonSortFields("code", "name", "type")

var journalEntrySortFields = withCommonSortFields("entry_date", "source_type")

var invoiceSortFields = withCommonSortFields("number", "customer_id", "status", "total", "issued_at")

var orderSortFields = withCommonSortFields("customer_id", "status", "total")

var purchaseOrderSortFields = withCommonSortFields("supplier_id", "status", "total", "ordered_at", "received_at")

var stockItemSortFields = withCommonSortFields("product_id", "stock_quantity")

var stockMovementSortFields = withCommonSortFields("product_id", "type", "quantity")
