package persistence

import (
	"strings"

	"github.com/ejarriada/Fanaticos/internal/domain/shared"
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

// withCommon returns a whitelist made of the common fields plus extra
func withCommon(extra ...string) map[string]bool {
	fields := map[string]bool{
		"id":         true,
		"created_at": true,
		"updated_at": true,
	}
	for _, f := range extra {
		fields[f] = true
	}
	return fields
}

// Allowed sort fields per table family
var (
	CommonSortFields          = withCommon()
	NamedSortFields           = withCommon("name")
	TenantSortFields          = withCommon("name", "description")
	DesignSortFields          = withCommon("name", "product_code", "calculated_cost")
	ProductSortFields         = withCommon("name", "sku", "factory_price", "club_price", "suggested_final_price")
	InventorySortFields       = withCommon("quantity", "product_id", "local_id")
	MaterialLotSortFields     = withCommon("cost", "current_stock", "batch_number")
	AdjustmentSortFields      = withCommon("adjustment_type", "quantity")
	PartnerSortFields         = withCommon("name", "email")
	QuotationSortFields       = withCommon("number", "date", "status", "total_amount")
	SaleSortFields            = withCommon("date", "total_amount", "payment_method")
	PurchaseOrderSortFields   = withCommon("number", "order_date", "status", "total_amount", "paid_amount")
	ProductionOrderSortFields = withCommon("status", "estimated_delivery_date", "op_type")
	AccountSortFields         = withCommon("name", "code", "account_type")
)

// applyFilter applies pagination, whitelisted ordering and a case
// insensitive name search. searchColumn may be empty to disable search.
func applyFilter(query *gorm.DB, filter shared.Filter, allowed map[string]bool, searchColumn string) *gorm.DB {
	if filter.Search != "" && searchColumn != "" {
		query = query.Where("LOWER("+searchColumn+") LIKE ?", "%"+strings.ToLower(filter.Search)+"%")
	}

	sortField := ValidateSortField(filter.OrderBy, allowed, "created_at")
	query = query.Order(sortField + " " + ValidateSortOrder(filter.OrderDir))

	if filter.PageSize > 0 {
		query = query.Offset(filter.Offset()).Limit(filter.PageSize)
	}
	return query
}
