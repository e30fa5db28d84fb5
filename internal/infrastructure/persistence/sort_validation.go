package persistence

import (
	"strings"
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

// CommonSortFields contains fields common to most entities
var CommonSortFields = map[string]bool{
	"id":         true,
	"created_at": true,
	"updated_at": true,
}

// FlatSortFields contains allowed sort fields for flats
var FlatSortFields = map[string]bool{
	"id":               true,
	"created_at":       true,
	"updated_at":       true,
	"name":             true,
	"address":          true,
	"post_code":        true,
	"city":             true,
	"rooms":            true,
	"floor_area":       true,
	"rent_amount":      true,
	"utilities_amount": true,
}

// TenantSortFields contains allowed sort fields for tenants
var TenantSortFields = map[string]bool{
	"id":             true,
	"created_at":     true,
	"updated_at":     true,
	"first_name":     true,
	"last_name":      true,
	"email":          true,
	"city":           true,
	"deposit_amount": true,
	"start_date":     true,
	"end_date":       true,
	"is_active":      true,
}

// PaymentSortFields contains allowed sort fields for payments
var PaymentSortFields = map[string]bool{
	"id":               true,
	"created_at":       true,
	"updated_at":       true,
	"type":             true,
	"amount":           true,
	"utilities_amount": true,
	"amount_paid":      true,
	"payment_date":     true,
	"payment_month":    true,
}
