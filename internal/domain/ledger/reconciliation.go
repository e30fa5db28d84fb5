package ledger

import (
	"time"

	"github.com/mls/backend/internal/domain/shared/valueobject"
	"github.com/shopspring/decimal"
)

// UtilitiesBalance computes paid minus charged for a reference year.
// Positive means the tenant overpaid their provisions and is owed the
// difference; negative means they owe the remainder.
func UtilitiesBalance(yearlyUtilitiesPaid, totalCharges decimal.Decimal) decimal.Decimal {
	return yearlyUtilitiesPaid.Sub(totalCharges)
}

// MonthSet tracks which ledger months have at least one payment
type MonthSet map[valueobject.Month]struct{}

// NewMonthSet builds a MonthSet from the payment months of the given
// payments. Payments without a month are skipped.
func NewMonthSet(payments []Payment) MonthSet {
	set := make(MonthSet, len(payments))
	for _, p := range payments {
		if p.PaymentMonth != nil {
			set[*p.PaymentMonth] = struct{}{}
		}
	}
	return set
}

// Contains reports whether the set covers the given month
func (s MonthSet) Contains(month valueobject.Month) bool {
	_, ok := s[month]
	return ok
}

// CountMissingMonths counts the months without a payment between the
// tenancy start and today, both inclusive. The in-progress month counts
// as missing until it is paid. A tenant without a start date, or whose
// tenancy starts in the future, has no missing months.
func CountMissingMonths(startDate *time.Time, today time.Time, paid MonthSet) int {
	if startDate == nil {
		return 0
	}
	first := valueobject.MonthOf(*startDate)
	last := valueobject.MonthOf(today)
	if first.After(last) {
		return 0
	}

	missing := 0
	for _, month := range valueobject.MonthsBetween(first, last) {
		if !paid.Contains(month) {
			missing++
		}
	}
	return missing
}

// MissingMonths returns the unpaid months between the tenancy start and
// today inclusive, in ascending order.
func MissingMonths(startDate *time.Time, today time.Time, paid MonthSet) []valueobject.Month {
	if startDate == nil {
		return nil
	}
	first := valueobject.MonthOf(*startDate)
	last := valueobject.MonthOf(today)
	if first.After(last) {
		return nil
	}

	var missing []valueobject.Month
	for _, month := range valueobject.MonthsBetween(first, last) {
		if !paid.Contains(month) {
			missing = append(missing, month)
		}
	}
	return missing
}
