// Package reconciliation holds the pure calculation rules for settling member
// contributions: period lateness classification and the payment waterfall.
// These are used by both services and repositories so the review path and the
// cash-entry path apply identical arithmetic.
package reconciliation

import (
	"time"

	"github.com/shopspring/decimal"
)

// Classify decides whether a contribution toward the given (month, year)
// period is late when submitted at instant now, and which penalty applies.
//
// A period is late when it lies strictly before the submission's own
// (year, month), or when it is the current month but the group's due day has
// already passed. The result is stamped on the record at submission time and
// never recomputed; review only checks whether a sibling record already
// applied the charge.
func Classify(now time.Time, month, year, dueDay int, penalty decimal.Decimal) (bool, decimal.Decimal) {
	currentYear := now.Year()
	currentMonth := int(now.Month())

	late := year < currentYear ||
		(year == currentYear && month < currentMonth) ||
		(year == currentYear && month == currentMonth && now.Day() > dueDay)

	if !late {
		return false, decimal.Zero
	}
	return true, penalty
}
