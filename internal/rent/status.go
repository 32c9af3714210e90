package rent

import (
	"math"
)

const (
	StatusUnpaid  = "unpaid"
	StatusPartial = "partial"
	StatusPaid    = "paid"
)

// PaymentStatus maps a total cost and cumulative paid amount to a payment
// status. NaN on either side is coerced to 0, so a corrupt total with a
// positive paid amount still reports paid. Overpayment reports paid; there
// is no separate overpaid state.
func PaymentStatus(totalCost, paidAmount float64) string {
	total := totalCost
	if math.IsNaN(total) {
		total = 0
	}
	paid := paidAmount
	if math.IsNaN(paid) {
		paid = 0
	}

	switch {
	case paid == 0:
		return StatusUnpaid
	case paid < total:
		return StatusPartial
	default:
		return StatusPaid
	}
}

// ComputeElectricityCost converts a meter delta into a cost, truncated
// (not rounded) to two decimal places. A current reading below the
// previous one yields a negative cost; meter resets and data-entry
// corrections are allowed.
func ComputeElectricityCost(unitRate, previousReading, currentReading float64) float64 {
	return math.Floor((currentReading-previousReading)*unitRate*100) / 100
}
