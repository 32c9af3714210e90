package rent

import (
	"time"
)

// Rent is billed on calendar-month boundaries in Indian Standard Time,
// no matter where the process runs. Periods are identified by the UTC
// instant of the 1st of the month at 00:00 IST, so equality and ordering
// comparisons never depend on the server timezone.
var istZone = time.FixedZone("IST", 5*60*60+30*60)

// PeriodStart returns the billing period start for the month containing ref.
func PeriodStart(ref time.Time) time.Time {
	t := ref.In(istZone)
	return time.Date(t.Year(), t.Month(), 1, 0, 0, 0, 0, istZone).UTC()
}

// PreviousPeriodStart returns the billing period start one month before ref.
func PreviousPeriodStart(ref time.Time) time.Time {
	t := ref.In(istZone)
	return time.Date(t.Year(), t.Month()-1, 1, 0, 0, 0, 0, istZone).UTC()
}

// PeriodEnd returns the exclusive end of the billing period containing ref,
// i.e. the start of the following month.
func PeriodEnd(ref time.Time) time.Time {
	t := ref.In(istZone)
	return time.Date(t.Year(), t.Month()+1, 1, 0, 0, 0, 0, istZone).UTC()
}

// PeriodLabel renders the period start as "yyyy-MM" in IST for API responses.
func PeriodLabel(periodStart time.Time) string {
	return periodStart.In(istZone).Format("2006-01")
}
