package rent

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestPeriodStartISTBoundary(t *testing.T) {
	// 18:30 UTC on May 31 is midnight June 1 in IST.
	boundary := time.Date(2025, 5, 31, 18, 30, 0, 0, time.UTC)

	assert.Equal(t, boundary, PeriodStart(boundary), "exact boundary belongs to June")

	justBefore := boundary.Add(-time.Second)
	assert.Equal(t,
		time.Date(2025, 4, 30, 18, 30, 0, 0, time.UTC),
		PeriodStart(justBefore),
		"one second earlier still belongs to May")
}

func TestPeriodStartServerTimezoneIrrelevant(t *testing.T) {
	instant := time.Date(2025, 6, 15, 12, 0, 0, 0, time.UTC)
	inNewYork := instant.In(time.FixedZone("EDT", -4*60*60))
	inTokyo := instant.In(time.FixedZone("JST", 9*60*60))

	assert.Equal(t, PeriodStart(instant), PeriodStart(inNewYork))
	assert.Equal(t, PeriodStart(instant), PeriodStart(inTokyo))
}

func TestPreviousPeriodStartYearRollover(t *testing.T) {
	jan := time.Date(2026, 1, 10, 0, 0, 0, 0, time.UTC)
	assert.Equal(t,
		time.Date(2025, 11, 30, 18, 30, 0, 0, time.UTC), // Dec 1 00:00 IST
		PreviousPeriodStart(jan))
}

func TestPeriodEnd(t *testing.T) {
	midJune := time.Date(2025, 6, 15, 12, 0, 0, 0, time.UTC)
	assert.Equal(t,
		time.Date(2025, 6, 30, 18, 30, 0, 0, time.UTC), // Jul 1 00:00 IST
		PeriodEnd(midJune))

	dec := time.Date(2025, 12, 31, 18, 30, 0, 0, time.UTC) // Jan 1 00:00 IST
	assert.Equal(t, dec, PeriodStart(dec))
	assert.Equal(t,
		time.Date(2026, 1, 31, 18, 30, 0, 0, time.UTC),
		PeriodEnd(dec))
}

func TestPeriodLabel(t *testing.T) {
	start := PeriodStart(time.Date(2025, 5, 31, 18, 30, 0, 0, time.UTC))
	assert.Equal(t, "2025-06", PeriodLabel(start))

	prev := PreviousPeriodStart(time.Date(2026, 1, 10, 0, 0, 0, 0, time.UTC))
	assert.Equal(t, "2025-12", PeriodLabel(prev))
}
