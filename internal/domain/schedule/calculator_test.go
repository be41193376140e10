package schedule

import (
	"testing"
	"time"

	"github.com/taskloop/taskloop-api/internal/domain"
)

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func TestNextDueDate(t *testing.T) {
	t.Parallel() // Enable parallel execution
	cases := []struct {
		name     string
		current  time.Time
		cadence  domain.RecurrenceCadence
		interval int
		want     time.Time
	}{
		{"daily", date(2024, 1, 1), domain.CadenceDaily, 1, date(2024, 1, 2)},
		{"every third day", date(2024, 1, 1), domain.CadenceDaily, 3, date(2024, 1, 4)},
		{"weekly", date(2024, 1, 1), domain.CadenceWeekly, 1, date(2024, 1, 8)},
		{"biweekly", date(2024, 1, 1), domain.CadenceWeekly, 2, date(2024, 1, 15)},
		{"monthly", date(2024, 1, 15), domain.CadenceMonthly, 1, date(2024, 2, 15)},
		{"quarterly", date(2024, 1, 15), domain.CadenceMonthly, 3, date(2024, 4, 15)},
		{"yearly", date(2024, 1, 1), domain.CadenceYearly, 1, date(2025, 1, 1)},
		{"none is identity", date(2024, 1, 1), domain.CadenceNone, 1, date(2024, 1, 1)},
		// AddDate normalization: Jan 31 + 1 month lands in early March
		{"month end rolls forward", date(2024, 1, 31), domain.CadenceMonthly, 1, date(2024, 3, 2)},
		// Leap day + 1 year normalizes to March 1 of a non-leap year
		{"leap day rolls forward", date(2024, 2, 29), domain.CadenceYearly, 1, date(2025, 3, 1)},
		{"daily across month boundary", date(2024, 1, 31), domain.CadenceDaily, 1, date(2024, 2, 1)},
		{"daily across leap day", date(2024, 2, 28), domain.CadenceDaily, 1, date(2024, 2, 29)},
	}

	for _, tc := range cases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			cfg := domain.RecurrenceConfig{Cadence: tc.cadence, Interval: tc.interval}
			got := NextDueDate(tc.current, cfg)
			if !got.Equal(tc.want) {
				t.Errorf("NextDueDate(%v, %s x%d) = %v, want %v",
					tc.current, tc.cadence, tc.interval, got, tc.want)
			}
		})
	}
}

func TestNextDueDatePreservesTimeOfDay(t *testing.T) {
	t.Parallel() // Enable parallel execution
	current := time.Date(2024, 1, 1, 14, 30, 0, 0, time.UTC)
	cfg := domain.RecurrenceConfig{Cadence: domain.CadenceDaily, Interval: 1}

	got := NextDueDate(current, cfg)
	want := time.Date(2024, 1, 2, 14, 30, 0, 0, time.UTC)
	if !got.Equal(want) {
		t.Errorf("NextDueDate = %v, want %v", got, want)
	}
}
