package schedule

import (
	"time"

	"github.com/taskloop/taskloop-api/internal/domain"
)

// NextDueDate computes the due date of the occurrence following current
// under the given recurrence config.
//
// Daily, weekly, monthly, and yearly cadences advance current by exactly
// Interval units of that cadence using calendar arithmetic. Month and year
// steps follow Go's time.AddDate normalization, so a day-of-month that does
// not exist in the target month rolls forward (Jan 31 + 1 month = Mar 2/3).
//
// CadenceNone returns current unchanged; callers must treat that as "no
// recurrence" and never schedule from it. There is no error path: a config
// with a non-positive interval is a contract violation rejected at
// construction time by domain.RecurrenceConfig.Validate, not here.
func NextDueDate(current time.Time, cfg domain.RecurrenceConfig) time.Time {
	switch cfg.Cadence {
	case domain.CadenceDaily:
		return current.AddDate(0, 0, cfg.Interval)
	case domain.CadenceWeekly:
		return current.AddDate(0, 0, 7*cfg.Interval)
	case domain.CadenceMonthly:
		return current.AddDate(0, cfg.Interval, 0)
	case domain.CadenceYearly:
		return current.AddDate(cfg.Interval, 0, 0)
	default:
		return current
	}
}
