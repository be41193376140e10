package domain

import (
	"errors"
	"time"
)

// Recurrence-specific validation errors
var (
	// ErrInvalidCadence is returned when a recurrence cadence is not one of
	// the recognized values.
	ErrInvalidCadence = errors.New("invalid recurrence cadence")

	// ErrInvalidInterval is returned when a recurrence interval is zero or negative.
	ErrInvalidInterval = errors.New("recurrence interval must be a positive integer")

	// ErrInvalidMaxOccurrences is returned when max occurrences is set but not positive.
	ErrInvalidMaxOccurrences = errors.New("max occurrences must be a positive integer")
)

// RecurrenceCadence represents the unit by which a recurring task repeats.
type RecurrenceCadence string

// Possible recurrence cadence values
const (
	CadenceNone    RecurrenceCadence = "none"
	CadenceDaily   RecurrenceCadence = "daily"
	CadenceWeekly  RecurrenceCadence = "weekly"
	CadenceMonthly RecurrenceCadence = "monthly"
	CadenceYearly  RecurrenceCadence = "yearly"
)

// RecurrenceConfig describes how a task repeats: the cadence, how many
// cadence units separate occurrences, and optional end conditions.
// A config with CadenceNone never produces a new occurrence regardless
// of the other fields.
type RecurrenceConfig struct {
	Cadence        RecurrenceCadence `json:"cadence"`
	Interval       int               `json:"interval"`
	EndDate        *time.Time        `json:"end_date,omitempty"`
	MaxOccurrences *int              `json:"max_occurrences,omitempty"`
}

// NewRecurrenceConfig creates a validated RecurrenceConfig.
// Interval and cadence are checked here so the date arithmetic deeper in
// the scheduling core never has to reject bad input.
func NewRecurrenceConfig(
	cadence RecurrenceCadence,
	interval int,
) (*RecurrenceConfig, error) {
	cfg := &RecurrenceConfig{
		Cadence:  cadence,
		Interval: interval,
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// Validate checks if the RecurrenceConfig has valid data.
// Returns an error if any field fails validation.
func (c *RecurrenceConfig) Validate() error {
	if !isValidCadence(c.Cadence) {
		return ErrInvalidCadence
	}

	if c.Interval <= 0 {
		return ErrInvalidInterval
	}

	if c.MaxOccurrences != nil && *c.MaxOccurrences <= 0 {
		return ErrInvalidMaxOccurrences
	}

	return nil
}

// Repeats reports whether the config describes an actual recurring series.
func (c *RecurrenceConfig) Repeats() bool {
	return c != nil && c.Cadence != CadenceNone
}

// Clone returns a deep copy of the config.
func (c *RecurrenceConfig) Clone() *RecurrenceConfig {
	if c == nil {
		return nil
	}

	clone := &RecurrenceConfig{
		Cadence:  c.Cadence,
		Interval: c.Interval,
	}
	if c.EndDate != nil {
		end := *c.EndDate
		clone.EndDate = &end
	}
	if c.MaxOccurrences != nil {
		max := *c.MaxOccurrences
		clone.MaxOccurrences = &max
	}

	return clone
}

// isValidCadence checks if the given cadence is a valid RecurrenceCadence.
func isValidCadence(cadence RecurrenceCadence) bool {
	switch cadence {
	case CadenceNone, CadenceDaily, CadenceWeekly, CadenceMonthly, CadenceYearly:
		return true
	default:
		return false
	}
}
