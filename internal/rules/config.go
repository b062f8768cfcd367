package rules

import (
	"fmt"
	"time"

	"github.com/marune/backoffice/internal/temporal"
)

// StaffList is the fixed allow-list of recognized assignee codes, plus the
// sentinel value rows carry after a staff member is removed. Changing it is
// a table reload, not a schema migration.
type StaffList struct {
	Removed string
	Codes   []string
	Callers []string
}

// IsRecognized reports whether code is a real staff initial.
func (s StaffList) IsRecognized(code string) bool {
	for _, c := range s.Codes {
		if c == code {
			return true
		}
	}
	return false
}

// Config holds every externally configurable value the rule tables depend
// on: the staff allow-list, the weekly closure day, the two cutoff dates,
// and the free-text markers specific rules probe for.
type Config struct {
	ValuationCutoff  time.Time
	NotStartedCutoff time.Time
	FollowUpMarker   string
	MailingPending   string
	Staff            StaffList
	ClosureDay       time.Weekday
}

// DefaultConfig returns the configuration the office runs with when nothing
// is overridden.
func DefaultConfig() Config {
	valuation, _ := temporal.Normalize("2025/10/01")
	notStarted, _ := temporal.Normalize("2025/12/01")

	codes := []string{"U", "TA", "MI", "KO", "SA", "HA", "NN", "YD"}

	return Config{
		Staff: StaffList{
			Codes: codes,
			// YD manages contracts and is not on the call roster.
			Callers: codes[:7],
			Removed: "removed",
		},
		ClosureDay:       time.Wednesday,
		ValuationCutoff:  valuation,
		NotStartedCutoff: notStarted,
		FollowUpMarker:   "follow-up",
		MailingPending:   "unsent",
	}
}

// Validate checks the configuration before any table is built.
func (c *Config) Validate() error {
	if len(c.Staff.Codes) == 0 {
		return fmt.Errorf("staff codes: %w", errEmptyList)
	}
	if len(c.Staff.Callers) == 0 {
		return fmt.Errorf("staff callers: %w", errEmptyList)
	}
	for _, caller := range c.Staff.Callers {
		if !c.Staff.IsRecognized(caller) {
			return fmt.Errorf("caller %q is not in the staff code list", caller)
		}
	}
	if c.Staff.Removed == "" {
		return fmt.Errorf("removed sentinel must not be empty")
	}
	if c.Staff.IsRecognized(c.Staff.Removed) {
		return fmt.Errorf("removed sentinel %q collides with a staff code", c.Staff.Removed)
	}
	if c.FollowUpMarker == "" {
		return fmt.Errorf("follow-up marker must not be empty")
	}
	if c.MailingPending == "" {
		return fmt.Errorf("mailing pending value must not be empty")
	}
	if c.ValuationCutoff.IsZero() {
		return fmt.Errorf("valuation cutoff must be set")
	}
	if c.NotStartedCutoff.IsZero() {
		return fmt.Errorf("not-started cutoff must be set")
	}
	return nil
}
