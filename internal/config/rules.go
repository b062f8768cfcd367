package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/marune/backoffice/internal/rules"
	"github.com/marune/backoffice/internal/temporal"
	"github.com/spf13/viper"
)

// LoadRulesConfig builds the rule-table configuration from Viper, falling
// back to the office defaults for anything unset. The staff allow-list, the
// closure day, and the two cutoff dates are configuration, not code: a
// staffing change is a config edit and a reload.
func LoadRulesConfig() (rules.Config, error) {
	cfg := rules.DefaultConfig()

	if v := viper.GetStringSlice("rules.staff.codes"); len(v) > 0 {
		cfg.Staff.Codes = v
	}
	if v := viper.GetStringSlice("rules.staff.callers"); len(v) > 0 {
		cfg.Staff.Callers = v
	}
	if v := viper.GetString("rules.staff.removed"); v != "" {
		cfg.Staff.Removed = v
	}
	if v := viper.GetString("rules.closure_day"); v != "" {
		day, err := parseWeekday(v)
		if err != nil {
			return rules.Config{}, err
		}
		cfg.ClosureDay = day
	}
	if v := viper.GetString("rules.valuation_cutoff"); v != "" {
		d, ok := temporal.Normalize(v)
		if !ok {
			return rules.Config{}, fmt.Errorf("invalid rules.valuation_cutoff: %q", v)
		}
		cfg.ValuationCutoff = d
	}
	if v := viper.GetString("rules.not_started_cutoff"); v != "" {
		d, ok := temporal.Normalize(v)
		if !ok {
			return rules.Config{}, fmt.Errorf("invalid rules.not_started_cutoff: %q", v)
		}
		cfg.NotStartedCutoff = d
	}
	if v := viper.GetString("rules.follow_up_marker"); v != "" {
		cfg.FollowUpMarker = v
	}
	if v := viper.GetString("rules.mailing_pending"); v != "" {
		cfg.MailingPending = v
	}

	if err := cfg.Validate(); err != nil {
		return rules.Config{}, err
	}
	return cfg, nil
}

func parseWeekday(s string) (time.Weekday, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "sunday":
		return time.Sunday, nil
	case "monday":
		return time.Monday, nil
	case "tuesday":
		return time.Tuesday, nil
	case "wednesday":
		return time.Wednesday, nil
	case "thursday":
		return time.Thursday, nil
	case "friday":
		return time.Friday, nil
	case "saturday":
		return time.Saturday, nil
	}
	return time.Sunday, fmt.Errorf("invalid weekday: %q", s)
}
