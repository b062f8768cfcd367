package config

import (
	"testing"
	"time"

	"github.com/marune/backoffice/internal/temporal"
	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadRulesConfigDefaults(t *testing.T) {
	viper.Reset()
	t.Cleanup(viper.Reset)

	cfg, err := LoadRulesConfig()
	require.NoError(t, err)

	assert.Len(t, cfg.Staff.Codes, 8)
	assert.Len(t, cfg.Staff.Callers, 7)
	assert.Equal(t, "removed", cfg.Staff.Removed)
	assert.Equal(t, time.Wednesday, cfg.ClosureDay)
	assert.Equal(t, "follow-up", cfg.FollowUpMarker)
	assert.Equal(t, "unsent", cfg.MailingPending)
	assert.False(t, cfg.ValuationCutoff.IsZero())
	assert.False(t, cfg.NotStartedCutoff.IsZero())
}

func TestLoadRulesConfigOverrides(t *testing.T) {
	viper.Reset()
	t.Cleanup(viper.Reset)

	viper.Set("rules.staff.codes", []string{"AA", "BB"})
	viper.Set("rules.staff.callers", []string{"AA"})
	viper.Set("rules.staff.removed", "gone")
	viper.Set("rules.closure_day", "Tuesday")
	viper.Set("rules.valuation_cutoff", "2026/01/01")
	viper.Set("rules.follow_up_marker", "callback")

	cfg, err := LoadRulesConfig()
	require.NoError(t, err)

	assert.Equal(t, []string{"AA", "BB"}, cfg.Staff.Codes)
	assert.Equal(t, "gone", cfg.Staff.Removed)
	assert.Equal(t, time.Tuesday, cfg.ClosureDay)
	assert.Equal(t, "callback", cfg.FollowUpMarker)

	want, _ := temporal.Normalize("2026/01/01")
	assert.True(t, cfg.ValuationCutoff.Equal(want))
}

func TestLoadRulesConfigRejectsBadValues(t *testing.T) {
	tests := []struct {
		name  string
		key   string
		value any
	}{
		{name: "bad weekday", key: "rules.closure_day", value: "payday"},
		{name: "bad cutoff", key: "rules.valuation_cutoff", value: "soonish"},
		{name: "caller not in codes", key: "rules.staff.callers", value: []string{"XX"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			viper.Reset()
			t.Cleanup(viper.Reset)
			viper.Set(tt.key, tt.value)

			_, err := LoadRulesConfig()
			require.Error(t, err)
		})
	}
}

func TestParseWeekday(t *testing.T) {
	day, err := parseWeekday(" WEDNESDAY ")
	require.NoError(t, err)
	assert.Equal(t, time.Wednesday, day)

	_, err = parseWeekday("holiday")
	assert.Error(t, err)
}
