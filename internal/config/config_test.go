package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadRequiresToken(t *testing.T) {
	t.Setenv("DISCORD_TOKEN", "")

	_, err := Load()
	require.Error(t, err)
}

func TestLoadDefaults(t *testing.T) {
	t.Setenv("DISCORD_TOKEN", "test-token")
	t.Setenv("CONFIG_PATH", filepath.Join(t.TempDir(), "missing.yaml"))

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "test-token", cfg.DiscordToken)
	assert.Equal(t, "./events.json", cfg.DataPath)
	assert.Equal(t, "8080", cfg.Port)
	assert.Equal(t, "!", cfg.CommandPrefix)
	assert.Equal(t, 8, cfg.Tables.PublishHour)
	assert.NotEmpty(t, cfg.Tables.Roles)
	assert.NotEmpty(t, cfg.Tables.ScheduledEvents)
}

func TestLoadTablesFromFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	raw := `
publish_hour: 9
roles:
  - emoji: "🎮"
    role: "Ranked games"
    description: "Ranked club sessions"
auto_events:
  - weekday: wednesday
    name: Club Wednesday
    times: ["18:00", "19:30"]
scheduled_events:
  - name: Ranked Sunday
    times: ["17:30", "19:00"]
    start_date: "2025-09-28"
    hour: 19
    interval_days: 7
`
	require.NoError(t, os.WriteFile(path, []byte(raw), 0644))

	tables, err := loadTables(path)
	require.NoError(t, err)

	assert.Equal(t, 9, tables.PublishHour)
	require.Len(t, tables.Roles, 1)
	assert.Equal(t, "Ranked games", tables.Roles[0].Role)
	require.Len(t, tables.AutoEvents, 1)
	assert.Equal(t, []string{"18:00", "19:30"}, tables.AutoEvents[0].Times)
	require.Len(t, tables.ScheduledEvents, 1)
	assert.Equal(t, 7, tables.ScheduledEvents[0].IntervalDays)
}

func TestLoadTablesValidation(t *testing.T) {
	tests := []struct {
		name string
		raw  string
	}{
		{name: "publish hour out of range", raw: "publish_hour: 25\n"},
		{
			name: "zero interval",
			raw: `
scheduled_events:
  - name: Broken
    times: ["18:00"]
    start_date: "2025-09-28"
    hour: 19
    interval_days: 0
`,
		},
		{
			name: "hour out of range",
			raw: `
scheduled_events:
  - name: Broken
    times: ["18:00"]
    start_date: "2025-09-28"
    hour: 24
    interval_days: 7
`,
		},
		{name: "not yaml", raw: "{{{"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), "config.yaml")
			require.NoError(t, os.WriteFile(path, []byte(tt.raw), 0644))

			_, err := loadTables(path)
			assert.Error(t, err)
		})
	}
}
