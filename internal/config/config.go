package config

import (
	"errors"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/usmaclub/signup-bot/pkg/models"
)

// Config holds everything the bot reads at startup. Credentials and
// paths come from the environment; the role and recurrence tables come
// from a YAML file (with compiled-in defaults when the file is absent).
type Config struct {
	DiscordToken  string
	AutoChannelID string
	DataPath      string
	Port          string
	CommandPrefix string
	OrganizerRole string

	Tables Tables
}

// Tables is the static YAML-backed configuration: the role-selection
// table and the two recurrence tables.
type Tables struct {
	// PublishHour is the UTC hour at which simple weekday rules fire.
	PublishHour int `yaml:"publish_hour"`

	Roles []models.RoleEntry `yaml:"roles"`

	AutoEvents      []SimpleRule   `yaml:"auto_events"`
	ScheduledEvents []AdvancedRule `yaml:"scheduled_events"`
}

// SimpleRule publishes an event every week on a fixed weekday at the
// global publish hour.
type SimpleRule struct {
	Weekday string   `yaml:"weekday"`
	Name    string   `yaml:"name"`
	Times   []string `yaml:"times"`
}

// AdvancedRule publishes an event every IntervalDays days counted from
// StartDate, at its own UTC hour.
type AdvancedRule struct {
	Name         string   `yaml:"name"`
	Times        []string `yaml:"times"`
	StartDate    string   `yaml:"start_date"` // YYYY-MM-DD
	Hour         int      `yaml:"hour"`       // UTC
	IntervalDays int      `yaml:"interval_days"`
}

// Load reads the environment and the tables file. A missing or empty
// DISCORD_TOKEN is an error; the caller is expected to treat it as fatal.
func Load() (*Config, error) {
	cfg := &Config{
		DiscordToken:  os.Getenv("DISCORD_TOKEN"),
		AutoChannelID: getEnv("AUTO_EVENTS_CHANNEL_ID", ""),
		DataPath:      getEnv("DATA_PATH", "./events.json"),
		Port:          getEnv("PORT", "8080"),
		CommandPrefix: getEnv("COMMAND_PREFIX", "!"),
		OrganizerRole: getEnv("ORGANIZER_ROLE", "Organizers"),
	}

	if cfg.DiscordToken == "" {
		return nil, errors.New("DISCORD_TOKEN is not set")
	}

	tables, err := loadTables(getEnv("CONFIG_PATH", "./config.yaml"))
	if err != nil {
		return nil, err
	}
	cfg.Tables = *tables

	return cfg, nil
}

func loadTables(path string) (*Tables, error) {
	tables := defaultTables()

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return tables, nil
		}
		return nil, fmt.Errorf("failed to read tables file: %w", err)
	}

	if err := yaml.Unmarshal(data, tables); err != nil {
		return nil, fmt.Errorf("failed to parse tables file: %w", err)
	}

	if tables.PublishHour < 0 || tables.PublishHour > 23 {
		return nil, fmt.Errorf("publish_hour %d out of range", tables.PublishHour)
	}
	for _, rule := range tables.ScheduledEvents {
		if rule.IntervalDays <= 0 {
			return nil, fmt.Errorf("scheduled event %q: interval_days must be positive", rule.Name)
		}
		if rule.Hour < 0 || rule.Hour > 23 {
			return nil, fmt.Errorf("scheduled event %q: hour %d out of range", rule.Name, rule.Hour)
		}
	}

	return tables, nil
}

func defaultTables() *Tables {
	return &Tables{
		PublishHour: 8,
		Roles: []models.RoleEntry{
			{Emoji: "🎮", Role: "Ranked games", Description: "Ranked club sessions"},
			{Emoji: "🎲", Role: "Casual games", Description: "Relaxed games, no pressure"},
			{Emoji: "🎉", Role: "Events", Description: "Announcements for conventions, open days and meetups"},
			{Emoji: "🏆", Role: "Tournaments", Description: "Club-hosted tournaments"},
			{Emoji: "🐉", Role: "MCR", Description: "MCR (Mahjong Competition Rules) sessions"},
		},
		ScheduledEvents: []AdvancedRule{
			{
				Name:         "Ranked Wednesday",
				Times:        []string{"17:30", "19:00", "20:30", "22:00"},
				StartDate:    "2025-09-28",
				Hour:         19,
				IntervalDays: 7,
			},
			{
				Name:         "Ranked Saturday",
				Times:        []string{"16:00", "17:30", "19:00", "20:30", "22:00"},
				StartDate:    "2025-09-28",
				Hour:         19,
				IntervalDays: 7,
			},
		},
	}
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
