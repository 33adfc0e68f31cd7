package config

import (
	"fmt"
	"os"
	"strconv"

	"gopkg.in/yaml.v3"
)

// Config holds all application configuration
type Config struct {
	Port                 string // status HTTP server port
	SettingsPath         string // path to the YAML settings file
	HistoryDBPath        string // path to the SQLite interaction history database
	HistoryRetentionDays int    // interactions older than this are pruned daily
}

// Load loads configuration from environment variables with defaults
func Load() *Config {
	return &Config{
		Port:                 getEnv("PORT", "3001"),
		SettingsPath:         getEnv("SETTINGS_PATH", "settings.yaml"),
		HistoryDBPath:        getEnv("HISTORY_DB_PATH", "aria.db"),
		HistoryRetentionDays: getIntEnv("HISTORY_RETENTION_DAYS", 30),
	}
}

// Routine is a recurring spoken announcement defined in the settings file.
type Routine struct {
	Name string `yaml:"name"`
	Cron string `yaml:"cron"` // standard 5-field cron expression
	Say  string `yaml:"say"`
}

// Settings is the flat key/value settings document loaded once at startup.
// Credentials may be absent; handlers that need them degrade gracefully.
type Settings struct {
	// SMTP delivery
	SMTPHost     string `yaml:"smtp_host"`
	SMTPPort     int    `yaml:"smtp_port"`
	SMTPUsername string `yaml:"smtp_username"`
	SMTPPassword string `yaml:"smtp_password"`
	SMTPFrom     string `yaml:"smtp_from"`

	// Weather API
	WeatherAPIKey  string `yaml:"weather_api_key"`
	WeatherBaseURL string `yaml:"weather_base_url"`
	DefaultCity    string `yaml:"default_city"`

	// Knowledge lookup
	KnowledgeBaseURL string `yaml:"knowledge_base_url"`

	// Exact-phrase canned responses, checked before intent classification
	Responses map[string]string `yaml:"responses,omitempty"`

	// Recurring spoken routines
	Routines []Routine `yaml:"routines,omitempty"`
}

// DefaultSettings returns the settings written back when no file exists yet
func DefaultSettings() *Settings {
	return &Settings{
		SMTPPort:         587,
		WeatherBaseURL:   "https://api.openweathermap.org/data/2.5/weather",
		DefaultCity:      "London",
		KnowledgeBaseURL: "https://en.wikipedia.org/api/rest_v1/page/summary",
		Responses: map[string]string{
			"thank you": "You're welcome!",
			"thanks":    "Anytime.",
		},
	}
}

// LoadSettings loads the settings file. If the file does not exist the
// defaults are written back to disk so the user has a template to edit.
func LoadSettings(path string) (*Settings, error) {
	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		settings := DefaultSettings()
		if err := SaveSettings(path, settings); err != nil {
			return nil, fmt.Errorf("failed to write default settings: %w", err)
		}
		return settings, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read settings file: %w", err)
	}

	var settings Settings
	if err := yaml.Unmarshal(data, &settings); err != nil {
		return nil, fmt.Errorf("failed to parse settings YAML: %w", err)
	}
	return &settings, nil
}

// SaveSettings writes the settings document to disk
func SaveSettings(path string, settings *Settings) error {
	data, err := yaml.Marshal(settings)
	if err != nil {
		return fmt.Errorf("failed to marshal settings: %w", err)
	}
	return os.WriteFile(path, data, 0o644)
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getIntEnv(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		parsed, err := strconv.Atoi(value)
		if err == nil {
			return parsed
		}
	}
	return defaultValue
}
