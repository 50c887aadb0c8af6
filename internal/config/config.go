package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"
)

// Config represents the application configuration
type Config struct {
	Athlete  AthleteConfig  `json:"athlete"`
	Race     RaceConfig     `json:"race"`
	Analysis AnalysisConfig `json:"analysis"`
}

// AthleteConfig holds athlete-specific settings. FTPWatts may be zero, in
// which case FTP is estimated from the best 20-minute power on record.
type AthleteConfig struct {
	FTPWatts    float64 `json:"ftp_watts"`
	RestingHR   float64 `json:"resting_hr"`
	MaxHR       float64 `json:"max_hr"`
	ThresholdHR float64 `json:"threshold_hr"`
}

// RaceConfig holds the target race. An empty date is the explicit
// "no race planned" state, not an error.
type RaceConfig struct {
	Date     string `json:"date"` // YYYY-MM-DD
	Type     string `json:"type"` // sprint | olympic | half_ironman | full_ironman
	Priority string `json:"priority"`
}

// AnalysisConfig holds analysis window preferences. TrendWindowDays governs
// zone-distribution and efficiency-trend metrics; the 7/28-day load windows
// are fixed by the ACWR convention and are not configurable.
type AnalysisConfig struct {
	TrendWindowDays int `json:"trend_window_days"`
}

// ErrNoConfig is returned when the config file doesn't exist
var ErrNoConfig = errors.New("config file not found")

var raceTypes = map[string]bool{
	"sprint":       true,
	"olympic":      true,
	"half_ironman": true,
	"full_ironman": true,
}

// DefaultConfig returns the default configuration
func DefaultConfig() Config {
	return Config{
		Athlete: AthleteConfig{
			RestingHR: 50,
			MaxHR:     185,
		},
		Race: RaceConfig{
			Priority: "A",
		},
		Analysis: AnalysisConfig{
			TrendWindowDays: 60,
		},
	}
}

// Load reads the configuration from ~/.tricoach/config.json
func Load() (*Config, error) {
	path, err := getConfigPath()
	if err != nil {
		return nil, err
	}

	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return nil, ErrNoConfig
	}
	if err != nil {
		return nil, fmt.Errorf("reading config file: %w", err)
	}

	var cfg Config
	if err := json.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parsing config file: %w", err)
	}

	cfg.ApplyDefaults()
	return &cfg, nil
}

// ApplyDefaults fills in defaults for missing values.
func (c *Config) ApplyDefaults() {
	defaults := DefaultConfig()
	if c.Athlete.RestingHR == 0 {
		c.Athlete.RestingHR = defaults.Athlete.RestingHR
	}
	if c.Athlete.MaxHR == 0 {
		c.Athlete.MaxHR = defaults.Athlete.MaxHR
	}
	if c.Athlete.ThresholdHR == 0 {
		// Approximate lactate threshold when not measured
		c.Athlete.ThresholdHR = c.Athlete.MaxHR * 0.85
	}
	if c.Race.Priority == "" {
		c.Race.Priority = defaults.Race.Priority
	}
	if c.Analysis.TrendWindowDays == 0 {
		c.Analysis.TrendWindowDays = defaults.Analysis.TrendWindowDays
	}
}

// Save writes the configuration to ~/.tricoach/config.json
func Save(cfg *Config) error {
	path, err := getConfigPath()
	if err != nil {
		return err
	}

	// Ensure directory exists
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("creating config directory: %w", err)
	}

	data, err := json.MarshalIndent(cfg, "", "  ")
	if err != nil {
		return fmt.Errorf("encoding config: %w", err)
	}

	if err := os.WriteFile(path, data, 0600); err != nil {
		return fmt.Errorf("writing config file: %w", err)
	}

	return nil
}

// CreateExample creates an example config file if none exists
func CreateExample() error {
	path, err := getConfigPath()
	if err != nil {
		return err
	}

	// Check if config already exists
	if _, err := os.Stat(path); err == nil {
		return nil // Config exists, don't overwrite
	}

	example := DefaultConfig()
	example.Athlete.FTPWatts = 220
	example.Athlete.ThresholdHR = 160
	example.Race = RaceConfig{
		Date:     "",
		Type:     "olympic",
		Priority: "A",
	}

	return Save(&example)
}

// Validate checks if the config has required fields. A validation failure is
// fatal to the engine invocation; the caller decides whether to abort or
// retry with defaults.
func (c *Config) Validate() error {
	if c.Athlete.MaxHR <= 0 {
		return errors.New("athlete.max_hr is required")
	}
	if c.Athlete.RestingHR <= 0 {
		return errors.New("athlete.resting_hr is required")
	}
	if c.Athlete.RestingHR >= c.Athlete.MaxHR {
		return fmt.Errorf("athlete.resting_hr (%v) must be less than athlete.max_hr (%v)", c.Athlete.RestingHR, c.Athlete.MaxHR)
	}
	if c.Athlete.ThresholdHR > 0 && c.Athlete.ThresholdHR >= c.Athlete.MaxHR {
		return fmt.Errorf("athlete.threshold_hr (%v) must be less than athlete.max_hr (%v)", c.Athlete.ThresholdHR, c.Athlete.MaxHR)
	}
	if c.Athlete.FTPWatts < 0 {
		return fmt.Errorf("athlete.ftp_watts must not be negative, got %v", c.Athlete.FTPWatts)
	}

	if c.Race.Date != "" {
		if _, err := time.Parse("2006-01-02", c.Race.Date); err != nil {
			return fmt.Errorf("race.date must be YYYY-MM-DD, got %q", c.Race.Date)
		}
		if c.Race.Type != "" && !raceTypes[c.Race.Type] {
			return fmt.Errorf("race.type must be one of sprint, olympic, half_ironman, full_ironman, got %q", c.Race.Type)
		}
	}
	switch c.Race.Priority {
	case "", "A", "B", "C":
	default:
		return fmt.Errorf("race.priority must be A, B or C, got %q", c.Race.Priority)
	}

	if c.Analysis.TrendWindowDays < 7 || c.Analysis.TrendWindowDays > 90 {
		return fmt.Errorf("analysis.trend_window_days must be between 7 and 90, got %d", c.Analysis.TrendWindowDays)
	}

	return nil
}

// RaceDate returns the parsed race date, or nil when no race is planned.
func (c *Config) RaceDate() *time.Time {
	if c.Race.Date == "" {
		return nil
	}
	d, err := time.Parse("2006-01-02", c.Race.Date)
	if err != nil {
		return nil
	}
	return &d
}

// getConfigPath returns the path to the config file
func getConfigPath() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("getting home directory: %w", err)
	}
	return filepath.Join(home, ".tricoach", "config.json"), nil
}

// GetConfigDir returns the path to the config directory
func GetConfigDir() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("getting home directory: %w", err)
	}
	return filepath.Join(home, ".tricoach"), nil
}
