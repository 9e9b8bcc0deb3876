package common

import (
	"encoding/json"
	"fmt"
	"os"
	"time"
)

// Config represents the audix configuration file structure.
type Config struct {
	LogLevel               string  `json:"log_level,omitempty"`
	VolumeStep             float64 `json:"volume_step,omitempty"`
	NominalDurationSeconds int     `json:"nominal_duration_seconds,omitempty"`
	InputPollMs            int     `json:"input_poll_ms,omitempty"`
	PositionTickMs         int     `json:"position_tick_ms,omitempty"`
	FrameSleepMs           int     `json:"frame_sleep_ms,omitempty"`
	SeekStepSeconds        int     `json:"seek_step_seconds,omitempty"`
}

// DefaultConfig returns a config with sensible defaults.
func DefaultConfig() *Config {
	return &Config{
		LogLevel:               "info",
		VolumeStep:             0.05,
		NominalDurationSeconds: 180,
		InputPollMs:            50,
		PositionTickMs:         1000,
		FrameSleepMs:           50,
		SeekStepSeconds:        10,
	}
}

// LoadConfig loads the config from ~/.audix/config.json.
// Returns default config if file doesn't exist.
func LoadConfig() (*Config, error) {
	return LoadConfigFrom(ConfigPath())
}

// LoadConfigFrom loads the config at path, filling in defaults for any
// missing or non-positive fields.
func LoadConfigFrom(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return DefaultConfig(), nil
		}
		return nil, err
	}

	var config Config
	if err := json.Unmarshal(data, &config); err != nil {
		return nil, fmt.Errorf("invalid config %s: %w", path, err)
	}

	defaults := DefaultConfig()
	if config.LogLevel == "" {
		config.LogLevel = defaults.LogLevel
	}
	if config.VolumeStep <= 0 || config.VolumeStep > 1 {
		config.VolumeStep = defaults.VolumeStep
	}
	if config.NominalDurationSeconds <= 0 {
		config.NominalDurationSeconds = defaults.NominalDurationSeconds
	}
	if config.InputPollMs <= 0 {
		config.InputPollMs = defaults.InputPollMs
	}
	if config.PositionTickMs <= 0 {
		config.PositionTickMs = defaults.PositionTickMs
	}
	if config.FrameSleepMs <= 0 {
		config.FrameSleepMs = defaults.FrameSleepMs
	}
	if config.SeekStepSeconds <= 0 {
		config.SeekStepSeconds = defaults.SeekStepSeconds
	}

	return &config, nil
}

func (c *Config) NominalDuration() time.Duration {
	return time.Duration(c.NominalDurationSeconds) * time.Second
}

func (c *Config) InputPoll() time.Duration {
	return time.Duration(c.InputPollMs) * time.Millisecond
}

func (c *Config) PositionTick() time.Duration {
	return time.Duration(c.PositionTickMs) * time.Millisecond
}

func (c *Config) FrameSleep() time.Duration {
	return time.Duration(c.FrameSleepMs) * time.Millisecond
}

func (c *Config) SeekStep() time.Duration {
	return time.Duration(c.SeekStepSeconds) * time.Second
}
