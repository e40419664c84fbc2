// Package config loads the monitor's JSON configuration.
package config

import (
	"encoding/json"
	"fmt"
	"os"

	"yakio/host/serial"
)

// Config is the monitor configuration file
type Config struct {
	Device        string `json:"device"`
	Baud          int    `json:"baud"`
	ReadTimeoutMs int    `json:"read_timeout_ms"`

	// RenderFrames draws MsgFrame bitmaps as a 5x5 grid instead of hex
	RenderFrames *bool `json:"render_frames,omitempty"`

	// Quiet suppresses heartbeat lines
	Quiet bool `json:"quiet"`
}

// Defaults
const (
	DefaultDevice        = "/dev/ttyACM0"
	DefaultReadTimeoutMs = 100
)

// LoadConfig parses a JSON configuration and fills in defaults
func LoadConfig(jsonData []byte) (*Config, error) {
	var config Config

	if err := json.Unmarshal(jsonData, &config); err != nil {
		return nil, fmt.Errorf("config: %w", err)
	}
	if config.Baud < 0 || config.ReadTimeoutMs < 0 {
		return nil, fmt.Errorf("config: negative baud or read timeout")
	}

	applyDefaults(&config)

	return &config, nil
}

// LoadFile reads and parses the configuration at path
func LoadFile(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("config: %w", err)
	}
	return LoadConfig(data)
}

// Default returns the configuration used when no file is given
func Default() *Config {
	config := &Config{}
	applyDefaults(config)
	return config
}

// applyDefaults fills in missing values
func applyDefaults(config *Config) {
	if config.Device == "" {
		config.Device = DefaultDevice
	}
	if config.Baud == 0 {
		config.Baud = serial.DefaultBaud
	}
	if config.ReadTimeoutMs == 0 {
		config.ReadTimeoutMs = DefaultReadTimeoutMs
	}
	if config.RenderFrames == nil {
		render := true
		config.RenderFrames = &render
	}
}

// Render reports whether frames should be drawn as a grid
func (c *Config) Render() bool {
	return c.RenderFrames == nil || *c.RenderFrames
}

// Serial returns the port configuration
func (c *Config) Serial() *serial.Config {
	return &serial.Config{
		Device:      c.Device,
		Baud:        c.Baud,
		ReadTimeout: c.ReadTimeoutMs,
	}
}
