// Package config describes one encoder installation: its wiring, the type
// and range of the regulated value and the polling timing. Settings are read
// from JSON (firmware, embedded) or from an INI section (Linux runner).
package config

import (
	"encoding/json"
	"fmt"
	"os"
)

// PinSettings names the encoder lines. Pins are written as "gpio17",
// "GP17" or "17"; an empty string leaves the line unconnected.
type PinSettings struct {
	CLK  string // Clock (A)
	DT   string // Data (B)
	SW   string // Push switch of the encoder
	VCC  string // Pin used as supply, driven high
	GND  string // Pin used as ground, driven low
	Mode string // Separate button that cycles the step size
}

// Settings is the raw configuration of one encoder. Scalars are kept as
// literals and only interpreted once the type is known, see Resolve.
type Settings struct {
	Name       string
	Pins       PinSettings
	Type       string        // "uint", "int", "u8", "u16", "u32", "u64", "f32"
	Side       string        // "cw" or "ccw"
	Policy     string        // "clamp" or "wrap"
	Initial    json.Number   // Starting value
	Min        json.Number   // Lower bound
	Max        json.Number   // Upper bound
	Steps      []json.Number // Step sizes cycled by the mode button, first is the default
	DebounceUS uint32        // Minimum time between accepted clock edges
	PollUS     uint32        // Poll loop period
}

// LoadConfig parses a JSON configuration and returns Settings
func LoadConfig(jsonData []byte) (*Settings, error) {
	var s Settings

	err := json.Unmarshal(jsonData, &s)
	if err != nil {
		return nil, err
	}

	// Apply defaults
	applyDefaults(&s)

	return &s, nil
}

// LoadConfigFile reads a JSON configuration file
func LoadConfigFile(path string) (*Settings, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("config: %w", err)
	}
	s, err := LoadConfig(data)
	if err != nil {
		return nil, fmt.Errorf("config %s: %w", path, err)
	}
	return s, nil
}

// applyDefaults fills in missing configuration values with sensible defaults
func applyDefaults(s *Settings) {
	if s.Name == "" {
		s.Name = "encoder"
	}
	if s.Type == "" {
		s.Type = "u32"
	}
	if s.Side == "" {
		s.Side = "cw"
	}
	if s.Policy == "" {
		s.Policy = "clamp"
	}
	if s.Initial == "" {
		s.Initial = s.Min
	}
	if s.Initial == "" {
		s.Initial = "0"
	}
	if s.Min == "" {
		s.Min = "0"
	}
	if s.Max == "" {
		s.Max = "100"
	}
	if len(s.Steps) == 0 {
		s.Steps = []json.Number{"1"}
	}

	// Timing
	if s.DebounceUS == 0 {
		s.DebounceUS = 3000 // 3 ms, typical detent encoder
	}
	if s.PollUS == 0 {
		s.PollUS = 500
	}
}

// DefaultSettings returns the configuration of a KY-040 style module on a
// Raspberry Pi Pico: CLK on GP2, DT on GP3, SW on GP4, mode button on GP5.
func DefaultSettings() *Settings {
	return &Settings{
		Name: "knob",
		Pins: PinSettings{
			CLK:  "gpio2",
			DT:   "gpio3",
			SW:   "gpio4",
			Mode: "gpio5",
		},
		Type:       "u32",
		Side:       "cw",
		Policy:     "clamp",
		Initial:    "100",
		Min:        "0",
		Max:        "1000",
		Steps:      []json.Number{"1", "10", "100"},
		DebounceUS: 3000,
		PollUS:     500,
	}
}
