package config

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/aamcrae/config"
)

// FromSection reads the settings of one encoder from a config file section.
// Only clk and dt are required; everything else falls back to the defaults
// of LoadConfig. Comments must start the line. Sample config:
//
//	# name of the encoder
//	[knob]
//	clk=gpio17
//	dt=gpio18
//	# push switch and step cycle button, both optional
//	sw=gpio27
//	mode=gpio22
//	type=u16
//	# clockwise increases
//	side=cw
//	policy=wrap
//	initial=50
//	min=0
//	max=359
//	# step sizes cycled by the mode button
//	steps=1,5,45
//	debounce=3ms
//	poll=500us
func FromSection(conf *config.Config, name string) (*Settings, error) {
	sect := conf.GetSection(name)
	if sect == nil {
		return nil, fmt.Errorf("no config for %s", name)
	}
	s := &Settings{Name: name}

	strs := []struct {
		key string
		dst *string
	}{
		{"clk", &s.Pins.CLK},
		{"dt", &s.Pins.DT},
		{"sw", &s.Pins.SW},
		{"vcc", &s.Pins.VCC},
		{"gnd", &s.Pins.GND},
		{"mode", &s.Pins.Mode},
		{"type", &s.Type},
		{"side", &s.Side},
		{"policy", &s.Policy},
	}
	nums := []struct {
		key string
		dst *json.Number
	}{
		{"initial", &s.Initial},
		{"min", &s.Min},
		{"max", &s.Max},
	}
	var err error
	for _, f := range strs {
		if *f.dst, err = optional(sect, f.key); err != nil {
			return nil, fmt.Errorf("%s: %w", name, err)
		}
	}
	if s.Pins.CLK == "" || s.Pins.DT == "" {
		return nil, fmt.Errorf("%s: clk and dt are required", name)
	}
	for _, f := range nums {
		v, err := optional(sect, f.key)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", name, err)
		}
		*f.dst = json.Number(v)
	}
	if s.Steps, err = steps(sect); err != nil {
		return nil, fmt.Errorf("%s: %w", name, err)
	}

	if s.DebounceUS, err = durationUS(sect, "debounce"); err != nil {
		return nil, fmt.Errorf("%s: %w", name, err)
	}
	if s.PollUS, err = durationUS(sect, "poll"); err != nil {
		return nil, fmt.Errorf("%s: %w", name, err)
	}

	applyDefaults(s)
	return s, nil
}

// LoadINI parses file and reads the named section
func LoadINI(file, name string) (*Settings, error) {
	conf, err := config.ParseFile(file)
	if err != nil {
		return nil, fmt.Errorf("config %s: %w", file, err)
	}
	return FromSection(conf, name)
}

// optional returns the single value of key, or "" when key is absent.
// A key given twice or with more than one token is an error.
func optional(sect *config.Section, key string) (string, error) {
	if !sect.Has(key) {
		return "", nil
	}
	return sect.GetArg(key)
}

// steps reads the step list, which the parser has already split on commas
// and spaces.
func steps(sect *config.Section) ([]json.Number, error) {
	if !sect.Has("steps") {
		return nil, nil
	}
	entries := sect.Get("steps")
	if len(entries) != 1 {
		return nil, fmt.Errorf("steps given %d times", len(entries))
	}
	if len(entries[0].Tokens) == 0 {
		return nil, fmt.Errorf("steps: no values")
	}
	var out []json.Number
	for _, tok := range entries[0].Tokens {
		out = append(out, json.Number(tok))
	}
	return out, nil
}

func durationUS(sect *config.Section, key string) (uint32, error) {
	v, err := optional(sect, key)
	if err != nil || v == "" {
		return 0, err
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		return 0, fmt.Errorf("%s: %v", key, err)
	}
	if d <= 0 || d.Microseconds() > int64(^uint32(0)) {
		return 0, fmt.Errorf("%s: %v out of range", key, d)
	}
	return uint32(d.Microseconds()), nil
}
