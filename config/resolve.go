package config

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"encoderctl/core"
	"encoderctl/encoder"
)

// Resolved is a validated configuration with every literal converted
type Resolved struct {
	Name     string
	Pins     encoder.Pins
	Mode     core.GPIOPin // Step cycle button, PinNone if absent
	Kind     encoder.Kind
	Side     encoder.Side
	Policy   encoder.Policy
	Initial  encoder.Value
	Min      encoder.Value
	Max      encoder.Value
	Steps    []encoder.Value
	Debounce uint32        // Ticks
	Poll     time.Duration // Loop period
}

// ParsePin accepts "gpio17", "GP17", "17" and "" (not connected)
func ParsePin(s string) (core.GPIOPin, error) {
	s = strings.TrimSpace(strings.ToLower(s))
	if s == "" || s == "none" || s == "-" {
		return core.PinNone, nil
	}
	num := strings.TrimPrefix(strings.TrimPrefix(s, "gpio"), "gp")
	n, err := strconv.ParseUint(num, 10, 16)
	if err != nil {
		return core.PinNone, fmt.Errorf("invalid pin %q", s)
	}
	return core.GPIOPin(n), nil
}

// Resolve validates the settings and converts every literal to the
// configured type.
func (s *Settings) Resolve() (*Resolved, error) {
	r := &Resolved{Name: s.Name}
	var err error

	pins := []struct {
		name string
		raw  string
		dst  *core.GPIOPin
	}{
		{"clk", s.Pins.CLK, &r.Pins.CLK},
		{"dt", s.Pins.DT, &r.Pins.DT},
		{"sw", s.Pins.SW, &r.Pins.SW},
		{"vcc", s.Pins.VCC, &r.Pins.VCC},
		{"gnd", s.Pins.GND, &r.Pins.GND},
		{"mode", s.Pins.Mode, &r.Mode},
	}
	used := make(map[core.GPIOPin]string)
	for _, p := range pins {
		if *p.dst, err = ParsePin(p.raw); err != nil {
			return nil, fmt.Errorf("%s: pin %s: %w", s.Name, p.name, err)
		}
		if !p.dst.Valid() {
			continue
		}
		if other, dup := used[*p.dst]; dup {
			return nil, fmt.Errorf("%s: pin %d used for both %s and %s", s.Name, *p.dst, other, p.name)
		}
		used[*p.dst] = p.name
	}
	if !r.Pins.CLK.Valid() || !r.Pins.DT.Valid() {
		return nil, fmt.Errorf("%s: clk and dt pins are required", s.Name)
	}

	if r.Kind, err = encoder.ParseKind(s.Type); err != nil {
		return nil, fmt.Errorf("%s: %w", s.Name, err)
	}
	if r.Side, err = encoder.ParseSide(s.Side); err != nil {
		return nil, fmt.Errorf("%s: %w", s.Name, err)
	}
	if r.Policy, err = encoder.ParsePolicy(s.Policy); err != nil {
		return nil, fmt.Errorf("%s: %w", s.Name, err)
	}

	if r.Initial, err = encoder.ParseValue(r.Kind, s.Initial.String()); err != nil {
		return nil, fmt.Errorf("%s: initial: %w", s.Name, err)
	}
	if r.Min, err = encoder.ParseValue(r.Kind, s.Min.String()); err != nil {
		return nil, fmt.Errorf("%s: min: %w", s.Name, err)
	}
	if r.Max, err = encoder.ParseValue(r.Kind, s.Max.String()); err != nil {
		return nil, fmt.Errorf("%s: max: %w", s.Name, err)
	}
	if len(s.Steps) == 0 {
		return nil, fmt.Errorf("%s: no step sizes", s.Name)
	}
	for i, lit := range s.Steps {
		v, err := encoder.ParseValue(r.Kind, lit.String())
		if err != nil {
			return nil, fmt.Errorf("%s: step %d: %w", s.Name, i, err)
		}
		r.Steps = append(r.Steps, v)
	}

	r.Debounce = core.TimerFromUS(s.DebounceUS)
	r.Poll = time.Duration(s.PollUS) * time.Microsecond
	if r.Poll <= 0 {
		return nil, fmt.Errorf("%s: poll interval must be positive", s.Name)
	}
	return r, nil
}

// Validate reports whether Resolve would succeed
func (s *Settings) Validate() error {
	_, err := s.Resolve()
	return err
}
