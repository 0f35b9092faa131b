// Package serial opens the USB CDC or UART line an encoder firmware writes
// its report lines to.
package serial

import (
	"errors"
	"fmt"
	"time"

	"github.com/tarm/serial"
)

// DefaultBaud suits UART bridges. USB CDC ports accept any rate.
const DefaultBaud = 115200

// Config selects the device and line settings
type Config struct {
	Device      string
	Baud        int
	ReadTimeout time.Duration // Zero blocks until a byte arrives
}

// DefaultConfig returns a blocking configuration at DefaultBaud
func DefaultConfig(device string) *Config {
	return &Config{Device: device, Baud: DefaultBaud}
}

func (c *Config) validate() error {
	switch {
	case c == nil:
		return errors.New("no serial config")
	case c.Device == "":
		return errors.New("no serial device given")
	case c.Baud <= 0:
		return fmt.Errorf("%s: invalid baud rate %d", c.Device, c.Baud)
	case c.ReadTimeout < 0:
		return fmt.Errorf("%s: negative read timeout", c.Device)
	}
	return nil
}

// Port is an open report line
type Port struct {
	*serial.Port
	device string
}

// Open opens the device in cfg. Bytes queued before the open are
// discarded, so the first read starts near a line boundary.
func Open(cfg *Config) (*Port, error) {
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	p, err := serial.OpenPort(&serial.Config{
		Name:        cfg.Device,
		Baud:        cfg.Baud,
		ReadTimeout: cfg.ReadTimeout,
	})
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", cfg.Device, err)
	}
	if err := p.Flush(); err != nil {
		p.Close()
		return nil, fmt.Errorf("flush %s: %w", cfg.Device, err)
	}
	return &Port{Port: p, device: cfg.Device}, nil
}

// Device returns the path the port was opened on
func (p *Port) Device() string {
	return p.device
}
