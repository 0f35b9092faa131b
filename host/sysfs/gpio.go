//go:build linux

// Package sysfs drives GPIO lines through the Linux /sys/class/gpio
// interface so the encoder engine can run on a single board computer.
package sysfs

import (
	"fmt"
	"os"
	"os/user"
	"path/filepath"
	"strconv"
	"sync"
	"time"

	"golang.org/x/sys/unix"

	"encoderctl/core"
)

// DefaultBase is the sysfs GPIO class directory
const DefaultBase = "/sys/class/gpio"

const verifyTimeout = 2 * time.Second

type direction uint8

const (
	dirIn direction = iota
	dirOut
)

// line is one exported GPIO
type line struct {
	value *os.File
	dir   direction
	buf   [1]byte
}

// Driver implements core.GPIODriver on sysfs.
//
// sysfs cannot select bias resistors, so the Pull argument of
// ConfigureInput is accepted and ignored; pull-ups have to be set by the
// device tree or fitted on the board.
type Driver struct {
	// Verify waits for exported files to become writable. udev changes the
	// group permissions of freshly exported lines a little after the export,
	// which non-root processes have to wait for.
	Verify bool

	base  string
	mu    sync.Mutex
	lines map[core.GPIOPin]*line
}

// New returns a driver rooted at base, usually DefaultBase.
func New(base string) *Driver {
	d := &Driver{
		base:  base,
		lines: make(map[core.GPIOPin]*line),
	}
	if u, err := user.Current(); err == nil && u.Uid != "0" {
		d.Verify = true
	}
	return d
}

func (d *Driver) pinDir(pin core.GPIOPin) string {
	return filepath.Join(d.base, "gpio"+strconv.FormatUint(uint64(pin), 10))
}

// open exports pin if needed and opens its value file
func (d *Driver) open(pin core.GPIOPin) (*line, error) {
	if l, ok := d.lines[pin]; ok {
		return l, nil
	}
	if !pin.Valid() {
		return nil, fmt.Errorf("sysfs: invalid pin")
	}
	val := filepath.Join(d.pinDir(pin), "value")
	if err := d.export(pin, val); err != nil {
		return nil, fmt.Errorf("gpio%d: export: %w", pin, err)
	}
	f, err := os.OpenFile(val, os.O_RDWR, 0600)
	if err != nil {
		d.unexport(pin)
		return nil, fmt.Errorf("gpio%d: %w", pin, err)
	}
	l := &line{value: f}
	d.lines[pin] = l
	return l, nil
}

func (d *Driver) setDirection(pin core.GPIOPin, l *line, dir direction) error {
	s := "in"
	if dir == dirOut {
		s = "out"
	}
	if err := writeFile(filepath.Join(d.pinDir(pin), "direction"), s); err != nil {
		return fmt.Errorf("gpio%d: direction: %w", pin, err)
	}
	l.dir = dir
	return nil
}

// ConfigureInput exports pin as an input
func (d *Driver) ConfigureInput(pin core.GPIOPin, pull core.Pull) error {
	d.mu.Lock()
	defer d.mu.Unlock()
	l, err := d.open(pin)
	if err != nil {
		return err
	}
	return d.setDirection(pin, l, dirIn)
}

// ConfigureOutput exports pin as an output
func (d *Driver) ConfigureOutput(pin core.GPIOPin) error {
	d.mu.Lock()
	defer d.mu.Unlock()
	l, err := d.open(pin)
	if err != nil {
		return err
	}
	return d.setDirection(pin, l, dirOut)
}

// SetPin writes an output level
func (d *Driver) SetPin(pin core.GPIOPin, value bool) error {
	d.mu.Lock()
	defer d.mu.Unlock()
	l, ok := d.lines[pin]
	if !ok {
		return fmt.Errorf("gpio%d: not configured", pin)
	}
	if l.dir != dirOut {
		return fmt.Errorf("gpio%d: is not output", pin)
	}
	l.buf[0] = '0'
	if value {
		l.buf[0] = '1'
	}
	_, err := l.value.WriteAt(l.buf[:], 0)
	return err
}

// ReadPin returns the level of a configured pin. Unconfigured pins and
// read errors read as low.
func (d *Driver) ReadPin(pin core.GPIOPin) bool {
	d.mu.Lock()
	defer d.mu.Unlock()
	l, ok := d.lines[pin]
	if !ok {
		return false
	}
	if _, err := l.value.ReadAt(l.buf[:], 0); err != nil {
		core.DebugPrintln("sysfs: gpio" + strconv.FormatUint(uint64(pin), 10) + ": " + err.Error())
		return false
	}
	return l.buf[0] == '1'
}

// Close releases and unexports every configured pin
func (d *Driver) Close() error {
	d.mu.Lock()
	defer d.mu.Unlock()
	var first error
	for pin, l := range d.lines {
		l.value.Close()
		if err := d.unexport(pin); err != nil && first == nil {
			first = fmt.Errorf("gpio%d: unexport: %w", pin, err)
		}
		delete(d.lines, pin)
	}
	return first
}

func (d *Driver) unexport(pin core.GPIOPin) error {
	return writeFile(filepath.Join(d.base, "unexport"), strconv.FormatUint(uint64(pin), 10))
}

// export writes the pin number to the export file unless the value file is
// already accessible, then optionally waits for it to become writable.
func (d *Driver) export(pin core.GPIOPin, val string) error {
	if err := unix.Access(val, unix.W_OK|unix.R_OK); err == nil {
		return nil
	}
	err := writeFile(filepath.Join(d.base, "export"), strconv.FormatUint(uint64(pin), 10))
	if err == nil && d.Verify {
		return verifyFile(val)
	}
	return err
}

func writeFile(fname, s string) error {
	f, err := os.OpenFile(fname, os.O_WRONLY, 0600)
	if err != nil {
		return err
	}
	defer f.Close()
	_, err = f.Write([]byte(s))
	return err
}

// Wait for file to become writable
func verifyFile(f string) error {
	sl := time.Millisecond
	for tout := time.Duration(0); tout < verifyTimeout; tout += sl {
		if err := unix.Access(f, unix.W_OK); err == nil {
			return nil
		}
		time.Sleep(sl)
	}
	return fmt.Errorf("%s: not writable", f)
}

var _ core.GPIODriver = (*Driver)(nil)
