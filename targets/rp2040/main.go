//go:build rp2040 || rp2350

package main

import (
	_ "embed"
	"machine"
	"time"

	"encoderctl/config"
	"encoderctl/core"
	"encoderctl/encoder"
	"encoderctl/protocol"
)

//go:embed encoder.json
var configJSON []byte

var (
	// Output line for the current report
	line = protocol.NewLineBuffer()
	seq  uint32

	// Debug counters
	reportsSent uint32
	msgerrors   uint32

	// USB connection state tracking
	usbWasDisconnected       bool
	consecutiveWriteFailures uint32
)

func main() {
	// Disable watchdog on boot to clear any previous state
	err := machine.Watchdog.Configure(machine.WatchdogConfig{TimeoutMillis: 0})
	if err != nil {
		return
	}

	InitUSB()
	InitDebugUART()
	InitClock()

	gpioDriver := NewRPGPIODriver()
	core.SetGPIODriver(gpioDriver)

	cfg, err := loadConfig()
	if err != nil {
		halt("config: " + err.Error())
	}

	enc, err := encoder.New(cfg.Pins)
	if err != nil {
		halt(err.Error())
	}
	enc.SetDebounce(cfg.Debounce)

	steps := encoder.NewStepCycle(cfg.Steps)
	target, err := encoder.NewTarget(cfg.Initial, steps.Current(), cfg.Min, cfg.Max)
	if err != nil {
		halt(err.Error())
	}
	var mode *core.Button
	if cfg.Mode.Valid() {
		if mode, err = core.NewButton(cfg.Mode, core.PullUp); err != nil {
			halt(err.Error())
		}
	}
	reset := enc.Button()
	pollTicks := core.TimerFromDuration(cfg.Poll)

	emit := func(ev encoder.Event) {
		writeUSB(line.Report(protocol.Report{
			Seq:   seq,
			Kind:  target.Kind(),
			Value: target.Value(),
			Step:  target.Step(),
			Event: ev,
		}))
		seq++
	}
	emit(encoder.EventNone)

	lastPoll := core.GetTime()
	for {
		// Recover from panics in the main loop to prevent a firmware crash
		func() {
			defer func() {
				if r := recover(); r != nil {
					msgerrors++
					core.DumpEventRing()
					line.Reset()
				}
			}()

			// Update system time from hardware
			UpdateSystemTime()
			if core.Elapsed(lastPoll) < pollTicks {
				return
			}
			lastPoll = core.GetTime()

			ev := target.Poll(enc, cfg.Side, cfg.Policy)
			if ev.Stepped() {
				emit(ev)
			}
			if mode != nil && mode.Update() {
				core.RecordEvent(core.EvtPress, 0, 1, 0)
				target.SetStep(steps.Next())
				emit(encoder.EventNone)
			}
			if reset != nil && reset.Update() {
				core.RecordEvent(core.EvtPress, 0, 0, 0)
				target.SetValue(cfg.Initial)
				emit(encoder.EventNone)
			}
		}()

		// Yield to other goroutines
		time.Sleep(50 * time.Microsecond)
	}
}

// loadConfig reads the embedded settings
func loadConfig() (*config.Resolved, error) {
	settings, err := config.LoadConfig(configJSON)
	if err != nil {
		return nil, err
	}
	return settings.Resolve()
}

// halt reports a fatal setup error on the debug UART forever
func halt(msg string) {
	for {
		DebugPrintln("FATAL: " + msg)
		time.Sleep(time.Second)
	}
}

// writeUSB writes one report line to USB. Lines that cannot be written are
// dropped; the host sees the gap in the sequence numbers.
func writeUSB(data []byte) {
	written := 0
	for written < len(data) {
		n, err := USBWriteBytes(data[written:])
		if err != nil || n == 0 {
			// Write error or no progress - likely disconnect
			consecutiveWriteFailures++
			if consecutiveWriteFailures > 10 {
				usbWasDisconnected = true
				consecutiveWriteFailures = 0
			}
			return
		}
		written += n
	}
	if usbWasDisconnected {
		usbWasDisconnected = false
		DebugPrintln("usb reconnected")
	}
	consecutiveWriteFailures = 0
	reportsSent++
}
