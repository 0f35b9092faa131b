//go:build linux

// Command encoder-run runs the regulation engine on a Linux board through
// sysfs GPIO and prints a report line to stdout for every event.
package main

import (
	"context"
	"flag"
	"log"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"encoderctl/config"
	"encoderctl/core"
	"encoderctl/encoder"
	"encoderctl/host/sysfs"
	"encoderctl/protocol"
)

var (
	configFile = flag.String("config", "encoder.conf", "Configuration file (.json or INI)")
	section    = flag.String("section", "knob", "INI section describing the encoder")
	sysfsBase  = flag.String("sysfs", sysfs.DefaultBase, "sysfs GPIO class directory")
	bounces    = flag.Bool("bounces", false, "Also report edges dropped by the debounce gate")
	debug      = flag.Bool("debug", false, "Log engine debug output and dump the event ring on exit")
)

func loadSettings() (*config.Settings, error) {
	if filepath.Ext(*configFile) == ".json" {
		return config.LoadConfigFile(*configFile)
	}
	return config.LoadINI(*configFile, *section)
}

func main() {
	flag.Parse()
	log.SetPrefix("encoder-run: ")

	settings, err := loadSettings()
	if err != nil {
		log.Fatalf("%v", err)
	}
	cfg, err := settings.Resolve()
	if err != nil {
		log.Fatalf("%v", err)
	}

	if *debug {
		core.SetDebugWriter(func(s string) { log.Print(s) })
		core.SetDebugEnabled(true)
	}
	drv := sysfs.New(*sysfsBase)
	defer drv.Close()
	core.SetGPIODriver(drv)
	core.SyncHostTime()
	core.TimerInit()

	enc, err := encoder.New(cfg.Pins)
	if err != nil {
		log.Fatalf("%v", err)
	}
	enc.SetDebounce(cfg.Debounce)

	steps := encoder.NewStepCycle(cfg.Steps)
	target, err := encoder.NewTarget(cfg.Initial, steps.Current(), cfg.Min, cfg.Max)
	if err != nil {
		log.Fatalf("%v", err)
	}
	var mode *core.Button
	if cfg.Mode.Valid() {
		if mode, err = core.NewButton(cfg.Mode, core.PullUp); err != nil {
			log.Fatalf("%v", err)
		}
	}
	reset := enc.Button()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	log.Printf("%s: %s in [%v, %v], %s, poll %v", cfg.Name, cfg.Kind, cfg.Min, cfg.Max, cfg.Policy, cfg.Poll)
	line := protocol.NewLineBuffer()
	var seq uint32
	emit := func(ev encoder.Event) {
		os.Stdout.Write(line.Report(protocol.Report{
			Seq:   seq,
			Kind:  target.Kind(),
			Value: target.Value(),
			Step:  target.Step(),
			Event: ev,
		}))
		seq++
	}

	ticker := time.NewTicker(cfg.Poll)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			if *debug {
				core.DumpEventRing()
			}
			return
		case <-ticker.C:
		}
		core.SyncHostTime()

		ev := target.Poll(enc, cfg.Side, cfg.Policy)
		if ev.Stepped() || (*bounces && ev == encoder.EventBounce) {
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
	}
}
