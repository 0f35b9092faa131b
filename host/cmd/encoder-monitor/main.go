// Command encoder-monitor reads the report lines of an encoder firmware from
// a serial port and serves the state over HTTP and websocket.
package main

import (
	"context"
	"flag"
	"log"
	"os"
	"os/signal"
	"syscall"

	"encoderctl/host/monitor"
	"encoderctl/host/serial"
)

var (
	device       = flag.String("device", "/dev/ttyACM0", "Serial device path")
	baud         = flag.Int("baud", 115200, "Baud rate (ignored for USB CDC)")
	listen       = flag.String("listen", "127.0.0.1:8503", "HTTP listen address")
	name         = flag.String("name", "knob", "Encoder name used as telemetry tag")
	influxServer = flag.String("influx-url", "", "InfluxDB server, empty disables telemetry")
	influxOrg    = flag.String("influx-org", "encoderctl", "InfluxDB organization")
	influxBucket = flag.String("influx-bucket", "encoder.raw", "InfluxDB bucket")
)

func main() {
	flag.Parse()
	log.SetPrefix("encoder-monitor: ")

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cfg := serial.DefaultConfig(*device)
	cfg.Baud = *baud
	port, err := serial.Open(cfg)
	if err != nil {
		log.Fatalf("%v", err)
	}
	go func() {
		<-ctx.Done()
		port.Close()
	}()

	var sink monitor.Sink
	if *influxServer != "" {
		influx := monitor.NewInfluxSink(*influxServer, os.Getenv("INFLUX_TOKEN"), *influxOrg, *influxBucket, *name)
		defer influx.Close()
		sink = influx
	}

	m := monitor.New(sink)
	srv := monitor.NewServer(m)
	go func() {
		log.Printf("serving on http://%s/api/status", *listen)
		if err := srv.ListenAndServe(ctx, *listen); err != nil {
			log.Printf("http: %v", err)
			stop()
		}
	}()

	log.Printf("reading reports from %s", *device)
	if err := m.Run(ctx, port); err != nil && ctx.Err() == nil {
		log.Printf("read: %v", err)
	}
	st := m.Status()
	log.Printf("%d reports, %d missed, %d checksum errors, %d malformed",
		st.Reports, st.Missed, st.ChecksumErrors, st.Malformed)
}
