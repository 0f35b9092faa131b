package monitor

import (
	"log"
	"time"

	influxdb2 "github.com/influxdata/influxdb-client-go"
	"github.com/influxdata/influxdb-client-go/api"

	"encoderctl/encoder"
	"encoderctl/protocol"
)

// Measurement is the InfluxDB measurement reports are written to
const Measurement = "encoder.report"

// InfluxSink writes reports to InfluxDB through the non-blocking write API
type InfluxSink struct {
	client   influxdb2.Client
	writeApi api.WriteApi
	tags     map[string]string
}

// NewInfluxSink connects to server and logs asynchronous write errors.
// name is attached to every point as the "encoder" tag.
func NewInfluxSink(server, token, org, bucket, name string) *InfluxSink {
	client := influxdb2.NewClient(server, token)
	writeApi := client.WriteApi(org, bucket)
	errorsCh := writeApi.Errors()
	go func() {
		for err := range errorsCh {
			log.Printf("influx write error: %v", err)
		}
	}()
	return &InfluxSink{
		client:   client,
		writeApi: writeApi,
		tags:     map[string]string{"encoder": name},
	}
}

// Fields returns the point fields recorded for a report.
func Fields(r protocol.Report) map[string]interface{} {
	fields := map[string]interface{}{
		"seq":   int64(r.Seq),
		"event": r.Event.String(),
		"type":  r.Kind.String(),
	}
	switch {
	case r.Kind == encoder.KindFloat32:
		fields["value"] = float64(r.Value.Float32())
		fields["step"] = float64(r.Step.Float32())
	case r.Kind == encoder.KindInt:
		fields["value"] = r.Value.Int64()
		fields["step"] = r.Step.Int64()
	default:
		fields["value"] = r.Value.Uint64()
		fields["step"] = r.Step.Uint64()
	}
	return fields
}

// WriteReport queues one point
func (s *InfluxSink) WriteReport(r protocol.Report, at time.Time) {
	p := influxdb2.NewPoint(Measurement, s.tags, Fields(r), at)
	// write asynchronously
	s.writeApi.WritePoint(p)
}

// Close flushes pending points and closes the client
func (s *InfluxSink) Close() {
	s.writeApi.Flush()
	s.writeApi.Close()
	s.client.Close()
}
