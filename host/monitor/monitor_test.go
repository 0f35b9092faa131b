package monitor

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"

	"encoderctl/encoder"
	"encoderctl/protocol"
)

var testTime = time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)

type recordingSink struct {
	reports []protocol.Report
}

func (s *recordingSink) WriteReport(r protocol.Report, at time.Time) {
	s.reports = append(s.reports, r)
}

func newTestMonitor(sink Sink) *Monitor {
	m := New(sink)
	m.now = func() time.Time { return testTime }
	return m
}

func report(seq uint32, value uint32, ev encoder.Event) string {
	return protocol.Report{
		Seq:   seq,
		Kind:  encoder.KindUint32,
		Value: encoder.Uint32Value(value),
		Step:  encoder.Uint32Value(10),
		Event: ev,
	}.String()
}

func TestHandle(t *testing.T) {
	sink := &recordingSink{}
	m := newTestMonitor(sink)

	lines := []string{
		report(1, 110, encoder.EventIncrease),
		report(2, 120, encoder.EventIncrease),
		report(3, 120, encoder.EventBounce),
		report(6, 110, encoder.EventDecrease), // 4 and 5 lost
		strings.Replace(report(7, 100, encoder.EventDecrease), "value=100", "value=900", 1),
		"garbage",
		"",
	}
	for _, l := range lines {
		m.Handle(l)
	}

	want := Status{
		Last: &Sample{
			Seq:   6,
			Type:  "u32",
			Value: "110",
			Step:  "10",
			Event: "down",
			Time:  testTime,
		},
		Reports:        4,
		Increases:      2,
		Decreases:      1,
		Bounces:        1,
		Missed:         2,
		ChecksumErrors: 1,
		Malformed:      1,
	}
	if diff := cmp.Diff(want, m.Status()); diff != "" {
		t.Errorf("Status mismatch (-want +got):\n%s", diff)
	}
	if len(sink.reports) != 4 {
		t.Errorf("Expected 4 reports in the sink, got %d", len(sink.reports))
	}
}

func TestHandleErrors(t *testing.T) {
	m := newTestMonitor(nil)
	bad := strings.Replace(report(1, 5, encoder.EventIncrease), "seq=1", "seq=2", 1)
	if err := m.Handle(bad); !errors.Is(err, protocol.ErrChecksum) {
		t.Errorf("Expected a checksum error, got %v", err)
	}
	if err := m.Handle("enc"); !errors.Is(err, protocol.ErrMalformed) {
		t.Errorf("Expected a malformed error, got %v", err)
	}
	if m.Status().Last != nil {
		t.Errorf("Expected no sample after bad lines")
	}
}

func TestSeqRestart(t *testing.T) {
	m := newTestMonitor(nil)
	m.Handle(report(100, 1, encoder.EventIncrease))
	m.Handle(report(0, 1, encoder.EventNone)) // Firmware restarted
	m.Handle(report(0, 1, encoder.EventNone)) // Repeated line
	if m.Status().Missed != 0 {
		t.Errorf("Expected restarts and repeats not to count as missed, got %d", m.Status().Missed)
	}
}

func TestStatusIsCopy(t *testing.T) {
	m := newTestMonitor(nil)
	m.Handle(report(1, 1, encoder.EventIncrease))
	st := m.Status()
	st.Last.Value = "changed"
	if m.Status().Last.Value != "1" {
		t.Errorf("Status shares its sample with the caller")
	}
}

func TestRun(t *testing.T) {
	m := newTestMonitor(nil)
	input := report(1, 110, encoder.EventIncrease) +
		"noise\r\n" +
		report(2, 120, encoder.EventIncrease)

	if err := m.Run(context.Background(), strings.NewReader(input)); err != nil {
		t.Fatalf("Run failed: %v", err)
	}
	st := m.Status()
	if st.Reports != 2 || st.Malformed != 1 {
		t.Errorf("Expected 2 reports and 1 malformed line, got %+v", st)
	}
}

func TestRunCancelled(t *testing.T) {
	m := newTestMonitor(nil)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	err := m.Run(ctx, strings.NewReader(report(1, 1, encoder.EventIncrease)))
	if !errors.Is(err, context.Canceled) {
		t.Errorf("Expected context.Canceled, got %v", err)
	}
	if m.Status().Reports != 0 {
		t.Errorf("Expected nothing processed after cancel")
	}
}

func TestSubscribe(t *testing.T) {
	m := newTestMonitor(nil)
	ch, unsubscribe := m.Subscribe(1)

	m.Handle(report(1, 110, encoder.EventIncrease))
	m.Handle(report(2, 120, encoder.EventIncrease)) // Dropped, buffer full

	got := <-ch
	if got.Seq != 1 {
		t.Errorf("Expected seq 1, got %d", got.Seq)
	}
	select {
	case s := <-ch:
		t.Errorf("Expected the second sample to be dropped, got %+v", s)
	default:
	}

	unsubscribe()
	unsubscribe()
	if _, ok := <-ch; ok {
		t.Errorf("Expected a closed channel after unsubscribe")
	}
	m.Handle(report(3, 130, encoder.EventIncrease))
}

func TestFields(t *testing.T) {
	testCases := []struct {
		r     protocol.Report
		value interface{}
	}{
		{protocol.Report{Kind: encoder.KindInt, Value: encoder.IntValue(-4), Step: encoder.IntValue(1)}, int64(-4)},
		{protocol.Report{Kind: encoder.KindFloat32, Value: encoder.Float32Value(0.5), Step: encoder.Float32Value(0.5)}, 0.5},
		{protocol.Report{Kind: encoder.KindUint8, Value: encoder.Uint8Value(7), Step: encoder.Uint8Value(1)}, uint64(7)},
	}
	for _, tc := range testCases {
		fields := Fields(tc.r)
		if fields["value"] != tc.value {
			t.Errorf("Expected value %v (%T), got %v (%T)", tc.value, tc.value, fields["value"], fields["value"])
		}
		if fields["type"] != tc.r.Kind.String() {
			t.Errorf("Expected type %s, got %v", tc.r.Kind, fields["type"])
		}
	}
}
