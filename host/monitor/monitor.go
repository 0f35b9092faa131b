// Package monitor consumes the report lines of an encoder firmware, keeps
// the latest state and fans it out to subscribers and a telemetry sink.
package monitor

import (
	"bufio"
	"context"
	"errors"
	"io"
	"log"
	"sync"
	"time"

	"encoderctl/encoder"
	"encoderctl/protocol"
)

// Sample is one decoded report
type Sample struct {
	Seq   uint32    `json:"seq"`
	Type  string    `json:"type"`
	Value string    `json:"value"`
	Step  string    `json:"step"`
	Event string    `json:"event"`
	Time  time.Time `json:"time"`
}

func sampleOf(r protocol.Report, at time.Time) Sample {
	return Sample{
		Seq:   r.Seq,
		Type:  r.Kind.String(),
		Value: r.Value.String(),
		Step:  r.Step.String(),
		Event: r.Event.String(),
		Time:  at,
	}
}

// Status is the latest sample plus line counters
type Status struct {
	Last           *Sample `json:"last,omitempty"`
	Reports        uint64  `json:"reports"`
	Increases      uint64  `json:"increases"`
	Decreases      uint64  `json:"decreases"`
	Bounces        uint64  `json:"bounces"`
	Missed         uint64  `json:"missed"` // Reports lost according to seq gaps
	ChecksumErrors uint64  `json:"checksum_errors"`
	Malformed      uint64  `json:"malformed"`
}

// Sink receives every valid report, e.g. to store it in a time series DB
type Sink interface {
	WriteReport(r protocol.Report, at time.Time)
}

// Monitor tracks the reports of one encoder
type Monitor struct {
	sink Sink
	now  func() time.Time

	mu     sync.Mutex
	status Status
	subs   map[chan Sample]struct{}
}

// New creates a Monitor. sink may be nil.
func New(sink Sink) *Monitor {
	return &Monitor{
		sink: sink,
		now:  time.Now,
		subs: make(map[chan Sample]struct{}),
	}
}

// Run reads report lines from r until EOF or until ctx is done. Lines that
// fail to parse are counted and skipped. Cancellation is noticed between
// lines, so r should be closed by the caller to stop a blocked read.
func (m *Monitor) Run(ctx context.Context, r io.Reader) error {
	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		if err := ctx.Err(); err != nil {
			return err
		}
		if err := m.Handle(scanner.Text()); err != nil {
			log.Printf("monitor: %v", err)
		}
	}
	if err := ctx.Err(); err != nil {
		return err
	}
	return scanner.Err()
}

// Handle processes one line
func (m *Monitor) Handle(line string) error {
	if line == "" {
		return nil
	}
	r, err := protocol.ParseReport(line)
	at := m.now()

	m.mu.Lock()
	if err != nil {
		if errors.Is(err, protocol.ErrChecksum) {
			m.status.ChecksumErrors++
		} else {
			m.status.Malformed++
		}
		m.mu.Unlock()
		return err
	}

	st := &m.status
	if st.Last != nil {
		if gap := r.Seq - st.Last.Seq - 1; gap != 0 && gap < 1<<31 {
			st.Missed += uint64(gap)
		}
	}
	st.Reports++
	switch r.Event {
	case encoder.EventIncrease:
		st.Increases++
	case encoder.EventDecrease:
		st.Decreases++
	case encoder.EventBounce:
		st.Bounces++
	}
	s := sampleOf(r, at)
	st.Last = &s

	for ch := range m.subs {
		select {
		case ch <- s:
		default:
			// Slow subscriber, drop
		}
	}
	m.mu.Unlock()

	if m.sink != nil {
		m.sink.WriteReport(r, at)
	}
	return nil
}

// Status returns a copy of the current state
func (m *Monitor) Status() Status {
	m.mu.Lock()
	defer m.mu.Unlock()
	st := m.status
	if st.Last != nil {
		last := *st.Last
		st.Last = &last
	}
	return st
}

// Subscribe returns a channel receiving every new sample. Samples are
// dropped when the channel is full. The returned function unsubscribes
// and closes the channel.
func (m *Monitor) Subscribe(buffer int) (<-chan Sample, func()) {
	ch := make(chan Sample, buffer)
	m.mu.Lock()
	m.subs[ch] = struct{}{}
	m.mu.Unlock()

	var once sync.Once
	return ch, func() {
		once.Do(func() {
			m.mu.Lock()
			delete(m.subs, ch)
			m.mu.Unlock()
			close(ch)
		})
	}
}
