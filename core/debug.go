package core

// DebugWriter is a function type for writing debug messages
type DebugWriter func(string)

// Event captures an encoder event for post-mortem analysis
type Event struct {
	EventType uint8  // Event type code
	Unit      uint8  // Encoder instance
	Clock     uint32 // System clock at event
	Value1    uint32 // Context-dependent value
	Value2    uint32 // Context-dependent value
}

// Event type codes
const (
	EvtEdge    = 1 // Rising clock edge detected
	EvtBounce  = 2 // Edge dropped by the debounce gate
	EvtStep    = 3 // Step applied (Value1: direction, Value2: low bits of new value)
	EvtResync  = 4 // Register reloaded from caller (Value1: kind)
	EvtNoop    = 5 // Poll ignored (unset lines or bad references)
	EvtPress   = 6 // Button press
	EvtBounded = 7 // Overflow policy moved the value onto a bound
)

const (
	EventRingSize = 32 // Keep last 32 events for post-mortem
)

var (
	// debugPrintln is the global debug print function (can be set by platform code)
	debugPrintln DebugWriter = func(s string) {} // No-op by default

	// debugEnabled controls whether debug output is active
	debugEnabled bool = false

	// Event capture ring buffer (non-blocking, for post-mortem)
	eventRing     [EventRingSize]Event
	eventRingHead uint8        // Next write position
	eventsEnabled bool  = true // Always capture events
)

// SetDebugWriter sets the platform-specific debug output function
// This allows platforms to redirect debug output to UART, USB, etc.
func SetDebugWriter(writer DebugWriter) {
	debugPrintln = writer
}

// SetDebugEnabled enables or disables debug output
func SetDebugEnabled(enabled bool) {
	debugEnabled = enabled
}

// IsDebugEnabled returns whether debug output is enabled
func IsDebugEnabled() bool {
	return debugEnabled
}

// DebugPrintln writes a debug message using the platform-specific writer
func DebugPrintln(msg string) {
	if debugEnabled && debugPrintln != nil {
		debugPrintln(msg)
	}
}

// SetEventsEnabled turns event capture on or off
func SetEventsEnabled(enabled bool) {
	eventsEnabled = enabled
}

// RecordEvent captures an event in the ring buffer
// This is always non-blocking
func RecordEvent(eventType, unit uint8, value1, value2 uint32) {
	if !eventsEnabled {
		return
	}
	idx := eventRingHead
	eventRing[idx] = Event{
		EventType: eventType,
		Unit:      unit,
		Clock:     GetTime(),
		Value1:    value1,
		Value2:    value2,
	}
	eventRingHead = (idx + 1) % EventRingSize
}

// Events returns the captured events, oldest first.
func Events() []Event {
	out := make([]Event, 0, EventRingSize)
	start := eventRingHead
	for i := uint8(0); i < EventRingSize; i++ {
		evt := eventRing[(start+i)%EventRingSize]
		if evt.EventType == 0 {
			continue // Empty slot
		}
		out = append(out, evt)
	}
	return out
}

// EventName returns the printable name of an event type
func EventName(eventType uint8) string {
	switch eventType {
	case EvtEdge:
		return "EDGE"
	case EvtBounce:
		return "BOUNCE"
	case EvtStep:
		return "STEP"
	case EvtResync:
		return "RESYNC"
	case EvtNoop:
		return "NOOP"
	case EvtPress:
		return "PRESS"
	case EvtBounded:
		return "BOUNDED"
	default:
		return "UNKNOWN"
	}
}

// DumpEventRing outputs the event ring buffer (call on shutdown/error)
func DumpEventRing() {
	if debugPrintln == nil {
		return
	}

	debugPrintln("[EVENTS] === Event Ring Dump ===")
	for _, evt := range Events() {
		debugPrintln("[EVENTS] " + EventName(evt.EventType) +
			" unit=" + itoa(int(evt.Unit)) +
			" clock=" + utoa(uint64(evt.Clock)) +
			" v1=" + utoa(uint64(evt.Value1)) +
			" v2=" + utoa(uint64(evt.Value2)))
	}
	debugPrintln("[EVENTS] === End Dump ===")
}

// ClearEventRing clears the event buffer
func ClearEventRing() {
	for i := range eventRing {
		eventRing[i] = Event{}
	}
	eventRingHead = 0
}
