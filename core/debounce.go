package core

// DefaultDebounceUS is the quiet time required between two accepted rotation
// edges of a mechanical encoder.
const DefaultDebounceUS = 3000

// Debounce is a self-resetting time gate. It reports ready at most once per
// interval, measured from the last time it reported ready.
//
// A Debounce is single-writer: it must only be used from the polling loop
// that owns it.
type Debounce struct {
	last   uint32 // Tick count of the last accepted request
	opened bool   // Set once the gate has accepted a request
}

// TryAccept returns true when at least interval ticks have elapsed since the
// previous accepted request, and restarts the window. A fresh gate accepts
// its first request. Rejected requests leave the window unchanged.
func (d *Debounce) TryAccept(interval uint32) bool {
	now := GetTime()
	if d.opened && now-d.last < interval {
		return false
	}
	d.last = now
	d.opened = true
	return true
}

// Reset returns the gate to its initial state.
func (d *Debounce) Reset() {
	d.last = 0
	d.opened = false
}
