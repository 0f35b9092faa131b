package protocol

// LineBuffer assembles report lines in a fixed scratch buffer so the
// firmware loop does not allocate.
type LineBuffer struct {
	buf [LineMax]byte
	pos int
}

// NewLineBuffer creates an empty LineBuffer
func NewLineBuffer() *LineBuffer {
	return &LineBuffer{pos: 0}
}

// Output appends data, dropping whatever does not fit
func (l *LineBuffer) Output(data []byte) {
	n := copy(l.buf[l.pos:], data)
	l.pos += n
}

// Report replaces the contents with the line for r and returns it.
// The returned slice is only valid until the next call.
func (l *LineBuffer) Report(r Report) []byte {
	out := AppendReport(l.buf[:0], r)
	if len(out) > LineMax {
		// Did not fit, out is a fresh allocation
		l.pos = 0
		return out
	}
	l.pos = len(out)
	return l.buf[:l.pos]
}

// CurPosition returns the current write position
func (l *LineBuffer) CurPosition() int {
	return l.pos
}

// Result returns the accumulated data
func (l *LineBuffer) Result() []byte {
	return l.buf[:l.pos]
}

// Reset clears the buffer
func (l *LineBuffer) Reset() {
	l.pos = 0
}
