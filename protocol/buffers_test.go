package protocol

import (
	"testing"

	"encoderctl/encoder"
)

func TestLineBuffer(t *testing.T) {
	buf := NewLineBuffer()

	buf.Output([]byte("abc"))
	if buf.CurPosition() != 3 {
		t.Errorf("Expected position 3, got %d", buf.CurPosition())
	}
	buf.Output([]byte("de"))
	if string(buf.Result()) != "abcde" {
		t.Errorf("Expected abcde, got %q", buf.Result())
	}

	buf.Reset()
	if buf.CurPosition() != 0 {
		t.Errorf("After reset, expected position 0, got %d", buf.CurPosition())
	}

	r := Report{
		Seq:   9,
		Kind:  encoder.KindUint16,
		Value: encoder.Uint16Value(300),
		Step:  encoder.Uint16Value(10),
		Event: encoder.EventDecrease,
	}
	line := buf.Report(r)
	if string(line) != r.String() {
		t.Errorf("Expected %q, got %q", r.String(), line)
	}
	if &line[0] != &buf.buf[0] {
		t.Errorf("Expected the line to be built in the scratch buffer")
	}
	if buf.CurPosition() != len(line) {
		t.Errorf("Expected position %d, got %d", len(line), buf.CurPosition())
	}
}

func TestLineBufferOverflow(t *testing.T) {
	buf := NewLineBuffer()
	big := make([]byte, LineMax+10)
	buf.Output(big)
	if buf.CurPosition() != LineMax {
		t.Errorf("Expected output capped at %d, got %d", LineMax, buf.CurPosition())
	}
}
