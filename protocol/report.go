package protocol

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/google/shlex"

	"encoderctl/encoder"
)

var (
	ErrChecksum  = errors.New("report checksum mismatch")
	ErrMalformed = errors.New("malformed report line")
)

// Report is the state of one encoder after a poll
type Report struct {
	Seq   uint32
	Kind  encoder.Kind
	Value encoder.Value
	Step  encoder.Value
	Event encoder.Event
}

// AppendReport appends the framed line for r, newline included.
// It does not allocate when dst has LineMax bytes of spare capacity.
func AppendReport(dst []byte, r Report) []byte {
	start := len(dst)
	dst = append(dst, ReportTag...)
	dst = append(dst, " seq="...)
	dst = strconv.AppendUint(dst, uint64(r.Seq), 10)
	dst = append(dst, " type="...)
	dst = append(dst, r.Kind.String()...)
	dst = append(dst, " value="...)
	dst = r.Value.AppendText(dst)
	dst = append(dst, " step="...)
	dst = r.Step.AppendText(dst)
	dst = append(dst, " event="...)
	dst = append(dst, r.Event.String()...)
	dst = appendChecksum(dst, CRC16(dst[start:]))
	return append(dst, LineTerminal)
}

func (r Report) String() string {
	return string(AppendReport(nil, r))
}

// ParseReport decodes one line produced by AppendReport. The checksum is
// verified before the fields are looked at.
func ParseReport(line string) (Report, error) {
	line = strings.TrimRight(line, "\r\n")
	sep := strings.LastIndexByte(line, ChecksumSep)
	if sep < 0 {
		return Report{}, fmt.Errorf("%w: no checksum", ErrMalformed)
	}
	want, ok := parseChecksum(line[sep+1:])
	if !ok {
		return Report{}, fmt.Errorf("%w: bad checksum field %q", ErrMalformed, line[sep+1:])
	}
	body := line[:sep]
	if got := CRC16([]byte(body)); got != want {
		return Report{}, fmt.Errorf("%w: got %04x, line says %04x", ErrChecksum, got, want)
	}

	words, err := shlex.Split(body)
	if err != nil {
		return Report{}, fmt.Errorf("%w: %v", ErrMalformed, err)
	}
	if len(words) == 0 || words[0] != ReportTag {
		return Report{}, fmt.Errorf("%w: not an encoder report", ErrMalformed)
	}
	fields := make(map[string]string, len(words)-1)
	for _, w := range words[1:] {
		k, v, found := strings.Cut(w, "=")
		if !found {
			return Report{}, fmt.Errorf("%w: field %q", ErrMalformed, w)
		}
		fields[k] = v
	}

	var r Report
	seq, err := strconv.ParseUint(fields["seq"], 10, 32)
	if err != nil {
		return Report{}, fmt.Errorf("%w: seq: %v", ErrMalformed, err)
	}
	r.Seq = uint32(seq)
	if r.Kind, err = encoder.ParseKind(fields["type"]); err != nil {
		return Report{}, fmt.Errorf("%w: %v", ErrMalformed, err)
	}
	if r.Value, err = encoder.ParseValue(r.Kind, fields["value"]); err != nil {
		return Report{}, fmt.Errorf("%w: %v", ErrMalformed, err)
	}
	if r.Step, err = encoder.ParseValue(r.Kind, fields["step"]); err != nil {
		return Report{}, fmt.Errorf("%w: %v", ErrMalformed, err)
	}
	if r.Event, err = encoder.ParseEvent(fields["event"]); err != nil {
		return Report{}, fmt.Errorf("%w: %v", ErrMalformed, err)
	}
	return r, nil
}
