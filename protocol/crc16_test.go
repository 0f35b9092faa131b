package protocol

import "testing"

func TestCRC16(t *testing.T) {
	testCases := []struct {
		data     []byte
		expected uint16
	}{
		{[]byte{}, 0xFFFF},
		{[]byte("123456789"), 0x6F91},
	}

	for i, tc := range testCases {
		if result := CRC16(tc.data); result != tc.expected {
			t.Errorf("Test case %d: expected 0x%04X, got 0x%04X", i, tc.expected, result)
		}
	}
}

func TestCRC16Different(t *testing.T) {
	crc1 := CRC16([]byte("enc seq=1"))
	crc2 := CRC16([]byte("enc seq=2"))
	if crc1 == crc2 {
		t.Errorf("CRC16 collision: both inputs produced %04X", crc1)
	}
}

func TestChecksumText(t *testing.T) {
	testCases := []uint16{0x0000, 0x00af, 0x6f91, 0xffff}
	for _, crc := range testCases {
		text := appendChecksum(nil, crc)
		if text[0] != ChecksumSep || len(text) != ChecksumLen+1 {
			t.Errorf("Unexpected checksum text %q", text)
			continue
		}
		got, ok := parseChecksum(string(text[1:]))
		if !ok || got != crc {
			t.Errorf("Expected 0x%04x, got 0x%04x (%v)", crc, got, ok)
		}
	}
	for _, bad := range []string{"", "12", "12345", "12g4"} {
		if _, ok := parseChecksum(bad); ok {
			t.Errorf("Expected %q to be rejected", bad)
		}
	}
	if got, ok := parseChecksum("6F91"); !ok || got != 0x6f91 {
		t.Errorf("Expected upper case digits to parse, got 0x%04x", got)
	}
}
