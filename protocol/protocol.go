// Package protocol frames encoder reports sent from the firmware to the host.
//
// A report is a single text line:
//
//	enc seq=<n> type=<kind> value=<v> step=<s> event=<event>*<crc>
//
// where <crc> is the CRC16 of every byte before the '*', as four lowercase
// hex digits. Lines end with '\n'; a trailing '\r' is tolerated.
package protocol

// Version of the report format
const Version = "1"

// Protocol constants
const (
	LineMax      = 128 // Longest report line including the newline
	ReportTag    = "enc"
	ChecksumSep  = '*'
	ChecksumLen  = 4 // Hex digits after ChecksumSep
	LineTerminal = '\n'
)
