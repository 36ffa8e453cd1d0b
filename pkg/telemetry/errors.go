package telemetry

import (
	"errors"
	"fmt"
)

// ErrTruncatedData is returned when a datagram ends before the fields its
// packet type requires have all been read.
var ErrTruncatedData = errors.New("truncated data")

// ErrTrailingData is returned when a decoder finished but bytes remain in the
// datagram. Either way the byte count did not match the declared layout.
var ErrTrailingData = errors.New("trailing data after packet")

// UnsupportedFormatVersionError reports a header whose format version has no
// known field layout. Non-fatal: the datagram is discarded.
type UnsupportedFormatVersionError struct {
	Format uint16
}

func (e *UnsupportedFormatVersionError) Error() string {
	return fmt.Sprintf("unsupported format version %d", e.Format)
}

// UnknownPacketTypeError reports a packet id with no registered decoder for
// the declared format version. Non-fatal: the datagram is discarded.
type UnknownPacketTypeError struct {
	Format uint16
	ID     uint8
}

func (e *UnknownPacketTypeError) Error() string {
	return fmt.Sprintf("unknown packet type %d for format %d", e.ID, e.Format)
}

// UnknownEventCodeError reports an event datagram carrying a code string this
// decoder set does not know.
type UnknownEventCodeError struct {
	Code string
}

func (e *UnknownEventCodeError) Error() string {
	return fmt.Sprintf("unknown event code %q", e.Code)
}
