package telemetry

import (
	"encoding/binary"
	"fmt"
	"math"
)

// cursor is a sequential little-endian reader over one datagram. A read past
// the valid length pins the cursor at the end and records ErrTruncatedData;
// every later read returns the zero value. Decoders read a record's fields
// back to back and check Err once, so a short datagram can never produce a
// partially valid packet.
type cursor struct {
	buf []byte
	off int
	err error
}

func newCursor(buf []byte) *cursor {
	return &cursor{buf: buf}
}

// take reserves n bytes and advances the cursor, or records truncation.
func (c *cursor) take(n int) []byte {
	if c.err != nil {
		return nil
	}
	if c.off+n > len(c.buf) {
		c.err = fmt.Errorf("need %d bytes at offset %d, %d available: %w",
			n, c.off, len(c.buf)-c.off, ErrTruncatedData)
		c.off = len(c.buf)
		return nil
	}
	b := c.buf[c.off : c.off+n]
	c.off += n
	return b
}

func (c *cursor) u8() uint8 {
	b := c.take(1)
	if b == nil {
		return 0
	}
	return b[0]
}

func (c *cursor) i8() int8 {
	return int8(c.u8())
}

func (c *cursor) u16() uint16 {
	b := c.take(2)
	if b == nil {
		return 0
	}
	return binary.LittleEndian.Uint16(b)
}

func (c *cursor) i16() int16 {
	return int16(c.u16())
}

func (c *cursor) u32() uint32 {
	b := c.take(4)
	if b == nil {
		return 0
	}
	return binary.LittleEndian.Uint32(b)
}

func (c *cursor) u64() uint64 {
	b := c.take(8)
	if b == nil {
		return 0
	}
	return binary.LittleEndian.Uint64(b)
}

func (c *cursor) f32() float32 {
	return math.Float32frombits(c.u32())
}

// bytes copies n bytes out of the datagram; the returned slice never aliases
// the receive buffer.
func (c *cursor) bytes(n int) []byte {
	b := c.take(n)
	if b == nil {
		return nil
	}
	return append([]byte(nil), b...)
}

func (c *cursor) remaining() int {
	return len(c.buf) - c.off
}

func (c *cursor) Err() error {
	return c.err
}

func f32bits(f float32) uint32 {
	return math.Float32bits(f)
}
