// Package stream reads the simulator's UDP telemetry feed without ever
// blocking the caller: each Poll is one non-blocking receive plus one decode.
package stream

import (
	"errors"
	"fmt"
	"net"
	"time"

	"pitwall/pkg/telemetry"
)

// Reader owns a bound UDP socket for its lifetime. It is not safe for
// concurrent use; one goroutine polls it, typically a render loop.
type Reader struct {
	conn *net.UDPConn
	buf  [telemetry.MaxDatagramSize]byte
}

// Listen binds the local address the simulator sends to, e.g.
// "0.0.0.0:20777".
func Listen(addr string) (*Reader, error) {
	udpAddr, err := net.ResolveUDPAddr("udp", addr)
	if err != nil {
		return nil, fmt.Errorf("resolve %s: %w", addr, err)
	}
	conn, err := net.ListenUDP("udp", udpAddr)
	if err != nil {
		return nil, fmt.Errorf("listen %s: %w", addr, err)
	}
	return &Reader{conn: conn}, nil
}

// Poll attempts one receive. It returns (packet, nil) for a well-formed
// datagram, (nil, nil) when no datagram is pending, and (nil, err) when the
// read or the decode failed. A decode failure discards that datagram only;
// the reader stays usable and the next Poll reads the next datagram, oldest
// first. Poll never blocks.
func (r *Reader) Poll() (telemetry.Packet, error) {
	// An already-expired deadline turns the read into a pure queue check.
	if err := r.conn.SetReadDeadline(time.Now()); err != nil {
		return nil, err
	}

	n, _, err := r.conn.ReadFromUDP(r.buf[:])
	if err != nil {
		var nerr net.Error
		if errors.As(err, &nerr) && nerr.Timeout() {
			return nil, nil
		}
		return nil, err
	}

	return telemetry.Parse(r.buf[:n])
}

// LocalAddr reports the bound address, useful when listening on port 0.
func (r *Reader) LocalAddr() net.Addr {
	return r.conn.LocalAddr()
}

// Close releases the socket. Poll must not be called afterwards.
func (r *Reader) Close() error {
	return r.conn.Close()
}
