// Package record persists a decoded session as a CBOR stream so it can be
// replayed through the same consumers later, without the game running.
package record

import (
	"fmt"
	"io"
	"time"

	"github.com/fxamacker/cbor/v2"

	"pitwall/pkg/engine"
	"pitwall/pkg/telemetry"
)

type entry struct {
	Kind       uint8           `cbor:"1,keyasint"`
	ReceivedAt time.Time       `cbor:"2,keyasint"`
	Packet     cbor.RawMessage `cbor:"3,keyasint"`
}

// Writer appends feeds to an underlying stream, one CBOR map per packet.
type Writer struct {
	enc *cbor.Encoder
}

func NewWriter(w io.Writer) *Writer {
	return &Writer{enc: cbor.NewEncoder(w)}
}

func (w *Writer) Record(feed engine.Feed) error {
	raw, err := cbor.Marshal(feed.Packet)
	if err != nil {
		return fmt.Errorf("encode %s packet: %w", feed.Packet.Header().PacketID, err)
	}
	return w.enc.Encode(entry{
		Kind:       uint8(feed.Packet.Header().PacketID),
		ReceivedAt: feed.ReceivedAt,
		Packet:     raw,
	})
}

// Reader replays a recorded session in capture order. Next returns io.EOF
// when the stream is exhausted.
type Reader struct {
	dec *cbor.Decoder
}

func NewReader(r io.Reader) *Reader {
	return &Reader{dec: cbor.NewDecoder(r)}
}

func (r *Reader) Next() (engine.Feed, error) {
	var e entry
	if err := r.dec.Decode(&e); err != nil {
		return engine.Feed{}, err
	}

	pkt, err := packetForKind(telemetry.PacketID(e.Kind))
	if err != nil {
		return engine.Feed{}, err
	}
	if err := cbor.Unmarshal(e.Packet, pkt); err != nil {
		return engine.Feed{}, fmt.Errorf("decode recorded %s packet: %w", telemetry.PacketID(e.Kind), err)
	}
	return engine.Feed{Packet: pkt, ReceivedAt: e.ReceivedAt}, nil
}

func packetForKind(id telemetry.PacketID) (telemetry.Packet, error) {
	switch id {
	case telemetry.PacketIDMotion:
		return &telemetry.MotionPacket{}, nil
	case telemetry.PacketIDSession:
		return &telemetry.SessionPacket{}, nil
	case telemetry.PacketIDLapData:
		return &telemetry.LapDataPacket{}, nil
	case telemetry.PacketIDEvent:
		return &telemetry.EventPacket{}, nil
	case telemetry.PacketIDParticipants:
		return &telemetry.ParticipantsPacket{}, nil
	case telemetry.PacketIDCarSetups:
		return &telemetry.CarSetupsPacket{}, nil
	case telemetry.PacketIDCarTelemetry:
		return &telemetry.CarTelemetryPacket{}, nil
	case telemetry.PacketIDCarStatus:
		return &telemetry.CarStatusPacket{}, nil
	}
	return nil, fmt.Errorf("recorded stream has unknown packet kind %d", id)
}
