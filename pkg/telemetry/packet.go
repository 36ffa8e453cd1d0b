package telemetry

// NumCars is the grid size of the 2019 format. Every per-car array in every
// packet carries exactly this many entries, indexed by car index.
const NumCars = 20

// MaxDatagramSize bounds every packet type of every supported format.
const MaxDatagramSize = 2048

// Packet is one fully decoded datagram. The concrete type is one of the
// *Packet structs in this package; consumers type-switch on it. The set is
// closed: only this package can add variants.
type Packet interface {
	Header() Header
	packet()
}

type decodeFunc func(c *cursor, h Header) (Packet, error)

type layoutKey struct {
	format uint16
	id     PacketID
}

// decoders is the layout table: one entry per (format version, packet id).
// New game formats add entries without touching existing ones.
var decoders = map[layoutKey]decodeFunc{
	{FormatF12019, PacketIDMotion}:       decodeMotion,
	{FormatF12019, PacketIDSession}:      decodeSession,
	{FormatF12019, PacketIDLapData}:      decodeLapData,
	{FormatF12019, PacketIDEvent}:        decodeEvent,
	{FormatF12019, PacketIDParticipants}: decodeParticipants,
	{FormatF12019, PacketIDCarSetups}:    decodeCarSetups,
	{FormatF12019, PacketIDCarTelemetry}: decodeCarTelemetry,
	{FormatF12019, PacketIDCarStatus}:    decodeCarStatus,
}

// Parse decodes one whole datagram: header, then exactly one payload decoder
// selected by (format version, packet id). The decoded fields must consume
// the datagram exactly; short data surfaces as ErrTruncatedData and leftover
// bytes as ErrTrailingData. The returned packet holds no reference into buf.
func Parse(buf []byte) (Packet, error) {
	c := newCursor(buf)
	h, err := decodeHeader(c)
	if err != nil {
		return nil, err
	}

	decode, ok := decoders[layoutKey{h.FormatVersion, h.PacketID}]
	if !ok {
		return nil, &UnknownPacketTypeError{Format: h.FormatVersion, ID: uint8(h.PacketID)}
	}

	p, err := decode(c, h)
	if err != nil {
		return nil, err
	}
	if c.remaining() != 0 {
		return nil, ErrTrailingData
	}
	return p, nil
}
