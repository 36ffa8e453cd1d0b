package telemetry

import "encoding/binary"

// FormatF12019 is the packet format tag of the 2019 game. The only format
// this decoder set currently understands; new formats get new table entries.
const FormatF12019 uint16 = 2019

// headerSize is the fixed width of the common header prefixing every
// datagram.
const headerSize = 23

// Header is the fixed prefix of every datagram. It identifies which decoder
// to invoke (PacketID) and which layout generation to expect (FormatVersion),
// plus the session/frame context the payload belongs to.
type Header struct {
	FormatVersion           uint16   `json:"format_version"`
	GameMajorVersion        uint8    `json:"game_major_version"`
	GameMinorVersion        uint8    `json:"game_minor_version"`
	PacketID                PacketID `json:"packet_id"`
	SessionUID              uint64   `json:"session_uid"`
	SessionTime             float32  `json:"session_time"`
	FrameIdentifier         uint32   `json:"frame_identifier"`
	PlayerCarIndex          uint8    `json:"player_car_index"`
	SecondaryPlayerCarIndex uint8    `json:"secondary_player_car_index"`
}

func decodeHeader(c *cursor) (Header, error) {
	h := Header{
		FormatVersion:           c.u16(),
		GameMajorVersion:        c.u8(),
		GameMinorVersion:        c.u8(),
		PacketID:                PacketID(c.u8()),
		SessionUID:              c.u64(),
		SessionTime:             c.f32(),
		FrameIdentifier:         c.u32(),
		PlayerCarIndex:          c.u8(),
		SecondaryPlayerCarIndex: c.u8(),
	}
	if err := c.Err(); err != nil {
		return Header{}, err
	}
	if h.FormatVersion != FormatF12019 {
		return Header{}, &UnsupportedFormatVersionError{Format: h.FormatVersion}
	}
	return h, nil
}

// AppendBinary re-encodes the header in wire order. Decoding the result
// reproduces the same field values byte for byte; test fixtures build
// their datagrams with it.
func (h Header) AppendBinary(b []byte) []byte {
	b = binary.LittleEndian.AppendUint16(b, h.FormatVersion)
	b = append(b, h.GameMajorVersion, h.GameMinorVersion, uint8(h.PacketID))
	b = binary.LittleEndian.AppendUint64(b, h.SessionUID)
	b = binary.LittleEndian.AppendUint32(b, f32bits(h.SessionTime))
	b = binary.LittleEndian.AppendUint32(b, h.FrameIdentifier)
	b = append(b, h.PlayerCarIndex, h.SecondaryPlayerCarIndex)
	return b
}
