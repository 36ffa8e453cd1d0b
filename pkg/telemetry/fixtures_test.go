package telemetry

import (
	"encoding/binary"
	"math"
)

// wire builds little-endian datagram fixtures field by field, in the same
// order the decoders consume them.
type wire struct {
	b []byte
}

func (w *wire) u8(v uint8) *wire {
	w.b = append(w.b, v)
	return w
}

func (w *wire) i8(v int8) *wire { return w.u8(uint8(v)) }

func (w *wire) u16(v uint16) *wire {
	w.b = binary.LittleEndian.AppendUint16(w.b, v)
	return w
}

func (w *wire) i16(v int16) *wire { return w.u16(uint16(v)) }

func (w *wire) u32(v uint32) *wire {
	w.b = binary.LittleEndian.AppendUint32(w.b, v)
	return w
}

func (w *wire) u64(v uint64) *wire {
	w.b = binary.LittleEndian.AppendUint64(w.b, v)
	return w
}

func (w *wire) f32(v float32) *wire {
	return w.u32(math.Float32bits(v))
}

func (w *wire) raw(p []byte) *wire {
	w.b = append(w.b, p...)
	return w
}

func (w *wire) pad(n int) *wire {
	w.b = append(w.b, make([]byte, n)...)
	return w
}

// testHeader is the fixture header every datagram builder starts from.
func testHeader(id PacketID) Header {
	return Header{
		FormatVersion:           FormatF12019,
		GameMajorVersion:        1,
		GameMinorVersion:        22,
		PacketID:                id,
		SessionUID:              0xDEADBEEFCAFEF00D,
		SessionTime:             123.5,
		FrameIdentifier:         991,
		PlayerCarIndex:          7,
		SecondaryPlayerCarIndex: 255,
	}
}

func newWire(id PacketID) *wire {
	return &wire{b: testHeader(id).AppendBinary(nil)}
}

// Per-record builders. Each gives car i distinctive values so tests can
// check that records land at the right index.

func (w *wire) carMotion(i int) *wire {
	base := float32(i)
	w.f32(base + 0.1).f32(base + 0.2).f32(base + 0.3) // world position
	w.f32(base + 0.4).f32(base + 0.5).f32(base + 0.6) // world velocity
	w.i16(int16(1000 + i)).i16(int16(-1000 - i)).i16(int16(2000 + i))
	w.i16(int16(-2000 - i)).i16(int16(3000 + i)).i16(int16(-3000 - i))
	w.f32(base + 0.7).f32(base + 0.8).f32(base + 0.9) // g-forces
	w.f32(base + 1.1).f32(base + 1.2).f32(base + 1.3) // yaw pitch roll
	return w
}

func (w *wire) carLap(i int) *wire {
	base := float32(i)
	w.f32(80 + base).f32(30 + base).f32(79 + base) // last, current, best
	w.f32(25 + base).f32(28 + base)                // sectors
	w.f32(1000 + base).f32(50000 + base).f32(0)    // distances, sc delta
	w.u8(uint8(i + 1)).u8(12).u8(0).u8(1).u8(0).u8(0).u8(uint8(i + 1)).u8(4).u8(2)
	return w
}

func (w *wire) participant(name string, team Team, number uint8) *wire {
	w.u8(1).u8(uint8(10 + number)).u8(uint8(team)).u8(number).u8(13)
	nameField := make([]byte, participantNameSize)
	copy(nameField, name)
	w.raw(nameField)
	w.u8(1)
	return w
}

func (w *wire) carSetup(i int) *wire {
	w.u8(uint8(i)).u8(uint8(i + 1)).u8(75).u8(60)
	w.f32(-2.5).f32(-1.0).f32(0.05).f32(0.2)
	w.u8(5).u8(4).u8(6).u8(7).u8(3).u8(3).u8(95).u8(58)
	w.f32(23.5).f32(21.5)
	w.u8(6).f32(30 + float32(i))
	return w
}

func (w *wire) carTelemetry(i int) *wire {
	w.u16(uint16(200 + i)).f32(0.9).f32(-0.1).f32(0).u8(0).i8(int8(i%8 + 1))
	w.u16(uint16(11000 + i)).u8(uint8(i % 2)).u8(80)
	w.u16(400).u16(401).u16(402).u16(403) // brakes RL RR FL FR
	w.u16(90).u16(91).u16(92).u16(93)     // surface temps
	w.u16(95).u16(96).u16(97).u16(98)     // inner temps
	w.u16(105)
	w.f32(21.5).f32(21.6).f32(23.1).f32(23.2)
	w.u8(0).u8(0).u8(0).u8(0)
	return w
}

func (w *wire) carStatus(i int) *wire {
	w.u8(2).u8(1).u8(1).u8(56).u8(0)
	w.f32(30 + float32(i)).f32(110).f32(18.5)
	w.u16(13500).u16(3500).u8(8).u8(uint8(i % 2))
	w.u8(10).u8(11).u8(12).u8(13) // wear RL RR FL FR
	w.u8(16).u8(16)
	w.u8(0).u8(1).u8(2).u8(3) // damage RL RR FL FR
	w.u8(0).u8(0).u8(0).u8(0).u8(0).i8(0)
	w.f32(4000000).u8(1).f32(100000).f32(50000).f32(120000)
	return w
}

func motionDatagram() []byte {
	w := newWire(PacketIDMotion)
	for i := 0; i < NumCars; i++ {
		w.carMotion(i)
	}
	w.f32(1).f32(2).f32(3).f32(4)     // suspension position RL RR FL FR
	w.f32(5).f32(6).f32(7).f32(8)     // suspension velocity
	w.f32(9).f32(10).f32(11).f32(12)  // suspension acceleration
	w.f32(13).f32(14).f32(15).f32(16) // wheel speed
	w.f32(17).f32(18).f32(19).f32(20) // wheel slip
	w.f32(21).f32(22).f32(23)         // local velocity
	w.f32(24).f32(25).f32(26)         // angular velocity
	w.f32(27).f32(28).f32(29)         // angular acceleration
	w.f32(0.3)                        // front wheels angle
	return w.b
}

func sessionDatagram() []byte {
	w := newWire(PacketIDSession)
	w.u8(1).i8(31).i8(24).u8(58).u16(5303)
	w.u8(uint8(SessionRace)).i8(0).u8(0)
	w.u16(3600).u16(5400)
	w.u8(80).u8(0).u8(0).u8(255).u8(1).u8(17)
	for i := 0; i < numMarshalZones; i++ {
		w.f32(float32(i) / numMarshalZones).i8(int8(i % 5))
	}
	w.u8(0).u8(0)
	return w.b
}

func lapDataDatagram() []byte {
	w := newWire(PacketIDLapData)
	for i := 0; i < NumCars; i++ {
		w.carLap(i)
	}
	return w.b
}

func eventDatagram(code string, detail []byte) []byte {
	w := newWire(PacketIDEvent)
	w.raw([]byte(code))
	w.raw(detail)
	w.pad(eventDetailSize - len(detail))
	return w.b
}

func participantsDatagram() []byte {
	w := newWire(PacketIDParticipants)
	w.u8(NumCars)
	w.participant("HAMILTON", TeamMercedes, 44)
	w.participant("VERSTAPPEN", TeamRedBullRacing, 33)
	for i := 2; i < NumCars; i++ {
		w.participant("", TeamWilliams, uint8(i))
	}
	return w.b
}

func carSetupsDatagram() []byte {
	w := newWire(PacketIDCarSetups)
	for i := 0; i < NumCars; i++ {
		w.carSetup(i)
	}
	return w.b
}

func carTelemetryDatagram() []byte {
	w := newWire(PacketIDCarTelemetry)
	for i := 0; i < NumCars; i++ {
		w.carTelemetry(i)
	}
	w.u32(0x0000_0010)
	return w.b
}

func carStatusDatagram() []byte {
	w := newWire(PacketIDCarStatus)
	for i := 0; i < NumCars; i++ {
		w.carStatus(i)
	}
	return w.b
}
