package telemetry

import "bytes"

// participantNameSize is the fixed width of the UTF-8 name field.
const participantNameSize = 48

// Participant identifies one entrant: driver, team, race number and whether
// the car is AI controlled.
type Participant struct {
	AIControlled  uint8  `json:"ai_controlled"`
	DriverID      uint8  `json:"driver_id"`
	TeamID        Team   `json:"team_id"`
	RaceNumber    uint8  `json:"race_number"`
	Nationality   uint8  `json:"nationality"`
	Name          string `json:"name"`
	YourTelemetry uint8  `json:"your_telemetry"` // 0 restricted, 1 public
}

func decodeParticipant(c *cursor) Participant {
	p := Participant{
		AIControlled: c.u8(),
		DriverID:     c.u8(),
		TeamID:       Team(c.u8()),
		RaceNumber:   c.u8(),
		Nationality:  c.u8(),
	}
	name := c.take(participantNameSize)
	if idx := bytes.IndexByte(name, 0x00); idx >= 0 {
		name = name[:idx]
	}
	p.Name = string(name)
	p.YourTelemetry = c.u8()
	return p
}

// ParticipantsPacket lists every entrant in car-index order. Entries past
// NumActiveCars are zeroed on the wire but still decoded positionally.
type ParticipantsPacket struct {
	Hdr           Header               `json:"header"`
	NumActiveCars uint8                `json:"num_active_cars"`
	Participants  [NumCars]Participant `json:"participants"`
}

func (p *ParticipantsPacket) Header() Header { return p.Hdr }
func (p *ParticipantsPacket) packet()        {}

func decodeParticipants(c *cursor, h Header) (Packet, error) {
	p := &ParticipantsPacket{Hdr: h, NumActiveCars: c.u8()}
	for i := range p.Participants {
		p.Participants[i] = decodeParticipant(c)
		if err := c.Err(); err != nil {
			return nil, err
		}
	}
	return p, nil
}
