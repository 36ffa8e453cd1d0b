package telemetry

// Event codes of the 2019 format.
const (
	EventSessionStarted = "SSTA"
	EventSessionEnded   = "SEND"
	EventFastestLap     = "FTLP"
	EventRetirement     = "RTMT"
	EventDRSEnabled     = "DRSE"
	EventDRSDisabled    = "DRSD"
	EventTeammateInPits = "TMPT"
	EventChequeredFlag  = "CHQF"
	EventRaceWinner     = "RCWN"
)

// eventDetailSize is the fixed width of the detail region following the
// event code. Codes that carry fewer fields leave the rest as padding, so
// every event datagram has the same length.
const eventDetailSize = 5

// EventPacket is a session milestone: start, end, fastest lap, retirement
// and so on. VehicleIndex and LapTime are only meaningful for the codes
// that carry them.
type EventPacket struct {
	Hdr          Header  `json:"header"`
	Code         string  `json:"code"`
	VehicleIndex uint8   `json:"vehicle_index,omitempty"`
	LapTime      float32 `json:"lap_time,omitempty"`
}

func (p *EventPacket) Header() Header { return p.Hdr }
func (p *EventPacket) packet()        {}

func decodeEvent(c *cursor, h Header) (Packet, error) {
	code := c.bytes(4)
	detail := c.bytes(eventDetailSize)
	if err := c.Err(); err != nil {
		return nil, err
	}

	p := &EventPacket{Hdr: h, Code: string(code)}
	d := newCursor(detail)
	switch p.Code {
	case EventFastestLap:
		p.VehicleIndex = d.u8()
		p.LapTime = d.f32()
	case EventRetirement, EventTeammateInPits, EventRaceWinner:
		p.VehicleIndex = d.u8()
	case EventSessionStarted, EventSessionEnded, EventDRSEnabled,
		EventDRSDisabled, EventChequeredFlag:
		// No detail fields, padding only.
	default:
		return nil, &UnknownEventCodeError{Code: p.Code}
	}
	return p, nil
}
