package telemetry

// numMarshalZones is the fixed marshal-zone array length of the 2019 layout;
// NumMarshalZones says how many entries are meaningful.
const numMarshalZones = 21

// MarshalZone is one track segment with its current flag state.
type MarshalZone struct {
	ZoneStart float32 `json:"zone_start"` // fraction of lap distance
	ZoneFlag  int8    `json:"zone_flag"`  // -1 unknown, 0 none, 1 green, 2 blue, 3 yellow, 4 red
}

// SessionPacket describes the current session: weather, track, rules and
// timing context. Sent twice per second.
type SessionPacket struct {
	Hdr Header `json:"header"`

	Weather             uint8       `json:"weather"`
	TrackTemperature    int8        `json:"track_temperature"`
	AirTemperature      int8        `json:"air_temperature"`
	TotalLaps           uint8       `json:"total_laps"`
	TrackLength         uint16      `json:"track_length"`
	SessionType         SessionType `json:"session_type"`
	TrackID             int8        `json:"track_id"`
	Formula             uint8       `json:"formula"`
	SessionTimeLeft     uint16      `json:"session_time_left"`
	SessionDuration     uint16      `json:"session_duration"`
	PitSpeedLimit       uint8       `json:"pit_speed_limit"`
	GamePaused          uint8       `json:"game_paused"`
	IsSpectating        uint8       `json:"is_spectating"`
	SpectatorCarIndex   uint8       `json:"spectator_car_index"`
	SLIProNativeSupport uint8       `json:"sli_pro_native_support"`
	NumMarshalZones     uint8       `json:"num_marshal_zones"`

	MarshalZones    [numMarshalZones]MarshalZone `json:"marshal_zones"`
	SafetyCarStatus uint8                        `json:"safety_car_status"`
	NetworkGame     uint8                        `json:"network_game"`
}

func (p *SessionPacket) Header() Header { return p.Hdr }
func (p *SessionPacket) packet()        {}

func decodeSession(c *cursor, h Header) (Packet, error) {
	p := &SessionPacket{Hdr: h}

	p.Weather = c.u8()
	p.TrackTemperature = c.i8()
	p.AirTemperature = c.i8()
	p.TotalLaps = c.u8()
	p.TrackLength = c.u16()
	p.SessionType = SessionType(c.u8())
	p.TrackID = c.i8()
	p.Formula = c.u8()
	p.SessionTimeLeft = c.u16()
	p.SessionDuration = c.u16()
	p.PitSpeedLimit = c.u8()
	p.GamePaused = c.u8()
	p.IsSpectating = c.u8()
	p.SpectatorCarIndex = c.u8()
	p.SLIProNativeSupport = c.u8()
	p.NumMarshalZones = c.u8()

	for i := range p.MarshalZones {
		p.MarshalZones[i] = MarshalZone{
			ZoneStart: c.f32(),
			ZoneFlag:  c.i8(),
		}
	}
	p.SafetyCarStatus = c.u8()
	p.NetworkGame = c.u8()

	if err := c.Err(); err != nil {
		return nil, err
	}
	return p, nil
}
