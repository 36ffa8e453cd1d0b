package telemetry

// CarTelemetry is one car's live telemetry: inputs, drivetrain and
// temperatures. Per-wheel values follow the canonical RL, RR, FL, FR order.
type CarTelemetry struct {
	Speed            uint16  `json:"speed"` // km/h
	Throttle         float32 `json:"throttle"`
	Steer            float32 `json:"steer"`
	Brake            float32 `json:"brake"`
	Clutch           uint8   `json:"clutch"`
	Gear             int8    `json:"gear"` // -1 reverse, 0 neutral
	EngineRPM        uint16  `json:"engine_rpm"`
	DRS              uint8   `json:"drs"`
	RevLightsPercent uint8   `json:"rev_lights_percent"`

	BrakesTemperature       WheelQuad[uint16]  `json:"brakes_temperature"`
	TyresSurfaceTemperature WheelQuad[uint16]  `json:"tyres_surface_temperature"`
	TyresInnerTemperature   WheelQuad[uint16]  `json:"tyres_inner_temperature"`
	EngineTemperature       uint16             `json:"engine_temperature"`
	TyresPressure           WheelQuad[float32] `json:"tyres_pressure"`
	SurfaceType             WheelQuad[uint8]   `json:"surface_type"`
}

func decodeCarTelemetryEntry(c *cursor) CarTelemetry {
	return CarTelemetry{
		Speed:                   c.u16(),
		Throttle:                c.f32(),
		Steer:                   c.f32(),
		Brake:                   c.f32(),
		Clutch:                  c.u8(),
		Gear:                    c.i8(),
		EngineRPM:               c.u16(),
		DRS:                     c.u8(),
		RevLightsPercent:        c.u8(),
		BrakesTemperature:       wheelQuad(c.u16),
		TyresSurfaceTemperature: wheelQuad(c.u16),
		TyresInnerTemperature:   wheelQuad(c.u16),
		EngineTemperature:       c.u16(),
		TyresPressure:           wheelQuad(c.f32),
		SurfaceType:             wheelQuad(c.u8),
	}
}

// CarTelemetryPacket carries live telemetry for every car plus the player's
// current button presses.
type CarTelemetryPacket struct {
	Hdr          Header                `json:"header"`
	Telemetry    [NumCars]CarTelemetry `json:"telemetry"`
	ButtonStatus uint32                `json:"button_status"`
}

func (p *CarTelemetryPacket) Header() Header { return p.Hdr }
func (p *CarTelemetryPacket) packet()        {}

func decodeCarTelemetry(c *cursor, h Header) (Packet, error) {
	p := &CarTelemetryPacket{Hdr: h}
	for i := range p.Telemetry {
		p.Telemetry[i] = decodeCarTelemetryEntry(c)
		if err := c.Err(); err != nil {
			return nil, err
		}
	}
	p.ButtonStatus = c.u32()
	if err := c.Err(); err != nil {
		return nil, err
	}
	return p, nil
}
