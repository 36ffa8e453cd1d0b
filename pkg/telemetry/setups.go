package telemetry

// CarSetup is one car's setup sheet. In multiplayer, other players' setups
// arrive zeroed.
type CarSetup struct {
	FrontWing             uint8   `json:"front_wing"`
	RearWing              uint8   `json:"rear_wing"`
	OnThrottle            uint8   `json:"on_throttle"`  // differential, percent
	OffThrottle           uint8   `json:"off_throttle"` // differential, percent
	FrontCamber           float32 `json:"front_camber"`
	RearCamber            float32 `json:"rear_camber"`
	FrontToe              float32 `json:"front_toe"`
	RearToe               float32 `json:"rear_toe"`
	FrontSuspension       uint8   `json:"front_suspension"`
	RearSuspension        uint8   `json:"rear_suspension"`
	FrontAntiRollBar      uint8   `json:"front_anti_roll_bar"`
	RearAntiRollBar       uint8   `json:"rear_anti_roll_bar"`
	FrontSuspensionHeight uint8   `json:"front_suspension_height"`
	RearSuspensionHeight  uint8   `json:"rear_suspension_height"`
	BrakePressure         uint8   `json:"brake_pressure"`
	BrakeBias             uint8   `json:"brake_bias"`
	FrontTyrePressure     float32 `json:"front_tyre_pressure"`
	RearTyrePressure      float32 `json:"rear_tyre_pressure"`
	Ballast               uint8   `json:"ballast"`
	FuelLoad              float32 `json:"fuel_load"`
}

func decodeCarSetup(c *cursor) CarSetup {
	return CarSetup{
		FrontWing:             c.u8(),
		RearWing:              c.u8(),
		OnThrottle:            c.u8(),
		OffThrottle:           c.u8(),
		FrontCamber:           c.f32(),
		RearCamber:            c.f32(),
		FrontToe:              c.f32(),
		RearToe:               c.f32(),
		FrontSuspension:       c.u8(),
		RearSuspension:        c.u8(),
		FrontAntiRollBar:      c.u8(),
		RearAntiRollBar:       c.u8(),
		FrontSuspensionHeight: c.u8(),
		RearSuspensionHeight:  c.u8(),
		BrakePressure:         c.u8(),
		BrakeBias:             c.u8(),
		FrontTyrePressure:     c.f32(),
		RearTyrePressure:      c.f32(),
		Ballast:               c.u8(),
		FuelLoad:              c.f32(),
	}
}

// CarSetupsPacket carries every car's setup in car-index order.
type CarSetupsPacket struct {
	Hdr    Header            `json:"header"`
	Setups [NumCars]CarSetup `json:"setups"`
}

func (p *CarSetupsPacket) Header() Header { return p.Hdr }
func (p *CarSetupsPacket) packet()        {}

func decodeCarSetups(c *cursor, h Header) (Packet, error) {
	p := &CarSetupsPacket{Hdr: h}
	for i := range p.Setups {
		p.Setups[i] = decodeCarSetup(c)
		if err := c.Err(); err != nil {
			return nil, err
		}
	}
	return p, nil
}
