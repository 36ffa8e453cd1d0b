package telemetry

// CarMotion is one car's entry in the motion packet. The normalised
// direction components keep the raw scaled int16 encoding from the wire;
// divide by 32767.0 to recover the unit-range float.
type CarMotion struct {
	WorldPositionX float32 `json:"world_position_x"`
	WorldPositionY float32 `json:"world_position_y"`
	WorldPositionZ float32 `json:"world_position_z"`
	WorldVelocityX float32 `json:"world_velocity_x"`
	WorldVelocityY float32 `json:"world_velocity_y"`
	WorldVelocityZ float32 `json:"world_velocity_z"`

	WorldForwardDirX int16 `json:"world_forward_dir_x"`
	WorldForwardDirY int16 `json:"world_forward_dir_y"`
	WorldForwardDirZ int16 `json:"world_forward_dir_z"`
	WorldRightDirX   int16 `json:"world_right_dir_x"`
	WorldRightDirY   int16 `json:"world_right_dir_y"`
	WorldRightDirZ   int16 `json:"world_right_dir_z"`

	GForceLateral      float32 `json:"g_force_lateral"`
	GForceLongitudinal float32 `json:"g_force_longitudinal"`
	GForceVertical     float32 `json:"g_force_vertical"`
	Yaw                float32 `json:"yaw"`
	Pitch              float32 `json:"pitch"`
	Roll               float32 `json:"roll"`
}

func decodeCarMotion(c *cursor) CarMotion {
	return CarMotion{
		WorldPositionX:     c.f32(),
		WorldPositionY:     c.f32(),
		WorldPositionZ:     c.f32(),
		WorldVelocityX:     c.f32(),
		WorldVelocityY:     c.f32(),
		WorldVelocityZ:     c.f32(),
		WorldForwardDirX:   c.i16(),
		WorldForwardDirY:   c.i16(),
		WorldForwardDirZ:   c.i16(),
		WorldRightDirX:     c.i16(),
		WorldRightDirY:     c.i16(),
		WorldRightDirZ:     c.i16(),
		GForceLateral:      c.f32(),
		GForceLongitudinal: c.f32(),
		GForceVertical:     c.f32(),
		Yaw:                c.f32(),
		Pitch:              c.f32(),
		Roll:               c.f32(),
	}
}

// MotionPacket gives physics data for every car on track, in car-index
// order, plus extra player-car-only telemetry for motion platforms.
type MotionPacket struct {
	Hdr        Header             `json:"header"`
	MotionData [NumCars]CarMotion `json:"motion_data"`

	// Player car only.
	SuspensionPosition     WheelQuad[float32] `json:"suspension_position"`
	SuspensionVelocity     WheelQuad[float32] `json:"suspension_velocity"`
	SuspensionAcceleration WheelQuad[float32] `json:"suspension_acceleration"`
	WheelSpeed             WheelQuad[float32] `json:"wheel_speed"`
	WheelSlip              WheelQuad[float32] `json:"wheel_slip"`
	LocalVelocityX         float32            `json:"local_velocity_x"`
	LocalVelocityY         float32            `json:"local_velocity_y"`
	LocalVelocityZ         float32            `json:"local_velocity_z"`
	AngularVelocityX       float32            `json:"angular_velocity_x"`
	AngularVelocityY       float32            `json:"angular_velocity_y"`
	AngularVelocityZ       float32            `json:"angular_velocity_z"`
	AngularAccelerationX   float32            `json:"angular_acceleration_x"`
	AngularAccelerationY   float32            `json:"angular_acceleration_y"`
	AngularAccelerationZ   float32            `json:"angular_acceleration_z"`
	FrontWheelsAngle       float32            `json:"front_wheels_angle"`
}

func (p *MotionPacket) Header() Header { return p.Hdr }
func (p *MotionPacket) packet()        {}

func decodeMotion(c *cursor, h Header) (Packet, error) {
	p := &MotionPacket{Hdr: h}
	for i := range p.MotionData {
		p.MotionData[i] = decodeCarMotion(c)
		if err := c.Err(); err != nil {
			return nil, err
		}
	}

	p.SuspensionPosition = wheelQuad(c.f32)
	p.SuspensionVelocity = wheelQuad(c.f32)
	p.SuspensionAcceleration = wheelQuad(c.f32)
	p.WheelSpeed = wheelQuad(c.f32)
	p.WheelSlip = wheelQuad(c.f32)
	p.LocalVelocityX = c.f32()
	p.LocalVelocityY = c.f32()
	p.LocalVelocityZ = c.f32()
	p.AngularVelocityX = c.f32()
	p.AngularVelocityY = c.f32()
	p.AngularVelocityZ = c.f32()
	p.AngularAccelerationX = c.f32()
	p.AngularAccelerationY = c.f32()
	p.AngularAccelerationZ = c.f32()
	p.FrontWheelsAngle = c.f32()

	if err := c.Err(); err != nil {
		return nil, err
	}
	return p, nil
}
