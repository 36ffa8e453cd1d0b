package telemetry

// CarStatus is one car's state: fuel, tyres, damage and ERS.
type CarStatus struct {
	TractionControl   uint8   `json:"traction_control"` // 0 off, 1 medium, 2 full
	AntiLockBrakes    uint8   `json:"anti_lock_brakes"`
	FuelMix           uint8   `json:"fuel_mix"` // 0 lean, 1 standard, 2 rich, 3 max
	FrontBrakeBias    uint8   `json:"front_brake_bias"`
	PitLimiterStatus  uint8   `json:"pit_limiter_status"`
	FuelInTank        float32 `json:"fuel_in_tank"`
	FuelCapacity      float32 `json:"fuel_capacity"`
	FuelRemainingLaps float32 `json:"fuel_remaining_laps"`
	MaxRPM            uint16  `json:"max_rpm"`
	IdleRPM           uint16  `json:"idle_rpm"`
	MaxGears          uint8   `json:"max_gears"`
	DRSAllowed        uint8   `json:"drs_allowed"`

	TyresWear            WheelQuad[uint8] `json:"tyres_wear"` // percent
	ActualTyreCompound   uint8            `json:"actual_tyre_compound"`
	VisualTyreCompound   uint8            `json:"visual_tyre_compound"`
	TyresDamage          WheelQuad[uint8] `json:"tyres_damage"` // percent
	FrontLeftWingDamage  uint8            `json:"front_left_wing_damage"`
	FrontRightWingDamage uint8            `json:"front_right_wing_damage"`
	RearWingDamage       uint8            `json:"rear_wing_damage"`
	EngineDamage         uint8            `json:"engine_damage"`
	GearBoxDamage        uint8            `json:"gear_box_damage"`
	VehicleFIAFlags      int8             `json:"vehicle_fia_flags"` // -1 unknown, 0 none, 1 green, 2 blue, 3 yellow, 4 red

	ERSStoreEnergy          float32 `json:"ers_store_energy"` // joules
	ERSDeployMode           uint8   `json:"ers_deploy_mode"`  // 0 none, 1 medium, 2 hotlap, 3 overtake
	ERSHarvestedThisLapMGUK float32 `json:"ers_harvested_this_lap_mguk"`
	ERSHarvestedThisLapMGUH float32 `json:"ers_harvested_this_lap_mguh"`
	ERSDeployedThisLap      float32 `json:"ers_deployed_this_lap"`
}

func decodeCarStatusEntry(c *cursor) CarStatus {
	return CarStatus{
		TractionControl:   c.u8(),
		AntiLockBrakes:    c.u8(),
		FuelMix:           c.u8(),
		FrontBrakeBias:    c.u8(),
		PitLimiterStatus:  c.u8(),
		FuelInTank:        c.f32(),
		FuelCapacity:      c.f32(),
		FuelRemainingLaps: c.f32(),
		MaxRPM:            c.u16(),
		IdleRPM:           c.u16(),
		MaxGears:          c.u8(),
		DRSAllowed:        c.u8(),

		TyresWear:            wheelQuad(c.u8),
		ActualTyreCompound:   c.u8(),
		VisualTyreCompound:   c.u8(),
		TyresDamage:          wheelQuad(c.u8),
		FrontLeftWingDamage:  c.u8(),
		FrontRightWingDamage: c.u8(),
		RearWingDamage:       c.u8(),
		EngineDamage:         c.u8(),
		GearBoxDamage:        c.u8(),
		VehicleFIAFlags:      c.i8(),

		ERSStoreEnergy:          c.f32(),
		ERSDeployMode:           c.u8(),
		ERSHarvestedThisLapMGUK: c.f32(),
		ERSHarvestedThisLapMGUH: c.f32(),
		ERSDeployedThisLap:      c.f32(),
	}
}

// CarStatusPacket carries status for every car in car-index order.
type CarStatusPacket struct {
	Hdr      Header             `json:"header"`
	Statuses [NumCars]CarStatus `json:"statuses"`
}

func (p *CarStatusPacket) Header() Header { return p.Hdr }
func (p *CarStatusPacket) packet()        {}

func decodeCarStatus(c *cursor, h Header) (Packet, error) {
	p := &CarStatusPacket{Hdr: h}
	for i := range p.Statuses {
		p.Statuses[i] = decodeCarStatusEntry(c)
		if err := c.Err(); err != nil {
			return nil, err
		}
	}
	return p, nil
}
