package telemetry

// CarLap is one car's entry in the lap data packet. Times are seconds,
// distances metres; a negative lapDistance means the car has not crossed
// the line yet.
type CarLap struct {
	LastLapTime    float32 `json:"last_lap_time"`
	CurrentLapTime float32 `json:"current_lap_time"`
	BestLapTime    float32 `json:"best_lap_time"`
	Sector1Time    float32 `json:"sector1_time"`
	Sector2Time    float32 `json:"sector2_time"`
	LapDistance    float32 `json:"lap_distance"`
	TotalDistance  float32 `json:"total_distance"`
	SafetyCarDelta float32 `json:"safety_car_delta"`

	CarPosition       uint8 `json:"car_position"`
	CurrentLapNum     uint8 `json:"current_lap_num"`
	PitStatus         uint8 `json:"pit_status"` // 0 none, 1 pitting, 2 in pit area
	Sector            uint8 `json:"sector"`
	CurrentLapInvalid uint8 `json:"current_lap_invalid"`
	Penalties         uint8 `json:"penalties"` // accumulated, seconds
	GridPosition      uint8 `json:"grid_position"`
	DriverStatus      uint8 `json:"driver_status"` // 0 garage, 1 flying lap, 2 in lap, 3 out lap, 4 on track
	ResultStatus      uint8 `json:"result_status"` // 0 invalid, 2 active, 3 finished, 4 dsq, 5 not classified, 6 retired
}

func decodeCarLap(c *cursor) CarLap {
	return CarLap{
		LastLapTime:       c.f32(),
		CurrentLapTime:    c.f32(),
		BestLapTime:       c.f32(),
		Sector1Time:       c.f32(),
		Sector2Time:       c.f32(),
		LapDistance:       c.f32(),
		TotalDistance:     c.f32(),
		SafetyCarDelta:    c.f32(),
		CarPosition:       c.u8(),
		CurrentLapNum:     c.u8(),
		PitStatus:         c.u8(),
		Sector:            c.u8(),
		CurrentLapInvalid: c.u8(),
		Penalties:         c.u8(),
		GridPosition:      c.u8(),
		DriverStatus:      c.u8(),
		ResultStatus:      c.u8(),
	}
}

// LapDataPacket carries lap timing for every car on track, in car-index
// order.
type LapDataPacket struct {
	Hdr     Header          `json:"header"`
	LapData [NumCars]CarLap `json:"lap_data"`
}

func (p *LapDataPacket) Header() Header { return p.Hdr }
func (p *LapDataPacket) packet()        {}

func decodeLapData(c *cursor, h Header) (Packet, error) {
	p := &LapDataPacket{Hdr: h}
	for i := range p.LapData {
		p.LapData[i] = decodeCarLap(c)
		if err := c.Err(); err != nil {
			return nil, err
		}
	}
	return p, nil
}
