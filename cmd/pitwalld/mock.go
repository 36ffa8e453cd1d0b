package main

import (
	"context"
	"math"
	"time"

	"pitwall/pkg/engine"
	"pitwall/pkg/telemetry"
)

// A believable 2019-grid session for driving the dashboard without the game
// running. Each car laps the circuit at a slightly different pace; lap and
// sector times, speeds and temperatures all derive from the same clock.
const (
	mockSessionUID   = 0xC0FFEE5E551017ED
	mockTrackLength  = 5303 // Albert Park, metres
	mockBaseLapSecs  = 83.0
	mockTelemetryHz  = 20
	mockSessionSecs  = 5400
	mockPlayerIndex  = 0
	mockTotalRaceLap = 58
)

type mockDriver struct {
	name       string
	team       telemetry.Team
	raceNumber uint8
	// pace is the car's lap time offset from mockBaseLapSecs.
	pace float64
}

var mockGrid = []mockDriver{
	{"HAMILTON", telemetry.TeamMercedes, 44, 0.00},
	{"BOTTAS", telemetry.TeamMercedes, 77, 0.21},
	{"VETTEL", telemetry.TeamFerrari, 5, 0.34},
	{"LECLERC", telemetry.TeamFerrari, 16, 0.29},
	{"VERSTAPPEN", telemetry.TeamRedBullRacing, 33, 0.40},
	{"GASLY", telemetry.TeamRedBullRacing, 10, 0.88},
	{"RICCIARDO", telemetry.TeamRenault, 3, 1.02},
	{"HULKENBERG", telemetry.TeamRenault, 27, 1.15},
	{"NORRIS", telemetry.TeamMcLaren, 4, 1.24},
	{"SAINZ", telemetry.TeamMcLaren, 55, 1.19},
	{"PEREZ", telemetry.TeamRacingPoint, 11, 1.41},
	{"STROLL", telemetry.TeamRacingPoint, 18, 1.66},
	{"KVYAT", telemetry.TeamToroRosso, 26, 1.52},
	{"ALBON", telemetry.TeamToroRosso, 23, 1.58},
	{"RAIKKONEN", telemetry.TeamAlfaRomeo, 7, 1.63},
	{"GIOVINAZZI", telemetry.TeamAlfaRomeo, 99, 1.90},
	{"GROSJEAN", telemetry.TeamHaas, 8, 1.72},
	{"MAGNUSSEN", telemetry.TeamHaas, 20, 1.69},
	{"RUSSELL", telemetry.TeamWilliams, 63, 2.45},
	{"KUBICA", telemetry.TeamWilliams, 88, 2.71},
}

// runMockSession publishes a synthetic race feed at roughly the cadence the
// game uses: motion, telemetry and lap data every tick, session twice a
// second, participants once a second.
func runMockSession(ctx context.Context, hub *engine.Hub) {
	ticker := time.NewTicker(time.Second / mockTelemetryHz)
	defer ticker.Stop()

	start := time.Now()
	var frame uint32
	for {
		select {
		case <-ctx.Done():
			return
		case now := <-ticker.C:
			t := now.Sub(start).Seconds()
			hdr := mockHeader(t, frame)

			publishFeed(hub, now, mockMotion(hdr, t))
			publishFeed(hub, now, mockLapData(hdr, t))
			publishFeed(hub, now, mockCarTelemetry(hdr, t))

			if frame%(mockTelemetryHz/2) == 0 {
				publishFeed(hub, now, mockSession(hdr, t))
				publishFeed(hub, now, mockCarStatus(hdr, t))
			}
			if frame%mockTelemetryHz == 0 {
				publishFeed(hub, now, mockParticipants(hdr))
			}
			frame++
		}
	}
}

func publishFeed(hub *engine.Hub, at time.Time, pkt telemetry.Packet) {
	hub.Publish(engine.Feed{Packet: pkt, ReceivedAt: at})
}

func mockHeader(t float64, frame uint32) telemetry.Header {
	return telemetry.Header{
		FormatVersion:           telemetry.FormatF12019,
		GameMajorVersion:        1,
		GameMinorVersion:        22,
		SessionUID:              mockSessionUID,
		SessionTime:             float32(t),
		FrameIdentifier:         frame,
		PlayerCarIndex:          mockPlayerIndex,
		SecondaryPlayerCarIndex: 255,
	}
}

// lapTime is car i's steady-state lap time with a small periodic wobble.
func lapTime(i int, t float64) float64 {
	d := mockGrid[i]
	return mockBaseLapSecs + d.pace + 0.4*math.Sin(t/7+float64(i))
}

// progress is car i's total race distance in metres.
func progress(i int, t float64) float64 {
	return mockTrackLength * t / lapTime(i, t)
}

// mockMotion places every car on a circular stand-in for the circuit, at the
// angle its race distance implies, heading tangentially at its lap pace.
func mockMotion(hdr telemetry.Header, t float64) *telemetry.MotionPacket {
	hdr.PacketID = telemetry.PacketIDMotion
	p := &telemetry.MotionPacket{Hdr: hdr}

	const radius = mockTrackLength / (2 * math.Pi)
	for i := range p.MotionData {
		ang := 2 * math.Pi * math.Mod(progress(i, t), mockTrackLength) / mockTrackLength
		speed := mockTrackLength / lapTime(i, t) // m/s
		sin, cos := math.Sincos(ang)

		p.MotionData[i] = telemetry.CarMotion{
			WorldPositionX:   float32(radius * cos),
			WorldPositionZ:   float32(radius * sin),
			WorldVelocityX:   float32(-speed * sin),
			WorldVelocityZ:   float32(speed * cos),
			WorldForwardDirX: int16(-sin * 32767),
			WorldForwardDirZ: int16(cos * 32767),
			WorldRightDirX:   int16(cos * 32767),
			WorldRightDirZ:   int16(sin * 32767),
			GForceLateral:    float32(speed * speed / radius / 9.81),
			Yaw:              float32(ang),
		}
	}

	playerSpeed := float32(mockTrackLength / lapTime(mockPlayerIndex, t))
	p.WheelSpeed = telemetry.WheelQuad[float32]{
		RearLeft: playerSpeed, RearRight: playerSpeed,
		FrontLeft: playerSpeed, FrontRight: playerSpeed,
	}
	p.LocalVelocityX = playerSpeed
	return p
}

func mockSession(hdr telemetry.Header, t float64) *telemetry.SessionPacket {
	hdr.PacketID = telemetry.PacketIDSession
	left := mockSessionSecs - int(t)
	if left < 0 {
		left = 0
	}
	p := &telemetry.SessionPacket{
		Hdr:              hdr,
		Weather:          1,
		TrackTemperature: 31,
		AirTemperature:   24,
		TotalLaps:        mockTotalRaceLap,
		TrackLength:      mockTrackLength,
		SessionType:      telemetry.SessionRace,
		TrackID:          0,
		SessionTimeLeft:  uint16(left),
		SessionDuration:  mockSessionSecs,
		PitSpeedLimit:    80,
		NumMarshalZones:  17,
	}
	for i := 0; i < int(p.NumMarshalZones); i++ {
		p.MarshalZones[i] = telemetry.MarshalZone{
			ZoneStart: float32(i) / float32(p.NumMarshalZones),
		}
	}
	return p
}

func mockParticipants(hdr telemetry.Header) *telemetry.ParticipantsPacket {
	hdr.PacketID = telemetry.PacketIDParticipants
	p := &telemetry.ParticipantsPacket{Hdr: hdr, NumActiveCars: telemetry.NumCars}
	for i, d := range mockGrid {
		p.Participants[i] = telemetry.Participant{
			AIControlled:  1,
			TeamID:        d.team,
			RaceNumber:    d.raceNumber,
			Name:          d.name,
			YourTelemetry: 1,
		}
	}
	p.Participants[mockPlayerIndex].AIControlled = 0
	return p
}

func mockLapData(hdr telemetry.Header, t float64) *telemetry.LapDataPacket {
	hdr.PacketID = telemetry.PacketIDLapData
	p := &telemetry.LapDataPacket{Hdr: hdr}

	// Positions follow total distance covered.
	order := make([]int, telemetry.NumCars)
	for i := range order {
		order[i] = i
	}
	for a := 1; a < len(order); a++ {
		for b := a; b > 0 && progress(order[b], t) > progress(order[b-1], t); b-- {
			order[b], order[b-1] = order[b-1], order[b]
		}
	}

	for pos, i := range order {
		lt := lapTime(i, t)
		total := progress(i, t)
		lapFrac := math.Mod(t, lt) / lt

		lap := telemetry.CarLap{
			LastLapTime:    float32(lt),
			CurrentLapTime: float32(lapFrac * lt),
			BestLapTime:    float32(mockBaseLapSecs + mockGrid[i].pace - 0.4),
			LapDistance:    float32(math.Mod(total, mockTrackLength)),
			TotalDistance:  float32(total),
			CarPosition:    uint8(pos + 1),
			CurrentLapNum:  uint8(total/mockTrackLength) + 1,
			GridPosition:   uint8(i + 1),
			DriverStatus:   4,
			ResultStatus:   2,
		}
		if lapFrac > 0.33 {
			lap.Sector1Time = float32(lt * 0.33)
		}
		if lapFrac > 0.71 {
			lap.Sector2Time = float32(lt * 0.38)
			lap.Sector = 2
		} else if lapFrac > 0.33 {
			lap.Sector = 1
		}
		p.LapData[i] = lap
	}
	return p
}

func mockCarTelemetry(hdr telemetry.Header, t float64) *telemetry.CarTelemetryPacket {
	hdr.PacketID = telemetry.PacketIDCarTelemetry
	p := &telemetry.CarTelemetryPacket{Hdr: hdr}
	for i := range p.Telemetry {
		// Speed swings between roughly 80 and 320 km/h around the lap.
		phase := 2 * math.Pi * math.Mod(t, lapTime(i, t)) / lapTime(i, t)
		speed := 200 + 120*math.Sin(phase*3+float64(i))
		rpm := 7000 + speed*15
		gear := int8(1 + speed/46)
		if gear > 8 {
			gear = 8
		}

		throttle := float32(0.5 + 0.5*math.Sin(phase*3+float64(i)))
		p.Telemetry[i] = telemetry.CarTelemetry{
			Speed:            uint16(speed),
			Throttle:         throttle,
			Brake:            1 - throttle,
			Gear:             gear,
			EngineRPM:        uint16(rpm),
			DRS:              uint8(i % 2),
			RevLightsPercent: uint8(100 * (rpm - 7000) / 5000),
			BrakesTemperature: telemetry.WheelQuad[uint16]{
				RearLeft: 450, RearRight: 455, FrontLeft: 520, FrontRight: 525,
			},
			TyresSurfaceTemperature: telemetry.WheelQuad[uint16]{
				RearLeft: 96, RearRight: 97, FrontLeft: 92, FrontRight: 93,
			},
			TyresInnerTemperature: telemetry.WheelQuad[uint16]{
				RearLeft: 101, RearRight: 102, FrontLeft: 98, FrontRight: 99,
			},
			EngineTemperature: 105,
			TyresPressure: telemetry.WheelQuad[float32]{
				RearLeft: 21.5, RearRight: 21.5, FrontLeft: 23.0, FrontRight: 23.0,
			},
		}
	}
	return p
}

func mockCarStatus(hdr telemetry.Header, t float64) *telemetry.CarStatusPacket {
	hdr.PacketID = telemetry.PacketIDCarStatus
	p := &telemetry.CarStatusPacket{Hdr: hdr}
	for i := range p.Statuses {
		fuel := 40.0 - t/60
		if fuel < 0 {
			fuel = 0
		}
		wear := uint8(t / 30)
		p.Statuses[i] = telemetry.CarStatus{
			TractionControl:   2,
			FuelMix:           1,
			FrontBrakeBias:    56,
			FuelInTank:        float32(fuel),
			FuelCapacity:      110,
			FuelRemainingLaps: float32(fuel / 1.8),
			MaxRPM:            13500,
			IdleRPM:           3500,
			MaxGears:          8,
			DRSAllowed:        uint8(i % 2),
			TyresWear: telemetry.WheelQuad[uint8]{
				RearLeft: wear, RearRight: wear, FrontLeft: wear / 2, FrontRight: wear / 2,
			},
			ActualTyreCompound: 16,
			VisualTyreCompound: 16,
			ERSStoreEnergy:     float32(4_000_000 * (0.5 + 0.5*math.Sin(t/9+float64(i)))),
			ERSDeployMode:      1,
		}
	}
	return p
}
