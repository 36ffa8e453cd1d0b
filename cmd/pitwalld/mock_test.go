package main

import (
	"context"
	"math"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"pitwall/pkg/engine"
	"pitwall/pkg/telemetry"
)

func TestMockGridIsFullField(t *testing.T) {
	require.Len(t, mockGrid, telemetry.NumCars)

	names := make(map[string]struct{})
	for _, d := range mockGrid {
		assert.NotEmpty(t, d.name)
		assert.LessOrEqual(t, d.team, telemetry.TeamAlfaRomeo)
		names[d.name] = struct{}{}
	}
	assert.Len(t, names, telemetry.NumCars, "driver names must be unique")
}

func TestMockHeader(t *testing.T) {
	hdr := mockHeader(12.5, 250)

	assert.Equal(t, telemetry.FormatF12019, hdr.FormatVersion)
	assert.Equal(t, float32(12.5), hdr.SessionTime)
	assert.Equal(t, uint32(250), hdr.FrameIdentifier)
	assert.Equal(t, uint8(mockPlayerIndex), hdr.PlayerCarIndex)
}

func TestMockLapDataPositionsArePermutation(t *testing.T) {
	p := mockLapData(mockHeader(600, 0), 600)

	assert.Equal(t, telemetry.PacketIDLapData, p.Hdr.PacketID)

	seen := make(map[uint8]int)
	for i, lap := range p.LapData {
		seen[lap.CarPosition]++
		assert.Greater(t, lap.TotalDistance, float32(0), "car %d", i)
		assert.Equal(t, uint8(2), lap.ResultStatus, "car %d", i)
	}
	for pos := uint8(1); pos <= telemetry.NumCars; pos++ {
		assert.Equal(t, 1, seen[pos], "position %d", pos)
	}
}

func TestMockCarTelemetryStaysInRange(t *testing.T) {
	for _, at := range []float64{0.1, 30, 90, 600} {
		p := mockCarTelemetry(mockHeader(at, 0), at)
		for i, car := range p.Telemetry {
			assert.GreaterOrEqual(t, car.Gear, int8(1), "t=%v car %d", at, i)
			assert.LessOrEqual(t, car.Gear, int8(8), "t=%v car %d", at, i)
			assert.LessOrEqual(t, car.Speed, uint16(340), "t=%v car %d", at, i)
			assert.GreaterOrEqual(t, car.Throttle, float32(0), "t=%v car %d", at, i)
			assert.LessOrEqual(t, car.Throttle, float32(1), "t=%v car %d", at, i)
		}
	}
}

func TestMockMotionKeepsCarsOnTrack(t *testing.T) {
	p := mockMotion(mockHeader(42, 840), 42)

	assert.Equal(t, telemetry.PacketIDMotion, p.Hdr.PacketID)

	const radius = mockTrackLength / (2 * math.Pi)
	for i, car := range p.MotionData {
		dist := math.Hypot(float64(car.WorldPositionX), float64(car.WorldPositionZ))
		assert.InDelta(t, radius, dist, 1.0, "car %d", i)

		// Forward direction is a scaled unit vector.
		norm := math.Hypot(float64(car.WorldForwardDirX), float64(car.WorldForwardDirZ))
		assert.InDelta(t, 32767, norm, 2, "car %d", i)

		speed := math.Hypot(float64(car.WorldVelocityX), float64(car.WorldVelocityZ))
		assert.Greater(t, speed, 50.0, "car %d", i)
		assert.Less(t, speed, 80.0, "car %d", i)
	}

	// Different paces put cars at different track angles.
	assert.NotEqual(t, p.MotionData[0].Yaw, p.MotionData[19].Yaw)

	wheel := p.WheelSpeed
	assert.Greater(t, wheel.RearLeft, float32(0))
	assert.Equal(t, wheel.RearLeft, wheel.FrontRight)
}

func TestMockSessionCountdownClamps(t *testing.T) {
	early := mockSession(mockHeader(60, 0), 60)
	assert.Equal(t, uint16(mockSessionSecs-60), early.SessionTimeLeft)

	late := mockSession(mockHeader(999999, 0), 999999)
	assert.Equal(t, uint16(0), late.SessionTimeLeft)
}

func TestRunMockSessionPublishes(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	hub := engine.NewHub()
	go hub.Run(ctx)
	sub := hub.SubscribeWithBuffer(64)

	go runMockSession(ctx, hub)

	kinds := make(map[telemetry.PacketID]struct{})
	timeout := time.After(3 * time.Second)
	for len(kinds) < 5 {
		select {
		case feed := <-sub:
			kinds[feed.Packet.Header().PacketID] = struct{}{}
		case <-timeout:
			t.Fatalf("only saw packet kinds %v", kinds)
		}
	}

	assert.Contains(t, kinds, telemetry.PacketIDMotion)
	assert.Contains(t, kinds, telemetry.PacketIDLapData)
	assert.Contains(t, kinds, telemetry.PacketIDCarTelemetry)
	assert.Contains(t, kinds, telemetry.PacketIDSession)
	assert.Contains(t, kinds, telemetry.PacketIDCarStatus)
}
