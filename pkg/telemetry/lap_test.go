package telemetry

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLapDataDecode(t *testing.T) {
	pkt, err := Parse(lapDataDatagram())
	require.NoError(t, err)

	lapData := pkt.(*LapDataPacket)
	for i, lap := range lapData.LapData {
		base := float32(i)
		assert.Equal(t, 80+base, lap.LastLapTime, "car %d", i)
		assert.Equal(t, 30+base, lap.CurrentLapTime, "car %d", i)
		assert.Equal(t, 79+base, lap.BestLapTime, "car %d", i)
		assert.Equal(t, 25+base, lap.Sector1Time, "car %d", i)
		assert.Equal(t, uint8(i+1), lap.CarPosition, "car %d", i)
		assert.Equal(t, uint8(12), lap.CurrentLapNum, "car %d", i)
		assert.Equal(t, uint8(4), lap.DriverStatus, "car %d", i)
		assert.Equal(t, uint8(2), lap.ResultStatus, "car %d", i)
	}
}
