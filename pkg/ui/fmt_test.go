package ui

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFormatTime(t *testing.T) {
	assert.Equal(t, "00:00:00", formatTime(0))
	assert.Equal(t, "00:01:23", formatTime(83))
	assert.Equal(t, "01:30:00", formatTime(5400))
	assert.Equal(t, "18:12:15", formatTime(65535))
}

func TestFormatTimeMS(t *testing.T) {
	assert.Equal(t, "--:--:--.---", formatTimeMS(0))
	assert.Equal(t, "--:--:--.---", formatTimeMS(-1))
	assert.Equal(t, "00:01:23.500", formatTimeMS(83.5))
	assert.Equal(t, "01:00:00.250", formatTimeMS(3600.25))
}

func TestFormatSector(t *testing.T) {
	assert.Equal(t, "--.---", formatSector(0))
	assert.Equal(t, "25.300", formatSector(25.3))
	assert.Equal(t, "08.125", formatSector(8.125))
}
