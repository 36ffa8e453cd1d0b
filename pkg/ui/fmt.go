package ui

import (
	"fmt"

	"github.com/muesli/termenv"

	"pitwall/pkg/telemetry"
)

// formatTime renders whole seconds as HH:MM:SS.
func formatTime(ts uint16) string {
	hours := ts / 3600
	minutes := (ts - hours*3600) / 60
	seconds := ts % 60
	return fmt.Sprintf("%02d:%02d:%02d", hours, minutes, seconds)
}

// formatTimeMS renders fractional seconds as HH:MM:SS.mmm. Lap fields that
// are still zero (no lap set yet) render as dashes.
func formatTimeMS(ts float32) string {
	if ts <= 0 {
		return "--:--:--.---"
	}
	total := int64(ts)
	millis := int64(float64(ts-float32(total)) * 1000.0)

	hours := total / 3600
	minutes := (total - hours*3600) / 60
	seconds := total % 60
	return fmt.Sprintf("%02d:%02d:%02d.%03d", hours, minutes, seconds, millis)
}

// formatSector renders a sector time as MM:SS.mmm, dashes when unset.
func formatSector(ts float32) string {
	if ts <= 0 {
		return "--.---"
	}
	return fmt.Sprintf("%06.3f", ts)
}

type palette struct {
	profile termenv.Profile
}

func newPalette() palette {
	return palette{profile: termenv.ColorProfile()}
}

func (p palette) team(t telemetry.Team, s string) string {
	return termenv.String(s).Foreground(p.profile.Color(t.Colour())).Bold().String()
}

func (p palette) dim(s string) string {
	return termenv.String(s).Faint().String()
}

func (p palette) bold(s string) string {
	return termenv.String(s).Bold().String()
}

func (p palette) danger(s string) string {
	return termenv.String(s).Foreground(p.profile.Color("#FF0000")).String()
}

func (p palette) ok(s string) string {
	return termenv.String(s).Foreground(p.profile.Color("#00FF00")).String()
}
