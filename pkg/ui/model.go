// Package ui renders the decoded feed as a live timing screen: session
// strip, classification table and a player car panel.
package ui

import (
	"fmt"
	"sort"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"pitwall/pkg/engine"
	"pitwall/pkg/telemetry"
)

type refreshMsg time.Time

const defaultRefreshHz = 20

// Model is the bubbletea model. It keeps the latest packet of each kind and
// redraws on a fixed refresh tick, draining every feed that arrived since the
// last one; the game sends far more packets per second than a terminal can
// usefully render. Packets are read-only snapshots so keeping the newest of
// each kind is enough.
type Model struct {
	feed     <-chan engine.Feed
	interval time.Duration
	pal      palette

	session      *telemetry.SessionPacket
	lapData      *telemetry.LapDataPacket
	participants *telemetry.ParticipantsPacket
	carTelemetry *telemetry.CarTelemetryPacket
	carStatus    *telemetry.CarStatusPacket
	lastEvent    *telemetry.EventPacket

	playerIndex int
	packets     uint64
	width       int
}

// NewModel builds a dashboard over feed redrawing at refreshHz; zero or
// negative falls back to 20 Hz.
func NewModel(feed <-chan engine.Feed, refreshHz int) Model {
	if refreshHz <= 0 {
		refreshHz = defaultRefreshHz
	}
	return Model{
		feed:     feed,
		interval: time.Second / time.Duration(refreshHz),
		pal:      newPalette(),
		width:    100,
	}
}

func (m Model) Init() tea.Cmd {
	return m.nextRefresh()
}

func (m Model) nextRefresh() tea.Cmd {
	return tea.Tick(m.interval, func(t time.Time) tea.Msg { return refreshMsg(t) })
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c", "esc":
			return m, tea.Quit
		}
	case tea.WindowSizeMsg:
		m.width = msg.Width
	case refreshMsg:
		for {
			select {
			case feed, ok := <-m.feed:
				if !ok {
					return m, tea.Quit
				}
				m.apply(feed)
			default:
				return m, m.nextRefresh()
			}
		}
	}
	return m, nil
}

func (m *Model) apply(feed engine.Feed) {
	m.packets++
	m.playerIndex = int(feed.Packet.Header().PlayerCarIndex)

	switch p := feed.Packet.(type) {
	case *telemetry.SessionPacket:
		m.session = p
	case *telemetry.LapDataPacket:
		m.lapData = p
	case *telemetry.ParticipantsPacket:
		m.participants = p
	case *telemetry.CarTelemetryPacket:
		m.carTelemetry = p
	case *telemetry.CarStatusPacket:
		m.carStatus = p
	case *telemetry.EventPacket:
		m.lastEvent = p
	}
}

func (m Model) View() string {
	var b strings.Builder

	b.WriteString(m.sessionLine())
	b.WriteString("\n\n")
	b.WriteString(m.timingTable())
	b.WriteString("\n")
	b.WriteString(m.playerPanel())
	b.WriteString("\n")
	b.WriteString(m.pal.dim(fmt.Sprintf("%d packets · q to quit", m.packets)))
	b.WriteString("\n")

	return b.String()
}

func (m Model) sessionLine() string {
	if m.session == nil {
		return m.pal.dim("waiting for session...")
	}
	s := m.session
	line := fmt.Sprintf("%s · track %d · air %d°C · track %d°C · %s left",
		s.SessionType, s.TrackID, s.AirTemperature, s.TrackTemperature,
		formatTime(s.SessionTimeLeft))
	if s.SafetyCarStatus != 0 {
		line += " · " + m.pal.danger("SAFETY CAR")
	}
	if m.lastEvent != nil && m.lastEvent.Code == telemetry.EventFastestLap {
		line += " · " + m.pal.ok(fmt.Sprintf("fastest lap car %d %s",
			m.lastEvent.VehicleIndex, formatTimeMS(m.lastEvent.LapTime)))
	}
	return m.pal.bold(line)
}

type row struct {
	index int
	lap   telemetry.CarLap
}

func (m Model) timingTable() string {
	if m.lapData == nil {
		return m.pal.dim("waiting for lap data...")
	}

	rows := make([]row, 0, telemetry.NumCars)
	for i, lap := range m.lapData.LapData {
		if lap.CarPosition == 0 {
			continue
		}
		rows = append(rows, row{index: i, lap: lap})
	}
	sort.Slice(rows, func(i, j int) bool {
		return rows[i].lap.CarPosition < rows[j].lap.CarPosition
	})

	var b strings.Builder
	b.WriteString(m.pal.dim(fmt.Sprintf(" %2s %-3s %-16s %12s %12s %12s %7s %7s %s\n",
		"P", "NO", "DRIVER", "CURRENT", "LAST", "BEST", "S1", "S2", "")))

	for _, r := range rows {
		name := fmt.Sprintf("CAR %d", r.index)
		number := "-"
		team := telemetry.Team(255)
		if m.participants != nil {
			p := m.participants.Participants[r.index]
			if p.Name != "" {
				name = p.Name
			}
			number = fmt.Sprintf("%d", p.RaceNumber)
			team = p.TeamID
		}

		flags := ""
		if r.lap.PitStatus != 0 {
			flags = "PIT"
		}
		if r.lap.ResultStatus == 6 {
			flags = "OUT"
		}

		line := fmt.Sprintf(" %2d %-3s %-16s %12s %12s %12s %7s %7s %s",
			r.lap.CarPosition, number, truncate(name, 16),
			formatTimeMS(r.lap.CurrentLapTime),
			formatTimeMS(r.lap.LastLapTime),
			formatTimeMS(r.lap.BestLapTime),
			formatSector(r.lap.Sector1Time),
			formatSector(r.lap.Sector2Time),
			flags)

		if team <= telemetry.TeamAlfaRomeo {
			line = m.pal.team(team, line)
		}
		if r.index == m.playerIndex {
			line = m.pal.bold(line)
		}
		b.WriteString(line)
		b.WriteString("\n")
	}
	return b.String()
}

func (m Model) playerPanel() string {
	if m.carTelemetry == nil {
		return m.pal.dim("waiting for car telemetry...")
	}
	if m.playerIndex < 0 || m.playerIndex >= telemetry.NumCars {
		return ""
	}
	t := m.carTelemetry.Telemetry[m.playerIndex]

	gear := fmt.Sprintf("%d", t.Gear)
	switch t.Gear {
	case 0:
		gear = "N"
	case -1:
		gear = "R"
	}

	drs := m.pal.dim("DRS")
	if t.DRS != 0 {
		drs = m.pal.ok("DRS")
	}

	line := fmt.Sprintf(" %3d km/h · gear %s · %5d rpm · %s · tyres %d/%d/%d/%d°C",
		t.Speed, gear, t.EngineRPM, drs,
		t.TyresSurfaceTemperature.RearLeft, t.TyresSurfaceTemperature.RearRight,
		t.TyresSurfaceTemperature.FrontLeft, t.TyresSurfaceTemperature.FrontRight)

	if m.carStatus != nil {
		s := m.carStatus.Statuses[m.playerIndex]
		line += fmt.Sprintf(" · fuel %.1f laps · ers %.0f kJ",
			s.FuelRemainingLaps, s.ERSStoreEnergy/1000)
	}
	return line
}

// truncate shortens s to at most n runes; driver names are UTF-8 and must
// not be cut mid-sequence.
func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n-1]) + "…"
}
