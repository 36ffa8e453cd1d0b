package telemetry

// PacketID selects the payload layout that follows the header.
type PacketID uint8

const (
	PacketIDMotion       PacketID = 0
	PacketIDSession      PacketID = 1
	PacketIDLapData      PacketID = 2
	PacketIDEvent        PacketID = 3
	PacketIDParticipants PacketID = 4
	PacketIDCarSetups    PacketID = 5
	PacketIDCarTelemetry PacketID = 6
	PacketIDCarStatus    PacketID = 7
)

func (id PacketID) String() string {
	switch id {
	case PacketIDMotion:
		return "motion"
	case PacketIDSession:
		return "session"
	case PacketIDLapData:
		return "lap_data"
	case PacketIDEvent:
		return "event"
	case PacketIDParticipants:
		return "participants"
	case PacketIDCarSetups:
		return "car_setups"
	case PacketIDCarTelemetry:
		return "car_telemetry"
	case PacketIDCarStatus:
		return "car_status"
	}
	return "unknown"
}

// Team is a 2019-grid constructor id as carried in the participants packet.
type Team uint8

const (
	TeamMercedes Team = iota
	TeamFerrari
	TeamRedBullRacing
	TeamWilliams
	TeamRacingPoint
	TeamRenault
	TeamToroRosso
	TeamHaas
	TeamMcLaren
	TeamAlfaRomeo
)

func (t Team) String() string {
	switch t {
	case TeamMercedes:
		return "Mercedes"
	case TeamFerrari:
		return "Ferrari"
	case TeamRedBullRacing:
		return "Red Bull Racing"
	case TeamWilliams:
		return "Williams"
	case TeamRacingPoint:
		return "Racing Point"
	case TeamRenault:
		return "Renault"
	case TeamToroRosso:
		return "Toro Rosso"
	case TeamHaas:
		return "Haas"
	case TeamMcLaren:
		return "McLaren"
	case TeamAlfaRomeo:
		return "Alfa Romeo"
	}
	return "Unknown"
}

// Colour returns the team's livery colour as a hex string for terminal
// rendering.
func (t Team) Colour() string {
	switch t {
	case TeamMercedes:
		return "#00D2BE"
	case TeamFerrari:
		return "#DC0000"
	case TeamRedBullRacing:
		return "#1E41FF"
	case TeamWilliams:
		return "#FFFFFF"
	case TeamRacingPoint:
		return "#F596C8"
	case TeamRenault:
		return "#FFF500"
	case TeamToroRosso:
		return "#469BFF"
	case TeamHaas:
		return "#F0D787"
	case TeamMcLaren:
		return "#FF8700"
	case TeamAlfaRomeo:
		return "#9B0000"
	}
	return "#808080"
}

// SessionType as carried in the session packet.
type SessionType uint8

const (
	SessionUnknown SessionType = iota
	SessionP1
	SessionP2
	SessionP3
	SessionShortPractice
	SessionQ1
	SessionQ2
	SessionQ3
	SessionShortQualifying
	SessionOneShotQualifying
	SessionRace
	SessionRace2
	SessionTimeTrial
)

func (s SessionType) String() string {
	switch s {
	case SessionP1:
		return "P1"
	case SessionP2:
		return "P2"
	case SessionP3:
		return "P3"
	case SessionShortPractice:
		return "Short Practice"
	case SessionQ1:
		return "Q1"
	case SessionQ2:
		return "Q2"
	case SessionQ3:
		return "Q3"
	case SessionShortQualifying:
		return "Short Qualifying"
	case SessionOneShotQualifying:
		return "One-Shot Qualifying"
	case SessionRace, SessionRace2:
		return "Race"
	case SessionTimeTrial:
		return "Time Trial"
	}
	return "Unknown"
}
