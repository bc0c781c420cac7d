package entity

type Role string

const (
	RoleNone     Role = ""
	RoleHuman    Role = "human"
	RoleFriend   Role = "friend"
	RoleComputer Role = "computer"
)

// ComputerName is the fixed display name of the automated opponent.
const ComputerName = "AI"

// Lineup assigns markers to the two roles of a match: the human and a rival that is either
// a friend or the computer. The rival always holds the opposite marker.
type Lineup struct {
	Human Marker `json:"human"`
	Rival Role   `json:"rival"`
}

func NewLineup(mode MatchMode, human Marker) Lineup {
	return Lineup{Human: human, Rival: mode.Rival()}
}

func (that Lineup) IsZero() bool {
	return that.Human == MarkerNone || that.Rival == RoleNone
}

func (that Lineup) RivalMarker() Marker {
	return that.Human.Opposite()
}

// MarkerOf returns the marker held by role, or MarkerNone when role is not in the lineup.
func (that Lineup) MarkerOf(role Role) Marker {
	switch {
	case that.IsZero():
		return MarkerNone
	case role == RoleHuman:
		return that.Human
	case role == that.Rival:
		return that.RivalMarker()
	default:
		return MarkerNone
	}
}

// RoleOf returns the role holding marker.
func (that Lineup) RoleOf(marker Marker) Role {
	switch {
	case that.IsZero() || marker == MarkerNone:
		return RoleNone
	case marker == that.Human:
		return RoleHuman
	default:
		return that.Rival
	}
}

func (that Lineup) HasComputer() bool {
	return that.Rival == RoleComputer
}

// Names are the display names of the home (human) and rival slots.
type Names struct {
	Home  string `json:"home"`
	Rival string `json:"rival"`
}
