package session

import "github.com/rocketscienceinc/tictactoe-local/internal/entity"

// Snapshot is a copy of everything the presentation shows.
type Snapshot struct {
	SessionID string
	State     entity.SessionState
	Mode      entity.MatchMode
	Lineup    entity.Lineup
	Names     entity.Names
	Round     int

	Grid     entity.Grid
	NextMove entity.Marker
	NextRole entity.Role

	Outcome        entity.Outcome
	ResultText     string
	Revealed       bool
	WinningLine    [3]int
	HasWinningLine bool

	HomeScore  int
	RivalScore int

	ComputerThinking bool
}

// ActingRole is the role a local input acts as: whoever holds the turn in Friend mode,
// the human otherwise.
func (that Snapshot) ActingRole() entity.Role {
	if that.Lineup.HasComputer() {
		return entity.RoleHuman
	}
	return that.NextRole
}

func (that *Controller) snapshot() Snapshot {
	home, rival := that.keeper.Display()
	line, hasLine := that.detector.Line(that.data.round.grid)

	return Snapshot{
		SessionID: that.data.id,
		State:     that.data.state,
		Mode:      that.data.mode,
		Lineup:    that.data.lineup,
		Names:     that.data.names,
		Round:     that.data.round.number,

		Grid:     that.data.round.grid,
		NextMove: that.data.round.next,
		NextRole: that.data.lineup.RoleOf(that.data.round.next),

		Outcome:        that.data.round.outcome,
		ResultText:     that.data.round.outcome.Text(),
		Revealed:       that.data.round.revealed,
		WinningLine:    line,
		HasWinningLine: hasLine,

		HomeScore:  home,
		RivalScore: rival,

		ComputerThinking: that.turns.Pending(),
	}
}
