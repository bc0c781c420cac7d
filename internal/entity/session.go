package entity

import (
	"fmt"
	"time"

	"github.com/rocketscienceinc/tictactoe-local/internal/apperror"
)

type SessionState string

const (
	StateNotStarted   SessionState = "not_started"
	StateModeSelected SessionState = "mode_selected"
	StateStarted      SessionState = "started"
	StateInProgress   SessionState = "in_progress"
	StateOver         SessionState = "over"
)

type MatchMode string

const (
	ModeFriend    MatchMode = "friend"
	ModeEasy      MatchMode = "easy"
	ModeMedium    MatchMode = "medium"
	ModeDifficult MatchMode = "difficult"
)

// Modes lists every mode in menu order.
var Modes = []MatchMode{ModeFriend, ModeEasy, ModeMedium, ModeDifficult}

func ParseMatchMode(value string) (MatchMode, error) {
	mode := MatchMode(value)
	if err := mode.Validate(); err != nil {
		return "", err
	}
	return mode, nil
}

func (that MatchMode) Validate() error {
	switch that {
	case ModeFriend, ModeEasy, ModeMedium, ModeDifficult:
		return nil
	default:
		return fmt.Errorf("%w: %q", apperror.ErrUnknownMode, string(that))
	}
}

func (that MatchMode) IsAgainstComputer() bool {
	return that == ModeEasy || that == ModeMedium || that == ModeDifficult
}

// Rival returns the role that plays against the human in this mode.
func (that MatchMode) Rival() Role {
	if that.IsAgainstComputer() {
		return RoleComputer
	}
	return RoleFriend
}

func (that MatchMode) Title() string {
	switch that {
	case ModeFriend:
		return "Friend"
	case ModeEasy:
		return "Easy"
	case ModeMedium:
		return "Medium"
	case ModeDifficult:
		return "Difficult"
	default:
		return string(that)
	}
}

// ScoreBoard is the cross-round tally of a session. Score1 counts X wins and Score2 counts
// O wins; InvertDisplay swaps which counter is shown in the home slot.
type ScoreBoard struct {
	Score1        int  `json:"score_1"`
	Score2        int  `json:"score_2"`
	InvertDisplay bool `json:"invert_display"`
}

// RoundRecord is the audit entry written when a finished round is advanced past.
type RoundRecord struct {
	SessionID  string    `json:"session_id"`
	Round      int       `json:"round"`
	Mode       MatchMode `json:"mode"`
	Grid       Grid      `json:"grid"`
	Outcome    Outcome   `json:"outcome"`
	Score1     int       `json:"score_1"`
	Score2     int       `json:"score_2"`
	FinishedAt time.Time `json:"finished_at"`
}
