package tui

import (
	"context"
	"io"
	"log/slog"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/rocketscienceinc/tictactoe-local/internal/apperror"
	"github.com/rocketscienceinc/tictactoe-local/internal/entity"
	"github.com/rocketscienceinc/tictactoe-local/internal/session"
)

type mockSession struct {
	mock.Mock
	snapshot session.Snapshot
}

func (that *mockSession) SelectMode(mode entity.MatchMode) error {
	return that.Called(mode).Error(0)
}

func (that *mockSession) PickSide(marker entity.Marker) error {
	return that.Called(marker).Error(0)
}

func (that *mockSession) NameParticipants(home, rival string) error {
	return that.Called(home, rival).Error(0)
}

func (that *mockSession) Move(index int, role entity.Role) {
	that.Called(index, role)
}

func (that *mockSession) ResetSession() {
	that.Called()
}

func (that *mockSession) Snapshot() session.Snapshot {
	return that.snapshot
}

func newTestModel(t *testing.T, snapshot session.Snapshot) (*model, *mockSession) {
	t.Helper()

	uSession := &mockSession{snapshot: snapshot}
	logger := slog.New(slog.NewJSONHandler(io.Discard, nil))
	server := New(logger, uSession)

	return newModel(context.Background(), logger, uSession, server.changes, server.results), uSession
}

func key(value string) tea.KeyMsg {
	switch value {
	case "enter":
		return tea.KeyMsg{Type: tea.KeyEnter}
	case "esc":
		return tea.KeyMsg{Type: tea.KeyEsc}
	case "tab":
		return tea.KeyMsg{Type: tea.KeyTab}
	case "up":
		return tea.KeyMsg{Type: tea.KeyUp}
	case "down":
		return tea.KeyMsg{Type: tea.KeyDown}
	case "ctrl+c":
		return tea.KeyMsg{Type: tea.KeyCtrlC}
	default:
		return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(value)}
	}
}

func typeText(m *model, text string) {
	for _, r := range text {
		m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}})
	}
}

func boardSnapshot(mode entity.MatchMode, human entity.Marker) session.Snapshot {
	lineup := entity.NewLineup(mode, human)
	names := entity.Names{Home: "Ann", Rival: "Bob"}
	if lineup.HasComputer() {
		names.Rival = entity.ComputerName
	}

	return session.Snapshot{
		State:    entity.StateInProgress,
		Mode:     mode,
		Lineup:   lineup,
		Names:    names,
		Round:    1,
		NextMove: entity.MarkerX,
		NextRole: lineup.RoleOf(entity.MarkerX),
	}
}

func TestModel_ModeSelect(t *testing.T) {
	// Given: the mode menu
	m, uSession := newTestModel(t, session.Snapshot{State: entity.StateNotStarted})
	uSession.On("SelectMode", entity.ModeEasy).Return(nil).Once()

	// When: the second entry is chosen
	m.Update(key("j"))
	m.Update(key("enter"))

	// Then: the session receives that mode
	uSession.AssertExpectations(t)
	assert.Contains(t, m.View(), "Easy")
}

func TestModel_ModeSelectStaysInRange(t *testing.T) {
	m, uSession := newTestModel(t, session.Snapshot{State: entity.StateNotStarted})
	uSession.On("SelectMode", entity.ModeDifficult).Return(nil).Once()

	for range 10 {
		m.Update(key("down"))
	}
	m.Update(key("enter"))

	uSession.AssertExpectations(t)
}

func TestModel_SidePick(t *testing.T) {
	// Given: a selected mode
	m, uSession := newTestModel(t, session.Snapshot{State: entity.StateModeSelected, Mode: entity.ModeFriend})
	uSession.On("PickSide", entity.MarkerO).Return(nil).Once()

	// When: O is chosen and confirmed
	m.Update(key("o"))
	m.Update(key("enter"))

	// Then: the session receives O
	uSession.AssertExpectations(t)
}

func TestModel_Names(t *testing.T) {
	t.Run("Friend mode sends both names", func(t *testing.T) {
		// Given: the name screen in Friend mode
		snap := session.Snapshot{
			State:  entity.StateStarted,
			Mode:   entity.ModeFriend,
			Lineup: entity.NewLineup(entity.ModeFriend, entity.MarkerX),
		}
		m, uSession := newTestModel(t, snap)
		uSession.On("NameParticipants", "Ann", "Bob").Return(nil).Once()

		// When: both names are typed
		typeText(m, "Ann")
		m.Update(key("tab"))
		typeText(m, "Bob")
		m.Update(key("enter"))

		// Then: the session receives them
		uSession.AssertExpectations(t)
	})

	t.Run("Typing q does not quit", func(t *testing.T) {
		snap := session.Snapshot{
			State:  entity.StateStarted,
			Mode:   entity.ModeEasy,
			Lineup: entity.NewLineup(entity.ModeEasy, entity.MarkerX),
			Names:  entity.Names{Rival: entity.ComputerName},
		}
		m, uSession := newTestModel(t, snap)
		uSession.On("NameParticipants", "Quinn", "").Return(nil).Once()

		typeText(m, "Quinn")
		m.Update(key("tab"))
		m.Update(key("enter"))

		uSession.AssertExpectations(t)
		assert.Equal(t, homeInput, m.focus)
	})

	t.Run("Missing names show a notice", func(t *testing.T) {
		snap := session.Snapshot{
			State:  entity.StateStarted,
			Mode:   entity.ModeFriend,
			Lineup: entity.NewLineup(entity.ModeFriend, entity.MarkerX),
		}
		m, uSession := newTestModel(t, snap)
		uSession.On("NameParticipants", "Ann", "").Return(apperror.ErrNamesRequired).Once()

		typeText(m, "Ann")
		m.Update(key("enter"))

		assert.Contains(t, m.View(), "Please enter a name for every player")
	})
}

func TestModel_Board(t *testing.T) {
	t.Run("Computer modes move as the human", func(t *testing.T) {
		// Given: an easy round
		m, uSession := newTestModel(t, boardSnapshot(entity.ModeEasy, entity.MarkerX))
		uSession.On("Move", 0, entity.RoleHuman).Once()

		// When: the cursor goes from the centre to the top-left corner
		m.Update(key("k"))
		m.Update(key("h"))
		m.Update(key("enter"))

		// Then: the move is placed there
		uSession.AssertExpectations(t)
	})

	t.Run("Friend mode moves as whoever holds the turn", func(t *testing.T) {
		snap := boardSnapshot(entity.ModeFriend, entity.MarkerO)
		m, uSession := newTestModel(t, snap)
		uSession.On("Move", 8, entity.RoleFriend).Once()

		for range 4 {
			m.Update(key("l"))
			m.Update(key("j"))
		}
		m.Update(key(" "))

		uSession.AssertExpectations(t)
	})

	t.Run("View shows names, scores and turn", func(t *testing.T) {
		snap := boardSnapshot(entity.ModeFriend, entity.MarkerX)
		snap.HomeScore = 2
		snap.RivalScore = 1
		m, _ := newTestModel(t, snap)

		view := m.View()

		assert.Contains(t, view, "Ann")
		assert.Contains(t, view, "Bob")
		assert.Contains(t, view, "2 : 1")
		assert.Contains(t, view, "Turn: Ann")
	})
}

func TestModel_Result(t *testing.T) {
	over := func() session.Snapshot {
		snap := boardSnapshot(entity.ModeFriend, entity.MarkerX)
		snap.State = entity.StateOver
		snap.Outcome = entity.OutcomeXWins
		snap.Revealed = true
		return snap
	}

	t.Run("n advances the round", func(t *testing.T) {
		// Given: a revealed result
		m, uSession := newTestModel(t, over())
		advanced, reset := 0, 0
		hadDeadline := false
		m.Update(resultMsg{result: session.Result{
			Outcome: entity.OutcomeXWins,
			Text:    "Player X wins!",
			OnAdvanceRound: func(ctx context.Context) {
				_, hadDeadline = ctx.Deadline()
				advanced++
			},
			OnResetSession: func() { reset++ },
		}})
		require.Contains(t, m.View(), "Player X wins!")

		// When: n is pressed twice
		_, first := m.Update(key("n"))
		_, second := m.Update(key("n"))

		// Then: the advance runs as a command, once, with a deadline
		require.NotNil(t, first)
		assert.Nil(t, second)
		assert.Zero(t, advanced)

		assert.Equal(t, roundAdvancedMsg{}, first())
		assert.Equal(t, 1, advanced)
		assert.True(t, hadDeadline)
		assert.Zero(t, reset)
		uSession.AssertExpectations(t)
	})

	t.Run("r resets the session", func(t *testing.T) {
		m, _ := newTestModel(t, over())
		reset := 0
		m.Update(resultMsg{result: session.Result{
			OnAdvanceRound: func(context.Context) {},
			OnResetSession: func() { reset++ },
		}})

		m.Update(key("r"))

		assert.Equal(t, 1, reset)
	})

	t.Run("n does nothing before the result is revealed", func(t *testing.T) {
		snap := over()
		snap.Revealed = false
		m, _ := newTestModel(t, snap)

		m.Update(key("n"))

		assert.Nil(t, m.result)
	})
}

func TestModel_Quit(t *testing.T) {
	m, _ := newTestModel(t, session.Snapshot{State: entity.StateNotStarted})

	_, cmd := m.Update(key("ctrl+c"))

	require.NotNil(t, cmd)
	assert.Equal(t, tea.Quit(), cmd())
}

func TestServer_NotificationsNeverBlock(t *testing.T) {
	// Given: a server nobody is reading from
	logger := slog.New(slog.NewJSONHandler(io.Discard, nil))
	server := New(logger, &mockSession{})

	// When: many notifications arrive
	for range 10 {
		server.OnChange(session.Snapshot{})
		server.OnRoundOver(session.Result{})
	}

	// Then: changes are coalesced and results are capped
	assert.Len(t, server.changes, 1)
	assert.Len(t, server.results, resultBuffer)
}

func TestModel_ChangeRefreshesSnapshot(t *testing.T) {
	m, uSession := newTestModel(t, session.Snapshot{State: entity.StateNotStarted})

	uSession.snapshot = session.Snapshot{State: entity.StateModeSelected, Mode: entity.ModeMedium}
	_, cmd := m.Update(changeMsg{})

	assert.NotNil(t, cmd)
	assert.Equal(t, entity.StateModeSelected, m.snapshot.State)
	assert.Contains(t, m.View(), "Medium")
}
