package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/rocketscienceinc/tictactoe-local/internal/entity"
)

var (
	titleStyle    = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.AdaptiveColor{Light: "#4204b5ff", Dark: "#8f6bf5ff"}).Render
	xStyle        = lipgloss.NewStyle().Foreground(lipgloss.AdaptiveColor{Light: "#007e50ff", Dark: "#6afd76ff"}).Render
	oStyle        = lipgloss.NewStyle().Foreground(lipgloss.AdaptiveColor{Light: "#0003adff", Dark: "#5f61fcff"}).Render
	cursorStyle   = lipgloss.NewStyle().Foreground(lipgloss.AdaptiveColor{Light: "#960000ff", Dark: "#fc7e7eff"}).Render
	winningStyle  = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.AdaptiveColor{Light: "#bb0000ff", Dark: "#df1010ff"}).Render
	bracketStyle  = lipgloss.NewStyle().Foreground(lipgloss.AdaptiveColor{Light: "#414141ff", Dark: "#8f8f8fff"}).Render
	selectorStyle = lipgloss.NewStyle().Foreground(lipgloss.AdaptiveColor{Light: "#04B575", Dark: "#04B575"}).Render
	scoreStyle    = lipgloss.NewStyle().Foreground(lipgloss.AdaptiveColor{Light: "#8a880fff", Dark: "#ddda1dff"}).Render
	noticeStyle   = lipgloss.NewStyle().Foreground(lipgloss.AdaptiveColor{Light: "#b55404ff", Dark: "#f5a25dff"}).Render
	helpStyle     = lipgloss.NewStyle().Foreground(lipgloss.AdaptiveColor{Light: "#8f8f8fff", Dark: "#626262ff"}).Render
	resultStyle   = lipgloss.NewStyle().Bold(true).Padding(0, 2).Border(lipgloss.RoundedBorder()).Render
)

func (that *model) View() string {
	var b strings.Builder

	b.WriteString(titleStyle("Tic Tac Toe"))
	b.WriteString("\n\n")

	switch that.snapshot.State {
	case entity.StateNotStarted:
		that.viewModes(&b)
	case entity.StateModeSelected:
		that.viewSides(&b)
	case entity.StateStarted:
		that.viewNames(&b)
	case entity.StateInProgress, entity.StateOver:
		that.viewBoard(&b)
	}

	if that.notice != "" {
		b.WriteString("\n" + noticeStyle(that.notice) + "\n")
	}

	return b.String()
}

func (that *model) viewModes(b *strings.Builder) {
	b.WriteString("Choose a mode:\n\n")

	for i, mode := range entity.Modes {
		if i == that.modeCursor {
			b.WriteString(selectorStyle("> " + mode.Title()))
		} else {
			b.WriteString("  " + mode.Title())
		}
		b.WriteString("\n")
	}

	b.WriteString("\n" + helpStyle("↑/↓ choose • enter select • q quit") + "\n")
}

func (that *model) viewSides(b *strings.Builder) {
	fmt.Fprintf(b, "Mode: %s\n\nPick your side:  ", that.snapshot.Mode.Title())

	for _, marker := range []entity.Marker{entity.MarkerX, entity.MarkerO} {
		label := " " + string(marker) + " "
		if marker == that.side {
			label = selectorStyle("[" + string(marker) + "]")
		}
		b.WriteString(label + " ")
	}

	b.WriteString("\n\n" + helpStyle("←/→ choose • enter confirm • esc back • q quit") + "\n")
}

func (that *model) viewNames(b *strings.Builder) {
	fmt.Fprintf(b, "You play %s\n\n", markerView(that.snapshot.Lineup.Human))
	b.WriteString(that.inputs[homeInput].View() + "\n")

	if that.askRivalName() {
		b.WriteString(that.inputs[rivalInput].View() + "\n")
	} else {
		fmt.Fprintf(b, "Opponent: %s\n", that.snapshot.Names.Rival)
	}

	b.WriteString("\n" + helpStyle("tab switch • enter start • esc back • ctrl+c quit") + "\n")
}

func (that *model) viewBoard(b *strings.Builder) {
	snap := that.snapshot
	lineup := snap.Lineup

	fmt.Fprintf(b, "%s (%s)  %s  %s (%s)   round %d\n\n",
		snap.Names.Home, markerView(lineup.Human),
		scoreStyle(fmt.Sprintf("%d : %d", snap.HomeScore, snap.RivalScore)),
		snap.Names.Rival, markerView(lineup.RivalMarker()),
		snap.Round,
	)

	highlight := make(map[int]bool, 3)
	if snap.HasWinningLine {
		for _, index := range snap.WinningLine {
			highlight[index] = true
		}
	}

	for row := range 3 {
		for col := range 3 {
			index := row*3 + col
			b.WriteString(that.cellView(index, highlight[index]))
		}
		b.WriteString("\n")
	}
	b.WriteString("\n")

	switch {
	case snap.State == entity.StateOver && that.result != nil:
		b.WriteString(resultStyle(that.result.Text) + "\n\n")
		b.WriteString(helpStyle("n next round • r reset • q quit") + "\n")
	case snap.State == entity.StateOver:
		b.WriteString("\n")
	default:
		fmt.Fprintf(b, "Turn: %s (%s)", that.nameOf(snap.NextRole), markerView(snap.NextMove))
		if snap.ComputerThinking {
			b.WriteString(" " + that.spinner.View())
		}
		b.WriteString("\n\n" + helpStyle("arrows/hjkl move • enter place • esc reset • q quit") + "\n")
	}
}

func (that *model) cellView(index int, winning bool) string {
	open, closing := bracketStyle("["), bracketStyle("]")
	if index == that.cursor && that.snapshot.State == entity.StateInProgress {
		open, closing = cursorStyle("["), cursorStyle("]")
	}

	mark := " "
	if marker := that.snapshot.Grid[index]; marker != entity.MarkerNone {
		mark = markerView(marker)
		if winning {
			mark = winningStyle(string(marker))
		}
	}

	return open + mark + closing
}

func (that *model) nameOf(role entity.Role) string {
	if role == entity.RoleHuman {
		return that.snapshot.Names.Home
	}
	return that.snapshot.Names.Rival
}

func markerView(marker entity.Marker) string {
	switch marker {
	case entity.MarkerX:
		return xStyle("X")
	case entity.MarkerO:
		return oStyle("O")
	default:
		return "-"
	}
}
