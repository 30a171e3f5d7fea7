// Package tui provides the Bubble Tea front end for the well: input mapping,
// the three projected views, the gravity clock and SSH hosting.
package tui

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"
)

// TickMsg is sent when a gravity period elapses. Gen identifies the clock
// that scheduled it; ticks from a superseded clock are dropped.
type TickMsg struct {
	Gen  int
	Time time.Time
}

// tickCmd returns a Bubble Tea command that fires one TickMsg after interval.
func tickCmd(interval time.Duration, gen int) tea.Cmd {
	return tea.Tick(interval, func(t time.Time) tea.Msg {
		return TickMsg{Gen: gen, Time: t}
	})
}

// flashClearMsg removes a transient HUD message.
type flashClearMsg struct{ id int }

const flashDuration = 1500 * time.Millisecond

func flashCmd(id int) tea.Cmd {
	return tea.Tick(flashDuration, func(time.Time) tea.Msg {
		return flashClearMsg{id: id}
	})
}
