package tui

import (
	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/tetris3d/internal/multiplayer"
)

// eventMsg carries something another player on the server did.
type eventMsg struct {
	evt multiplayer.SessionEvent
}

// waitEvent blocks until the next event for link. A closed link yields no
// message, which ends the loop.
func waitEvent(link *multiplayer.ChannelSession) tea.Cmd {
	return func() tea.Msg {
		select {
		case evt := <-link.Events():
			return eventMsg{evt: evt}
		case <-link.Done():
			return nil
		}
	}
}

// online reports how many players share the server, or 0 offline.
func (m Model) online() int {
	if m.deps.Hub == nil {
		return 0
	}
	return m.deps.Hub.Count()
}

// announceRun tells the other players how the game went.
func (m Model) announceRun() {
	if m.deps.Hub == nil || m.deps.Link == nil || m.session.Score() == 0 {
		return
	}
	m.deps.Hub.Broadcast(m.deps.Link.ID(), multiplayer.RunFinishedEvent{
		Name:    m.deps.Link.Name(),
		Score:   m.session.Score(),
		Level:   m.session.Level(),
		NewHigh: m.session.Score() > m.highAtStart,
	})
}
