package multiplayer

import (
	"fmt"

	"github.com/dustin/go-humanize"
)

// SessionEvent is something another player did.
type SessionEvent interface {
	// Notice is the one-line text shown to other players.
	Notice() string
}

// PlayerJoinedEvent is sent when a player connects.
type PlayerJoinedEvent struct {
	Name string
}

func (e PlayerJoinedEvent) Notice() string {
	return fmt.Sprintf("%s joined", e.Name)
}

// PlayerLeftEvent is sent when a player disconnects.
type PlayerLeftEvent struct {
	Name string
}

func (e PlayerLeftEvent) Notice() string {
	return fmt.Sprintf("%s left", e.Name)
}

// RunFinishedEvent is sent when a player's game ends.
type RunFinishedEvent struct {
	Name    string
	Score   int
	Level   int
	NewHigh bool // the score beat the server's best
}

func (e RunFinishedEvent) Notice() string {
	if e.NewHigh {
		return fmt.Sprintf("%s: NEW HIGH %s", e.Name, humanize.Comma(int64(e.Score)))
	}
	return fmt.Sprintf("%s: %s", e.Name, humanize.Comma(int64(e.Score)))
}
