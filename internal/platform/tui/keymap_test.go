package tui

import (
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"

	"github.com/vovakirdan/tetris3d/internal/well"
)

func runeKey(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func TestKeyMapCommand(t *testing.T) {
	keys := DefaultKeyMap()

	tests := []struct {
		name string
		msg  tea.KeyMsg
		want well.Command
	}{
		{"left", tea.KeyMsg{Type: tea.KeyLeft}, well.CmdMove{DX: -1}},
		{"right", tea.KeyMsg{Type: tea.KeyRight}, well.CmdMove{DX: 1}},
		{"up moves away", tea.KeyMsg{Type: tea.KeyUp}, well.CmdMove{DZ: -1}},
		{"down moves closer", tea.KeyMsg{Type: tea.KeyDown}, well.CmdMove{DZ: 1}},
		{"soft drop", runeKey("x"), well.CmdSoftDrop{}},
		{"shift down", tea.KeyMsg{Type: tea.KeyShiftDown}, well.CmdSoftDrop{}},
		{"hard drop", tea.KeyMsg{Type: tea.KeySpace, Runes: []rune{' '}}, well.CmdHardDrop{}},
		{"q", runeKey("q"), well.CmdRotate{Axis: well.AxisY, Dir: -1}},
		{"e", runeKey("e"), well.CmdRotate{Axis: well.AxisY, Dir: 1}},
		{"w", runeKey("w"), well.CmdRotate{Axis: well.AxisX, Dir: -1}},
		{"s", runeKey("s"), well.CmdRotate{Axis: well.AxisX, Dir: 1}},
		{"a", runeKey("a"), well.CmdRotate{Axis: well.AxisZ, Dir: -1}},
		{"d", runeKey("d"), well.CmdRotate{Axis: well.AxisZ, Dir: 1}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := keys.Command(tt.msg)
			assert.True(t, ok)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestKeyMapCommandIgnoresOtherKeys(t *testing.T) {
	keys := DefaultKeyMap()

	for _, msg := range []tea.KeyMsg{
		runeKey("p"),
		runeKey("m"),
		runeKey("Q"),
		{Type: tea.KeyEnter},
		{Type: tea.KeyCtrlC},
	} {
		_, ok := keys.Command(msg)
		assert.False(t, ok, "key %q", msg.String())
	}
}

func TestKeyMapHelpCoversEveryBinding(t *testing.T) {
	keys := DefaultKeyMap()

	n := 0
	for _, col := range keys.FullHelp() {
		n += len(col)
	}
	// Everything but ForceQuit is listed.
	assert.Equal(t, 18, n)
	assert.NotEmpty(t, keys.ShortHelp())
}
