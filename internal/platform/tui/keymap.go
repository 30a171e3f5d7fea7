package tui

import (
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/tetris3d/internal/well"
)

// KeyMap defines the key bindings for the game screen.
type KeyMap struct {
	Left     key.Binding
	Right    key.Binding
	Back     key.Binding // away from the viewer, -z
	Forward  key.Binding // toward the viewer, +z
	SoftDrop key.Binding
	HardDrop key.Binding

	RotateYCCW key.Binding
	RotateYCW  key.Binding
	RotateXCCW key.Binding
	RotateXCW  key.Binding
	RotateZCCW key.Binding
	RotateZCW  key.Binding

	Start      key.Binding
	Pause      key.Binding
	Mute       key.Binding
	Screenshot key.Binding
	Help       key.Binding
	Quit       key.Binding
	ForceQuit  key.Binding
}

// ShortHelp returns key bindings for the short help view.
func (k KeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Left, k.Back, k.HardDrop, k.RotateYCW, k.Pause, k.Help}
}

// FullHelp returns key bindings for the full help view.
func (k KeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Left, k.Right, k.Back, k.Forward, k.SoftDrop, k.HardDrop},
		{k.RotateYCCW, k.RotateYCW, k.RotateXCCW, k.RotateXCW, k.RotateZCCW, k.RotateZCW},
		{k.Start, k.Pause, k.Mute, k.Screenshot, k.Help, k.Quit},
	}
}

// DefaultKeyMap returns default key bindings.
func DefaultKeyMap() KeyMap {
	return KeyMap{
		Left: key.NewBinding(
			key.WithKeys("left"),
			key.WithHelp("←/→", "move x"),
		),
		Right: key.NewBinding(
			key.WithKeys("right"),
			key.WithHelp("→", "move +x"),
		),
		Back: key.NewBinding(
			key.WithKeys("up"),
			key.WithHelp("↑/↓", "move z"),
		),
		Forward: key.NewBinding(
			key.WithKeys("down"),
			key.WithHelp("↓", "move +z"),
		),
		SoftDrop: key.NewBinding(
			key.WithKeys("shift+down", "x"),
			key.WithHelp("x", "soft drop"),
		),
		HardDrop: key.NewBinding(
			key.WithKeys(" "),
			key.WithHelp("space", "hard drop"),
		),
		RotateYCCW: key.NewBinding(
			key.WithKeys("q"),
			key.WithHelp("q", "turn y ccw"),
		),
		RotateYCW: key.NewBinding(
			key.WithKeys("e"),
			key.WithHelp("q/e", "turn y"),
		),
		RotateXCCW: key.NewBinding(
			key.WithKeys("w"),
			key.WithHelp("w", "turn x ccw"),
		),
		RotateXCW: key.NewBinding(
			key.WithKeys("s"),
			key.WithHelp("s", "turn x cw"),
		),
		RotateZCCW: key.NewBinding(
			key.WithKeys("a"),
			key.WithHelp("a", "turn z ccw"),
		),
		RotateZCW: key.NewBinding(
			key.WithKeys("d"),
			key.WithHelp("d", "turn z cw"),
		),
		Start: key.NewBinding(
			key.WithKeys("enter"),
			key.WithHelp("enter", "start"),
		),
		Pause: key.NewBinding(
			key.WithKeys("p", "esc"),
			key.WithHelp("p", "pause"),
		),
		Mute: key.NewBinding(
			key.WithKeys("m"),
			key.WithHelp("m", "mute"),
		),
		Screenshot: key.NewBinding(
			key.WithKeys("ctrl+s"),
			key.WithHelp("ctrl+s", "screenshot"),
		),
		Help: key.NewBinding(
			key.WithKeys("?"),
			key.WithHelp("?", "help"),
		),
		Quit: key.NewBinding(
			key.WithKeys("Q"),
			key.WithHelp("Q", "quit"),
		),
		ForceQuit: key.NewBinding(
			key.WithKeys("ctrl+c"),
			key.WithHelp("ctrl+c", "quit"),
		),
	}
}

// Command translates a key press to a gameplay command. Keys that are not
// gameplay keys return false.
func (k KeyMap) Command(msg tea.KeyMsg) (well.Command, bool) {
	switch {
	case key.Matches(msg, k.Left):
		return well.CmdMove{DX: -1}, true
	case key.Matches(msg, k.Right):
		return well.CmdMove{DX: 1}, true
	case key.Matches(msg, k.Back):
		return well.CmdMove{DZ: -1}, true
	case key.Matches(msg, k.Forward):
		return well.CmdMove{DZ: 1}, true
	case key.Matches(msg, k.SoftDrop):
		return well.CmdSoftDrop{}, true
	case key.Matches(msg, k.HardDrop):
		return well.CmdHardDrop{}, true
	case key.Matches(msg, k.RotateYCCW):
		return well.CmdRotate{Axis: well.AxisY, Dir: -1}, true
	case key.Matches(msg, k.RotateYCW):
		return well.CmdRotate{Axis: well.AxisY, Dir: 1}, true
	case key.Matches(msg, k.RotateXCCW):
		return well.CmdRotate{Axis: well.AxisX, Dir: -1}, true
	case key.Matches(msg, k.RotateXCW):
		return well.CmdRotate{Axis: well.AxisX, Dir: 1}, true
	case key.Matches(msg, k.RotateZCCW):
		return well.CmdRotate{Axis: well.AxisZ, Dir: -1}, true
	case key.Matches(msg, k.RotateZCW):
		return well.CmdRotate{Axis: well.AxisZ, Dir: 1}, true
	}
	return nil, false
}
