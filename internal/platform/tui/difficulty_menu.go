package tui

import (
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/tetris3d/internal/config"
)

var presetNotes = map[config.DifficultyPreset]string{
	config.DifficultyEasy:   "slow start, gentle speed-up",
	config.DifficultyNormal: "the configured gravity curve",
	config.DifficultyHard:   "fast start, steep speed-up",
	config.DifficultyFixed:  "gravity never speeds up",
}

type difficultyKeys struct {
	Up, Down, Select, Quit key.Binding
}

var defaultDifficultyKeys = difficultyKeys{
	Up:     key.NewBinding(key.WithKeys("up", "k")),
	Down:   key.NewBinding(key.WithKeys("down", "j")),
	Select: key.NewBinding(key.WithKeys("enter", " ")),
	Quit:   key.NewBinding(key.WithKeys("q", "esc", "ctrl+c")),
}

// DifficultyModel lets the player pick a difficulty preset before a game.
type DifficultyModel struct {
	presets  []config.DifficultyPreset
	cursor   int
	width    int
	chosen   bool
	quitting bool
}

// NewDifficultyModel starts with the cursor on current.
func NewDifficultyModel(current config.DifficultyPreset, width int) DifficultyModel {
	m := DifficultyModel{presets: config.Presets(), width: width}
	for i, p := range m.presets {
		if p == current {
			m.cursor = i
		}
	}
	return m
}

// Init initializes the model.
func (m DifficultyModel) Init() tea.Cmd {
	return nil
}

// Update handles messages.
func (m DifficultyModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
	case tea.KeyMsg:
		k := defaultDifficultyKeys
		switch {
		case key.Matches(msg, k.Quit):
			m.quitting = true
			return m, tea.Quit
		case key.Matches(msg, k.Up):
			if m.cursor > 0 {
				m.cursor--
			}
		case key.Matches(msg, k.Down):
			if m.cursor < len(m.presets)-1 {
				m.cursor++
			}
		case key.Matches(msg, k.Select):
			m.chosen = true
			return m, tea.Quit
		}
	}
	return m, nil
}

// View renders the preset list.
func (m DifficultyModel) View() string {
	if m.quitting || m.chosen {
		return ""
	}

	var b strings.Builder
	b.WriteString("\n")
	b.WriteString(centerText(titleStyle.Render("T E T R I S  3 D"), m.width))
	b.WriteString("\n\n")
	b.WriteString(centerText("Select difficulty:", m.width))
	b.WriteString("\n\n")

	for i, p := range m.presets {
		cursor := "  "
		if i == m.cursor {
			cursor = "> "
		}
		line := cursor + padRight(string(p), 8) + presetNotes[p]
		b.WriteString(centerText(line, m.width))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(centerText(helpStyle.Render("enter: select  |  q: quit"), m.width))
	return b.String()
}

// Selected returns the chosen preset and whether one was chosen.
func (m DifficultyModel) Selected() (config.DifficultyPreset, bool) {
	if !m.chosen {
		return "", false
	}
	return m.presets[m.cursor], true
}

// RunDifficultyMenu shows the picker. ok is false when the player quit.
func RunDifficultyMenu(current config.DifficultyPreset, width int) (preset config.DifficultyPreset, ok bool, err error) {
	final, err := tea.NewProgram(NewDifficultyModel(current, width), tea.WithAltScreen()).Run()
	if err != nil {
		return "", false, err
	}
	m, isModel := final.(DifficultyModel)
	if !isModel {
		return "", false, nil
	}
	preset, ok = m.Selected()
	return preset, ok, nil
}

func centerText(text string, width int) string {
	w := lipgloss.Width(text)
	if w >= width {
		return text
	}
	padding := (width - w) / 2
	return strings.Repeat(" ", padding) + text
}

func padRight(s string, n int) string {
	if len(s) >= n {
		return s
	}
	return s + strings.Repeat(" ", n-len(s))
}
