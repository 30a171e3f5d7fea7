package tui

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/dustin/go-humanize"

	"github.com/vovakirdan/tetris3d/internal/storage"
)

const (
	scoreboardRows  = 10 // rows shown next to the game over screen
	scoreboardWidth = 60 // rendered width including the border
	maxScores       = 100
)

// scoreColumns are shared by the in-game and standalone boards.
var scoreColumns = []table.Column{
	{Title: "#", Width: 4},
	{Title: "Player", Width: 12},
	{Title: "Score", Width: 10},
	{Title: "Lvl", Width: 4},
	{Title: "Lines", Width: 6},
	{Title: "When", Width: 12},
}

// ScoreRows converts entries to table rows. now anchors relative dates.
func ScoreRows(entries []storage.ScoreEntry, now time.Time) []table.Row {
	rows := make([]table.Row, len(entries))
	for i, e := range entries {
		player := e.Player
		if player == "" {
			player = "-"
		}
		rows[i] = table.Row{
			fmt.Sprintf("%d", i+1),
			player,
			humanize.Comma(int64(e.Score)),
			fmt.Sprintf("%d", e.Level),
			fmt.Sprintf("%d", e.Lines),
			humanize.RelTime(e.CreatedAt, now, "ago", "from now"),
		}
	}
	return rows
}

func newScoreTable(height int) table.Model {
	t := table.New(
		table.WithColumns(scoreColumns),
		table.WithFocused(true),
		table.WithHeight(height),
	)

	s := table.DefaultStyles()
	s.Header = s.Header.
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(lipgloss.Color("240")).
		BorderBottom(true).
		Bold(true)
	s.Selected = s.Selected.
		Foreground(lipgloss.Color("229")).
		Background(lipgloss.Color("57")).
		Bold(false)
	t.SetStyles(s)
	return t
}

// Scoreboard is the leaderboard panel shown after a game ends. The row of
// the run that just finished is preselected.
type Scoreboard struct {
	table   table.Model
	entries []storage.ScoreEntry
}

// NewScoreboard builds a board over entries, selecting runID when present.
func NewScoreboard(entries []storage.ScoreEntry, runID string) Scoreboard {
	t := newScoreTable(scoreboardRows)
	t.SetRows(ScoreRows(entries, time.Now()))
	for i, e := range entries {
		if runID != "" && e.RunID == runID {
			t.SetCursor(i)
			break
		}
	}
	return Scoreboard{table: t, entries: entries}
}

// Update scrolls the table.
func (b Scoreboard) Update(msg tea.Msg) (Scoreboard, tea.Cmd) {
	var cmd tea.Cmd
	b.table, cmd = b.table.Update(msg)
	return b, cmd
}

// View renders the board in a box.
func (b Scoreboard) View() string {
	var sb strings.Builder
	sb.WriteString(titleStyle.Render("HIGH SCORES"))
	sb.WriteString("\n")
	if len(b.entries) == 0 {
		sb.WriteString(helpStyle.Italic(true).Render("No scores recorded yet."))
	} else {
		sb.WriteString(b.table.View())
	}
	return boxStyle.Render(sb.String())
}

// ScoreboardKeyMap defines the key bindings for the standalone scoreboard.
type ScoreboardKeyMap struct {
	Up   key.Binding
	Down key.Binding
	Quit key.Binding
}

// ShortHelp returns key bindings for the short help view.
func (k ScoreboardKeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Up, k.Down, k.Quit}
}

// FullHelp returns key bindings for the full help view.
func (k ScoreboardKeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{{k.Up, k.Down, k.Quit}}
}

// DefaultScoreboardKeyMap returns default key bindings.
func DefaultScoreboardKeyMap() ScoreboardKeyMap {
	return ScoreboardKeyMap{
		Up: key.NewBinding(
			key.WithKeys("up", "k"),
			key.WithHelp("up/k", "scroll up"),
		),
		Down: key.NewBinding(
			key.WithKeys("down", "j"),
			key.WithHelp("down/j", "scroll down"),
		),
		Quit: key.NewBinding(
			key.WithKeys("q", "esc", "ctrl+c"),
			key.WithHelp("q", "quit"),
		),
	}
}

// ScoreboardModel is the Bubble Tea model behind the scores command.
type ScoreboardModel struct {
	board    Scoreboard
	stats    *storage.GameStats
	help     help.Model
	keys     ScoreboardKeyMap
	height   int
	quitting bool
}

// NewScoreboardModel loads up to maxScores entries from store.
func NewScoreboardModel(store *storage.Store, height int) (ScoreboardModel, error) {
	entries, err := store.TopScores(storage.GameID, maxScores)
	if err != nil {
		return ScoreboardModel{}, err
	}
	stats, err := store.GetGameStats(storage.GameID)
	if err != nil {
		return ScoreboardModel{}, err
	}

	m := ScoreboardModel{
		board:  NewScoreboard(entries, ""),
		stats:  stats,
		help:   help.New(),
		keys:   DefaultScoreboardKeyMap(),
		height: height,
	}
	m.resize(height)
	return m, nil
}

// resize leaves room for the title, stats line, help and border.
func (m *ScoreboardModel) resize(height int) {
	m.height = height
	m.board.table.SetHeight(max(height-9, 3))
}

// Init initializes the scoreboard model.
func (m ScoreboardModel) Init() tea.Cmd {
	return nil
}

// Update handles messages for the scoreboard.
func (m ScoreboardModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		if key.Matches(msg, m.keys.Quit) {
			m.quitting = true
			return m, tea.Quit
		}
	case tea.WindowSizeMsg:
		m.resize(msg.Height)
		m.help.Width = msg.Width
		return m, nil
	}

	var cmd tea.Cmd
	m.board, cmd = m.board.Update(msg)
	return m, cmd
}

// View renders the scoreboard.
func (m ScoreboardModel) View() string {
	if m.quitting {
		return ""
	}

	var b strings.Builder
	b.WriteString(m.board.View())
	b.WriteString("\n")
	if line := StatsLine(m.stats); line != "" {
		b.WriteString(line)
		b.WriteString("\n")
	}
	b.WriteString(helpStyle.Render(m.help.View(m.keys)))
	return b.String()
}

// StatsLine summarises stats on one line. Empty histories give "".
func StatsLine(stats *storage.GameStats) string {
	if stats == nil || stats.GamesCount == 0 {
		return ""
	}
	return fmt.Sprintf("%s games, best %s, average %s, %s layers, last played %s",
		humanize.Comma(int64(stats.GamesCount)),
		humanize.Comma(int64(stats.HighScore)),
		humanize.Comma(int64(stats.AvgScore)),
		humanize.Comma(stats.TotalLines),
		humanize.Time(stats.LastPlayed),
	)
}

// RunScoreboard shows the scoreboard until the user quits.
func RunScoreboard(store *storage.Store, height int) error {
	m, err := NewScoreboardModel(store, height)
	if err != nil {
		return err
	}
	_, err = tea.NewProgram(m, tea.WithAltScreen()).Run()
	return err
}
