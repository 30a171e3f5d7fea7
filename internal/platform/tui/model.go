package tui

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/log"

	"github.com/vovakirdan/tetris3d/internal/audio"
	"github.com/vovakirdan/tetris3d/internal/core"
	"github.com/vovakirdan/tetris3d/internal/multiplayer"
	"github.com/vovakirdan/tetris3d/internal/storage"
	"github.com/vovakirdan/tetris3d/internal/well"
)

// Deps are the optional collaborators of a Model. Any of them may be nil.
type Deps struct {
	Store  *storage.Store
	Sound  *audio.Player
	Logger *log.Logger
	Player string // shown in the HUD and stored with finished runs
	// ScreenshotDir overrides ~/.tetris3d/screenshots.
	ScreenshotDir string

	// Hub and Link connect the game to other players on an SSH server.
	Hub  *multiplayer.Hub
	Link *multiplayer.ChannelSession
}

// Model is the Bubble Tea model for one game session.
type Model struct {
	session *well.Session
	deps    Deps
	logger  *log.Logger
	screen  *core.Screen
	layout  Layout
	config  core.RuntimeConfig
	keys    KeyMap
	help    help.Model

	gen     int // current gravity clock
	flash   string
	flashID int

	board       Scoreboard
	highAtStart int
	runSaved    bool
	lastRun     string
	quitting    bool
}

// NewModel creates a model driving sess. The session should be fresh, in
// the MENU state.
func NewModel(sess *well.Session, cfg core.RuntimeConfig, deps Deps) Model {
	logger := deps.Logger
	if logger == nil {
		logger = log.New(io.Discard)
	}
	layout := NewLayout(sess.Dims())
	h := help.New()
	h.ShowAll = false

	return Model{
		session: sess,
		deps:    deps,
		logger:  logger,
		screen:  core.NewScreen(layout.W, layout.H),
		layout:  layout,
		config:  cfg,
		keys:    DefaultKeyMap(),
		help:    h,
		board:   NewScoreboard(nil, ""),
	}
}

// Session returns the driven session.
func (m Model) Session() *well.Session {
	return m.session
}

// Init starts the gravity clock and, on a server, listens for other players.
func (m Model) Init() tea.Cmd {
	if m.deps.Link != nil {
		return tea.Batch(tickCmd(m.session.FallInterval(), m.gen), waitEvent(m.deps.Link))
	}
	return tickCmd(m.session.FallInterval(), m.gen)
}

// Update handles messages and updates the model state.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		m.config.ScreenW = msg.Width
		m.config.ScreenH = msg.Height
		m.help.Width = msg.Width
		return m, nil

	case TickMsg:
		return m.handleTick(msg)

	case flashClearMsg:
		if msg.id == m.flashID {
			m.flash = ""
		}
		return m, nil

	case eventMsg:
		cmd := m.setFlash(msg.evt.Notice())
		return m, tea.Batch(cmd, waitEvent(m.deps.Link))
	}

	return m, nil
}

// handleKey processes keyboard input.
func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	status := m.session.Status()

	switch {
	case key.Matches(msg, m.keys.ForceQuit):
		m.quitting = true
		return m, tea.Quit

	case key.Matches(msg, m.keys.Quit) && status != well.StatusPlaying:
		m.quitting = true
		return m, tea.Quit

	case key.Matches(msg, m.keys.Screenshot):
		return m.screenshot()

	case key.Matches(msg, m.keys.Help):
		m.help.ShowAll = !m.help.ShowAll
		return m, nil

	case key.Matches(msg, m.keys.Mute):
		return m.toggleMute()

	case key.Matches(msg, m.keys.Start):
		if status == well.StatusMenu || status == well.StatusGameOver {
			return m.start()
		}
		return m, nil

	case key.Matches(msg, m.keys.Pause):
		switch status {
		case well.StatusPlaying:
			m.session.Apply(well.CmdPause{})
		case well.StatusPaused:
			m.session.Apply(well.CmdResume{})
		}
		return m, nil
	}

	if status == well.StatusGameOver {
		var cmd tea.Cmd
		m.board, cmd = m.board.Update(msg)
		return m, cmd
	}

	cmd, ok := m.keys.Command(msg)
	if !ok {
		return m, nil
	}
	return m.apply(cmd)
}

// start begins a new game on a fresh gravity clock.
func (m Model) start() (tea.Model, tea.Cmd) {
	m.highAtStart = m.session.HighScore()
	m.session.Apply(well.CmdStart{})
	m.runSaved = false
	m.lastRun = ""
	m.gen++
	return m, tickCmd(m.session.FallInterval(), m.gen)
}

// apply runs a command and reacts to the signals it produced.
func (m Model) apply(cmd well.Command) (tea.Model, tea.Cmd) {
	signals := m.session.Apply(cmd)

	var cmds []tea.Cmd
	for _, sig := range signals {
		switch sig {
		case well.SignalLevelUp:
			cmds = append(cmds, m.setFlash(fmt.Sprintf("LEVEL %d!", m.session.Level())))
		case well.SignalClear:
			cmds = append(cmds, m.setFlash("CLEAR!"))
		case well.SignalGameOver:
			m.finishRun()
		}
	}
	return m, tea.Batch(cmds...)
}

// handleTick advances gravity and schedules the next tick.
func (m Model) handleTick(msg TickMsg) (tea.Model, tea.Cmd) {
	if msg.Gen != m.gen || m.quitting {
		return m, nil
	}

	var cmd tea.Cmd
	if m.session.Status() == well.StatusPlaying {
		var next tea.Model
		next, cmd = m.apply(well.CmdTick{})
		m = next.(Model)
	}
	return m, tea.Batch(cmd, tickCmd(m.session.FallInterval(), m.gen))
}

// finishRun stores the finished game once and loads the leaderboard.
func (m *Model) finishRun() {
	if m.runSaved {
		return
	}
	m.runSaved = true
	m.announceRun()

	if m.deps.Store == nil {
		m.board = NewScoreboard(nil, "")
		return
	}
	if m.session.Score() > 0 {
		id, err := m.deps.Store.SaveRun(storage.ScoreEntry{
			GameID: storage.GameID,
			Player: m.deps.Player,
			Score:  m.session.Score(),
			Level:  m.session.Level(),
			Lines:  m.session.Lines(),
		})
		if err != nil {
			m.logger.Warn("could not save run", "error", err)
		} else {
			m.lastRun = id
			m.logger.Info("run saved", "run", id, "score", m.session.Score())
		}
	}

	top, err := m.deps.Store.TopScores(storage.GameID, scoreboardRows)
	if err != nil {
		m.logger.Warn("could not load top scores", "error", err)
	}
	m.board = NewScoreboard(top, m.lastRun)
}

func (m *Model) setFlash(text string) tea.Cmd {
	m.flashID++
	m.flash = text
	return flashCmd(m.flashID)
}

func (m Model) toggleMute() (tea.Model, tea.Cmd) {
	if m.deps.Sound == nil {
		return m, nil
	}
	if m.deps.Sound.ToggleMute() {
		return m, m.setFlash("MUTED")
	}
	return m, m.setFlash("SOUND ON")
}

func (m Model) soundLabel() string {
	switch {
	case m.deps.Sound == nil || !m.deps.Sound.Live():
		return "none"
	case m.deps.Sound.Muted():
		return "muted"
	default:
		return fmt.Sprintf("on x%.1f", m.deps.Sound.Rate())
	}
}

// screenshot saves the current views as plain text.
func (m Model) screenshot() (tea.Model, tea.Cmd) {
	m.draw()

	dir := m.deps.ScreenshotDir
	if dir == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			m.logger.Warn("screenshot failed", "error", err)
			return m, nil
		}
		dir = filepath.Join(home, ".tetris3d", "screenshots")
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		m.logger.Warn("screenshot failed", "error", err)
		return m, nil
	}

	name := fmt.Sprintf("%s_%s.txt", storage.GameID, time.Now().Format("20060102_150405"))
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(m.screen.String()), 0o600); err != nil {
		m.logger.Warn("screenshot failed", "error", err)
		return m, nil
	}
	m.logger.Info("screenshot saved", "path", path)
	return m, m.setFlash("SAVED " + name[len(storage.GameID)+1:])
}

// draw renders the session into the screen buffer.
func (m Model) draw() {
	DrawWell(m.screen, m.layout, m.session.Snapshot(), hudInfo{
		sound:  m.soundLabel(),
		flash:  m.flash,
		user:   m.deps.Player,
		online: m.online(),
	})
}

// View renders the current state to a string for display.
func (m Model) View() string {
	if m.quitting {
		return ""
	}

	if m.config.ScreenW > 0 && (m.config.ScreenW < m.layout.W || m.config.ScreenH < m.layout.H+1) {
		return fmt.Sprintf("Terminal too small: need %dx%d, have %dx%d.\nResize or press ctrl+c to quit.",
			m.layout.W, m.layout.H+1, m.config.ScreenW, m.config.ScreenH)
	}

	m.draw()
	game := RenderScreen(m.screen)

	if m.session.Status() == well.StatusGameOver && m.config.ScreenW >= m.layout.W+scoreboardWidth {
		game = lipgloss.JoinHorizontal(lipgloss.Top, game, "  ", m.board.View())
	}

	var b strings.Builder
	b.WriteString(game)
	b.WriteString("\n")
	b.WriteString(helpStyle.Render(m.help.View(m.keys)))
	return b.String()
}

// Run starts the Bubble Tea program for sess on the local terminal.
func Run(sess *well.Session, cfg core.RuntimeConfig, deps Deps) error {
	p := tea.NewProgram(
		NewModel(sess, cfg, deps),
		tea.WithAltScreen(),
	)

	_, err := p.Run()
	return err
}
