package main

import (
	"fmt"
	"io"
	"os"
	"os/user"
	"path/filepath"
	"time"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/vovakirdan/tetris3d/internal/audio"
	"github.com/vovakirdan/tetris3d/internal/config"
	"github.com/vovakirdan/tetris3d/internal/core"
	"github.com/vovakirdan/tetris3d/internal/platform/tui"
	"github.com/vovakirdan/tetris3d/internal/storage"
	"github.com/vovakirdan/tetris3d/internal/well"
)

var flagPick bool

var playCmd = &cobra.Command{
	Use:   "play",
	Short: "Play a game",
	Long: `Start a game in this terminal.

Controls:
  Left/Right     - Move along x
  Up/Down        - Move along z (away from / toward you)
  x, Shift+Down  - Soft drop
  Space          - Hard drop
  q/e            - Turn around the vertical axis
  w/s            - Turn around x
  a/d            - Turn around z
  Enter          - Start / restart
  P/Esc          - Pause
  m              - Mute
  Ctrl+S         - Save a screenshot
  Q, Ctrl+C      - Quit

Difficulty options:
  easy   - Slower start, gentle speed-up
  normal - The configured gravity curve
  hard   - Faster start, steep speed-up
  fixed  - Gravity never speeds up

Examples:
  tetris3d play
  tetris3d play --pick
  tetris3d play --difficulty fixed
  tetris3d play --config ./my-well.yaml --seed 42`,
	Args: cobra.NoArgs,
	RunE: runPlay,
}

func init() {
	playCmd.Flags().BoolVar(&flagPick, "pick", false, "Choose the difficulty from a menu")
}

func runPlay(_ *cobra.Command, _ []string) error {
	logger, closeLog := openGameLog()
	defer closeLog()

	width, height := 80, 24
	if w, h, termErr := term.GetSize(int(os.Stdout.Fd())); termErr == nil {
		width, height = w, h
	}

	if flagPick {
		current, err := config.ParsePreset(flagDifficulty)
		if err != nil {
			return err
		}
		preset, ok, err := tui.RunDifficultyMenu(current, width)
		if err != nil {
			return err
		}
		if !ok {
			return nil
		}
		flagDifficulty = string(preset)
	}

	wellCfg, _, err := loadWellConfig(logger)
	if err != nil {
		return err
	}

	cfg := core.RuntimeConfig{
		ScreenW: width,
		ScreenH: height,
		Seed:    flagSeed,
		Muted:   flagMute || !wellCfg.Audio.Enabled,
	}
	if cfg.Seed == 0 {
		cfg.Seed = time.Now().UnixNano()
	}
	if !cfg.FitsScreen() {
		fmt.Fprintf(os.Stderr, "Warning: terminal is %dx%d, the views need at least %dx%d\n",
			width, height, core.MinScreenW, core.MinScreenH)
	}

	store, err := storage.Open(flagDBPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: scores will not be saved: %v\n", err)
		logger.Warn("could not open scores database", "error", err)
		store = nil
	} else {
		defer store.Close()
	}

	sound := audio.NewPlayer(audio.Config{
		SampleRate: wellCfg.Audio.SampleRate,
		Volume:     wellCfg.Audio.Volume,
		Muted:      cfg.Muted,
	}, logger)
	if wellCfg.Audio.Enabled {
		if err := sound.Open(); err != nil {
			logger.Warn("playing without sound", "error", err)
		}
	}
	defer sound.Close()

	opts := []well.Option{
		well.WithDims(wellCfg.Dims()),
		well.WithRules(wellCfg.ToRules()),
		well.WithSeed(cfg.Seed),
		well.WithSink(sound),
		well.WithLogger(logger),
	}
	if store != nil {
		opts = append(opts, well.WithHighScoreKeeper(store))
	}
	sess := well.NewSession(opts...)
	logger.Info("game started", "seed", cfg.Seed, "difficulty", flagDifficulty)

	if err := tui.Run(sess, cfg, tui.Deps{
		Store:  store,
		Sound:  sound,
		Logger: logger,
		Player: playerName(),
	}); err != nil {
		return fmt.Errorf("tui: %w", err)
	}
	return nil
}

// openGameLog logs to ~/.tetris3d/tetris3d.log while the terminal is taken
// over by the game.
func openGameLog() (*log.Logger, func()) {
	home, err := os.UserHomeDir()
	if err != nil {
		return newLogger(io.Discard, "tetris3d"), func() {}
	}
	dir := filepath.Join(home, ".tetris3d")
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return newLogger(io.Discard, "tetris3d"), func() {}
	}
	f, err := os.OpenFile(filepath.Join(dir, "tetris3d.log"), os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
	if err != nil {
		return newLogger(io.Discard, "tetris3d"), func() {}
	}
	return newLogger(f, "tetris3d"), func() { f.Close() }
}

func playerName() string {
	if u, err := user.Current(); err == nil && u.Username != "" {
		return u.Username
	}
	return os.Getenv("USER")
}
