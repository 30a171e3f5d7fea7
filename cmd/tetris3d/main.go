// tetris3d is a falling-block puzzle game played in a three-dimensional well,
// rendered in the terminal as three projected views.
//
// Usage:
//
//	tetris3d play           - Play a game
//	tetris3d scores         - Show high scores and history
//	tetris3d serve          - Start SSH server for remote play
//	tetris3d shapes         - Print the piece catalog
//
// Global flags:
//
//	--config <path>     - Custom well config YAML
//	--difficulty <name> - easy, normal, hard or fixed
//	--seed <value>      - Set RNG seed for reproducible gameplay
//	--db <path>         - Set database path (default: ~/.tetris3d/scores.db)
//	--mute              - Start with sound off
package main

import (
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/vovakirdan/tetris3d/internal/config"
	"github.com/vovakirdan/tetris3d/internal/storage"
)

var (
	// Global flags
	flagConfig     string
	flagDifficulty string
	flagSeed       int64
	flagDBPath     string
	flagMute       bool
	flagDebug      bool
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "tetris3d",
	Short: "Tetris 3D - stack pieces in a three-dimensional well",
	Long: `Tetris 3D drops four-cell pieces into a 6x6x16 well. Fill a whole
horizontal layer to clear it. The well is drawn as three views: from the
front, from the side and from above.

Available commands:
  play     - Play a game
  scores   - View high scores
  serve    - Start SSH server for remote play
  shapes   - Print the piece catalog and rotations

Examples:
  tetris3d play
  tetris3d play --difficulty hard --seed 7
  tetris3d scores
  tetris3d serve --ssh :2222`,
	SilenceUsage:  true,
	SilenceErrors: true,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&flagConfig, "config", "", "Path to custom well config YAML")
	rootCmd.PersistentFlags().StringVar(&flagDifficulty, "difficulty", "", "Difficulty preset: easy, normal, hard, fixed")
	rootCmd.PersistentFlags().Int64Var(&flagSeed, "seed", 0, "RNG seed (0 = random based on time)")
	rootCmd.PersistentFlags().StringVar(&flagDBPath, "db", storage.DefaultPath, "Path to scores database")
	rootCmd.PersistentFlags().BoolVar(&flagMute, "mute", false, "Start with sound off")
	rootCmd.PersistentFlags().BoolVar(&flagDebug, "debug", false, "Log debug messages")

	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(scoresCmd)
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(shapesCmd)
}

// newLogger returns the structured logger every command writes through.
func newLogger(w io.Writer, prefix string) *log.Logger {
	logger := log.NewWithOptions(w, log.Options{
		ReportTimestamp: true,
		Prefix:          prefix,
	})
	if flagDebug {
		logger.SetLevel(log.DebugLevel)
	}
	return logger
}

// loadWellConfig resolves --config and --difficulty into a validated config.
func loadWellConfig(logger *log.Logger) (config.WellConfig, config.DifficultyPreset, error) {
	cfg, err := config.LoadWell(flagConfig)
	if err != nil {
		return cfg, "", err
	}
	preset, err := config.ParsePreset(flagDifficulty)
	if err != nil {
		return cfg, "", err
	}
	config.ApplyWellPreset(&cfg, preset)
	if err := cfg.Validate(); err != nil {
		return cfg, "", err
	}
	logger.Debug("well config loaded",
		"grid", fmt.Sprintf("%dx%dx%d", cfg.Grid.Cols, cfg.Grid.Rows, cfg.Grid.Height),
		"difficulty", preset,
		"fall_start_ms", cfg.Speed.FallStartMs,
	)
	return cfg, preset, nil
}
