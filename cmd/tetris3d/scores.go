package main

import (
	"fmt"
	"os"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/vovakirdan/tetris3d/internal/platform/tui"
	"github.com/vovakirdan/tetris3d/internal/storage"
)

var (
	flagLimit int
	flagClear bool
	flagPlain bool
)

var scoresCmd = &cobra.Command{
	Use:   "scores",
	Short: "Show high scores",
	Long: `Display the best finished games and overall statistics.

In a terminal the list opens as a scrollable table; otherwise, or with
--plain, it is printed as text.

Examples:
  tetris3d scores
  tetris3d scores --plain --limit 5
  tetris3d scores --clear`,
	Args: cobra.NoArgs,
	RunE: runScores,
}

func init() {
	scoresCmd.Flags().IntVar(&flagLimit, "limit", 10, "Number of scores to print in plain mode")
	scoresCmd.Flags().BoolVar(&flagClear, "clear", false, "Delete all recorded scores")
	scoresCmd.Flags().BoolVar(&flagPlain, "plain", false, "Print as text instead of opening the table")
}

func runScores(cmd *cobra.Command, _ []string) error {
	store, err := storage.Open(flagDBPath)
	if err != nil {
		return fmt.Errorf("opening scores database: %w", err)
	}
	defer store.Close()

	out := cmd.OutOrStdout()

	if flagClear {
		if err := store.ClearScores(storage.GameID); err != nil {
			return err
		}
		fmt.Fprintln(out, "Scores cleared.")
		return nil
	}

	if !flagPlain && term.IsTerminal(int(os.Stdout.Fd())) {
		height := 24
		if _, h, sizeErr := term.GetSize(int(os.Stdout.Fd())); sizeErr == nil {
			height = h
		}
		return tui.RunScoreboard(store, height)
	}

	scores, err := store.TopScores(storage.GameID, flagLimit)
	if err != nil {
		return fmt.Errorf("retrieving scores: %w", err)
	}

	fmt.Fprintln(out, "High Scores - Tetris 3D")
	fmt.Fprintln(out)

	if len(scores) == 0 {
		fmt.Fprintln(out, "No scores recorded yet.")
		fmt.Fprintln(out)
		fmt.Fprintln(out, "Play 'tetris3d play' to set the first high score!")
		return nil
	}

	fmt.Fprintf(out, "  %-4s  %-12s  %10s  %5s  %6s  %s\n", "Rank", "Player", "Score", "Level", "Layers", "When")
	fmt.Fprintf(out, "  %-4s  %-12s  %10s  %5s  %6s  %s\n", "----", "------", "-----", "-----", "------", "----")
	for i, e := range scores {
		player := e.Player
		if player == "" {
			player = "-"
		}
		fmt.Fprintf(out, "  %-4d  %-12s  %10s  %5d  %6d  %s\n",
			i+1, player, humanize.Comma(int64(e.Score)), e.Level, e.Lines, humanize.Time(e.CreatedAt))
	}

	stats, err := store.GetGameStats(storage.GameID)
	if err == nil {
		if line := tui.StatsLine(stats); line != "" {
			fmt.Fprintln(out)
			fmt.Fprintln(out, line)
		}
	}
	return nil
}
