package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/tetris3d/internal/well"
)

var flagAxis string

var shapesCmd = &cobra.Command{
	Use:   "shapes",
	Short: "Print the piece catalog",
	Long: `Print every piece as seen from above, followed by its four quarter
turns around one axis.

Examples:
  tetris3d shapes
  tetris3d shapes --axis z`,
	Args: cobra.NoArgs,
	RunE: runShapes,
}

func init() {
	shapesCmd.Flags().StringVar(&flagAxis, "axis", "y", "Rotation axis to show: x, y or z")
}

func runShapes(cmd *cobra.Command, _ []string) error {
	axis, err := parseAxis(flagAxis)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	for _, a := range well.Catalog() {
		fmt.Fprintf(out, "%s  (%s)\n", a.Kind, a.Color)
		shape := a.Shape
		turns := make([][]string, 4)
		for i := range turns {
			turns[i] = plotShape(shape, axis)
			shape = well.RotateShape(shape, axis, 1)
		}
		for _, line := range joinColumns(turns, "   ") {
			fmt.Fprintln(out, "  "+line)
		}
		fmt.Fprintln(out)
	}
	return nil
}

func parseAxis(name string) (well.Axis, error) {
	switch strings.ToLower(name) {
	case "x":
		return well.AxisX, nil
	case "y":
		return well.AxisY, nil
	case "z":
		return well.AxisZ, nil
	default:
		return 0, fmt.Errorf("unknown axis %q (want x, y or z)", name)
	}
}

// plotShape draws shape looking down axis on a 4x4 grid centered on the pivot.
func plotShape(s well.Shape, axis well.Axis) []string {
	const size, origin = 4, 1
	grid := make([][]byte, size)
	for i := range grid {
		grid[i] = []byte(strings.Repeat(".", size))
	}
	for _, c := range s {
		var u, v int
		switch axis {
		case well.AxisX:
			u, v = c.Z, -c.Y
		case well.AxisY:
			u, v = c.X, c.Z
		default:
			u, v = c.X, -c.Y
		}
		u, v = u+origin, v+origin
		if u >= 0 && u < size && v >= 0 && v < size {
			grid[v][u] = '#'
		}
	}
	lines := make([]string, size)
	for i, row := range grid {
		lines[i] = string(row)
	}
	return lines
}

func joinColumns(cols [][]string, sep string) []string {
	if len(cols) == 0 {
		return nil
	}
	lines := make([]string, len(cols[0]))
	for i := range lines {
		parts := make([]string, len(cols))
		for j, col := range cols {
			parts[j] = col[i]
		}
		lines[i] = strings.Join(parts, sep)
	}
	return lines
}
