package cli

import (
	"fmt"
	"strconv"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/guptarohit/asciigraph"
	"github.com/spf13/cobra"

	"github.com/matzehuels/backdrop/pkg/config"
	"github.com/matzehuels/backdrop/pkg/errors"
	"github.com/matzehuels/backdrop/pkg/physics"
)

const (
	defaultImpulse   = 100.0
	defaultSimFrames = 60
	plotHeight       = 10
	plotWidth        = 60
)

// axisTrace is the simulated response of one named tuning.
type axisTrace struct {
	name   string
	states []physics.State
}

// simulateCommand creates the simulate command.
func (c *CLI) simulateCommand() *cobra.Command {
	var (
		preset    string
		deltasStr string
		scrollStr string
		frames    int
		plot      bool
	)

	cmd := &cobra.Command{
		Use:   "simulate",
		Short: "Print the spring-damper response to a scroll sequence",
		Long: `Simulate the parallax physics frame by frame.

Input is either per-frame scroll deltas (--delta) or absolute scroll
positions starting from 0 (--scroll). Without input a single impulse of
100px is applied. --frames pads the input with idle frames so the settling
is visible.

Tunings come from the [physics] section of the config file.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			deltas, err := simulationInput(deltasStr, scrollStr, frames)
			if err != nil {
				return err
			}
			traces, err := simulateTraces(c.Config.Physics, preset, deltas)
			if err != nil {
				return err
			}

			w := cmd.OutOrStdout()
			fmt.Fprintln(w, simulationTable(traces))
			if plot {
				fmt.Fprintln(w)
				fmt.Fprintln(w, simulationPlot(traces))
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&preset, "preset", "both", "tuning: snappy, floaty, both")
	cmd.Flags().StringVar(&deltasStr, "delta", "", "per-frame scroll deltas (comma-separated)")
	cmd.Flags().StringVar(&scrollStr, "scroll", "", "absolute scroll positions (comma-separated)")
	cmd.Flags().IntVar(&frames, "frames", 0, "total frames, padding the input with idle frames")
	cmd.Flags().BoolVar(&plot, "plot", false, "plot positions over time")
	cmd.MarkFlagsMutuallyExclusive("delta", "scroll")

	return cmd
}

// simulationInput turns the flags into per-frame deltas.
func simulationInput(deltasStr, scrollStr string, frames int) ([]float64, error) {
	if frames < 0 {
		return nil, errors.New(errors.ErrCodeInvalidInput, "frames must not be negative, got %d", frames)
	}

	var deltas []float64
	switch {
	case deltasStr != "":
		d, err := parseFloats(deltasStr)
		if err != nil {
			return nil, err
		}
		deltas = d
	case scrollStr != "":
		positions, err := parseFloats(scrollStr)
		if err != nil {
			return nil, err
		}
		deltas = physics.Deltas(0, positions)
	default:
		deltas = []float64{defaultImpulse}
		if frames == 0 {
			frames = defaultSimFrames
		}
	}

	for len(deltas) < frames {
		deltas = append(deltas, 0)
	}
	return deltas, nil
}

// simulateTraces runs the selected tunings over deltas.
func simulateTraces(cfg config.PhysicsConfig, preset string, deltas []float64) ([]axisTrace, error) {
	var traces []axisTrace
	switch preset {
	case "snappy", "vertical":
		traces = []axisTrace{{name: "snappy", states: physics.Trace(physics.State{}, cfg.Vertical, deltas)}}
	case "floaty", "horizontal":
		traces = []axisTrace{{name: "floaty", states: physics.Trace(physics.State{}, cfg.Horizontal, deltas)}}
	case "both", "":
		traces = []axisTrace{
			{name: "snappy", states: physics.Trace(physics.State{}, cfg.Vertical, deltas)},
			{name: "floaty", states: physics.Trace(physics.State{}, cfg.Horizontal, deltas)},
		}
	default:
		return nil, errors.New(errors.ErrCodeInvalidTuning, "unknown preset %q (must be snappy, floaty or both)", preset)
	}
	return traces, nil
}

// simulationTable renders one row per frame with position and velocity
// columns for each trace.
func simulationTable(traces []axisTrace) string {
	headers := []string{"frame"}
	for _, tr := range traces {
		headers = append(headers, tr.name+" pos", tr.name+" vel")
	}

	var rows [][]string
	if len(traces) > 0 {
		for i := range traces[0].states {
			row := []string{strconv.Itoa(i + 1)}
			for _, tr := range traces {
				s := tr.states[i]
				row = append(row, formatFloat(s.Position), formatFloat(s.Velocity))
			}
			rows = append(rows, row)
		}
	}

	headerStyle := lipgloss.NewStyle().Foreground(colorGray).Bold(true)
	cellStyle := lipgloss.NewStyle().Padding(0, 1)

	t := table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(colorDim)).
		Headers(headers...).
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			switch {
			case row == table.HeaderRow:
				return headerStyle.Padding(0, 1)
			case col == 0:
				return cellStyle.Foreground(colorDim)
			}
			return cellStyle.Foreground(colorWhite)
		})
	return t.Render()
}

// simulationPlot charts the position of every trace.
func simulationPlot(traces []axisTrace) string {
	series := make([][]float64, len(traces))
	caption := "position"
	for i, tr := range traces {
		series[i] = positions(tr.states)
		caption += " · " + tr.name
	}
	return asciigraph.PlotMany(series,
		asciigraph.Height(plotHeight),
		asciigraph.Width(plotWidth),
		asciigraph.Caption(caption))
}

func positions(states []physics.State) []float64 {
	out := make([]float64, len(states))
	for i, s := range states {
		out[i] = s.Position
	}
	return out
}

func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'f', 4, 64)
}

