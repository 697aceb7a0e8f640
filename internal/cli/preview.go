package cli

import (
	"fmt"
	"math/rand/v2"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/matzehuels/backdrop/pkg/pattern"
	"github.com/matzehuels/backdrop/pkg/physics"
)

// previewCommand creates the interactive preview command.
func (c *CLI) previewCommand() *cobra.Command {
	var seed uint64

	cmd := &cobra.Command{
		Use:   "preview",
		Short: "Preview the scroll parallax live in the terminal",
		Long: `Open a live preview of the parallax engine.

Scrolling moves a simulated page; the physics loop runs at the configured
frame rate and both layer offsets are plotted as they settle. The word
VISION is scaled per scroll band the way the site header is.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if !cmd.Flags().Changed("seed") {
				seed = rand.Uint64()
			}
			return c.runPreview(cmd, pattern.NewScene(seed))
		},
	}

	cmd.Flags().Uint64VarP(&seed, "seed", "s", 0, "pattern seed (default random)")

	return cmd
}

func (c *CLI) runPreview(cmd *cobra.Command, scene pattern.Scene) error {
	ctx := cmd.Context()
	scroll := newSmoothScroll(c.Config.Physics.FrameRate)

	engine := physics.NewEngine(0)
	engine.VerticalTuning = c.Config.Physics.Vertical
	engine.HorizontalTuning = c.Config.Physics.Horizontal

	p := tea.NewProgram(newPreviewModel(scene, scroll),
		tea.WithContext(ctx),
		tea.WithAltScreen(),
		tea.WithOutput(cmd.OutOrStdout()))

	loop := physics.NewLoop(engine, scroll,
		physics.OffsetFunc(func(o physics.Offsets) { p.Send(offsetsMsg(o)) }),
		physics.WithFrameRate(c.Config.Physics.FrameRate))

	// Handle.Cancel runs after p.Run returns, when Send no longer blocks.
	h, err := loop.Start(ctx)
	if err != nil {
		return err
	}
	defer h.Cancel()

	if _, err := p.Run(); err != nil {
		return fmt.Errorf("preview: %w", err)
	}
	return nil
}
