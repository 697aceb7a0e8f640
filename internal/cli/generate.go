package cli

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/matzehuels/backdrop/pkg/errors"
	"github.com/matzehuels/backdrop/pkg/pipeline"
)

// generateCommand creates the generate command, which writes the raw scene.
func (c *CLI) generateCommand() *cobra.Command {
	var (
		seed    uint64
		output  string
		noCache bool
	)

	cmd := &cobra.Command{
		Use:   "generate",
		Short: "Generate the line descriptors for a seed as JSON",
		Long: `Generate the vertical and horizontal line descriptors for a seed.

The same seed always yields the same scene. Without --output the JSON is
written to stdout.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			opts := pipeline.Options{Seed: seed, RandomSeed: !cmd.Flags().Changed("seed"), Logger: c.Logger}

			runner, err := c.newRunner(noCache)
			if err != nil {
				return fmt.Errorf("initialize runner: %w", err)
			}
			defer runner.Close()

			scene, cached, err := runner.GenerateWithCacheInfo(cmd.Context(), opts)
			if err != nil {
				return fmt.Errorf("generate: %w", err)
			}
			data, err := json.MarshalIndent(scene, "", "  ")
			if err != nil {
				return fmt.Errorf("encode scene: %w", err)
			}

			if output == "" {
				_, err = fmt.Fprintln(cmd.OutOrStdout(), string(data))
				return err
			}
			if err := errors.ValidateOutputPath(output); err != nil {
				return err
			}
			if err := os.WriteFile(output, append(data, '\n'), 0o644); err != nil {
				return fmt.Errorf("write %s: %w", output, err)
			}
			printSuccess("Generated scene")
			printStats(scene.Seed, len(scene.Vertical)+len(scene.Horizontal), cached)
			printFile(output, len(data)+1)
			return nil
		},
	}

	cmd.Flags().Uint64VarP(&seed, "seed", "s", 0, "pattern seed (default random)")
	cmd.Flags().StringVarP(&output, "output", "o", "", "output file (default stdout)")
	cmd.Flags().BoolVar(&noCache, "no-cache", false, "disable caching")

	return cmd
}
