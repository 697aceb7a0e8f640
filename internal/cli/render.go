package cli

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/matzehuels/backdrop/pkg/errors"
	"github.com/matzehuels/backdrop/pkg/pipeline"
)

// renderFlags holds the render command's flags. Unset values fall back to
// the [render] section of the config file.
type renderFlags struct {
	seed    uint64
	formats string
	output  string
	width   int
	height  int
	theme   string
	scale   float64
	animate bool
	noCache bool
}

// renderCommand creates the render command.
func (c *CLI) renderCommand() *cobra.Command {
	var f renderFlags

	cmd := &cobra.Command{
		Use:   "render",
		Short: "Render a backdrop to SVG, PNG, or JSON",
		Long: `Render the backdrop for a seed.

Without --seed a random seed is drawn and reported, so the result can be
reproduced later. Each format is written to <output>.<format>; the default
output base is backdrop-<seed>.

Results are cached locally for faster subsequent runs.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			opts := c.renderOptions(cmd, f)
			if err := opts.ValidateForRender(); err != nil {
				return err
			}
			if f.output != "" {
				if err := errors.ValidateOutputPath(f.output); err != nil {
					return err
				}
			}
			return c.runRender(cmd.Context(), opts, f.output, f.noCache)
		},
	}

	cmd.Flags().Uint64VarP(&f.seed, "seed", "s", 0, "pattern seed (default random)")
	cmd.Flags().StringVarP(&f.formats, "format", "f", "", "output format(s): svg, png, json (comma-separated)")
	cmd.Flags().StringVarP(&f.output, "output", "o", "", "output base path")
	cmd.Flags().IntVar(&f.width, "width", 0, "viewport width in pixels")
	cmd.Flags().IntVar(&f.height, "height", 0, "viewport height in pixels")
	cmd.Flags().StringVar(&f.theme, "theme", "", "color theme: light, dark")
	cmd.Flags().Float64Var(&f.scale, "scale", 0, "PNG scale factor")
	cmd.Flags().BoolVar(&f.animate, "animate", false, "include drift keyframes in SVG output")
	cmd.Flags().BoolVar(&f.noCache, "no-cache", false, "disable caching")

	return cmd
}

// renderOptions layers explicitly set flags over the config defaults.
func (c *CLI) renderOptions(cmd *cobra.Command, f renderFlags) pipeline.Options {
	opts := c.Config.PipelineOptions()
	flags := cmd.Flags()

	if flags.Changed("seed") {
		opts.Seed = f.seed
	} else {
		opts.RandomSeed = true
	}
	if flags.Changed("format") {
		opts.Formats = parseFormats(f.formats)
	}
	if flags.Changed("width") {
		opts.Width = f.width
	}
	if flags.Changed("height") {
		opts.Height = f.height
	}
	if flags.Changed("theme") {
		opts.Theme = f.theme
	}
	if flags.Changed("scale") {
		opts.Scale = f.scale
	}
	if flags.Changed("animate") {
		opts.Animate = f.animate
	}
	opts.Logger = c.Logger
	return opts
}

// runRender executes the pipeline and writes one file per format.
func (c *CLI) runRender(ctx context.Context, opts pipeline.Options, output string, noCache bool) error {
	runner, err := c.newRunner(noCache)
	if err != nil {
		return fmt.Errorf("initialize runner: %w", err)
	}
	defer runner.Close()

	prog := newProgress(loggerFromContext(ctx))
	spinner := newSpinner(ctx, os.Stderr, "Rendering backdrop...")
	spinner.Start()

	result, err := runner.Execute(ctx, opts)
	if err != nil {
		spinner.StopWithError("Render failed")
		return fmt.Errorf("render: %w", err)
	}
	spinner.Stop()
	prog.done("rendered artifacts",
		"seed", result.Seed,
		"count", len(result.Artifacts),
		"cached", result.CacheInfo.RenderHit)

	return writeArtifacts(artifactWriteParams{
		artifacts: result.Artifacts,
		formats:   opts.Formats,
		base:      basePath(output, result.Seed),
		seed:      result.Seed,
		lineCount: result.Stats.LineCount,
		cacheHit:  result.CacheInfo.RenderHit,
	})
}

// artifactWriteParams groups what writeArtifacts needs to report.
type artifactWriteParams struct {
	artifacts map[string][]byte
	formats   []string
	base      string
	seed      uint64
	lineCount int
	cacheHit  bool
}

// writeArtifacts writes <base>.<format> for every format, in flag order.
func writeArtifacts(p artifactWriteParams) error {
	if dir := filepath.Dir(p.base); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create output dir: %w", err)
		}
	}

	for _, format := range p.formats {
		path := p.base + "." + format
		if err := os.WriteFile(path, p.artifacts[format], 0o644); err != nil {
			return fmt.Errorf("write %s: %w", path, err)
		}
	}

	printSuccess("Rendered backdrop")
	printStats(p.seed, p.lineCount, p.cacheHit)
	for _, format := range p.formats {
		printFile(p.base+"."+format, len(p.artifacts[format]))
	}
	return nil
}

// basePath derives the output base. An empty output becomes
// backdrop-<seed>; a known format extension on output is stripped.
func basePath(output string, seed uint64) string {
	if output == "" {
		return fmt.Sprintf("%s-%d", appName, seed)
	}
	ext := filepath.Ext(output)
	if pipeline.ValidFormats[strings.TrimPrefix(ext, ".")] {
		return strings.TrimSuffix(output, ext)
	}
	return output
}
