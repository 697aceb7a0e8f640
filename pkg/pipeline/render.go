package pipeline

import (
	"github.com/matzehuels/backdrop/pkg/errors"
	"github.com/matzehuels/backdrop/pkg/pattern"
	"github.com/matzehuels/backdrop/pkg/render/sink"
	"github.com/matzehuels/backdrop/pkg/render/styles"
)

// Render generates output artifacts in the requested formats.
// Options must already carry defaults; see [Options.ValidateForRender].
func Render(s pattern.Scene, opts Options) (map[string][]byte, error) {
	theme, err := styles.Lookup(opts.Theme)
	if err != nil {
		return nil, err
	}

	artifacts := make(map[string][]byte, len(opts.Formats))
	for _, format := range opts.Formats {
		var data []byte
		var err error

		switch format {
		case FormatSVG:
			data = sink.RenderSVG(s, buildSVGOptions(theme, opts)...)
		case FormatPNG:
			data, err = sink.RenderPNG(s,
				sink.WithPNGTheme(theme),
				sink.WithPNGSize(opts.Width, opts.Height),
				sink.WithScale(opts.Scale),
			)
		case FormatJSON:
			data, err = sink.RenderJSON(s,
				sink.WithJSONTheme(theme),
				sink.WithJSONSize(opts.Width, opts.Height),
			)
		default:
			return nil, errors.New(errors.ErrCodeUnsupported, "unsupported format: %s", format)
		}

		if err != nil {
			return nil, errors.Wrap(errors.ErrCodeInternal, err, "render %s", format)
		}
		artifacts[format] = data
	}
	return artifacts, nil
}

// buildSVGOptions builds SVG rendering options.
func buildSVGOptions(theme styles.Theme, opts Options) []sink.SVGOption {
	svgOpts := []sink.SVGOption{
		sink.WithTheme(theme),
		sink.WithSize(opts.Width, opts.Height),
	}
	if !opts.Animate {
		svgOpts = append(svgOpts, sink.WithoutAnimation())
	}
	return svgOpts
}
