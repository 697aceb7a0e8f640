package styles

import (
	"image/color"
	"slices"

	"github.com/lucasb-eyer/go-colorful"

	"github.com/matzehuels/backdrop/pkg/errors"
)

// Theme names.
const (
	NameLight = "light"
	NameDark  = "dark"
)

// Theme describes how a backdrop is colored.
type Theme struct {
	Name       string `json:"name"`
	Stroke     string `json:"stroke"`     // hex color of every line
	Background string `json:"background"` // hex color of the page behind the layers
	Blend      string `json:"blend"`      // CSS mix-blend-mode of each layer
}

var (
	Light = Theme{Name: NameLight, Stroke: "#171717", Background: "#ffffff", Blend: "multiply"}
	Dark  = Theme{Name: NameDark, Stroke: "#60a5fa", Background: "#0a0a0a", Blend: "screen"}
)

var themes = []Theme{Light, Dark}

// Names returns the names of all themes, in a stable order.
func Names() []string {
	names := make([]string, len(themes))
	for i, t := range themes {
		names[i] = t.Name
	}
	return names
}

// Lookup returns the theme called name. An empty name selects [Light].
func Lookup(name string) (Theme, error) {
	if name == "" {
		return Light, nil
	}
	i := slices.IndexFunc(themes, func(t Theme) bool { return t.Name == name })
	if i < 0 {
		return Theme{}, errors.New(errors.ErrCodeInvalidTheme, "unknown theme %q (want one of %v)", name, Names())
	}
	return themes[i], nil
}

// RGBA returns the parsed stroke color.
func (t Theme) RGBA() color.RGBA { return parseHex(t.Stroke) }

// BackgroundRGBA returns the parsed background color.
func (t Theme) BackgroundRGBA() color.RGBA { return parseHex(t.Background) }

// parseHex falls back to opaque black for malformed colors.
func parseHex(s string) color.RGBA {
	c, err := colorful.Hex(s)
	if err != nil {
		return color.RGBA{A: 0xff}
	}
	r, g, b := c.Clamped().RGB255()
	return color.RGBA{R: r, G: g, B: b, A: 0xff}
}
