package styles

import (
	"image/color"
	"testing"

	"github.com/matzehuels/backdrop/pkg/errors"
)

func TestLookup(t *testing.T) {
	tests := []struct {
		name    string
		want    Theme
		wantErr bool
	}{
		{"", Light, false},
		{"light", Light, false},
		{"dark", Dark, false},
		{"sepia", Theme{}, true},
		{"Dark", Theme{}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Lookup(tt.name)
			if (err != nil) != tt.wantErr {
				t.Fatalf("Lookup(%q) error = %v, wantErr %v", tt.name, err, tt.wantErr)
			}
			if err != nil && !errors.Is(err, errors.ErrCodeInvalidTheme) {
				t.Errorf("error code = %v, want %v", errors.GetCode(err), errors.ErrCodeInvalidTheme)
			}
			if got != tt.want {
				t.Errorf("Lookup(%q) = %+v, want %+v", tt.name, got, tt.want)
			}
		})
	}
}

func TestTheme_RGBA(t *testing.T) {
	tests := []struct {
		theme      Theme
		stroke, bg color.RGBA
	}{
		{Light, color.RGBA{0x17, 0x17, 0x17, 0xff}, color.RGBA{0xff, 0xff, 0xff, 0xff}},
		{Dark, color.RGBA{0x60, 0xa5, 0xfa, 0xff}, color.RGBA{0x0a, 0x0a, 0x0a, 0xff}},
	}
	for _, tt := range tests {
		t.Run(tt.theme.Name, func(t *testing.T) {
			if got := tt.theme.RGBA(); got != tt.stroke {
				t.Errorf("RGBA() = %v, want %v", got, tt.stroke)
			}
			if got := tt.theme.BackgroundRGBA(); got != tt.bg {
				t.Errorf("BackgroundRGBA() = %v, want %v", got, tt.bg)
			}
		})
	}

	bad := Theme{Stroke: "not-a-color"}
	if got := bad.RGBA(); got != (color.RGBA{A: 0xff}) {
		t.Errorf("malformed stroke RGBA() = %v, want opaque black", got)
	}
}

func TestNames(t *testing.T) {
	names := Names()
	if len(names) != 2 || names[0] != NameLight || names[1] != NameDark {
		t.Errorf("Names() = %v", names)
	}
}
