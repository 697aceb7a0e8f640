package cli

import (
	"fmt"
	"math"
	"math/rand/v2"
	"os"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/guptarohit/asciigraph"

	"github.com/matzehuels/backdrop/pkg/glyph"
	"github.com/matzehuels/backdrop/pkg/pattern"
	"github.com/matzehuels/backdrop/pkg/physics"
	"github.com/matzehuels/backdrop/pkg/render/sink"
	"github.com/matzehuels/backdrop/pkg/render/styles"
)

// Preview styles
var (
	previewTitleStyle = lipgloss.NewStyle().Bold(true).Foreground(colorCyan)
	previewLabelStyle = lipgloss.NewStyle().Foreground(colorGray).Width(12)
	previewValueStyle = lipgloss.NewStyle().Foreground(colorWhite)
	previewGraphStyle = lipgloss.NewStyle().Foreground(colorCyan)
	previewGlyphStyle = lipgloss.NewStyle().Bold(true).Foreground(colorWhite)
	previewScaledUp   = lipgloss.NewStyle().Bold(true).Foreground(colorGreen)
	previewScaledDown = lipgloss.NewStyle().Foreground(colorDim)
)

const (
	previewWord    = "VISION"
	lineStep       = 40.0
	pageStep       = 400.0
	historyLength  = 120
	sparkHeight    = 5
	sparkMinWidth  = 20
	sparkMaxWidth  = 80
	snapshotPrefix = "backdrop-frame"
)

// =============================================================================
// Messages
// =============================================================================

// offsetsMsg carries one frame from the physics loop into the program.
type offsetsMsg physics.Offsets

// snapshotMsg reports the result of saving a PNG frame.
type snapshotMsg struct {
	path string
	err  error
}

// =============================================================================
// PreviewModel - Live parallax preview
// =============================================================================

// PreviewModel is the bubbletea model for the live preview.
type PreviewModel struct {
	Scene   pattern.Scene
	Offsets physics.Offsets
	Frames  uint64
	Status  string

	scroll     *smoothScroll
	vertical   []float64
	horizontal []float64
	start      time.Time
	width      int
	newSeed    func() uint64
}

// newPreviewModel creates a preview for scene driven by scroll.
func newPreviewModel(scene pattern.Scene, scroll *smoothScroll) PreviewModel {
	return PreviewModel{
		Scene:   scene,
		scroll:  scroll,
		start:   time.Now(),
		width:   sparkMaxWidth,
		newSeed: rand.Uint64,
	}
}

func (m PreviewModel) Init() tea.Cmd {
	return nil
}

func (m PreviewModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c", "esc":
			return m, tea.Quit
		case "up", "k":
			m.scroll.scrollBy(-lineStep)
		case "down", "j":
			m.scroll.scrollBy(lineStep)
		case "pgup":
			m.scroll.scrollBy(-pageStep)
		case "pgdown":
			m.scroll.scrollBy(pageStep)
		case "home", "g":
			m.scroll.scrollBy(-m.scroll.Target())
		case "r":
			seed := m.newSeed()
			m.Scene = pattern.NewScene(seed)
			m.Status = fmt.Sprintf("reseeded: %d", seed)
		case "s":
			return m, saveSnapshot(m.Scene, m.Offsets, time.Since(m.start))
		}

	case offsetsMsg:
		m.Offsets = physics.Offsets(msg)
		m.Frames++
		m.vertical = appendHistory(m.vertical, msg.Vertical)
		m.horizontal = appendHistory(m.horizontal, msg.Horizontal)

	case snapshotMsg:
		if msg.err != nil {
			m.Status = "snapshot failed: " + msg.err.Error()
		} else {
			m.Status = "saved " + msg.path
		}

	case tea.WindowSizeMsg:
		m.width = msg.Width
	}
	return m, nil
}

func appendHistory(h []float64, v float64) []float64 {
	h = append(h, v)
	if len(h) > historyLength {
		h = h[len(h)-historyLength:]
	}
	return h
}

func (m PreviewModel) View() string {
	var b strings.Builder

	b.WriteString(previewTitleStyle.Render(fmt.Sprintf("backdrop · seed %d", m.Scene.Seed)))
	b.WriteString("\n\n")

	b.WriteString(m.glyphLine())
	b.WriteString("\n\n")

	scrollY := m.scroll.Position()
	scrollText := fmt.Sprintf("%.0fpx (band %d)", scrollY, glyph.SeedFor(scrollY))
	if target := m.scroll.Target(); math.Abs(target-scrollY) >= 0.5 {
		scrollText += fmt.Sprintf(" → %.0fpx", target)
	}
	m.row(&b, "scroll", scrollText)
	m.row(&b, "vertical", fmt.Sprintf("%+.3fpx", m.Offsets.Vertical))
	m.row(&b, "horizontal", fmt.Sprintf("%+.3fpx", m.Offsets.Horizontal))
	m.row(&b, "frames", fmt.Sprintf("%d", m.Frames))
	m.row(&b, "lines", m.sceneSummary())
	b.WriteString("\n")

	if len(m.vertical) > 1 {
		b.WriteString(previewGraphStyle.Render(m.sparkline()))
		b.WriteString("\n\n")
	}

	if m.Status != "" {
		b.WriteString(StyleDim.Render(m.Status))
		b.WriteString("\n")
	}
	b.WriteString(StyleDim.Render("↑/k ↓/j scroll · pgup/pgdn page · g top · r reseed · s snapshot · q quit"))
	return b.String()
}

func (m PreviewModel) row(b *strings.Builder, label, value string) {
	b.WriteString(previewLabelStyle.Render(label))
	b.WriteString(previewValueStyle.Render(value))
	b.WriteString("\n")
}

// glyphLine renders the preview word with each letter styled by its scale
// for the current scroll band.
func (m PreviewModel) glyphLine() string {
	var b strings.Builder
	for _, g := range glyph.Layout(previewWord, glyph.SeedFor(m.scroll.Position())) {
		style := previewGlyphStyle
		switch {
		case g.Scale > 1:
			style = previewScaledUp
		case g.Scale < 1:
			style = previewScaledDown
		}
		b.WriteString(style.Render(string(g.Rune)))
		b.WriteString(" ")
	}
	return strings.TrimRight(b.String(), " ")
}

// sceneSummary counts the vertical kinds.
func (m PreviewModel) sceneSummary() string {
	counts := map[pattern.Kind]int{}
	for _, l := range m.Scene.Vertical {
		counts[l.Kind]++
	}
	return fmt.Sprintf("%d %s · %d %s · %d %s · %d horizontal",
		counts[pattern.Straight], pattern.Straight,
		counts[pattern.Curved], pattern.Curved,
		counts[pattern.Measured], pattern.Measured,
		len(m.Scene.Horizontal))
}

func (m PreviewModel) sparkline() string {
	width := min(max(m.width-10, sparkMinWidth), sparkMaxWidth)
	return asciigraph.PlotMany([][]float64{m.vertical, m.horizontal},
		asciigraph.Height(sparkHeight),
		asciigraph.Width(width),
		asciigraph.Caption("vertical · horizontal"))
}

// saveSnapshot renders the current frame, parallax and drift included.
func saveSnapshot(scene pattern.Scene, o physics.Offsets, elapsed time.Duration) tea.Cmd {
	return func() tea.Msg {
		data, err := sink.RenderPNG(scene,
			sink.WithPNGTheme(styles.Dark),
			sink.WithPNGOffsets(o),
			sink.WithElapsed(elapsed))
		if err != nil {
			return snapshotMsg{err: err}
		}
		path := fmt.Sprintf("%s-%d-%d.png", snapshotPrefix, scene.Seed, time.Now().Unix())
		if err := os.WriteFile(path, data, 0o644); err != nil {
			return snapshotMsg{err: err}
		}
		return snapshotMsg{path: path}
	}
}
