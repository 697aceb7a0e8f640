package cli

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// =============================================================================
// Palette
// =============================================================================

var (
	colorCyan  = lipgloss.Color("36")
	colorGreen = lipgloss.Color("35")
	colorRed   = lipgloss.Color("167")
	colorWhite = lipgloss.Color("255")
	colorGray  = lipgloss.Color("245")
	colorDim   = lipgloss.Color("240")
)

var (
	// StyleHighlight marks addresses and other values the user acts on.
	StyleHighlight = lipgloss.NewStyle().Foreground(colorCyan)
	// StyleDim is for secondary text.
	StyleDim = lipgloss.NewStyle().Foreground(colorDim)
	// StyleValue is for file paths and data values.
	StyleValue = lipgloss.NewStyle().Foreground(colorWhite)

	styleIconSuccess = lipgloss.NewStyle().Foreground(colorGreen)
	styleIconError   = lipgloss.NewStyle().Foreground(colorRed)
	styleIconInfo    = lipgloss.NewStyle().Foreground(colorGray)
	styleIconSpinner = lipgloss.NewStyle().Foreground(colorCyan)
	styleCached      = lipgloss.NewStyle().Foreground(colorGreen)
	styleFresh       = lipgloss.NewStyle().Foreground(colorGray)
)

const (
	iconSuccess = "✓"
	iconError   = "✗"
	iconInfo    = "›"
	iconArrow   = "→"
)

// stdout receives user-facing status lines. Logs go to the logger's writer.
var stdout io.Writer = os.Stdout

// =============================================================================
// Status lines
// =============================================================================

func printSuccess(format string, args ...any) {
	printIcon(styleIconSuccess.Render(iconSuccess), fmt.Sprintf(format, args...))
}

func printError(format string, args ...any) {
	printIcon(styleIconError.Render(iconError), fmt.Sprintf(format, args...))
}

func printInfo(format string, args ...any) {
	printIcon(styleIconInfo.Render(iconInfo), fmt.Sprintf(format, args...))
}

func printIcon(icon, msg string) {
	fmt.Fprintln(stdout, icon+" "+msg)
}

// printDetail prints an indented, dimmed line under the previous status.
func printDetail(format string, args ...any) {
	fmt.Fprintln(stdout, "  "+StyleDim.Render(fmt.Sprintf(format, args...)))
}

// printFile prints a written file with its size.
func printFile(path string, size int) {
	fmt.Fprintln(stdout, "  "+StyleDim.Render(iconArrow)+" "+StyleValue.Render(path)+" "+StyleDim.Render("("+formatSize(size)+")"))
}

// printStats prints "seed N · M lines · cached|fresh".
func printStats(seed uint64, lineCount int, cached bool) {
	status, style := "fresh", styleFresh
	if cached {
		status, style = "cached", styleCached
	}
	parts := []string{fmt.Sprintf("seed %d", seed), fmt.Sprintf("%d lines", lineCount)}
	fmt.Fprintln(stdout, "  "+StyleDim.Render(strings.Join(parts, " · ")+" · ")+style.Render(status))
}

// formatSize renders n bytes as B, KB or MB with one decimal above bytes.
func formatSize(n int) string {
	switch {
	case n < 1024:
		return fmt.Sprintf("%d B", n)
	case n < 1024*1024:
		return fmt.Sprintf("%.1f KB", float64(n)/1024)
	default:
		return fmt.Sprintf("%.1f MB", float64(n)/(1024*1024))
	}
}
