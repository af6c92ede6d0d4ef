package ui

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"
)

// DividerWidth is the default width for divider lines.
const DividerWidth = 64

// Display renders per-host deployment progress to an output writer.
type Display struct {
	w io.Writer
}

// NewDisplay creates a display writing to w.
func NewDisplay(w io.Writer) *Display {
	return &Display{w: w}
}

// Host renders the header line for a host.
// Shows: ● web1.example.com
func (d *Display) Host(name string) {
	symbolStyle := lipgloss.NewStyle().Foreground(ColorInfo)
	nameStyle := lipgloss.NewStyle().Bold(true)
	fmt.Fprintf(d.w, "%s %s\n", symbolStyle.Render(SymbolComplete), nameStyle.Render(name))
}

// Success renders a completed step.
// Shows:   ✓ Uploaded files (0.3s)
func (d *Display) Success(name string, duration time.Duration) {
	fmt.Fprintf(d.w, "  %s\n", FormatPhase(SymbolSuccess, ColorSuccess, name, timing(duration)))
}

// Fail renders a failed step with the error indented beneath it.
// Shows:   ✗ Upload failed (2.3s)
func (d *Display) Fail(name string, duration time.Duration, err error) {
	fmt.Fprintf(d.w, "  %s\n", FormatPhase(SymbolFail, ColorError, name, timing(duration)))
	if err == nil {
		return
	}
	style := lipgloss.NewStyle().Foreground(ColorError)
	for _, line := range strings.Split(strings.TrimSpace(err.Error()), "\n") {
		if line = strings.TrimSpace(line); line != "" {
			fmt.Fprintf(d.w, "    %s\n", style.Render(line))
		}
	}
}

// Skipped renders a step that did not run.
// Shows:   ⊘ Cleanup (upload failed)
func (d *Display) Skipped(name, reason string) {
	symbolStyle := lipgloss.NewStyle().Foreground(ColorWarning)
	reasonStyle := lipgloss.NewStyle().Foreground(ColorMuted)

	if reason == "" {
		fmt.Fprintf(d.w, "  %s %s\n", symbolStyle.Render(SymbolSkipped), name)
		return
	}
	fmt.Fprintf(d.w, "  %s %s %s\n", symbolStyle.Render(SymbolSkipped), name, reasonStyle.Render("("+reason+")"))
}

// Running renders a runner "→ Running '<script>'" marker.
func (d *Display) Running(text string) {
	style := lipgloss.NewStyle().Foreground(ColorInfo)
	fmt.Fprintf(d.w, "  %s %s\n", style.Render(SymbolArrow), style.Render(text))
}

// ScriptError renders a runner "ERROR: ..." marker.
func (d *Display) ScriptError(text string) {
	style := lipgloss.NewStyle().Foreground(ColorError).Bold(true)
	fmt.Fprintf(d.w, "  %s %s\n", style.Render(SymbolFail), style.Render(text))
}

// Output renders command output, indented. Empty output renders nothing.
func (d *Display) Output(text string) {
	text = strings.TrimRight(text, "\n")
	if text == "" {
		return
	}
	for _, line := range strings.Split(text, "\n") {
		fmt.Fprintf(d.w, "    %s\n", line)
	}
}

// Command renders a command line instead of running it.
// Shows:   $ ssh web1 'mkdir -p /tmp/shellshock-…'
func (d *Display) Command(cmd string) {
	style := lipgloss.NewStyle().Foreground(ColorMuted)
	fmt.Fprintf(d.w, "  %s %s\n", style.Render("$"), cmd)
}

// Divider renders a horizontal line between hosts and the summary.
func (d *Display) Divider() {
	fmt.Fprintf(d.w, "\n%s\n\n", FormatDivider(DividerWidth))
}

// Newline writes an empty line.
func (d *Display) Newline() {
	fmt.Fprintln(d.w)
}

// Write lets a Display be used as the destination of other writers.
func (d *Display) Write(p []byte) (int, error) {
	return d.w.Write(p)
}

// FormatPhase returns a formatted status line as a string.
func FormatPhase(symbol string, symbolColor lipgloss.Color, name string, timing string) string {
	symbolStyle := lipgloss.NewStyle().Foreground(symbolColor)
	timingStyle := lipgloss.NewStyle().Foreground(ColorMuted)

	if timing == "" {
		return fmt.Sprintf("%s %s", symbolStyle.Render(symbol), name)
	}
	return fmt.Sprintf("%s %s %s", symbolStyle.Render(symbol), name, timingStyle.Render(timing))
}

// FormatDivider returns a divider line as a string.
func FormatDivider(width int) string {
	style := lipgloss.NewStyle().Foreground(ColorMuted)
	return style.Render(strings.Repeat("━", width))
}

// FormatDuration formats a duration for display (e.g., "0.3s", "1.2s").
func FormatDuration(d time.Duration) string {
	secs := d.Seconds()
	if secs < 0.1 {
		return fmt.Sprintf("%.2fs", secs)
	}
	return fmt.Sprintf("%.1fs", secs)
}

func timing(d time.Duration) string {
	if d <= 0 {
		return ""
	}
	return "(" + FormatDuration(d) + ")"
}
