package deploy

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/rileyhilliard/shellshock/internal/ui"
)

// RenderSummary prints the per-host outcome of a run followed by totals.
func RenderSummary(w io.Writer, report *Report) {
	if report == nil {
		return
	}

	successStyle := lipgloss.NewStyle().Foreground(ui.ColorSuccess)
	errorStyle := lipgloss.NewStyle().Foreground(ui.ColorError)
	mutedStyle := lipgloss.NewStyle().Foreground(ui.ColorMuted)
	headerStyle := lipgloss.NewStyle().Foreground(ui.ColorSecondary).Bold(true)

	fmt.Fprintln(w)
	fmt.Fprintln(w, ui.FormatDivider(ui.DividerWidth))
	fmt.Fprintln(w)

	title := strings.ToUpper(report.Mode.String()[:1]) + report.Mode.String()[1:] + " summary"
	if report.DryRun {
		title += " (dry run)"
	}
	fmt.Fprintln(w, headerStyle.Render(title))
	fmt.Fprintln(w)

	for _, hr := range report.Results {
		symbol, style := ui.SymbolSuccess, successStyle
		if !hr.Success() {
			symbol, style = ui.SymbolFail, errorStyle
		}

		fmt.Fprintf(w, "  %s %s %s\n",
			style.Render(symbol),
			hr.Host,
			mutedStyle.Render("("+ui.FormatDuration(hr.Duration)+")"),
		)

		if !hr.Success() {
			detail := hr.Outcome.String()
			if hr.FailedPhase != PhaseNone {
				detail = fmt.Sprintf("%s during %s", detail, hr.FailedPhase)
			}
			fmt.Fprintf(w, "    %s\n", mutedStyle.Render(detail))
		}
	}

	fmt.Fprintln(w)

	passed, failed := len(report.Succeeded()), len(report.Failed())
	failedStyle := mutedStyle
	if failed > 0 {
		failedStyle = errorStyle
	}
	fmt.Fprintf(w, "  %s %d succeeded  %s %d failed  %s %d total  %s\n",
		successStyle.Render(ui.SymbolSuccess), passed,
		failedStyle.Render(ui.SymbolFail), failed,
		mutedStyle.Render(ui.SymbolComplete), len(report.Results),
		mutedStyle.Render("("+ui.FormatDuration(report.Duration)+")"),
	)
}

// FormatBriefSummary returns a one-line summary like "2/3 hosts succeeded".
func FormatBriefSummary(report *Report) string {
	if report == nil || len(report.Results) == 0 {
		return "no hosts"
	}
	noun := "hosts"
	if len(report.Results) == 1 {
		noun = "host"
	}
	return fmt.Sprintf("%d/%d %s succeeded", len(report.Succeeded()), len(report.Results), noun)
}
