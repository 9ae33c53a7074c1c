package main

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"

	"github.com/janekbaraniewski/usagetui/internal/core"
)

var (
	titleStyle = lipgloss.NewStyle().Bold(true)
	errStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("1"))
	okStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("2"))
	warnStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("3"))
)

func percentStyle(pct float64) lipgloss.Style {
	switch {
	case pct < 50:
		return okStyle
	case pct < 80:
		return warnStyle
	default:
		return errStyle
	}
}

func printResult(w io.Writer, r core.ProviderResult, labelWindow bool) {
	title := strings.ToUpper(string(r.Provider))
	if labelWindow {
		title = fmt.Sprintf("%s (%s)", title, r.Window)
	}
	fmt.Fprintf(w, "\n%s\n", titleStyle.Render(title))
	fmt.Fprintln(w, strings.Repeat("-", 40))

	if r.IsError() {
		fmt.Fprintln(w, errStyle.Render("Error: "+r.Err.Message))
		return
	}

	m := r.Metrics

	if m.UsagePercent != nil {
		pct := *m.UsagePercent
		fmt.Fprintf(w, "Usage:    %s %s\n",
			progressBar(pct, 20),
			percentStyle(pct).Render(fmt.Sprintf("%.1f%%", pct)))
	}

	if m.Remaining != nil && m.Limit != nil {
		fmt.Fprintf(w, "Quota:    %.0f / %.0f remaining\n", *m.Remaining, *m.Limit)
	}

	if m.ResetAt != nil {
		if delta := time.Until(*m.ResetAt); delta > 0 {
			fmt.Fprintf(w, "Resets:   %dh %dm\n",
				int(delta.Hours()), int(delta.Minutes())%60)
		}
	}

	if m.Cost != nil {
		fmt.Fprintf(w, "Cost:     $%.4f\n", *m.Cost)
	}

	if m.Requests != nil {
		fmt.Fprintf(w, "Requests: %d\n", *m.Requests)
	}

	if m.InputTokens != nil || m.OutputTokens != nil {
		var in, out int64
		if m.InputTokens != nil {
			in = *m.InputTokens
		}
		if m.OutputTokens != nil {
			out = *m.OutputTokens
		}
		fmt.Fprintf(w, "Tokens:   %d (%d in / %d out)\n", in+out, in, out)
	}
}

func progressBar(percent float64, width int) string {
	if percent < 0 {
		percent = 0
	}
	if percent > 100 {
		percent = 100
	}
	filled := int(float64(width) * percent / 100)
	return "[" + strings.Repeat("#", filled) + strings.Repeat("-", width-filled) + "]"
}
