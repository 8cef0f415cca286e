// Package present renders verification results for the terminal.
package present

import (
	"fmt"
	"strings"

	"truthonly/factcheck"
	"truthonly/models"

	"github.com/charmbracelet/lipgloss"
)

var (
	trueStyle     = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#4ecdc4"))
	falseStyle    = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#ff6b6b"))
	mutedStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
	headingStyle  = lipgloss.NewStyle().Bold(true).Underline(true)
	boxStyle      = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).Padding(0, 1)
	fallbackBadge = lipgloss.NewStyle().Foreground(lipgloss.Color("#ffd166")).Render("offline estimate")
)

// Verdict is the one-line label for a result.
func Verdict(r models.VerificationResult) string {
	if r.IsTrue {
		return "LIKELY TRUE"
	}
	return "LIKELY FALSE"
}

// Outcome renders a finished check as a bordered block.
func Outcome(out factcheck.Outcome) string {
	r := out.Result
	style := falseStyle
	if r.IsTrue {
		style = trueStyle
	}

	var b strings.Builder
	fmt.Fprintf(&b, "%s  %s\n", style.Render(Verdict(r)), mutedStyle.Render(fmt.Sprintf("confidence %d%%", r.Confidence)))
	if r.Classification != "" {
		fmt.Fprintf(&b, "Classification: %s\n", r.Classification)
	}
	if r.Reason != "" {
		fmt.Fprintf(&b, "Reason: %s\n", r.Reason)
	}
	if r.Origin == models.OriginFallback {
		fmt.Fprintf(&b, "%s\n", fallbackBadge)
	}
	b.WriteString("\n" + headingStyle.Render("Sources") + "\n")
	for _, s := range r.Sources {
		fmt.Fprintf(&b, "• %s %s\n", s.Name, mutedStyle.Render(s.URL))
	}
	if out.RecordID != "" {
		fmt.Fprintf(&b, "\n%s", mutedStyle.Render("id "+out.RecordID))
	}
	return boxStyle.Render(strings.TrimRight(b.String(), "\n"))
}

// History renders the recent-checks list, one line per entry.
func History(entries []models.RecentCheckEntry) string {
	if len(entries) == 0 {
		return mutedStyle.Render("No recent checks.")
	}
	var b strings.Builder
	for _, e := range entries {
		fmt.Fprintf(&b, "%s  %-5s  %s\n",
			mutedStyle.Render(e.Timestamp.Local().Format("2006-01-02 15:04")),
			e.Type,
			truncate(e.Content, 60))
	}
	return strings.TrimRight(b.String(), "\n")
}

// List renders plain strings as a bulleted list.
func List(items []string, empty string) string {
	if len(items) == 0 {
		return mutedStyle.Render(empty)
	}
	lines := make([]string, len(items))
	for i, it := range items {
		lines[i] = "• " + it
	}
	return strings.Join(lines, "\n")
}

func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n-1]) + "…"
}
