package main

import (
	"fmt"
	"strings"

	"github.com/JonMunkholm/attendance/internal/attendance"
	"github.com/JonMunkholm/attendance/internal/report"
	"github.com/charmbracelet/lipgloss"
)

var (
	accent  = lipgloss.Color("#5B8DEF")
	muted   = lipgloss.Color("#666666")
	success = lipgloss.Color("#00CC66")
	danger  = lipgloss.Color("#FF4D4D")
)

var (
	titleStyle   = lipgloss.NewStyle().Bold(true).Foreground(accent)
	mutedStyle   = lipgloss.NewStyle().Foreground(muted)
	presentStyle = lipgloss.NewStyle().Foreground(success).Bold(true)
	absentStyle  = lipgloss.NewStyle().Foreground(danger)
	errorStyle   = lipgloss.NewStyle().Foreground(danger).Bold(true)
	nameStyle    = lipgloss.NewStyle().PaddingRight(2)
	secondsStyle = lipgloss.NewStyle().Align(lipgloss.Right).PaddingRight(2)
)

// renderSummary is the terminal view of a report: one line per participant
// and the files written.
func renderSummary(rep *report.Report, written []string) string {
	var b strings.Builder

	b.WriteString(titleStyle.Render("▸ " + rep.FileName))
	b.WriteString("\n")
	b.WriteString(mutedStyle.Render(fmt.Sprintf("  encoding %s · threshold %ds", rep.Encoding, rep.Threshold)))
	b.WriteString("\n\n")

	nameWidth, secondsWidth := len("Full Name"), len("Seconds")
	for _, r := range rep.Results {
		nameWidth = max(nameWidth, lipgloss.Width(r.FullName))
		secondsWidth = max(secondsWidth, len(attendance.FormatSeconds(r.TotalSeconds)))
	}
	names := nameStyle.Width(nameWidth + 2)
	secs := secondsStyle.Width(secondsWidth + 2)

	b.WriteString("  " + lipgloss.JoinHorizontal(lipgloss.Top,
		mutedStyle.Inherit(names).Render("Full Name"),
		mutedStyle.Inherit(secs).Render("Seconds"),
		mutedStyle.Render("Status"),
	))
	b.WriteString("\n")

	for _, r := range rep.Results {
		status := absentStyle.Render(string(r.Status))
		if r.Status == attendance.StatusPresent {
			status = presentStyle.Render(string(r.Status))
		}
		b.WriteString("  " + lipgloss.JoinHorizontal(lipgloss.Top,
			names.Render(r.FullName),
			secs.Render(attendance.FormatSeconds(r.TotalSeconds)),
			status,
		))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(fmt.Sprintf("  %s  %s\n",
		presentStyle.Render(fmt.Sprintf("%d present", rep.Present)),
		absentStyle.Render(fmt.Sprintf("%d absent", rep.Absent)),
	))
	for _, path := range written {
		b.WriteString(mutedStyle.Render("  wrote "+path) + "\n")
	}
	return b.String()
}
