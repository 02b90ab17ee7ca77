// Copyright (C) 2025 Aleutian AI (jinterlante@aleutian.ai)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.
//
// NOTE: This work is subject to additional terms under AGPL v3 Section 7.
// See the NOTICE.txt file for details regarding AI system attribution.

package analytics

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/AleutianAI/Statecraft/pkg/decisionlog"
)

var (
	bannerStyle = lipgloss.NewStyle().
			Bold(true).
			BorderStyle(lipgloss.NormalBorder()).
			BorderBottom(true).
			BorderTop(true)

	sectionStyle = lipgloss.NewStyle().
			Bold(true).
			BorderStyle(lipgloss.NormalBorder()).
			BorderBottom(true)

	dimStyle = lipgloss.NewStyle().Faint(true)
)

// RenderReport renders a Report for the terminal.
func RenderReport(report Report) string {
	var b strings.Builder

	b.WriteString(bannerStyle.Render("NATIONSTATES DECISION ANALYTICS"))
	b.WriteString("\n\n")
	fmt.Fprintf(&b, "Total Decisions Made: %d\n", report.Total)
	if report.Total == 0 {
		return b.String()
	}

	fmt.Fprintf(&b, "Date Range: %s to %s\n",
		report.Start.Format("2006-01-02"), report.End.Format("2006-01-02"))
	fmt.Fprintf(&b, "Duration: %d days\n", report.DurationDays)
	if report.DurationDays > 0 {
		fmt.Fprintf(&b, "Average Decisions per Day: %.2f\n", report.AvgPerDay)
	}

	b.WriteString("\n")
	b.WriteString(sectionStyle.Render("DECISION METHOD BREAKDOWN"))
	b.WriteString("\n")
	for _, m := range report.Methods {
		fmt.Fprintf(&b, "%s: %d (%.1f%%)\n",
			strings.ToUpper(string(m.Method)), m.Count, m.Percent)
	}

	if len(report.Categories) > 0 {
		b.WriteString("\n")
		b.WriteString(sectionStyle.Render("TOP 10 ISSUE CATEGORIES"))
		b.WriteString("\n")
		for _, c := range report.Categories {
			fmt.Fprintf(&b, "%s: %d\n", c.Category, c.Count)
		}
	}

	b.WriteString("\n")
	b.WriteString(sectionStyle.Render("DECISION STATISTICS"))
	b.WriteString("\n")
	fmt.Fprintf(&b, "AI Decisions: %d\n", report.AICount)
	fmt.Fprintf(&b, "Random Fallback Decisions: %d\n", report.RandomCount)
	if report.AICount > 0 {
		fmt.Fprintf(&b, "AI Success Rate: %.1f%%\n", report.AIShare)
	}

	return b.String()
}

// RenderRecent renders a recent-decision listing.
func RenderRecent(recent []RecentDecision) string {
	if len(recent) == 0 {
		return ""
	}

	var b strings.Builder
	b.WriteString(bannerStyle.Render(fmt.Sprintf("RECENT DECISIONS (Last %d)", len(recent))))
	b.WriteString("\n")
	for i, d := range recent {
		fmt.Fprintf(&b, "\n%d. %s\n", i+1, d.Title)
		fmt.Fprintf(&b, "   Date: %s\n", d.When.Format("2006-01-02 15:04:05"))
		fmt.Fprintf(&b, "   Method: %s\n", strings.ToUpper(string(d.Method)))
		fmt.Fprintf(&b, "   Choice: %s\n", d.Choice)
	}
	return b.String()
}

// RenderSnapshot renders the current nation statistics.
func RenderSnapshot(nation string, snap *decisionlog.StatsSnapshot) string {
	var b strings.Builder

	b.WriteString(bannerStyle.Render("NATION STATISTICS FOR " + strings.ToUpper(nation)))
	b.WriteString("\n")
	fmt.Fprintf(&b, "Date: %s\n", orUnknown(snap.Date))
	fmt.Fprintf(&b, "Category: %s\n", orUnknown(snap.Category))
	fmt.Fprintf(&b, "Region: %s\n", orUnknown(snap.Region))
	if snap.Population != nil {
		fmt.Fprintf(&b, "Population: %d\n", *snap.Population)
	}
	if snap.GDP != nil {
		fmt.Fprintf(&b, "GDP: $%d\n", *snap.GDP)
	}
	if snap.Income != nil {
		fmt.Fprintf(&b, "Average Income: $%d\n", *snap.Income)
	}
	if snap.Tax != nil {
		fmt.Fprintf(&b, "Tax Rate: %.1f%%\n", *snap.Tax)
	}

	b.WriteString("\n")
	b.WriteString(sectionStyle.Render("FREEDOMS"))
	b.WriteString("\n")
	if snap.CivilRights != "" {
		fmt.Fprintf(&b, "Civil Rights: %s\n", snap.CivilRights)
	}
	if snap.Economy != "" {
		fmt.Fprintf(&b, "Economy: %s\n", snap.Economy)
	}
	if snap.PoliticalFreedom != "" {
		fmt.Fprintf(&b, "Political Freedom: %s\n", snap.PoliticalFreedom)
	}

	return b.String()
}

// RenderComparison renders snapshot-to-snapshot changes.
func RenderComparison(lines []string) string {
	if len(lines) == 0 {
		return dimStyle.Render("No changes since last snapshot.")
	}
	var b strings.Builder
	b.WriteString(bannerStyle.Render("NATION STATISTICS COMPARISON"))
	b.WriteString("\n")
	for _, line := range lines {
		b.WriteString(line)
		b.WriteString("\n")
	}
	return b.String()
}

func orUnknown(s string) string {
	if s == "" {
		return "Unknown"
	}
	return s
}
