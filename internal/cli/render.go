package cli

import (
	"fmt"
	"strings"

	"github.com/duescan/duescan/internal/model"
)

// RenderItems renders the extracted rows as a fixed-width table, colored by
// confidence threshold.
func RenderItems(items []model.Item) string {
	if len(items) == 0 {
		return SubtleStyle.Render("No installments extracted.") + "\n"
	}

	var b strings.Builder
	b.WriteString(TitleStyle.Render(fmt.Sprintf("Installments (%d)", len(items))))
	b.WriteString("\n")
	b.WriteString(HeaderStyle.Render(fmt.Sprintf("%-36s %-14s %-5s %-12s %-10s %-8s %-9s %-5s",
		"ID", "PROVIDER", "NO", "DUE", "AMOUNT", "AUTOPAY", "LATE FEE", "CONF")))
	b.WriteString("\n")

	for _, item := range items {
		no := "-"
		if item.InstallmentNo > 0 {
			no = fmt.Sprintf("%d", item.InstallmentNo)
		}
		due := item.DueDate
		if due == "" {
			due = "-"
			if item.RawDueDate != "" {
				due = "?" + item.RawDueDate
			}
		}
		autopay := "no"
		if item.Autopay {
			autopay = "yes"
		}
		lateFee := "-"
		if item.LateFeeCents > 0 {
			lateFee = model.FormatCents(item.LateFeeCents, item.Currency)
		}

		line := fmt.Sprintf("%-36s %-14s %-5s %-12s %-10s %-8s %-9s %s",
			item.ID,
			item.Provider,
			no,
			due,
			model.FormatCents(item.AmountCents, item.Currency),
			autopay,
			lateFee,
			ConfidenceStyle(item.Confidence).Render(fmt.Sprintf("%.2f", item.Confidence)))
		b.WriteString(line)
		b.WriteString("\n")
	}
	return b.String()
}

// RenderIssues renders the parse failures below the items table.
func RenderIssues(issues []model.Issue) string {
	if len(issues) == 0 {
		return ""
	}
	var b strings.Builder
	b.WriteString(WarningStyle.Render(fmt.Sprintf("Issues (%d)", len(issues))))
	b.WriteString("\n")
	for _, issue := range issues {
		b.WriteString(fmt.Sprintf("  %s %s\n", ErrorStyle.Render("✗"), issue.Reason))
		if issue.Snippet != "" {
			b.WriteString("    " + SubtleStyle.Render(issue.Snippet) + "\n")
		}
	}
	return b.String()
}

// RenderStats renders the cache counters footer.
func RenderStats(stats model.CacheStats) string {
	return SubtleStyle.Render(fmt.Sprintf("cache: %d hits, %d misses, %d entries (hit rate %.2f)",
		stats.Hits, stats.Misses, stats.Size, stats.HitRateRaw)) + "\n"
}
