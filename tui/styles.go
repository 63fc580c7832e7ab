package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/lukemcguire/canonurl/result"
)

var (
	titleStyle       = lipgloss.NewStyle().Bold(true)
	successStyle     = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("10"))
	errorStyle       = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("9"))
	headerStyle      = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("12"))
	categoryStyle    = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("11"))
	dimStyle         = lipgloss.NewStyle().Faint(true)
	urlStyle         = lipgloss.NewStyle()
	statusErrorStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("9"))
)

// categoryOrder defines the display order for error categories (most to least actionable).
var categoryOrder = []result.ErrorCategory{
	result.CategoryMalformedURL,
	result.CategoryInvalidArgument,
	result.CategoryUnsupportedAlgorithm,
	result.CategoryTimeout,
	result.CategoryCanceled,
	result.CategoryUnknown,
}

// RenderSummary produces a Lip Gloss styled summary of a dedup run.
func RenderSummary(res *result.Result) string {
	if res == nil {
		return errorStyle.Render("No results available.")
	}

	var builder strings.Builder

	duplicates := res.Duplicates()
	if len(duplicates) == 0 {
		builder.WriteString(successStyle.Render("No duplicates found!"))
		builder.WriteString("\n")
	} else {
		builder.WriteString(categoryStyle.Render(fmt.Sprintf("## Duplicates (%d)", len(duplicates))))
		builder.WriteString("\n")

		rows := make([][]string, 0, len(duplicates))
		for _, e := range duplicates {
			first := e.DuplicateOf
			if first == "" {
				first = "(earlier URL)"
			}
			rows = append(rows, []string{e.URL, e.NormalizedURL, first})
		}
		builder.WriteString(renderTable([]string{"URL", "Normalized", "Duplicate Of"}, rows, -1))
		builder.WriteString("\n\n")
	}

	// Group failures by error category
	grouped := make(map[result.ErrorCategory][]result.Entry)
	for _, e := range res.Failed() {
		cat := e.ErrorCategory
		if cat == "" {
			cat = result.CategoryUnknown
		}
		grouped[cat] = append(grouped[cat], e)
	}

	for _, cat := range categoryOrder {
		entries := grouped[cat]
		if len(entries) == 0 {
			continue
		}

		builder.WriteString(categoryStyle.Render(fmt.Sprintf("## %s (%d)", result.FormatCategory(cat), len(entries))))
		builder.WriteString("\n")

		rows := make([][]string, 0, len(entries))
		for _, e := range entries {
			rows = append(rows, []string{e.URL, e.Error})
		}
		builder.WriteString(renderTable([]string{"URL", "Error"}, rows, 1))
		builder.WriteString("\n\n")
	}

	builder.WriteString(titleStyle.Render(fmt.Sprintf(
		"Checked %d URLs: %d unique, %d duplicates, %d failed (%s)",
		res.Stats.Total,
		res.Stats.Unique,
		res.Stats.Duplicates,
		res.Stats.Failed,
		res.Stats.Duration.Round(1_000_000), // round to ms
	)))
	builder.WriteString("\n")

	return builder.String()
}

// renderTable draws a rounded table. errorCol, if not negative, is styled as an error.
func renderTable(headers []string, rows [][]string, errorCol int) string {
	return table.New().
		Border(lipgloss.RoundedBorder()).
		Headers(headers...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == table.HeaderRow {
				return headerStyle
			}
			if col == errorCol {
				return statusErrorStyle
			}
			return urlStyle
		}).
		Rows(rows...).
		Render()
}
