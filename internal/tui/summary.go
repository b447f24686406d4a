package tui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	ltable "github.com/charmbracelet/lipgloss/table"

	"github.com/dm/mistinfo/internal/format"
	"github.com/dm/mistinfo/internal/model"
	"github.com/dm/mistinfo/internal/runner"
)

// RenderSummary renders the per-kind item counts and the report files of a
// finished run.
func RenderSummary(res *runner.Result) string {
	if res == nil || res.Snapshot == nil {
		return ""
	}

	var rows [][]string
	for _, k := range res.Snapshot.Kinds() {
		v, _ := res.Snapshot.Get(k)
		rows = append(rows, []string{string(k), format.FormatNumber(int64(model.ItemCount(v)))})
	}

	t := ltable.New().
		Headers("RESOURCE", "ITEMS").
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == ltable.HeaderRow {
				return lipgloss.NewStyle().Bold(true).Foreground(colorGray).Padding(0, 1)
			}
			base := lipgloss.NewStyle().Padding(0, 1)
			if row%2 == 0 {
				base = base.Background(colorAlt)
			}
			if col == 1 {
				return base.Foreground(colorCyan).Align(lipgloss.Right)
			}
			return base.Foreground(colorWhite)
		}).
		BorderStyle(lipgloss.NewStyle().Foreground(colorGray)).
		BorderTop(false).
		BorderBottom(false).
		BorderLeft(false).
		BorderRight(false).
		BorderHeader(true).
		BorderColumn(false)

	lines := []string{t.Render()}
	for _, f := range res.Files {
		if f.Err != nil {
			lines = append(lines, StyleFailed.Render("✗ ")+f.Path+"  "+StyleError.Render(f.Err.Error()))
			continue
		}
		lines = append(lines, StyleOK.Render("✓ ")+f.Path+"  "+StyleDim.Render(format.FormatBytes(f.Size)))
	}
	lines = append(lines, lipgloss.NewStyle().Foreground(colorPurple).Render(
		"Total runtime: "+format.FormatDuration(res.Elapsed)))
	return strings.Join(lines, "\n")
}
