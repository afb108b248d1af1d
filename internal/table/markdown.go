package table

import (
	"fmt"
	"strings"

	"github.com/olekukonko/tablewriter"
	"github.com/olekukonko/tablewriter/renderer"
	"github.com/olekukonko/tablewriter/tw"
)

var cellEscaper = strings.NewReplacer(
	"\r\n", "<br>",
	"\n", "<br>",
	"\r", "<br>",
	"|", `\|`,
)

// Markdown renders the table as a pipe-style markdown table. Line breaks
// inside cells become <br> and pipes are escaped so every record stays on
// one line.
func (t *Table) Markdown() (string, error) {
	var sb strings.Builder

	tbl := tablewriter.NewTable(&sb, tablewriter.WithRenderer(renderer.NewMarkdown()))
	tbl.Configure(func(cfg *tablewriter.Config) {
		cfg.Header.Formatting.AutoFormat = tw.Off
		cfg.Header.Formatting.AutoWrap = tw.WrapNone
		cfg.Row.Formatting.AutoWrap = tw.WrapNone
	})

	tbl.Header(escapeCells(t.Columns))
	rows := make([][]string, len(t.Rows))
	for i, row := range t.Rows {
		rows[i] = escapeCells(row)
	}
	if err := tbl.Bulk(rows); err != nil {
		return "", fmt.Errorf("failed to append rows: %w", err)
	}
	if err := tbl.Render(); err != nil {
		return "", fmt.Errorf("failed to render markdown table: %w", err)
	}

	return strings.TrimRight(sb.String(), "\n"), nil
}

func escapeCells(cells []string) []string {
	out := make([]string, len(cells))
	for i, c := range cells {
		out[i] = cellEscaper.Replace(c)
	}
	return out
}
