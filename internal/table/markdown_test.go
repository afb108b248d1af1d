package table

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMarkdown(t *testing.T) {
	tbl := New([]string{"Line", "Alerts"}, [][]string{
		{"L1", "Overheat"},
		{"L2", "None"},
	})

	md, err := tbl.Markdown()
	require.NoError(t, err)

	var lines []string
	for _, line := range strings.Split(md, "\n") {
		if strings.TrimSpace(line) != "" {
			lines = append(lines, line)
		}
	}
	require.Len(t, lines, 4)
	for _, line := range lines {
		assert.True(t, strings.HasPrefix(strings.TrimSpace(line), "|"), "line %q", line)
	}
	assert.Contains(t, lines[0], "Line")
	assert.Contains(t, lines[0], "Alerts")
	assert.Contains(t, lines[1], "-")
	assert.Contains(t, lines[2], "Overheat")
	assert.Contains(t, lines[3], "L2")
}

func TestMarkdownKeepsHeaderCase(t *testing.T) {
	md, err := New([]string{"Start Time"}, [][]string{{"08:00"}}).Markdown()
	require.NoError(t, err)
	assert.Contains(t, md, "Start Time")
	assert.NotContains(t, md, "START TIME")
}

func TestMarkdownEscapesCells(t *testing.T) {
	tbl := New([]string{"Note|Kind", "Count"}, [][]string{
		{"line1\nline2", "2"},
		{"a|b", "3"},
		{"crlf\r\nend", "4"},
	})

	md, err := tbl.Markdown()
	require.NoError(t, err)

	var lines []string
	for _, line := range strings.Split(md, "\n") {
		if strings.TrimSpace(line) != "" {
			lines = append(lines, line)
		}
	}
	require.Len(t, lines, 5, md)
	assert.Contains(t, lines[0], `Note\|Kind`)
	assert.Contains(t, lines[2], "line1<br>line2")
	assert.Contains(t, lines[3], `a\|b`)
	assert.Contains(t, lines[4], "crlf<br>end")
	assert.NotContains(t, md, "\r")
}
