package view

import (
	"bytes"
	"errors"
	"strings"
	"testing"

	"github.com/aescanero/dago-prompt-dashboard/internal/dashboard"
	"github.com/aescanero/dago-prompt-dashboard/internal/prompt"
	"github.com/aescanero/dago-prompt-dashboard/internal/table"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewPageSelection(t *testing.T) {
	def := dashboard.Default()
	catalog := prompt.DefaultCatalog()

	page := NewPage(def, catalog, dashboard.Request{})
	require.Len(t, page.Templates, 4)
	assert.True(t, page.Templates[0].Selected)
	assert.False(t, page.Freeform)

	page = NewPage(def, catalog, dashboard.Request{
		Request: prompt.Request{Template: "Freeform Prompt", Custom: "hi"},
	})
	assert.True(t, page.Templates[3].Selected)
	assert.True(t, page.Freeform)
	assert.Equal(t, "hi", page.Custom)
}

func TestDashboardEmptyForm(t *testing.T) {
	pages := NewPages(NewEngine())
	page := NewPage(dashboard.Default(), prompt.DefaultCatalog(), dashboard.Request{})

	var buf bytes.Buffer
	require.NoError(t, pages.Dashboard(&buf, page))

	html := buf.String()
	assert.Contains(t, html, "<title>LLM Prompt Generator from CSV</title>")
	assert.Contains(t, html, `<option value="Summarize Performance" selected>`)
	assert.Contains(t, html, `<option value="Freeform Prompt">`)
	assert.Contains(t, html, "use {table} to insert data")
	assert.NotContains(t, html, "Generated Prompt")
}

func TestDashboardWithView(t *testing.T) {
	pages := NewPages(NewEngine())
	view := &dashboard.View{
		Columns:      []string{"Line", "Alerts"},
		Rows:         1,
		Preview:      table.New([]string{"Line", "Alerts"}, [][]string{{"L1", "<Overheat>"}}),
		FilterColumn: "Line",
		FilterValue:  "L1",
		Advisories:   []string{"heads up"},
		Charts:       []dashboard.Chart{{Title: "Alert Types", PNG: []byte("png")}},
		Graph:        "digraph \"g\" {}\n",
		Prompt:       &prompt.Prompt{Text: "Here is a dataset:\n\n| Line |"},
	}
	page := NewPage(dashboard.Default(), prompt.DefaultCatalog(), dashboard.Request{}).
		WithView(view, "llm_prompt.txt")

	var buf bytes.Buffer
	require.NoError(t, pages.Dashboard(&buf, page))

	html := buf.String()
	assert.Contains(t, html, "Generated Prompt")
	assert.Contains(t, html, "<td>&lt;Overheat&gt;</td>")
	assert.Contains(t, html, `src="data:image/png;base64,cG5n"`)
	assert.Contains(t, html, "heads up")
	assert.Contains(t, html, `value="L1"`)
	assert.Contains(t, html, "Relationships")
	assert.Contains(t, html, "Here is a dataset:")
	assert.Contains(t, html, `<form id="download" method="post" action="/download">`)
	assert.Contains(t, html, `<input type="hidden" form="download" name="prompt" value="Here is a dataset:`)
	assert.Contains(t, html, "1 row &middot; columns: Line, Alerts")
	assert.Equal(t, 1, strings.Count(html, "<h3>Alert Types</h3>"))
}

func TestDashboardWithError(t *testing.T) {
	pages := NewPages(NewEngine())
	page := NewPage(dashboard.Default(), prompt.DefaultCatalog(), dashboard.Request{}).
		WithError(errors.New("parse csv: line 2: <bad>"))

	var buf bytes.Buffer
	require.NoError(t, pages.Dashboard(&buf, page))
	assert.Contains(t, buf.String(), `<div class="error">parse csv: line 2: &lt;bad&gt;</div>`)
}
