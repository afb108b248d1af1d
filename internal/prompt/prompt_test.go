package prompt

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const tableText = "| A |\n|---|\n| 1 |"

func TestCatalogPrompt(t *testing.T) {
	c := DefaultCatalog()

	t.Run("catalog template", func(t *testing.T) {
		p, err := c.Prompt(Request{Template: "Root Cause Analysis"}, tableText)
		require.NoError(t, err)
		assert.Equal(t, ModeCatalog, p.Mode)
		assert.Equal(t, "Root Cause Analysis", p.Template)
		assert.Equal(t,
			"Given this MES data:\n\n| A |\n|---|\n| 1 |\n\nIdentify potential root causes of alerts or deviations.",
			p.Text)
	})

	t.Run("custom text ignored for catalog template", func(t *testing.T) {
		p, err := c.Prompt(Request{Template: "Suggest Improvements", Custom: "ignored"}, tableText)
		require.NoError(t, err)
		assert.NotContains(t, p.Text, "ignored")
	})

	t.Run("empty name selects first template", func(t *testing.T) {
		p, err := c.Prompt(Request{}, tableText)
		require.NoError(t, err)
		assert.Equal(t, "Summarize Performance", p.Template)
	})

	t.Run("freeform inserts table into user text", func(t *testing.T) {
		p, err := c.Prompt(Request{
			Template: "Freeform Prompt",
			Custom:   "Data:\n{table}\nAgain:\n{table}",
		}, tableText)
		require.NoError(t, err)
		assert.Equal(t, ModeFreeform, p.Mode)
		assert.Equal(t, "Data:\n"+tableText+"\nAgain:\n"+tableText, p.Text)
	})

	t.Run("freeform without table token passes through", func(t *testing.T) {
		p, err := c.Prompt(Request{Template: "Freeform Prompt", Custom: "Just a question"}, tableText)
		require.NoError(t, err)
		assert.Equal(t, "Just a question", p.Text)
	})

	t.Run("freeform with empty text is empty", func(t *testing.T) {
		p, err := c.Prompt(Request{Template: "Freeform Prompt"}, tableText)
		require.NoError(t, err)
		assert.Equal(t, "", p.Text)
	})

	t.Run("table text containing custom token is left alone", func(t *testing.T) {
		p, err := c.Prompt(Request{Template: "Freeform Prompt", Custom: "{table}"}, "{custom}")
		require.NoError(t, err)
		assert.Equal(t, "{custom}", p.Text)
	})

	t.Run("unknown template", func(t *testing.T) {
		_, err := c.Prompt(Request{Template: "Missing"}, tableText)
		assert.ErrorIs(t, err, ErrUnknownTemplate)
	})
}

func TestPromptMixedTemplate(t *testing.T) {
	c, err := NewCatalog([]Template{
		{Name: "Question", Body: "Context:\n{table}\n\nQuestion: {custom}"},
	})
	require.NoError(t, err)

	p, err := c.Prompt(Request{Template: "Question", Custom: "Which line is hottest?"}, "| T |")
	require.NoError(t, err)
	assert.Equal(t, ModeFreeform, p.Mode)
	assert.Equal(t, "Context:\n| T |\n\nQuestion: Which line is hottest?", p.Text)
}
