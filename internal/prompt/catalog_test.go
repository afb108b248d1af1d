package prompt

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultCatalog(t *testing.T) {
	c := DefaultCatalog()

	want := []string{
		"Summarize Performance",
		"Root Cause Analysis",
		"Suggest Improvements",
		"Freeform Prompt",
	}
	if diff := cmp.Diff(want, c.Names()); diff != "" {
		t.Errorf("Names() mismatch (-want +got):\n%s", diff)
	}

	freeform, err := c.Lookup("Freeform Prompt")
	require.NoError(t, err)
	assert.True(t, freeform.Freeform())

	summary, err := c.Lookup("Summarize Performance")
	require.NoError(t, err)
	assert.False(t, summary.Freeform())
	assert.Equal(t, "Summarize Performance", c.Default().Name)
}

func TestNewCatalogValidation(t *testing.T) {
	t.Run("empty", func(t *testing.T) {
		_, err := NewCatalog(nil)
		assert.Error(t, err)
	})

	t.Run("missing name", func(t *testing.T) {
		_, err := NewCatalog([]Template{{Body: "{table}"}})
		assert.ErrorContains(t, err, "name is required")
	})

	t.Run("duplicate name", func(t *testing.T) {
		_, err := NewCatalog([]Template{
			{Name: "a", Body: "{table}"},
			{Name: "a", Body: "again {table}"},
		})
		assert.ErrorContains(t, err, "duplicate name")
	})
}

func TestCatalogLookupUnknown(t *testing.T) {
	_, err := DefaultCatalog().Lookup("Nope")
	assert.ErrorIs(t, err, ErrUnknownTemplate)
}

func TestCatalogTemplatesIsCopy(t *testing.T) {
	c := DefaultCatalog()
	templates := c.Templates()
	templates[0].Body = "mutated"

	tmpl, err := c.Lookup(templates[0].Name)
	require.NoError(t, err)
	assert.NotEqual(t, "mutated", tmpl.Body)
}
