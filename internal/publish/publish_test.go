package publish

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/aescanero/dago-prompt-dashboard/internal/prompt"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type recordingSink struct {
	events []Event
	err    error
}

func (r *recordingSink) Publish(_ context.Context, e Event) error {
	r.events = append(r.events, e)
	return r.err
}

func TestNewEvent(t *testing.T) {
	e := NewEvent("req-1", &prompt.Prompt{Template: "Summarize Performance", Mode: prompt.ModeCatalog, Text: "hi"})
	assert.Equal(t, "req-1", e.RequestID)
	assert.Equal(t, "Summarize Performance", e.Template)
	assert.Equal(t, prompt.ModeCatalog, e.Mode)
	assert.Equal(t, "hi", e.Prompt)
	assert.False(t, e.Timestamp.IsZero())
}

func TestFileSink(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "out")
	sink, err := NewFileSink(dir, "llm_prompt.txt")
	require.NoError(t, err)

	ctx := context.Background()
	require.NoError(t, sink.Publish(ctx, Event{Prompt: "first"}))
	require.NoError(t, sink.Publish(ctx, Event{Prompt: "second"}))

	data, err := os.ReadFile(sink.Path())
	require.NoError(t, err)
	assert.Equal(t, "second", string(data))
	assert.Equal(t, filepath.Join(dir, "llm_prompt.txt"), sink.Path())
}

func TestMulti(t *testing.T) {
	ok := &recordingSink{}
	failing := &recordingSink{err: errors.New("boom")}

	err := Multi{failing, ok}.Publish(context.Background(), Event{Prompt: "p"})
	assert.ErrorContains(t, err, "boom")
	assert.Len(t, ok.events, 1)
	assert.Len(t, failing.events, 1)

	assert.NoError(t, Multi{}.Publish(context.Background(), Event{}))
}
