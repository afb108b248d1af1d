package publish

import (
	"context"
	"errors"
	"time"

	"github.com/aescanero/dago-prompt-dashboard/internal/prompt"
)

// Event is a generated prompt handed to sinks
type Event struct {
	RequestID string      `json:"request_id"`
	Template  string      `json:"template"`
	Mode      prompt.Mode `json:"mode"`
	Prompt    string      `json:"prompt"`
	Timestamp time.Time   `json:"timestamp"`
}

// NewEvent creates an event for a rendered prompt
func NewEvent(requestID string, p *prompt.Prompt) Event {
	return Event{
		RequestID: requestID,
		Template:  p.Template,
		Mode:      p.Mode,
		Prompt:    p.Text,
		Timestamp: time.Now().UTC(),
	}
}

// Sink receives generated prompts
type Sink interface {
	Publish(ctx context.Context, event Event) error
}

// Multi fans an event out to several sinks
type Multi []Sink

// Publish publishes to every sink and joins their errors
func (m Multi) Publish(ctx context.Context, event Event) error {
	var errs []error
	for _, s := range m {
		if err := s.Publish(ctx, event); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}
