package publish

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/natefinch/atomic"
)

// FileSink writes the latest prompt to a file
type FileSink struct {
	path string
}

// NewFileSink creates a sink writing to filename inside dir, creating dir
func NewFileSink(dir, filename string) (*FileSink, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create output dir: %w", err)
	}
	return &FileSink{path: filepath.Join(dir, filename)}, nil
}

// Path returns the file the sink writes
func (s *FileSink) Path() string {
	return s.path
}

// Publish atomically replaces the file with the event's prompt
func (s *FileSink) Publish(_ context.Context, event Event) error {
	return WriteFile(s.path, event.Prompt)
}

// WriteFile atomically replaces path with text
func WriteFile(path, text string) error {
	if err := atomic.WriteFile(path, strings.NewReader(text)); err != nil {
		return fmt.Errorf("failed to write prompt file: %w", err)
	}
	return nil
}
