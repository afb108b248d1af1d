package view

import (
	"encoding/base64"
	"fmt"
	"strings"
	"sync"

	"github.com/aymerick/raymond"
)

var registerHelpersOnce sync.Once

// Engine compiles named Handlebars templates once and renders them
type Engine struct {
	mu        sync.RWMutex
	templates map[string]*raymond.Template
}

// NewEngine creates an engine with the page helpers registered
func NewEngine() *Engine {
	// raymond helpers are process global and panic on re-registration
	registerHelpersOnce.Do(registerHelpers)

	return &Engine{templates: make(map[string]*raymond.Template)}
}

// Render executes the template registered as name, compiling source the
// first time name is seen
func (e *Engine) Render(name, source string, data interface{}) (string, error) {
	tmpl, err := e.compiled(name, source)
	if err != nil {
		return "", fmt.Errorf("template %s: %w", name, err)
	}

	out, err := tmpl.Exec(data)
	if err != nil {
		return "", fmt.Errorf("template %s: execution failed: %w", name, err)
	}

	return out, nil
}

func (e *Engine) compiled(name, source string) (*raymond.Template, error) {
	e.mu.RLock()
	tmpl, ok := e.templates[name]
	e.mu.RUnlock()
	if ok {
		return tmpl, nil
	}

	e.mu.Lock()
	defer e.mu.Unlock()
	if tmpl, ok := e.templates[name]; ok {
		return tmpl, nil
	}

	tmpl, err := raymond.Parse(source)
	if err != nil {
		return nil, fmt.Errorf("parse error: %w", err)
	}
	e.templates[name] = tmpl

	return tmpl, nil
}

func registerHelpers() {
	raymond.RegisterHelper("dataURI", dataURI)
	raymond.RegisterHelper("join", join)
	raymond.RegisterHelper("pluralize", pluralize)
}

// dataURI embeds content as a base64 data URI of the given media type
func dataURI(mediaType string, content interface{}) raymond.SafeString {
	var raw []byte
	switch v := content.(type) {
	case []byte:
		raw = v
	case string:
		raw = []byte(v)
	}
	return raymond.SafeString("data:" + mediaType + ";base64," + base64.StdEncoding.EncodeToString(raw))
}

func join(values interface{}, sep string) string {
	switch v := values.(type) {
	case []string:
		return strings.Join(v, sep)
	case []interface{}:
		parts := make([]string, len(v))
		for i, p := range v {
			parts[i] = fmt.Sprint(p)
		}
		return strings.Join(parts, sep)
	default:
		return ""
	}
}

// pluralize formats a count with its noun, adding "s" unless count is 1
func pluralize(count int, noun string) string {
	if count == 1 {
		return "1 " + noun
	}
	return fmt.Sprintf("%d %ss", count, noun)
}
