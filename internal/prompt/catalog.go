package prompt

import (
	"errors"
	"fmt"
	"strings"
)

// ErrUnknownTemplate is returned when a template name is not in the catalog
var ErrUnknownTemplate = errors.New("unknown template")

// Template is a named prompt template
type Template struct {
	Name string `json:"name" yaml:"name" validate:"required"`
	Body string `json:"body" yaml:"body" validate:"required"`
}

// Freeform reports whether the template takes its body from the end user
func (t Template) Freeform() bool {
	return strings.Contains(t.Body, CustomToken)
}

// Catalog is an ordered, immutable set of templates keyed by name
type Catalog struct {
	templates []Template
	index     map[string]int
}

// NewCatalog creates a catalog from the given templates, preserving order
func NewCatalog(templates []Template) (*Catalog, error) {
	if len(templates) == 0 {
		return nil, fmt.Errorf("catalog requires at least one template")
	}

	c := &Catalog{
		templates: make([]Template, 0, len(templates)),
		index:     make(map[string]int, len(templates)),
	}

	for i, t := range templates {
		if t.Name == "" {
			return nil, fmt.Errorf("template %d: name is required", i)
		}
		if _, exists := c.index[t.Name]; exists {
			return nil, fmt.Errorf("template %d: duplicate name %q", i, t.Name)
		}
		c.index[t.Name] = len(c.templates)
		c.templates = append(c.templates, t)
	}

	return c, nil
}

// DefaultCatalog returns the built-in manufacturing prompt templates
func DefaultCatalog() *Catalog {
	c, err := NewCatalog(DefaultTemplates())
	if err != nil {
		panic(fmt.Sprintf("invalid default catalog: %v", err))
	}
	return c
}

// DefaultTemplates returns a fresh copy of the built-in templates
func DefaultTemplates() []Template {
	return []Template{
		{
			Name: "Summarize Performance",
			Body: "Here is a dataset:\n\n{table}\n\nPlease summarize key performance metrics and anomalies.",
		},
		{
			Name: "Root Cause Analysis",
			Body: "Given this MES data:\n\n{table}\n\nIdentify potential root causes of alerts or deviations.",
		},
		{
			Name: "Suggest Improvements",
			Body: "Here is a dataset:\n\n{table}\n\nIdentify areas of improvement and propose 2 concrete suggestions.",
		},
		{
			Name: "Freeform Prompt",
			Body: CustomToken,
		},
	}
}

// Names returns the template names in catalog order
func (c *Catalog) Names() []string {
	names := make([]string, len(c.templates))
	for i, t := range c.templates {
		names[i] = t.Name
	}
	return names
}

// Templates returns a copy of the templates in catalog order
func (c *Catalog) Templates() []Template {
	out := make([]Template, len(c.templates))
	copy(out, c.templates)
	return out
}

// Lookup returns the template with the given name
func (c *Catalog) Lookup(name string) (Template, error) {
	i, ok := c.index[name]
	if !ok {
		return Template{}, fmt.Errorf("%w: %q", ErrUnknownTemplate, name)
	}
	return c.templates[i], nil
}

// Default returns the first template in the catalog
func (c *Catalog) Default() Template {
	return c.templates[0]
}
