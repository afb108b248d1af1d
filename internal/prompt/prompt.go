package prompt

// Mode represents how the template body was obtained
type Mode string

const (
	// ModeCatalog uses a fixed body from the catalog
	ModeCatalog Mode = "catalog"

	// ModeFreeform uses a body supplied by the end user
	ModeFreeform Mode = "freeform"
)

// Request selects a template and carries freeform text
type Request struct {
	Template string `json:"template"`
	Custom   string `json:"custom,omitempty"`
}

// Prompt is the final prompt for a single request
type Prompt struct {
	Template string `json:"template"`
	Mode     Mode   `json:"mode"`
	Text     string `json:"prompt"`
}

// Prompt renders the requested template against tableText.
// An empty template name selects the first catalog entry.
func (c *Catalog) Prompt(req Request, tableText string) (*Prompt, error) {
	name := req.Template
	if name == "" {
		name = c.Default().Name
	}

	tmpl, err := c.Lookup(name)
	if err != nil {
		return nil, err
	}

	mode := detectMode(tmpl)

	body := tmpl.Body
	if mode == ModeFreeform {
		body = Render(body, req.Custom, CustomToken)
	}

	return &Prompt{
		Template: tmpl.Name,
		Mode:     mode,
		Text:     Render(body, tableText, TableToken),
	}, nil
}

// detectMode detects the rendering mode from the template body
func detectMode(tmpl Template) Mode {
	if tmpl.Freeform() {
		return ModeFreeform
	}
	return ModeCatalog
}
