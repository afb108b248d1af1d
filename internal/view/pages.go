package view

import (
	_ "embed"
	"fmt"
	"io"

	"github.com/aescanero/dago-prompt-dashboard/internal/dashboard"
	"github.com/aescanero/dago-prompt-dashboard/internal/prompt"
)

//go:embed templates/dashboard.hbs
var dashboardTemplate string

// Option is a template choice in the prompt selector
type Option struct {
	Name     string
	Selected bool
	Freeform bool
}

// Chart is a PNG chart shown on the page
type Chart struct {
	Title string
	PNG   []byte
}

// Page is the model of the dashboard page
type Page struct {
	Title        string
	Description  string
	Templates    []Option
	Freeform     bool
	Custom       string
	FilterColumn string
	FilterValue  string
	Error        string
	Advisories   []string

	HasData     bool
	Columns     []string
	PreviewRows [][]string
	Rows        int
	Charts      []Chart
	Graph       string
	Prompt      string
	Filename    string
}

// NewPage creates the model of an empty dashboard with the given selection
func NewPage(def *dashboard.Definition, catalog *prompt.Catalog, req dashboard.Request) Page {
	selected := req.Template
	if selected == "" {
		selected = catalog.Default().Name
	}

	page := Page{
		Title:       def.Title,
		Description: def.Description,
		Custom:      req.Custom,
		FilterValue: req.FilterValue,
	}
	for _, t := range catalog.Templates() {
		opt := Option{Name: t.Name, Selected: t.Name == selected, Freeform: t.Freeform()}
		if opt.Selected {
			page.Freeform = opt.Freeform
		}
		page.Templates = append(page.Templates, opt)
	}

	return page
}

// WithView fills the page with a built dashboard view
func (p Page) WithView(v *dashboard.View, filename string) Page {
	p.HasData = true
	p.Columns = v.Columns
	p.Rows = v.Rows
	p.FilterColumn = v.FilterColumn
	p.FilterValue = v.FilterValue
	p.Advisories = v.Advisories
	p.Graph = v.Graph
	p.Filename = filename
	if v.Preview != nil {
		p.PreviewRows = v.Preview.Rows
	}
	if v.Prompt != nil {
		p.Prompt = v.Prompt.Text
	}
	for _, c := range v.Charts {
		p.Charts = append(p.Charts, Chart{Title: c.Title, PNG: c.PNG})
	}
	return p
}

// WithError returns the page with an error message shown
func (p Page) WithError(err error) Page {
	p.Error = err.Error()
	return p
}

// data converts the page to the map handed to the template
func (p Page) data() map[string]interface{} {
	templates := make([]map[string]interface{}, len(p.Templates))
	for i, t := range p.Templates {
		templates[i] = map[string]interface{}{
			"name":     t.Name,
			"selected": t.Selected,
			"freeform": t.Freeform,
		}
	}

	charts := make([]map[string]interface{}, len(p.Charts))
	for i, c := range p.Charts {
		charts[i] = map[string]interface{}{
			"title": c.Title,
			"png":   c.PNG,
		}
	}

	return map[string]interface{}{
		"title":        p.Title,
		"description":  p.Description,
		"templates":    templates,
		"freeform":     p.Freeform,
		"custom":       p.Custom,
		"filterColumn": p.FilterColumn,
		"filterValue":  p.FilterValue,
		"error":        p.Error,
		"advisories":   p.Advisories,
		"hasData":      p.HasData,
		"columns":      p.Columns,
		"previewRows":  p.PreviewRows,
		"rows":         p.Rows,
		"charts":       charts,
		"graph":        p.Graph,
		"prompt":       p.Prompt,
		"filename":     p.Filename,
	}
}

// Pages renders the dashboard's HTML pages
type Pages struct {
	engine *Engine
}

// NewPages creates a page renderer backed by the engine
func NewPages(engine *Engine) *Pages {
	return &Pages{engine: engine}
}

// Dashboard writes the dashboard page
func (p *Pages) Dashboard(w io.Writer, page Page) error {
	out, err := p.engine.Render("dashboard", dashboardTemplate, page.data())
	if err != nil {
		return fmt.Errorf("failed to render dashboard page: %w", err)
	}

	if _, err := io.WriteString(w, out); err != nil {
		return fmt.Errorf("failed to write dashboard page: %w", err)
	}

	return nil
}
