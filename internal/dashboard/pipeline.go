package dashboard

import (
	"context"
	"fmt"

	"github.com/aescanero/dago-prompt-dashboard/internal/chart"
	"github.com/aescanero/dago-prompt-dashboard/internal/eval/cel"
	"github.com/aescanero/dago-prompt-dashboard/internal/graph"
	"github.com/aescanero/dago-prompt-dashboard/internal/prompt"
	"github.com/aescanero/dago-prompt-dashboard/internal/table"
	"go.uber.org/zap"
)

// NoFilterColumnAdvisory is shown when no identifying column is present
const NoFilterColumnAdvisory = "No identifying column found for filtering."

// Request carries the inputs of one interaction besides the table
type Request struct {
	prompt.Request
	FilterValue string `json:"filter_value,omitempty"`
}

// Chart is a rendered chart
type Chart struct {
	Title string
	Kind  chart.Kind
	PNG   []byte
}

// View is everything shown for one interaction
type View struct {
	Title        string
	Description  string
	Columns      []string
	Rows         int
	Preview      *table.Table
	FilterColumn string
	FilterValue  string
	Advisories   []string
	Charts       []Chart
	Graph        string
	TableText    string
	Prompt       *prompt.Prompt
}

// Pipeline builds views for a single dashboard definition
type Pipeline struct {
	def       *Definition
	catalog   *prompt.Catalog
	evaluator *cel.Evaluator
	renderer  *chart.Renderer
	logger    *zap.Logger
}

// NewPipeline creates a pipeline for the given definition
func NewPipeline(def *Definition, renderer *chart.Renderer, logger *zap.Logger) (*Pipeline, error) {
	if err := def.Validate(); err != nil {
		return nil, fmt.Errorf("invalid dashboard: %w", err)
	}

	catalog, err := prompt.NewCatalog(def.Templates)
	if err != nil {
		return nil, err
	}

	return &Pipeline{
		def:       def,
		catalog:   catalog,
		evaluator: cel.NewEvaluator(),
		renderer:  renderer,
		logger:    logger,
	}, nil
}

// Catalog returns the pipeline's template catalog
func (p *Pipeline) Catalog() *prompt.Catalog {
	return p.catalog
}

// Definition returns the pipeline's dashboard definition
func (p *Pipeline) Definition() *Definition {
	return p.def
}

// FilterColumn returns the first identifying column present in the table
func (p *Pipeline) FilterColumn(t *table.Table) (string, bool) {
	for _, col := range p.def.Filter.Columns {
		if t.HasColumn(col) {
			return col, true
		}
	}
	return "", false
}

// Build derives the complete view for one interaction
func (p *Pipeline) Build(ctx context.Context, t *table.Table, req Request) (*View, error) {
	view := &View{
		Title:       p.def.Title,
		Description: p.def.Description,
		Columns:     t.Columns,
	}

	data := t
	if len(p.def.Filter.Columns) > 0 {
		col, ok := p.FilterColumn(t)
		if !ok {
			view.Advisories = append(view.Advisories, NoFilterColumnAdvisory)
		} else {
			view.FilterColumn = col
			if req.FilterValue != "" {
				view.FilterValue = req.FilterValue
				data = t.Filter(col, req.FilterValue)
			}
		}
	}

	view.Rows = data.Len()
	view.Preview = data.Head(p.def.PreviewRows)
	view.Charts, view.Advisories = p.buildCharts(ctx, data, view.Advisories)

	if g, ok := graph.Build(data, p.def.Graph); ok {
		view.Graph = g.DOT("relationships")
	}

	tableText, err := data.Markdown()
	if err != nil {
		return nil, fmt.Errorf("failed to render table text: %w", err)
	}
	view.TableText = tableText

	pr, err := p.catalog.Prompt(req.Request, tableText)
	if err != nil {
		return nil, err
	}
	view.Prompt = pr

	p.logger.Debug("view built",
		zap.String("template", pr.Template),
		zap.String("mode", string(pr.Mode)),
		zap.Int("rows", view.Rows),
		zap.Int("charts", len(view.Charts)),
	)

	return view, nil
}

// buildCharts renders every chart whose columns are present and whose gate matches
func (p *Pipeline) buildCharts(ctx context.Context, t *table.Table, advisories []string) ([]Chart, []string) {
	shape := cel.Shape{Columns: t.Columns, Rows: t.Len()}

	var charts []Chart
	for i, spec := range p.def.Charts {
		if !t.HasColumns(spec.Columns()...) {
			continue
		}

		matched, err := p.evaluator.Matches(ctx, spec.When, shape)
		if err != nil {
			p.logger.Warn("chart gate evaluation error",
				zap.Int("chart_index", i),
				zap.String("when", spec.When),
				zap.Error(err),
			)
			continue
		}
		if !matched {
			continue
		}

		img, err := p.renderer.Render(spec, t)
		if err != nil {
			p.logger.Warn("chart render failed",
				zap.Int("chart_index", i),
				zap.String("title", spec.Title),
				zap.Error(err),
			)
			advisories = append(advisories, fmt.Sprintf("Skipped %v", err))
			continue
		}

		charts = append(charts, Chart{Title: spec.Title, Kind: spec.Kind, PNG: img})
	}

	return charts, advisories
}
