package dashboard

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/aescanero/dago-prompt-dashboard/internal/chart"
	"github.com/aescanero/dago-prompt-dashboard/internal/eval/cel"
	"github.com/aescanero/dago-prompt-dashboard/internal/graph"
	"github.com/aescanero/dago-prompt-dashboard/internal/prompt"
	"github.com/go-playground/validator/v10"
	"github.com/microcosm-cc/bluemonday"
	"gopkg.in/yaml.v3"
)

// DefaultPreviewRows is the number of rows shown in the data preview
const DefaultPreviewRows = 100

// Definition declares a dashboard
type Definition struct {
	Title       string            `yaml:"title" validate:"required"`
	Description string            `yaml:"description"`
	Templates   []prompt.Template `yaml:"templates" validate:"required,min=1,dive"`
	Charts      []chart.Spec      `yaml:"charts" validate:"dive"`
	Graph       graph.Columns     `yaml:"graph"`
	Filter      Filter            `yaml:"filter"`
	PreviewRows int               `yaml:"preview_rows" validate:"gte=0"`
}

// Filter lists the identifying columns rows can be filtered by.
// The first column present in an upload is used.
type Filter struct {
	Columns []string `yaml:"columns" validate:"dive,required"`
}

// Default returns the manufacturing dashboard definition
func Default() *Definition {
	return &Definition{
		Title:     "LLM Prompt Generator from CSV",
		Templates: prompt.DefaultTemplates(),
		Charts: []chart.Spec{
			{
				Title: "Average Temperature by Line",
				Kind:  chart.KindLine,
				X:     "Start Time",
				Y:     "Temp Avg (°C)",
				Color: "Line",
			},
			{
				Title: "Temperature Over Time",
				Kind:  chart.KindLine,
				X:     "Timestamp",
				Y:     "Temp Avg (°C)",
				When:  `!("Line" in columns)`,
			},
			{
				Title: "Alert Types",
				Kind:  chart.KindBar,
				X:     "Alerts",
			},
		},
		Graph: graph.Columns{
			Parent:   "Parent",
			Child:    "Child",
			Quantity: "Quantity",
		},
		Filter: Filter{
			Columns: []string{"Batch ID", "Order ID", "Product ID"},
		},
		PreviewRows: DefaultPreviewRows,
	}
}

// LoadFile loads and validates a dashboard definition from a YAML file
func LoadFile(path string) (*Definition, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read dashboard file: %w", err)
	}

	def, err := Parse(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("dashboard file %s: %w", path, err)
	}

	return def, nil
}

// Parse decodes and validates a YAML dashboard definition.
// Omitted preview_rows falls back to DefaultPreviewRows.
func Parse(r io.Reader) (*Definition, error) {
	def := &Definition{PreviewRows: DefaultPreviewRows}

	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(def); err != nil {
		if errors.Is(err, io.EOF) {
			return nil, fmt.Errorf("empty dashboard definition")
		}
		return nil, fmt.Errorf("failed to decode dashboard: %w", err)
	}

	if err := def.Validate(); err != nil {
		return nil, fmt.Errorf("invalid dashboard: %w", err)
	}

	def.Description = bluemonday.UGCPolicy().Sanitize(def.Description)

	return def, nil
}

var validate = validator.New()

// Validate validates the definition
func (d *Definition) Validate() error {
	if err := validate.Struct(d); err != nil {
		return err
	}

	if _, err := prompt.NewCatalog(d.Templates); err != nil {
		return err
	}

	evaluator := cel.NewEvaluator()
	for i, spec := range d.Charts {
		if err := spec.Validate(); err != nil {
			return fmt.Errorf("chart %d: %w", i, err)
		}
		if spec.When == "" {
			continue
		}
		if err := evaluator.ValidateExpression(spec.When); err != nil {
			return fmt.Errorf("chart %d: invalid when expression: %w", i, err)
		}
	}

	return nil
}
