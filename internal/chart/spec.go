package chart

import (
	"errors"
	"fmt"
)

// Kind is the type of chart to draw
type Kind string

const (
	KindLine Kind = "line"
	KindBar  Kind = "bar"
	KindBox  Kind = "box"
)

// ErrNoData is returned when a chart has nothing to plot
var ErrNoData = errors.New("no plottable data")

// Spec declares one chart of a dashboard
type Spec struct {
	Title string `yaml:"title" json:"title" validate:"required"`
	Kind  Kind   `yaml:"kind" json:"kind" validate:"required,oneof=line bar box"`
	X     string `yaml:"x" json:"x,omitempty" validate:"required_unless=Kind box"`
	Y     string `yaml:"y" json:"y,omitempty" validate:"required_unless=Kind bar"`
	Color string `yaml:"color" json:"color,omitempty"`

	// When is an optional CEL gate evaluated against the table's columns
	When string `yaml:"when" json:"when,omitempty"`
}

// Columns returns the column names the chart reads
func (s Spec) Columns() []string {
	var cols []string
	for _, c := range []string{s.X, s.Y, s.Color} {
		if c != "" {
			cols = append(cols, c)
		}
	}
	return cols
}

// Validate checks the column requirements of the chart kind
func (s Spec) Validate() error {
	switch s.Kind {
	case KindLine:
		if s.X == "" || s.Y == "" {
			return fmt.Errorf("chart %q: line requires x and y", s.Title)
		}
	case KindBar:
		if s.X == "" {
			return fmt.Errorf("chart %q: bar requires x", s.Title)
		}
	case KindBox:
		if s.Y == "" {
			return fmt.Errorf("chart %q: box requires y", s.Title)
		}
	default:
		return fmt.Errorf("chart %q: unknown kind %q", s.Title, s.Kind)
	}
	return nil
}
