package chart

import (
	"bytes"
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/aescanero/dago-prompt-dashboard/internal/table"
	gochart "github.com/wcharczuk/go-chart/v2"
)

const maxTickLabels = 12

// Renderer draws chart specs to PNG images
type Renderer struct {
	Width  int
	Height int
}

// NewRenderer creates a renderer producing images of the given size
func NewRenderer(width, height int) *Renderer {
	return &Renderer{Width: width, Height: height}
}

// Render draws the chart described by spec from the table's rows
func (r *Renderer) Render(spec Spec, t *table.Table) ([]byte, error) {
	if err := spec.Validate(); err != nil {
		return nil, err
	}
	for _, col := range spec.Columns() {
		if !t.HasColumn(col) {
			return nil, fmt.Errorf("chart %q: missing column %q", spec.Title, col)
		}
	}

	var (
		buf bytes.Buffer
		err error
	)
	switch spec.Kind {
	case KindLine:
		err = r.renderLine(&buf, spec, t)
	case KindBar:
		err = r.renderBar(&buf, spec, t)
	case KindBox:
		err = r.renderBox(&buf, spec, t)
	}
	if err != nil {
		return nil, fmt.Errorf("chart %q: %w", spec.Title, err)
	}

	return buf.Bytes(), nil
}

// categories assigns each distinct value an index in first-appearance order
type categories struct {
	labels []string
	index  map[string]int
}

func newCategories() *categories {
	return &categories{index: make(map[string]int)}
}

func (c *categories) add(label string) int {
	if i, ok := c.index[label]; ok {
		return i
	}
	c.index[label] = len(c.labels)
	c.labels = append(c.labels, label)
	return len(c.labels) - 1
}

// ticks labels category positions, thinning labels on crowded axes.
// go-chart takes the axis span from the ticks, so the unlabelled outer
// ticks hold it at half a slot beyond the first and last category.
func (c *categories) ticks() []gochart.Tick {
	step := 1
	if len(c.labels) > maxTickLabels {
		step = int(math.Ceil(float64(len(c.labels)) / maxTickLabels))
	}
	lo, hi := c.bounds()
	ticks := make([]gochart.Tick, 0, len(c.labels)/step+3)
	ticks = append(ticks, gochart.Tick{Value: lo})
	for i := 0; i < len(c.labels); i += step {
		ticks = append(ticks, gochart.Tick{Value: float64(i), Label: c.labels[i]})
	}
	return append(ticks, gochart.Tick{Value: hi})
}

func (c *categories) bounds() (float64, float64) {
	return -0.5, float64(len(c.labels)) - 0.5
}

func (c *categories) xRange() *gochart.ContinuousRange {
	lo, hi := c.bounds()
	return &gochart.ContinuousRange{Min: lo, Max: hi}
}

// parseNumber parses a numeric cell, reporting false for blanks and text
func parseNumber(cell string) (float64, bool) {
	v, err := strconv.ParseFloat(strings.TrimSpace(cell), 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, false
	}
	return v, true
}

// valueRange pads a range so flat data still has a drawable axis
func valueRange(min, max float64) *gochart.ContinuousRange {
	if min == max {
		pad := math.Abs(min) * 0.1
		if pad == 0 {
			pad = 1
		}
		return &gochart.ContinuousRange{Min: min - pad, Max: max + pad}
	}
	pad := (max - min) * 0.05
	return &gochart.ContinuousRange{Min: min - pad, Max: max + pad}
}
