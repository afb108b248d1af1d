package chart

import (
	"io"
	"math"
	"sort"

	"github.com/aescanero/dago-prompt-dashboard/internal/table"
	gochart "github.com/wcharczuk/go-chart/v2"
)

// Summary is the five-number summary drawn by a box chart
type Summary struct {
	Min, Q1, Median, Q3, Max float64
}

// Summarize computes the five-number summary of values using linear
// interpolation between closest ranks. values must not be empty.
func Summarize(values []float64) Summary {
	sorted := make([]float64, len(values))
	copy(sorted, values)
	sort.Float64s(sorted)

	return Summary{
		Min:    sorted[0],
		Q1:     quantile(sorted, 0.25),
		Median: quantile(sorted, 0.5),
		Q3:     quantile(sorted, 0.75),
		Max:    sorted[len(sorted)-1],
	}
}

func quantile(sorted []float64, q float64) float64 {
	pos := q * float64(len(sorted)-1)
	lo := int(math.Floor(pos))
	hi := int(math.Ceil(pos))
	if lo == hi {
		return sorted[lo]
	}
	frac := pos - float64(lo)
	return sorted[lo] + (sorted[hi]-sorted[lo])*frac
}

// renderBox draws one whisker, box and median mark per X group
func (r *Renderer) renderBox(w io.Writer, spec Spec, t *table.Table) error {
	yi := t.ColumnIndex(spec.Y)
	xi := -1
	if spec.X != "" {
		xi = t.ColumnIndex(spec.X)
	}

	groups := newCategories()
	var values [][]float64
	for _, row := range t.Rows {
		y, ok := parseNumber(row[yi])
		if !ok {
			continue
		}
		group := spec.Y
		if xi >= 0 {
			group = row[xi]
		}
		g := groups.add(group)
		if g == len(values) {
			values = append(values, nil)
		}
		values[g] = append(values[g], y)
	}

	if len(values) == 0 {
		return ErrNoData
	}

	boxWidth := float64(r.Width) / float64(len(values)*3)
	if boxWidth > 40 {
		boxWidth = 40
	}

	min, max := math.Inf(1), math.Inf(-1)
	series := make([]gochart.Series, 0, len(values)*3)
	for g, vals := range values {
		s := Summarize(vals)
		x := float64(g)
		color := gochart.GetDefaultColor(g)
		min = math.Min(min, s.Min)
		max = math.Max(max, s.Max)

		series = append(series,
			gochart.ContinuousSeries{
				XValues: []float64{x, x},
				YValues: []float64{s.Min, s.Max},
				Style:   gochart.Style{StrokeWidth: 1, StrokeColor: color},
			},
			gochart.ContinuousSeries{
				XValues: []float64{x, x},
				YValues: []float64{s.Q1, s.Q3},
				Style:   gochart.Style{StrokeWidth: boxWidth, StrokeColor: color.WithAlpha(160)},
			},
			gochart.ContinuousSeries{
				XValues: []float64{x},
				YValues: []float64{s.Median},
				Style:   gochart.Style{StrokeWidth: 0, DotWidth: 4, DotColor: gochart.ColorBlack},
			},
		)
	}

	name := ""
	if xi >= 0 {
		name = spec.X
	}

	ch := gochart.Chart{
		Title:  spec.Title,
		Width:  r.Width,
		Height: r.Height,
		Background: gochart.Style{
			Padding: gochart.Box{Top: 40, Left: 16, Right: 16, Bottom: 16},
		},
		XAxis: gochart.XAxis{
			Name:  name,
			Range: groups.xRange(),
			Ticks: groups.ticks(),
		},
		YAxis: gochart.YAxis{
			Name:  spec.Y,
			Range: valueRange(min, max),
		},
		Series: series,
	}

	return ch.Render(gochart.PNG, w)
}
