package chart

import (
	"io"

	"github.com/aescanero/dago-prompt-dashboard/internal/table"
	gochart "github.com/wcharczuk/go-chart/v2"
)

// renderBar draws value counts of X, or the sum of Y per X value
func (r *Renderer) renderBar(w io.Writer, spec Spec, t *table.Table) error {
	bars, err := barValues(spec, t)
	if err != nil {
		return err
	}

	max := 0.0
	for i := range bars {
		bars[i].Style = gochart.Style{
			FillColor:   gochart.GetDefaultColor(i),
			StrokeColor: gochart.GetDefaultColor(i),
			StrokeWidth: 1,
		}
		if bars[i].Value > max {
			max = bars[i].Value
		}
	}
	if max <= 0 {
		max = 1
	}

	barWidth := 40
	if n := len(bars); n > 0 && r.Width/(n*2) < barWidth {
		barWidth = r.Width / (n * 2)
		if barWidth < 4 {
			barWidth = 4
		}
	}

	bc := gochart.BarChart{
		Title:  spec.Title,
		Width:  r.Width,
		Height: r.Height,
		Background: gochart.Style{
			Padding: gochart.Box{Top: 40},
		},
		BarWidth: barWidth,
		YAxis: gochart.YAxis{
			Range: &gochart.ContinuousRange{Min: 0, Max: max * 1.1},
		},
		Bars: bars,
	}

	return bc.Render(gochart.PNG, w)
}

// barValues aggregates the bar heights for a spec
func barValues(spec Spec, t *table.Table) ([]gochart.Value, error) {
	if spec.Y == "" {
		counts := t.ValueCounts(spec.X)
		if len(counts) == 0 {
			return nil, ErrNoData
		}
		bars := make([]gochart.Value, len(counts))
		for i, c := range counts {
			bars[i] = gochart.Value{Label: label(c.Value), Value: float64(c.Count)}
		}
		return bars, nil
	}

	xi := t.ColumnIndex(spec.X)
	yi := t.ColumnIndex(spec.Y)
	cats := newCategories()
	var sums []float64
	for _, row := range t.Rows {
		y, ok := parseNumber(row[yi])
		if !ok {
			continue
		}
		i := cats.add(row[xi])
		if i == len(sums) {
			sums = append(sums, 0)
		}
		sums[i] += y
	}
	if len(sums) == 0 {
		return nil, ErrNoData
	}

	bars := make([]gochart.Value, len(sums))
	for i, sum := range sums {
		bars[i] = gochart.Value{Label: label(cats.labels[i]), Value: sum}
	}
	return bars, nil
}

func label(v string) string {
	if v == "" {
		return "(blank)"
	}
	return v
}
