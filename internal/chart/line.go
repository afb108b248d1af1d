package chart

import (
	"io"
	"math"
	"sort"

	"github.com/aescanero/dago-prompt-dashboard/internal/table"
	gochart "github.com/wcharczuk/go-chart/v2"
)

type point struct {
	x, y float64
}

// renderLine plots Y over categorical X with one series per Color value
func (r *Renderer) renderLine(w io.Writer, spec Spec, t *table.Table) error {
	xi := t.ColumnIndex(spec.X)
	yi := t.ColumnIndex(spec.Y)
	ci := -1
	if spec.Color != "" {
		ci = t.ColumnIndex(spec.Color)
	}

	xs := newCategories()
	groups := newCategories()
	points := make(map[int][]point)
	min, max := math.Inf(1), math.Inf(-1)

	for _, row := range t.Rows {
		y, ok := parseNumber(row[yi])
		if !ok {
			continue
		}
		group := spec.Y
		if ci >= 0 {
			group = row[ci]
		}
		g := groups.add(group)
		points[g] = append(points[g], point{x: float64(xs.add(row[xi])), y: y})
		min = math.Min(min, y)
		max = math.Max(max, y)
	}

	if len(xs.labels) == 0 {
		return ErrNoData
	}

	series := make([]gochart.Series, 0, len(groups.labels))
	for g, name := range groups.labels {
		pts := points[g]
		sort.SliceStable(pts, func(i, j int) bool { return pts[i].x < pts[j].x })

		s := gochart.ContinuousSeries{
			Name:    name,
			XValues: make([]float64, len(pts)),
			YValues: make([]float64, len(pts)),
			Style: gochart.Style{
				StrokeWidth: 2,
				StrokeColor: gochart.GetDefaultColor(g),
				DotWidth:    3,
				DotColor:    gochart.GetDefaultColor(g),
			},
		}
		for i, p := range pts {
			s.XValues[i] = p.x
			s.YValues[i] = p.y
		}
		series = append(series, s)
	}

	ch := gochart.Chart{
		Title:  spec.Title,
		Width:  r.Width,
		Height: r.Height,
		Background: gochart.Style{
			Padding: gochart.Box{Top: 40, Left: 16, Right: 16, Bottom: 16},
		},
		XAxis: gochart.XAxis{
			Name:  spec.X,
			Range: xs.xRange(),
			Ticks: xs.ticks(),
		},
		YAxis: gochart.YAxis{
			Name:  spec.Y,
			Range: valueRange(min, max),
		},
		Series: series,
	}
	if spec.Color != "" {
		ch.Elements = []gochart.Renderable{gochart.Legend(&ch)}
	}

	return ch.Render(gochart.PNG, w)
}
