// Copyright 2025 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package chart

import (
	"fmt"
	"io"
	"math"
	"time"

	"github.com/aclements/go-moremath/stats"
	"github.com/healthinprogress/benchcharts/catalog"
	"github.com/healthinprogress/benchcharts/scorefmt"
	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"
	"gonum.org/v1/plot/vg/vgimg"
)

// cssPixel is the size of one layout unit of ChartConfig.Width and
// Height.
const cssPixel = vg.Inch / 96

func unixX(t time.Time) float64 {
	return float64(t.Unix())
}

// newPlot returns a plot with the axes, grid, and legend styled for
// theme th.
func newPlot(title, xTitle, yTitle string, th *catalog.Theme) *plot.Plot {
	pl := plot.New()
	pl.BackgroundColor = hexColor(th.BgPrimary)

	pl.Title.Text = title
	pl.Title.TextStyle.Color = hexColor(th.TextPrimary)
	pl.Title.TextStyle.Font.Size = vg.Points(18)
	pl.Title.Padding = vg.Points(12)

	for _, ax := range []*plot.Axis{&pl.X, &pl.Y} {
		ax.LineStyle.Color = hexColor(th.Grid)
		ax.Label.TextStyle.Color = hexColor(th.TextSecondary)
		ax.Label.TextStyle.Font.Size = vg.Points(12)
		ax.Tick.Label.Color = hexColor(th.TextSecondary)
		ax.Tick.Label.Font.Size = vg.Points(11)
		ax.Tick.LineStyle.Color = hexColor(th.Grid)
	}
	pl.X.Label.Text = xTitle
	pl.Y.Label.Text = yTitle
	pl.X.Tick.Marker = plot.TimeTicks{Format: "Jan 2006"}

	grid := plotter.NewGrid()
	grid.Vertical.Color = hexColor(th.Grid)
	grid.Horizontal.Color = hexColor(th.Grid)
	pl.Add(grid)

	pl.Legend.Top = true
	pl.Legend.TextStyle.Color = hexColor(th.TextPrimary)
	pl.Legend.TextStyle.Font.Size = vg.Points(11)
	return pl
}

// writePNG draws pl at the configured size and writes it to w.
func writePNG(w io.Writer, pl *plot.Plot, cfg *catalog.ChartConfig, th *catalog.Theme) error {
	dpi := int(math.Round(96 * cfg.PixelRatio))
	c := vgimg.PngCanvas{Canvas: vgimg.NewWith(
		vgimg.UseWH(vg.Length(cfg.Width)*cssPixel, vg.Length(cfg.Height)*cssPixel),
		vgimg.UseDPI(dpi),
		vgimg.UseBackgroundColor(hexColor(th.BgPrimary)),
	)}
	pl.Draw(draw.New(c))
	_, err := c.WriteTo(w)
	return err
}

// BenchmarkPNG renders the static chart of one benchmark to w.
func BenchmarkPNG(w io.Writer, b *Benchmark, cat *catalog.Catalog, th *catalog.Theme) error {
	cfg := &cat.Chart
	pl := newPlot(b.Title, cfg.XAxisTitle, b.YAxisTitle, th)
	pl.Y.Tick.Marker = scoreTicks{b.Format()}
	radius := vg.Points(cfg.MarkerSize / 2)

	var ys []float64
	for _, g := range b.byProvider() {
		color := hexColor(cat.ProviderColor(g.name))
		xys := make(plotter.XYs, len(g.records))
		bars := &ciBars{style: draw.LineStyle{Color: color, Width: vg.Points(1.5)}, cap: vg.Points(2)}
		for i, r := range g.records {
			xys[i] = plotter.XY{X: unixX(r.ReleaseDate), Y: r.Score}
			ys = append(ys, r.Score)
			if r.HasCI() {
				bars.add(xys[i].X, r.Score, r.CIWidth)
				ys = append(ys, r.Score-r.CIWidth, r.Score+r.CIWidth)
			}
		}
		if len(bars.xs) > 0 {
			pl.Add(bars)
		}
		sc, err := plotter.NewScatter(xys)
		if err != nil {
			return fmt.Errorf("%s: %w", b.ID, err)
		}
		sc.GlyphStyle.Color = color
		sc.GlyphStyle.Radius = radius
		sc.GlyphStyle.Shape = draw.CircleGlyph{}
		pl.Add(sc)
		pl.Legend.Add(g.name, sc)
	}

	if l, ok := b.trendline(); ok {
		line, err := plotter.NewLine(plotter.XYs{
			{X: unixX(l.Start), Y: l.StartScore},
			{X: unixX(l.End), Y: l.EndScore},
		})
		if err != nil {
			return fmt.Errorf("%s: %w", b.ID, err)
		}
		line.LineStyle.Color = hexColor(th.Accent)
		line.LineStyle.Width = vg.Points(2.5)
		line.LineStyle.Dashes = []vg.Length{vg.Points(6), vg.Points(4)}
		pl.Add(line)
		pl.Legend.Add("Trendline", line)
	}

	if top := b.top(cfg.AnnotateTop); len(top) > 0 {
		ls := plotter.XYLabels{XYs: make(plotter.XYs, len(top)), Labels: make([]string, len(top))}
		for i, r := range top {
			ls.XYs[i] = plotter.XY{X: unixX(r.ReleaseDate), Y: r.Score}
			ls.Labels[i] = topLabel(r, b.Format())
		}
		labels, err := plotter.NewLabels(ls)
		if err != nil {
			return fmt.Errorf("%s: %w", b.ID, err)
		}
		for i := range labels.TextStyle {
			labels.TextStyle[i].Color = hexColor(th.TextPrimary)
			labels.TextStyle[i].Font.Size = vg.Points(cfg.AnnotationFontSize)
		}
		labels.Offset = vg.Point{X: radius, Y: radius}
		pl.Add(labels)
	}

	if len(b.YAxisRange) == 2 {
		// Widen the advisory range to keep every point visible.
		lo, hi := b.YAxisRange[0], b.YAxisRange[1]
		if len(ys) > 0 {
			dlo, dhi := stats.Sample{Xs: ys}.Bounds()
			lo, hi = math.Min(lo, dlo), math.Max(hi, dhi)
		}
		pl.Y.Min, pl.Y.Max = lo, hi
	}
	return writePNG(w, pl, cfg, th)
}

// FrontierPNG renders the combined frontier chart of bs to w.
func FrontierPNG(w io.Writer, bs []*Benchmark, cat *catalog.Catalog, th *catalog.Theme) error {
	cfg := &cat.Chart
	pl := newPlot(cfg.FrontierTitle, cfg.XAxisTitle, cfg.FrontierYAxisTitle, th)
	pl.Y.Tick.Marker = percentTicks{}

	for _, b := range bs {
		if len(b.Frontier) == 0 {
			continue
		}
		color := hexColor(b.Color)
		xys := make(plotter.XYs, len(b.Frontier))
		for i, p := range b.Frontier {
			xys[i] = plotter.XY{X: unixX(p.ReleaseDate), Y: p.ScorePct}
		}
		line, points, err := plotter.NewLinePoints(xys)
		if err != nil {
			return fmt.Errorf("%s frontier: %w", b.ID, err)
		}
		line.StepStyle = plotter.PostStep
		line.LineStyle.Color = color
		line.LineStyle.Width = vg.Points(2.5)
		points.GlyphStyle.Color = color
		points.GlyphStyle.Radius = vg.Points(cfg.MarkerSize / 3)
		points.GlyphStyle.Shape = draw.CircleGlyph{}
		pl.Add(line, points)
		pl.Legend.Add(b.Name, line, points)
	}
	return writePNG(w, pl, cfg, th)
}

// percentTicks are the default ticks labeled with a percent sign.
type percentTicks struct{}

func (percentTicks) Ticks(min, max float64) []plot.Tick {
	ticks := plot.DefaultTicks{}.Ticks(min, max)
	for i := range ticks {
		if ticks[i].Label != "" {
			ticks[i].Label += "%"
		}
	}
	return ticks
}

// scoreTicks are the default ticks labeled in a benchmark's score
// format.
type scoreTicks struct {
	format scorefmt.Format
}

func (t scoreTicks) Ticks(min, max float64) []plot.Tick {
	ticks := plot.DefaultTicks{}.Ticks(min, max)
	for i := range ticks {
		if ticks[i].Label != "" {
			ticks[i].Label = t.format.Format(ticks[i].Value)
		}
	}
	return ticks
}

// topLabel is the callout text of a top-ranked record.
func topLabel(r scorefmt.Record, f scorefmt.Format) string {
	return r.Model + " (" + f.Format(r.Score) + ")"
}

// ciBars draws vertical confidence interval bars with caps.
type ciBars struct {
	xs, ys, ws []float64
	style      draw.LineStyle
	cap        vg.Length
}

func (b *ciBars) add(x, y, w float64) {
	b.xs = append(b.xs, x)
	b.ys = append(b.ys, y)
	b.ws = append(b.ws, w)
}

// Plot implements plot.Plotter.
func (b *ciBars) Plot(c draw.Canvas, plt *plot.Plot) {
	trX, trY := plt.Transforms(&c)
	for i := range b.xs {
		x := trX(b.xs[i])
		if !c.ContainsX(x) {
			continue
		}
		lo := trY(b.ys[i] - b.ws[i])
		hi := trY(b.ys[i] + b.ws[i])
		bars := c.ClipLinesY(
			[]vg.Point{{X: x, Y: lo}, {X: x, Y: hi}},
			[]vg.Point{{X: x - b.cap, Y: lo}, {X: x + b.cap, Y: lo}},
			[]vg.Point{{X: x - b.cap, Y: hi}, {X: x + b.cap, Y: hi}},
		)
		c.StrokeLines(b.style, bars...)
	}
}

// DataRange implements plot.DataRanger.
func (b *ciBars) DataRange() (xmin, xmax, ymin, ymax float64) {
	xmin, ymin = math.Inf(1), math.Inf(1)
	xmax, ymax = math.Inf(-1), math.Inf(-1)
	for i := range b.xs {
		xmin, xmax = math.Min(xmin, b.xs[i]), math.Max(xmax, b.xs[i])
		ymin, ymax = math.Min(ymin, b.ys[i]-b.ws[i]), math.Max(ymax, b.ys[i]+b.ws[i])
	}
	return
}
