// Copyright 2025 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package chart

import (
	"math"
	"time"

	"github.com/healthinprogress/benchcharts/catalog"
)

// The types below are the subset of the Plotly figure schema the
// pages use. They are marshaled to JSON and passed to Plotly.newPlot.

// A Figure is a Plotly figure.
type Figure struct {
	Data   []Trace `json:"data"`
	Layout Layout  `json:"layout"`
}

// A Trace is a Plotly scatter trace.
type Trace struct {
	Type          string     `json:"type"`
	Mode          string     `json:"mode"`
	Name          string     `json:"name,omitempty"`
	X             []string   `json:"x"`
	Y             []float64  `json:"y"`
	Text          []string   `json:"text,omitempty"`
	Marker        *Marker    `json:"marker,omitempty"`
	Line          *Line      `json:"line,omitempty"`
	ErrorY        *ErrorBars `json:"error_y,omitempty"`
	HoverTemplate string     `json:"hovertemplate,omitempty"`
}

type Marker struct {
	Size  float64 `json:"size"`
	Color string  `json:"color"`
	Line  *Line   `json:"line,omitempty"`
}

type Line struct {
	Color string  `json:"color"`
	Width float64 `json:"width"`
	Dash  string  `json:"dash,omitempty"`
	Shape string  `json:"shape,omitempty"`
}

type ErrorBars struct {
	Type      string    `json:"type"`
	Array     []float64 `json:"array"`
	Color     string    `json:"color"`
	Thickness float64   `json:"thickness"`
	Width     float64   `json:"width"`
	Visible   bool      `json:"visible"`
}

type Font struct {
	Family string  `json:"family,omitempty"`
	Size   float64 `json:"size,omitempty"`
	Color  string  `json:"color,omitempty"`
}

type Title struct {
	Text    string  `json:"text"`
	Font    *Font   `json:"font,omitempty"`
	X       float64 `json:"x,omitempty"`
	XAnchor string  `json:"xanchor,omitempty"`
}

type Axis struct {
	Title      Title     `json:"title"`
	ShowGrid   bool      `json:"showgrid"`
	GridColor  string    `json:"gridcolor"`
	LineColor  string    `json:"linecolor"`
	TickFont   Font      `json:"tickfont"`
	TickFormat string    `json:"tickformat,omitempty"`
	TickSuffix string    `json:"ticksuffix,omitempty"`
	DTick      string    `json:"dtick,omitempty"`
	Range      []float64 `json:"range,omitempty"`
	Type       string    `json:"type,omitempty"`
}

type Legend struct {
	Orientation     string  `json:"orientation"`
	X               float64 `json:"x"`
	Y               float64 `json:"y"`
	XAnchor         string  `json:"xanchor"`
	YAnchor         string  `json:"yanchor"`
	BgColor         string  `json:"bgcolor"`
	BorderColor     string  `json:"bordercolor"`
	BorderWidth     float64 `json:"borderwidth"`
	Font            Font    `json:"font"`
	ItemClick       string  `json:"itemclick,omitempty"`
	ItemDoubleClick string  `json:"itemdoubleclick,omitempty"`
}

type Margin struct {
	L int `json:"l"`
	R int `json:"r"`
	T int `json:"t"`
	B int `json:"b"`
}

type HoverLabel struct {
	BgColor     string `json:"bgcolor"`
	BorderColor string `json:"bordercolor"`
	Font        Font   `json:"font"`
}

type Annotation struct {
	X           string  `json:"x"`
	Y           float64 `json:"y"`
	Text        string  `json:"text"`
	ShowArrow   bool    `json:"showarrow"`
	ArrowHead   int     `json:"arrowhead"`
	ArrowColor  string  `json:"arrowcolor"`
	AX          float64 `json:"ax"`
	AY          float64 `json:"ay"`
	Font        Font    `json:"font"`
	BgColor     string  `json:"bgcolor"`
	BorderColor string  `json:"bordercolor"`
	BorderPad   float64 `json:"borderpad"`
	BorderWidth float64 `json:"borderwidth"`
}

type Layout struct {
	Title        Title        `json:"title"`
	PaperBgColor string       `json:"paper_bgcolor"`
	PlotBgColor  string       `json:"plot_bgcolor"`
	Font         Font         `json:"font"`
	XAxis        Axis         `json:"xaxis"`
	YAxis        Axis         `json:"yaxis"`
	Legend       Legend       `json:"legend"`
	Margin       Margin       `json:"margin"`
	HoverLabel   HoverLabel   `json:"hoverlabel"`
	Annotations  []Annotation `json:"annotations,omitempty"`
}

const fontFamily = `-apple-system, BlinkMacSystemFont, "Segoe UI", Roboto, sans-serif`

const dateLayout = "2006-01-02"

func plotlyDate(t time.Time) string {
	return t.Format(dateLayout)
}

// baseLayout returns the themed layout shared by every figure.
func baseLayout(title, xTitle, yTitle string, th *catalog.Theme) Layout {
	axis := func(text string) Axis {
		return Axis{
			Title:     Title{Text: text, Font: &Font{Color: th.TextSecondary}},
			ShowGrid:  true,
			GridColor: th.Grid,
			LineColor: th.Grid,
			TickFont:  Font{Color: th.TextSecondary},
		}
	}
	return Layout{
		Title: Title{
			Text:    title,
			Font:    &Font{Size: 18, Color: th.TextPrimary},
			X:       0.5,
			XAnchor: "center",
		},
		PaperBgColor: th.BgPrimary,
		PlotBgColor:  th.BgPrimary,
		Font:         Font{Family: fontFamily, Size: 12, Color: th.TextPrimary},
		XAxis:        axis(xTitle),
		YAxis:        axis(yTitle),
		Legend: Legend{
			Orientation: "h",
			X:           0.5,
			Y:           1.02,
			XAnchor:     "center",
			YAnchor:     "bottom",
			BgColor:     th.BgSecondary,
			BorderColor: th.Grid,
			BorderWidth: 1,
			Font:        Font{Color: th.TextPrimary, Size: 11},
		},
		Margin: Margin{L: 60, R: 40, T: 100, B: 60},
		HoverLabel: HoverLabel{
			BgColor:     th.BgSecondary,
			BorderColor: th.Accent,
			Font:        Font{Family: fontFamily, Size: 12, Color: th.TextPrimary},
		},
	}
}

// BenchmarkFigure builds the interactive scatter chart of one
// benchmark: one trace per provider with CI error bars when
// available, a dashed trendline, and callouts on the top models.
func BenchmarkFigure(b *Benchmark, cat *catalog.Catalog, th *catalog.Theme) *Figure {
	cfg := &cat.Chart
	// Score formats are valid d3-format specs.
	format := b.ScoreFormat
	fig := &Figure{Data: []Trace{}}
	withCI := b.hasCI()

	for _, g := range b.byProvider() {
		color := cat.ProviderColor(g.name)
		tr := Trace{
			Type: "scatter",
			Mode: "markers",
			Name: g.name,
			Marker: &Marker{
				Size:  cfg.MarkerSize,
				Color: color,
				Line:  &Line{Color: th.BgPrimary, Width: cfg.MarkerLineWidth},
			},
			HoverTemplate: "<b>%{text}</b><br>Score: %{y:" + format + "}<br>Released: %{x|%B %d, %Y}<extra>" + g.name + "</extra>",
		}
		var ci []float64
		for _, r := range g.records {
			tr.X = append(tr.X, plotlyDate(r.ReleaseDate))
			tr.Y = append(tr.Y, r.Score)
			tr.Text = append(tr.Text, r.Model)
			w := r.CIWidth
			if math.IsNaN(w) {
				w = 0
			}
			ci = append(ci, w)
		}
		if withCI {
			tr.ErrorY = &ErrorBars{Type: "data", Array: ci, Color: color, Thickness: 1.5, Width: 4, Visible: true}
		}
		fig.Data = append(fig.Data, tr)
	}

	if l, ok := b.trendline(); ok {
		fig.Data = append(fig.Data, Trace{
			Type:          "scatter",
			Mode:          "lines",
			Name:          "Trendline",
			X:             []string{plotlyDate(l.Start), plotlyDate(l.End)},
			Y:             []float64{l.StartScore, l.EndScore},
			Line:          &Line{Color: th.Accent, Width: 2.5, Dash: "dash"},
			HoverTemplate: "Trend: %{y:" + format + "}<extra></extra>",
		})
	}

	fig.Layout = baseLayout(b.Title, cfg.XAxisTitle, b.YAxisTitle, th)
	fig.Layout.XAxis.TickFormat = "%b %Y"
	fig.Layout.XAxis.DTick = "M2"
	fig.Layout.YAxis.TickFormat = format
	if len(b.YAxisRange) == 2 {
		fig.Layout.YAxis.Range = b.YAxisRange
	}
	for _, r := range b.top(cfg.AnnotateTop) {
		fig.Layout.Annotations = append(fig.Layout.Annotations, Annotation{
			X:           plotlyDate(r.ReleaseDate),
			Y:           r.Score,
			Text:        r.Model,
			ShowArrow:   true,
			ArrowColor:  th.TextSecondary,
			AY:          -35,
			Font:        Font{Size: cfg.AnnotationFontSize, Color: th.TextPrimary},
			BgColor:     th.BgSecondary,
			BorderColor: th.Grid,
			BorderPad:   3,
			BorderWidth: 1,
		})
	}
	return fig
}

// FrontierFigure builds the combined frontier chart: one step line per
// benchmark, in percentage points. Clicking a legend entry toggles its
// benchmark.
func FrontierFigure(bs []*Benchmark, cat *catalog.Catalog, th *catalog.Theme) *Figure {
	cfg := &cat.Chart
	fig := &Figure{Data: []Trace{}}
	for _, b := range bs {
		if len(b.Frontier) == 0 {
			continue
		}
		tr := Trace{
			Type:          "scatter",
			Mode:          "lines+markers",
			Name:          b.Name,
			Marker:        &Marker{Size: cfg.MarkerSize * 0.7, Color: b.Color, Line: &Line{Color: th.BgPrimary, Width: cfg.MarkerLineWidth}},
			Line:          &Line{Color: b.Color, Width: 2.5, Shape: "hv"},
			HoverTemplate: "<b>%{text}</b><br>" + b.Name + ": %{y:.1f}%<br>%{x|%B %Y}<extra></extra>",
		}
		for _, p := range b.Frontier {
			tr.X = append(tr.X, plotlyDate(p.ReleaseDate))
			tr.Y = append(tr.Y, p.ScorePct)
			tr.Text = append(tr.Text, p.Model)
		}
		fig.Data = append(fig.Data, tr)
	}
	fig.Layout = baseLayout(cfg.FrontierTitle, cfg.XAxisTitle, cfg.FrontierYAxisTitle, th)
	fig.Layout.XAxis.TickFormat = "%b %Y"
	fig.Layout.YAxis.TickSuffix = "%"
	fig.Layout.Legend.ItemClick = "toggle"
	fig.Layout.Legend.ItemDoubleClick = "toggleothers"
	return fig
}
