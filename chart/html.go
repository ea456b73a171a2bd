// Copyright 2025 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package chart

import (
	"bytes"
	"io"
	"text/template"

	"github.com/google/safehtml"
	safetemplate "github.com/google/safehtml/template"
	"github.com/google/safehtml/uncheckedconversions"
	"github.com/healthinprogress/benchcharts/catalog"
)

// cssTmpl is the page stylesheet. It is evaluated with a
// *catalog.Theme, whose colors are validated "#rrggbb" strings.
var cssTmpl = template.Must(template.New("css").Parse(`
* { margin: 0; padding: 0; box-sizing: border-box; }
html, body {
	width: 100%;
	height: 100%;
	background: {{.BgPrimary}};
	font-family: -apple-system, BlinkMacSystemFont, "Segoe UI", Roboto, sans-serif;
	color: {{.TextPrimary}};
}
.container {
	display: flex;
	flex-direction: column;
	height: 100%;
	max-width: 1400px;
	margin: 0 auto;
	padding: 0 20px;
}
#chart { flex: 1; min-height: 0; }
.tabs {
	display: flex;
	gap: 8px;
	padding: 16px 0;
	flex-wrap: wrap;
	justify-content: center;
}
.tab {
	padding: 10px 20px;
	background: {{.BgSecondary}};
	border: 1px solid {{.Grid}};
	border-radius: 6px;
	cursor: pointer;
	color: {{.TextSecondary}};
	font-size: 14px;
	font-weight: 500;
	transition: all 0.2s ease;
}
.tab:hover { background: {{.Grid}}; color: {{.TextPrimary}}; }
.tab.active { background: {{.Accent}}; border-color: {{.Accent}}; color: {{.BgPrimary}}; }
.attributions {
	padding: 12px 0;
	text-align: center;
	font-size: 12px;
	color: {{.TextSecondary}};
	border-top: 1px solid {{.Grid}};
}
.attribution { display: none; }
.attribution.active { display: block; }
.attribution a, .footer a { color: {{.Accent}}; text-decoration: none; }
.attribution a:hover { text-decoration: underline; }
.footer { padding: 12px 0; text-align: center; font-size: 11px; color: {{.TextSecondary}}; }
`))

// styleSheet returns the page stylesheet for th.
func styleSheet(th *catalog.Theme) safehtml.StyleSheet {
	var buf bytes.Buffer
	if err := cssTmpl.Execute(&buf, th); err != nil {
		// Only possible errors here are template not matching data structure.
		panic(err)
	}
	// Theme colors are validated hex colors and the rest of the
	// stylesheet is constant.
	return uncheckedconversions.StyleSheetFromStringKnownToSatisfyTypeContract(buf.String())
}

var figureTmpl = safetemplate.Must(safetemplate.New("figure").Parse(`<!DOCTYPE html>
<html lang="en">
<head>
<meta charset="utf-8">
<meta name="viewport" content="width=device-width, initial-scale=1">
<title>{{.Title}}</title>
<style>{{.Style}}</style>
<script src="https://cdn.plot.ly/plotly-2.27.0.min.js"></script>
</head>
<body>
<div class="container">
<div id="chart"></div>
</div>
<script>{{.Script}}</script>
</body>
</html>
`))

const figureScript = `
Plotly.newPlot('chart', page.figure.data, page.figure.layout, {
	displayModeBar: true,
	displaylogo: false,
	modeBarButtonsToRemove: ['lasso2d', 'select2d'],
	responsive: true
});
`

// WriteFigurePage writes a self-contained page showing fig.
func WriteFigurePage(w io.Writer, title string, fig *Figure, th *catalog.Theme) error {
	script, err := safehtml.ScriptFromDataAndConstant("page", struct {
		Figure *Figure `json:"figure"`
	}{fig}, figureScript)
	if err != nil {
		return err
	}
	return figureTmpl.Execute(w, struct {
		Title  string
		Style  safehtml.StyleSheet
		Script safehtml.Script
	}{title, styleSheet(th), script})
}

var tabbedTmpl = safetemplate.Must(safetemplate.New("tabbed").Parse(`<!DOCTYPE html>
<html lang="en">
<head>
<meta charset="utf-8">
<meta name="viewport" content="width=device-width, initial-scale=1">
<title>{{.Site.Title}}</title>
<style>{{.Style}}</style>
<script src="https://cdn.plot.ly/plotly-2.27.0.min.js"></script>
</head>
<body>
<div class="container">
<div id="chart"></div>
<div class="tabs">
{{- range .Tabs}}
<button class="tab" type="button">{{.Name}}</button>
{{- end}}
</div>
<div class="attributions">
{{- range .Tabs}}
<div class="attribution">
<strong>{{.FullName}}</strong><br>
Source: <a href="{{.SourceURL}}" target="_blank">{{.SourceName}}</a>
{{- if .PaperURL}} · <a href="{{.PaperURL}}" target="_blank">Paper</a>{{end}}
</div>
{{- end}}
</div>
<div class="footer">
Data compiled for <a href="{{.Site.URL}}" target="_blank">{{.Site.Name}}</a> · Last updated: {{.Updated}}
</div>
</div>
<script>{{.Script}}</script>
</body>
</html>
`))

// Tabs, attributions, and page.figures share one order.
const tabbedScript = `
var config = {
	displayModeBar: true,
	displaylogo: false,
	modeBarButtonsToRemove: ['lasso2d', 'select2d'],
	responsive: true
};
var tabs = document.querySelectorAll('.tab');
var attributions = document.querySelectorAll('.attribution');
function show(i, first) {
	tabs.forEach(function(t, j) { t.classList.toggle('active', i === j); });
	attributions.forEach(function(a, j) { a.classList.toggle('active', i === j); });
	var fig = page.figures[i];
	if (first) {
		Plotly.newPlot('chart', fig.data, fig.layout, config);
	} else {
		Plotly.react('chart', fig.data, fig.layout, config);
	}
}
tabs.forEach(function(t, i) {
	t.addEventListener('click', function() { show(i, false); });
});
if (page.figures.length > 0) {
	show(0, true);
}
window.addEventListener('resize', function() { Plotly.Plots.resize('chart'); });
`

// A Tab is one benchmark on the tabbed page.
type Tab struct {
	*catalog.Benchmark
	Figure *Figure
}

// WriteTabbedPage writes a page with one tab per benchmark and the
// benchmark's attribution below the chart. updated is shown in the
// footer.
func WriteTabbedPage(w io.Writer, tabs []Tab, site catalog.Site, updated string, th *catalog.Theme) error {
	figs := make([]*Figure, len(tabs))
	for i, t := range tabs {
		figs[i] = t.Figure
	}
	script, err := safehtml.ScriptFromDataAndConstant("page", struct {
		Figures []*Figure `json:"figures"`
	}{figs}, tabbedScript)
	if err != nil {
		return err
	}
	return tabbedTmpl.Execute(w, struct {
		Site    catalog.Site
		Tabs    []Tab
		Updated string
		Style   safehtml.StyleSheet
		Script  safehtml.Script
	}{site, tabs, updated, styleSheet(th), script})
}
