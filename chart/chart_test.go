// Copyright 2025 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package chart

import (
	"bytes"
	"context"
	"encoding/json"
	"math"
	"reflect"
	"strings"
	"testing"
	"time"

	"github.com/healthinprogress/benchcharts/catalog"
	"github.com/healthinprogress/benchcharts/frontier"
	"github.com/healthinprogress/benchcharts/scorefmt"
	"github.com/healthinprogress/benchcharts/storage/fs"
)

func date(s string) time.Time {
	t, err := time.Parse("2006-01-02", s)
	if err != nil {
		panic(err)
	}
	return t
}

func testBenchmark(cat *catalog.Catalog) *Benchmark {
	nan := math.NaN()
	return &Benchmark{
		Benchmark: cat.Benchmark("mast"),
		Records: []scorefmt.Record{
			{Model: "gamma", Provider: "Google", Score: 0.75, ReleaseDate: date("2024-06-01"), CIWidth: 0.125},
			{Model: "beta", Provider: "OpenAI", Score: 0.5, ReleaseDate: date("2024-03-01"), CIWidth: nan},
			{Model: "alpha", Provider: "", Score: 0.25, ReleaseDate: date("2024-01-01"), CIWidth: nan},
			{Model: "delta", Provider: "Google", Score: nan, ReleaseDate: date("2024-02-01"), CIWidth: nan},
		},
		Frontier: []frontier.Point{
			{Benchmark: "MAST", Model: "alpha", ReleaseDate: date("2024-01-01"), Score: 0.25, ScorePct: 25},
			{Benchmark: "MAST", Model: "beta", ReleaseDate: date("2024-03-01"), Score: 0.5, ScorePct: 50},
			{Benchmark: "MAST", Model: "gamma", ReleaseDate: date("2024-06-01"), Score: 0.75, ScorePct: 75},
		},
	}
}

func TestByProvider(t *testing.T) {
	b := testBenchmark(catalog.Default())
	var names []string
	var counts []int
	for _, g := range b.byProvider() {
		names = append(names, g.name)
		counts = append(counts, len(g.records))
	}
	if want := []string{"Google", "OpenAI", catalog.OtherProvider}; !reflect.DeepEqual(names, want) {
		t.Errorf("providers: got %v, want %v", names, want)
	}
	if want := []int{1, 1, 1}; !reflect.DeepEqual(counts, want) {
		t.Errorf("counts: got %v, want %v", counts, want)
	}
	if got := len(b.top(2)); got != 2 {
		t.Errorf("top(2) has %d records", got)
	}
	if got := len(b.top(10)); got != 3 {
		t.Errorf("top(10) has %d records, want 3", got)
	}
}

func TestBenchmarkFigure(t *testing.T) {
	cat := catalog.Default()
	th := cat.Theme("dark")
	fig := BenchmarkFigure(testBenchmark(cat), cat, th)

	var names []string
	for _, tr := range fig.Data {
		names = append(names, tr.Name)
	}
	if want := []string{"Google", "OpenAI", catalog.OtherProvider, "Trendline"}; !reflect.DeepEqual(names, want) {
		t.Fatalf("traces: got %v, want %v", names, want)
	}
	if eb := fig.Data[0].ErrorY; eb == nil || !reflect.DeepEqual(eb.Array, []float64{0.125}) {
		t.Errorf("Google error bars: got %+v", eb)
	}
	if eb := fig.Data[1].ErrorY; eb == nil || !reflect.DeepEqual(eb.Array, []float64{0}) {
		t.Errorf("OpenAI error bars: got %+v", eb)
	}
	if got, want := fig.Data[0].Marker.Color, cat.ProviderColor("Google"); got != want {
		t.Errorf("Google color: got %s, want %s", got, want)
	}
	if got := fig.Data[3].Line.Dash; got != "dash" {
		t.Errorf("trendline dash: got %q", got)
	}
	if got := len(fig.Layout.Annotations); got != 3 {
		t.Errorf("got %d annotations, want 3", got)
	}
	if fig.Layout.PaperBgColor != th.BgPrimary {
		t.Errorf("background: got %s, want %s", fig.Layout.PaperBgColor, th.BgPrimary)
	}
	if _, err := json.Marshal(fig); err != nil {
		t.Errorf("figure does not encode: %v", err)
	}
}

func TestFrontierFigure(t *testing.T) {
	cat := catalog.Default()
	b := testBenchmark(cat)
	empty := &Benchmark{Benchmark: cat.Benchmark("medqa")}
	fig := FrontierFigure([]*Benchmark{b, empty}, cat, cat.Theme("white"))
	if len(fig.Data) != 1 {
		t.Fatalf("got %d traces, want 1", len(fig.Data))
	}
	tr := fig.Data[0]
	if !reflect.DeepEqual(tr.Y, []float64{25, 50, 75}) {
		t.Errorf("y: got %v", tr.Y)
	}
	if !reflect.DeepEqual(tr.X, []string{"2024-01-01", "2024-03-01", "2024-06-01"}) {
		t.Errorf("x: got %v", tr.X)
	}
	if tr.Line.Shape != "hv" || fig.Layout.Legend.ItemClick != "toggle" {
		t.Errorf("got shape %q, itemclick %q", tr.Line.Shape, fig.Layout.Legend.ItemClick)
	}
}

func TestScoreLabels(t *testing.T) {
	cat := catalog.Default()
	b := testBenchmark(cat)
	if got, want := topLabel(b.Records[0], b.Format()), "gamma (0.750)"; got != want {
		t.Errorf("top label: got %q, want %q", got, want)
	}

	medqa := cat.Benchmark("medqa")
	majors := 0
	for _, tick := range (scoreTicks{medqa.Format()}).Ticks(0.8, 1) {
		if tick.Label == "" {
			continue
		}
		majors++
		if want := medqa.Format().Format(tick.Value); tick.Label != want {
			t.Errorf("tick %v: got label %q, want %q", tick.Value, tick.Label, want)
		}
		if !strings.HasSuffix(tick.Label, "%") {
			t.Errorf("tick %v: label %q is not a percentage", tick.Value, tick.Label)
		}
	}
	if majors == 0 {
		t.Error("no labeled ticks")
	}
}

var pngMagic = []byte("\x89PNG\r\n\x1a\n")

func TestRender(t *testing.T) {
	cat := catalog.Default()
	mem := fs.NewMemFS()
	r := &Renderer{
		Catalog: cat,
		FS:      mem,
		Now:     func() time.Time { return date("2025-03-15") },
	}
	empty := &Benchmark{Benchmark: cat.Benchmark("medqa")}
	written, err := r.Render(context.Background(), []*Benchmark{testBenchmark(cat), empty})
	if err != nil {
		t.Fatal(err)
	}
	var want []string
	for _, th := range []string{"white", "dark"} {
		want = append(want,
			"mast_benchmark_chart_"+th+".png",
			"mast_benchmark_chart_"+th+".html",
			"healthcare_benchmark_frontier_"+th+".png",
			"healthcare_benchmark_frontier_"+th+".html",
			"healthcare_ai_benchmarks_"+th+".html",
		)
	}
	want = append(want, "frontier.csv")
	if !reflect.DeepEqual(written, want) {
		t.Fatalf("written:\n got %v\nwant %v", written, want)
	}
	if got := len(mem.Files()); got != len(want) {
		t.Errorf("FS holds %d files, want %d", got, len(want))
	}

	for _, name := range written {
		data, meta, err := mem.ReadFile(name)
		if err != nil {
			t.Fatal(err)
		}
		ct := meta[fs.ContentType]
		switch {
		case strings.HasSuffix(name, ".png"):
			if ct != "image/png" || !bytes.HasPrefix(data, pngMagic) {
				t.Errorf("%s: content type %q, not a PNG", name, ct)
			}
		case strings.HasSuffix(name, ".html"):
			if !strings.HasPrefix(ct, "text/html") {
				t.Errorf("%s: content type %q", name, ct)
			}
			for _, s := range []string{"<!DOCTYPE html>", "plotly-2.27.0.min.js", "gamma"} {
				if !bytes.Contains(data, []byte(s)) {
					t.Errorf("%s does not contain %q", name, s)
				}
			}
		}
	}

	page, _, _ := mem.ReadFile("healthcare_ai_benchmarks_white.html")
	for _, s := range []string{"Last updated: March 2025", cat.Site.URL, "MAST"} {
		if !bytes.Contains(page, []byte(s)) {
			t.Errorf("tabbed page does not contain %q", s)
		}
	}

	csv, _, _ := mem.ReadFile("frontier.csv")
	wantCSV := "benchmark,model,release_date,score,score_pct\n" +
		"MAST,alpha,2024-01-01,0.25,25\n" +
		"MAST,beta,2024-03-01,0.5,50\n" +
		"MAST,gamma,2024-06-01,0.75,75\n"
	if string(csv) != wantCSV {
		t.Errorf("frontier.csv:\n got %q\nwant %q", csv, wantCSV)
	}
}

func TestRenderNoData(t *testing.T) {
	cat := catalog.Default()
	mem := fs.NewMemFS()
	r := &Renderer{Catalog: cat, FS: mem}
	written, err := r.Render(context.Background(), []*Benchmark{{Benchmark: cat.Benchmark("medqa")}})
	if err != nil {
		t.Fatal(err)
	}
	if want := []string{"frontier.csv"}; !reflect.DeepEqual(written, want) {
		t.Errorf("written: got %v, want %v", written, want)
	}
}
