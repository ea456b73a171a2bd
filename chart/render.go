// Copyright 2025 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package chart

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"time"

	"github.com/healthinprogress/benchcharts/catalog"
	"github.com/healthinprogress/benchcharts/frontier"
	"github.com/healthinprogress/benchcharts/storage/fs"
)

// A Renderer writes the chart artifacts of a run to an FS.
type Renderer struct {
	Catalog *catalog.Catalog
	FS      fs.FS

	// Logf, if non-nil, is called for each artifact written.
	Logf func(format string, args ...interface{})

	// Now returns the time shown as "last updated". It defaults to
	// time.Now.
	Now func() time.Time
}

func (r *Renderer) logf(format string, args ...interface{}) {
	if r.Logf != nil {
		r.Logf(format, args...)
	}
}

const (
	pngType  = "image/png"
	htmlType = "text/html; charset=utf-8"
	csvType  = "text/csv; charset=utf-8"
)

// Render writes every artifact for bs and returns their names in the
// order written. Benchmarks without plottable records get no chart of
// their own. The frontier chart is skipped if no benchmark has a
// frontier.
func (r *Renderer) Render(ctx context.Context, bs []*Benchmark) ([]string, error) {
	now := time.Now
	if r.Now != nil {
		now = r.Now
	}
	updated := now().Format("January 2006")
	out := r.Catalog.Outputs

	var charted, withFrontier []*Benchmark
	var points []frontier.Point
	for _, b := range bs {
		if len(b.byProvider()) > 0 {
			charted = append(charted, b)
		}
		if len(b.Frontier) > 0 {
			withFrontier = append(withFrontier, b)
			points = append(points, b.Frontier...)
		}
	}

	var written []string
	write := func(name, contentType string, render func(w io.Writer) error) error {
		var buf bytes.Buffer
		if err := render(&buf); err != nil {
			return fmt.Errorf("rendering %s: %w", name, err)
		}
		if err := fs.WriteFile(ctx, r.FS, name, map[string]string{fs.ContentType: contentType}, buf.Bytes()); err != nil {
			return fmt.Errorf("writing %s: %w", name, err)
		}
		r.logf("wrote %s", name)
		written = append(written, name)
		return nil
	}

	for _, th := range r.Catalog.Themes {
		var tabs []Tab
		for _, b := range charted {
			fig := BenchmarkFigure(b, r.Catalog, th)
			tabs = append(tabs, Tab{b.Benchmark, fig})
			base := out.Name(out.BenchmarkChart, b.ID, th.Name)
			if err := write(base+".png", pngType, func(w io.Writer) error {
				return BenchmarkPNG(w, b, r.Catalog, th)
			}); err != nil {
				return written, err
			}
			if err := write(base+".html", htmlType, func(w io.Writer) error {
				return WriteFigurePage(w, b.Title, fig, th)
			}); err != nil {
				return written, err
			}
		}

		if len(withFrontier) > 0 {
			base := out.Name(out.FrontierChart, "", th.Name)
			if err := write(base+".png", pngType, func(w io.Writer) error {
				return FrontierPNG(w, withFrontier, r.Catalog, th)
			}); err != nil {
				return written, err
			}
			if err := write(base+".html", htmlType, func(w io.Writer) error {
				return WriteFigurePage(w, r.Catalog.Chart.FrontierTitle, FrontierFigure(withFrontier, r.Catalog, th), th)
			}); err != nil {
				return written, err
			}
		}

		if len(tabs) > 0 {
			name := out.Name(out.TabbedPage, "", th.Name) + ".html"
			if err := write(name, htmlType, func(w io.Writer) error {
				return WriteTabbedPage(w, tabs, r.Catalog.Site, updated, th)
			}); err != nil {
				return written, err
			}
		}
	}

	if err := write(out.FrontierCSV, csvType, func(w io.Writer) error {
		return frontier.WriteCSV(w, points)
	}); err != nil {
		return written, err
	}
	return written, nil
}
