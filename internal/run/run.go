// Copyright 2025 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package run loads every benchmark source named by a catalog and
// computes its frontier, isolating failures per source.
package run

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"path/filepath"
	"time"

	"github.com/aclements/go-gg/table"
	"github.com/guptarohit/asciigraph"
	"github.com/healthinprogress/benchcharts/catalog"
	"github.com/healthinprogress/benchcharts/fetch"
	"github.com/healthinprogress/benchcharts/frontier"
	"github.com/healthinprogress/benchcharts/scorefmt"
	"github.com/healthinprogress/benchcharts/scoreproc"
)

// Options configures Load.
type Options struct {
	// DataDir holds the source CSV files and the download cache.
	DataDir string

	// Refresh forces remote sources to be downloaded again.
	Refresh bool

	// Timeout bounds each download. Zero means fetch.DefaultTimeout.
	Timeout time.Duration

	HTTPClient *http.Client

	// Logf, if non-nil, receives progress messages.
	Logf func(format string, args ...interface{})
}

func (o *Options) logf(format string, args ...interface{}) {
	if o.Logf != nil {
		o.Logf(format, args...)
	}
}

// A Dataset is a successfully loaded benchmark.
type Dataset struct {
	Benchmark *catalog.Benchmark

	// Table is the normalized score table, sorted by descending
	// score, with score_lower and score_upper columns if the source
	// has confidence intervals.
	Table *table.Table

	Records  []scorefmt.Record
	Frontier []frontier.Point
}

// ErrNoRows reports a source that loaded but kept no rows after
// filtering and merging.
var ErrNoRows = errors.New("no rows left after filtering")

// A Failure records why a benchmark could not be loaded.
type Failure struct {
	Benchmark *catalog.Benchmark
	Err       error
}

// Kind classifies f.Err as "missing-file", "network", "parse",
// "missing-column", "empty", or "error".
func (f *Failure) Kind() string {
	var (
		mf *scorefmt.MissingFileError
		ne *fetch.NetworkError
		pe *scorefmt.ParseError
		mc *scorefmt.MissingColumnError
	)
	switch {
	case errors.As(f.Err, &mf):
		return "missing-file"
	case errors.As(f.Err, &ne):
		return "network"
	case errors.As(f.Err, &pe):
		return "parse"
	case errors.As(f.Err, &mc):
		return "missing-column"
	case errors.Is(f.Err, ErrNoRows):
		return "empty"
	}
	return "error"
}

func (f *Failure) Error() string {
	return fmt.Sprintf("%s: %s: %v", f.Benchmark.ID, f.Kind(), f.Err)
}

// A Result is the outcome of Load. Datasets are in catalog order.
type Result struct {
	Datasets []*Dataset
	Failures []*Failure
}

// OK reports whether at least one source loaded.
func (r *Result) OK() bool {
	return len(r.Datasets) > 0
}

// Load loads every benchmark of cat. A source that fails is recorded
// in Result.Failures and does not affect the others. Load returns an
// error only if ctx is done.
func Load(ctx context.Context, cat *catalog.Catalog, opts *Options) (*Result, error) {
	l := &loader{cat: cat, opts: opts}
	res := new(Result)
	for _, b := range cat.Benchmarks {
		if err := ctx.Err(); err != nil {
			return res, err
		}
		ds, err := l.load(ctx, b)
		if err != nil {
			opts.logf("%s: %v\n", b.ID, err)
			res.Failures = append(res.Failures, &Failure{b, err})
			continue
		}
		res.Datasets = append(res.Datasets, ds)
	}
	return res, nil
}

type loader struct {
	cat  *catalog.Catalog
	opts *Options

	// Release dates are loaded on first use.
	datesLoaded bool
	dates       *table.Table
	datesErr    error
}

func (l *loader) path(file string) string {
	return filepath.Join(l.opts.DataDir, file)
}

func (l *loader) releaseDates() (*table.Table, error) {
	if !l.datesLoaded {
		l.datesLoaded = true
		src := &l.cat.ReleaseDates
		path := l.path(src.File)
		schema := src.Schema()
		raw, err := scorefmt.LoadFile(path, schema)
		if err == nil {
			l.dates, err = scorefmt.Normalize(raw, path, schema)
		}
		if err != nil {
			l.datesErr = fmt.Errorf("release dates: %w", err)
		} else {
			l.opts.logf("loaded %d release dates from %s\n", l.dates.Len(), path)
		}
	}
	return l.dates, l.datesErr
}

func (l *loader) load(ctx context.Context, b *catalog.Benchmark) (*Dataset, error) {
	src := &b.Data
	path := l.path(src.File)
	if src.URL != "" {
		_, err := fetch.Cached(ctx, &fetch.Options{
			URL:        src.URL,
			Path:       path,
			Refresh:    l.opts.Refresh,
			Timeout:    l.opts.Timeout,
			HTTPClient: l.opts.HTTPClient,
			Logf:       l.opts.Logf,
		})
		if err != nil {
			return nil, err
		}
	}

	schema := src.Schema()
	raw, err := scorefmt.LoadFile(path, schema)
	if err != nil {
		return nil, err
	}

	var t *table.Table
	if src.JoinReleaseDates {
		dates, err := l.releaseDates()
		if err != nil {
			return nil, err
		}
		t, err = scoreproc.Prepare(raw, dates, &scoreproc.Options{
			Name:       path,
			Predicates: src.Filter,
			Schema:     schema,
			Logf:       l.opts.Logf,
		})
		if err != nil {
			return nil, err
		}
	} else {
		filtered, err := scoreproc.Filter(raw, src.Filter...)
		if err != nil {
			return nil, err
		}
		norm, err := scorefmt.Normalize(filtered, path, schema)
		if err != nil {
			return nil, err
		}
		dedup := scoreproc.FirstByModel(norm)
		if n := norm.Len() - dedup.Len(); n > 0 {
			l.opts.logf("%s: dropped %d duplicate model rows\n", path, n)
		}
		t = scoreproc.SortByScore(dedup)
	}
	if t.Len() == 0 {
		return nil, ErrNoRows
	}
	t = scoreproc.WithCIBounds(t)

	records, err := scorefmt.Records(t)
	if err != nil {
		return nil, err
	}
	points, err := frontier.Compute(t, b.Name, b.Scale)
	if err != nil {
		return nil, err
	}
	l.opts.logf("%s: %d models, %d frontier points\n", b.ID, len(records), len(points))
	return &Dataset{Benchmark: b, Table: t, Records: records, Frontier: points}, nil
}

// WriteSummary writes a human-readable report of r to w: one line per
// loaded benchmark, a sparkline of each frontier with at least two
// points, and the failures.
func (r *Result) WriteSummary(w io.Writer) error {
	ew := &errWriter{w: w}
	for _, ds := range r.Datasets {
		b := ds.Benchmark
		ew.printf("%-12s %4d models  %2d frontier points  (%s)\n", b.ID, len(ds.Records), len(ds.Frontier), b.SourceName)
		if len(ds.Frontier) >= 2 {
			ew.printf("%s\n", asciigraph.Plot(frontier.Bests(ds.Frontier),
				asciigraph.Height(5),
				asciigraph.Width(40),
				asciigraph.Offset(6),
				asciigraph.Caption(b.Name+" frontier (%)")))
		}
	}
	if len(r.Failures) > 0 {
		ew.printf("%d of %d sources failed:\n", len(r.Failures), len(r.Failures)+len(r.Datasets))
		for _, f := range r.Failures {
			ew.printf("  %v\n", f)
		}
	}
	return ew.err
}

type errWriter struct {
	w   io.Writer
	err error
}

func (e *errWriter) printf(format string, args ...interface{}) {
	if e.err == nil {
		_, e.err = fmt.Fprintf(e.w, format, args...)
	}
}
