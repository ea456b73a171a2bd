// Copyright 2025 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package scoreproc

import (
	"strings"

	"github.com/aclements/go-gg/table"
	"github.com/healthinprogress/benchcharts/scorefmt"
)

// Options configures Prepare.
type Options struct {
	// Name identifies the source in errors and log messages.
	Name string

	// Predicates select the rows to keep from the raw table.
	Predicates []Predicate

	// Schema maps the raw columns to canonical columns.
	Schema scorefmt.Schema

	// Logf, if non-nil, receives informational row counts.
	Logf func(format string, args ...interface{})
}

func (o *Options) logf(format string, args ...interface{}) {
	if o.Logf != nil {
		o.Logf(format, args...)
	}
}

// Prepare runs the full filter and merge stage on a raw score table:
// it keeps the rows matching opts.Predicates, renames the columns to
// canonical names, joins the result with the release-date table, and
// sorts it by descending score.
func Prepare(raw, dates *table.Table, opts *Options) (*table.Table, error) {
	filtered, err := Filter(raw, opts.Predicates...)
	if err != nil {
		return nil, err
	}
	opts.logf("%s: filtered to %d models (%s)\n", opts.Name, filtered.Len(), predString(opts.Predicates))

	norm, err := scorefmt.Normalize(filtered, opts.Name, opts.Schema)
	if err != nil {
		return nil, err
	}

	merged, err := Merge(norm, dates)
	if err != nil {
		return nil, err
	}
	opts.logf("%s: merged %d models with release dates\n", opts.Name, merged.Len())
	return merged, nil
}

func predString(preds []Predicate) string {
	if len(preds) == 0 {
		return "no filter"
	}
	vals := make([]string, len(preds))
	for i, p := range preds {
		vals[i] = p.Value
	}
	return strings.Join(vals, ", ")
}
