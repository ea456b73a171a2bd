// Copyright 2025 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package chart renders benchmark scores and frontiers as static PNG
// images and as interactive Plotly pages.
package chart

import (
	"math"
	"time"

	"github.com/healthinprogress/benchcharts/catalog"
	"github.com/healthinprogress/benchcharts/frontier"
	"github.com/healthinprogress/benchcharts/scorefmt"
	"github.com/healthinprogress/benchcharts/trend"
)

// A Benchmark is the chartable data of one benchmark.
type Benchmark struct {
	*catalog.Benchmark

	// Records are sorted by descending score.
	Records []scorefmt.Record

	Frontier []frontier.Point
}

// providerGroup is the records of one provider, in input order.
type providerGroup struct {
	name    string
	records []scorefmt.Record
}

// byProvider groups the plottable records of b by provider, ordered
// by each provider's first appearance. Records with a NaN score are
// dropped.
func (b *Benchmark) byProvider() []providerGroup {
	var groups []providerGroup
	index := make(map[string]int)
	for _, r := range b.Records {
		if math.IsNaN(r.Score) {
			continue
		}
		name := r.Provider
		if name == "" {
			name = catalog.OtherProvider
		}
		i, ok := index[name]
		if !ok {
			i = len(groups)
			index[name] = i
			groups = append(groups, providerGroup{name: name})
		}
		groups[i].records = append(groups[i].records, r)
	}
	return groups
}

// top returns the first n plottable records of b.
func (b *Benchmark) top(n int) []scorefmt.Record {
	var out []scorefmt.Record
	for _, r := range b.Records {
		if len(out) >= n {
			break
		}
		if !math.IsNaN(r.Score) {
			out = append(out, r)
		}
	}
	return out
}

// trendline fits a line through the records of b.
func (b *Benchmark) trendline() (trend.Line, bool) {
	dates := make([]time.Time, len(b.Records))
	scores := make([]float64, len(b.Records))
	for i, r := range b.Records {
		dates[i], scores[i] = r.ReleaseDate, r.Score
	}
	return trend.Fit(dates, scores)
}

// hasCI reports whether any record of b has a confidence interval.
func (b *Benchmark) hasCI() bool {
	for _, r := range b.Records {
		if r.HasCI() {
			return true
		}
	}
	return false
}
