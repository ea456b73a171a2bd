// Copyright 2025 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package frontier computes the state-of-the-art frontier of a
// benchmark: the models that set a new best score at the time of
// their release.
package frontier

import (
	"math"
	"time"

	"github.com/aclements/go-gg/table"
	"github.com/healthinprogress/benchcharts/scorefmt"
)

// A Point is one advance of the frontier.
type Point struct {
	Benchmark   string // Display name
	Model       string
	ReleaseDate time.Time
	Score       float64 // Raw score, in the benchmark's own units
	ScorePct    float64 // Score in percentage points
}

// Compute returns the frontier of t, which must have model, score,
// and release_date columns. benchmark is the display name recorded in
// each point.
//
// The rows of t are stably sorted by release date and scanned in
// order; a point is emitted each time a row's score strictly exceeds
// every earlier score. Rows released on the same day keep the order
// they have in t. Rows with a NaN score never advance the frontier.
//
// The returned points have strictly increasing ScorePct and
// non-decreasing ReleaseDate. An empty table yields no points.
func Compute(t *table.Table, benchmark string, scale Scale) ([]Point, error) {
	if t.Len() == 0 {
		return nil, nil
	}
	var missing []string
	for _, col := range []string{scorefmt.ColModel, scorefmt.ColScore, scorefmt.ColReleaseDate} {
		if t.Column(col) == nil {
			missing = append(missing, col)
		}
	}
	if missing != nil {
		return nil, &scorefmt.MissingColumnError{FileName: benchmark, Columns: missing}
	}

	sorted := table.Flatten(table.SortBy(t, scorefmt.ColReleaseDate))
	models := sorted.MustColumn(scorefmt.ColModel).([]string)
	scores := sorted.MustColumn(scorefmt.ColScore).([]float64)
	dates := sorted.MustColumn(scorefmt.ColReleaseDate).([]time.Time)

	factor := scale.Factor(scores)
	var points []Point
	best := math.Inf(-1)
	for i, s := range scores {
		if !(s > best) {
			continue
		}
		best = s
		points = append(points, Point{
			Benchmark:   benchmark,
			Model:       models[i],
			ReleaseDate: dates[i],
			Score:       s,
			ScorePct:    s * factor,
		})
	}
	return points, nil
}

// Bests returns the ScorePct of each point, in order.
func Bests(points []Point) []float64 {
	out := make([]float64, len(points))
	for i, p := range points {
		out[i] = p.ScorePct
	}
	return out
}
