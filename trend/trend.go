// Copyright 2025 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package trend fits a straight line of score against release date.
package trend

import (
	"math"
	"time"

	"github.com/aclements/go-moremath/fit"
	"github.com/aclements/go-moremath/stats"
)

const day = 24 * time.Hour

// A Line is a least-squares fit of score over time, evaluated at the
// earliest and latest release dates.
type Line struct {
	Start, End           time.Time
	StartScore, EndScore float64

	// Slope is the change in score per day.
	Slope float64
}

// Fit fits a line through (dates[i], scores[i]), with x measured in
// days since the earliest date. Points with a NaN score are ignored.
//
// Fit reports false if fewer than two points remain or they all share
// one date.
func Fit(dates []time.Time, scores []float64) (Line, bool) {
	if len(dates) != len(scores) {
		panic("trend.Fit: dates and scores differ in length")
	}
	var ts []time.Time
	var ys []float64
	for i, y := range scores {
		if math.IsNaN(y) {
			continue
		}
		ts = append(ts, dates[i])
		ys = append(ys, y)
	}
	if len(ys) < 2 {
		return Line{}, false
	}

	origin := ts[0]
	for _, t := range ts {
		if t.Before(origin) {
			origin = t
		}
	}
	xs := make([]float64, len(ts))
	for i, t := range ts {
		xs[i] = float64(t.Sub(origin)) / float64(day)
	}
	lo, hi := stats.Sample{Xs: xs}.Bounds()
	if lo == hi {
		return Line{}, false
	}

	r := fit.PolynomialRegression(xs, ys, nil, 1)
	return Line{
		Start:      origin,
		End:        origin.Add(time.Duration(hi * float64(day))),
		StartScore: r.F(lo),
		EndScore:   r.F(hi),
		Slope:      r.Coefficients[1],
	}, true
}

// At evaluates l at time t.
func (l Line) At(t time.Time) float64 {
	return l.StartScore + l.Slope*float64(t.Sub(l.Start))/float64(day)
}
