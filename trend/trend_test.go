// Copyright 2025 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package trend

import (
	"math"
	"testing"
	"time"
)

func aboutEqual(a, b float64) bool {
	return math.Abs(a-b) < 1e-6
}

func TestFitExact(t *testing.T) {
	base := time.Date(2023, 1, 1, 0, 0, 0, 0, time.UTC)
	dates := []time.Time{base.AddDate(0, 0, 20), base, base.AddDate(0, 0, 10)}
	// score = 0.5 + 0.01*days
	scores := []float64{0.7, 0.5, 0.6}

	l, ok := Fit(dates, scores)
	if !ok {
		t.Fatal("Fit failed")
	}
	if !l.Start.Equal(base) || !l.End.Equal(base.AddDate(0, 0, 20)) {
		t.Errorf("Fit range = %v..%v", l.Start, l.End)
	}
	if !aboutEqual(l.StartScore, 0.5) || !aboutEqual(l.EndScore, 0.7) {
		t.Errorf("Fit endpoints = %v, %v; want 0.5, 0.7", l.StartScore, l.EndScore)
	}
	if !aboutEqual(l.Slope, 0.01) {
		t.Errorf("Fit slope = %v, want 0.01", l.Slope)
	}
	if got := l.At(base.AddDate(0, 0, 5)); !aboutEqual(got, 0.55) {
		t.Errorf("At(+5d) = %v, want 0.55", got)
	}
}

func TestFitDegenerate(t *testing.T) {
	base := time.Date(2023, 1, 1, 0, 0, 0, 0, time.UTC)
	for _, tc := range []struct {
		name   string
		dates  []time.Time
		scores []float64
	}{
		{"empty", nil, nil},
		{"one", []time.Time{base}, []float64{1}},
		{"same-day", []time.Time{base, base}, []float64{1, 2}},
		{"nan", []time.Time{base, base.AddDate(0, 1, 0)}, []float64{1, math.NaN()}},
	} {
		t.Run(tc.name, func(t *testing.T) {
			if _, ok := Fit(tc.dates, tc.scores); ok {
				t.Errorf("Fit succeeded, want failure")
			}
		})
	}
}
