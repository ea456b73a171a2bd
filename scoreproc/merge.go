// Copyright 2025 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package scoreproc

import (
	"github.com/aclements/go-gg/generic/slice"
	"github.com/aclements/go-gg/table"
	"github.com/healthinprogress/benchcharts/scorefmt"
)

// Temporary column names used while joining.
const (
	colProviderScores = "provider_scores"
	colProviderDates  = "provider_dates"
	colNegScore       = "-score"
)

// Merge joins scores with the release-date table dates on the model
// column. Score rows whose model has no release date are dropped;
// this is how only models with known release dates reach the charts.
//
// The release date always comes from dates. The provider comes from
// dates where dates has a non-empty provider and from scores
// otherwise. Both inputs are reduced to the first row per model before
// joining, so the result never has more rows than either input.
//
// The result is sorted by descending score. Merging an empty table
// yields an empty table.
func Merge(scores, dates *table.Table) (*table.Table, error) {
	if scores.Len() == 0 {
		return scores, nil
	}
	if err := require("scores", scores, scorefmt.ColModel); err != nil {
		return nil, err
	}
	if dates.Len() == 0 {
		return emptyLike(scores), nil
	}
	if err := require("release dates", dates, scorefmt.ColModel, scorefmt.ColReleaseDate); err != nil {
		return nil, err
	}

	scores = FirstByModel(scores)
	dates = FirstByModel(dates)

	// Shape both sides so that the only shared column is model.
	var left table.Builder
	for _, col := range scores.Columns() {
		switch col {
		case scorefmt.ColReleaseDate:
			continue
		case scorefmt.ColProvider:
			left.Add(colProviderScores, scores.Column(col))
		default:
			left.Add(col, scores.Column(col))
		}
	}
	var right table.Builder
	right.Add(scorefmt.ColModel, dates.Column(scorefmt.ColModel))
	right.Add(scorefmt.ColReleaseDate, dates.Column(scorefmt.ColReleaseDate))
	if p := dates.Column(scorefmt.ColProvider); p != nil {
		right.Add(colProviderDates, p)
	}

	joined := table.Flatten(table.Join(left.Done(), scorefmt.ColModel, right.Done(), scorefmt.ColModel))
	if joined.Columns() == nil {
		return emptyLike(scores), nil
	}

	ps, _ := joined.Column(colProviderScores).([]string)
	pd, _ := joined.Column(colProviderDates).([]string)
	var provider []string
	switch {
	case ps != nil && pd != nil:
		provider = make([]string, len(pd))
		for i := range pd {
			provider[i] = pd[i]
			if provider[i] == "" {
				provider[i] = ps[i]
			}
		}
	case pd != nil:
		provider = pd
	case ps != nil:
		provider = ps
	}

	// Rebuild in canonical column order, followed by any other
	// columns carried over from scores.
	var out table.Builder
	canonical := []string{scorefmt.ColModel, scorefmt.ColProvider, scorefmt.ColScore, scorefmt.ColReleaseDate, scorefmt.ColCIWidth}
	for _, col := range canonical {
		if col == scorefmt.ColProvider {
			if provider != nil {
				out.Add(col, provider)
			}
			continue
		}
		if c := joined.Column(col); c != nil {
			out.Add(col, c)
		}
	}
	for _, col := range joined.Columns() {
		if out.Has(col) || col == colProviderScores || col == colProviderDates {
			continue
		}
		out.Add(col, joined.Column(col))
	}
	return SortByScore(out.Done()), nil
}

// SortByScore returns t sorted by descending score. Rows with equal
// scores keep their relative order. Tables without a score column are
// returned unchanged.
func SortByScore(t *table.Table) *table.Table {
	scores, ok := t.Column(scorefmt.ColScore).([]float64)
	if !ok || t.Len() < 2 {
		return t
	}
	neg := make([]float64, len(scores))
	for i, s := range scores {
		neg[i] = -s
	}
	g := table.NewBuilder(t).Add(colNegScore, neg).Done()
	return table.Flatten(table.Remove(table.SortBy(g, colNegScore), colNegScore))
}

// WithCIBounds adds score_lower and score_upper columns computed from
// score and ci_width. If t has no ci_width column, it is returned
// unchanged.
func WithCIBounds(t *table.Table) *table.Table {
	ci, ok := t.Column(scorefmt.ColCIWidth).([]float64)
	scores, ok2 := t.Column(scorefmt.ColScore).([]float64)
	if !ok || !ok2 {
		return t
	}
	lower := make([]float64, len(ci))
	upper := make([]float64, len(ci))
	for i := range ci {
		lower[i] = scores[i] - ci[i]
		upper[i] = scores[i] + ci[i]
	}
	return table.NewBuilder(t).Add("score_lower", lower).Add("score_upper", upper).Done()
}

// FirstByModel returns t reduced to the first row for each model. A
// table without a model column is returned unchanged.
func FirstByModel(t *table.Table) *table.Table {
	models, ok := t.Column(scorefmt.ColModel).([]string)
	if !ok {
		return t
	}
	seen := make(map[string]bool, len(models))
	idx := make([]int, 0, len(models))
	for i, m := range models {
		if seen[m] {
			continue
		}
		seen[m] = true
		idx = append(idx, i)
	}
	if len(idx) == len(models) {
		return t
	}
	return selectRows(t, idx)
}

// emptyLike returns a table with t's columns and no rows.
func emptyLike(t *table.Table) *table.Table {
	return selectRows(t, []int{})
}

func selectRows(t *table.Table, idx []int) *table.Table {
	var nt table.Builder
	for _, col := range t.Columns() {
		nt.Add(col, slice.Select(t.Column(col), idx))
	}
	return nt.Done()
}

func require(name string, t *table.Table, cols ...string) error {
	var missing []string
	for _, col := range cols {
		if t.Column(col) == nil {
			missing = append(missing, col)
		}
	}
	if missing != nil {
		return &scorefmt.MissingColumnError{FileName: name, Columns: missing}
	}
	return nil
}
