// Copyright 2025 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package scorefmt

import (
	"fmt"
	"math"
	"time"

	"github.com/aclements/go-gg/table"
)

// A Record is one model's result on one benchmark.
type Record struct {
	Model       string
	Provider    string
	Score       float64
	ReleaseDate time.Time
	CIWidth     float64 // NaN if the source has no confidence interval
}

// HasCI reports whether r carries a confidence interval.
func (r Record) HasCI() bool {
	return !math.IsNaN(r.CIWidth)
}

// Records extracts the rows of a normalized table. The model, score,
// and release_date columns are required; provider and ci_width are
// optional.
func Records(t *table.Table) ([]Record, error) {
	if t.Len() == 0 {
		return nil, nil
	}
	var missing []string
	for _, col := range []string{ColModel, ColScore, ColReleaseDate} {
		if t.Column(col) == nil {
			missing = append(missing, col)
		}
	}
	if missing != nil {
		return nil, &MissingColumnError{FileName: "table", Columns: missing}
	}

	models, ok1 := t.Column(ColModel).([]string)
	scores, ok2 := t.Column(ColScore).([]float64)
	dates, ok3 := t.Column(ColReleaseDate).([]time.Time)
	if !ok1 || !ok2 || !ok3 {
		return nil, fmt.Errorf("table is not normalized")
	}
	providers, _ := t.Column(ColProvider).([]string)
	cis, _ := t.Column(ColCIWidth).([]float64)

	recs := make([]Record, t.Len())
	for i := range recs {
		r := Record{
			Model:       models[i],
			Score:       scores[i],
			ReleaseDate: dates[i],
			CIWidth:     math.NaN(),
		}
		if providers != nil {
			r.Provider = providers[i]
		}
		if cis != nil {
			r.CIWidth = cis[i]
		}
		recs[i] = r
	}
	return recs, nil
}
