// Copyright 2025 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package frontier

import (
	"encoding/csv"
	"io"
	"strconv"
)

var csvHeader = []string{"benchmark", "model", "release_date", "score", "score_pct"}

// WriteCSV writes points as CSV with a header row. Dates are written
// as ISO dates.
func WriteCSV(out io.Writer, points []Point) error {
	tab := make([][]string, 0, 1+len(points))
	tab = append(tab, csvHeader)
	for _, p := range points {
		tab = append(tab, []string{
			p.Benchmark,
			p.Model,
			p.ReleaseDate.Format("2006-01-02"),
			strof(p.Score),
			strof(p.ScorePct),
		})
	}
	csvw := csv.NewWriter(out)
	return csvw.WriteAll(tab)
}

func strof(x float64) string {
	return strconv.FormatFloat(x, 'f', -1, 64)
}
