// Copyright 2025 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package scoreproc

import (
	"fmt"

	"github.com/aclements/go-gg/table"
	"github.com/healthinprogress/benchcharts/scorefmt"
)

// A Predicate matches rows whose Column equals Value exactly.
type Predicate struct {
	Column string `yaml:"column"`
	Value  string `yaml:"value"`
}

func (p Predicate) String() string {
	return fmt.Sprintf("%s:%q", p.Column, p.Value)
}

// Filter returns the rows of t for which every predicate holds. The
// predicate columns must be []string columns of t; a missing column
// is reported as a *scorefmt.MissingColumnError.
//
// Filtering an empty table yields an empty table.
func Filter(t *table.Table, preds ...Predicate) (*table.Table, error) {
	if t.Len() == 0 || len(preds) == 0 {
		return t, nil
	}
	var missing []string
	for _, p := range preds {
		if _, ok := t.Column(p.Column).([]string); !ok {
			missing = append(missing, p.Column)
		}
	}
	if missing != nil {
		return nil, &scorefmt.MissingColumnError{FileName: "filter", Columns: missing}
	}

	var g table.Grouping = t
	for _, p := range preds {
		g = table.FilterEq(g, p.Column, p.Value)
	}
	return table.Flatten(g), nil
}
