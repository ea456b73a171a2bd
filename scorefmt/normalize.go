// Copyright 2025 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package scorefmt

import (
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"

	"github.com/aclements/go-gg/table"
)

// Normalize maps the source columns of raw to the canonical columns
// declared by schema and converts their values to typed columns:
// scores and CI widths become []float64 and release dates become
// []time.Time truncated to the day. Columns not named by the schema
// are dropped. name is used in error messages only.
//
// A malformed value is reported as a *ParseError. An empty optional
// numeric value becomes NaN. An empty input yields a table with no
// rows and no error.
func Normalize(raw *table.Table, name string, schema Schema) (*table.Table, error) {
	if raw.Len() == 0 {
		return emptyTable(raw, schema), nil
	}
	if err := schema.Check(name, raw.Columns()); err != nil {
		return nil, err
	}

	var nt table.Builder
	for _, c := range schema.Columns {
		src := raw.Column(c.Source)
		if src == nil {
			// Optional and absent.
			continue
		}
		col, err := convert(name, c, src)
		if err != nil {
			return nil, err
		}
		nt.Add(c.Name, col)
	}
	return nt.Done(), nil
}

// emptyTable returns a zero-row table with the typed columns schema
// would produce from raw.
func emptyTable(raw *table.Table, schema Schema) *table.Table {
	var nt table.Builder
	for _, c := range schema.Columns {
		if c.Optional && raw.Column(c.Source) == nil {
			continue
		}
		switch KindOf(c.Name) {
		case Float:
			nt.Add(c.Name, []float64{})
		case Date:
			nt.Add(c.Name, []time.Time{})
		default:
			nt.Add(c.Name, []string{})
		}
	}
	return nt.Done()
}

func convert(name string, c Column, src table.Slice) (table.Slice, error) {
	kind := KindOf(c.Name)
	strs, ok := src.([]string)
	if !ok {
		// Already typed, as when a normalized table is
		// normalized again.
		switch src.(type) {
		case []float64:
			if kind == Float {
				return src, nil
			}
		case []time.Time:
			if kind == Date {
				return src, nil
			}
		}
		return nil, fmt.Errorf("%s: column %s has unexpected type %T", name, c.Source, src)
	}

	switch kind {
	case Float:
		out := make([]float64, len(strs))
		for i, s := range strs {
			s = strings.TrimSpace(s)
			if s == "" && c.Optional {
				out[i] = math.NaN()
				continue
			}
			v, err := strconv.ParseFloat(s, 64)
			if err != nil {
				return nil, &ParseError{name, i + 1, c.Source, s, errUnwrapNum(err)}
			}
			out[i] = v
		}
		return out, nil

	case Date:
		out := make([]time.Time, len(strs))
		for i, s := range strs {
			t, err := ParseDate(s)
			if err != nil {
				return nil, &ParseError{name, i + 1, c.Source, s, err}
			}
			out[i] = t
		}
		return out, nil
	}

	out := make([]string, len(strs))
	for i, s := range strs {
		out[i] = strings.TrimSpace(s)
	}
	return out, nil
}

// errUnwrapNum drops the redundant "strconv.ParseFloat: parsing ..."
// prefix from number errors.
func errUnwrapNum(err error) error {
	if ne, ok := err.(*strconv.NumError); ok {
		return ne.Err
	}
	return err
}
