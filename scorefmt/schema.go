// Copyright 2025 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package scorefmt

// Canonical column names shared by every normalized table.
const (
	ColModel       = "model"
	ColProvider    = "provider"
	ColScore       = "score"
	ColReleaseDate = "release_date"
	ColCIWidth     = "ci_width"
)

// A Kind is the Go type of a canonical column.
type Kind int

const (
	String Kind = iota // []string
	Float              // []float64
	Date               // []time.Time
)

// KindOf returns the kind of the canonical column name. Unknown
// columns are strings.
func KindOf(name string) Kind {
	switch name {
	case ColScore, ColCIWidth:
		return Float
	case ColReleaseDate:
		return Date
	}
	return String
}

// A Column maps one canonical column to the header a source uses for
// it.
type Column struct {
	Name     string // canonical name, such as ColScore
	Source   string // header in the source file, such as "mean"
	Optional bool   // the source may omit this column
}

// A Schema declares how one source's columns map to canonical
// columns. Schemas are checked against the header when a file is
// loaded so that missing columns surface as a *MissingColumnError
// instead of failing later in the pipeline.
type Schema struct {
	// Columns lists the canonical columns in output order.
	Columns []Column

	// Require lists additional raw columns that must be present,
	// such as the columns that filter predicates refer to. They
	// are not carried into the normalized table.
	Require []string
}

// Identity returns a schema whose source headers equal the canonical
// names. Columns named in optional may be absent.
func Identity(required []string, optional ...string) Schema {
	var s Schema
	for _, name := range required {
		s.Columns = append(s.Columns, Column{Name: name, Source: name})
	}
	for _, name := range optional {
		s.Columns = append(s.Columns, Column{Name: name, Source: name, Optional: true})
	}
	return s
}

// Has reports whether s maps the canonical column name.
func (s Schema) Has(name string) bool {
	for _, c := range s.Columns {
		if c.Name == name {
			return true
		}
	}
	return false
}

// Check verifies that header contains every required source column.
// fileName is used in the returned error only.
func (s Schema) Check(fileName string, header []string) error {
	have := make(map[string]bool, len(header))
	for _, h := range header {
		have[h] = true
	}
	var missing []string
	for _, c := range s.Columns {
		if !c.Optional && !have[c.Source] {
			missing = append(missing, c.Source)
		}
	}
	for _, r := range s.Require {
		if !have[r] {
			missing = append(missing, r)
		}
	}
	if len(missing) > 0 {
		return &MissingColumnError{FileName: fileName, Columns: missing}
	}
	return nil
}
