// Copyright 2025 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package scorefmt

import (
	"encoding/csv"
	"fmt"
	"io"
	"strings"

	"github.com/aclements/go-gg/table"
)

// ReadCSV reads a CSV file with a header row into a table whose
// columns are all []string, named after the header. name is used in
// error messages only.
//
// An input with no header yields the empty table.
func ReadCSV(r io.Reader, name string) (*table.Table, error) {
	cr := csv.NewReader(r)
	rows, err := cr.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("%s: %w", name, err)
	}
	if len(rows) == 0 {
		return new(table.Table), nil
	}
	header := rows[0]
	for i, h := range header {
		h = strings.TrimSpace(h)
		if i == 0 {
			h = strings.TrimPrefix(h, "\ufeff")
		}
		header[i] = h
	}
	return table.TableFromStrings(header, rows[1:], false), nil
}

// Load reads a CSV file and checks its header against schema.
func Load(r io.Reader, name string, schema Schema) (*table.Table, error) {
	t, err := ReadCSV(r, name)
	if err != nil {
		return nil, err
	}
	if t.Columns() == nil {
		return t, nil
	}
	if err := schema.Check(name, t.Columns()); err != nil {
		return nil, err
	}
	return t, nil
}

// LoadFile is like Load, but opens path first. A missing file is
// reported as a *MissingFileError.
func LoadFile(path string, schema Schema) (*table.Table, error) {
	f, err := OpenFile(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return Load(f, path, schema)
}
