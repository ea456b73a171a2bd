// Copyright 2025 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package scorefmt

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strings"
)

// A MissingFileError reports that a required local data file does
// not exist. Callers skip the source and continue with the others.
type MissingFileError struct {
	Path string
}

func (e *MissingFileError) Error() string {
	return fmt.Sprintf("%s: data file not found", e.Path)
}

// A ParseError represents a malformed date or numeric value in a
// score table. Row is 1-based and counts data rows, not the header.
type ParseError struct {
	FileName string
	Row      int
	Column   string
	Value    string
	Err      error
}

func (e *ParseError) Error() string {
	msg := fmt.Sprintf("%s:%d: bad %s value %q", e.FileName, e.Row, e.Column, e.Value)
	if e.Err != nil {
		msg += ": " + e.Err.Error()
	}
	return msg
}

func (e *ParseError) Unwrap() error {
	return e.Err
}

// A MissingColumnError reports that a table lacks one or more columns
// its schema requires.
type MissingColumnError struct {
	FileName string
	Columns  []string
}

func (e *MissingColumnError) Error() string {
	s := ""
	if len(e.Columns) > 1 {
		s = "s"
	}
	return fmt.Sprintf("%s: missing column%s %s", e.FileName, s, strings.Join(e.Columns, ", "))
}

// OpenFile opens path for reading. If path does not exist, it returns
// a *MissingFileError.
func OpenFile(path string) (*os.File, error) {
	f, err := os.Open(path)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, &MissingFileError{Path: path}
	}
	return f, err
}
