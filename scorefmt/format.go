// Copyright 2025 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package scorefmt

import (
	"fmt"
	"strconv"
	"strings"
)

// A Format describes how a benchmark's scores are displayed. It is
// parsed from a short spec such as ".3f" (three decimals) or ".1%"
// (a fraction shown as a percentage with one decimal).
type Format struct {
	Prec    int  // Digits after the decimal point
	Percent bool // Multiply by 100 and append "%"
}

// ParseFormat parses a format spec of the form ".Nf" or ".N%".
func ParseFormat(spec string) (Format, error) {
	if !strings.HasPrefix(spec, ".") || len(spec) < 3 {
		return Format{}, fmt.Errorf("bad score format %q", spec)
	}
	var f Format
	switch spec[len(spec)-1] {
	case 'f':
	case '%':
		f.Percent = true
	default:
		return Format{}, fmt.Errorf("bad score format %q", spec)
	}
	prec, err := strconv.Atoi(spec[1 : len(spec)-1])
	if err != nil || prec < 0 {
		return Format{}, fmt.Errorf("bad score format %q", spec)
	}
	f.Prec = prec
	return f, nil
}

// Format formats val according to f.
func (f Format) Format(val float64) string {
	buf := make([]byte, 0, 16)
	if f.Percent {
		val *= 100
	}
	buf = strconv.AppendFloat(buf, val, 'f', f.Prec, 64)
	if f.Percent {
		buf = append(buf, '%')
	}
	return string(buf)
}

// String returns the spec f was parsed from.
func (f Format) String() string {
	if f.Percent {
		return fmt.Sprintf(".%d%%", f.Prec)
	}
	return fmt.Sprintf(".%df", f.Prec)
}
