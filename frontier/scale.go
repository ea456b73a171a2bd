// Copyright 2025 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package frontier

import (
	"fmt"
	"math"
)

// A Scale declares how a benchmark's raw scores map to percentage
// points.
type Scale int

const (
	// ScaleAuto infers the scale from the data: if the largest raw
	// score is at most AutoThreshold, scores are fractions.
	ScaleAuto Scale = iota
	// ScaleFraction scores are in [0, 1].
	ScaleFraction
	// ScalePercent scores are already percentage points.
	ScalePercent
)

// AutoThreshold is the largest raw score ScaleAuto still treats as a
// fraction.
const AutoThreshold = 1.5

var scaleNames = []string{"auto", "fraction", "percent"}

func (s Scale) String() string {
	if s < 0 || int(s) >= len(scaleNames) {
		return fmt.Sprintf("Scale(%d)", int(s))
	}
	return scaleNames[s]
}

// ParseScale parses a scale name as written in a catalog. The empty
// string means "auto".
func ParseScale(name string) (Scale, error) {
	if name == "" {
		return ScaleAuto, nil
	}
	for i, n := range scaleNames {
		if n == name {
			return Scale(i), nil
		}
	}
	return 0, fmt.Errorf("unknown score scale %q (want auto, fraction, or percent)", name)
}

// Factor returns the multiplier that converts raw scores to
// percentage points. For ScaleAuto it inspects scores; NaN values are
// ignored.
func (s Scale) Factor(scores []float64) float64 {
	switch s {
	case ScaleFraction:
		return 100
	case ScalePercent:
		return 1
	}
	max := math.Inf(-1)
	for _, v := range scores {
		if v > max {
			max = v
		}
	}
	if max <= AutoThreshold {
		return 100
	}
	return 1
}

// UnmarshalText implements encoding.TextUnmarshaler, so a Scale can
// be decoded directly from configuration files.
func (s *Scale) UnmarshalText(text []byte) error {
	v, err := ParseScale(string(text))
	if err != nil {
		return err
	}
	*s = v
	return nil
}

// MarshalText implements encoding.TextMarshaler.
func (s Scale) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}
