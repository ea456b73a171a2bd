// Copyright 2025 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package scorefmt

import (
	"testing"
	"time"
)

func TestFormat(t *testing.T) {
	for _, test := range []struct {
		spec string
		val  float64
		want string
	}{
		{".3f", 0.5234, "0.523"},
		{".2f", 0.5, "0.50"},
		{".1%", 0.9123, "91.2%"},
		{".0%", 0.625, "62%"},
	} {
		f, err := ParseFormat(test.spec)
		if err != nil {
			t.Errorf("ParseFormat(%q): %v", test.spec, err)
			continue
		}
		if got := f.Format(test.val); got != test.want {
			t.Errorf("%s.Format(%v) = %q, want %q", test.spec, test.val, got, test.want)
		}
		if f.String() != test.spec {
			t.Errorf("ParseFormat(%q).String() = %q", test.spec, f.String())
		}
	}

	for _, bad := range []string{"", "3f", ".x%", ".3d", "."} {
		if _, err := ParseFormat(bad); err == nil {
			t.Errorf("ParseFormat(%q) succeeded, want error", bad)
		}
	}
}

func TestParseDate(t *testing.T) {
	want := time.Date(2024, 6, 20, 0, 0, 0, 0, time.UTC)
	for _, in := range []string{
		"2024-06-20",
		"2024-06-20T15:30:00Z",
		"2024-06-20 08:00:00",
		"2024/06/20",
		"06/20/2024",
		"June 20, 2024",
		"Jun 20, 2024",
	} {
		got, err := ParseDate(in)
		if err != nil {
			t.Errorf("ParseDate(%q): %v", in, err)
			continue
		}
		if !got.Equal(want) {
			t.Errorf("ParseDate(%q) = %v, want %v", in, got, want)
		}
	}
	if _, err := ParseDate("yesterday"); err == nil {
		t.Errorf("ParseDate(yesterday) succeeded, want error")
	}
}
