// Copyright 2025 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package catalog

import (
	"io"
	"strings"

	"github.com/healthinprogress/benchcharts/scorefmt"
)

// MetadataFile is the optional attribution override file in the data
// directory.
const MetadataFile = "benchmark_metadata.csv"

var metadataSchema = scorefmt.Identity(
	[]string{"benchmark_id"},
	"benchmark_name", "source_name", "source_url", "paper_url",
)

// ApplyMetadata returns a copy of c with benchmark attribution
// overridden by the rows of a benchmark_metadata.csv file read from r.
// Rows are matched to benchmarks by benchmark_id; empty cells and
// unknown IDs are ignored. c itself is not modified.
//
// The returned []string lists the benchmark IDs in r that c does not
// know.
func (c *Catalog) ApplyMetadata(r io.Reader) (*Catalog, []string, error) {
	t, err := scorefmt.Load(r, MetadataFile, metadataSchema)
	if err != nil {
		return nil, nil, err
	}
	nc := c.clone()
	if t.Len() == 0 {
		return nc, nil, nil
	}

	column := func(name string) []string {
		col, _ := t.Column(name).([]string)
		return col
	}
	ids := column("benchmark_id")
	fields := []struct {
		col []string
		set func(b *Benchmark, v string)
	}{
		{column("benchmark_name"), func(b *Benchmark, v string) { b.Name = v }},
		{column("source_name"), func(b *Benchmark, v string) { b.SourceName = v }},
		{column("source_url"), func(b *Benchmark, v string) { b.SourceURL = v }},
		{column("paper_url"), func(b *Benchmark, v string) { b.PaperURL = v }},
	}

	var unknown []string
	for i, id := range ids {
		id = strings.TrimSpace(id)
		b := nc.Benchmark(id)
		if b == nil {
			unknown = append(unknown, id)
			continue
		}
		for _, f := range fields {
			if f.col == nil {
				continue
			}
			if v := strings.TrimSpace(f.col[i]); v != "" {
				f.set(b, v)
			}
		}
	}
	return nc, unknown, nil
}
