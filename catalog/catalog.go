// Copyright 2025 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package catalog describes the benchmarks a run loads and charts:
// their data sources and column schemas, display metadata, provider
// colors, chart themes, and output names.
//
// A Catalog is built once, by Default or Load, and is not modified
// afterwards. Operations that change it, such as ApplyMetadata,
// return a new Catalog.
package catalog

import (
	"bytes"
	_ "embed"
	"fmt"
	"io"
	"os"
	"regexp"
	"strings"

	"github.com/healthinprogress/benchcharts/frontier"
	"github.com/healthinprogress/benchcharts/scorefmt"
	"github.com/healthinprogress/benchcharts/scoreproc"
	"gopkg.in/yaml.v3"
)

//go:embed benchmarks.yaml
var defaultYAML []byte

// OtherProvider is the provider whose color is used for providers the
// catalog does not list.
const OtherProvider = "Other"

// A Catalog is the immutable configuration of a run.
type Catalog struct {
	Site         Site            `yaml:"site"`
	ReleaseDates Source          `yaml:"release_dates"`
	Benchmarks   []*Benchmark    `yaml:"benchmarks"`
	Providers    []ProviderColor `yaml:"providers"`
	Themes       []*Theme        `yaml:"themes"`
	Chart        ChartConfig     `yaml:"chart"`
	Outputs      Outputs         `yaml:"outputs"`
}

// Site identifies the publication the charts are made for.
type Site struct {
	Title string `yaml:"title"`
	Name  string `yaml:"name"`
	URL   string `yaml:"url"`
}

// A Benchmark is one scored leaderboard.
type Benchmark struct {
	ID         string    `yaml:"id"`
	Name       string    `yaml:"name"`
	FullName   string    `yaml:"full_name"`
	Title      string    `yaml:"title"`
	YAxisTitle string    `yaml:"y_axis_title"`
	YAxisRange []float64 `yaml:"y_axis_range"` // advisory [min, max]

	// ScoreFormat is a display format such as ".3f" or ".1%".
	ScoreFormat string `yaml:"score_format"`

	// Scale declares the units of the raw scores.
	Scale frontier.Scale `yaml:"scale"`

	Color      string `yaml:"color"`
	SourceName string `yaml:"source_name"`
	SourceURL  string `yaml:"source_url"`
	PaperURL   string `yaml:"paper_url"`

	Data Source `yaml:"data"`

	format scorefmt.Format
}

// Format returns the parsed ScoreFormat.
func (b *Benchmark) Format() scorefmt.Format {
	return b.format
}

// A Source is a CSV file and the schema of its columns.
type Source struct {
	// File is the name of the CSV file in the data directory.
	File string `yaml:"file"`

	// URL, if set, is where File is downloaded from when it is
	// not cached.
	URL string `yaml:"url"`

	// Columns maps canonical columns to source headers. If empty,
	// the source uses the canonical names directly.
	Columns []ColumnSpec `yaml:"columns"`

	// Filter selects the rows of the source to keep.
	Filter []scoreproc.Predicate `yaml:"filter"`

	// JoinReleaseDates indicates that the source has no release
	// dates of its own and is joined with the release-date table.
	JoinReleaseDates bool `yaml:"join_release_dates"`
}

// A ColumnSpec is the configuration form of a scorefmt.Column. An
// empty Source means the header equals Name.
type ColumnSpec struct {
	Name     string `yaml:"name"`
	Source   string `yaml:"source"`
	Optional bool   `yaml:"optional"`
}

// Schema returns the column schema of s. Filter columns are required
// in addition to the mapped columns.
func (s *Source) Schema() scorefmt.Schema {
	if len(s.Columns) == 0 {
		required := []string{scorefmt.ColModel, scorefmt.ColProvider, scorefmt.ColScore}
		if !s.JoinReleaseDates {
			required = append(required, scorefmt.ColReleaseDate)
		}
		schema := scorefmt.Identity(required, scorefmt.ColCIWidth)
		schema.Require = s.filterColumns()
		return schema
	}
	var schema scorefmt.Schema
	for _, c := range s.Columns {
		src := c.Source
		if src == "" {
			src = c.Name
		}
		schema.Columns = append(schema.Columns, scorefmt.Column{Name: c.Name, Source: src, Optional: c.Optional})
	}
	schema.Require = s.filterColumns()
	return schema
}

func (s *Source) filterColumns() []string {
	var cols []string
	for _, p := range s.Filter {
		cols = append(cols, p.Column)
	}
	return cols
}

// A ProviderColor assigns a chart color to a model provider.
type ProviderColor struct {
	Name  string `yaml:"name"`
	Color string `yaml:"color"`
}

// A Theme is a chart color scheme.
type Theme struct {
	Name          string `yaml:"name"`
	BgPrimary     string `yaml:"bg_primary"`
	BgSecondary   string `yaml:"bg_secondary"`
	Accent        string `yaml:"accent"`
	TextPrimary   string `yaml:"text_primary"`
	TextSecondary string `yaml:"text_secondary"`
	Grid          string `yaml:"grid"`
}

// ChartConfig holds styling shared by every chart.
type ChartConfig struct {
	XAxisTitle         string  `yaml:"x_axis_title"`
	FrontierTitle      string  `yaml:"frontier_title"`
	FrontierYAxisTitle string  `yaml:"frontier_y_axis_title"`
	MarkerSize         float64 `yaml:"marker_size"`
	MarkerLineWidth    float64 `yaml:"marker_line_width"`
	AnnotationFontSize float64 `yaml:"annotation_font_size"`

	// AnnotateTop is the number of top-scoring models labeled on
	// each benchmark chart.
	AnnotateTop int `yaml:"annotate_top"`

	// Width and Height are the static image size in layout units.
	// PixelRatio scales them to pixels.
	Width      int     `yaml:"width"`
	Height     int     `yaml:"height"`
	PixelRatio float64 `yaml:"pixel_ratio"`
}

// Outputs holds artifact name patterns. "{id}" expands to a benchmark
// ID and "{theme}" to a theme name. Patterns have no extension; the
// renderer adds one per format.
type Outputs struct {
	BenchmarkChart string `yaml:"benchmark_chart"`
	FrontierChart  string `yaml:"frontier_chart"`
	TabbedPage     string `yaml:"tabbed_page"`
	FrontierCSV    string `yaml:"frontier_csv"`
}

// Name expands pattern for benchmark id and theme.
func (o Outputs) Name(pattern, id, theme string) string {
	return strings.NewReplacer("{id}", id, "{theme}", theme).Replace(pattern)
}

// Default returns the built-in catalog.
func Default() *Catalog {
	c, err := Load(bytes.NewReader(defaultYAML))
	if err != nil {
		panic("bad built-in catalog: " + err.Error())
	}
	return c
}

// LoadFile reads a catalog from the YAML file at path.
func LoadFile(path string) (*Catalog, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("catalog: read %q: %w", path, err)
	}
	return Load(bytes.NewReader(data))
}

// Load reads a YAML catalog from r and validates it.
func Load(r io.Reader) (*Catalog, error) {
	c := new(Catalog)
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(c); err != nil {
		return nil, fmt.Errorf("catalog: parse yaml: %w", err)
	}
	if err := c.validate(); err != nil {
		return nil, fmt.Errorf("catalog: %w", err)
	}
	return c, nil
}

var hexColor = regexp.MustCompile(`^#[0-9a-fA-F]{6}$`)

// validate checks structural constraints and fills derived fields.
func (c *Catalog) validate() error {
	if len(c.Benchmarks) == 0 {
		return fmt.Errorf("no benchmarks")
	}
	seen := make(map[string]bool)
	needDates := false
	for i, b := range c.Benchmarks {
		if b == nil || b.ID == "" {
			return fmt.Errorf("benchmarks[%d]: missing id", i)
		}
		if seen[b.ID] {
			return fmt.Errorf("benchmark %q: duplicate id", b.ID)
		}
		seen[b.ID] = true
		if b.Name == "" {
			b.Name = b.ID
		}
		if b.ScoreFormat == "" {
			b.ScoreFormat = ".3f"
		}
		f, err := scorefmt.ParseFormat(b.ScoreFormat)
		if err != nil {
			return fmt.Errorf("benchmark %q: %w", b.ID, err)
		}
		b.format = f
		if len(b.YAxisRange) != 0 && (len(b.YAxisRange) != 2 || b.YAxisRange[0] >= b.YAxisRange[1]) {
			return fmt.Errorf("benchmark %q: y_axis_range must be [min, max]", b.ID)
		}
		if !hexColor.MatchString(b.Color) {
			return fmt.Errorf("benchmark %q: bad color %q", b.ID, b.Color)
		}
		if err := checkSource(&b.Data, !b.Data.JoinReleaseDates); err != nil {
			return fmt.Errorf("benchmark %q: %w", b.ID, err)
		}
		if b.Data.JoinReleaseDates {
			needDates = true
		}
	}
	if needDates {
		if err := checkSource(&c.ReleaseDates, true); err != nil {
			return fmt.Errorf("release_dates: %w", err)
		}
	}

	hasOther := false
	for _, p := range c.Providers {
		if !hexColor.MatchString(p.Color) {
			return fmt.Errorf("provider %q: bad color %q", p.Name, p.Color)
		}
		if p.Name == OtherProvider {
			hasOther = true
		}
	}
	if !hasOther {
		return fmt.Errorf("providers: missing %q fallback color", OtherProvider)
	}

	if len(c.Themes) == 0 {
		return fmt.Errorf("no themes")
	}
	themes := make(map[string]bool)
	for i, t := range c.Themes {
		if t == nil || t.Name == "" {
			return fmt.Errorf("themes[%d]: missing name", i)
		}
		if themes[t.Name] {
			return fmt.Errorf("theme %q: duplicate name", t.Name)
		}
		themes[t.Name] = true
		for _, col := range []string{t.BgPrimary, t.BgSecondary, t.Accent, t.TextPrimary, t.TextSecondary, t.Grid} {
			if !hexColor.MatchString(col) {
				return fmt.Errorf("theme %q: bad color %q", t.Name, col)
			}
		}
	}

	if c.Chart.AnnotateTop < 0 {
		return fmt.Errorf("chart.annotate_top must not be negative")
	}
	if c.Chart.Width <= 0 || c.Chart.Height <= 0 {
		return fmt.Errorf("chart: width and height must be positive")
	}
	if c.Chart.PixelRatio <= 0 {
		c.Chart.PixelRatio = 1
	}
	o := c.Outputs
	if o.BenchmarkChart == "" || o.FrontierChart == "" || o.TabbedPage == "" || o.FrontierCSV == "" {
		return fmt.Errorf("outputs: every output name must be set")
	}
	if !strings.Contains(o.BenchmarkChart, "{id}") {
		return fmt.Errorf("outputs.benchmark_chart must contain {id}")
	}
	return nil
}

// checkSource checks that s names a file and maps the columns the
// pipeline needs.
func checkSource(s *Source, needDate bool) error {
	if s.File == "" {
		return fmt.Errorf("data source has no file")
	}
	schema := s.Schema()
	need := []string{scorefmt.ColModel}
	if needDate {
		need = append(need, scorefmt.ColReleaseDate)
	}
	for _, col := range need {
		if !schema.Has(col) {
			return fmt.Errorf("schema does not map %s", col)
		}
	}
	for _, p := range s.Filter {
		if p.Column == "" {
			return fmt.Errorf("filter predicate has no column")
		}
	}
	return nil
}

// Benchmark returns the benchmark with the given ID, or nil.
func (c *Catalog) Benchmark(id string) *Benchmark {
	for _, b := range c.Benchmarks {
		if b.ID == id {
			return b
		}
	}
	return nil
}

// Theme returns the theme with the given name, or nil.
func (c *Catalog) Theme(name string) *Theme {
	for _, t := range c.Themes {
		if t.Name == name {
			return t
		}
	}
	return nil
}

// ProviderColor returns the chart color for provider, falling back to
// the color of OtherProvider.
func (c *Catalog) ProviderColor(provider string) string {
	other := ""
	for _, p := range c.Providers {
		if p.Name == provider {
			return p.Color
		}
		if p.Name == OtherProvider {
			other = p.Color
		}
	}
	return other
}

// clone returns a copy of c whose benchmarks can be modified without
// affecting c.
func (c *Catalog) clone() *Catalog {
	nc := *c
	nc.Benchmarks = make([]*Benchmark, len(c.Benchmarks))
	for i, b := range c.Benchmarks {
		nb := *b
		nc.Benchmarks[i] = &nb
	}
	return &nc
}
