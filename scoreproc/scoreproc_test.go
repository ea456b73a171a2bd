// Copyright 2025 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package scoreproc

import (
	"errors"
	"reflect"
	"strings"
	"testing"
	"time"

	"github.com/aclements/go-gg/table"
	"github.com/healthinprogress/benchcharts/scorefmt"
)

const metricsCSV = `Team,Condition,Metric,Model,Provider,mean,ci
Solo Models,Advisor,OverallScore,alpha,Acme,0.52,0.010
Solo Models,Advisor,OverallScore,beta,Globex,0.61,0.012
Solo Models,Advisor,OverallScore,gamma,,0.57,0.011
Solo Models,Advisor,OverallScore,unknown,Initech,0.70,0.020
Solo Models,Advisor,Safety,alpha,Acme,0.90,0.010
Solo Models,Guardian,OverallScore,beta,Globex,0.40,0.010
Teams,Advisor,OverallScore,alpha+beta,Acme,0.66,0.010
`

const datesCSV = `model,release_date,provider
alpha,2023-03-14,
beta,2023-11-06,Globex Corp
gamma,2024-02-01,Hooli
delta,2024-05-01,Umbrella
`

var preds = []Predicate{
	{"Team", "Solo Models"},
	{"Condition", "Advisor"},
	{"Metric", "OverallScore"},
}

var schema = scorefmt.Schema{
	Columns: []scorefmt.Column{
		{Name: scorefmt.ColModel, Source: "Model"},
		{Name: scorefmt.ColProvider, Source: "Provider"},
		{Name: scorefmt.ColScore, Source: "mean"},
		{Name: scorefmt.ColCIWidth, Source: "ci", Optional: true},
	},
	Require: []string{"Team", "Condition", "Metric"},
}

var datesSchema = scorefmt.Identity([]string{scorefmt.ColModel, scorefmt.ColReleaseDate}, scorefmt.ColProvider)

func loadRaw(t *testing.T) *table.Table {
	t.Helper()
	raw, err := scorefmt.Load(strings.NewReader(metricsCSV), "metrics.csv", schema)
	if err != nil {
		t.Fatal(err)
	}
	return raw
}

func loadDates(t *testing.T, in string) *table.Table {
	t.Helper()
	raw, err := scorefmt.Load(strings.NewReader(in), "dates.csv", datesSchema)
	if err != nil {
		t.Fatal(err)
	}
	dates, err := scorefmt.Normalize(raw, "dates.csv", datesSchema)
	if err != nil {
		t.Fatal(err)
	}
	return dates
}

func TestFilterExact(t *testing.T) {
	raw := loadRaw(t)
	got, err := Filter(raw, preds...)
	if err != nil {
		t.Fatal(err)
	}
	if got.Len() != 4 {
		t.Fatalf("Filter kept %d rows, want 4", got.Len())
	}
	for _, p := range preds {
		for i, v := range got.MustColumn(p.Column).([]string) {
			if v != p.Value {
				t.Errorf("row %d: %s = %q, want %q", i, p.Column, v, p.Value)
			}
		}
	}
}

func TestFilterMissingColumn(t *testing.T) {
	raw := loadRaw(t)
	_, err := Filter(raw, Predicate{"Arm", "A"})
	var mce *scorefmt.MissingColumnError
	if !errors.As(err, &mce) {
		t.Fatalf("Filter error = %v, want *MissingColumnError", err)
	}
}

func TestPrepare(t *testing.T) {
	raw := loadRaw(t)
	dates := loadDates(t, datesCSV)

	var logged []string
	opts := &Options{
		Name:       "MAST",
		Predicates: preds,
		Schema:     schema,
		Logf: func(format string, args ...interface{}) {
			logged = append(logged, format)
		},
	}
	got, err := Prepare(raw, dates, opts)
	if err != nil {
		t.Fatal(err)
	}
	if len(logged) != 2 {
		t.Errorf("Prepare logged %d messages, want 2", len(logged))
	}

	// "unknown" has no release date and is dropped.
	wantModels := []string{"beta", "gamma", "alpha"}
	if models := got.MustColumn(scorefmt.ColModel).([]string); !reflect.DeepEqual(models, wantModels) {
		t.Errorf("models = %v, want %v (descending score)", models, wantModels)
	}
	// Date table wins when it has a provider; metrics fill gaps.
	wantProviders := []string{"Globex Corp", "Hooli", "Acme"}
	if providers := got.MustColumn(scorefmt.ColProvider).([]string); !reflect.DeepEqual(providers, wantProviders) {
		t.Errorf("providers = %v, want %v", providers, wantProviders)
	}
	wantDates := []time.Time{
		time.Date(2023, 11, 6, 0, 0, 0, 0, time.UTC),
		time.Date(2024, 2, 1, 0, 0, 0, 0, time.UTC),
		time.Date(2023, 3, 14, 0, 0, 0, 0, time.UTC),
	}
	if d := got.MustColumn(scorefmt.ColReleaseDate).([]time.Time); !reflect.DeepEqual(d, wantDates) {
		t.Errorf("release_date = %v, want %v", d, wantDates)
	}
	wantCols := []string{scorefmt.ColModel, scorefmt.ColProvider, scorefmt.ColScore, scorefmt.ColReleaseDate, scorefmt.ColCIWidth}
	if !reflect.DeepEqual(got.Columns(), wantCols) {
		t.Errorf("Columns() = %v, want %v", got.Columns(), wantCols)
	}
}

func TestMergeNeverGrows(t *testing.T) {
	raw := loadRaw(t)
	filtered, err := Filter(raw, preds...)
	if err != nil {
		t.Fatal(err)
	}
	norm, err := scorefmt.Normalize(filtered, "metrics.csv", schema)
	if err != nil {
		t.Fatal(err)
	}
	for _, in := range []string{
		datesCSV,
		"model,release_date\nalpha,2023-01-01\n",
		"model,release_date\nalpha,2023-01-01\nalpha,2023-02-01\nbeta,2023-03-01\n",
		"model,release_date\nnobody,2023-01-01\n",
		"model,release_date\n",
	} {
		dates := loadDates(t, in)
		merged, err := Merge(norm, dates)
		if err != nil {
			t.Fatalf("Merge with %q: %v", in, err)
		}
		limit := norm.Len()
		if dates.Len() < limit {
			limit = dates.Len()
		}
		if merged.Len() > limit {
			t.Errorf("Merge with %q has %d rows, want <= %d", in, merged.Len(), limit)
		}
	}
}

func TestMergeDuplicateDates(t *testing.T) {
	raw := loadRaw(t)
	norm, err := scorefmt.Normalize(mustFilter(t, raw), "metrics.csv", schema)
	if err != nil {
		t.Fatal(err)
	}
	dates := loadDates(t, "model,release_date\nalpha,2023-01-01\nalpha,2023-02-01\n")
	merged, err := Merge(norm, dates)
	if err != nil {
		t.Fatal(err)
	}
	if merged.Len() != 1 {
		t.Fatalf("Merge has %d rows, want 1", merged.Len())
	}
	want := time.Date(2023, 1, 1, 0, 0, 0, 0, time.UTC)
	if got := merged.MustColumn(scorefmt.ColReleaseDate).([]time.Time)[0]; !got.Equal(want) {
		t.Errorf("release_date = %v, want first entry %v", got, want)
	}
}

func TestEmptyStages(t *testing.T) {
	empty := new(table.Table)
	if got, err := Filter(empty, preds...); err != nil || got.Len() != 0 {
		t.Errorf("Filter(empty) = %d rows, %v", got.Len(), err)
	}
	if got, err := Merge(empty, loadDates(t, datesCSV)); err != nil || got.Len() != 0 {
		t.Errorf("Merge(empty, dates) = %d rows, %v", got.Len(), err)
	}
	if got, err := Prepare(empty, empty, &Options{Predicates: preds, Schema: schema}); err != nil || got.Len() != 0 {
		t.Errorf("Prepare(empty) = %v, %v", got, err)
	}

	header, err := scorefmt.Load(strings.NewReader("Team,Condition,Metric,Model,Provider,mean\n"), "metrics.csv", schema)
	if err != nil {
		t.Fatal(err)
	}
	got, err := Prepare(header, loadDates(t, datesCSV), &Options{Predicates: preds, Schema: schema})
	if err != nil || got.Len() != 0 {
		t.Errorf("Prepare(header only) = %d rows, %v", got.Len(), err)
	}
}

func TestWithCIBounds(t *testing.T) {
	var b table.Builder
	b.Add(scorefmt.ColScore, []float64{0.5, 0.75})
	b.Add(scorefmt.ColCIWidth, []float64{0.25, 0.125})
	got := WithCIBounds(b.Done())
	if lo := got.MustColumn("score_lower").([]float64); !reflect.DeepEqual(lo, []float64{0.25, 0.625}) {
		t.Errorf("score_lower = %v", lo)
	}
	if hi := got.MustColumn("score_upper").([]float64); !reflect.DeepEqual(hi, []float64{0.75, 0.875}) {
		t.Errorf("score_upper = %v", hi)
	}
}

func mustFilter(t *testing.T, raw *table.Table) *table.Table {
	t.Helper()
	f, err := Filter(raw, preds...)
	if err != nil {
		t.Fatal(err)
	}
	return f
}

func TestFirstByModel(t *testing.T) {
	var b table.Builder
	b.Add(scorefmt.ColModel, []string{"a", "b", "a", "c", "b"})
	b.Add(scorefmt.ColScore, []float64{1, 2, 3, 4, 5})
	got := FirstByModel(b.Done())
	if want := []string{"a", "b", "c"}; !reflect.DeepEqual(got.Column(scorefmt.ColModel), want) {
		t.Errorf("models: got %v, want %v", got.Column(scorefmt.ColModel), want)
	}
	if want := []float64{1, 2, 4}; !reflect.DeepEqual(got.Column(scorefmt.ColScore), want) {
		t.Errorf("scores: got %v, want %v", got.Column(scorefmt.ColScore), want)
	}
}
