// Copyright 2025 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Benchcharts builds charts of healthcare AI benchmark scores against
// model release dates, and of each benchmark's state-of-the-art
// frontier over time.
//
// Usage:
//
//	benchcharts [flags]
//
// Benchcharts reads the score files named by the benchmark catalog
// from the -data directory, downloading remote sources on first use.
// For each chart theme it writes a PNG and an interactive HTML chart
// per benchmark, a combined frontier chart, and a tabbed page with
// every benchmark. It also writes the frontier points as CSV.
//
// Artifacts go to the -out directory, or to a Cloud Storage bucket if
// -gcs is given. With -db, the loaded scores and frontiers replace the
// snapshot stored in that database.
//
// Sources that fail to load are reported and skipped. Benchcharts
// exits with status 1 only if no source loads.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log"
	"os"
	"path/filepath"

	"github.com/healthinprogress/benchcharts/catalog"
	"github.com/healthinprogress/benchcharts/chart"
	"github.com/healthinprogress/benchcharts/fetch"
	"github.com/healthinprogress/benchcharts/internal/run"
	"github.com/healthinprogress/benchcharts/scorefmt"
	"github.com/healthinprogress/benchcharts/storage/db"
	_ "github.com/healthinprogress/benchcharts/storage/db/sqlite3"
	artifacts "github.com/healthinprogress/benchcharts/storage/fs"
	"github.com/healthinprogress/benchcharts/storage/fs/gcs"
	"github.com/healthinprogress/benchcharts/storage/fs/local"
	"google.golang.org/api/option"

	_ "github.com/go-sql-driver/mysql"
)

var (
	flagData      = flag.String("data", "data", "read score files from `dir`")
	flagOut       = flag.String("out", ".", "write charts to `dir`")
	flagConfig    = flag.String("config", "", "load the benchmark catalog from `file` instead of the built-in one")
	flagRefresh   = flag.Bool("refresh", false, "download remote sources even if cached")
	flagTimeout   = flag.Duration("timeout", fetch.DefaultTimeout, "download timeout")
	flagDB        = flag.String("db", "", "store a snapshot of the run in the database at `dsn`")
	flagDBDriver  = flag.String("dbdriver", "sqlite3", "database `driver` for -db (sqlite3 or mysql)")
	flagGCS       = flag.String("gcs", "", "write charts to Cloud Storage `bucket` instead of -out")
	flagGCSPrefix = flag.String("gcs-prefix", "", "object name `prefix` for -gcs")
	flagGCSCreds  = flag.String("gcs-credentials", "", "service account credentials `file` for -gcs")
	flagVerbose   = flag.Bool("v", false, "print verbose log messages")
)

func usage() {
	fmt.Fprintf(os.Stderr, `Usage of benchcharts:
	benchcharts [flags]
`)
	flag.PrintDefaults()
	os.Exit(2)
}

func main() {
	log.SetPrefix("benchcharts: ")
	log.SetFlags(0)
	flag.Usage = usage
	flag.Parse()
	if flag.NArg() != 0 {
		flag.Usage()
	}

	var logf func(format string, args ...interface{})
	if *flagVerbose {
		logf = log.Printf
	}

	ctx := context.Background()

	cat, err := loadCatalog(logf)
	if err != nil {
		log.Fatal(err)
	}

	res, err := run.Load(ctx, cat, &run.Options{
		DataDir: *flagData,
		Refresh: *flagRefresh,
		Timeout: *flagTimeout,
		Logf:    logf,
	})
	if err != nil {
		log.Fatal(err)
	}
	if err := res.WriteSummary(os.Stdout); err != nil {
		log.Fatal(err)
	}
	if !res.OK() {
		log.Fatal("no benchmark data loaded")
	}

	fsys, err := openFS(ctx)
	if err != nil {
		log.Fatal(err)
	}
	var bs []*chart.Benchmark
	for _, ds := range res.Datasets {
		bs = append(bs, &chart.Benchmark{Benchmark: ds.Benchmark, Records: ds.Records, Frontier: ds.Frontier})
	}
	r := &chart.Renderer{Catalog: cat, FS: fsys, Logf: logf}
	written, err := r.Render(ctx, bs)
	if err != nil {
		log.Fatal(err)
	}
	log.Printf("wrote %d files", len(written))

	if *flagDB != "" {
		if err := saveSnapshot(ctx, res); err != nil {
			log.Fatal(err)
		}
	}
}

// loadCatalog returns the catalog selected by -config, with the
// overrides of the metadata file in -data applied.
func loadCatalog(logf func(string, ...interface{})) (*catalog.Catalog, error) {
	cat := catalog.Default()
	if *flagConfig != "" {
		var err error
		if cat, err = catalog.LoadFile(*flagConfig); err != nil {
			return nil, err
		}
	}

	f, err := scorefmt.OpenFile(filepath.Join(*flagData, catalog.MetadataFile))
	var mf *scorefmt.MissingFileError
	if errors.As(err, &mf) {
		return cat, nil
	} else if err != nil {
		return nil, err
	}
	defer f.Close()
	cat, unknown, err := cat.ApplyMetadata(f)
	if err != nil {
		return nil, err
	}
	for _, id := range unknown {
		log.Printf("%s: unknown benchmark %q", f.Name(), id)
	}
	if logf != nil {
		logf("applied %s", f.Name())
	}
	return cat, nil
}

func openFS(ctx context.Context) (artifacts.FS, error) {
	if *flagGCS == "" {
		return local.NewFS(*flagOut), nil
	}
	var opts []option.ClientOption
	if *flagGCSCreds != "" {
		opts = append(opts, option.WithCredentialsFile(*flagGCSCreds))
	}
	return gcs.NewFS(ctx, *flagGCS, *flagGCSPrefix, opts...)
}

func saveSnapshot(ctx context.Context, res *run.Result) error {
	d, err := db.OpenSQL(*flagDBDriver, *flagDB)
	if err != nil {
		return fmt.Errorf("opening database: %w", err)
	}
	defer d.Close()

	snap := &db.Snapshot{}
	for _, ds := range res.Datasets {
		snap.Benchmarks = append(snap.Benchmarks, db.Benchmark{
			ID:       ds.Benchmark.ID,
			Records:  ds.Records,
			Frontier: ds.Frontier,
		})
	}
	id, err := d.ReplaceSnapshot(ctx, snap)
	if err != nil {
		return fmt.Errorf("saving snapshot: %w", err)
	}
	log.Printf("saved run %s", id)
	return nil
}
