// Copyright 2025 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package db stores a snapshot of the latest run's normalized records
// and frontier points in a SQL database, for consumers that prefer
// querying over parsing the rendered artifacts.
package db

import (
	"bytes"
	"context"
	"database/sql"
	"fmt"
	"math"
	"strings"
	"text/template"
	"time"

	"github.com/google/uuid"
	"github.com/healthinprogress/benchcharts/frontier"
	"github.com/healthinprogress/benchcharts/scorefmt"
)

const dateLayout = "2006-01-02"

// DB is a high-level interface to the snapshot database. It's safe
// for concurrent use by multiple goroutines.
type DB struct {
	sql *sql.DB // underlying database connection
	// prepared statements
	insertRun      *sql.Stmt
	insertRecord   *sql.Stmt
	insertFrontier *sql.Stmt
}

// OpenSQL creates a DB backed by a SQL database. The parameters are
// the same as the parameters for sql.Open. Only mysql and sqlite3 are
// explicitly supported; other database engines will receive MySQL
// query syntax which may or may not be compatible.
func OpenSQL(driverName, dataSourceName string) (*DB, error) {
	db, err := sql.Open(driverName, dataSourceName)
	if err != nil {
		return nil, err
	}
	if hook := openHooks[driverName]; hook != nil {
		if err := hook(db); err != nil {
			db.Close()
			return nil, err
		}
	}
	d := &DB{sql: db}
	if err := d.createTables(driverName); err != nil {
		db.Close()
		return nil, err
	}
	if err := d.prepareStatements(); err != nil {
		db.Close()
		return nil, err
	}
	return d, nil
}

var openHooks = make(map[string]func(*sql.DB) error)

// RegisterOpenHook registers a hook to be called after opening a connection to driverName.
// This is used by the sqlite3 package to register a ConnectHook.
// It must be called from an init function.
func RegisterOpenHook(driverName string, hook func(*sql.DB) error) {
	openHooks[driverName] = hook
}

// createTmpl is the template used to prepare the CREATE statements
// for the database. It is evaluated with . as a map containing one
// entry whose key is the driver name.
var createTmpl = template.Must(template.New("create").Parse(`
CREATE TABLE IF NOT EXISTS Runs (
	RunID VARCHAR(36) PRIMARY KEY,
	Created VARCHAR(40) NOT NULL
);
CREATE TABLE IF NOT EXISTS Records (
	RunID VARCHAR(36),
	Benchmark VARCHAR(64),
	Model VARCHAR(255),
	Provider VARCHAR(255),
	Score DOUBLE,
	CIWidth DOUBLE,
	ReleaseDate VARCHAR(10),
	PRIMARY KEY (RunID, Benchmark, Model),
	FOREIGN KEY (RunID) REFERENCES Runs(RunID) ON UPDATE CASCADE ON DELETE CASCADE
);
CREATE TABLE IF NOT EXISTS FrontierPoints (
	RunID VARCHAR(36),
	Benchmark VARCHAR(64),
	Seq INTEGER,
	Model VARCHAR(255),
	ReleaseDate VARCHAR(10),
	Score DOUBLE,
	ScorePct DOUBLE,
	PRIMARY KEY (RunID, Benchmark, Seq),
{{if not .sqlite3}}
	Index (Benchmark),
{{end}}
	FOREIGN KEY (RunID) REFERENCES Runs(RunID) ON UPDATE CASCADE ON DELETE CASCADE
);
{{if .sqlite3}}
CREATE INDEX IF NOT EXISTS FrontierPointsBenchmark ON FrontierPoints(Benchmark);
{{end}}
`))

// createTables creates any missing tables on the connection in
// db.sql. driverName is the same driver name passed to sql.Open and
// is used to select the correct syntax.
func (db *DB) createTables(driverName string) error {
	var buf bytes.Buffer
	if err := createTmpl.Execute(&buf, map[string]bool{driverName: true}); err != nil {
		return err
	}
	for _, q := range strings.Split(buf.String(), ";") {
		if strings.TrimSpace(q) == "" {
			continue
		}
		if _, err := db.sql.Exec(q); err != nil {
			return fmt.Errorf("create table: %v", err)
		}
	}
	return nil
}

// prepareStatements calls db.sql.Prepare on reusable SQL statements.
func (db *DB) prepareStatements() error {
	var err error
	db.insertRun, err = db.sql.Prepare("INSERT INTO Runs(RunID, Created) VALUES (?, ?)")
	if err != nil {
		return err
	}
	db.insertRecord, err = db.sql.Prepare("INSERT INTO Records(RunID, Benchmark, Model, Provider, Score, CIWidth, ReleaseDate) VALUES (?, ?, ?, ?, ?, ?, ?)")
	if err != nil {
		return err
	}
	db.insertFrontier, err = db.sql.Prepare("INSERT INTO FrontierPoints(RunID, Benchmark, Seq, Model, ReleaseDate, Score, ScorePct) VALUES (?, ?, ?, ?, ?, ?, ?)")
	if err != nil {
		return err
	}
	return nil
}

// A Snapshot is the data produced by one run.
type Snapshot struct {
	// ID identifies the run. If empty, ReplaceSnapshot assigns a
	// random UUID.
	ID string

	// Created is when the run happened. If zero, ReplaceSnapshot
	// uses the current time.
	Created time.Time

	Benchmarks []Benchmark
}

// Benchmark is one benchmark's share of a Snapshot.
type Benchmark struct {
	ID       string
	Records  []scorefmt.Record
	Frontier []frontier.Point
}

// now is a hook for testing
var now = time.Now

// ReplaceSnapshot deletes any stored run and stores s in its place,
// in a single transaction. It returns the ID of the stored run.
func (db *DB) ReplaceSnapshot(ctx context.Context, s *Snapshot) (id string, err error) {
	id = s.ID
	if id == "" {
		id = uuid.NewString()
	}
	created := s.Created
	if created.IsZero() {
		created = now()
	}

	tx, err := db.sql.BeginTx(ctx, nil)
	if err != nil {
		return "", err
	}
	defer func() {
		if err != nil {
			tx.Rollback()
			id = ""
		} else {
			err = tx.Commit()
		}
	}()

	// Delete children explicitly; MySQL and SQLite differ in
	// whether foreign keys cascade by default.
	for _, table := range []string{"FrontierPoints", "Records", "Runs"} {
		if _, err := tx.ExecContext(ctx, "DELETE FROM "+table); err != nil {
			return "", err
		}
	}
	if _, err := tx.StmtContext(ctx, db.insertRun).ExecContext(ctx, id, created.UTC().Format(time.RFC3339)); err != nil {
		return "", err
	}
	insertRecord := tx.StmtContext(ctx, db.insertRecord)
	insertFrontier := tx.StmtContext(ctx, db.insertFrontier)
	for _, b := range s.Benchmarks {
		for _, r := range b.Records {
			ci := sql.NullFloat64{Float64: r.CIWidth, Valid: !math.IsNaN(r.CIWidth)}
			if _, err := insertRecord.ExecContext(ctx, id, b.ID, r.Model, r.Provider, r.Score, ci, r.ReleaseDate.Format(dateLayout)); err != nil {
				return "", fmt.Errorf("insert %s record %s: %w", b.ID, r.Model, err)
			}
		}
		for i, p := range b.Frontier {
			if _, err := insertFrontier.ExecContext(ctx, id, b.ID, i, p.Model, p.ReleaseDate.Format(dateLayout), p.Score, p.ScorePct); err != nil {
				return "", fmt.Errorf("insert %s frontier point %d: %w", b.ID, i, err)
			}
		}
	}
	return id, nil
}

// LatestRun returns the ID and creation time of the stored run. If no
// run is stored, it returns sql.ErrNoRows.
func (db *DB) LatestRun(ctx context.Context) (string, time.Time, error) {
	var id, created string
	if err := db.sql.QueryRowContext(ctx, "SELECT RunID, Created FROM Runs ORDER BY Created DESC LIMIT 1").Scan(&id, &created); err != nil {
		return "", time.Time{}, err
	}
	t, err := time.Parse(time.RFC3339, created)
	if err != nil {
		return "", time.Time{}, err
	}
	return id, t, nil
}

// CountRuns returns the number of stored runs, which is 0 or 1.
func (db *DB) CountRuns(ctx context.Context) (count int, err error) {
	err = db.sql.QueryRowContext(ctx, "SELECT COUNT(*) FROM Runs").Scan(&count)
	return
}

// Records returns the stored records of benchmark, by descending
// score.
func (db *DB) Records(ctx context.Context, benchmark string) ([]scorefmt.Record, error) {
	rows, err := db.sql.QueryContext(ctx, "SELECT Model, Provider, Score, CIWidth, ReleaseDate FROM Records WHERE Benchmark = ? ORDER BY Score DESC, Model", benchmark)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var out []scorefmt.Record
	for rows.Next() {
		var r scorefmt.Record
		var ci sql.NullFloat64
		var date string
		if err := rows.Scan(&r.Model, &r.Provider, &r.Score, &ci, &date); err != nil {
			return nil, err
		}
		r.CIWidth = math.NaN()
		if ci.Valid {
			r.CIWidth = ci.Float64
		}
		if r.ReleaseDate, err = time.Parse(dateLayout, date); err != nil {
			return nil, err
		}
		out = append(out, r)
	}
	return out, rows.Err()
}

// Frontier returns the stored frontier of benchmark, in order.
func (db *DB) Frontier(ctx context.Context, benchmark string) ([]frontier.Point, error) {
	rows, err := db.sql.QueryContext(ctx, "SELECT Model, ReleaseDate, Score, ScorePct FROM FrontierPoints WHERE Benchmark = ? ORDER BY Seq", benchmark)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var out []frontier.Point
	for rows.Next() {
		p := frontier.Point{Benchmark: benchmark}
		var date string
		if err := rows.Scan(&p.Model, &date, &p.Score, &p.ScorePct); err != nil {
			return nil, err
		}
		if p.ReleaseDate, err = time.Parse(dateLayout, date); err != nil {
			return nil, err
		}
		out = append(out, p)
	}
	return out, rows.Err()
}

// Close closes the database connections, releasing any open resources.
func (db *DB) Close() error {
	for _, stmt := range []*sql.Stmt{db.insertRun, db.insertRecord, db.insertFrontier} {
		if err := stmt.Close(); err != nil {
			return err
		}
	}
	return db.sql.Close()
}
