// Copyright 2025 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package dbtest opens snapshot databases for tests.
package dbtest

import (
	"context"
	"database/sql"
	"flag"
	"fmt"
	"testing"

	_ "github.com/go-sql-driver/mysql"
	"github.com/google/uuid"
	"github.com/healthinprogress/benchcharts/storage/db"
	_ "github.com/healthinprogress/benchcharts/storage/db/sqlite3"
)

var mysqlDSN = flag.String("mysql", "", "run tests against the MySQL server at DSN `prefix` (such as root:@tcp(localhost:3306)/) instead of in-memory SQLite")

// NewDB returns an empty snapshot database that is closed when t
// ends. With -mysql, each call creates a scratch database on the
// server and drops it afterwards.
func NewDB(t *testing.T) *db.DB {
	t.Helper()
	driver, dsn := "sqlite3", ":memory:"
	if *mysqlDSN != "" {
		driver, dsn = "mysql", scratchMySQL(t)
	}
	d, err := db.OpenSQL(driver, dsn)
	if err != nil {
		t.Fatalf("open %s database: %v", driver, err)
	}
	t.Cleanup(func() { d.Close() })

	if n, err := d.CountRuns(context.Background()); err != nil {
		t.Fatal(err)
	} else if n != 0 {
		t.Fatalf("new database has %d runs, want 0", n)
	}
	return d
}

func scratchMySQL(t *testing.T) string {
	server, err := sql.Open("mysql", *mysqlDSN)
	if err != nil {
		t.Fatal(err)
	}
	name := "benchcharts_" + uuid.New().String()[:8]
	if _, err := server.Exec(fmt.Sprintf("CREATE DATABASE `%s`", name)); err != nil {
		server.Close()
		t.Fatal(err)
	}
	t.Cleanup(func() {
		if _, err := server.Exec(fmt.Sprintf("DROP DATABASE `%s`", name)); err != nil {
			t.Error(err)
		}
		server.Close()
	})
	return *mysqlDSN + name
}
