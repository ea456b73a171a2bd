// Copyright 2025 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package fetch

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestCached(t *testing.T) {
	hits := 0
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hits++
		w.Write([]byte("Model,mean\na,0.5\n"))
	}))
	defer ts.Close()

	path := filepath.Join(t.TempDir(), "data", "metrics.csv")
	opts := &Options{URL: ts.URL, Path: path}
	ctx := context.Background()

	for i := 0; i < 2; i++ {
		got, err := Cached(ctx, opts)
		if err != nil {
			t.Fatal(err)
		}
		if got != path {
			t.Errorf("Cached = %q, want %q", got, path)
		}
	}
	if hits != 1 {
		t.Errorf("server hit %d times, want 1 (second call should use the cache)", hits)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if string(data) != "Model,mean\na,0.5\n" {
		t.Errorf("cached data = %q", data)
	}

	opts.Refresh = true
	if _, err := Cached(ctx, opts); err != nil {
		t.Fatal(err)
	}
	if hits != 2 {
		t.Errorf("server hit %d times after refresh, want 2", hits)
	}
}

func TestCachedHTTPError(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "gone", http.StatusNotFound)
	}))
	defer ts.Close()

	dir := t.TempDir()
	path := filepath.Join(dir, "metrics.csv")
	if err := os.WriteFile(path, []byte("old"), 0666); err != nil {
		t.Fatal(err)
	}
	_, err := Cached(context.Background(), &Options{URL: ts.URL, Path: path, Refresh: true})
	var nerr *NetworkError
	if !errors.As(err, &nerr) || nerr.URL != ts.URL {
		t.Fatalf("Cached error = %v, want *NetworkError for %s", err, ts.URL)
	}
	// The previous cache survives a failed refresh.
	if data, _ := os.ReadFile(path); string(data) != "old" {
		t.Errorf("cache after failed refresh = %q, want %q", data, "old")
	}
	entries, _ := os.ReadDir(dir)
	if len(entries) != 1 {
		t.Errorf("cache dir has %d entries, want 1", len(entries))
	}
}

func TestCachedTimeout(t *testing.T) {
	release := make(chan struct{})
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-release:
		case <-r.Context().Done():
		}
	}))
	defer ts.Close()
	defer close(release)

	path := filepath.Join(t.TempDir(), "metrics.csv")
	_, err := Cached(context.Background(), &Options{URL: ts.URL, Path: path, Timeout: 50 * time.Millisecond})
	var nerr *NetworkError
	if !errors.As(err, &nerr) {
		t.Fatalf("Cached error = %v, want *NetworkError", err)
	}
	if _, err := os.Stat(path); !os.IsNotExist(err) {
		t.Errorf("cache file exists after timeout")
	}
}
