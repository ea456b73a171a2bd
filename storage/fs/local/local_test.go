// Copyright 2025 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package local

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/healthinprogress/benchcharts/storage/fs"
)

func TestNewWriter(t *testing.T) {
	ctx := context.Background()
	dir := t.TempDir()

	fsys := NewFS(dir)

	w, err := fsys.NewWriter(ctx, "charts/a.html", nil)
	if err != nil {
		t.Fatal(err)
	}
	if _, err := w.Write([]byte("<html>")); err != nil {
		t.Fatal(err)
	}
	if _, err := os.Stat(filepath.Join(dir, "charts", "a.html")); !os.IsNotExist(err) {
		t.Errorf("artifact visible before Close")
	}
	if err := w.Close(); err != nil {
		t.Fatal(err)
	}

	have, err := os.ReadFile(filepath.Join(dir, "charts", "a.html"))
	if err != nil {
		t.Fatal(err)
	}
	if string(have) != "<html>" {
		t.Errorf("file content = %q, want %q", have, "<html>")
	}
}

func TestCloseWithError(t *testing.T) {
	ctx := context.Background()
	dir := t.TempDir()

	fsys := NewFS(dir)
	w, err := fsys.NewWriter(ctx, "a.png", nil)
	if err != nil {
		t.Fatal(err)
	}
	w.Write([]byte("partial"))
	w.CloseWithError(errors.New("render failed"))

	entries, err := os.ReadDir(dir)
	if err != nil {
		t.Fatal(err)
	}
	if len(entries) != 0 {
		t.Errorf("directory has %d entries after CloseWithError, want 0", len(entries))
	}
}

func TestWriteFile(t *testing.T) {
	dir := t.TempDir()
	if err := fs.WriteFile(context.Background(), NewFS(dir), "frontier.csv", nil, []byte("a,b\n")); err != nil {
		t.Fatal(err)
	}
	have, err := os.ReadFile(filepath.Join(dir, "frontier.csv"))
	if err != nil {
		t.Fatal(err)
	}
	if string(have) != "a,b\n" {
		t.Errorf("file content = %q", have)
	}
}
