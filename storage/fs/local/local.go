// Copyright 2025 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package local implements the fs.FS interface using a local
// directory.
package local

import (
	"context"
	"os"
	"path/filepath"

	"github.com/healthinprogress/benchcharts/storage/fs"
)

// impl is an fs.FS backed by a directory.
type impl struct {
	dir string
}

// NewFS constructs an FS that writes to the provided directory.
// Metadata is not stored.
func NewFS(dir string) fs.FS {
	return &impl{dir}
}

// NewWriter creates a file in a temporary name and returns a writer
// for it. Close renames the file to name, so readers never see a
// partial artifact.
func (fsys *impl) NewWriter(_ context.Context, name string, _ map[string]string) (fs.Writer, error) {
	path := filepath.Join(fsys.dir, filepath.FromSlash(name))
	if err := os.MkdirAll(filepath.Dir(path), 0777); err != nil {
		return nil, err
	}
	f, err := os.CreateTemp(filepath.Dir(path), "."+filepath.Base(path)+".*")
	if err != nil {
		return nil, err
	}
	return &wrapper{f, path}, nil
}

type wrapper struct {
	*os.File
	path string
}

// Close closes the file and moves it into place.
func (w *wrapper) Close() error {
	if err := w.File.Close(); err != nil {
		os.Remove(w.File.Name())
		return err
	}
	return os.Rename(w.File.Name(), w.path)
}

// CloseWithError closes the file and attempts to unlink it.
func (w *wrapper) CloseWithError(error) error {
	err := w.File.Close()
	os.Remove(w.File.Name())
	return err
}
