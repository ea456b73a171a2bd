// Copyright 2025 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package fs provides a backend-agnostic sink for chart artifacts.
package fs

import (
	"bytes"
	"context"
	"errors"
	"sort"
	"sync"
)

// ContentType is the metadata key holding an artifact's MIME type.
// Backends that have a native content type use it instead of storing
// it as custom metadata.
const ContentType = "content-type"

// An FS stores rendered artifacts.
type FS interface {
	// NewWriter returns a Writer for a given file name.
	// When the Writer is closed, the file is stored with the
	// given metadata and the data written to the writer.
	NewWriter(ctx context.Context, name string, metadata map[string]string) (Writer, error)
}

// A Writer is an io.Writer that can also be closed with an error.
type Writer interface {
	Write(p []byte) (int, error)
	Close() error

	// CloseWithError cancels the writing of the file, removing
	// any partially written data.
	CloseWithError(error) error
}

// WriteFile stores data as name in fsys.
func WriteFile(ctx context.Context, fsys FS, name string, metadata map[string]string, data []byte) error {
	w, err := fsys.NewWriter(ctx, name, metadata)
	if err != nil {
		return err
	}
	if _, err := w.Write(data); err != nil {
		w.CloseWithError(err)
		return err
	}
	return w.Close()
}

// MemFS is an in-memory FS.
type MemFS struct {
	mu      sync.Mutex
	content map[string]*memFile
}

// NewMemFS constructs a new, empty MemFS.
func NewMemFS() *MemFS {
	return &MemFS{content: make(map[string]*memFile)}
}

// NewWriter returns a Writer for a given file name. As a side effect,
// it associates the given metadata with the file.
func (fs *MemFS) NewWriter(_ context.Context, name string, metadata map[string]string) (Writer, error) {
	meta := make(map[string]string, len(metadata))
	for k, v := range metadata {
		meta[k] = v
	}
	return &memFile{fs: fs, name: name, metadata: meta}, nil
}

// Files returns the names of the stored files, sorted.
func (fs *MemFS) Files() []string {
	fs.mu.Lock()
	defer fs.mu.Unlock()
	var files []string
	for f := range fs.content {
		files = append(files, f)
	}
	sort.Strings(files)
	return files
}

// ReadFile returns the content and metadata of a stored file.
func (fs *MemFS) ReadFile(name string) ([]byte, map[string]string, error) {
	fs.mu.Lock()
	defer fs.mu.Unlock()
	f, ok := fs.content[name]
	if !ok {
		return nil, nil, errors.New("file not found")
	}
	return f.data.Bytes(), f.metadata, nil
}

// memFile represents a file in a MemFS. While the file is being
// written, fs points to the filesystem. Close writes the file's
// content to fs and sets fs to nil.
type memFile struct {
	fs       *MemFS
	name     string
	metadata map[string]string
	data     bytes.Buffer
}

func (f *memFile) Write(p []byte) (int, error) {
	if f.fs == nil {
		return 0, errors.New("write to closed file")
	}
	return f.data.Write(p)
}

func (f *memFile) Close() error {
	if f.fs == nil {
		return errors.New("already closed")
	}
	f.fs.mu.Lock()
	defer f.fs.mu.Unlock()
	f.fs.content[f.name] = f
	f.fs = nil
	return nil
}

func (f *memFile) CloseWithError(error) error {
	f.fs = nil
	return nil
}
