// Copyright 2025 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package fetch downloads a remote data file into a local cache.
package fetch

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"time"

	"golang.org/x/net/context/ctxhttp"
)

// DefaultTimeout bounds a download when Options.Timeout is zero.
const DefaultTimeout = 30 * time.Second

// A NetworkError reports that downloading URL failed. The run
// continues without the source.
type NetworkError struct {
	URL string
	Err error
}

func (e *NetworkError) Error() string {
	return fmt.Sprintf("fetch %s: %v", e.URL, e.Err)
}

func (e *NetworkError) Unwrap() error {
	return e.Err
}

// Options configures Cached.
type Options struct {
	// URL is the remote file.
	URL string

	// Path is the cache file. Its directory is created if needed.
	Path string

	// Refresh forces a download even if Path exists.
	Refresh bool

	// Timeout bounds the download. Zero means DefaultTimeout.
	Timeout time.Duration

	// HTTPClient is used for the request. Nil means
	// http.DefaultClient.
	HTTPClient *http.Client

	// Logf, if non-nil, receives progress messages.
	Logf func(format string, args ...interface{})
}

func (o *Options) logf(format string, args ...interface{}) {
	if o.Logf != nil {
		o.Logf(format, args...)
	}
}

// Cached returns opts.Path, first downloading opts.URL into it unless
// the file already exists and opts.Refresh is false.
//
// The download is not retried. Transport failures and non-2xx
// responses are reported as *NetworkError. The cache file is replaced
// atomically, so a failed download leaves any previous copy intact.
func Cached(ctx context.Context, opts *Options) (string, error) {
	if !opts.Refresh {
		if _, err := os.Stat(opts.Path); err == nil {
			opts.logf("using cached %s\n", opts.Path)
			return opts.Path, nil
		}
	}

	timeout := opts.Timeout
	if timeout == 0 {
		timeout = DefaultTimeout
	}
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	opts.logf("downloading %s\n", opts.URL)
	resp, err := ctxhttp.Get(ctx, opts.HTTPClient, opts.URL)
	if err != nil {
		return "", &NetworkError{opts.URL, err}
	}
	defer resp.Body.Close()
	if resp.StatusCode/100 != 2 {
		return "", &NetworkError{opts.URL, fmt.Errorf("%s", resp.Status)}
	}

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", &NetworkError{opts.URL, err}
	}
	if err := writeFile(opts.Path, data); err != nil {
		return "", err
	}
	opts.logf("cached %s (%d bytes)\n", opts.Path, len(data))
	return opts.Path, nil
}

// writeFile replaces path with data through a temporary file in the
// same directory.
func writeFile(path string, data []byte) (err error) {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0777); err != nil {
		return err
	}
	f, err := os.CreateTemp(dir, "."+filepath.Base(path)+".*")
	if err != nil {
		return err
	}
	defer func() {
		if err != nil {
			f.Close()
			os.Remove(f.Name())
		}
	}()
	if _, err := f.Write(data); err != nil {
		return err
	}
	if err := f.Close(); err != nil {
		return err
	}
	return os.Rename(f.Name(), path)
}
