// Copyright 2025 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package gcs implements the fs.FS interface using Google Cloud
// Storage.
package gcs

import (
	"context"
	"path"

	"cloud.google.com/go/storage"
	"github.com/healthinprogress/benchcharts/storage/fs"
	"google.golang.org/api/option"
)

// impl is an fs.FS backed by Google Cloud Storage.
type impl struct {
	bucket *storage.BucketHandle
	prefix string
}

// NewFS constructs an FS that writes to the provided bucket, with
// every object name under prefix. On AppEngine and GCE the client
// uses the default credentials; elsewhere pass option.WithCredentialsFile.
func NewFS(ctx context.Context, bucketName, prefix string, opts ...option.ClientOption) (fs.FS, error) {
	client, err := storage.NewClient(ctx, opts...)
	if err != nil {
		return nil, err
	}
	return &impl{client.Bucket(bucketName), prefix}, nil
}

// NewWriter returns a Writer for the object prefix/name. The content
// type is taken from the "content-type" metadata key if present; the
// remaining metadata is stored as custom object metadata.
func (impl *impl) NewWriter(ctx context.Context, name string, metadata map[string]string) (fs.Writer, error) {
	w := impl.bucket.Object(path.Join(impl.prefix, name)).NewWriter(ctx)
	meta := make(map[string]string, len(metadata))
	for k, v := range metadata {
		if k == fs.ContentType {
			w.ContentType = v
			continue
		}
		meta[k] = v
	}
	w.Metadata = meta
	return w, nil
}
