// Copyright 2025 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package scorefmt reads benchmark score tables and normalizes them
// to a canonical schema.
//
// Score tables come from several curated CSV sources that each name
// their columns differently. A Schema declares, per source, which
// source header holds each canonical column (model, provider, score,
// release_date, ci_width). Load checks a file's header against its
// schema, and Normalize renames and converts the columns into a typed
// table suitable for the scoreproc and frontier packages.
//
// Tables are github.com/aclements/go-gg/table values and are never
// modified in place.
package scorefmt
