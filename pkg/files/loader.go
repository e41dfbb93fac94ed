// Copyright 2024 The yamlprep Authors
// SPDX-License-Identifier: Apache-2.0

package files

import (
	"os"
)

// Loader is the point-read interface includes are resolved through. Tests
// substitute an in-memory implementation.
type Loader interface {
	Read(path string) ([]byte, error)
}

// LocalLoader reads files from disk, caching bytes keyed by modification
// time so that a document including the same fragment many times reads it
// once. The cache is scoped to one top-level load.
type LocalLoader struct {
	cache map[string]cacheEntry
}

type cacheEntry struct {
	bytes []byte
	mtime int64
}

func NewLocalLoader() *LocalLoader {
	return &LocalLoader{cache: map[string]cacheEntry{}}
}

func (l *LocalLoader) Read(path string) ([]byte, error) {
	info, err := os.Stat(path)
	if err != nil {
		return nil, err
	}

	mtime := info.ModTime().UnixNano()
	if entry, found := l.cache[path]; found && entry.mtime == mtime {
		return entry.bytes, nil
	}

	bs, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	l.cache[path] = cacheEntry{bs, mtime}
	return bs, nil
}

// InMemoryLoader serves a fixed path->content map. Used by tests and by
// hosts that already hold fragment bytes.
type InMemoryLoader struct {
	Files map[string][]byte
}

func (l InMemoryLoader) Read(path string) ([]byte, error) {
	if bs, found := l.Files[path]; found {
		return bs, nil
	}
	return nil, &os.PathError{Op: "open", Path: path, Err: os.ErrNotExist}
}
