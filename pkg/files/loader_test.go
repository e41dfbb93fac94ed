// Copyright 2024 The yamlprep Authors
// SPDX-License-Identifier: Apache-2.0

package files_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/yamlprep/yamlprep/pkg/files"
)

func TestLocalLoaderReadsAndCaches(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("a: 1\n"), 0600))

	loader := files.NewLocalLoader()

	bs, err := loader.Read(path)
	require.NoError(t, err)
	require.Equal(t, "a: 1\n", string(bs))

	// same mtime serves the cached bytes
	again, err := loader.Read(path)
	require.NoError(t, err)
	require.Equal(t, string(bs), string(again))
}

func TestLocalLoaderMissingFile(t *testing.T) {
	loader := files.NewLocalLoader()

	_, err := loader.Read(filepath.Join(t.TempDir(), "nope.yaml"))
	require.Error(t, err)
	require.True(t, os.IsNotExist(err))
}

func TestInMemoryLoader(t *testing.T) {
	loader := files.InMemoryLoader{Files: map[string][]byte{
		"/app/a.yaml": []byte("a: 1"),
	}}

	bs, err := loader.Read("/app/a.yaml")
	require.NoError(t, err)
	require.Equal(t, "a: 1", string(bs))

	_, err = loader.Read("/app/missing.yaml")
	require.Error(t, err)
	require.True(t, os.IsNotExist(err))
}

func TestLocalSourceRelativePath(t *testing.T) {
	src := files.NewLocalSource("/work/configs/app.yaml", "/work")

	path, err := src.RelativePath()
	require.NoError(t, err)
	require.Equal(t, "configs/app.yaml", path)
}

func TestLocalSourceRelativePathWithoutDirKeepsFullPath(t *testing.T) {
	src := files.NewLocalSource("/work/configs/app.yaml", "")

	path, err := src.RelativePath()
	require.NoError(t, err)
	require.Equal(t, "/work/configs/app.yaml", path)
}

func TestBytesSource(t *testing.T) {
	src := files.NewBytesSource("inline.yaml", []byte("x: 1"))

	bs, err := src.Bytes()
	require.NoError(t, err)
	require.Equal(t, "x: 1", string(bs))

	path, err := src.RelativePath()
	require.NoError(t, err)
	require.Equal(t, "inline.yaml", path)
}
