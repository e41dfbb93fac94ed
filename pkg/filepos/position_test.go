// Copyright 2024 The yamlprep Authors
// SPDX-License-Identifier: Apache-2.0

package filepos_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/yamlprep/yamlprep/pkg/filepos"
)

func TestPositionAsCompactString(t *testing.T) {
	require.Equal(t, "config.yaml:4", filepos.NewPositionInFile(4, "config.yaml").AsCompactString())
	require.Equal(t, "config.yaml:4:7", filepos.NewFullPosition(4, 7, "config.yaml").AsCompactString())
	require.Equal(t, "12", filepos.NewPosition(12).AsCompactString())
	require.Equal(t, "config.yaml:?", filepos.NewUnknownPositionInFile("config.yaml").AsCompactString())
}

func TestPositionUnknown(t *testing.T) {
	pos := filepos.NewUnknownPosition()
	require.False(t, pos.IsKnown())
	require.Panics(t, func() { pos.LineNum() })
}

func TestPositionDeepCopy(t *testing.T) {
	pos := filepos.NewFullPosition(2, 3, "a.yaml")
	copied := pos.DeepCopy()

	require.Equal(t, pos.AsCompactString(), copied.AsCompactString())
	require.NotSame(t, pos, copied)
}
