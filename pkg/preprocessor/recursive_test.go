// Copyright 2024 The yamlprep Authors
// SPDX-License-Identifier: Apache-2.0

package preprocessor_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/yamlprep/yamlprep/pkg/orderedmap"
	"github.com/yamlprep/yamlprep/pkg/preprocessor"
)

func TestProcessKeepsUnchangedMapInstance(t *testing.T) {
	inner := orderedmap.NewMap()
	inner.Set("c", 1)
	m := orderedmap.NewMap()
	m.Set("a", "plain")
	m.Set("b", inner)
	result, err := preprocessor.NewProcessor().Process(m, preprocessor.KindSubstitution)
	require.NoError(t, err)
	require.Same(t, m, result.(*orderedmap.Map))
}

func TestProcessCopiesOnlyChangedBranches(t *testing.T) {
	docs, err := preprocessor.ParseAll([]byte(`
changed: ${x}
untouched:
  c: 1
`), "test.yaml")
	require.NoError(t, err)
	require.Len(t, docs, 1)

	root := docs[0].(*orderedmap.Map)
	untouchedBefore, _ := root.Get("untouched")

	proc := preprocessor.NewProcessor()
	proc.Handle(preprocessor.KindSubstitution, func(preprocessor.Placeholder) (interface{}, error) {
		return "resolved", nil
	})

	result, err := proc.Process(root, preprocessor.KindSubstitution)
	require.NoError(t, err)

	resultMap := result.(*orderedmap.Map)
	require.NotSame(t, root, resultMap)

	changed, _ := resultMap.Get("changed")
	require.Equal(t, "resolved", changed)

	untouchedAfter, _ := resultMap.Get("untouched")
	require.Same(t, untouchedBefore.(*orderedmap.Map), untouchedAfter.(*orderedmap.Map))
}
