// Copyright 2024 The yamlprep Authors
// SPDX-License-Identifier: Apache-2.0

package preprocessor_test

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestIfThenElse(t *testing.T) {
	env := testEnv{vars: vars("enabled", true)}
	out, _ := env.process(t, `
feature: !if
  if: ${enabled}
  then: active
  else: inactive
`)
	assertEqual(t, out, "feature: active\n")

	env = testEnv{vars: vars("enabled", false)}
	out, _ = env.process(t, `
feature: !if
  if: ${enabled}
  then: active
  else: inactive
`)
	assertEqual(t, out, "feature: inactive\n")
}

func TestIfConditionAlias(t *testing.T) {
	env := testEnv{vars: vars("enabled", true)}
	out, _ := env.process(t, `
feature: !if
  condition: ${enabled}
  then: active
`)
	assertEqual(t, out, "feature: active\n")
}

func TestIfFalseWithoutElseRemovesEntry(t *testing.T) {
	out, _ := testEnv{vars: vars("enabled", false)}.process(t, `
feature: !if
  if: ${enabled}
  then: active
other: kept
`)
	assertEqual(t, out, "other: kept\n")
}

func TestIfExpressionCondition(t *testing.T) {
	env := testEnv{vars: vars("replicas", 5)}
	out, warnings := env.process(t, `
scale: !if
  if: replicas > 3
  then: large
  else: small
`)
	assertEqual(t, out, "scale: large\n")
	require.Empty(t, warnings)

	env = testEnv{vars: vars("replicas", 2)}
	out, _ = env.process(t, `
scale: !if
  if: replicas > 3
  then: large
  else: small
`)
	assertEqual(t, out, "scale: small\n")
}

func TestIfInterpolatedExpression(t *testing.T) {
	env := testEnv{vars: vars("count", 7)}
	out, _ := env.process(t, `
result: !if
  if: ${count} > 5
  then: many
  else: few
`)
	assertEqual(t, out, "result: many\n")
}

func TestIfUnparsableConditionFallsBackToTruthiness(t *testing.T) {
	out, warnings := testEnv{}.process(t, `
value: !if
  if: "not ) an expression ("
  then: kept
`)
	assertEqual(t, out, "value: kept\n")
	require.Contains(t, warnings, "Failed to evaluate condition")
}

func TestIfSequenceForm(t *testing.T) {
	input := `
size: !if
- if: ${n} > 100
  then: huge
- elseif: ${n} > 10
  then: big
- else: small
`

	out, _ := testEnv{vars: vars("n", 500)}.process(t, input)
	assertEqual(t, out, "size: huge\n")

	out, _ = testEnv{vars: vars("n", 50)}.process(t, input)
	assertEqual(t, out, "size: big\n")

	out, _ = testEnv{vars: vars("n", 5)}.process(t, input)
	assertEqual(t, out, "size: small\n")
}

// The unselected branch must never trigger inclusion: referencing a file
// that does not exist in the loser branch stays silent.
func TestIfBranchIsolation(t *testing.T) {
	env := testEnv{
		files: map[string]string{"/app/real.yaml": "loaded: true"},
		vars:  vars("use_real", true),
	}

	out, warnings := env.process(t, `
config: !if
  if: ${use_real}
  then: !include real.yaml
  else: !include missing.yaml
`)

	assertEqual(t, out, `config:
  loaded: true
`)
	require.Empty(t, warnings)
}

func TestIfMalformedWarns(t *testing.T) {
	out, warnings := testEnv{}.process(t, `
broken: !if
  then: value
other: kept
`)

	assertEqual(t, out, "other: kept\n")
	require.Contains(t, warnings, "missing 'if' key")
}
