// Copyright 2024 The yamlprep Authors
// SPDX-License-Identifier: Apache-2.0

package preprocessor_test

import (
	"fmt"
	"strings"
	"testing"

	fuzz "github.com/google/gofuzz"
	"github.com/stretchr/testify/require"

	"github.com/yamlprep/yamlprep/pkg/preprocessor"
)

// Interpolating fuzzed variable values must round-trip: whatever string a
// variable holds (sans reference syntax) comes out of a concatenating
// reference unchanged.
func TestFuzzSubstitutionRoundTrip(t *testing.T) {
	fuzzStrings := fuzz.New().Funcs(func(s *string, c fuzz.Continue) {
		// keep only characters free of reference and YAML syntax
		var b strings.Builder
		for _, r := range c.RandString() {
			if ('a' <= r && r <= 'z') || ('A' <= r && r <= 'Z') || ('0' <= r && r <= '9') {
				b.WriteRune(r)
			}
		}
		*s = b.String()
	})

	for i := 0; i < 100; i++ {
		var val string
		fuzzStrings.Fuzz(&val)
		if val == "" || preprocessor.InferScalar(val) != val {
			continue
		}

		env := testEnv{vars: vars("v", val)}
		out, _, err := env.processErr(t, "key: x${v}x\n")
		require.NoError(t, err)

		docs := strings.SplitN(out, ": ", 2)
		require.Len(t, docs, 2, "unexpected output shape for value %q", val)
		require.Equal(t, "x"+val+"x\n", docs[1], "value %q did not round-trip", val)
	}
}

// Processing output a second time must change nothing: once every
// directive is resolved, the pipeline is the identity.
func TestFuzzIdempotence(t *testing.T) {
	fuzzScalars := fuzz.New().Funcs(func(s *string, c fuzz.Continue) {
		*s = fmt.Sprintf("s%d", c.Intn(1000))
	})

	for i := 0; i < 50; i++ {
		var a, b, c, d string
		fuzzScalars.Fuzz(&a)
		fuzzScalars.Fuzz(&b)
		fuzzScalars.Fuzz(&c)
		fuzzScalars.Fuzz(&d)

		input := fmt.Sprintf(`
top: %s
nested:
  inner: %s
  list:
  - %s
  - %s
`, a, b, c, d)

		once, _, err := testEnv{}.processErr(t, input)
		require.NoError(t, err)

		twice, _, err := testEnv{}.processErr(t, once)
		require.NoError(t, err)

		assertEqual(t, twice, once)
	}
}
