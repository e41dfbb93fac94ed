// Copyright 2024 The yamlprep Authors
// SPDX-License-Identifier: Apache-2.0

package preprocessor_test

import (
	"bytes"
	"strings"
	"testing"

	"github.com/k14s/difflib"
	"github.com/stretchr/testify/require"

	cmdui "github.com/yamlprep/yamlprep/pkg/cmd/ui"
	"github.com/yamlprep/yamlprep/pkg/files"
	"github.com/yamlprep/yamlprep/pkg/orderedmap"
	"github.com/yamlprep/yamlprep/pkg/preprocessor"
)

type testEnv struct {
	files map[string]string
	vars  *orderedmap.Map
}

// process runs input through the full pipeline and returns the rendered
// YAML plus everything written to stderr (warnings, debug output).
func (e testEnv) process(t *testing.T, input string) (string, string) {
	t.Helper()

	out, warnings, err := e.processErr(t, input)
	require.NoError(t, err)
	return out, warnings
}

func (e testEnv) processErr(t *testing.T, input string) (string, string, error) {
	t.Helper()

	loader := files.InMemoryLoader{Files: map[string][]byte{}}
	for path, content := range e.files {
		loader.Files[path] = []byte(content)
	}

	stdout, stderr := bytes.NewBufferString(""), bytes.NewBufferString("")
	ui := cmdui.NewCustomWriterTTY(false, stdout, stderr)

	pre := preprocessor.New(loader, ui, preprocessor.Options{Vars: e.vars})
	docs, err := pre.ProcessBytes([]byte(input), "/app/main.yaml")
	if err != nil {
		return "", stderr.String(), err
	}

	rendered := bytes.NewBufferString("")
	err = preprocessor.WriteYAML(rendered, docs)
	if err != nil {
		return "", stderr.String(), err
	}
	return rendered.String(), stderr.String(), nil
}

func vars(pairs ...interface{}) *orderedmap.Map {
	m := orderedmap.NewMap()
	for i := 0; i+1 < len(pairs); i += 2 {
		m.Set(pairs[i], pairs[i+1])
	}
	return m
}

func assertEqual(t *testing.T, actual, expected string) {
	t.Helper()
	if actual != expected {
		t.Fatalf("Not equal; diff expected...actual:\n%v\n",
			difflib.PPDiff(strings.Split(expected, "\n"), strings.Split(actual, "\n")))
	}
}

func TestPassthrough(t *testing.T) {
	out, warnings := testEnv{}.process(t, `
server:
  host: localhost
  port: 8080
items:
- 1
- two
- true
`)

	assertEqual(t, out, `server:
  host: localhost
  port: 8080
items:
  - 1
  - two
  - true
`)
	require.Empty(t, warnings)
}

func TestScalarDocument(t *testing.T) {
	env := testEnv{vars: vars("greeting", "hello")}
	out, _ := env.process(t, `${greeting}`)
	assertEqual(t, out, "hello\n")
}

func TestVariablesSection(t *testing.T) {
	out, warnings := testEnv{}.process(t, `
variables:
  host: localhost
  port: 8080
  url: http://${host}:${port}/
endpoint: ${url}
`)

	assertEqual(t, out, `endpoint: http://localhost:8080/
`)
	require.Empty(t, warnings)
}

func TestVariablesInheritedWin(t *testing.T) {
	env := testEnv{vars: vars("host", "example.com")}
	out, _ := env.process(t, `
variables:
  host: localhost
endpoint: ${host}
`)

	assertEqual(t, out, `endpoint: example.com
`)
}

func TestSpecialFileVariables(t *testing.T) {
	out, _ := testEnv{}.process(t, `
file: ${__FILE_NAME__}
ext: ${__FILE_EXT__}
`)

	assertEqual(t, out, `file: main.yaml
ext: yaml
`)
}

func TestHiddenKeysRemoved(t *testing.T) {
	out, _ := testEnv{}.process(t, `
.defaults: &defaults
  timeout: 30
server:
  <<: *defaults
  .internal: true
  host: localhost
`)

	assertEqual(t, out, `server:
  host: localhost
  timeout: 30
`)
}

func TestLoadDisabled(t *testing.T) {
	_, _, err := testEnv{}.processErr(t, `
preprocessor:
  load: false
key: value
`)

	require.Error(t, err)
	require.Contains(t, err.Error(), "disabled")
}

func TestMinVersionSatisfied(t *testing.T) {
	out, _ := testEnv{}.process(t, `
preprocessor:
  min_version: 0.1.0
key: value
`)

	assertEqual(t, out, `key: value
`)
}

func TestMinVersionTooNew(t *testing.T) {
	_, _, err := testEnv{}.processErr(t, `
preprocessor:
  min_version: 999.0.0
key: value
`)

	require.Error(t, err)
	require.Contains(t, err.Error(), "requires preprocessor version")
}

func TestMultipleDocuments(t *testing.T) {
	env := testEnv{vars: vars("name", "alpha")}
	out, _ := env.process(t, `first: ${name}
---
second: ${name}
`)

	assertEqual(t, out, `first: alpha
---
second: alpha
`)
}

func TestNullScalarsBecomeEmptyStrings(t *testing.T) {
	out, _ := testEnv{}.process(t, `
explicit: null
empty:
`)

	assertEqual(t, out, `explicit: ""
empty: ""
`)
}

func TestListDropsRemovedElements(t *testing.T) {
	out, _ := testEnv{}.process(t, `
items:
- 1
- !if
  if: false
  then: skipped
- !remove ""
- 2
`)

	assertEqual(t, out, `items:
  - 1
  - 2
`)
}
