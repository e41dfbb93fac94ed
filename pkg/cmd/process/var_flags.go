// Copyright 2024 The yamlprep Authors
// SPDX-License-Identifier: Apache-2.0

package process

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/yamlprep/yamlprep/pkg/orderedmap"
	"github.com/yamlprep/yamlprep/pkg/preprocessor"
)

// VarFlags collects variables handed to the preprocessor from the command
// line: files first, then environment, then explicit name=value pairs,
// later sources overriding earlier ones.
type VarFlags struct {
	KVs       []string
	Files     []string
	EnvPrefix string
}

func (f *VarFlags) Set(cmd *cobra.Command) {
	cmd.Flags().StringArrayVarP(&f.KVs, "var", "v", nil, "Set variable (format: name=value)")
	cmd.Flags().StringArrayVar(&f.Files, "vars-file", nil, "Read variables from a YAML or TOML file")
	cmd.Flags().StringVar(&f.EnvPrefix, "env-prefix", "",
		"Import environment variables with the given prefix (PREFIX_name=value sets name)")
}

func (f VarFlags) Values() (*orderedmap.Map, error) {
	result := orderedmap.NewMap()

	for _, file := range f.Files {
		vars, err := f.fileValues(file)
		if err != nil {
			return nil, err
		}
		vars.Iterate(func(k, v interface{}) {
			result.Set(k, v)
		})
	}

	if f.EnvPrefix != "" {
		prefix := f.EnvPrefix + "_"
		for _, kv := range os.Environ() {
			pieces := strings.SplitN(kv, "=", 2)
			if len(pieces) != 2 || !strings.HasPrefix(pieces[0], prefix) {
				continue
			}
			result.Set(strings.TrimPrefix(pieces[0], prefix), preprocessor.InferScalar(pieces[1]))
		}
	}

	for _, kv := range f.KVs {
		pieces := strings.SplitN(kv, "=", 2)
		if len(pieces) != 2 {
			return nil, fmt.Errorf("Expected var '%s' to be in format name=value", kv)
		}
		result.Set(pieces[0], preprocessor.InferScalar(pieces[1]))
	}

	return result, nil
}

func (f VarFlags) fileValues(path string) (*orderedmap.Map, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("Reading vars file '%s': %s", path, err)
	}

	var plain map[string]interface{}
	switch filepath.Ext(path) {
	case ".toml":
		if err := toml.Unmarshal(data, &plain); err != nil {
			return nil, fmt.Errorf("Parsing vars file '%s': %s", path, err)
		}
	default:
		if err := yaml.Unmarshal(data, &plain); err != nil {
			return nil, fmt.Errorf("Parsing vars file '%s': %s", path, err)
		}
	}

	vars, ok := orderedmap.Conversion{Object: plain}.FromUnorderedMaps().(*orderedmap.Map)
	if !ok {
		return nil, fmt.Errorf("Expected vars file '%s' to hold a mapping", path)
	}
	return vars, nil
}
