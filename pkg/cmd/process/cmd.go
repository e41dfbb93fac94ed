// Copyright 2024 The yamlprep Authors
// SPDX-License-Identifier: Apache-2.0

package process

import (
	"fmt"
	"io"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/yamlprep/yamlprep/pkg/files"
	"github.com/yamlprep/yamlprep/pkg/preprocessor"

	cmdui "github.com/yamlprep/yamlprep/pkg/cmd/ui"
)

type Options struct {
	Debug  bool
	Files  []string
	Output string
	Watch  bool

	VarFlags VarFlags
}

func NewOptions() *Options {
	return &Options{Output: "yaml"}
}

func NewCmd(o *Options) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "process",
		Aliases: []string{"p"},
		Short:   "Process YAML configuration files",
		RunE:    func(_ *cobra.Command, _ []string) error { return o.Run() },
	}
	cmd.Flags().StringSliceVarP(&o.Files, "file", "f", nil,
		"File to process (can be specified multiple times, use '-' for stdin)")
	cmd.Flags().StringVarP(&o.Output, "output", "o", "yaml", "Output format (yaml or json)")
	cmd.Flags().BoolVar(&o.Debug, "debug", false, "Enable debug output")
	cmd.Flags().BoolVarP(&o.Watch, "watch", "w", false, "Watch input files and reprocess on change")
	o.VarFlags.Set(cmd)
	return cmd
}

func (o *Options) Run() error {
	ui := cmdui.NewTTY(o.Debug)
	t1 := time.Now()

	defer func() {
		ui.Debugf("total: %s\n", time.Since(t1))
	}()

	if len(o.Files) == 0 {
		return fmt.Errorf("Expected at least one input file (specify via -f)")
	}

	if o.Watch {
		return o.watch(ui)
	}
	return o.processOnce(ui, os.Stdout, nil)
}

func (o *Options) processOnce(ui cmdui.UI, out io.Writer, onInclude func(path string)) error {
	vars, err := o.VarFlags.Values()
	if err != nil {
		return err
	}

	pre := preprocessor.New(files.NewLocalLoader(), ui,
		preprocessor.Options{Vars: vars, OnInclude: onInclude})

	var docs []interface{}
	for _, path := range o.Files {
		var src files.Source
		if path == "-" {
			src = files.NewStdinSource()
		} else {
			src = files.NewLocalSource(path, "")
		}

		result, err := pre.ProcessSource(src)
		if err != nil {
			return err
		}
		docs = append(docs, result...)
	}

	switch o.Output {
	case "yaml":
		return preprocessor.WriteYAML(out, docs)
	case "json":
		return preprocessor.WriteJSON(out, docs)
	default:
		return fmt.Errorf("Unknown output format '%s' (expected 'yaml' or 'json')", o.Output)
	}
}
