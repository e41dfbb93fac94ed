// Copyright 2024 The yamlprep Authors
// SPDX-License-Identifier: Apache-2.0

package cmd

import (
	"github.com/cppforlife/cobrautil"
	"github.com/spf13/cobra"

	cmdproc "github.com/yamlprep/yamlprep/pkg/cmd/process"
	"github.com/yamlprep/yamlprep/pkg/version"
)

type YamlprepOptions struct{}

func NewDefaultYamlprepOptions() *YamlprepOptions {
	return &YamlprepOptions{}
}

func NewDefaultYamlprepCmd() *cobra.Command {
	return NewYamlprepCmd(NewDefaultYamlprepOptions())
}

func NewYamlprepCmd(o *YamlprepOptions) *cobra.Command {
	cmd := cmdproc.NewCmd(cmdproc.NewOptions())

	cmd.Use = "yamlprep"
	cmd.Aliases = nil
	cmd.Version = version.Version
	cmd.Short = "yamlprep resolves YAML configuration preprocessing directives"
	cmd.Long = `yamlprep resolves YAML configuration preprocessing directives:
${...} variable references, !include/!insert composition, !if conditionals,
merge keys and package sections.`

	// Affects children as well
	cmd.SilenceErrors = true
	cmd.SilenceUsage = true

	// Disable docs header
	cmd.DisableAutoGenTag = true

	cmd.AddCommand(NewVersionCmd(NewVersionOptions()))
	cmd.AddCommand(cmdproc.NewCmd(cmdproc.NewOptions()))

	// Reconfigure Commands
	cobrautil.VisitCommands(cmd, cobrautil.ReconfigureCmdWithSubcmd,
		cobrautil.DisallowExtraArgs, cobrautil.WrapRunEForCmd(cobrautil.ResolveFlagsForCmd))

	return cmd
}
