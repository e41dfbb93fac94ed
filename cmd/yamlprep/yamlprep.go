// Copyright 2024 The yamlprep Authors
// SPDX-License-Identifier: Apache-2.0

package main

import (
	"fmt"
	"os"

	uierrs "github.com/cppforlife/go-cli-ui/errors"

	"github.com/yamlprep/yamlprep/pkg/cmd"
)

func main() {
	command := cmd.NewDefaultYamlprepCmd()

	err := command.Execute()
	if err != nil {
		fmt.Fprintf(os.Stderr, "yamlprep: Error: %s\n", uierrs.NewMultiLineError(err))
		os.Exit(1)
	}
}
