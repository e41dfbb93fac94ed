// Copyright 2024 The yamlprep Authors
// SPDX-License-Identifier: Apache-2.0

package preprocessor

import (
	"path/filepath"
	"strings"

	"github.com/yamlprep/yamlprep/pkg/orderedmap"

	cmdui "github.com/yamlprep/yamlprep/pkg/cmd/ui"
)

// resolveKinds is the first resolution pass: interpolation, conditionals,
// inclusion. Replace and Remove stay put until after package merging.
const resolveKinds = KindSubstitution | KindIf | KindInclude | KindInsert | KindNoSub

// fileContext carries the per-file state of one load: the file's variable
// scope, its templates section and the inclusion chain that led to it.
// relPath names the file relative to the root document's directory and is
// what diagnostics show.
type fileContext struct {
	pre       *Preprocessor
	path      string
	relPath   string
	dir       string
	vars      *orderedmap.Map
	templates *orderedmap.Map
	chain     []string
	proc      *Processor
}

func (p *Preprocessor) newFileContext(path string, inherited *orderedmap.Map, chain []string) *fileContext {
	vars := orderedmap.NewMap()
	if inherited != nil {
		vars = inherited.ShallowCopy()
	}

	c := &fileContext{
		pre:       p,
		path:      path,
		relPath:   displayPath(path, chain[0]),
		dir:       filepath.Dir(path),
		vars:      vars,
		templates: orderedmap.NewMap(),
		chain:     chain,
	}

	// always describe the current file, inherited values notwithstanding
	c.vars.Set("__FILE__", path)
	c.vars.Set("__FILE_NAME__", filepath.Base(path))
	c.vars.Set("__FILE_EXT__", strings.TrimPrefix(filepath.Ext(path), "."))
	c.vars.Set("__DIRECTORY__", c.dir)

	proc := NewProcessor()
	proc.Handle(KindSubstitution, c.resolveSubstitution)
	proc.Handle(KindIf, c.resolveIf)
	proc.Handle(KindInclude, c.resolveInclude)
	proc.Handle(KindInsert, c.resolveInsert)
	proc.Handle(KindNoSub, c.resolveNoSub)
	proc.Handle(KindReplace, c.resolveReplace)
	proc.Handle(KindRemove, c.resolveRemove)
	c.proc = proc

	return c
}

func (c *fileContext) ui() cmdui.UI { return c.pre.ui }

// displayPath shortens path relative to the root document's directory for
// diagnostics; the full path stays in use for resolution.
func displayPath(path, rootPath string) string {
	if rel, err := filepath.Rel(filepath.Dir(rootPath), path); err == nil {
		return rel
	}
	return path
}

func (c *fileContext) resolveSubstitution(ph Placeholder) (interface{}, error) {
	return c.substitute(c.vars, ph.(*SubstitutionPlaceholder))
}

func (c *fileContext) resolveNoSub(ph Placeholder) (interface{}, error) {
	return ph.(*NoSubPlaceholder).val, nil
}

func (c *fileContext) resolveRemove(Placeholder) (interface{}, error) {
	return RemovalSignal, nil
}

// resolveReplace unwraps a fully pre-resolved !replace subtree. Merge keys
// inside it missed the document-wide merge pass, so they are settled here.
func (c *fileContext) resolveReplace(ph Placeholder) (interface{}, error) {
	return ResolveMergeKeys(ph.(*ReplacePlaceholder).Value(), c.ui()), nil
}
