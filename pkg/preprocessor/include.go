// Copyright 2024 The yamlprep Authors
// SPDX-License-Identifier: Apache-2.0

package preprocessor

import (
	"path/filepath"
	"strings"

	"github.com/yamlprep/yamlprep/pkg/orderedmap"
)

// resolveInclude loads another file into the current position. Soft
// failures warn and degrade: malformed arguments become an empty mapping,
// a missing file or circular inclusion resolves to nothing, removing the
// surrounding entry.
func (c *fileContext) resolveInclude(ph Placeholder) (interface{}, error) {
	inc := ph.(*IncludePlaceholder)

	name, argVars, ok := c.parseCallArgs(inc.Value(), "file", "!include", inc.Pos())
	if !ok {
		return orderedmap.NewMap(), nil
	}

	path := name
	if !filepath.IsAbs(path) {
		path = filepath.Join(c.dir, path)
	}
	if abs, err := filepath.Abs(path); err == nil {
		path = abs
	}

	for _, ancestor := range c.chain {
		if ancestor == path {
			c.ui().Warnf("Circular inclusion detected: %s\n",
				strings.Join(append(append([]string{}, c.chain...), path), " -> "))
			return nil, nil
		}
	}
	if len(c.chain) > MaxIncludeDepth {
		c.ui().Warnf("Not including '%s'%s: inclusion depth exceeds %d\n",
			name, atPos(inc.Pos()), MaxIncludeDepth)
		return nil, nil
	}

	data, err := c.pre.loader.Read(path)
	if err != nil {
		c.ui().Warnf("Failed to include '%s'%s: %s\n", name, atPos(inc.Pos()), err)
		return nil, nil
	}
	if c.pre.opts.OnInclude != nil {
		c.pre.opts.OnInclude(path)
	}

	childVars := combineVars(c.vars, inc.injectedVars, argVars)
	child := c.pre.newFileContext(path, childVars, append(append([]string{}, c.chain...), path))

	docs, err := ParseAll(data, child.relPath)
	if err != nil {
		c.ui().Warnf("Failed to include '%s': %s\n", name, err)
		return nil, nil
	}
	if len(docs) == 0 {
		return nil, nil
	}

	return child.resolveFragment(docs[0])
}
