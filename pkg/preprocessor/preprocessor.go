// Copyright 2024 The yamlprep Authors
// SPDX-License-Identifier: Apache-2.0

package preprocessor

import (
	"fmt"
	"path/filepath"
	"strings"

	goversion "github.com/hashicorp/go-version"

	"github.com/yamlprep/yamlprep/pkg/files"
	"github.com/yamlprep/yamlprep/pkg/orderedmap"
	"github.com/yamlprep/yamlprep/pkg/version"

	cmdui "github.com/yamlprep/yamlprep/pkg/cmd/ui"
)

// Preprocessor loads YAML documents, resolving variable references,
// conditionals, file inclusion, template insertion, merge keys and
// package sections.
type Preprocessor struct {
	loader files.Loader
	ui     cmdui.UI
	opts   Options
}

type Options struct {
	// Vars seeds the variable scope of every document. A document's own
	// variables section never overrides them.
	Vars *orderedmap.Map

	// OnInclude is called with the canonicalized path of every file read
	// for a !include. Watch mode extends its watch set through it; hosts
	// use it to know when a reload is due.
	OnInclude func(path string)
}

func New(loader files.Loader, ui cmdui.UI, opts Options) *Preprocessor {
	return &Preprocessor{loader: loader, ui: ui, opts: opts}
}

// ProcessSource loads every document of src through the full pipeline.
func (p *Preprocessor) ProcessSource(src files.Source) ([]interface{}, error) {
	data, err := src.Bytes()
	if err != nil {
		return nil, fmt.Errorf("Reading %s: %s", src.Description(), err)
	}

	path, err := src.RelativePath()
	if err != nil {
		return nil, err
	}
	return p.ProcessBytes(data, path)
}

// ProcessBytes runs the pipeline on already loaded bytes, with path
// determining relative inclusion and the __FILE__ family of variables.
func (p *Preprocessor) ProcessBytes(data []byte, path string) ([]interface{}, error) {
	if abs, err := filepath.Abs(path); err == nil {
		path = abs
	}

	docs, err := ParseAll(data, displayPath(path, path))
	if err != nil {
		return nil, err
	}

	results := []interface{}{}
	for _, doc := range docs {
		ctx := p.newFileContext(path, p.opts.Vars, []string{path})
		result, err := ctx.processRoot(doc)
		if err != nil {
			return nil, err
		}
		results = append(results, result)
	}
	return results, nil
}

// processRoot runs the document-level phases. Included fragments go
// through resolveFragment instead; merge keys, packages, replace/remove
// and hidden keys are settled once per document.
func (c *fileContext) processRoot(doc interface{}) (interface{}, error) {
	m, isMap := doc.(*orderedmap.Map)
	if !isMap {
		return c.proc.Process(doc, KindSubstitution)
	}

	if err := c.checkSettings(m); err != nil {
		return nil, err
	}
	if err := c.extractVariables(m); err != nil {
		return nil, err
	}
	c.extractTemplates(m)

	packages, hasPackages := m.Get(packagesKey)
	if hasPackages {
		m.Delete(packagesKey)
	}

	resolved, err := c.proc.Process(m, resolveKinds)
	if err != nil {
		return nil, err
	}

	resolved = ResolveMergeKeys(resolved, c.ui())

	if hasPackages {
		if root, ok := resolved.(*orderedmap.Map); ok {
			if err := c.mergePackages(root, packages); err != nil {
				return nil, err
			}
			resolved = root
		}
	}

	resolved, err = c.proc.Process(resolved, KindReplace|KindRemove)
	if err != nil {
		return nil, err
	}
	if resolved == RemovalSignal {
		resolved = nil
	}

	return removeHiddenKeys(resolved), nil
}

// resolveFragment runs the per-file phases of an included file: variables,
// templates, first resolution pass. Merge keys and the final passes belong
// to the including document; settings bind top-level files only and are
// simply stripped here.
func (c *fileContext) resolveFragment(doc interface{}) (interface{}, error) {
	m, isMap := doc.(*orderedmap.Map)
	if !isMap {
		return c.proc.Process(doc, KindSubstitution)
	}

	m.Delete(settingsKey)
	if err := c.extractVariables(m); err != nil {
		return nil, err
	}
	c.extractTemplates(m)

	return c.proc.Process(m, resolveKinds)
}

func (c *fileContext) checkSettings(m *orderedmap.Map) error {
	val, found := m.Get(settingsKey)
	if !found {
		return nil
	}
	m.Delete(settingsKey)

	settings, ok := val.(*orderedmap.Map)
	if !ok {
		c.ui().Warnf("Ignoring '%s' section in '%s': expected a mapping\n", settingsKey, c.relPath)
		return nil
	}

	if loadVal, found := settings.Get("load"); found {
		if enabled, ok := loadVal.(bool); ok && !enabled {
			return fmt.Errorf("Loading of '%s' is disabled (%s.load is false)", c.relPath, settingsKey)
		}
	}

	if minVal, found := settings.Get("min_version"); found {
		required, err := goversion.NewVersion(stringifyVar(minVal))
		if err != nil {
			c.ui().Warnf("Ignoring invalid %s.min_version '%v' in '%s'\n", settingsKey, minVal, c.relPath)
			return nil
		}
		current, err := goversion.NewVersion(version.Version)
		if err == nil && current.LessThan(required) {
			return fmt.Errorf("'%s' requires preprocessor version >= %s (current version is %s)",
				c.relPath, required, version.Version)
		}
	}

	return nil
}

// extractVariables consumes the variables section. Entries resolve in
// order and may reference earlier ones; values may use any directive,
// including !include. Inherited variables win over the file's own.
func (c *fileContext) extractVariables(m *orderedmap.Map) error {
	val, found := m.Get(variablesKey)
	if !found {
		return nil
	}
	m.Delete(variablesKey)

	vars, ok := val.(*orderedmap.Map)
	if !ok {
		c.ui().Warnf("Ignoring '%s' section in '%s': expected a mapping\n", variablesKey, c.relPath)
		return nil
	}

	for _, item := range vars.Items() {
		name, ok := item.Key.(string)
		if !ok {
			c.ui().Warnf("Ignoring variable with non-string name '%v' in '%s'\n", item.Key, c.relPath)
			continue
		}
		resolved, err := c.proc.Process(item.Value, resolveKinds)
		if err != nil {
			return err
		}
		c.vars.Insert(name, resolved)
	}
	return nil
}

func (c *fileContext) extractTemplates(m *orderedmap.Map) {
	val, found := m.Get(templatesKey)
	if !found {
		return
	}
	m.Delete(templatesKey)

	templates, ok := val.(*orderedmap.Map)
	if !ok {
		c.ui().Warnf("Ignoring '%s' section in '%s': expected a mapping\n", templatesKey, c.relPath)
		return
	}
	c.templates = templates
}

// removeHiddenKeys drops every mapping entry whose key starts with a dot.
// Hidden keys hold reusable fragments (anchors, merge sources) that should
// not reach the output.
func removeHiddenKeys(data interface{}) interface{} {
	switch typed := data.(type) {
	case *orderedmap.Map:
		out := orderedmap.NewMap()
		typed.Iterate(func(k, v interface{}) {
			if name, ok := k.(string); ok && strings.HasPrefix(name, hiddenKeyPrefix) {
				return
			}
			out.Set(k, removeHiddenKeys(v))
		})
		return out

	case []interface{}:
		out := make([]interface{}, len(typed))
		for i, item := range typed {
			out[i] = removeHiddenKeys(item)
		}
		return out

	default:
		return data
	}
}
