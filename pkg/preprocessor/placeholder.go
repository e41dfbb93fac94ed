// Copyright 2024 The yamlprep Authors
// SPDX-License-Identifier: Apache-2.0

package preprocessor

import (
	"github.com/yamlprep/yamlprep/pkg/filepos"
	"github.com/yamlprep/yamlprep/pkg/orderedmap"
)

// Kind identifies one placeholder variety. Kinds form a bitmask so that
// each resolution pass can state exactly which placeholders it handles.
type Kind uint8

const (
	KindSubstitution Kind = 1 << iota
	KindIf
	KindInclude
	KindInsert
	KindMergeKey
	KindRemove
	KindReplace
	KindNoSub
)

// Placeholder is a deferred node in a parsed tree. Placeholders are created
// by the parser for custom tags and interpolatable scalars, and resolved by
// later passes.
type Placeholder interface {
	PlaceholderKind() Kind
	Pos() *filepos.Position
}

// Interpolable is a placeholder whose argument value is itself resolved
// before the placeholder is dispatched. EagerArgs reports whether that
// pre-resolution runs every handler or only variable substitution.
type Interpolable interface {
	Placeholder
	Value() interface{}
	WithValue(val interface{}) Interpolable
	EagerArgs() bool
}

type removalSignal struct{}

// RemovalSignal marks a mapping entry or sequence element for deletion.
// Handlers return it; the tree walker drops the surrounding entry.
var RemovalSignal interface{} = removalSignal{}

// SubstitutionPlaceholder wraps a scalar containing at least one ${...}
// reference.
type SubstitutionPlaceholder struct {
	expr string
	pos  *filepos.Position
}

func (p *SubstitutionPlaceholder) PlaceholderKind() Kind  { return KindSubstitution }
func (p *SubstitutionPlaceholder) Pos() *filepos.Position { return p.pos }
func (p *SubstitutionPlaceholder) Expr() string           { return p.expr }

// IfPlaceholder wraps a !if construct, either the mapping form
// (if/then/else) or the sequence form (if/elseif/else entries). Arguments
// are deliberately not eager: branches that lose the condition must never
// trigger file inclusion.
type IfPlaceholder struct {
	val interface{}
	pos *filepos.Position
}

func (p *IfPlaceholder) PlaceholderKind() Kind  { return KindIf }
func (p *IfPlaceholder) Pos() *filepos.Position { return p.pos }
func (p *IfPlaceholder) Value() interface{}     { return p.val }
func (p *IfPlaceholder) EagerArgs() bool        { return false }

func (p *IfPlaceholder) WithValue(val interface{}) Interpolable {
	return &IfPlaceholder{val, p.pos}
}

// IncludePlaceholder wraps a !include directive. Its argument is either a
// scalar path (optionally with ?name=value&flag arguments) or a mapping
// with "file" and "vars" keys. injectedVars carries variables forced onto
// the inclusion from the outside, e.g. package_id during package merging.
type IncludePlaceholder struct {
	args         interface{}
	injectedVars *orderedmap.Map
	pos          *filepos.Position
}

func (p *IncludePlaceholder) PlaceholderKind() Kind  { return KindInclude }
func (p *IncludePlaceholder) Pos() *filepos.Position { return p.pos }
func (p *IncludePlaceholder) Value() interface{}     { return p.args }
func (p *IncludePlaceholder) EagerArgs() bool        { return true }

func (p *IncludePlaceholder) WithValue(val interface{}) Interpolable {
	return &IncludePlaceholder{val, p.injectedVars, p.pos}
}

func (p *IncludePlaceholder) withInjectedVars(vars *orderedmap.Map) *IncludePlaceholder {
	return &IncludePlaceholder{p.args, combineVars(p.injectedVars, vars), p.pos}
}

// InsertPlaceholder wraps a !insert directive referencing a template
// defined in the current file's templates section.
type InsertPlaceholder struct {
	args         interface{}
	injectedVars *orderedmap.Map
	pos          *filepos.Position
}

func (p *InsertPlaceholder) PlaceholderKind() Kind  { return KindInsert }
func (p *InsertPlaceholder) Pos() *filepos.Position { return p.pos }
func (p *InsertPlaceholder) Value() interface{}     { return p.args }
func (p *InsertPlaceholder) EagerArgs() bool        { return true }

func (p *InsertPlaceholder) WithValue(val interface{}) Interpolable {
	return &InsertPlaceholder{val, p.injectedVars, p.pos}
}

func (p *InsertPlaceholder) withInjectedVars(vars *orderedmap.Map) *InsertPlaceholder {
	return &InsertPlaceholder{p.args, combineVars(p.injectedVars, vars), p.pos}
}

// MergeKeyPlaceholder stands for the YAML merge key ("<<"). Each occurrence
// is a distinct key object, so a mapping may carry several merge entries.
type MergeKeyPlaceholder struct {
	pos *filepos.Position
}

func (p *MergeKeyPlaceholder) PlaceholderKind() Kind  { return KindMergeKey }
func (p *MergeKeyPlaceholder) Pos() *filepos.Position { return p.pos }

// RemovePlaceholder wraps !remove. It survives package merging as an
// ordinary value, which blocks packages from re-adding the key, and turns
// into RemovalSignal in the final pass.
type RemovePlaceholder struct {
	pos *filepos.Position
}

func (p *RemovePlaceholder) PlaceholderKind() Kind  { return KindRemove }
func (p *RemovePlaceholder) Pos() *filepos.Position { return p.pos }

// ReplacePlaceholder wraps !replace. It shields its subtree from package
// merging; the subtree is fully resolved when the placeholder is unwrapped.
type ReplacePlaceholder struct {
	val interface{}
	pos *filepos.Position
}

func (p *ReplacePlaceholder) PlaceholderKind() Kind  { return KindReplace }
func (p *ReplacePlaceholder) Pos() *filepos.Position { return p.pos }
func (p *ReplacePlaceholder) Value() interface{}     { return p.val }
func (p *ReplacePlaceholder) EagerArgs() bool        { return true }

func (p *ReplacePlaceholder) WithValue(val interface{}) Interpolable {
	return &ReplacePlaceholder{val, p.pos}
}

// NoSubPlaceholder wraps !nosub. Its subtree was parsed with interpolation
// disabled; unwrapping exposes the literal content.
type NoSubPlaceholder struct {
	val interface{}
	pos *filepos.Position
}

func (p *NoSubPlaceholder) PlaceholderKind() Kind  { return KindNoSub }
func (p *NoSubPlaceholder) Pos() *filepos.Position { return p.pos }

// isExpressionValue reports whether a value is a placeholder that may
// legitimately resolve to nothing (an absent variable, a false condition).
func isExpressionValue(val interface{}) bool {
	switch val.(type) {
	case *SubstitutionPlaceholder, *IfPlaceholder:
		return true
	}
	return false
}

// combineVars overlays maps left to right; later maps win. Inputs are not
// mutated. A nil result means no vars at all were given.
func combineVars(maps ...*orderedmap.Map) *orderedmap.Map {
	var result *orderedmap.Map
	for _, m := range maps {
		if m == nil {
			continue
		}
		if result == nil {
			result = m.ShallowCopy()
			continue
		}
		m.Iterate(func(k, v interface{}) {
			result.Set(k, v)
		})
	}
	return result
}
