// Copyright 2024 The yamlprep Authors
// SPDX-License-Identifier: Apache-2.0

package preprocessor

import (
	"github.com/yamlprep/yamlprep/pkg/orderedmap"
)

// Handler resolves a single placeholder into its replacement value.
// Returning nil removes the surrounding mapping entry or sequence element.
type Handler func(ph Placeholder) (interface{}, error)

// Processor walks a parsed tree and resolves placeholders through
// registered handlers. Every pass states via a Kind mask which placeholder
// varieties it resolves; the rest pass through untouched. Unchanged maps
// and lists are returned as the same instance.
type Processor struct {
	handlers map[Kind]Handler
}

func NewProcessor() *Processor {
	return &Processor{handlers: map[Kind]Handler{}}
}

func (p *Processor) Handle(kind Kind, h Handler) {
	p.handlers[kind] = h
}

func (p *Processor) registered() Kind {
	var all Kind
	for k := range p.handlers {
		all |= k
	}
	return all
}

func (p *Processor) Process(data interface{}, allowed Kind) (interface{}, error) {
	result, _, err := p.process(data, allowed, nil)
	return result, err
}

// ProcessWith resolves placeholders of the allowed kinds through override
// instead of the registered handlers. Template insertion uses this to
// substitute variables from the caller's scope.
func (p *Processor) ProcessWith(data interface{}, allowed Kind, override Handler) (interface{}, error) {
	result, _, err := p.process(data, allowed, override)
	return result, err
}

func (p *Processor) process(data interface{}, allowed Kind, override Handler) (interface{}, bool, error) {
	switch typed := data.(type) {
	case nil:
		return nil, false, nil
	case Placeholder:
		return p.processPlaceholder(typed, allowed, override)
	case *orderedmap.Map:
		return p.processMap(typed, allowed, override)
	case []interface{}:
		return p.processList(typed, allowed, override)
	default:
		return data, false, nil
	}
}

func (p *Processor) processPlaceholder(ph Placeholder, allowed Kind, override Handler) (interface{}, bool, error) {
	if ph.PlaceholderKind()&allowed == 0 {
		return ph, false, nil
	}

	if in, ok := ph.(Interpolable); ok {
		argFilter := KindSubstitution
		if in.EagerArgs() {
			argFilter = p.registered()
		}
		val, _, err := p.process(in.Value(), argFilter, nil)
		if err != nil {
			return nil, false, err
		}
		ph = in.WithValue(val)
	}

	handler := p.handlers[ph.PlaceholderKind()]
	if override != nil {
		handler = override
	}
	if handler == nil {
		return ph, false, nil
	}

	result, err := handler(ph)
	if err != nil {
		return nil, false, err
	}
	if result == nil || result == interface{}(ph) {
		return result, true, nil
	}

	result, _, err = p.process(result, allowed, override)
	return result, true, err
}

func (p *Processor) processMap(m *orderedmap.Map, allowed Kind, override Handler) (interface{}, bool, error) {
	items := m.Items()

	var out *orderedmap.Map
	migrate := func(upto int) {
		if out == nil {
			out = orderedmap.NewMapWithItems(append([]orderedmap.MapItem{}, items[:upto]...))
		}
	}

	for i, item := range items {
		newKey, keyChanged, err := p.process(item.Key, allowed, override)
		if err != nil {
			return nil, false, err
		}
		newVal, valChanged, err := p.process(item.Value, allowed, override)
		if err != nil {
			return nil, false, err
		}

		// a merge expression that resolved to nothing merges nothing
		if newVal == nil && item.Value != nil {
			if _, isMerge := item.Key.(*MergeKeyPlaceholder); isMerge && isExpressionValue(item.Value) {
				newVal = orderedmap.NewMap()
			}
		}

		drop := newKey == nil || newKey == RemovalSignal || newVal == RemovalSignal ||
			(newVal == nil && item.Value != nil)
		if drop {
			migrate(i)
			continue
		}

		if keyChanged || valChanged {
			migrate(i)
			out.Set(newKey, newVal)
			continue
		}
		if out != nil {
			out.Set(item.Key, item.Value)
		}
	}

	if out == nil {
		return m, false, nil
	}
	return out, true, nil
}

func (p *Processor) processList(list []interface{}, allowed Kind, override Handler) (interface{}, bool, error) {
	var out []interface{}
	changed := false

	migrate := func(upto int) {
		if !changed {
			out = append([]interface{}{}, list[:upto]...)
			changed = true
		}
	}

	for i, item := range list {
		newItem, itemChanged, err := p.process(item, allowed, override)
		if err != nil {
			return nil, false, err
		}
		if newItem == nil || newItem == RemovalSignal {
			migrate(i)
			continue
		}
		if itemChanged {
			migrate(i)
		}
		if changed {
			out = append(out, newItem)
		}
	}

	if !changed {
		return list, false, nil
	}
	return out, true, nil
}
