// Copyright 2024 The yamlprep Authors
// SPDX-License-Identifier: Apache-2.0

package preprocessor

import (
	"bytes"
	"fmt"
	"io"

	"gopkg.in/yaml.v3"

	"github.com/yamlprep/yamlprep/pkg/filepos"
	"github.com/yamlprep/yamlprep/pkg/orderedmap"
)

// ParseAll parses every document in data into placeholder trees. Mappings
// become *orderedmap.Map, sequences []interface{}; custom tags and
// interpolatable scalars become placeholders.
func ParseAll(data []byte, file string) ([]interface{}, error) {
	var docs []interface{}

	dec := yaml.NewDecoder(bytes.NewReader(data))
	for {
		var node yaml.Node
		err := dec.Decode(&node)
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("Parsing '%s': %s", file, err)
		}

		c := constructor{file: file, aliases: map[*yaml.Node]bool{}}
		doc, err := c.construct(&node, true)
		if err != nil {
			return nil, err
		}
		docs = append(docs, doc)
	}

	return docs, nil
}

type constructor struct {
	file    string
	aliases map[*yaml.Node]bool
}

func (c *constructor) construct(node *yaml.Node, interpolate bool) (interface{}, error) {
	switch node.Kind {
	case yaml.DocumentNode:
		if len(node.Content) == 0 {
			return nil, nil
		}
		return c.construct(node.Content[0], interpolate)

	case yaml.AliasNode:
		if c.aliases[node.Alias] {
			return nil, fmt.Errorf("Cyclic alias '%s' at %s", node.Value, c.pos(node).AsCompactString())
		}
		c.aliases[node.Alias] = true
		defer delete(c.aliases, node.Alias)
		return c.construct(node.Alias, interpolate)
	}

	switch node.Tag {
	case "!include":
		args, err := c.value(node, interpolate)
		if err != nil {
			return nil, err
		}
		return &IncludePlaceholder{args: args, pos: c.pos(node)}, nil

	case "!insert":
		args, err := c.value(node, interpolate)
		if err != nil {
			return nil, err
		}
		return &InsertPlaceholder{args: args, pos: c.pos(node)}, nil

	case "!if":
		val, err := c.value(node, interpolate)
		if err != nil {
			return nil, err
		}
		return &IfPlaceholder{val: val, pos: c.pos(node)}, nil

	case "!remove":
		return &RemovePlaceholder{pos: c.pos(node)}, nil

	case "!replace":
		val, err := c.value(node, interpolate)
		if err != nil {
			return nil, err
		}
		return &ReplacePlaceholder{val: val, pos: c.pos(node)}, nil

	case "!nosub":
		val, err := c.value(node, false)
		if err != nil {
			return nil, err
		}
		return &NoSubPlaceholder{val: val, pos: c.pos(node)}, nil
	}

	return c.value(node, interpolate)
}

func (c *constructor) value(node *yaml.Node, interpolate bool) (interface{}, error) {
	switch node.Kind {
	case yaml.MappingNode:
		m := orderedmap.NewMap()
		for i := 0; i+1 < len(node.Content); i += 2 {
			keyNode, valNode := node.Content[i], node.Content[i+1]

			var key interface{}
			if keyNode.Tag == "!!merge" {
				key = &MergeKeyPlaceholder{pos: c.pos(keyNode)}
			} else {
				var err error
				key, err = c.construct(keyNode, interpolate)
				if err != nil {
					return nil, err
				}
			}

			val, err := c.construct(valNode, interpolate)
			if err != nil {
				return nil, err
			}
			m.Set(key, val)
		}
		return m, nil

	case yaml.SequenceNode:
		list := []interface{}{}
		for _, item := range node.Content {
			val, err := c.construct(item, interpolate)
			if err != nil {
				return nil, err
			}
			list = append(list, val)
		}
		return list, nil

	case yaml.ScalarNode:
		return c.scalar(node, interpolate)
	}

	return nil, fmt.Errorf("Unexpected node kind %d at %s", node.Kind, c.pos(node).AsCompactString())
}

func (c *constructor) scalar(node *yaml.Node, interpolate bool) (interface{}, error) {
	switch node.Tag {
	case "!!str", "":
		s := node.Value
		// single quoting opts a scalar out of interpolation
		if interpolate && node.Style&yaml.SingleQuotedStyle == 0 && varPattern.MatchString(s) {
			return &SubstitutionPlaceholder{expr: s, pos: c.pos(node)}, nil
		}
		return s, nil

	case "!!null":
		// keys with no value stay present with an empty value; null never
		// enters the tree from parsing
		return "", nil

	default:
		if len(node.Tag) > 1 && node.Tag[0] == '!' && node.Tag[1] != '!' {
			// unknown local tag, keep the raw text
			s := node.Value
			if interpolate && varPattern.MatchString(s) {
				return &SubstitutionPlaceholder{expr: s, pos: c.pos(node)}, nil
			}
			return s, nil
		}

		var out interface{}
		err := node.Decode(&out)
		if err != nil {
			return nil, fmt.Errorf("Decoding scalar at %s: %s", c.pos(node).AsCompactString(), err)
		}
		return out, nil
	}
}

func (c *constructor) pos(node *yaml.Node) *filepos.Position {
	if node.Line <= 0 {
		return filepos.NewUnknownPositionInFile(c.file)
	}
	return filepos.NewFullPosition(node.Line, node.Column, c.file)
}
