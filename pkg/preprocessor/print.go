// Copyright 2024 The yamlprep Authors
// SPDX-License-Identifier: Apache-2.0

package preprocessor

import (
	"encoding/json"
	"fmt"
	"io"

	"gopkg.in/yaml.v3"

	"github.com/yamlprep/yamlprep/pkg/orderedmap"
)

// WriteYAML renders processed documents as a YAML stream, preserving key
// order.
func WriteYAML(w io.Writer, docs []interface{}) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)

	for _, doc := range docs {
		node, err := asYAMLNode(doc)
		if err != nil {
			return err
		}
		if err := enc.Encode(node); err != nil {
			return err
		}
	}
	return enc.Close()
}

// WriteJSON renders processed documents as JSON. Key order is not carried
// over; a single document renders as an object, several as an array.
func WriteJSON(w io.Writer, docs []interface{}) error {
	converted := make([]interface{}, len(docs))
	for i, doc := range docs {
		converted[i] = orderedmap.Conversion{Object: doc}.AsUnorderedStringMaps()
	}

	var out interface{} = converted
	if len(converted) == 1 {
		out = converted[0]
	}

	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(out)
}

func asYAMLNode(val interface{}) (*yaml.Node, error) {
	switch typed := val.(type) {
	case nil:
		return &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!null", Value: "null"}, nil

	case Placeholder:
		return nil, fmt.Errorf("Unresolved %T%s in output", typed, atPos(typed.Pos()))

	case *orderedmap.Map:
		node := &yaml.Node{Kind: yaml.MappingNode, Tag: "!!map"}
		err := typed.IterateErr(func(k, v interface{}) error {
			keyNode, err := asYAMLNode(k)
			if err != nil {
				return err
			}
			valNode, err := asYAMLNode(v)
			if err != nil {
				return err
			}
			node.Content = append(node.Content, keyNode, valNode)
			return nil
		})
		if err != nil {
			return nil, err
		}
		return node, nil

	case []interface{}:
		node := &yaml.Node{Kind: yaml.SequenceNode, Tag: "!!seq"}
		for _, item := range typed {
			itemNode, err := asYAMLNode(item)
			if err != nil {
				return nil, err
			}
			node.Content = append(node.Content, itemNode)
		}
		return node, nil

	default:
		node := &yaml.Node{}
		if err := node.Encode(typed); err != nil {
			return nil, fmt.Errorf("Encoding value %v: %s", typed, err)
		}
		return node, nil
	}
}
