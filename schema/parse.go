package schema

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Parse decodes a schema document into a Node. Both YAML and JSON
// documents are accepted since YAML 1.2 is a superset of JSON. Mapping
// key order is preserved.
func Parse(data []byte) (*Node, error) {
	var doc yaml.Node
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf(`failed to parse schema document: %w`, err)
	}

	if doc.Kind != yaml.DocumentNode || len(doc.Content) == 0 {
		return nil, fmt.Errorf(`schema document is empty`)
	}

	v, err := decodeValue(doc.Content[0])
	if err != nil {
		return nil, err
	}

	n, ok := v.(*Node)
	if !ok {
		return nil, fmt.Errorf(`schema document root must be a mapping`)
	}

	return n, nil
}

// ParseFile reads and parses a schema document from a file.
func ParseFile(path string) (*Node, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf(`failed to read schema file "%s": %w`, path, err)
	}

	n, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf(`failed to parse schema file "%s": %w`, path, err)
	}

	return n, nil
}

func decodeValue(value *yaml.Node) (any, error) {
	switch value.Kind {
	case yaml.MappingNode:
		return decodeMapping(value)

	case yaml.SequenceNode:
		out := make([]any, 0, len(value.Content))
		for _, item := range value.Content {
			v, err := decodeValue(item)
			if err != nil {
				return nil, err
			}
			out = append(out, v)
		}
		return out, nil

	case yaml.ScalarNode:
		var v any
		if err := value.Decode(&v); err != nil {
			return nil, fmt.Errorf(`failed to decode scalar on line %d: %w`, value.Line, err)
		}
		return v, nil

	case yaml.AliasNode:
		return decodeValue(value.Alias)
	}

	return nil, fmt.Errorf(`unexpected node kind %d on line %d`, value.Kind, value.Line)
}

func decodeMapping(value *yaml.Node) (*Node, error) {
	n := New()

	for i := 0; i+1 < len(value.Content); i += 2 {
		keyNode := value.Content[i]

		var key string
		if err := keyNode.Decode(&key); err != nil {
			return nil, fmt.Errorf(`mapping key on line %d is not a string: %w`, keyNode.Line, err)
		}

		v, err := decodeValue(value.Content[i+1])
		if err != nil {
			return nil, err
		}

		n.Set(key, v)
	}

	return n, nil
}
