package schema

import (
	"sort"
)

// Node is one JSON-Schema-shaped mapping. It preserves the key order of
// the parsed document because compiled models keep their fields in the
// schema's declared property order.
type Node struct {
	keys   []string
	values map[string]any
}

func New() *Node {
	return &Node{
		values: make(map[string]any),
	}
}

// FromMap builds a Node from a plain map. Plain maps carry no declared
// order, so keys are sorted for determinism. Nested maps are converted
// recursively, including maps inside slices.
func FromMap(m map[string]any) *Node {
	n := New()

	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	for _, k := range keys {
		n.Set(k, fromValue(m[k]))
	}

	return n
}

func fromValue(v any) any {
	switch v := v.(type) {
	case map[string]any:
		return FromMap(v)
	case []any:
		out := make([]any, len(v))
		for i := range v {
			out[i] = fromValue(v[i])
		}
		return out
	}

	return v
}

func (n *Node) Set(key string, value any) {
	if _, ok := n.values[key]; !ok {
		n.keys = append(n.keys, key)
	}

	n.values[key] = value
}

func (n *Node) Get(key string) (any, bool) {
	v, ok := n.values[key]
	return v, ok
}

func (n *Node) Has(key string) bool {
	_, ok := n.values[key]
	return ok
}

// Keys returns the node's keys in declared order. The returned slice is
// shared; callers must not mutate it.
func (n *Node) Keys() []string {
	return n.keys
}

func (n *Node) Len() int {
	return len(n.keys)
}

// Node returns the child mapping stored under key, or nil if the key is
// absent or holds a non-mapping value.
func (n *Node) Node(key string) *Node {
	if v, ok := n.values[key]; ok {
		if child, ok := v.(*Node); ok {
			return child
		}
	}

	return nil
}

// String returns the string stored under key.
func (n *Node) String(key string) (string, bool) {
	if v, ok := n.values[key]; ok {
		if s, ok := v.(string); ok {
			return s, true
		}
	}

	return "", false
}

// Strings returns the sequence stored under key with its string entries
// only. Used for `required` and `scheme` lists.
func (n *Node) Strings(key string) []string {
	v, ok := n.values[key]
	if !ok {
		return nil
	}

	list, ok := v.([]any)
	if !ok {
		return nil
	}

	out := make([]string, 0, len(list))
	for _, item := range list {
		if s, ok := item.(string); ok {
			out = append(out, s)
		}
	}

	return out
}

// Nodes returns the sequence stored under key with its mapping entries
// only. Used for `anyOf`, `oneOf` and `allOf` lists.
func (n *Node) Nodes(key string) []*Node {
	v, ok := n.values[key]
	if !ok {
		return nil
	}

	list, ok := v.([]any)
	if !ok {
		return nil
	}

	out := make([]*Node, 0, len(list))
	for _, item := range list {
		if child, ok := item.(*Node); ok {
			out = append(out, child)
		}
	}

	return out
}

func (n *Node) Bool(key string) bool {
	if v, ok := n.values[key]; ok {
		if b, ok := v.(bool); ok {
			return b
		}
	}

	return false
}

// Clone returns a shallow copy. Child values are shared with the
// original.
func (n *Node) Clone() *Node {
	clone := &Node{
		keys:   make([]string, len(n.keys)),
		values: make(map[string]any, len(n.values)),
	}

	copy(clone.keys, n.keys)
	for k, v := range n.values {
		clone.values[k] = v
	}

	return clone
}
