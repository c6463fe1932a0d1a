package spec

import (
	"gopkg.in/yaml.v3"
)

// Helpers for walking the raw yaml node tree. Mapping order is preserved by
// yaml.Node, which is what makes reference-preserving extraction possible:
// the same structural path always yields the same node.

// resolveAlias follows YAML anchors so aliased subtrees behave like their
// targets.
func resolveAlias(n *yaml.Node) *yaml.Node {
	for n != nil && n.Kind == yaml.AliasNode {
		n = n.Alias
	}
	return n
}

// mapValue returns the value node for key in a mapping node, or nil.
func mapValue(n *yaml.Node, key string) *yaml.Node {
	n = resolveAlias(n)
	if n == nil || n.Kind != yaml.MappingNode {
		return nil
	}
	for i := 0; i+1 < len(n.Content); i += 2 {
		if n.Content[i].Value == key {
			return resolveAlias(n.Content[i+1])
		}
	}
	return nil
}

// eachEntry visits the key/value pairs of a mapping node in source order.
func eachEntry(n *yaml.Node, fn func(key string, value *yaml.Node)) {
	n = resolveAlias(n)
	if n == nil || n.Kind != yaml.MappingNode {
		return
	}
	for i := 0; i+1 < len(n.Content); i += 2 {
		fn(n.Content[i].Value, resolveAlias(n.Content[i+1]))
	}
}

// eachItem visits the items of a sequence node in order.
func eachItem(n *yaml.Node, fn func(item *yaml.Node)) {
	n = resolveAlias(n)
	if n == nil || n.Kind != yaml.SequenceNode {
		return
	}
	for _, item := range n.Content {
		fn(resolveAlias(item))
	}
}

// scalarString returns the string value of a scalar node, or "".
func scalarString(n *yaml.Node) string {
	n = resolveAlias(n)
	if n == nil || n.Kind != yaml.ScalarNode {
		return ""
	}
	return n.Value
}

// stringField reads a scalar string value for key from a mapping node.
func stringField(n *yaml.Node, key string) string {
	return scalarString(mapValue(n, key))
}

// stringList reads a sequence of scalars for key from a mapping node.
func stringList(n *yaml.Node, key string) []string {
	var out []string
	eachItem(mapValue(n, key), func(item *yaml.Node) {
		if item.Kind == yaml.ScalarNode {
			out = append(out, item.Value)
		}
	})
	return out
}

// boolScalar interprets a scalar node as a boolean, with ok=false when the
// node is not a boolean scalar.
func boolScalar(n *yaml.Node) (value, ok bool) {
	n = resolveAlias(n)
	if n == nil || n.Kind != yaml.ScalarNode {
		return false, false
	}
	switch n.Value {
	case "true", "True":
		return true, true
	case "false", "False":
		return false, true
	}
	return false, false
}
