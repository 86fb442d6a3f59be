package cmdtree

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Import builds a grammar tree from a YAML document.
//
// The document is an ordered mapping from command names to either a
// scalar explanation string or a list. List elements that are plain
// strings become leaf children; single-key nested mappings are imported
// recursively as subtrees. Non-string keys and unrecognized element
// kinds are silently skipped. A non-mapping top-level document degrades
// to an empty (root-only) grammar rather than failing.
//
// The yaml.Node API is used instead of unmarshalling into a map so the
// document's key order is preserved; child order decides which node wins
// a sequence match.
func Import(data []byte) (*Tree, error) {
	var doc yaml.Node
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("parse grammar: %w", err)
	}

	t := New()
	if len(doc.Content) == 0 {
		return t, nil
	}
	top := doc.Content[0]
	if top.Kind != yaml.MappingNode {
		return t, nil
	}
	importMapping(t, t.Root(), top)
	return t, nil
}

// ImportFile reads path and imports it with Import.
func ImportFile(path string) (*Tree, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read grammar: %w", err)
	}
	return Import(data)
}

// importMapping appends one grammar node per string key of m under
// parent, recursing into nested mappings. Every child sits at its
// parent's depth plus one.
func importMapping(t *Tree, parent NodeID, m *yaml.Node) {
	pn, ok := t.Get(parent)
	if !ok {
		return
	}
	depth := pn.Depth.Child()

	for i := 0; i+1 < len(m.Content); i += 2 {
		key, val := m.Content[i], m.Content[i+1]
		if !isString(key) {
			continue
		}

		n := Node{Name: key.Value, Depth: depth}
		if isString(val) {
			n.Explanation = val.Value
		}
		id := t.Append(parent, n)

		if val.Kind != yaml.SequenceNode {
			continue
		}
		for _, elem := range val.Content {
			switch {
			case isString(elem):
				t.Append(id, Node{Name: elem.Value, Depth: depth.Child()})
			case elem.Kind == yaml.MappingNode:
				importMapping(t, id, elem)
			}
		}
	}
}

func isString(n *yaml.Node) bool {
	return n.Kind == yaml.ScalarNode && n.Tag == "!!str"
}
