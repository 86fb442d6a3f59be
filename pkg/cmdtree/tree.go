// Package cmdtree implements the command grammar tree for satsh.
//
// The tree is an arena: one growable slice owns every Node, and NodeID
// values are validated indexes into it. Parent and child links are stored
// as index fields, so an ancestor walk is a simple backward hop with no
// pointer graph to manage. A grammar tree is built once by the importer
// and never mutated afterward, which makes it safe to share across any
// number of matching operations without locking.
package cmdtree

import (
	"fmt"
	"strings"
)

// RootName is the name of the synthetic root node of every tree.
const RootName = "root"

// DepthAny is the wildcard depth. It compares equal to every depth.
const DepthAny Depth = -1

// Depth is a node's distance from the root, or DepthAny.
type Depth int

// Equal reports depth equality. Numeric depths must match exactly; if
// either side is DepthAny the comparison is always true. The wildcard
// rule is load-bearing: the "go up" token matches at any line position
// because of it.
func (d Depth) Equal(other Depth) bool {
	if d == DepthAny || other == DepthAny {
		return true
	}
	return d == other
}

// Child returns the depth of a child of a node at depth d.
func (d Depth) Child() Depth {
	if d == DepthAny {
		return DepthAny
	}
	return d + 1
}

// Node is a named point in a grammar tree, optionally carrying
// explanatory help text, tagged with its expected depth.
type Node struct {
	Name        string
	Explanation string
	Depth       Depth
}

// Equal reports whether two nodes carry the same data. Names and
// explanations must match exactly; depths compare under Depth.Equal.
func (n Node) Equal(other Node) bool {
	return n.Name == other.Name &&
		n.Explanation == other.Explanation &&
		n.Depth.Equal(other.Depth)
}

// NodeID is an opaque handle into the arena of the Tree that produced it.
type NodeID int

// InvalidID is returned for operations on handles the tree does not own.
const InvalidID NodeID = -1

type entry struct {
	node     Node
	parent   NodeID
	children []NodeID
}

// Tree is an arena-owned tree of Nodes. The zero value is not usable;
// call New.
type Tree struct {
	arena []entry
}

// New returns a tree containing only the synthetic root node at depth 0.
func New() *Tree {
	t := &Tree{}
	t.arena = append(t.arena, entry{
		node:   Node{Name: RootName, Depth: 0},
		parent: InvalidID,
	})
	return t
}

// Root returns the id of the root node.
func (t *Tree) Root() NodeID {
	return 0
}

// Len returns the number of nodes in the tree, root included.
func (t *Tree) Len() int {
	return len(t.arena)
}

func (t *Tree) valid(id NodeID) bool {
	return id >= 0 && int(id) < len(t.arena)
}

// Append adds n as the last child of parent and returns its id.
// Returns InvalidID if parent is not a handle of this tree. There is no
// delete: the tree is append-only.
func (t *Tree) Append(parent NodeID, n Node) NodeID {
	if !t.valid(parent) {
		return InvalidID
	}
	id := NodeID(len(t.arena))
	t.arena = append(t.arena, entry{node: n, parent: parent})
	t.arena[parent].children = append(t.arena[parent].children, id)
	return id
}

// Get returns the node data for id.
func (t *Tree) Get(id NodeID) (Node, bool) {
	if !t.valid(id) {
		return Node{}, false
	}
	return t.arena[id].node, true
}

// Parent returns the id of the parent of id. The root has no parent.
func (t *Tree) Parent(id NodeID) (NodeID, bool) {
	if !t.valid(id) || t.arena[id].parent == InvalidID {
		return InvalidID, false
	}
	return t.arena[id].parent, true
}

// Children returns the ids of the children of id in insertion order.
// The returned slice is owned by the tree and must not be modified.
func (t *Tree) Children(id NodeID) []NodeID {
	if !t.valid(id) {
		return nil
	}
	return t.arena[id].children
}

// Ancestors returns id and its ancestors up to and including the root,
// nearest-first.
func (t *Tree) Ancestors(id NodeID) []NodeID {
	if !t.valid(id) {
		return nil
	}
	var out []NodeID
	for cur := id; cur != InvalidID; cur = t.arena[cur].parent {
		out = append(out, cur)
	}
	return out
}

// Descendants returns id and all its descendants in pre-order.
func (t *Tree) Descendants(id NodeID) []NodeID {
	if !t.valid(id) {
		return nil
	}
	out := []NodeID{id}
	for _, child := range t.arena[id].children {
		out = append(out, t.Descendants(child)...)
	}
	return out
}

// SubtreeCount returns the number of strict descendants of id.
// A leaf yields 0.
func (t *Tree) SubtreeCount(id NodeID) int {
	if !t.valid(id) {
		return 0
	}
	return len(t.Descendants(id)) - 1
}

// Equal reports whether two trees are node-wise equal at every position
// in pre-order traversal.
func (t *Tree) Equal(other *Tree) bool {
	if t.Len() != other.Len() {
		return false
	}
	a := t.Descendants(t.Root())
	b := other.Descendants(other.Root())
	for i := range a {
		if !t.arena[a[i]].node.Equal(other.arena[b[i]].node) {
			return false
		}
	}
	return true
}

// String renders the tree one node per line, indented by depth.
// Used for debug logging of sequence trees.
func (t *Tree) String() string {
	var b strings.Builder
	for _, id := range t.Descendants(t.Root()) {
		n := t.arena[id].node
		if n.Depth != DepthAny {
			b.WriteString(strings.Repeat("\t", int(n.Depth)))
		}
		b.WriteByte('>')
		b.WriteString(n.Name)
		if n.Explanation != "" {
			fmt.Fprintf(&b, ": %s", n.Explanation)
		}
		b.WriteByte('\n')
	}
	return b.String()
}
