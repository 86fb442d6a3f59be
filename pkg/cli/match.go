package cli

import (
	"github.com/mjelva/satsh/pkg/cmdtree"
)

// command is one delimiter-separated token of an input line, carrying
// its 1-based position as the depth it must match at.
type command struct {
	name  string
	depth cmdtree.Depth
}

// goUp is the reference token that hops to the grammar parent of the
// walk node. Its wildcard depth makes it match at any line position.
var goUp = command{name: "..", depth: cmdtree.DepthAny}

// commandsFrom turns already-split tokens into commands with 1-based depths.
func commandsFrom(tokens []string) []command {
	cmds := make([]command, len(tokens))
	for i, tok := range tokens {
		cmds[i] = command{name: tok, depth: cmdtree.Depth(i + 1)}
	}
	return cmds
}

// equal compares two commands under the wildcard depth rule.
func (c command) equal(other command) bool {
	return c.name == other.name && c.depth.Equal(other.depth)
}

// matches reports whether the command selects the grammar node: names
// must be identical and depths equal under the wildcard rule.
// Explanations play no part in token matching.
func (c command) matches(n cmdtree.Node) bool {
	return c.name == n.Name && c.depth.Equal(n.Depth)
}

// matchSequence walks the grammar from start, consuming cmds in order.
// Every matched grammar node is copied, in order, into the returned
// sequence tree under its root; the second result is wherever the walk
// ended, which need not be a leaf. A token that matches no child stops
// the walk and the remaining tokens are abandoned; that is the
// premature-termination policy, not an error.
//
// The go-up token hops to the walk node's grammar parent (recording a
// copy of it) at most once per occurrence, then is compared against the
// new node's children like any other token.
func (s *Session) matchSequence(start cmdtree.NodeID, cmds []command) (*cmdtree.Tree, cmdtree.NodeID) {
	g := s.grammar
	seq := cmdtree.New()
	node := start

walk:
	for _, cmd := range cmds {
		if cmd.equal(goUp) {
			if parent, ok := g.Parent(node); ok {
				pn, _ := g.Get(parent)
				seq.Append(seq.Root(), pn)
				node = parent
			}
		}
		for _, child := range g.Children(node) {
			cn, _ := g.Get(child)
			s.log.Debug("compare",
				"token", cmd.name, "depth", int(cmd.depth), "candidate", cn.Name)
			if cmd.matches(cn) {
				seq.Append(seq.Root(), cn)
				node = child
				continue walk
			}
		}
		break
	}
	return seq, node
}
