package cli

import (
	"io"
	"strings"

	"github.com/mjelva/satsh/pkg/cmdtree"
)

// printUsage renders the matched token path and lists the children of
// the last matched grammar node as valid continuations, each annotated
// with its explanation when one exists.
func (s *Session) printUsage(seq *cmdtree.Tree, last cmdtree.NodeID) {
	var b strings.Builder
	b.WriteString("Usage: ")
	for _, id := range seq.Descendants(seq.Root())[1:] {
		n, _ := seq.Get(id)
		b.WriteString(n.Name)
		b.WriteByte(' ')
	}
	b.WriteString("<cmd>\nWhere 'cmd' can be either of\n")

	cands := make([]candidate, 0, len(s.grammar.Children(last)))
	for _, id := range s.grammar.Children(last) {
		n, _ := s.grammar.Get(id)
		cands = append(cands, candidate{name: n.Name, desc: n.Explanation})
	}
	writeCandidates(&b, cands)
	io.WriteString(s.out, b.String())
}
