package cli

import (
	"strings"

	"github.com/mjelva/satsh/pkg/cmdtree"
)

// changeRoot interprets a cd line over (current, prev):
//
//	cd          no-op
//	cd -        back to the previous root, one level of history
//	cd ..       up to the grammar parent, no-op at the root
//	cd <path>   resolve the '/'-separated path from the grammar root
//	cd /<path>  same, with the leading separator trimmed
//
// prev is updated only when current actually changes.
func (s *Session) changeRoot(line string) {
	arg := strings.TrimSpace(strings.TrimPrefix(line, "cd"))

	target := s.current
	switch {
	case arg == "":
		return
	case arg == "-":
		if !s.hasPrev {
			return
		}
		target = s.prev
	case arg == "..":
		parent, ok := s.grammar.Parent(s.current)
		if !ok {
			return
		}
		target = parent
	default:
		// Path segments carry 1-based depths, so resolution always
		// starts at the grammar root. The final node is taken even
		// when the match stopped early.
		path := strings.TrimSuffix(strings.TrimPrefix(arg, "/"), "/")
		cmds := commandsFrom(strings.Split(path, "/"))
		_, target = s.matchSequence(s.grammar.Root(), cmds)
	}

	if target == s.current {
		return
	}
	s.prev, s.hasPrev = s.current, true
	s.current = target
	s.pathPrefix = s.promptPath(target)
	s.log.Debug("root changed", "path", s.pathPrefix)
}

// promptPath renders the ancestor names of id below the synthetic root,
// in root-to-leaf order, each followed by the path separator. The
// grammar root itself yields an empty prefix.
func (s *Session) promptPath(id cmdtree.NodeID) string {
	anc := s.grammar.Ancestors(id)
	var b strings.Builder
	for i := len(anc) - 1; i >= 0; i-- {
		if anc[i] == s.grammar.Root() {
			continue
		}
		n, _ := s.grammar.Get(anc[i])
		b.WriteString(n.Name)
		b.WriteByte('/')
	}
	return b.String()
}
