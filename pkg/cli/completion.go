package cli

import (
	"fmt"
	"io"
	"strings"

	"github.com/chzyer/readline"
)

// candidate is a continuation name with its optional explanation.
type candidate struct {
	name string
	desc string
}

// writeCandidates prints an aligned candidate list. Child order is the
// grammar's insertion order, so no sorting happens here.
func writeCandidates(w io.Writer, cands []candidate) {
	maxWidth := 20
	for _, c := range cands {
		if len(c.name)+2 > maxWidth {
			maxWidth = len(c.name) + 2
		}
	}
	for _, c := range cands {
		if c.desc != "" {
			fmt.Fprintf(w, "  %-*s %s\n", maxWidth, c.name, c.desc)
		} else {
			fmt.Fprintf(w, "  %s\n", c.name)
		}
	}
}

// splitForCompletion separates the committed words of a line prefix
// from the partial word still being typed.
func splitForCompletion(text string) (words []string, partial string) {
	words = strings.Fields(text)
	if len(words) > 0 && !strings.HasSuffix(text, " ") {
		partial = words[len(words)-1]
		words = words[:len(words)-1]
	}
	return words, partial
}

// lineCandidates returns the grammar continuations for the given line
// prefix, relative to the current root. cd lines complete against the
// same grammar with the keyword dropped.
func (s *Session) lineCandidates(text string) []candidate {
	words, partial := splitForCompletion(text)
	if len(words) > 0 && words[0] == "cd" {
		words = words[1:]
	}

	node := s.current
walk:
	for _, w := range words {
		for _, child := range s.grammar.Children(node) {
			if n, _ := s.grammar.Get(child); n.Name == w {
				node = child
				continue walk
			}
		}
		return nil
	}

	var out []candidate
	for _, child := range s.grammar.Children(node) {
		n, _ := s.grammar.Get(child)
		if strings.HasPrefix(n.Name, partial) {
			out = append(out, candidate{name: n.Name, desc: n.Explanation})
		}
	}
	return out
}

// treeCompleter implements readline.AutoCompleter over the grammar tree.
type treeCompleter struct {
	s *Session
}

func (tc *treeCompleter) Do(line []rune, pos int) ([][]rune, int) {
	text := string(line[:pos])
	cands := tc.s.lineCandidates(text)
	if len(cands) == 0 {
		return nil, 0
	}
	_, partial := splitForCompletion(text)

	if len(cands) == 1 {
		suffix := cands[0].name[len(partial):]
		return [][]rune{[]rune(suffix + " ")}, len(partial)
	}

	newLine := make([][]rune, 0, len(cands))
	for _, c := range cands {
		newLine = append(newLine, []rune(c.name[len(partial):]))
	}
	return newLine, len(partial)
}

// helpListener implements the '?' key: print the possible completions
// for the text before the cursor, then restore the line without the '?'.
func (s *Session) helpListener() readline.Listener {
	return readline.FuncListener(func(line []rune, pos int, key rune) ([]rune, int, bool) {
		if key != '?' || pos < 1 {
			return line, pos, false
		}
		// Strip the '?' that readline already inserted.
		clean := make([]rune, 0, len(line)-1)
		clean = append(clean, line[:pos-1]...)
		clean = append(clean, line[pos:]...)
		text := string(clean[:pos-1])

		w := s.rl.Stdout()
		cands := s.lineCandidates(text)
		if len(cands) == 0 {
			fmt.Fprintln(w, "  (no completions)")
		} else {
			fmt.Fprintln(w, "Possible completions:")
			writeCandidates(w, cands)
		}
		return clean, pos - 1, true
	})
}
