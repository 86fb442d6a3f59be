package cli

import (
	"bytes"
	"io"
	"log/slog"
	"strings"
	"testing"

	"github.com/mjelva/satsh/pkg/cmdtree"
	"github.com/mjelva/satsh/pkg/config"
)

// Grammar used across the cli tests:
//
//	root -> sat -> cmd -> obc -> ping
//	                   -> adcs
//	                   -> pay
//	            -> pay
const testGrammar = `
sat:
- cmd:
  - obc:
    - ping
  - adcs
  - pay
- pay
`

func newTestSession(t *testing.T) (*Session, *bytes.Buffer) {
	t.Helper()
	grammar, err := cmdtree.Import([]byte(testGrammar))
	if err != nil {
		t.Fatalf("Import: %v", err)
	}
	s, err := New(config.Default(), grammar,
		slog.New(slog.NewTextHandler(io.Discard, nil)))
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	out := &bytes.Buffer{}
	s.out = out
	return s, out
}

// seqNames flattens the matched nodes of a sequence tree, root excluded.
func seqNames(seq *cmdtree.Tree) []string {
	var names []string
	for _, id := range seq.Descendants(seq.Root())[1:] {
		n, _ := seq.Get(id)
		names = append(names, n.Name)
	}
	return names
}

func checkSeq(t *testing.T, seq *cmdtree.Tree, want []string) {
	t.Helper()
	got := seqNames(seq)
	if len(got) != len(want) {
		t.Fatalf("sequence = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("sequence[%d] = %q, want %q", i, got[i], want[i])
		}
	}
}

func TestCommandsFrom(t *testing.T) {
	cmds := commandsFrom([]string{"sat", "cmd", "obc"})
	for i, want := range []cmdtree.Depth{1, 2, 3} {
		if cmds[i].depth != want {
			t.Errorf("cmds[%d].depth = %d, want %d", i, cmds[i].depth, want)
		}
	}
}

func TestGoUpRecognizedAtAnyPosition(t *testing.T) {
	for _, depth := range []cmdtree.Depth{1, 4, 55} {
		c := command{name: "..", depth: depth}
		if !c.equal(goUp) {
			t.Errorf("command{.., %d} should equal the go-up token", depth)
		}
	}
	c := command{name: "up", depth: 1}
	if c.equal(goUp) {
		t.Error("command{up, 1} should not equal the go-up token")
	}
}

func TestMatchFullAcceptance(t *testing.T) {
	s, _ := newTestSession(t)
	seq, final := s.matchSequence(s.grammar.Root(),
		commandsFrom([]string{"sat", "cmd", "obc", "ping"}))

	checkSeq(t, seq, []string{"sat", "cmd", "obc", "ping"})
	n, _ := s.grammar.Get(final)
	if n.Name != "ping" {
		t.Errorf("final node = %q, want ping", n.Name)
	}
	if got := s.grammar.SubtreeCount(final); got != 0 {
		t.Errorf("SubtreeCount(final) = %d, want 0", got)
	}
}

func TestMatchPartial(t *testing.T) {
	s, _ := newTestSession(t)
	seq, final := s.matchSequence(s.grammar.Root(),
		commandsFrom([]string{"sat", "cmd", "bogus"}))

	checkSeq(t, seq, []string{"sat", "cmd"})
	n, _ := s.grammar.Get(final)
	if n.Name != "cmd" {
		t.Errorf("final node = %q, want cmd", n.Name)
	}
	if got := s.grammar.SubtreeCount(final); got == 0 {
		t.Error("final node should have descendants")
	}
}

// Pinned fixture for the go-up token: the hop to the parent is recorded,
// then the same ".." token fails to match any child and the walk stops
// before "pay" is ever examined.
func TestMatchGoUpFixture(t *testing.T) {
	s, _ := newTestSession(t)
	seq, final := s.matchSequence(s.grammar.Root(),
		commandsFrom([]string{"sat", "cmd", "..", "pay"}))

	checkSeq(t, seq, []string{"sat", "cmd", "sat"})
	n, _ := s.grammar.Get(final)
	if n.Name != "sat" {
		t.Errorf("final node = %q, want sat", n.Name)
	}
	if got := seq.SubtreeCount(seq.Root()); got != 3 {
		t.Errorf("matched count = %d, want 3", got)
	}
}

func TestMatchGoUpAtRoot(t *testing.T) {
	s, _ := newTestSession(t)
	seq, final := s.matchSequence(s.grammar.Root(),
		commandsFrom([]string{".."}))

	if got := seq.SubtreeCount(seq.Root()); got != 0 {
		t.Errorf("matched count = %d, want 0", got)
	}
	if final != s.grammar.Root() {
		t.Errorf("final node = %d, want root", final)
	}
}

func TestMatchAbandonsRemainder(t *testing.T) {
	s, _ := newTestSession(t)
	// "cmd" would match after "sat", but the walk must stop at "bogus".
	seq, final := s.matchSequence(s.grammar.Root(),
		commandsFrom([]string{"sat", "bogus", "cmd"}))

	checkSeq(t, seq, []string{"sat"})
	n, _ := s.grammar.Get(final)
	if n.Name != "sat" {
		t.Errorf("final node = %q, want sat", n.Name)
	}
}

func TestMatchFirstChildInInsertionOrderWins(t *testing.T) {
	grammar := cmdtree.New()
	a := grammar.Append(grammar.Root(), cmdtree.Node{Name: "dup", Explanation: "first", Depth: 1})
	grammar.Append(grammar.Root(), cmdtree.Node{Name: "dup", Explanation: "second", Depth: 1})

	s, err := New(config.Default(), grammar,
		slog.New(slog.NewTextHandler(io.Discard, nil)))
	if err != nil {
		t.Fatalf("New: %v", err)
	}

	_, final := s.matchSequence(grammar.Root(), commandsFrom([]string{"dup"}))
	if final != a {
		t.Errorf("final node = %d, want first inserted child %d", final, a)
	}
}

func TestHandleInputAccepted(t *testing.T) {
	s, out := newTestSession(t)
	s.handleInput("sat cmd obc ping")
	if got := out.String(); got != "ACCEPTED\n" {
		t.Errorf("output = %q, want ACCEPTED", got)
	}
}

func TestHandleInputUsage(t *testing.T) {
	s, out := newTestSession(t)
	s.handleInput("sat cmd bogus")

	got := out.String()
	if !strings.HasPrefix(got, "USAGE\n") {
		t.Fatalf("output = %q, want USAGE prefix", got)
	}
	if !strings.Contains(got, "Usage: sat cmd <cmd>") {
		t.Errorf("output = %q, want matched path line", got)
	}
	for _, name := range []string{"obc", "adcs", "pay"} {
		if !strings.Contains(got, name) {
			t.Errorf("output = %q, want continuation %q", got, name)
		}
	}
}

// A full match whose target still has descendants is not accepted.
func TestHandleInputInternalNodeIsUsage(t *testing.T) {
	s, out := newTestSession(t)
	s.handleInput("sat cmd")
	if !strings.HasPrefix(out.String(), "USAGE\n") {
		t.Errorf("output = %q, want USAGE for internal node", out.String())
	}
}
