package wordgraph

import (
	"strings"
	"testing"
)

var propertyWords = []string{
	"she", "he", "hers", "his", "hershey", "e", "ushers", "sheer", "rush", "shh",
	"cat", "at", "atom", "tom", "tomcat", "a", "aa", "aaa",
}

func build(t *testing.T, words ...string) *Graph {
	t.Helper()
	b := New()
	for _, word := range words {
		if err := b.Add([]byte(word)); err != nil {
			t.Fatalf("Add(%q): %v", word, err)
		}
	}
	return b.Finish()
}

func TestRewindIsLongestSuffixContext(t *testing.T) {
	g := build(t, propertyWords...)

	for i := uint32(1); i < uint32(g.NumNodes()); i++ {
		word := g.WordAt(i)
		r := g.Rewind(i)
		if r == NoNode {
			t.Fatalf("node %d (%q) has no rewind", i, word)
		}
		if g.Depth(r) >= g.Depth(i) {
			t.Errorf("rewind of %q is %q, not shallower", word, g.WordAt(r))
		}

		want := Root
		for cut := 1; cut < len(word); cut++ {
			if index := g.IndexOf(word[cut:]); index >= 0 {
				want = uint32(index)
				break
			}
		}
		if r != want {
			t.Errorf("rewind of %q is %q, want %q", word, g.WordAt(r), g.WordAt(want))
		}
	}

	if g.Rewind(Root) != NoNode || g.Parent(Root) != NoNode {
		t.Errorf("root has rewind %d parent %d", g.Rewind(Root), g.Parent(Root))
	}
}

func TestLengthIsLongestSuffixWord(t *testing.T) {
	g := build(t, propertyWords...)
	dict := make(map[string]bool)
	for _, word := range propertyWords {
		dict[word] = true
	}

	for i := uint32(0); i < uint32(g.NumNodes()); i++ {
		word := string(g.WordAt(i))
		if g.IsTerminal(i) != dict[word] {
			t.Errorf("IsTerminal(%q) = %v", word, g.IsTerminal(i))
		}

		want := 0
		for cut := 0; cut < len(word); cut++ {
			if dict[word[cut:]] {
				want = len(word) - cut
				break
			}
		}
		if g.Length(i) != want {
			t.Errorf("Length(%q) = %d, want %d", word, g.Length(i), want)
		}
	}
}

func TestMaximalNodes(t *testing.T) {
	g := build(t, propertyWords...)

	target := make([]bool, g.NumNodes())
	for i := uint32(1); i < uint32(g.NumNodes()); i++ {
		target[g.Rewind(i)] = true
	}

	for i := uint32(0); i < uint32(g.NumNodes()); i++ {
		want := g.IsTerminal(i) && len(g.Children(i)) == 0 && !target[i]
		if g.IsMaximal(i) != want {
			t.Errorf("IsMaximal(%q) = %v, want %v", g.WordAt(i), g.IsMaximal(i), want)
		}
	}
}

func TestMaximalExcludesRewindTargets(t *testing.T) {
	tests := []struct {
		words []string
		want  string
	}{
		{[]string{"cat", "at", "atom"}, "atom cat"},
		{[]string{"ab", "b"}, "ab"},
		{[]string{"ab", "bc"}, "ab bc"},
		{[]string{"abc", "bc", "c"}, "abc"},
	}
	for _, tt := range tests {
		g := build(t, tt.words...)
		if got := strings.Join(g.Words(true), " "); got != tt.want {
			t.Errorf("maximal words of %v = %q, want %q", tt.words, got, tt.want)
		}
	}
}

func TestPreorderIndices(t *testing.T) {
	g := build(t, "bc", "ab")

	want := []string{"", "a", "ab", "b", "bc"}
	for i, word := range want {
		if got := string(g.WordAt(uint32(i))); got != word {
			t.Errorf("WordAt(%d) = %q, want %q", i, got, word)
		}
	}
	for i := uint32(1); i < uint32(g.NumNodes()); i++ {
		if g.Parent(i) >= i {
			t.Errorf("parent of node %d is %d", i, g.Parent(i))
		}
	}
}

func TestAdjContainsChildren(t *testing.T) {
	g := build(t, propertyWords...)

	for i := uint32(0); i < uint32(g.NumNodes()); i++ {
		adj := g.Adj(i)
		for j := 1; j < len(adj); j++ {
			if adj[j].Ch < adj[j-1].Ch {
				t.Errorf("adj of %q not sorted: %v", g.WordAt(i), adj)
			}
		}
		for _, child := range g.Children(i) {
			found := false
			for _, step := range adj {
				if step == child {
					found = true
				}
			}
			if !found {
				t.Errorf("adj of %q is missing child edge '%c'", g.WordAt(i), child.Ch)
			}
		}
		if !g.IsTerminal(i) && len(adj) != len(g.Children(i)) {
			t.Errorf("non-terminal %q has rewind steps", g.WordAt(i))
		}
	}
}

func TestStepFollowsRewindAtTerminals(t *testing.T) {
	g := build(t, "ab", "bc")
	ab := uint32(g.IndexOf([]byte("ab")))
	bc := uint32(g.IndexOf([]byte("bc")))

	if _, ok := g.Child(ab, 'c'); ok {
		t.Error(`"ab" has a direct 'c' child`)
	}
	if next, ok := g.Step(ab, 'c'); !ok || next != bc {
		t.Errorf(`Step("ab", 'c') = %d, %v; want %d`, next, ok, bc)
	}
}

func TestEnumerateSkipAndStop(t *testing.T) {
	g := build(t, "cat", "catnip", "cats", "dog", "dot")

	var seen []string
	g.Enumerate(func(node uint32, word []byte, terminal bool) EnumerationResult {
		if string(word) == "cat" {
			seen = append(seen, "cat")
			return Skip
		}
		if string(word) == "dot" {
			return Stop
		}
		if terminal {
			seen = append(seen, string(word))
		}
		return Continue
	})

	if got := strings.Join(seen, " "); got != "cat dog" {
		t.Errorf("enumerated %q, want %q", got, "cat dog")
	}
}

func TestStrataDeepestFirst(t *testing.T) {
	g := build(t, propertyWords...)
	if len(g.strata) != g.NumNodes() {
		t.Fatalf("strata has %d nodes, want %d", len(g.strata), g.NumNodes())
	}
	for i := 1; i < len(g.strata); i++ {
		if g.depth[g.strata[i]] > g.depth[g.strata[i-1]] {
			t.Fatalf("strata not ordered by depth at %d", i)
		}
	}
	if g.strata[len(g.strata)-1] != Root {
		t.Errorf("root is not last in strata")
	}
}
