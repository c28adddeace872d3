package wordgraph

import "sort"

// NoNode is stored as the parent and rewind of the root node.
const NoNode = ^uint32(0)

// Root is the index of the root node.
const Root uint32 = 0

// Graph is the flattened, immutable matching automaton. Nodes are addressed
// by index; the root is node 0. A Graph is safe for concurrent use.
type Graph struct {
	depth   []uint16
	length  []uint16
	maximal []bool
	parent  []uint32
	rewind  []uint32

	childStart []uint32
	child      []uint32
	childChar  []byte

	adjStart []uint32
	adj      []uint32
	adjChar  []byte

	// derived on load
	numWords int
	maxDepth int
	strata   []uint32 // node indices, deepest first
}

// Edge is an outgoing transition of a node.
type Edge struct {
	Ch   byte
	Node uint32
}

// EnumFn is called by Enumerate for every node in pre-order.
type EnumFn = func(node uint32, word []byte, terminal bool) EnumerationResult

// EnumerationResult is returned by the enumeration function to indicate whether
// enumeration should continue below this node or stop altogether.
type EnumerationResult = int

const (
	// Continue enumerating all words with this prefix
	Continue EnumerationResult = iota

	// Skip will skip all words with this prefix
	Skip

	// Stop will immediately stop enumerating words
	Stop
)

func (g *Graph) init() {
	g.numWords = 0
	g.maxDepth = 0
	for i := range g.depth {
		if g.IsTerminal(uint32(i)) {
			g.numWords++
		}
		g.maxDepth = max(g.maxDepth, int(g.depth[i]))
	}

	// counting sort by depth, deepest first
	counts := make([]int, g.maxDepth+2)
	for _, d := range g.depth {
		counts[g.maxDepth-int(d)+1]++
	}
	for i := 1; i < len(counts); i++ {
		counts[i] += counts[i-1]
	}
	g.strata = make([]uint32, len(g.depth))
	for i, d := range g.depth {
		slot := &counts[g.maxDepth-int(d)]
		g.strata[*slot] = uint32(i)
		*slot++
	}
}

// NumNodes returns the number of nodes, including the root.
func (g *Graph) NumNodes() int {
	return len(g.depth)
}

// NumWords returns the number of dictionary words (terminal nodes).
func (g *Graph) NumWords() int {
	return g.numWords
}

// NumEdges returns the number of direct child edges.
func (g *Graph) NumEdges() int {
	return len(g.child)
}

// NumAdjEdges returns the number of valid next-step edges.
func (g *Graph) NumAdjEdges() int {
	return len(g.adj)
}

// MaxDepth returns the length of the longest word.
func (g *Graph) MaxDepth() int {
	return g.maxDepth
}

// Depth returns the length of the context a node represents.
func (g *Graph) Depth(node uint32) int {
	return int(g.depth[node])
}

// Length returns the length of the longest word that is a suffix of the
// node's context, or zero.
func (g *Graph) Length(node uint32) int {
	return int(g.length[node])
}

// IsTerminal reports whether the node's context is itself a word.
func (g *Graph) IsTerminal(node uint32) bool {
	return g.length[node] > 0 && g.length[node] == g.depth[node]
}

// IsMaximal reports whether the node is a childless terminal that is not
// the rewind target of any node.
func (g *Graph) IsMaximal(node uint32) bool {
	return g.maximal[node]
}

// Parent returns the parent of a node, or NoNode for the root.
func (g *Graph) Parent(node uint32) uint32 {
	return g.parent[node]
}

// Rewind returns the node for the longest proper suffix of the node's
// context, or NoNode for the root.
func (g *Graph) Rewind(node uint32) uint32 {
	return g.rewind[node]
}

// Child follows the direct trie edge labelled ch.
func (g *Graph) Child(node uint32, ch byte) (uint32, bool) {
	return findEdge(g.child, g.childChar, g.childStart[node], g.childStart[node+1], ch)
}

// Step follows a valid next-step edge labelled ch. At terminal nodes this
// includes edges of the rewind chain.
func (g *Graph) Step(node uint32, ch byte) (uint32, bool) {
	return findEdge(g.adj, g.adjChar, g.adjStart[node], g.adjStart[node+1], ch)
}

// Children returns the direct trie edges of a node, sorted by character.
func (g *Graph) Children(node uint32) []Edge {
	return edges(g.child, g.childChar, g.childStart[node], g.childStart[node+1])
}

// Adj returns the valid next-step edges of a node, sorted by character.
func (g *Graph) Adj(node uint32) []Edge {
	return edges(g.adj, g.adjChar, g.adjStart[node], g.adjStart[node+1])
}

func edges(target []uint32, chars []byte, lo, hi uint32) []Edge {
	result := make([]Edge, 0, hi-lo)
	for i := lo; i < hi; i++ {
		result = append(result, Edge{Ch: chars[i], Node: target[i]})
	}
	return result
}

// findEdge binary searches the edges in [lo, hi) for the first one labelled ch.
func findEdge(target []uint32, chars []byte, lo, hi uint32, ch byte) (uint32, bool) {
	n := int(hi - lo)
	i := lo + uint32(sort.Search(n, func(i int) bool { return chars[lo+uint32(i)] >= ch }))
	if i < hi && chars[i] == ch {
		return target[i], true
	}
	return NoNode, false
}

// IndexOf returns the node reached by spelling word from the root, or -1
// if there is no such context. The node is a word iff IsTerminal.
func (g *Graph) IndexOf(word []byte) int {
	at := Root
	for _, ch := range word {
		next, ok := g.Child(at, ch)
		if !ok {
			return -1
		}
		at = next
	}
	return int(at)
}

// WordAt reconstructs the context of a node from its parent chain.
func (g *Graph) WordAt(node uint32) []byte {
	word := make([]byte, g.depth[node])
	for at := node; at != Root; at = g.parent[at] {
		p := g.parent[at]
		for i := g.childStart[p]; i < g.childStart[p+1]; i++ {
			if g.child[i] == at {
				word[g.depth[at]-1] = g.childChar[i]
				break
			}
		}
	}
	return word
}

// Enumerate calls fn for every node in pre-order with the node's context.
// The word slice is reused between calls. Return Continue to continue
// enumeration, Skip to skip this branch, or Stop to stop enumeration.
func (g *Graph) Enumerate(fn EnumFn) {
	g.enumerate(Root, make([]byte, 0, g.maxDepth), fn)
}

func (g *Graph) enumerate(node uint32, word []byte, fn EnumFn) EnumerationResult {
	result := fn(node, word, g.IsTerminal(node))
	if result != Continue {
		return result
	}

	l := len(word)
	word = append(word, 0)
	for i := g.childStart[node]; i < g.childStart[node+1]; i++ {
		word[l] = g.childChar[i]
		result = g.enumerate(g.child[i], word, fn)
		if result == Stop {
			break
		}
	}
	return result
}

// Words returns every dictionary word in lexicographic order. When
// maximalOnly is set, only maximal words are returned.
func (g *Graph) Words(maximalOnly bool) []string {
	var words []string
	g.Enumerate(func(node uint32, word []byte, terminal bool) EnumerationResult {
		if terminal && (!maximalOnly || g.maximal[node]) {
			words = append(words, string(word))
		}
		return Continue
	})
	return words
}
