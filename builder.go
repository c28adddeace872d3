package wordgraph

import (
	"bufio"
	"bytes"
	"errors"
	"fmt"
	"io"
	"sort"
)

// MaxWordLength is the longest word a Builder accepts. Depths are stored
// as 16-bit values in the graph file.
const MaxWordLength = 1<<16 - 1

const noParent = -1

type trieEdge struct {
	ch   byte
	node int32
}

// trieNode is a node of the construction-time trie. Nodes live in the
// Builder's arena and refer to each other by arena index.
type trieNode struct {
	edges   []trieEdge // sorted by ch
	parent  int32
	rewind  int32 // noParent until resolved; always noParent for the root
	depth   int
	length  int // longest word that is a suffix of this context
	maximal bool
}

func (n *trieNode) isTerminal() bool {
	return n.length > 0 && n.length == n.depth
}

func (n *trieNode) find(ch byte) (int32, bool) {
	i := sort.Search(len(n.edges), func(i int) bool { return n.edges[i].ch >= ch })
	if i < len(n.edges) && n.edges[i].ch == ch {
		return n.edges[i].node, true
	}
	return 0, false
}

// Builder collects dictionary words into a trie. Call Finish to resolve the
// rewind pointers and produce an immutable Graph.
type Builder struct {
	nodes    []trieNode
	numAdded int
	finished bool
	stats    Stats
}

// New creates an empty Builder.
func New() *Builder {
	return &Builder{
		nodes: []trieNode{{parent: noParent, rewind: noParent}},
	}
}

// Add adds a word. Adding a word twice has no effect.
// Adding to a finished Builder will panic.
func (b *Builder) Add(word []byte) error {
	if b.finished {
		panic(errors.New("Builder.Add(): tried to add to a finished Builder"))
	}
	if len(word) == 0 {
		return ErrEmptyWord
	}
	if len(word) > MaxWordLength {
		return fmt.Errorf("%w: %d bytes", ErrWordTooLong, len(word))
	}

	at := int32(0)
	for _, ch := range word {
		at = b.child(at, ch)
	}

	node := &b.nodes[at]
	if !node.isTerminal() {
		node.length = node.depth
		b.numAdded++
	}
	return nil
}

// AddFrom adds every line of r as a word and returns the number of lines
// read. A trailing carriage return is stripped from each line.
func (b *Builder) AddFrom(r io.Reader) (int, error) {
	// room for the longest word, a line ending and enough past it that
	// Add reports a slightly longer line as ErrWordTooLong
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), MaxWordLength+64)

	lines := 0
	for scanner.Scan() {
		lines++
		word := bytes.TrimSuffix(scanner.Bytes(), []byte{'\r'})
		if err := b.Add(word); err != nil {
			return lines, fmt.Errorf("line %d: %w", lines, err)
		}
	}
	if err := scanner.Err(); err != nil {
		if errors.Is(err, bufio.ErrTooLong) {
			err = fmt.Errorf("%w: more than %d bytes", ErrWordTooLong, MaxWordLength)
		}
		return lines, fmt.Errorf("line %d: %w", lines+1, err)
	}
	return lines, nil
}

// NumAdded returns the number of distinct words added.
func (b *Builder) NumAdded() int {
	return b.numAdded
}

// Finish resolves rewind pointers, classifies maximal words and flattens
// the trie into a Graph. The Builder cannot be added to afterwards.
func (b *Builder) Finish() *Graph {
	if !b.finished {
		b.finished = true
		b.resolveRewinds()
		b.markMaximal()
	}
	return b.flatten()
}

// Stats returns construction statistics. It is only meaningful after Finish.
func (b *Builder) Stats() Stats {
	return b.stats
}

// child returns the child of parent along ch, creating it if needed.
func (b *Builder) child(parent int32, ch byte) int32 {
	p := &b.nodes[parent]
	i := sort.Search(len(p.edges), func(i int) bool { return p.edges[i].ch >= ch })
	if i < len(p.edges) && p.edges[i].ch == ch {
		return p.edges[i].node
	}

	id := int32(len(b.nodes))
	depth := p.depth + 1

	p.edges = append(p.edges, trieEdge{})
	copy(p.edges[i+1:], p.edges[i:])
	p.edges[i] = trieEdge{ch: ch, node: id}

	// p may be invalidated by the append below.
	b.nodes = append(b.nodes, trieNode{
		parent: parent,
		rewind: noParent,
		depth:  depth,
	})
	return id
}
