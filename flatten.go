package wordgraph

import "sort"

// Stats summarizes a finished Builder.
type Stats struct {
	Words     int // distinct words added
	Nodes     int
	Edges     int // direct child edges
	AdjEdges  int // valid next steps, including rewind-unrolled edges at terminals
	Terminals int
	Rewinds   int // nodes with a rewind pointer
	Childless int // terminal nodes without children
	Maximal   int // childless terminals that are not a rewind target
}

// flatten assigns pre-order indices to the trie nodes and copies the trie
// into the index-addressed arrays of a Graph.
func (b *Builder) flatten() *Graph {
	order := make([]int32, 0, len(b.nodes))
	index := make([]uint32, len(b.nodes))

	stack := []int32{0}
	for len(stack) > 0 {
		id := stack[len(stack)-1]
		stack = stack[:len(stack)-1]

		index[id] = uint32(len(order))
		order = append(order, id)

		edges := b.nodes[id].edges
		for i := len(edges) - 1; i >= 0; i-- {
			stack = append(stack, edges[i].node)
		}
	}

	numNodes := len(order)
	g := &Graph{
		depth:      make([]uint16, numNodes),
		length:     make([]uint16, numNodes),
		maximal:    make([]bool, numNodes),
		parent:     make([]uint32, numNodes),
		rewind:     make([]uint32, numNodes),
		childStart: make([]uint32, numNodes+1),
		adjStart:   make([]uint32, numNodes+1),
	}

	var valid []trieEdge
	terminals := 0
	for i, id := range order {
		n := &b.nodes[id]

		g.depth[i] = uint16(n.depth)
		g.length[i] = uint16(n.length)
		g.maximal[i] = n.maximal
		g.parent[i] = NoNode
		if n.parent != noParent {
			g.parent[i] = index[n.parent]
		}
		g.rewind[i] = NoNode
		if n.rewind != noParent {
			g.rewind[i] = index[n.rewind]
		}

		g.childStart[i] = uint32(len(g.child))
		for _, edge := range n.edges {
			g.child = append(g.child, index[edge.node])
			g.childChar = append(g.childChar, edge.ch)
		}

		// a valid step is a child edge of this node or, at a terminal, a
		// child edge of any non-root node on the rewind chain.
		valid = append(valid[:0], n.edges...)
		if n.isTerminal() {
			terminals++
			for r := n.rewind; r > 0; r = b.nodes[r].rewind {
				valid = append(valid, b.nodes[r].edges...)
			}
		}
		sort.SliceStable(valid, func(a, c int) bool { return valid[a].ch < valid[c].ch })

		g.adjStart[i] = uint32(len(g.adj))
		for _, edge := range valid {
			g.adj = append(g.adj, index[edge.node])
			g.adjChar = append(g.adjChar, edge.ch)
		}
	}
	g.childStart[numNodes] = uint32(len(g.child))
	g.adjStart[numNodes] = uint32(len(g.adj))

	b.stats.Words = b.numAdded
	b.stats.Nodes = numNodes
	b.stats.Edges = len(g.child)
	b.stats.AdjEdges = len(g.adj)
	b.stats.Terminals = terminals

	g.init()
	return g
}
