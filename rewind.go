package wordgraph

import "fmt"

// resolveRewinds sets the rewind pointer of every non-root node to the
// longest proper suffix of its context that is also a trie context, one
// depth layer at a time, and folds the rewind target's length into each
// node's length.
func (b *Builder) resolveRewinds() {
	layer := []int32{0}
	for len(layer) > 0 {
		var next []int32
		for _, id := range layer {
			parent := &b.nodes[id]
			for _, edge := range parent.edges {
				next = append(next, edge.node)

				r := parent.rewind
				for r != noParent {
					if target, ok := b.nodes[r].find(edge.ch); ok {
						r = target
						break
					}
					r = b.nodes[r].rewind
				}
				if r == noParent {
					r = 0
				}

				child := &b.nodes[edge.node]
				if b.nodes[r].depth >= child.depth {
					panic(fmt.Sprintf("rewind of node %d at depth %d is not shallower (depth %d)",
						edge.node, child.depth, b.nodes[r].depth))
				}
				child.rewind = r
				child.length = max(child.length, b.nodes[r].length)
			}
		}
		layer = next
	}

	for id := 1; id < len(b.nodes); id++ {
		if b.nodes[id].rewind == noParent {
			panic(fmt.Sprintf("node %d has no rewind pointer", id))
		}
		b.stats.Rewinds++
	}
}
