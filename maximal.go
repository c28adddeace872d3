package wordgraph

// markMaximal flags terminal nodes that are neither a prefix of another
// word nor the rewind target of any node. Rewind pointers must be resolved.
func (b *Builder) markMaximal() {
	for i := range b.nodes {
		n := &b.nodes[i]
		if n.isTerminal() && len(n.edges) == 0 {
			n.maximal = true
			b.stats.Childless++
		}
	}

	for i := range b.nodes {
		if r := b.nodes[i].rewind; r != noParent {
			b.nodes[r].maximal = false
		}
	}

	for i := range b.nodes {
		if b.nodes[i].maximal {
			b.stats.Maximal++
		}
	}
}
