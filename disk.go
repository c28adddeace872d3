package wordgraph

import (
	"bytes"
	"fmt"
	"io"
	"os"

	"golang.org/x/exp/mmap"
)

/* FILE FORMAT

All values are little-endian. Every array starts on a 32-bit boundary; the
gap after a shorter array is zero padding.

- uint32: number of nodes N
- uint32: number of adj edges A
- uint32: number of child edges C
- uint16 * N: depth
- uint16 * N: length of the longest word ending at the node
- uint8  * N: maximal flag
- uint32 * N: parent index (0xffffffff for the root)
- uint32 * N: rewind index (0xffffffff for the root)
- uint32 * (N+1): adj start offsets
- uint32 * A: adj target
- uint8  * A: adj character
- uint32 * (N+1): child start offsets
- uint32 * C: child target
- uint8  * C: child character

The edges of node i are [start[i], start[i+1]), sorted by character.
*/

const headerSize = 3 * 4

// layout holds the byte offset of every array for a given header.
type layout struct {
	nodes, adjs, children int

	depth, length, maximal, parent, rewind int64
	adjStart, adj, adjChar                 int64
	childStart, child, childChar           int64
	size                                   int64
}

func newLayout(nodes, adjs, children uint32) layout {
	l := layout{nodes: int(nodes), adjs: int(adjs), children: int(children)}
	pos := int64(headerSize)
	place := func(elemSize, count int64) int64 {
		at := pos
		pos += elemSize * count
		pos = (pos + 3) &^ 3
		return at
	}

	n, a, c := int64(nodes), int64(adjs), int64(children)
	l.depth = place(2, n)
	l.length = place(2, n)
	l.maximal = place(1, n)
	l.parent = place(4, n)
	l.rewind = place(4, n)
	l.adjStart = place(4, n+1)
	l.adj = place(4, a)
	l.adjChar = place(1, a)
	l.childStart = place(4, n+1)
	l.child = place(4, c)
	l.childChar = place(1, c)
	l.size = pos
	return l
}

// Size returns the number of bytes Write produces for this graph.
func (g *Graph) Size() int64 {
	return newLayout(uint32(len(g.depth)), uint32(len(g.adj)), uint32(len(g.child))).size
}

// Save writes the graph to disk. Returns the number of bytes written.
func (g *Graph) Save(filename string) (int64, error) {
	f, err := os.Create(filename)
	if err != nil {
		return 0, err
	}

	n, err := g.Write(f)
	if cerr := f.Close(); err == nil {
		err = cerr
	}
	return n, err
}

// Write writes the graph to an io.Writer. Returns the number of bytes written.
func (g *Graph) Write(wIn io.Writer) (int64, error) {
	w := newWordWriter(wIn)

	w.WriteUint32s(uint32(len(g.depth)), uint32(len(g.adj)), uint32(len(g.child)))
	w.WriteUint16s(g.depth)
	w.WriteUint16s(g.length)
	w.WriteBools(g.maximal)
	w.WriteUint32s(g.parent...)
	w.WriteUint32s(g.rewind...)
	w.WriteUint32s(g.adjStart...)
	w.WriteUint32s(g.adj...)
	w.WriteBytes(g.adjChar)
	w.WriteUint32s(g.childStart...)
	w.WriteUint32s(g.child...)
	w.WriteBytes(g.childChar)

	return w.Close()
}

// Load reads a graph file written by Save. The file is memory mapped for
// the duration of the load only.
func Load(filename string) (*Graph, error) {
	f, err := mmap.Open(filename)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	g, err := Read(f, int64(f.Len()))
	if err != nil {
		return nil, fmt.Errorf("%s: %w", filename, err)
	}
	return g, nil
}

// Decode reads a graph from an in-memory copy of a graph file.
func Decode(data []byte) (*Graph, error) {
	return Read(bytes.NewReader(data), int64(len(data)))
}

// Read reads a graph of size bytes from r. It fails with a *StructuralError,
// and returns no graph, when the data is shorter than its header implies or
// does not describe a well-formed trie.
func Read(f io.ReaderAt, size int64) (*Graph, error) {
	if size < headerSize {
		return nil, structuralf(0, "file is %d bytes, shorter than the %d byte header", size, headerSize)
	}

	r := wordReader{f}
	header, err := r.ReadUint32s(0, 3)
	if err != nil {
		return nil, err
	}
	if header[0] == 0 {
		return nil, structuralf(0, "graph has no root node")
	}

	l := newLayout(header[0], header[1], header[2])
	if size < l.size {
		return nil, structuralf(size, "truncated file: header implies %d bytes, have %d", l.size, size)
	}

	g := &Graph{}
	steps := []func() error{
		func() (err error) { g.depth, err = r.ReadUint16s(l.depth, l.nodes); return },
		func() (err error) { g.length, err = r.ReadUint16s(l.length, l.nodes); return },
		func() (err error) { g.maximal, err = r.ReadBools(l.maximal, l.nodes); return },
		func() (err error) { g.parent, err = r.ReadUint32s(l.parent, l.nodes); return },
		func() (err error) { g.rewind, err = r.ReadUint32s(l.rewind, l.nodes); return },
		func() (err error) { g.adjStart, err = r.ReadUint32s(l.adjStart, l.nodes+1); return },
		func() (err error) { g.adj, err = r.ReadUint32s(l.adj, l.adjs); return },
		func() (err error) { g.adjChar, err = r.ReadBytes(l.adjChar, l.adjs); return },
		func() (err error) { g.childStart, err = r.ReadUint32s(l.childStart, l.nodes+1); return },
		func() (err error) { g.child, err = r.ReadUint32s(l.child, l.children); return },
		func() (err error) { g.childChar, err = r.ReadBytes(l.childChar, l.children); return },
	}
	for _, step := range steps {
		if err := step(); err != nil {
			return nil, err
		}
	}

	if err := g.validate(l); err != nil {
		return nil, err
	}

	g.init()
	return g, nil
}

// validate checks every index in the graph so that queries on a loaded
// graph cannot go out of range.
func (g *Graph) validate(l layout) error {
	n := uint32(len(g.depth))

	if g.depth[Root] != 0 || g.parent[Root] != NoNode || g.rewind[Root] != NoNode {
		return structuralf(l.depth, "node 0 is not a root")
	}

	checkEdges := func(name string, startAt, targetAt int64, start, target []uint32) error {
		if start[0] != 0 {
			return structuralf(startAt, "%s offsets do not start at 0", name)
		}
		for i := 1; i < len(start); i++ {
			if start[i] < start[i-1] {
				return structuralf(startAt+4*int64(i), "%s offsets decrease at node %d", name, i)
			}
		}
		if int(start[n]) != len(target) {
			return structuralf(startAt+4*int64(n), "%s offsets end at %d, have %d edges", name, start[n], len(target))
		}
		for i, t := range target {
			if t >= n {
				return structuralf(targetAt+4*int64(i), "%s edge %d targets node %d of %d", name, i, t, n)
			}
		}
		return nil
	}
	if err := checkEdges("adj", l.adjStart, l.adj, g.adjStart, g.adj); err != nil {
		return err
	}
	if err := checkEdges("child", l.childStart, l.child, g.childStart, g.child); err != nil {
		return err
	}

	for i := uint32(1); i < n; i++ {
		p, r := g.parent[i], g.rewind[i]
		if p >= n || g.depth[p]+1 != g.depth[i] {
			return structuralf(l.parent+4*int64(i), "node %d has invalid parent %d", i, p)
		}
		if r >= n || g.depth[r] >= g.depth[i] {
			return structuralf(l.rewind+4*int64(i), "node %d has invalid rewind %d", i, r)
		}
		if g.length[i] > g.depth[i] {
			return structuralf(l.length+2*int64(i), "node %d is longer than its depth", i)
		}
	}

	for i := uint32(0); i < n; i++ {
		if g.maximal[i] && (!g.IsTerminal(i) || g.childStart[i] != g.childStart[i+1]) {
			return structuralf(l.maximal+int64(i), "node %d is maximal but not a childless word", i)
		}
		for j := g.childStart[i]; j < g.childStart[i+1]; j++ {
			if g.parent[g.child[j]] != i {
				return structuralf(l.child+4*int64(j), "child edge of node %d is not a trie edge", i)
			}
			if j > g.childStart[i] && g.childChar[j] <= g.childChar[j-1] {
				return structuralf(l.childChar+int64(j), "child edges of node %d are not sorted", i)
			}
		}
		for j := g.adjStart[i] + 1; j < g.adjStart[i+1]; j++ {
			if g.adjChar[j] < g.adjChar[j-1] {
				return structuralf(l.adjChar+int64(j), "adj edges of node %d are not sorted", i)
			}
		}
	}
	return nil
}

// DumpFile prints the header and every node of a graph file.
func DumpFile(w io.Writer, f io.ReaderAt, size int64) error {
	g, err := Read(f, size)
	if err != nil {
		return err
	}
	l := newLayout(uint32(g.NumNodes()), uint32(g.NumAdjEdges()), uint32(g.NumEdges()))

	fmt.Fprintf(w, "[%08x] Size=%v bytes\n", 0, l.size)
	fmt.Fprintf(w, "[%08x] NodeCount=%d\n", 0, l.nodes)
	fmt.Fprintf(w, "[%08x] AdjCount=%d\n", 4, l.adjs)
	fmt.Fprintf(w, "[%08x] ChildCount=%d\n", 8, l.children)

	for i := uint32(0); i < uint32(g.NumNodes()); i++ {
		flags := ""
		if g.IsTerminal(i) {
			flags += " terminal"
		}
		if g.maximal[i] {
			flags += " maximal"
		}
		fmt.Fprintf(w, "[%08x] Node %d %q depth=%d length=%d parent=%d rewind=%d%s\n",
			l.parent+4*int64(i), i, g.WordAt(i), g.depth[i], g.length[i],
			int32(g.parent[i]), int32(g.rewind[i]), flags)

		for j := g.childStart[i]; j < g.childStart[i+1]; j++ {
			fmt.Fprintf(w, "[%08x]   '%c' child <%d>\n", l.child+4*int64(j), rune(g.childChar[j]), g.child[j])
		}
		for j := g.adjStart[i]; j < g.adjStart[i+1]; j++ {
			fmt.Fprintf(w, "[%08x]   '%c' step <%d>\n", l.adj+4*int64(j), rune(g.adjChar[j]), g.adj[j])
		}
	}
	return nil
}
