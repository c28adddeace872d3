package wordgraph

import (
	"bufio"
	"bytes"
	"errors"
	"fmt"
	"io"

	"github.com/gammazero/deque"
)

// Report is the outcome of checking a candidate string against a Graph.
// Coverage gaps are reported as counts; deciding pass or fail is up to the
// caller.
type Report struct {
	Letters int

	FoundWords  int
	MissedWords int

	// UncoveredCharacters counts characters not inside any matched word,
	// missing characters included.
	UncoveredCharacters int

	// UncoveredTransitions counts adjacent character pairs that no single
	// matched word spans.
	UncoveredTransitions int

	// MissingCharacters counts characters that start no dictionary context.
	MissingCharacters int

	// Visited holds, per node, whether the candidate reached that context
	// directly or through a deeper match.
	Visited []bool
}

// OK reports whether every dictionary word was found.
func (r *Report) OK() bool {
	return r.MissedWords == 0
}

// Check walks the candidate through the graph and reports which words it
// contains and which characters and transitions no word covers.
func (g *Graph) Check(candidate []byte) (*Report, error) {
	return g.CheckInto(candidate, nil)
}

// CheckInto is like Check but reuses visited for the per-node state when it
// has enough capacity.
func (g *Graph) CheckInto(candidate []byte, visited []bool) (*Report, error) {
	if len(candidate) == 0 {
		return nil, ErrEmptyCandidate
	}

	n := g.NumNodes()
	if cap(visited) < n {
		visited = make([]bool, n)
	} else {
		visited = visited[:n]
		clear(visited)
	}

	w := &walker{
		g:       g,
		lengths: newLengths(g.maxDepth),
		last:    len(candidate) - 1,
		report:  &Report{Letters: len(candidate), Visited: visited},
	}
	w.walk(candidate)
	if w.dropped != len(candidate) {
		panic(fmt.Sprintf("walk finalized %d of %d characters", w.dropped, len(candidate)))
	}

	g.countVisited(w.report)
	return w.report, nil
}

// walker is the per-call coverage state.
type walker struct {
	g       *Graph
	lengths *deque.Deque[uint32]
	at      uint32
	dropped int // characters finalized so far; the queue front is at this position
	last    int
	report  *Report
}

func (w *walker) walk(s []byte) {
	g := w.g
	visited := w.report.Visited

	// one extra step past the end flushes the remaining context
	for pos := 0; pos <= len(s); pos++ {
		end := pos == len(s)

		for {
			visited[w.at] = true

			if !end {
				if next, ok := g.Child(w.at, s[pos]); ok {
					w.at = next
					w.lengths.PushBack(0)
					if w.lengths.Len() != int(g.depth[next]) {
						panic(fmt.Sprintf("context of %d characters at node %d of depth %d",
							w.lengths.Len(), next, g.depth[next]))
					}
					if l := int(g.length[next]); l > 0 {
						raise(w.lengths, w.lengths.Len()-l, uint32(l))
					}
					break
				}
			}

			if r := g.rewind[w.at]; r != NoNode {
				drop := int(g.depth[w.at]) - int(g.depth[r])
				w.at = r
				for i := 0; i < drop; i++ {
					w.dropFront()
				}
				continue
			}

			// at the root with no edge
			if !end {
				w.report.MissingCharacters++
				w.report.UncoveredCharacters++
				if w.dropped < w.last {
					w.report.UncoveredTransitions++
				}
				w.dropped++
			}
			break
		}
	}
}

// dropFront finalizes the character at the front of the context.
func (w *walker) dropFront() {
	hasNext := w.dropped < w.last
	w.dropped++

	switch v := w.lengths.PopFront(); v {
	case 0:
		w.report.UncoveredCharacters++
		if hasNext {
			w.report.UncoveredTransitions++
		}
	case 1:
		if hasNext {
			w.report.UncoveredTransitions++
		}
	default:
		// the word spanning this character continues into the next one
		raise(w.lengths, 0, v-1)
	}
}

// countVisited propagates visited flags from deeper nodes to their parents
// and rewind targets, then tallies found and missed words.
func (g *Graph) countVisited(report *Report) {
	visited := report.Visited
	for _, node := range g.strata {
		if !visited[node] {
			for i := g.childStart[node]; i < g.childStart[node+1]; i++ {
				if visited[g.child[i]] {
					visited[node] = true
					break
				}
			}
		}

		if visited[node] {
			if r := g.rewind[node]; r != NoNode {
				visited[r] = true
			}
		}

		if g.IsTerminal(node) {
			if visited[node] {
				report.FoundWords++
			} else {
				report.MissedWords++
			}
		}
	}
}

// MissedWords lists, in lexicographic order, up to limit words whose nodes
// are not marked in visited. A limit of zero or less lists all of them.
func (g *Graph) MissedWords(visited []bool, limit int) []string {
	var missed []string
	g.Enumerate(func(node uint32, word []byte, terminal bool) EnumerationResult {
		if terminal && !visited[node] {
			missed = append(missed, string(word))
			if limit > 0 && len(missed) >= limit {
				return Stop
			}
		}
		return Continue
	})
	return missed
}

// ReadCandidate reads the first line of r as the candidate string.
func ReadCandidate(r io.Reader) ([]byte, error) {
	line, err := bufio.NewReader(r).ReadBytes('\n')
	if err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("read candidate: %w", err)
	}

	line = bytes.TrimSuffix(line, []byte{'\n'})
	line = bytes.TrimSuffix(line, []byte{'\r'})
	if len(line) == 0 {
		return nil, ErrEmptyCandidate
	}
	return line, nil
}
