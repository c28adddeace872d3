package wordgraph_test

import (
	"bufio"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/milden6/wordgraph"
)

func createGraph(t *testing.T, words []string) (*wordgraph.Builder, *wordgraph.Graph) {
	t.Helper()
	builder := wordgraph.New()
	for _, word := range words {
		if err := builder.Add([]byte(word)); err != nil {
			t.Fatalf("Add(%q): %v", word, err)
		}
	}
	return builder, builder.Finish()
}

func testGraph(t *testing.T, graph *wordgraph.Graph, words []string) {
	t.Helper()
	unique := make(map[string]bool)
	for _, word := range words {
		unique[word] = true
	}

	if graph.NumWords() != len(unique) {
		t.Errorf("NumWords() returned %d, expected %d", graph.NumWords(), len(unique))
	}

	for word := range unique {
		index := graph.IndexOf([]byte(word))
		if index < 0 || !graph.IsTerminal(uint32(index)) {
			t.Errorf("IndexOf(%q) = %d, not a terminal node", word, index)
			continue
		}
		if got := string(graph.WordAt(uint32(index))); got != word {
			t.Errorf("WordAt(%d) = %q, want %q", index, got, word)
		}
	}
}

func runTest(t *testing.T, words []string) *wordgraph.Graph {
	t.Helper()
	_, graph := createGraph(t, words)
	testGraph(t, graph, words)

	// Now try the disk version
	filename := filepath.Join(t.TempDir(), "test.graph")
	size, err := graph.Save(filename)
	if err != nil {
		t.Fatal(err)
	}
	if size != graph.Size() {
		t.Errorf("Save wrote %d bytes, Size() is %d", size, graph.Size())
	}

	saved, err := wordgraph.Load(filename)
	if err != nil {
		t.Fatal(err)
	}
	testGraph(t, saved, words)

	return saved
}

func TestSingleEntry(t *testing.T) {
	runTest(t, []string{"a"})
}

func TestHelloJello(t *testing.T) {
	runTest(t, []string{"hello", "jello"})
}

func TestUnsortedWithDuplicates(t *testing.T) {
	graph := runTest(t, []string{"cats", "cat", "blip", "cat", "catnip", "at"})
	if graph.NumWords() != 5 {
		t.Errorf("NumWords() = %d, want 5", graph.NumWords())
	}
}

func TestEmptyDictionary(t *testing.T) {
	_, graph := createGraph(t, nil)
	if graph.NumNodes() != 1 || graph.NumWords() != 0 {
		t.Errorf("got %d nodes and %d words, want only the root", graph.NumNodes(), graph.NumWords())
	}
}

func TestAddRejects(t *testing.T) {
	builder := wordgraph.New()
	if err := builder.Add(nil); !errors.Is(err, wordgraph.ErrEmptyWord) {
		t.Errorf("Add(nil) = %v, want ErrEmptyWord", err)
	}
	long := make([]byte, wordgraph.MaxWordLength+1)
	if err := builder.Add(long); !errors.Is(err, wordgraph.ErrWordTooLong) {
		t.Errorf("Add(long) = %v, want ErrWordTooLong", err)
	}
	if builder.NumAdded() != 0 {
		t.Errorf("NumAdded() = %d after rejected words", builder.NumAdded())
	}
}

func TestAddAfterFinishPanics(t *testing.T) {
	builder := wordgraph.New()
	builder.Finish()

	defer func() {
		if recover() == nil {
			t.Error("Add after Finish did not panic")
		}
	}()
	builder.Add([]byte("late"))
}

func TestAddFrom(t *testing.T) {
	builder := wordgraph.New()
	lines, err := builder.AddFrom(strings.NewReader("cat\r\nat\natom\ncat\n"))
	if err != nil {
		t.Fatal(err)
	}
	if lines != 4 || builder.NumAdded() != 3 {
		t.Errorf("read %d lines, %d words; want 4 lines, 3 words", lines, builder.NumAdded())
	}

	graph := builder.Finish()
	if got := graph.IndexOf([]byte("cat")); got < 0 || !graph.IsTerminal(uint32(got)) {
		t.Errorf("\"cat\" is not a word after stripping the carriage return")
	}
}

func TestAddFromBlankLine(t *testing.T) {
	_, err := wordgraph.New().AddFrom(strings.NewReader("cat\n\nat\n"))
	if !errors.Is(err, wordgraph.ErrEmptyWord) || !strings.Contains(err.Error(), "line 2") {
		t.Errorf("AddFrom = %v, want ErrEmptyWord on line 2", err)
	}
}

func TestAddFromLongLine(t *testing.T) {
	for _, n := range []int{wordgraph.MaxWordLength + 1, wordgraph.MaxWordLength + 2, 4 * wordgraph.MaxWordLength} {
		input := "cat\n" + strings.Repeat("a", n) + "\r\n"
		_, err := wordgraph.New().AddFrom(strings.NewReader(input))
		if !errors.Is(err, wordgraph.ErrWordTooLong) || !strings.Contains(err.Error(), "line 2") {
			t.Errorf("%d byte line: AddFrom = %v, want ErrWordTooLong on line 2", n, err)
		}
	}

	longest := strings.Repeat("a", wordgraph.MaxWordLength)
	builder := wordgraph.New()
	if _, err := builder.AddFrom(strings.NewReader(longest + "\r\n")); err != nil {
		t.Fatalf("AddFrom of a %d byte word: %v", len(longest), err)
	}
	if builder.NumAdded() != 1 {
		t.Errorf("NumAdded() = %d, want 1", builder.NumAdded())
	}
}

func TestStats(t *testing.T) {
	builder, _ := createGraph(t, []string{"cat", "at", "atom"})
	stats := builder.Stats()

	want := wordgraph.Stats{
		Words:     3,
		Nodes:     8, // root a at ato atom c ca cat
		Edges:     7,
		AdjEdges:  8, // plus "cat" -> "ato" through the rewind to "at"
		Terminals: 3,
		Rewinds:   7,
		Childless: 2,
		Maximal:   2,
	}
	if stats != want {
		t.Errorf("Stats() = %+v, want %+v", stats, want)
	}
}

func readDictWords(t *testing.T) []string {
	dict := "/usr/share/dict/words"
	if _, err := os.Stat(dict); os.IsNotExist(err) {
		t.Skipf("Skipping full dictionary test; can't find %s", dict)
	}

	file, err := os.Open(dict)
	if err != nil {
		t.Fatal(err)
	}
	defer file.Close()

	var words []string
	scanner := bufio.NewScanner(file)
	for scanner.Scan() {
		if word := scanner.Text(); word != "" {
			words = append(words, word)
		}
	}
	return words
}

func TestFullDict(t *testing.T) {
	words := readDictWords(t)
	graph := runTest(t, words)
	t.Logf("Graph has %v words, %v nodes, %v edges, %v steps",
		graph.NumWords(), graph.NumNodes(), graph.NumEdges(), graph.NumAdjEdges())

	report, err := graph.Check([]byte(strings.Join(words, "")))
	if err != nil {
		t.Fatal(err)
	}
	if !report.OK() {
		t.Errorf("concatenated dictionary missed %d words: %v",
			report.MissedWords, graph.MissedWords(report.Visited, 10))
	}
}

func ExampleNew() {
	builder := wordgraph.New()

	builder.Add([]byte("cat"))
	builder.Add([]byte("at"))
	builder.Add([]byte("atom"))

	graph := builder.Finish()

	report, _ := graph.Check([]byte("atomcat"))
	fmt.Printf("found %d, missed %d\n", report.FoundWords, report.MissedWords)
	fmt.Printf("maximal words: %v\n", graph.Words(true))

	// Output:
	// found 3, missed 0
	// maximal words: [atom cat]
}
