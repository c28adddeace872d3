/*
Package wordgraph builds a multi-word matching automaton over a dictionary and
uses it to check a portmantout: a single string that contains every word of the
dictionary as a substring.

The automaton is a trie with a rewind (failure) pointer on every node. A node's
rewind points at the node for the longest proper suffix of its context that is
also in the trie, so a walk over a long string never has to restart from the
root when a character does not extend the current context.

To use it, create a builder with wordgraph.New() and add words to it. Words may
be added in any order, and adding a word twice has no effect. Call Finish() to
resolve rewind pointers and get an immutable *Graph, which can be written to disk
with Save() and opened again with Load(). The file format is summarized at the
top of disk.go.

A Graph answers Check(), which walks a candidate string once and reports the
words it found and missed along with the characters and transitions between
characters that are not covered by any matched word. A Graph is never modified
after it is built or loaded, so any number of goroutines may Check candidates
against the same Graph at once.
*/
package wordgraph
