package main

import (
	"bufio"
	"flag"
	"fmt"
	"os"

	"github.com/milden6/wordgraph"
	"github.com/milden6/wordgraph/internal/config"
)

func wordsFlags(fs *flag.FlagSet, cfg *config.Config) {
	graphFlags(fs, cfg)
	fs.BoolVar(&cfg.MaximalOnly, "maximal", cfg.MaximalOnly, "print only maximal words")
}

func runDump(e *env, args []string) int {
	f, err := os.Open(e.cfg.Graph)
	if err != nil {
		return e.fail("dump", "open graph", err)
	}
	defer f.Close()

	info, err := f.Stat()
	if err != nil {
		return e.fail("dump", "stat graph", err)
	}

	w := bufio.NewWriter(e.stdout)
	defer w.Flush()
	if err := wordgraph.DumpFile(w, f, info.Size()); err != nil {
		return e.fail("dump", "read graph", err)
	}
	return exitOK
}

func runWords(e *env, args []string) int {
	graph, err := wordgraph.Load(e.cfg.Graph)
	if err != nil {
		return e.fail("words", "load graph", err)
	}

	w := bufio.NewWriter(e.stdout)
	defer w.Flush()
	for _, word := range graph.Words(e.cfg.MaximalOnly) {
		fmt.Fprintln(w, word)
	}
	return exitOK
}
