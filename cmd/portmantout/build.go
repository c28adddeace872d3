package main

import (
	"flag"
	"io"
	"log/slog"
	"os"

	"github.com/milden6/wordgraph"
	"github.com/milden6/wordgraph/internal/config"
)

func buildFlags(fs *flag.FlagSet, cfg *config.Config) {
	fs.StringVar(&cfg.Dictionary, "dict", cfg.Dictionary, "word list, one word per line (- for stdin)")
	fs.StringVar(&cfg.Graph, "out", cfg.Graph, "graph file to write")
}

func runBuild(e *env, args []string) int {
	log := e.log.With(slog.String("component", "build"))
	watch := newStopwatch(log)

	var in io.Reader = e.stdin
	if e.cfg.Dictionary != "-" {
		f, err := os.Open(e.cfg.Dictionary)
		if err != nil {
			return e.fail("build", "open dictionary", err)
		}
		defer f.Close()
		in = f
	}

	builder := wordgraph.New()
	lines, err := builder.AddFrom(in)
	if err != nil {
		return e.fail("build", "read dictionary", err)
	}
	watch.lap("read", slog.Int("lines", lines), slog.Int("words", builder.NumAdded()))

	graph := builder.Finish()
	stats := builder.Stats()
	watch.lap("build")
	log.Info("built graph",
		slog.Int("words", stats.Words),
		slog.Int("nodes", stats.Nodes),
		slog.Int("edges", stats.Edges),
		slog.Int("steps", stats.AdjEdges),
		slog.Int("terminals", stats.Terminals),
		slog.Int("rewinds", stats.Rewinds),
		slog.Int("childless", stats.Childless),
		slog.Int("maximal", stats.Maximal))

	size, err := graph.Save(e.cfg.Graph)
	if err != nil {
		return e.fail("build", "write graph", err)
	}
	watch.lap("write")
	log.Info("wrote graph", slog.String("file", e.cfg.Graph), slog.Int64("bytes", size))
	return exitOK
}
