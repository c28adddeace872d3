package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"

	"golang.org/x/sync/errgroup"

	"github.com/milden6/wordgraph"
	"github.com/milden6/wordgraph/internal/config"
)

func checkFlags(fs *flag.FlagSet, cfg *config.Config) {
	graphFlags(fs, cfg)
	fs.IntVar(&cfg.Workers, "workers", cfg.Workers, "candidates checked at once")
	fs.IntVar(&cfg.ListMissed, "list-missed", cfg.ListMissed, "missed words to print per candidate")
}

type checkResult struct {
	name   string
	report *wordgraph.Report
	missed []string
}

func runCheck(e *env, args []string) int {
	log := e.log.With(slog.String("component", "check"))
	watch := newStopwatch(log)

	graph, err := wordgraph.Load(e.cfg.Graph)
	if err != nil {
		return e.fail("check", "load graph", err)
	}
	watch.lap("read graph", slog.Int("nodes", graph.NumNodes()), slog.Int("words", graph.NumWords()))

	if len(args) == 0 {
		args = []string{"-"}
	}

	// stdin can only be read once; every "-" checks the same candidate
	var stdin []byte
	for _, name := range args {
		if name == "-" {
			if stdin, err = wordgraph.ReadCandidate(e.stdin); err != nil {
				return e.fail("check", "check candidate", fmt.Errorf("-: %w", err))
			}
			break
		}
	}

	// the graph is shared read-only; every Check owns its own state
	results := make([]checkResult, len(args))
	g, ctx := errgroup.WithContext(context.Background())
	g.SetLimit(e.cfg.Workers)
	for i, name := range args {
		i, name := i, name
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			candidate, err := readCandidate(name, stdin)
			if err != nil {
				return fmt.Errorf("%s: %w", name, err)
			}
			log.Info("testing portmantout", slog.String("candidate", name), slog.Int("letters", len(candidate)))

			report, err := graph.Check(candidate)
			if err != nil {
				return fmt.Errorf("%s: %w", name, err)
			}
			results[i] = checkResult{name: name, report: report}
			if !report.OK() && e.cfg.ListMissed > 0 {
				results[i].missed = graph.MissedWords(report.Visited, e.cfg.ListMissed)
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return e.fail("check", "check candidate", err)
	}
	watch.lap("test", slog.Int("candidates", len(results)))

	status := exitOK
	for _, r := range results {
		printReport(e.stdout, r, len(results) > 1)
		for _, word := range r.missed {
			fmt.Fprintf(e.stderr, "'%s' MISSING!\n", word)
		}
		if !r.report.OK() {
			status = exitMissed
		}
	}
	return status
}

func readCandidate(name string, stdin []byte) ([]byte, error) {
	if name == "-" {
		return stdin, nil
	}
	f, err := os.Open(name)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return wordgraph.ReadCandidate(f)
}

func printReport(w io.Writer, r checkResult, named bool) {
	if named {
		fmt.Fprintf(w, "%s: ", r.name)
	}
	rep := r.report
	fmt.Fprintf(w, "Testing portmantout of %d letters.\n", rep.Letters)
	fmt.Fprintf(w, "Uncovered characters: %d\n", rep.UncoveredCharacters)
	fmt.Fprintf(w, "Uncovered transitions: %d\n", rep.UncoveredTransitions)
	fmt.Fprintf(w, "Missing characters: %d\n", rep.MissingCharacters)
	fmt.Fprintf(w, "Found %d words.\n", rep.FoundWords)
	fmt.Fprintf(w, "Missed %d words.\n", rep.MissedWords)
}
