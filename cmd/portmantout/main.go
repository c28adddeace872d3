// Command portmantout builds word graphs and checks portmantouts against them.
//
// Usage:
//
//	portmantout build [-config file] [-dict wordlist.asc] [-out wordlist.graph]
//	portmantout check [-config file] [-graph wordlist.graph] [candidate ...]
//	portmantout dump  [-config file] [-graph wordlist.graph]
//	portmantout words [-config file] [-graph wordlist.graph] [-maximal]
//
// check reads each candidate file (or stdin when none is given, or for "-")
// and exits with status 1 if any dictionary word is missing from a candidate.
package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/milden6/wordgraph"
	"github.com/milden6/wordgraph/internal/config"
)

const (
	exitOK     = 0
	exitMissed = 1
	exitError  = 2
)

// env is what a subcommand needs from the process.
type env struct {
	stdin  io.Reader
	stdout io.Writer
	stderr io.Writer
	cfg    config.Config
	log    *slog.Logger
}

type command struct {
	name  string
	flags func(fs *flag.FlagSet, cfg *config.Config)
	run   func(e *env, args []string) int
}

var commands = []command{
	{"build", buildFlags, runBuild},
	{"check", checkFlags, runCheck},
	{"dump", graphFlags, runDump},
	{"words", wordsFlags, runWords},
}

func main() {
	os.Exit(run(os.Args[1:], os.Stdin, os.Stdout, os.Stderr))
}

func run(args []string, stdin io.Reader, stdout, stderr io.Writer) int {
	if len(args) == 0 {
		usage(stderr)
		return exitError
	}

	var cmd *command
	for i := range commands {
		if commands[i].name == args[0] {
			cmd = &commands[i]
		}
	}
	if cmd == nil {
		fmt.Fprintf(stderr, "unknown command %q\n", args[0])
		usage(stderr)
		return exitError
	}

	e := &env{stdin: stdin, stdout: stdout, stderr: stderr}
	rest, err := e.configure(cmd, args[1:])
	if err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return exitOK
		}
		fmt.Fprintf(stderr, "%s: %v\n", cmd.name, err)
		return exitError
	}
	return cmd.run(e, rest)
}

// configure loads the config file named by -config, then applies the flags
// that were set on the command line on top of it.
func (e *env) configure(cmd *command, args []string) ([]string, error) {
	var path string

	// the flag set is bound to a scratch config so that only flags
	// visited on the command line override the file
	scratch := config.Default()
	fs := flag.NewFlagSet(cmd.name, flag.ContinueOnError)
	fs.SetOutput(e.stderr)
	fs.StringVar(&path, "config", "", "YAML config file (default ./"+config.DefaultFile+" if present)")
	fs.StringVar(&scratch.LogLevel, "log-level", scratch.LogLevel, "log level: debug, info, warn or error")
	fs.StringVar(&scratch.LogFormat, "log-format", scratch.LogFormat, "log format: auto, text or json")
	cmd.flags(fs, &scratch)
	if err := fs.Parse(args); err != nil {
		return nil, err
	}

	cfg, err := config.Load(path)
	if err != nil {
		return nil, err
	}
	fs.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "log-level":
			cfg.LogLevel = scratch.LogLevel
		case "log-format":
			cfg.LogFormat = scratch.LogFormat
		case "dict":
			cfg.Dictionary = scratch.Dictionary
		case "graph", "out":
			cfg.Graph = scratch.Graph
		case "workers":
			cfg.Workers = scratch.Workers
		case "list-missed":
			cfg.ListMissed = scratch.ListMissed
		case "maximal":
			cfg.MaximalOnly = scratch.MaximalOnly
		}
	})
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	e.cfg = cfg
	e.log, err = newLogger(e.stderr, cfg.LogLevel, cfg.LogFormat)
	if err != nil {
		return nil, err
	}
	return fs.Args(), nil
}

func graphFlags(fs *flag.FlagSet, cfg *config.Config) {
	fs.StringVar(&cfg.Graph, "graph", cfg.Graph, "graph file")
}

func usage(w io.Writer) {
	fmt.Fprintln(w, "usage: portmantout <command> [flags] [args]")
	fmt.Fprintln(w, "commands:")
	fmt.Fprintln(w, "  build   build a graph file from a word list")
	fmt.Fprintln(w, "  check   check candidate portmantouts against a graph file")
	fmt.Fprintln(w, "  dump    print every node of a graph file")
	fmt.Fprintln(w, "  words   print the words of a graph file")
}

// classify names the kind of a failure for the error log.
func classify(err error) string {
	var se *wordgraph.StructuralError
	var pe *os.PathError
	switch {
	case errors.As(err, &se):
		return "structure"
	case errors.Is(err, wordgraph.ErrEmptyCandidate),
		errors.Is(err, wordgraph.ErrEmptyWord),
		errors.Is(err, wordgraph.ErrWordTooLong):
		return "input"
	case errors.As(err, &pe):
		return "io"
	}
	return "unknown"
}

// fail logs err and returns the error exit status.
func (e *env) fail(comp, msg string, err error) int {
	e.log.Error(msg,
		slog.String("component", comp),
		slog.String("code", classify(err)),
		slog.String("error", err.Error()))
	return exitError
}
