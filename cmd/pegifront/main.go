/*
Pegifront tokenizes and parses C++-family source files and prints the
resulting token stream and concrete syntax tree.

Usage:

	pegifront [flags] FILE...

The flags are:

	-v, --version
		Give the current version of pegifront and then exit.

	-t, --tokens-only
		Print only the lexed token stream; skip parsing.

	-w, --watch
		Re-run the tokenize/parse/print cycle whenever the given file
		changes. Accepts exactly one FILE.

	-i, --interactive
		Read one statement/declaration at a time from stdin and print its
		tokens/tree/error, ignoring any FILE arguments.

Each FILE is read, tokenized, and parsed in turn; a lex or parse error is
rendered to stderr and causes a nonzero exit.
*/
package main

import (
	"fmt"
	"os"

	"github.com/niwohlos/pegi/cli"
	"github.com/niwohlos/pegi/internal/version"
	"github.com/spf13/pflag"
)

const (
	// ExitSuccess indicates every input file tokenized and parsed cleanly.
	ExitSuccess = iota

	// ExitProcessingError indicates a lex or parse error was reported for
	// at least one input.
	ExitProcessingError

	// ExitUsageError indicates the flags or arguments themselves were
	// invalid (e.g. --watch given more than one file).
	ExitUsageError
)

var (
	flagVersion     = pflag.BoolP("version", "v", false, "Gives the version info")
	flagTokensOnly  = pflag.BoolP("tokens-only", "t", false, "Print only the lexed token stream")
	flagWatch       = pflag.BoolP("watch", "w", false, "Reparse the given file whenever it changes")
	flagInteractive = pflag.BoolP("interactive", "i", false, "Read statements one at a time from stdin")
)

func main() {
	os.Exit(run())
}

func run() int {
	pflag.Parse()

	if *flagVersion {
		fmt.Printf("%s\n", version.Current)
		return ExitSuccess
	}

	opts := cli.Options{TokensOnly: *flagTokensOnly}

	if *flagInteractive {
		if err := cli.Interactive(os.Stdout, os.Stderr, "pegifront", opts); err != nil {
			fmt.Fprintf(os.Stderr, "pegifront: %s\n", err)
			return ExitProcessingError
		}
		return ExitSuccess
	}

	files := pflag.Args()
	if len(files) == 0 {
		fmt.Fprintln(os.Stderr, "pegifront: no input files given")
		return ExitUsageError
	}

	if *flagWatch {
		if len(files) != 1 {
			fmt.Fprintln(os.Stderr, "pegifront: --watch accepts exactly one file")
			return ExitUsageError
		}
		if err := cli.Watch(os.Stdout, os.Stderr, "pegifront", files[0], opts); err != nil {
			fmt.Fprintf(os.Stderr, "pegifront: %s\n", err)
			return ExitProcessingError
		}
		return ExitSuccess
	}

	ok := true
	for _, path := range files {
		source, err := os.ReadFile(path)
		if err != nil {
			fmt.Fprintf(os.Stderr, "pegifront: %s: %s\n", path, err)
			ok = false
			continue
		}
		if !cli.Process(os.Stdout, os.Stderr, "pegifront", path, string(source), opts) {
			ok = false
		}
	}

	if !ok {
		return ExitProcessingError
	}
	return ExitSuccess
}
