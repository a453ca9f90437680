package cli

import (
	"fmt"
	"io"
	"strings"

	"github.com/chzyer/readline"
)

// Interactive runs a REPL reading one statement/declaration at a time from
// stdin via GNU-readline-style input, printing the tokens/tree/error for
// each line until EOF (Ctrl-D). An interrupt (Ctrl-C) discards the current
// line and the loop goes on.
//
// Grounded on internal/input/input.go's InteractiveCommandReader: readline
// for line editing and history, one blocking Readline call per line, with
// io.EOF as the ordinary end-of-session signal rather than an error.
func Interactive(out, errOut io.Writer, prog string, opts Options) error {
	rl, err := readline.NewEx(&readline.Config{Prompt: "pegi> "})
	if err != nil {
		return fmt.Errorf("create readline session: %w", err)
	}
	defer rl.Close()

	for {
		line, err := rl.Readline()
		if err == readline.ErrInterrupt {
			continue
		}
		if err == io.EOF {
			return nil
		}
		if err != nil {
			return err
		}

		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}

		Process(out, errOut, prog, "<stdin>", line, opts)
	}
}
