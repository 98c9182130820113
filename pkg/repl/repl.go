// Package repl is the plain line-mode frontend: prompt, read a line,
// submit it, print the agent lines that appeared. Used when stdin is
// not a terminal or when the TUI is disabled.
package repl

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/parleyhq/parley/pkg/transcript"
	"github.com/parleyhq/parley/pkg/turns"
)

// exitWords end the session, matching the usual chat conventions.
var exitWords = map[string]bool{
	"exit": true,
	"quit": true,
	"stop": true,
}

// Run drives the read-submit-print loop until EOF or an exit word.
func Run(ctx context.Context, in io.Reader, out io.Writer, sink *transcript.Transcript, ctrl *turns.Controller) error {
	fmt.Fprintln(out, "parley — Enter to send, 'exit' to leave")

	scanner := bufio.NewScanner(in)
	rendered := 0

	for {
		fmt.Fprint(out, "You: ")
		if !scanner.Scan() {
			fmt.Fprintln(out)
			return scanner.Err()
		}

		line := strings.TrimSpace(scanner.Text())
		if exitWords[strings.ToLower(line)] {
			return nil
		}

		ctrl.SubmitTurn(ctx, line)
		ctrl.Wait()

		// The terminal already shows what the user typed, so only the
		// agent side of the exchange is printed here.
		lines := sink.Lines()
		for _, l := range lines[rendered:] {
			if l.Speaker == transcript.SpeakerAgent {
				fmt.Fprintf(out, "AI: %s\n", l.Text)
			}
		}
		rendered = len(lines)
	}
}
