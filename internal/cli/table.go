// Package cli implements the interactive divination table: a small REPL
// that dispatches user commands to the Table facade and renders results
// through the tui package.
package cli

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/aretw0/cliching"
	"github.com/aretw0/cliching/internal/logging"
	"github.com/aretw0/cliching/internal/presentation/tui"
	"github.com/aretw0/cliching/pkg/divination"
	"golang.org/x/term"
)

const prompt = "\ndivination table >>> "

const helpText = `
Divination table commands:

  g / get               - Cast a new original hexagram
  c / change <position> - Derive the changing hexagram for the given line
    positions (1-6). For example: c 1,3,5 or change 2 4 6.
  s / show              - Show the current hexagram(s)
  clear / reset         - Clear the table
  h / help              - Show this help message
  q / quit / exit       - Leave the table
`

// Options configures the interactive table run.
type Options struct {
	In       io.Reader
	Out      io.Writer
	Plain    bool
	Debug    bool
	Question string

	// Table overrides the default table, e.g. with a seeded caster.
	Table *cliching.Table
}

// RunTable runs the interactive divination table until the user quits or
// input ends.
func RunTable(opts Options) error {
	logger := createLogger(opts.Debug)

	table := opts.Table
	if table == nil {
		var err error
		table, err = cliching.New(
			cliching.WithLogger(logger),
			cliching.WithQuestion(opts.Question),
		)
		if err != nil {
			return fmt.Errorf("error initializing table: %w", err)
		}
	}

	in := opts.In
	if in == nil {
		in = os.Stdin
	}
	out := opts.Out
	if out == nil {
		out = os.Stdout
	}

	r := &repl{
		table:    table,
		renderer: tui.NewRenderer(opts.Plain),
		out:      out,
	}

	if isInteractive(in) {
		tui.PrintBanner(out, cliching.Version)
	}
	if opts.Question != "" {
		fmt.Fprintf(out, "\nQuestion: %s\n", opts.Question)
		fmt.Fprintln(out, strings.Repeat("-", 40))
	}

	scanner := bufio.NewScanner(in)
	for {
		fmt.Fprint(out, prompt)
		if !scanner.Scan() {
			fmt.Fprintln(out, "\nLeaving the divination table.")
			break
		}

		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		if quit := r.dispatch(line); quit {
			break
		}
	}

	return scanner.Err()
}

type repl struct {
	table    *cliching.Table
	renderer *tui.Renderer
	out      io.Writer
}

// dispatch handles one command line and reports whether the table should
// close.
func (r *repl) dispatch(line string) bool {
	cmd, args, _ := strings.Cut(line, " ")

	switch strings.ToLower(cmd) {
	case "q", "quit", "exit":
		fmt.Fprintln(r.out, "Returning to the terminal...")
		return true
	case "g", "get":
		r.cast()
	case "c", "change":
		r.change(args)
	case "s", "show":
		r.show()
	case "clear", "reset":
		r.table.Reset()
		fmt.Fprintln(r.out, "The divination table has been cleared.")
	case "h", "help":
		fmt.Fprint(r.out, helpText)
	default:
		fmt.Fprintf(r.out, "Unknown command: %s.\n", line)
		fmt.Fprintln(r.out, "Type 'h' for help.")
	}
	return false
}

func (r *repl) cast() {
	hexagram := r.table.Cast()
	r.printHexagram(hexagram)
	r.printInterpretation(hexagram)
}

func (r *repl) change(args string) {
	if r.table.Current().Original == nil {
		fmt.Fprintln(r.out, "Cast an original hexagram first with 'g'.")
		return
	}

	positions := ParsePositions(args)
	if len(positions) == 0 {
		fmt.Fprintln(r.out, "Usage: c <line position> or change <line position>")
		fmt.Fprintln(r.out, "For example: c 1,3,5 or change 2 4 6")
		return
	}

	for _, position := range positions {
		if position < 1 || position > divination.LineCount {
			fmt.Fprintf(r.out, "Error: line positions must be between 1 and 6, given %d.\n", position)
			return
		}
	}

	original := r.table.Current().Original
	changing, skipped, err := original.ChangingPositions(positions)
	if err != nil {
		// Unreachable after the range check above.
		fmt.Fprintf(r.out, "Error: %v\n", err)
		return
	}

	for _, position := range skipped {
		yao, _ := original.Yao(position)
		fmt.Fprintf(r.out, "Warning: line %d (young %s) is not a changing line.\n",
			position, yao.Value)
	}

	if len(changing) == 0 {
		fmt.Fprintln(r.out, "No changing line selected. The original hexagram remains.")
		return
	}

	fmt.Fprintf(r.out, "Changing lines: %v\n", changing)

	changed, _, err := r.table.Change(changing)
	if err != nil {
		fmt.Fprintf(r.out, "Error: %v\n", err)
		return
	}

	fmt.Fprintln(r.out, "\nChanging hexagram:")
	r.printHexagram(changed)
	r.printInterpretation(changed)
}

func (r *repl) show() {
	session := r.table.Current()
	if session.Original == nil {
		fmt.Fprintln(r.out, "No hexagram on the table. Use 'g' to cast one.")
		return
	}

	fmt.Fprintln(r.out, "\nOriginal hexagram:")
	r.printHexagram(session.Original)

	if session.Changed != nil {
		fmt.Fprintln(r.out, "\nChanging hexagram:")
		r.printHexagram(session.Changed)
	}
}

func (r *repl) printHexagram(h *divination.Hexagram) {
	entry, err := r.table.Interpret(h)
	if err != nil {
		fmt.Fprintf(r.out, "Error: %v\n", err)
		return
	}
	fmt.Fprint(r.out, r.renderer.Hexagram(h, entry))
}

func (r *repl) printInterpretation(h *divination.Hexagram) {
	entry, err := r.table.Interpret(h)
	if err != nil {
		fmt.Fprintf(r.out, "Error: %v\n", err)
		return
	}
	fmt.Fprint(r.out, r.renderer.Interpretation(entry))
}

// createLogger configures the application logger. Quiet unless debugging,
// so the table's output stays readable.
func createLogger(debug bool) *slog.Logger {
	if debug {
		return logging.New(slog.LevelDebug)
	}
	return logging.NewNop()
}

// isInteractive reports whether the input is a terminal; the banner is
// only worth printing to a human.
func isInteractive(in io.Reader) bool {
	file, ok := in.(*os.File)
	if !ok {
		return false
	}
	return term.IsTerminal(int(file.Fd()))
}

// ExitCode maps a run error to a process exit code.
func ExitCode(err error) int {
	if err == nil || errors.Is(err, io.EOF) {
		return 0
	}
	return 1
}
