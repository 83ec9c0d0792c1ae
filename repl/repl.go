package repl

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"github.com/umoja4life/fatashi"
	"github.com/umoja4life/fatashi/service"
	"io"
	"slices"
	"strconv"
	"strings"
)

const HelpText = "  tafuta, methali, list, browse, sts, options, help, quit, exit"

// REPL reads commands line by line and writes results for a person to read.
type REPL struct {
	Service *service.Service
	Out     io.Writer
	Theme   Theme
	Version string
}

// Run prompts for and executes lines from in until a quit command, the end of
// input, or cancellation of ctx.
func (r *REPL) Run(ctx context.Context, in io.Reader) error {
	scanner := bufio.NewScanner(in)
	for {
		r.prompt()
		if !scanner.Scan() {
			_, _ = fmt.Fprintln(r.Out)
			return scanner.Err()
		}

		if !r.Execute(ctx, scanner.Text()) {
			return nil
		}
		if err := ctx.Err(); err != nil {
			return err
		}
	}
}

// Execute runs one input line. It returns false when the line asks the loop to
// end.
func (r *REPL) Execute(ctx context.Context, line string) bool {
	fields := strings.Fields(line)
	if len(fields) == 0 {
		return true
	}

	cmd, args := fields[0], fields[1:]
	switch {
	case isOneOf(cmd, "x", "ex", "exit", "q", "quit"):
		return false

	case cmd == "tafuta":
		r.search(ctx, service.ChainVocabulary, 1, args)
	case isRun(cmd, "t", "", 4):
		r.search(ctx, service.ChainVocabulary, len(cmd), args)

	case cmd == "methali":
		r.search(ctx, service.ChainMethali, 1, args)
	case isRun(cmd, "m", "", 4):
		r.search(ctx, service.ChainMethali, len(cmd), args)

	case isRun(cmd, "l", "m", 4):
		r.list(ctx, service.ChainMethali, len(cmd)-1, args)

	case cmd == "list":
		r.list(ctx, service.ChainVocabulary, 1, args)
	case isRun(cmd, "l", "", 4):
		r.list(ctx, service.ChainVocabulary, len(cmd), args)

	case cmd == "browse":
		r.browse(ctx, 1, args)
	case isRun(cmd, "b", "", 4):
		r.browse(ctx, len(cmd), args)

	case isOneOf(cmd, "s", "sts", "status"):
		r.status(ctx, service.ChainVocabulary)
	case cmd == "ms":
		r.status(ctx, service.ChainMethali)

	case isOneOf(cmd, "f", "flags", "o", "options"):
		r.options()
	case isOneOf(cmd, "h", "help"):
		r.info(HelpText)
	case isOneOf(cmd, "v", "version"):
		r.info(fmt.Sprintf("%s %s", r.Service.Options.Name, r.Version))

	default:
		r.search(ctx, service.ChainVocabulary, 1, fields)
	}

	return true
}

func (r *REPL) search(ctx context.Context, kind service.ChainKind, depth int, tokens []string) {
	if len(tokens) == 0 {
		r.warn("nothing to search for")
		return
	}

	res, err := r.Service.Search(ctx, kind, depth, tokens)
	if err != nil {
		r.fail(err)
		return
	}

	format := res.Source.Format()
	for _, lookup := range res.Lookups {
		if err := r.Theme.Result.Render(r.Out, format, lookup); err != nil {
			r.fail(err)
			return
		}
	}
	for _, patternErr := range res.Errors {
		r.fail(patternErr)
	}
}

func (r *REPL) list(ctx context.Context, kind service.ChainKind, depth int, args []string) {
	n := 0
	if len(args) > 0 {
		if v, err := strconv.Atoi(args[0]); err == nil {
			n = v
		}
	}

	res, err := r.Service.List(ctx, kind, depth, n)
	if err != nil {
		r.fail(err)
		return
	}

	r.records(res)
}

func (r *REPL) browse(ctx context.Context, depth int, args []string) {
	if len(args) == 0 {
		r.warn("browse needs a key to start from")
		return
	}

	res, err := r.Service.Browse(ctx, service.ChainVocabulary, depth, args[0], 0)
	if err != nil {
		r.fail(err)
		return
	}
	if len(res.Records) == 0 {
		r.warn(fmt.Sprintf("%s not found in %s", args[0], res.Source.Name()))
		return
	}

	r.records(res)
}

func (r *REPL) records(res *service.ListResult) {
	if err := r.Theme.Result.RenderRecords(r.Out, res.Source.Format(), res.Records); err != nil {
		r.fail(err)
	}
}

func (r *REPL) status(ctx context.Context, kind service.ChainKind) {
	lines, err := r.Service.Status(ctx, kind)
	if err != nil {
		r.fail(err)
		return
	}

	for _, line := range lines {
		r.info(line)
	}
}

func (r *REPL) options() {
	opts := r.Service.Options
	r.info(fmt.Sprintf("name: %s", opts.Name))
	r.info(fmt.Sprintf("list line count: %d", opts.ListLineCount))
	r.info(fmt.Sprintf("prod: %t, verbose: %t, debug: %t", opts.Prod, opts.Verbose, opts.Debug))
}

func (r *REPL) prompt() {
	_, _ = fmt.Fprint(r.Out, apply(r.Theme.Prompt, r.Service.Options.Name+" > "))
}

func (r *REPL) info(s string) {
	_, _ = fmt.Fprintln(r.Out, apply(r.Theme.Info, s))
}

func (r *REPL) warn(s string) {
	_, _ = fmt.Fprintln(r.Out, apply(r.Theme.Warn, s))
}

func (r *REPL) fail(err error) {
	msg := err.Error()
	switch {
	case errors.Is(err, fatashi.ErrEmptyChain):
		msg = "no dictionary loaded for this command"
	case errors.Is(err, context.Canceled):
		msg = "cancelled"
	}

	_, _ = fmt.Fprintln(r.Out, apply(r.Theme.Error, msg))
}

func isOneOf(cmd string, names ...string) bool {
	return slices.Contains(names, cmd)
}

// isRun reports whether cmd is prefix followed by 1 to limit copies of letter.
func isRun(cmd, letter, prefix string, limit int) bool {
	rest, ok := strings.CutPrefix(cmd, prefix)
	if !ok || rest == "" || len(rest) > limit {
		return false
	}

	return strings.Count(rest, letter) == len(rest)
}
