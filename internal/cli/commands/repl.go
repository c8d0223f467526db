package commands

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/chzyer/readline"
	"github.com/spf13/cobra"

	"github.com/leapstack-labs/helios/internal/cli/output"
	"github.com/leapstack-labs/helios/pkg/ast"
	"github.com/leapstack-labs/helios/pkg/diag"
	"github.com/leapstack-labs/helios/pkg/parser"
	"github.com/leapstack-labs/helios/pkg/scanner"
	"github.com/leapstack-labs/helios/pkg/token"
)

const (
	replPrompt         = "helios> "
	replContinuePrompt = "   ...> "
	replURI            = "<repl>"
)

// NewReplCommand creates the repl command.
func NewReplCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "repl",
		Short: "Parse input interactively",
		Long: `Start an interactive session that parses each entry and prints its syntax
tree and diagnostics. An entry continues over several lines while a block is
open or the input is incomplete; an empty line ends it.`,
		Args: cobra.NoArgs,
		RunE: runRepl,
	}
}

func runRepl(cmd *cobra.Command, _ []string) error {
	cmdCtx := NewCommandContext(cmd)

	historyFile := ""
	if dir, err := os.UserCacheDir(); err == nil {
		historyFile = filepath.Join(dir, "helios", "repl_history")
		_ = os.MkdirAll(filepath.Dir(historyFile), 0o750)
	}

	rl, err := readline.NewEx(&readline.Config{
		Prompt:          replPrompt,
		HistoryFile:     historyFile,
		AutoComplete:    newKeywordCompleter(),
		InterruptPrompt: "^C",
		EOFPrompt:       ".quit",
		Stdout:          cmd.OutOrStdout(),
		Stderr:          cmd.ErrOrStderr(),
	})
	if err != nil {
		return fmt.Errorf("failed to initialize REPL: %w", err)
	}
	defer func() { _ = rl.Close() }()

	_, _ = fmt.Fprintln(cmd.OutOrStdout(), "Helios REPL")
	_, _ = fmt.Fprintln(cmd.OutOrStdout(), "Type .help for commands, .quit to exit")
	_, _ = fmt.Fprintln(cmd.OutOrStdout())

	session := newReplSession(cmd.OutOrStdout(), cmdCtx.Cfg.ParserOptions()...)
	for {
		line, err := rl.Readline()
		if errors.Is(err, readline.ErrInterrupt) {
			session.reset()
			rl.SetPrompt(replPrompt)
			continue
		}
		if errors.Is(err, io.EOF) {
			return nil
		}
		if err != nil {
			return err
		}

		if session.feed(line) {
			return nil
		}
		rl.SetPrompt(session.prompt())
	}
}

// replSession accumulates input and prints the parse of each complete entry.
type replSession struct {
	w          io.Writer
	opts       []parser.Option
	buf        []string
	showTokens bool
	showSpans  bool
}

func newReplSession(w io.Writer, opts ...parser.Option) *replSession {
	return &replSession{w: w, opts: opts}
}

func (s *replSession) reset() {
	s.buf = s.buf[:0]
}

func (s *replSession) prompt() string {
	if len(s.buf) > 0 {
		return replContinuePrompt
	}
	return replPrompt
}

// feed handles one input line and reports whether the session should end.
func (s *replSession) feed(line string) bool {
	if len(s.buf) == 0 {
		trimmed := strings.TrimSpace(line)
		if trimmed == "" {
			return false
		}
		if strings.HasPrefix(trimmed, ".") {
			return s.command(trimmed)
		}
	} else if strings.TrimSpace(line) == "" {
		s.evaluate()
		return false
	}

	s.buf = append(s.buf, line)
	if s.needsMore(line) {
		return false
	}
	s.evaluate()
	return false
}

// needsMore reports whether the entry continues on the next line: the last
// line is indented (a block is open) or the parser ran into the end of input.
func (s *replSession) needsMore(last string) bool {
	if len(s.buf) > 1 && (strings.HasPrefix(last, " ") || strings.HasPrefix(last, "\t")) {
		return true
	}
	text := strings.Join(s.buf, "\n")
	res := parser.Parse(token.NewSource(replURI, text), s.opts...)
	end := len(strings.TrimRight(text, " \t\r\n"))
	for _, d := range res.Diagnostics {
		if d.Span.Start.Offset >= end {
			return true
		}
	}
	return false
}

func (s *replSession) evaluate() {
	text := strings.Join(s.buf, "\n") + "\n"
	s.reset()

	if s.showTokens {
		toks := scanner.New(text, &diag.Sink{}, scanner.Config{}).All()
		r := output.NewRenderer(s.w, s.w, output.ModeText)
		_ = r.Tokens(toks)
	}

	res := parser.Parse(token.NewSource(replURI, text), s.opts...)
	for _, item := range res.File.Items {
		_ = output.EncodeTree(s.w, ast.Dump(item, ast.DumpOptions{Spans: s.showSpans}), output.TreeText)
	}
	if len(res.Diagnostics) > 0 {
		r := output.NewRenderer(s.w, s.w, output.ModeText)
		r.DisableColor()
		_ = r.Diagnostics([]output.FileDiagnostics{{Path: replURI, Source: text, Diagnostics: res.Diagnostics}})
	}
}

func (s *replSession) command(line string) bool {
	switch strings.Fields(line)[0] {
	case ".quit", ".exit":
		return true
	case ".help":
		printREPLHelp(s.w)
	case ".tokens":
		s.showTokens = !s.showTokens
		_, _ = fmt.Fprintf(s.w, "token display %s\n", onOff(s.showTokens))
	case ".spans":
		s.showSpans = !s.showSpans
		_, _ = fmt.Fprintf(s.w, "span display %s\n", onOff(s.showSpans))
	case ".clear":
		_, _ = fmt.Fprint(s.w, "\033[H\033[2J")
	default:
		_, _ = fmt.Fprintf(s.w, "Unknown command: %s (type .help for commands)\n", line)
	}
	return false
}

func onOff(b bool) string {
	if b {
		return "on"
	}
	return "off"
}

func printREPLHelp(w io.Writer) {
	help := `
Commands:
  .help           Show this help message
  .tokens         Toggle printing the token stream
  .spans          Toggle printing node spans
  .clear          Clear the screen
  .quit / .exit   Exit the REPL

Tips:
  - An entry continues while a block is open; an empty line ends it
  - Use arrow keys to navigate history
  - Tab completion works for keywords
`
	_, _ = fmt.Fprintln(w, help)
}

// newKeywordCompleter completes keywords and dot-commands.
func newKeywordCompleter() *readline.PrefixCompleter {
	var items []readline.PrefixCompleterInterface
	for _, kw := range token.Keywords() {
		items = append(items, readline.PcItem(kw))
	}
	items = append(items,
		readline.PcItem(".help"),
		readline.PcItem(".tokens"),
		readline.PcItem(".spans"),
		readline.PcItem(".clear"),
		readline.PcItem(".quit"),
		readline.PcItem(".exit"),
	)
	return readline.NewPrefixCompleter(items...)
}
