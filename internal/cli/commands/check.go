package commands

import (
	"context"
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/leapstack-labs/helios/internal/cli/output"
	"github.com/leapstack-labs/helios/internal/provider"
	"github.com/leapstack-labs/helios/pkg/diag"
)

// ErrProblemsFound is returned by check when an error diagnostic was reported.
var ErrProblemsFound = errors.New("problems found")

// CheckOptions holds options for the check command.
type CheckOptions struct {
	Format      string // Output format: text, markdown, json
	MinSeverity string // error, warning
	Watch       bool   // Re-check on file changes
}

// NewCheckCommand creates the check command.
func NewCheckCommand() *cobra.Command {
	opts := &CheckOptions{}
	cmd := &cobra.Command{
		Use:   "check [path...]",
		Short: "Parse sources and report diagnostics",
		Long: `Parse Helios sources and report every lexical, syntax and structural
diagnostic found. Directories are searched with the include patterns from
helios.yaml (default **/*.hl). Files are parsed in parallel.

Output adapts to environment:
  - Terminal: Styled output with source snippets
  - Piped/Scripted: Markdown format
  - JSON: Machine-readable format

Exits with status 1 when an error is reported.`,
		Example: `  # Check the whole project
  helios check

  # Check one directory and one file
  helios check src/ scratch.hl

  # Only report errors, as JSON
  helios check --min-severity error --format json

  # Re-check whenever a source changes
  helios check --watch`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runCheck(cmd, args, opts)
		},
	}

	cmd.Flags().StringVarP(&opts.Format, "format", "f", "", "Output format: text, markdown, json")
	cmd.Flags().StringVar(&opts.MinSeverity, "min-severity", "warning", "Minimum severity: error, warning")
	cmd.Flags().BoolVarP(&opts.Watch, "watch", "w", false, "Watch sources and re-check on change")

	_ = cmd.RegisterFlagCompletionFunc("min-severity", func(_ *cobra.Command, _ []string, _ string) ([]string, cobra.ShellCompDirective) {
		return []string{"error", "warning"}, cobra.ShellCompDirectiveNoFileComp
	})

	return cmd
}

func runCheck(cmd *cobra.Command, args []string, opts *CheckOptions) error {
	cmdCtx := NewCommandContext(cmd)
	r := cmdCtx.WithMode(cmd, opts.Format)

	minSev, ok := diag.ParseSeverity(opts.MinSeverity)
	if !ok {
		return fmt.Errorf("invalid --min-severity %q (valid: error, warning)", opts.MinSeverity)
	}

	for _, key := range cmdCtx.Cfg.UnknownKeys {
		r.Warning(fmt.Sprintf("unknown configuration key %q", key))
	}

	if opts.Watch {
		return watch(cmd.Context(), cmdCtx, args, func(ctx context.Context) {
			if err := checkOnce(ctx, cmdCtx, r, args, minSev); err != nil && !errors.Is(err, ErrProblemsFound) {
				r.Error(err.Error())
			}
		})
	}
	return checkOnce(cmd.Context(), cmdCtx, r, args, minSev)
}

// checkOnce parses the sources named by args and renders their diagnostics.
func checkOnce(ctx context.Context, cmdCtx *CommandContext, r *output.Renderer, args []string, minSev diag.Severity) error {
	paths, err := collectPaths(cmdCtx.Cfg, args)
	if err != nil {
		return err
	}
	srcs, err := readSources(paths)
	if err != nil {
		return err
	}

	docs, err := cmdCtx.Provider.ParseAll(ctx, srcs)
	if err != nil {
		return fmt.Errorf("check cancelled: %w", err)
	}

	files := fileDiagnostics(docs, minSev)
	if err := r.Diagnostics(files); err != nil {
		return err
	}
	if output.Summarize(files).Errors > 0 {
		return ErrProblemsFound
	}
	return nil
}

func fileDiagnostics(docs []*provider.ParsedDocument, minSev diag.Severity) []output.FileDiagnostics {
	files := make([]output.FileDiagnostics, 0, len(docs))
	for _, doc := range docs {
		files = append(files, output.FileDiagnostics{
			Path:        doc.URI,
			Source:      doc.Content,
			Diagnostics: diag.Filter(doc.Diagnostics, minSev),
		})
	}
	return files
}
