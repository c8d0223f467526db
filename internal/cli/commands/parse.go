package commands

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/leapstack-labs/helios/internal/cli/output"
	"github.com/leapstack-labs/helios/pkg/ast"
	"github.com/leapstack-labs/helios/pkg/diag"
)

// ParseOptions holds options for the parse command.
type ParseOptions struct {
	Format string // tree, json, yaml, cbor
	Spans  bool   // include node spans
}

// NewParseCommand creates the parse command.
func NewParseCommand() *cobra.Command {
	opts := &ParseOptions{}
	cmd := &cobra.Command{
		Use:   "parse <file>...",
		Short: "Print the syntax tree of source files",
		Long: `Parse each file and print its syntax tree. The tree is printed even when
the source has errors; placeholder nodes mark where recovery happened, and
the diagnostics are written to stderr.`,
		Example: `  # Indented tree
  helios parse main.hl

  # YAML with source spans
  helios parse main.hl --format yaml --spans

  # Binary CBOR for another tool
  helios parse main.hl --format cbor > main.cbor`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runParse(cmd, args, opts)
		},
	}

	cmd.Flags().StringVarP(&opts.Format, "format", "f", string(output.TreeText), "Tree format: tree, json, yaml, cbor")
	cmd.Flags().BoolVar(&opts.Spans, "spans", false, "Include source spans")

	_ = cmd.RegisterFlagCompletionFunc("format", func(_ *cobra.Command, _ []string, _ string) ([]string, cobra.ShellCompDirective) {
		return output.TreeFormats, cobra.ShellCompDirectiveNoFileComp
	})

	return cmd
}

func runParse(cmd *cobra.Command, args []string, opts *ParseOptions) error {
	cmdCtx := NewCommandContext(cmd)
	r := cmdCtx.Renderer

	failed := false
	for _, path := range args {
		content, err := os.ReadFile(path) //nolint:gosec // paths come from the user
		if err != nil {
			return fmt.Errorf("failed to read %s: %w", path, err)
		}
		doc := cmdCtx.Provider.Refresh(path, string(content))

		dump := ast.Dump(doc.File, ast.DumpOptions{Spans: opts.Spans})
		if err := r.Tree(dump, output.TreeFormat(opts.Format)); err != nil {
			return err
		}

		if len(doc.Diagnostics) > 0 {
			errR := output.NewRenderer(cmd.ErrOrStderr(), cmd.ErrOrStderr(), output.ModeText)
			errR.DisableColor()
			_ = errR.Diagnostics([]output.FileDiagnostics{{
				Path:        path,
				Source:      doc.Content,
				Diagnostics: doc.Diagnostics,
			}})
		}
		if diag.CountErrors(doc.Diagnostics) > 0 {
			failed = true
		}
	}

	if failed {
		return ErrProblemsFound
	}
	return nil
}
