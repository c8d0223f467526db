package commands

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/leapstack-labs/helios/pkg/format"
)

// FmtOptions holds options for the fmt command.
type FmtOptions struct {
	Write bool // rewrite files in place
	Check bool // report files that would change
}

// NewFmtCommand creates the fmt command.
func NewFmtCommand() *cobra.Command {
	opts := &FmtOptions{}
	cmd := &cobra.Command{
		Use:   "fmt <file>...",
		Short: "Print sources in canonical form",
		Long: `Format files with the canonical printer. Files with parse errors are
refused, since formatting a recovered tree would drop the broken code.`,
		Example: `  # Print the formatted source
  helios fmt main.hl

  # Rewrite files in place
  helios fmt --write src/*.hl

  # Fail if any file is not formatted (CI)
  helios fmt --check src/*.hl`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runFmt(cmd, args, opts)
		},
	}

	cmd.Flags().BoolVarP(&opts.Write, "write", "w", false, "Write result to the source file")
	cmd.Flags().BoolVar(&opts.Check, "check", false, "List files whose formatting differs")
	return cmd
}

func runFmt(cmd *cobra.Command, args []string, opts *FmtOptions) error {
	cmdCtx := NewCommandContext(cmd)
	r := cmdCtx.Renderer

	var unformatted []string
	for _, path := range args {
		info, err := os.Stat(path)
		if err != nil {
			return fmt.Errorf("cannot read %s: %w", path, err)
		}
		content, err := os.ReadFile(path) //nolint:gosec // paths come from the user
		if err != nil {
			return fmt.Errorf("failed to read %s: %w", path, err)
		}

		doc := cmdCtx.Provider.Refresh(path, string(content))
		if err := doc.Err(); err != nil {
			return fmt.Errorf("%s: refusing to format: %w", path, err)
		}

		formatted := format.WithComments(doc.File, doc.Comments)
		switch {
		case opts.Check:
			if formatted != doc.Content {
				unformatted = append(unformatted, path)
				r.Println(path)
			}
		case opts.Write:
			if formatted == doc.Content {
				continue
			}
			if err := os.WriteFile(path, []byte(formatted), info.Mode().Perm()); err != nil {
				return fmt.Errorf("failed to write %s: %w", path, err)
			}
			cmdCtx.Logger.Debug("fmt: rewrote file", "path", path)
		default:
			r.Printf("%s", formatted)
		}
	}

	if len(unformatted) > 0 {
		return fmt.Errorf("%d file(s) need formatting", len(unformatted))
	}
	return nil
}
