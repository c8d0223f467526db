package commands

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/leapstack-labs/helios/pkg/diag"
	"github.com/leapstack-labs/helios/pkg/scanner"
)

// NewTokensCommand creates the tokens command.
func NewTokensCommand() *cobra.Command {
	var format string
	cmd := &cobra.Command{
		Use:   "tokens <file>",
		Short: "Print the token stream of a source file",
		Long: `Scan a file and print every token the parser would see, including the
NEWLINE, INDENT and OUTDENT tokens produced by the layout rules.`,
		Example: `  helios tokens main.hl
  helios tokens main.hl --format json`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cmdCtx := NewCommandContext(cmd)
			r := cmdCtx.WithMode(cmd, format)
			cfg := cmdCtx.Cfg

			content, err := os.ReadFile(args[0])
			if err != nil {
				return fmt.Errorf("failed to read %s: %w", args[0], err)
			}

			layout, err := scanner.NewLayout(scanner.LayoutKind(cfg.Layout), cfg.TabWidth)
			if err != nil {
				return err
			}
			sink := &diag.Sink{}
			sc := scanner.New(string(content), sink, scanner.Config{
				MaxDepth:    cfg.MaxDepth,
				Layout:      layout,
				DocComments: cfg.DocComments,
				Logger:      cmdCtx.Logger,
			})

			if err := r.Tokens(sc.All()); err != nil {
				return err
			}
			for _, d := range sink.All() {
				r.Warning(fmt.Sprintf("%s:%s", args[0], d.Error()))
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&format, "format", "f", "", "Output format: text, markdown, json")
	return cmd
}
