package commands

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/leapstack-labs/helios/internal/config"
)

// NewInitCommand creates the init command.
func NewInitCommand() *cobra.Command {
	var force bool

	cmd := &cobra.Command{
		Use:   "init [directory]",
		Short: "Initialize a new Helios project",
		Long: `Initialize a new Helios project with a configuration file and a sample source.

This creates:
  - helios.yaml with the default settings
  - src/main.hl showing declarations, enums and match
  - .gitignore`,
		Example: `  # Initialize in current directory
  helios init

  # Initialize in a new directory
  helios init my-project

  # Overwrite an existing config
  helios init --force`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			dir := "."
			if len(args) > 0 {
				dir = args[0]
			}
			return runInit(NewCommandContext(cmd), dir, force)
		},
	}

	cmd.Flags().BoolVar(&force, "force", false, "Overwrite existing files")

	return cmd
}

func runInit(ctx *CommandContext, dir string, force bool) error {
	r := ctx.Renderer

	if err := os.MkdirAll(dir, 0750); err != nil {
		return fmt.Errorf("failed to create directory %s: %w", dir, err)
	}

	configPath := filepath.Join(dir, config.ConfigFileName)
	if _, err := os.Stat(configPath); err == nil && !force {
		return fmt.Errorf("%s already exists. Use --force to overwrite", configPath)
	}

	files, err := copyTemplate("minimal", dir, force)
	if err != nil {
		return fmt.Errorf("failed to initialize project: %w", err)
	}
	ctx.Logger.Debug("project initialized", "dir", dir, "files", len(files))

	for _, f := range files {
		r.Success(f)
	}

	r.Println("")
	r.Success("Helios project initialized!")
	r.Println("")
	r.Println("Next steps:")
	r.Println("  1. Write sources under src/")
	r.Println("  2. Run 'helios check' to see diagnostics")
	r.Println("  3. Run 'helios fmt --write' to format")

	return nil
}
