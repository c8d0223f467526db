package commands

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/leapstack-labs/helios/internal/config"
	"github.com/leapstack-labs/helios/pkg/parser"
	"github.com/leapstack-labs/helios/pkg/token"
)

func TestNewInitCommand(t *testing.T) {
	tests := []struct {
		name      string
		setupDir  func(t *testing.T, dir string)
		args      []string
		wantErr   bool
		wantFiles []string
	}{
		{
			name:      "init empty directory",
			wantFiles: []string{"helios.yaml", ".gitignore", "src/main.hl"},
		},
		{
			name: "init existing config without force",
			setupDir: func(t *testing.T, dir string) {
				require.NoError(t, os.WriteFile(filepath.Join(dir, "helios.yaml"), []byte("existing"), 0600))
			},
			wantErr: true,
		},
		{
			name: "init existing config with force",
			setupDir: func(t *testing.T, dir string) {
				require.NoError(t, os.WriteFile(filepath.Join(dir, "helios.yaml"), []byte("existing"), 0600))
			},
			args:      []string{"--force"},
			wantFiles: []string{"helios.yaml", "src/main.hl"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			dir := t.TempDir()
			if tt.setupDir != nil {
				tt.setupDir(t, dir)
			}

			out, _, err := execute(t, NewInitCommand(), config.Default(), append(tt.args, dir)...)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Contains(t, out, "Helios project initialized!")

			for _, f := range tt.wantFiles {
				assert.FileExists(t, filepath.Join(dir, filepath.FromSlash(f)))
			}
		})
	}
}

func TestInit_ScaffoldIsValid(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "project")
	_, _, err := execute(t, NewInitCommand(), config.Default(), dir)
	require.NoError(t, err)

	cfg := projectConfig(t, dir)
	assert.Equal(t, []string{"src/**/*.hl"}, cfg.Include)
	assert.Equal(t, filepath.Join(dir, "helios.yaml"), cfg.ConfigFile)

	src, err := os.ReadFile(filepath.Join(dir, "src", "main.hl"))
	require.NoError(t, err)
	res := parser.Parse(token.NewSource("main.hl", string(src)))
	assert.Empty(t, res.Diagnostics)
}

func TestInit_KeepsExistingSources(t *testing.T) {
	dir := t.TempDir()
	main := filepath.Join(dir, "src", "main.hl")
	require.NoError(t, os.MkdirAll(filepath.Dir(main), 0750))
	require.NoError(t, os.WriteFile(main, []byte("let mine = 1\n"), 0600))

	out, _, err := execute(t, NewInitCommand(), config.Default(), dir)
	require.NoError(t, err)
	assert.NotContains(t, out, "src/main.hl")

	content, err := os.ReadFile(main)
	require.NoError(t, err)
	assert.Equal(t, "let mine = 1\n", string(content))
}
