package commands

import (
	"bytes"
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/leapstack-labs/helios/internal/cli/output"
	clitestutil "github.com/leapstack-labs/helios/internal/cli/testutil"
	"github.com/leapstack-labs/helios/internal/config"
	"github.com/leapstack-labs/helios/internal/provider"
	"github.com/leapstack-labs/helios/internal/testutil"
)

// execute runs cmd with cfg stored in its context, as the root command would.
func execute(t *testing.T, cmd *cobra.Command, cfg *config.Config, args ...string) (string, string, error) {
	t.Helper()
	out, errOut := &bytes.Buffer{}, &bytes.Buffer{}
	cmd.SetOut(out)
	cmd.SetErr(errOut)
	cmd.SetArgs(args)

	ctx := config.WithConfig(context.Background(), cfg)
	ctx = config.WithLogger(ctx, testutil.NewTestLogger(t))
	err := cmd.ExecuteContext(ctx)
	return out.String(), errOut.String(), err
}

func projectConfig(t *testing.T, dir string) *config.Config {
	t.Helper()
	cfg, err := config.Load(config.LoadOptions{Dir: dir})
	require.NoError(t, err)
	return cfg
}

func TestCommandMetadata(t *testing.T) {
	tests := []struct {
		cmd   *cobra.Command
		use   string
		flags []string
	}{
		{NewCheckCommand(), "check [path...]", []string{"format", "min-severity", "watch"}},
		{NewParseCommand(), "parse <file>...", []string{"format", "spans"}},
		{NewTokensCommand(), "tokens <file>", []string{"format"}},
		{NewFmtCommand(), "fmt <file>...", []string{"write", "check"}},
		{NewReplCommand(), "repl", nil},
		{NewInitCommand(), "init [directory]", []string{"force"}},
	}

	for _, tt := range tests {
		t.Run(tt.use, func(t *testing.T) {
			assert.Equal(t, tt.use, tt.cmd.Use)
			assert.NotEmpty(t, tt.cmd.Short, "Short should not be empty")
			for _, flag := range tt.flags {
				assert.NotNil(t, tt.cmd.Flags().Lookup(flag), "flag %q should exist", flag)
			}
		})
	}
}

func TestCheck_Project(t *testing.T) {
	dir := clitestutil.SetupTestProject(t)
	cfg := projectConfig(t, dir)

	stdout, _, err := execute(t, NewCheckCommand(), cfg)
	require.ErrorIs(t, err, ErrProblemsFound)

	assert.Contains(t, stdout, filepath.Join(dir, "src", "lib", "broken.hl"))
	assert.Contains(t, stdout, "E0020")
	assert.NotContains(t, stdout, "math.hl", "clean files get no section")
	assert.Contains(t, stdout, "in 2 file(s)", "notes.txt is not included")
	clitestutil.AssertNoANSI(t, stdout)
	clitestutil.AssertValidMarkdown(t, stdout)
}

func TestCheck_JSON(t *testing.T) {
	dir := clitestutil.SetupTestProject(t)
	cfg := projectConfig(t, dir)

	stdout, _, err := execute(t, NewCheckCommand(), cfg, "--format", "json")
	require.ErrorIs(t, err, ErrProblemsFound)

	var decoded struct {
		Diagnostics []output.DiagnosticJSON `json:"diagnostics"`
		Summary     output.Summary          `json:"summary"`
	}
	require.NoError(t, json.Unmarshal([]byte(stdout), &decoded))
	assert.Equal(t, output.Summary{Files: 2, Errors: 1}, decoded.Summary)
	require.Len(t, decoded.Diagnostics, 1)
	assert.Equal(t, 7, decoded.Diagnostics[0].Column)
}

func TestCheck_CleanFile(t *testing.T) {
	dir := clitestutil.SetupTestProject(t)
	cfg := projectConfig(t, dir)

	stdout, _, err := execute(t, NewCheckCommand(), cfg, "--format", "text", filepath.Join(dir, "src", "math.hl"))
	require.NoError(t, err)
	assert.Contains(t, stdout, "1 file(s) checked, no problems")
}

func TestCheck_InvalidSeverity(t *testing.T) {
	_, _, err := execute(t, NewCheckCommand(), config.Default(), "--min-severity", "fatal", t.TempDir())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "min-severity")
}

func TestCheck_MissingPath(t *testing.T) {
	_, _, err := execute(t, NewCheckCommand(), config.Default(), filepath.Join(t.TempDir(), "missing.hl"))
	require.Error(t, err)
	assert.NotErrorIs(t, err, ErrProblemsFound)
}

func TestParse_JSON(t *testing.T) {
	dir := testutil.WriteFiles(t, map[string]string{"a.hl": "fun add(a: Int, b: Int): Int => a + b\n"})

	stdout, stderr, err := execute(t, NewParseCommand(), config.Default(), "--format", "json", filepath.Join(dir, "a.hl"))
	require.NoError(t, err)
	assert.Empty(t, stderr)

	var tree map[string]any
	require.NoError(t, json.Unmarshal([]byte(stdout), &tree))
	assert.Equal(t, "File", tree["node"])
	items, ok := tree["items"].([]any)
	require.True(t, ok)
	require.Len(t, items, 1)
	assert.Equal(t, "FunDecl", items[0].(map[string]any)["node"])
}

func TestParse_BrokenStillPrintsTree(t *testing.T) {
	dir := testutil.WriteFiles(t, map[string]string{"b.hl": clitestutil.BrokenSource})

	stdout, stderr, err := execute(t, NewParseCommand(), config.Default(), filepath.Join(dir, "b.hl"))
	require.ErrorIs(t, err, ErrProblemsFound)
	assert.Contains(t, stdout, "FunDecl")
	assert.Contains(t, stderr, "expected parameter name")
}

func TestParse_UnknownFormat(t *testing.T) {
	dir := testutil.WriteFiles(t, map[string]string{"a.hl": "1\n"})

	_, _, err := execute(t, NewParseCommand(), config.Default(), "--format", "xml", filepath.Join(dir, "a.hl"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown tree format")
}

func TestTokens_JSON(t *testing.T) {
	dir := testutil.WriteFiles(t, map[string]string{"t.hl": "fun f()\n    1\n"})

	stdout, _, err := execute(t, NewTokensCommand(), config.Default(), "--format", "json", filepath.Join(dir, "t.hl"))
	require.NoError(t, err)

	var toks []output.TokenJSON
	require.NoError(t, json.Unmarshal([]byte(stdout), &toks))
	var kinds []string
	for _, tok := range toks {
		kinds = append(kinds, tok.Kind)
	}
	assert.Contains(t, kinds, "INDENT")
	assert.Contains(t, kinds, "OUTDENT")
	assert.Equal(t, "EOF", kinds[len(kinds)-1])
}

func TestFmt(t *testing.T) {
	dir := testutil.WriteFiles(t, map[string]string{
		"messy.hl":  "let x=1;let y=2",
		"tidy.hl":   "let x = 1\n",
		"broken.hl": clitestutil.BrokenSource,
	})
	messy := filepath.Join(dir, "messy.hl")

	t.Run("print", func(t *testing.T) {
		stdout, _, err := execute(t, NewFmtCommand(), config.Default(), messy)
		require.NoError(t, err)
		assert.Equal(t, "let x = 1\nlet y = 2\n", stdout)
	})

	t.Run("check", func(t *testing.T) {
		stdout, _, err := execute(t, NewFmtCommand(), config.Default(), "--check", messy, filepath.Join(dir, "tidy.hl"))
		require.Error(t, err)
		assert.Contains(t, err.Error(), "1 file(s) need formatting")
		assert.Equal(t, messy+"\n", stdout)
	})

	t.Run("broken is refused", func(t *testing.T) {
		_, _, err := execute(t, NewFmtCommand(), config.Default(), filepath.Join(dir, "broken.hl"))
		require.Error(t, err)
		assert.Contains(t, err.Error(), "refusing to format")
	})

	t.Run("write", func(t *testing.T) {
		_, _, err := execute(t, NewFmtCommand(), config.Default(), "--write", messy)
		require.NoError(t, err)
		content, err := os.ReadFile(messy)
		require.NoError(t, err)
		assert.Equal(t, "let x = 1\nlet y = 2\n", string(content))

		_, _, err = execute(t, NewFmtCommand(), config.Default(), "--check", messy)
		assert.NoError(t, err, "formatting is idempotent")
	})
}

func TestCollectPaths(t *testing.T) {
	dir := clitestutil.SetupTestProject(t)
	cfg := projectConfig(t, dir)

	paths, err := collectPaths(cfg, nil)
	require.NoError(t, err)
	assert.Equal(t, []string{
		filepath.Join(dir, "src", "lib", "broken.hl"),
		filepath.Join(dir, "src", "math.hl"),
	}, paths)

	explicit := filepath.Join(dir, "notes.txt")
	paths, err = collectPaths(cfg, []string{explicit, explicit})
	require.NoError(t, err)
	assert.Equal(t, []string{explicit}, paths, "explicit files bypass the include patterns and are deduplicated")
}

func TestReadSources_ChangedFileWithOlderMTime(t *testing.T) {
	dir := testutil.WriteFiles(t, map[string]string{"a.hl": "let x = 1\n"})
	path := filepath.Join(dir, "a.hl")
	prov := provider.New(nil)

	parseAll := func() *provider.ParsedDocument {
		srcs, err := readSources([]string{path})
		require.NoError(t, err)
		docs, err := prov.ParseAll(context.Background(), srcs)
		require.NoError(t, err)
		return docs[0]
	}

	assert.False(t, parseAll().HasErrors())

	require.NoError(t, os.WriteFile(path, []byte("let x = (\n"), 0o600))
	past := time.Now().Add(-time.Hour)
	require.NoError(t, os.Chtimes(path, past, past))

	assert.True(t, parseAll().HasErrors(), "edited file is parsed again")
}

func TestWatchDirs(t *testing.T) {
	dir := testutil.WriteFiles(t, map[string]string{
		"a/b/x.hl":  "1",
		".git/HEAD": "ref",
		"single.hl": "2",
		"a/c/.keep": "",
	})
	cmdCtx := &CommandContext{Cfg: config.Default()}

	dirs, err := watchDirs(cmdCtx, []string{filepath.Join(dir, "a"), filepath.Join(dir, "single.hl")})
	require.NoError(t, err)
	assert.ElementsMatch(t, []string{
		filepath.Join(dir, "a"),
		filepath.Join(dir, "a", "b"),
		filepath.Join(dir, "a", "c"),
		dir,
	}, dirs)
}
