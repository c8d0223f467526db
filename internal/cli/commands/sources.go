package commands

import (
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"

	"github.com/leapstack-labs/helios/internal/config"
	"github.com/leapstack-labs/helios/internal/provider"
)

// collectPaths expands args into source files. Files are taken as given;
// directories are walked and filtered by the include patterns. With no args
// the project root is walked.
func collectPaths(cfg *config.Config, args []string) ([]string, error) {
	if len(args) == 0 {
		root := cfg.ProjectRoot
		if root == "" {
			root = "."
		}
		args = []string{root}
	}

	seen := make(map[string]bool)
	var paths []string
	add := func(p string) {
		p = filepath.Clean(p)
		if !seen[p] {
			seen[p] = true
			paths = append(paths, p)
		}
	}

	for _, arg := range args {
		info, err := os.Stat(arg)
		if err != nil {
			return nil, fmt.Errorf("cannot read %s: %w", arg, err)
		}
		if !info.IsDir() {
			add(arg)
			continue
		}
		found, err := walkIncluded(arg, cfg.Include)
		if err != nil {
			return nil, err
		}
		for _, p := range found {
			add(p)
		}
	}
	return paths, nil
}

func walkIncluded(dir string, include []string) ([]string, error) {
	var out []string
	err := filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			if path != dir && len(d.Name()) > 1 && d.Name()[0] == '.' {
				return filepath.SkipDir
			}
			return nil
		}
		rel, err := filepath.Rel(dir, path)
		if err != nil {
			return err
		}
		rel = filepath.ToSlash(rel)
		for _, pattern := range include {
			if config.MatchPattern(pattern, rel) {
				out = append(out, path)
				break
			}
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to walk %s: %w", dir, err)
	}
	sort.Strings(out)
	return out, nil
}

// readSources reads paths into unversioned provider sources, so a cached
// document is reused only while the file's content is unchanged.
func readSources(paths []string) ([]provider.Source, error) {
	srcs := make([]provider.Source, 0, len(paths))
	for _, p := range paths {
		content, err := os.ReadFile(p) //nolint:gosec // paths come from the user
		if err != nil {
			return nil, fmt.Errorf("failed to read %s: %w", p, err)
		}
		srcs = append(srcs, provider.Source{URI: p, Content: string(content)})
	}
	return srcs, nil
}
