package commands

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"
)

// debounceDelay collapses bursts of events (editors often write a file in
// several steps) into one re-check.
const debounceDelay = 150 * time.Millisecond

// watch runs check once, then again after every batch of changes to the
// watched paths, until ctx is cancelled or an interrupt arrives.
func watch(ctx context.Context, cmdCtx *CommandContext, args []string, check func(context.Context)) error {
	ctx, stop := signal.NotifyContext(ctx, os.Interrupt)
	defer stop()

	w, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("failed to start watcher: %w", err)
	}
	defer func() { _ = w.Close() }()

	dirs, err := watchDirs(cmdCtx, args)
	if err != nil {
		return err
	}
	for _, dir := range dirs {
		if err := w.Add(dir); err != nil {
			return fmt.Errorf("failed to watch %s: %w", dir, err)
		}
	}
	cmdCtx.Logger.Debug("watch: started", "dirs", len(dirs))

	check(ctx)
	cmdCtx.Renderer.Muted("watching for changes (Ctrl+C to stop)")

	var timer *time.Timer
	var fire <-chan time.Time
	for {
		select {
		case <-ctx.Done():
			return nil
		case ev, ok := <-w.Events:
			if !ok {
				return nil
			}
			if ev.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Remove|fsnotify.Rename) == 0 {
				continue
			}
			cmdCtx.Logger.Debug("watch: event", "op", ev.Op.String(), "path", ev.Name)
			if ev.Op&fsnotify.Create != 0 {
				if info, err := os.Stat(ev.Name); err == nil && info.IsDir() {
					_ = w.Add(ev.Name)
				}
			}
			cmdCtx.Provider.Invalidate(filepath.Clean(ev.Name))
			if timer == nil {
				timer = time.NewTimer(debounceDelay)
			} else {
				timer.Reset(debounceDelay)
			}
			fire = timer.C
		case <-fire:
			fire = nil
			check(ctx)
		case err, ok := <-w.Errors:
			if !ok {
				return nil
			}
			cmdCtx.Renderer.Warning(fmt.Sprintf("watch: %v", err))
		}
	}
}

// watchDirs returns the directories to watch: every directory under a
// directory argument, and the parent of each file argument.
func watchDirs(cmdCtx *CommandContext, args []string) ([]string, error) {
	if len(args) == 0 {
		root := cmdCtx.Cfg.ProjectRoot
		if root == "" {
			root = "."
		}
		args = []string{root}
	}

	seen := make(map[string]bool)
	var dirs []string
	for _, arg := range args {
		info, err := os.Stat(arg)
		if err != nil {
			return nil, fmt.Errorf("cannot read %s: %w", arg, err)
		}
		if !info.IsDir() {
			dir := filepath.Dir(arg)
			if !seen[dir] {
				seen[dir] = true
				dirs = append(dirs, dir)
			}
			continue
		}
		err = filepath.WalkDir(arg, func(path string, d os.DirEntry, err error) error {
			if err != nil || !d.IsDir() {
				return err
			}
			if path != arg && len(d.Name()) > 1 && d.Name()[0] == '.' {
				return filepath.SkipDir
			}
			if !seen[path] {
				seen[path] = true
				dirs = append(dirs, path)
			}
			return nil
		})
		if err != nil {
			return nil, err
		}
	}
	return dirs, nil
}
