package main

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"

	"github.com/fsnotify/fsnotify"
)

// watch re-runs the check whenever one of files is written or recreated,
// until ctx is done.
func (c *checker) watch(ctx context.Context, files []string) error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("create watcher: %w", err)
	}
	defer watcher.Close()

	// Watch directories so that atomic saves (rename over the file) are seen.
	targets := map[string]bool{}
	dirs := map[string]bool{}
	for _, f := range files {
		abs, err := filepath.Abs(f)
		if err != nil {
			return fmt.Errorf("absolute path: %w", err)
		}
		targets[abs] = true
		dir := filepath.Dir(abs)
		if dirs[dir] {
			continue
		}
		if err := watcher.Add(dir); err != nil {
			return fmt.Errorf("watch directory: %w", err)
		}
		dirs[dir] = true
	}
	c.logger.Info().Strs("files", files).Msg("watching for changes")

	for {
		select {
		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if !isRelevant(event, targets) {
				continue
			}
			c.logger.Debug().
				Str("event", event.Op.String()).
				Str("file", event.Name).
				Msg("library changed")
			if err := c.run(files); err != nil && !errors.Is(err, errCheckFailed) {
				c.logger.Error().Err(err).Msg("re-check failed")
			}

		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			c.logger.Error().Err(err).Msg("file watcher error")

		case <-ctx.Done():
			return nil
		}
	}
}

func isRelevant(event fsnotify.Event, targets map[string]bool) bool {
	if event.Op&(fsnotify.Write|fsnotify.Create) == 0 {
		return false
	}
	abs, err := filepath.Abs(event.Name)
	if err != nil {
		return false
	}
	return targets[abs]
}
