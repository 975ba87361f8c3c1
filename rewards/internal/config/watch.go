package config

import (
	"context"
	"log/slog"
	"path/filepath"

	"github.com/fsnotify/fsnotify"
)

// Watch monitors the config file at path, and the dataset it points at, and
// calls onChange with the freshly loaded Config each time either is written.
// It runs until ctx is cancelled.
//
// If a reload fails (e.g., invalid YAML), the error is logged and the
// previous config remains active and Watch does not call onChange.
func Watch(ctx context.Context, path string, onChange func(*Config)) error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return err
	}
	defer watcher.Close()

	cfg, err := Load(path)
	if err != nil {
		return err
	}
	watched := map[string]bool{}
	add := func(p string) {
		abs, err := filepath.Abs(p)
		if err != nil {
			abs = p
		}
		if watched[abs] {
			return
		}
		if err := watcher.Add(abs); err != nil {
			slog.Warn("config: cannot watch file", "path", abs, "err", err)
			return
		}
		watched[abs] = true
	}
	add(path)
	add(cfg.Inputs.Measures)

	slog.Info("config: watching for changes", "path", path, "inputs", cfg.Inputs.Measures)

	for {
		select {
		case <-ctx.Done():
			return nil

		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			// Only reload on write or create events. Editors often write via
			// rename (atomic save), so also catch fsnotify.Create.
			if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) {
				continue
			}

			next, err := Load(path)
			if err != nil {
				slog.Error("config: reload failed, keeping previous config",
					"path", path, "trigger", event.Name, "err", err)
				continue
			}

			slog.Info("config: reloaded", "path", path, "trigger", event.Name)
			onChange(next)

			// Re-add both files in case an atomic save replaced the inode,
			// and pick up a dataset path that changed in the new config.
			for p := range watched {
				_ = watcher.Add(p)
			}
			add(next.Inputs.Measures)

		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			slog.Error("config: watcher error", "err", err)
		}
	}
}
