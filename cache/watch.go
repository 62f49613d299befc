package cache

import (
	"context"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/fsnotify/fsnotify"
	"github.com/sirupsen/logrus"
)

// Watch invalidates g whenever something changes below paths. Directories
// are watched with their subdirectories, including ones created later.
// For a file, or a path that does not exist yet, its parent folder is
// watched on its own. Watch returns when ctx is done.
func Watch(ctx context.Context, paths []string, g *Group, log logrus.FieldLogger) error {
	if log == nil {
		log = logrus.StandardLogger()
	}
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("Watch: %w", err)
	}
	defer watcher.Close()

	for _, p := range paths {
		fi, err := os.Stat(p)
		if err == nil && fi.IsDir() {
			if err := addTree(watcher, p); err != nil {
				return fmt.Errorf("Watch: %w", err)
			}
			continue
		}
		if err != nil && !os.IsNotExist(err) {
			return fmt.Errorf("Watch: %w", err)
		}
		parent := filepath.Dir(p)
		if pfi, err := os.Stat(parent); err != nil || !pfi.IsDir() {
			log.WithField("path", p).Warn("not watching path without a folder")
			continue
		}
		if err := watcher.Add(parent); err != nil {
			return fmt.Errorf("Watch: %w", err)
		}
	}

	for {
		select {
		case <-ctx.Done():
			return nil
		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) && !event.Has(fsnotify.Remove) && !event.Has(fsnotify.Rename) {
				continue
			}
			if event.Has(fsnotify.Create) {
				if fi, err := os.Stat(event.Name); err == nil && fi.IsDir() {
					if err := addTree(watcher, event.Name); err != nil {
						log.WithError(err).WithField("dir", event.Name).Warn("cannot watch new directory")
					}
				}
			}
			g.Invalidate()
			log.WithFields(logrus.Fields{"file": event.Name, "op": event.Op.String()}).Debug("cache invalidated")
		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			log.WithError(err).Warn("watcher error")
		}
	}
}

func addTree(watcher *fsnotify.Watcher, root string) error {
	return filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			return watcher.Add(path)
		}
		return nil
	})
}
