package assets

import (
	"context"
	"errors"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/fsnotify/fsnotify"
	"go.uber.org/zap"
)

// Watcher invalidates cached templates when their files change on disk.
type Watcher struct {
	loader  *Loader
	root    string
	log     *zap.Logger
	watcher *fsnotify.Watcher

	// Invalidated, if set, receives every path the watcher dropped from the
	// cache. Sends block, so the receiver must keep up.
	Invalidated chan<- string
}

// NewWatcher watches root and every directory below it. Paths passed to the
// loader must be relative to root for invalidation to match.
func NewWatcher(loader *Loader, root string, log *zap.Logger) (*Watcher, error) {
	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}
	if log == nil {
		log = zap.NewNop()
	}

	w := &Watcher{loader: loader, root: root, log: log, watcher: fsw}
	if err := w.addRecursive(root); err != nil {
		fsw.Close()
		return nil, err
	}
	return w, nil
}

// Run processes file events until ctx is done, then closes the watcher.
func (w *Watcher) Run(ctx context.Context) error {
	defer w.watcher.Close()

	for {
		select {
		case e, ok := <-w.watcher.Events:
			if !ok {
				return nil
			}
			w.handle(e)

		case err, ok := <-w.watcher.Errors:
			if !ok {
				return nil
			}
			w.log.Error("asset watcher error", zap.Error(err))

		case <-ctx.Done():
			return nil
		}
	}
}

func (w *Watcher) handle(e fsnotify.Event) {
	if e.Op&fsnotify.Create != 0 {
		if info, err := os.Stat(e.Name); err == nil && info.IsDir() {
			if err := w.addRecursive(e.Name); err != nil {
				w.log.Warn("watching new asset directory", zap.String("dir", e.Name), zap.Error(err))
			}
			return
		}
	}
	if e.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Remove|fsnotify.Rename) == 0 {
		return
	}

	rel, err := filepath.Rel(w.root, e.Name)
	if err != nil {
		return
	}
	key := CleanPath(filepath.ToSlash(rel))
	if w.loader.Invalidate(key) {
		w.log.Info("asset changed, cache entry dropped", zap.String("path", key))
		if w.Invalidated != nil {
			w.Invalidated <- key
		}
	}
}

func (w *Watcher) addRecursive(dir string) error {
	return filepath.WalkDir(dir, func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				return nil
			}
			return err
		}
		if d.IsDir() {
			return w.watcher.Add(p)
		}
		return nil
	})
}
