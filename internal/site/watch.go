package site

import (
	"context"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/starford/jera/internal/workspace"
)

// debounce is the quiet period after the last relevant change before a
// rebuild fires. Editors emit bursts of events per save; one rebuild
// covers the burst.
const debounce = 300 * time.Millisecond

// Watch monitors the workspace for document and asset changes and
// invokes onChange after each quiet period, coalescing event bursts
// into a single call. Paths under skip are ignored entirely so the
// build output can live inside the workspace without retriggering the
// watcher. Runs until ctx is cancelled.
//
// New directories created at runtime are added to the watch list.
func Watch(ctx context.Context, root string, skip []string, logger *slog.Logger, onChange func()) error {
	w, err := fsnotify.NewWatcher()
	if err != nil {
		return err
	}
	defer w.Close()

	skipSet := make(map[string]struct{}, len(skip))
	for _, s := range skip {
		if abs, absErr := filepath.Abs(s); absErr == nil {
			skipSet[abs] = struct{}{}
		}
	}

	if err := addDirsRecursive(w, root, skipSet); err != nil {
		return err
	}

	logger.Info("watcher: started", slog.String("root", root))

	var rebuildTimer *time.Timer
	var rebuildCh <-chan time.Time

	schedule := func() {
		if rebuildTimer == nil {
			rebuildTimer = time.NewTimer(debounce)
			rebuildCh = rebuildTimer.C
		} else {
			rebuildTimer.Reset(debounce)
		}
	}

	for {
		select {
		case <-ctx.Done():
			if rebuildTimer != nil {
				rebuildTimer.Stop()
			}
			logger.Info("watcher: stopped")
			return nil

		case <-rebuildCh:
			onChange()

		case ev, ok := <-w.Events:
			if !ok {
				return nil
			}
			if skipped(ev.Name, skipSet) {
				continue
			}

			// New directories join the watch list; their files arrive
			// as separate Create events.
			if ev.Op&fsnotify.Create != 0 {
				if info, statErr := os.Stat(ev.Name); statErr == nil && info.IsDir() {
					if addErr := addDirsRecursive(w, ev.Name, skipSet); addErr != nil {
						logger.Warn("watcher: add new dir failed",
							slog.String("path", ev.Name),
							slog.String("error", addErr.Error()))
					}
					continue
				}
			}

			if !relevant(root, ev.Name) {
				continue
			}
			logger.Debug("watcher: change",
				slog.String("path", ev.Name),
				slog.String("op", ev.Op.String()))
			schedule()

		case watchErr, ok := <-w.Errors:
			if !ok {
				return nil
			}
			logger.Error("watcher: error", slog.String("error", watchErr.Error()))
		}
	}
}

// relevant reports whether a changed path affects build output:
// document files anywhere under the root, and anything under assets/.
func relevant(root, name string) bool {
	if strings.HasSuffix(name, workspace.DocExt) {
		return true
	}
	rel, err := filepath.Rel(root, name)
	if err != nil {
		return false
	}
	first, _, _ := strings.Cut(rel, string(filepath.Separator))
	return first == workspace.AssetsDir
}

func skipped(name string, skip map[string]struct{}) bool {
	for s := range skip {
		if name == s || strings.HasPrefix(name, s+string(os.PathSeparator)) {
			return true
		}
	}
	return false
}

// addDirsRecursive adds root and its subdirectories to the watcher.
// Skipped and dot-directories are left out; they hold derived state
// (build output, the search index), never sources.
func addDirsRecursive(w *fsnotify.Watcher, root string, skip map[string]struct{}) error {
	return filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !d.IsDir() {
			return nil
		}
		if _, ok := skip[path]; ok {
			return fs.SkipDir
		}
		if path != root && strings.HasPrefix(d.Name(), ".") {
			return fs.SkipDir
		}
		return w.Add(path)
	})
}
