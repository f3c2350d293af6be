package workspace

import (
	"context"
	"crypto/sha256"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/fsnotify/fsnotify"
	"go.uber.org/zap"

	"yaml-fixer/internal/yamlio"
)

// DefaultDebounce is the quiet period before a changed file is fixed.
const DefaultDebounce = 200 * time.Millisecond

// Watcher refixes matching files under a directory after they change.
type Watcher struct {
	root     string
	patterns []string
	debounce time.Duration
	runner   Runner
	log      *zap.Logger
	fsw      *fsnotify.Watcher

	// last event time per path
	pending map[string]time.Time
	// content hash of each file as last written by the watcher
	written map[string][sha256.Size]byte
}

// NewWatcher watches root recursively. Excluded and hidden directories are
// skipped.
func NewWatcher(root string, patterns []string, debounce time.Duration, runner Runner) (*Watcher, error) {
	if debounce <= 0 {
		debounce = DefaultDebounce
	}

	if len(patterns) == 0 {
		patterns = DefaultPatterns
	}

	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("failed to create watcher: %w", err)
	}

	w := &Watcher{
		root:     root,
		patterns: patterns,
		debounce: debounce,
		runner:   runner,
		log:      runner.logger(),
		fsw:      fsw,
		pending:  make(map[string]time.Time),
		written:  make(map[string][sha256.Size]byte),
	}

	if err := w.addRecursive(root); err != nil {
		_ = fsw.Close()
		return nil, err
	}

	return w, nil
}

// Run processes events until ctx is canceled, calling onResult for every
// file it fixes. It closes the watcher before returning.
func (w *Watcher) Run(ctx context.Context, onResult func(FileResult)) error {
	defer w.fsw.Close()

	ticker := time.NewTicker(w.debounce / 2)
	defer ticker.Stop()

	w.log.Info("watching", zap.String("root", w.root), zap.Duration("debounce", w.debounce))

	for {
		select {
		case <-ctx.Done():
			return nil

		case event, ok := <-w.fsw.Events:
			if !ok {
				return nil
			}

			w.handle(event)

		case err, ok := <-w.fsw.Errors:
			if !ok {
				return nil
			}

			w.log.Warn("watch error", zap.Error(err))

		case now := <-ticker.C:
			w.flush(now, onResult)
		}
	}
}

func (w *Watcher) handle(event fsnotify.Event) {
	if event.Has(fsnotify.Create) {
		if info, err := os.Stat(event.Name); err == nil && info.IsDir() {
			if err := w.addRecursive(event.Name); err != nil {
				w.log.Warn("failed to watch new directory", zap.String("path", event.Name), zap.Error(err))
			}

			return
		}
	}

	if event.Has(fsnotify.Remove) || event.Has(fsnotify.Rename) {
		delete(w.pending, event.Name)
		delete(w.written, event.Name)

		return
	}

	if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) {
		return
	}

	rel, err := filepath.Rel(w.root, event.Name)
	if err != nil || !Matches(rel, w.patterns) {
		return
	}

	w.pending[event.Name] = time.Now()
}

func (w *Watcher) flush(now time.Time, onResult func(FileResult)) {
	for path, last := range w.pending {
		if now.Sub(last) < w.debounce {
			continue
		}

		delete(w.pending, path)

		text, err := yamlio.ReadFile(path)
		if err != nil {
			onResult(FileResult{Path: path, Err: err})
			continue
		}

		if sum, ok := w.written[path]; ok && sum == sha256.Sum256([]byte(text)) {
			continue
		}

		res := w.runner.fixText(path, text)
		if res.Written {
			w.written[path] = sha256.Sum256([]byte(res.Fix.Text))
		}

		onResult(res)
	}
}

func (w *Watcher) addRecursive(root string) error {
	return filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}

		if !d.IsDir() {
			return nil
		}

		base := d.Name()
		if path != w.root && (excludedDirs[base] || strings.HasPrefix(base, ".")) {
			return filepath.SkipDir
		}

		if err := w.fsw.Add(path); err != nil {
			return fmt.Errorf("failed to watch %s: %w", path, err)
		}

		return nil
	})
}
