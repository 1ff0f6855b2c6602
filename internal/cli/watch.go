package cli

import (
	"context"
	"fmt"
	"log/slog"
	"path/filepath"
	"time"

	"github.com/aretw0/bankocr/internal/logging"
	"github.com/aretw0/bankocr/pkg/domain"
	"github.com/fsnotify/fsnotify"
)

// FileDecoder is the part of the engine the watcher drives.
type FileDecoder interface {
	DecodeFile(ctx context.Context, path string) (domain.Batch, error)
}

// Watcher decodes scanner files as they land in an inbox directory.
// A file is decoded once writes to it have been quiet for the debounce window.
type Watcher struct {
	dir      string
	pattern  string
	debounce time.Duration
	decoder  FileDecoder
	onBatch  func(domain.Batch)
	logger   *slog.Logger
	fsw      *fsnotify.Watcher
}

// WatchOption configures a Watcher.
type WatchOption func(*Watcher)

// WithPattern restricts decoding to base names matching a filepath.Match pattern.
func WithPattern(pattern string) WatchOption {
	return func(w *Watcher) {
		w.pattern = pattern
	}
}

// WithDebounce sets the quiet window before a changed file is decoded.
func WithDebounce(d time.Duration) WatchOption {
	return func(w *Watcher) {
		w.debounce = d
	}
}

// WithWatchLogger sets the watcher logger.
func WithWatchLogger(logger *slog.Logger) WatchOption {
	return func(w *Watcher) {
		w.logger = logger
	}
}

// OnBatch is called with every successfully decoded batch, from the Run goroutine.
func OnBatch(fn func(domain.Batch)) WatchOption {
	return func(w *Watcher) {
		w.onBatch = fn
	}
}

// NewWatcher starts watching dir. Events are only processed by Run.
func NewWatcher(dir string, decoder FileDecoder, opts ...WatchOption) (*Watcher, error) {
	w := &Watcher{
		dir:      dir,
		pattern:  "*.txt",
		debounce: 250 * time.Millisecond,
		decoder:  decoder,
		onBatch:  func(domain.Batch) {},
		logger:   logging.NewNop(),
	}
	for _, opt := range opts {
		opt(w)
	}
	if _, err := filepath.Match(w.pattern, ""); err != nil {
		return nil, fmt.Errorf("invalid watch pattern %q: %w", w.pattern, err)
	}

	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("failed to create watcher: %w", err)
	}
	if err := fsw.Add(dir); err != nil {
		fsw.Close()
		return nil, fmt.Errorf("failed to watch %s: %w", dir, err)
	}
	w.fsw = fsw
	return w, nil
}

// Run processes file events until ctx is cancelled, then releases the watcher.
func (w *Watcher) Run(ctx context.Context) error {
	defer w.fsw.Close()

	ready := make(chan string)
	timers := make(map[string]*time.Timer)
	defer func() {
		for _, t := range timers {
			t.Stop()
		}
	}()

	w.logger.Info("Watching inbox", "dir", w.dir, "pattern", w.pattern)

	for {
		select {
		case <-ctx.Done():
			return nil

		case event, ok := <-w.fsw.Events:
			if !ok {
				return nil
			}
			if !event.Has(fsnotify.Create) && !event.Has(fsnotify.Write) {
				continue
			}
			if match, _ := filepath.Match(w.pattern, filepath.Base(event.Name)); !match {
				continue
			}

			path := event.Name
			if t, exists := timers[path]; exists {
				t.Reset(w.debounce)
				continue
			}
			timers[path] = time.AfterFunc(w.debounce, func() {
				select {
				case ready <- path:
				case <-ctx.Done():
				}
			})

		case path := <-ready:
			delete(timers, path)
			w.decode(ctx, path)

		case err, ok := <-w.fsw.Errors:
			if !ok {
				return nil
			}
			w.logger.Warn("Watcher error", "error", err)
		}
	}
}

func (w *Watcher) decode(ctx context.Context, path string) {
	batch, err := w.decoder.DecodeFile(ctx, path)
	if err != nil {
		w.logger.Error("Decode failed", "error", err, "path", path)
		return
	}
	w.onBatch(batch)
}
