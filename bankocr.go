package bankocr

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"path/filepath"
	"time"

	"github.com/aretw0/bankocr/internal/logging"
	"github.com/aretw0/bankocr/pkg/adapters/memory"
	"github.com/aretw0/bankocr/pkg/domain"
	"github.com/aretw0/bankocr/pkg/metrics"
	"github.com/aretw0/bankocr/pkg/ocr"
	"github.com/aretw0/bankocr/pkg/ports"
	"github.com/aretw0/bankocr/pkg/scanner"
	"github.com/google/uuid"
)

// Version is the release of the bankocr library and tools.
var Version = "0.3.0"

// lockTTL bounds how long a source stays locked if its holder dies.
const lockTTL = time.Minute

// Engine is the high-level entry point for the bankocr library.
// It wires scanning, decoding, metrics and persistence together.
type Engine struct {
	decoder  ocr.Decoder
	store    ports.BatchStore
	locker   ports.Locker
	metrics  *metrics.Recorder
	logger   *slog.Logger
	scanOpts []scanner.Option
	now      func() time.Time
	newID    func() string
}

// Option defines a functional option for configuring the Engine.
type Option func(*Engine)

// WithStore sets where decoded batches are kept (default: in memory).
func WithStore(store ports.BatchStore) Option {
	return func(e *Engine) {
		e.store = store
	}
}

// WithLocker serializes work on the same source across engines.
func WithLocker(locker ports.Locker) Option {
	return func(e *Engine) {
		e.locker = locker
	}
}

// WithMetrics records decoding outcomes.
func WithMetrics(rec *metrics.Recorder) Option {
	return func(e *Engine) {
		e.metrics = rec
	}
}

// WithLogger sets a custom structured logger for the engine.
func WithLogger(logger *slog.Logger) Option {
	return func(e *Engine) {
		e.logger = logger
	}
}

// WithPadding right-pads short rows of scanned files (see scanner.WithPadding).
func WithPadding(enabled bool) Option {
	return func(e *Engine) {
		e.scanOpts = append(e.scanOpts, scanner.WithPadding(enabled))
	}
}

// WithClock overrides the time source used to stamp batches.
func WithClock(now func() time.Time) Option {
	return func(e *Engine) {
		e.now = now
	}
}

// WithIDGenerator overrides how batch IDs are generated (default: UUIDv4).
func WithIDGenerator(gen func() string) Option {
	return func(e *Engine) {
		e.newID = gen
	}
}

// New initializes a new Engine.
func New(opts ...Option) *Engine {
	eng := &Engine{
		decoder: ocr.NewDecoder(),
		now:     time.Now,
		newID:   uuid.NewString,
	}
	for _, opt := range opts {
		opt(eng)
	}
	if eng.store == nil {
		eng.store = memory.NewStore()
	}
	if eng.logger == nil {
		eng.logger = logging.NewNop()
	}
	return eng
}

// DecodeLine decodes and classifies a single display line.
func (e *Engine) DecodeLine(line domain.DisplayLine) domain.Entry {
	entry := e.decoder.DecodeEntry(line)
	e.metrics.ObserveEntry(entry)
	return entry
}

// DecodeFile decodes an entry file (see scanner.Open) into a stored batch.
// When a Locker is configured, the file name is locked for the duration.
func (e *Engine) DecodeFile(ctx context.Context, path string) (domain.Batch, error) {
	if e.locker != nil {
		unlock, err := e.locker.Lock(ctx, filepath.Base(path), lockTTL)
		if err != nil {
			return domain.Batch{}, fmt.Errorf("failed to lock %s: %w", path, err)
		}
		defer func() {
			if err := unlock(context.WithoutCancel(ctx)); err != nil {
				e.logger.Warn("Unlock failed", "source", path, "err", err)
			}
		}()
	}

	rc, err := scanner.Open(path)
	if err != nil {
		return domain.Batch{}, fmt.Errorf("failed to open %s: %w", path, err)
	}
	defer rc.Close()

	return e.DecodeReader(ctx, path, rc)
}

// DecodeReader scans r, decodes every entry, and persists the resulting batch.
// Malformed or illegible entries are reported in the batch, never as an error;
// errors come only from reading r, cancellation, or the store.
func (e *Engine) DecodeReader(ctx context.Context, source string, r io.Reader) (domain.Batch, error) {
	batch := domain.Batch{
		ID:        e.newID(),
		Source:    source,
		CreatedAt: e.now().UTC(),
		Entries:   []domain.Entry{},
	}

	records, errc := scanner.Stream(ctx, r, e.scanOpts...)
	for rec := range records {
		entry := e.DecodeLine(rec.Display)
		entry.Index = rec.Index
		entry.Line = rec.Line
		if entry.Status != domain.StatusOK {
			e.logger.Debug("Entry needs attention",
				"source", source, "line", entry.Line, "status", entry.Status, "digits", entry.Reading.Digits)
		}
		batch.Entries = append(batch.Entries, entry)
	}
	if err := <-errc; err != nil {
		return domain.Batch{}, fmt.Errorf("failed to scan %s: %w", source, err)
	}

	if err := e.store.Save(ctx, batch.ID, batch); err != nil {
		return domain.Batch{}, fmt.Errorf("failed to save batch: %w", err)
	}
	e.metrics.ObserveBatch(batch)

	counts := batch.Counts()
	e.logger.Info("Batch decoded",
		"batch_id", batch.ID,
		"source", source,
		"entries", len(batch.Entries),
		"ok", counts[domain.StatusOK],
		"bad_checksum", counts[domain.StatusError],
		"ill", counts[domain.StatusIllegible],
		"invalid", counts[domain.StatusInvalid],
	)
	return batch, nil
}

// Batch loads a previously decoded batch.
func (e *Engine) Batch(ctx context.Context, id string) (domain.Batch, error) {
	return e.store.Load(ctx, id)
}

// Batches lists the IDs of stored batches.
func (e *Engine) Batches(ctx context.Context) ([]string, error) {
	return e.store.List(ctx)
}

// DeleteBatch removes a stored batch.
func (e *Engine) DeleteBatch(ctx context.Context, id string) error {
	return e.store.Delete(ctx, id)
}
