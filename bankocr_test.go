package bankocr_test

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/aretw0/bankocr"
	"github.com/aretw0/bankocr/pkg/adapters/memory"
	"github.com/aretw0/bankocr/pkg/domain"
	"github.com/aretw0/bankocr/pkg/metrics"
	"github.com/aretw0/bankocr/pkg/ocr"
	"github.com/google/go-cmp/cmp"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// scanFile prints digits the way the machine does, one entry per account.
func scanFile(t *testing.T, accounts ...string) string {
	t.Helper()
	var sb strings.Builder
	for _, a := range accounts {
		line, err := ocr.Encode(a)
		require.NoError(t, err)
		sb.WriteString(line.String())
		sb.WriteString("\n\n")
	}
	return sb.String()
}

func TestEngine_DecodeReader(t *testing.T) {
	fixed := time.Date(2024, 3, 1, 9, 30, 0, 0, time.UTC)
	reg := prometheus.NewRegistry()
	eng := bankocr.New(
		bankocr.WithClock(func() time.Time { return fixed }),
		bankocr.WithIDGenerator(func() string { return "batch-1" }),
		bankocr.WithMetrics(metrics.New(reg)),
	)

	in := scanFile(t, "457508000", "664371495") + "bad row\nbad row\nbad row\n"
	batch, err := eng.DecodeReader(context.Background(), "inbox.txt", strings.NewReader(in))
	require.NoError(t, err)

	assert.Equal(t, "batch-1", batch.ID)
	assert.Equal(t, "inbox.txt", batch.Source)
	assert.True(t, fixed.Equal(batch.CreatedAt))
	require.Len(t, batch.Entries, 3)

	assert.Equal(t, domain.StatusOK, batch.Entries[0].Status)
	assert.Equal(t, 1, batch.Entries[0].Line)
	assert.Equal(t, domain.StatusError, batch.Entries[1].Status)
	assert.Equal(t, 5, batch.Entries[1].Line)
	assert.Equal(t, domain.StatusInvalid, batch.Entries[2].Status)
	assert.Equal(t, 2, batch.Entries[2].Index)

	// Stored and readable back.
	loaded, err := eng.Batch(context.Background(), "batch-1")
	require.NoError(t, err)
	if diff := cmp.Diff(batch, loaded); diff != "" {
		t.Errorf("stored batch mismatch (-want +got):\n%s", diff)
	}

	ids, err := eng.Batches(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []string{"batch-1"}, ids)

	expected := `
# HELP bankocr_entries_total Total number of decoded entries by status
# TYPE bankocr_entries_total counter
bankocr_entries_total{status="ERR"} 1
bankocr_entries_total{status="INV"} 1
bankocr_entries_total{status="OK"} 1
`
	require.NoError(t, testutil.GatherAndCompare(reg, strings.NewReader(expected), "bankocr_entries_total"))
}

func TestEngine_DecodeLine(t *testing.T) {
	eng := bankocr.New()
	line, err := ocr.Encode("123456789")
	require.NoError(t, err)

	entry := eng.DecodeLine(line)
	assert.Equal(t, "123456789", entry.Reading.Digits)
	assert.Equal(t, domain.StatusOK, entry.Status)

	// Decoding is free of hidden state.
	assert.Equal(t, entry, eng.DecodeLine(line))
}

func TestEngine_DecodeFile_WithLocker(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "scan.txt")
	require.NoError(t, os.WriteFile(path, []byte(scanFile(t, "000000000")), 0644))

	locker := memory.NewLocker()
	eng := bankocr.New(bankocr.WithLocker(locker))

	batch, err := eng.DecodeFile(context.Background(), path)
	require.NoError(t, err)
	require.Len(t, batch.Entries, 1)
	assert.Equal(t, path, batch.Source)

	// The lock was released.
	ctx, cancel := context.WithTimeout(context.Background(), 100*time.Millisecond)
	defer cancel()
	unlock, err := locker.Lock(ctx, "scan.txt", time.Second)
	require.NoError(t, err)
	require.NoError(t, unlock(ctx))
}

func TestEngine_DecodeFile_Missing(t *testing.T) {
	_, err := bankocr.New().DecodeFile(context.Background(), filepath.Join(t.TempDir(), "nope.txt"))
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestEngine_Padding(t *testing.T) {
	in := "\n  |  |  |  |  |  |  |  |  |\n  |  |  |  |  |  |  |  |  |\n"

	batch, err := bankocr.New().DecodeReader(context.Background(), "", strings.NewReader(in))
	require.NoError(t, err)
	require.Len(t, batch.Entries, 1)
	assert.Equal(t, domain.StatusInvalid, batch.Entries[0].Status)

	batch, err = bankocr.New(bankocr.WithPadding(true)).DecodeReader(context.Background(), "", strings.NewReader(in))
	require.NoError(t, err)
	require.Len(t, batch.Entries, 1)
	assert.Equal(t, "111111111", batch.Entries[0].Reading.Digits)
}

type failingStore struct{ memory.Store }

func (*failingStore) Save(context.Context, string, domain.Batch) error {
	return errors.New("disk full")
}

func TestEngine_StoreFailure(t *testing.T) {
	eng := bankocr.New(bankocr.WithStore(&failingStore{}))
	_, err := eng.DecodeReader(context.Background(), "x", strings.NewReader(scanFile(t, "000000000")))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "disk full")
}

func TestEngine_DeleteBatch(t *testing.T) {
	eng := bankocr.New(bankocr.WithIDGenerator(func() string { return "gone" }))
	_, err := eng.DecodeReader(context.Background(), "", strings.NewReader(scanFile(t, "000000000")))
	require.NoError(t, err)

	require.NoError(t, eng.DeleteBatch(context.Background(), "gone"))
	_, err = eng.Batch(context.Background(), "gone")
	assert.ErrorIs(t, err, domain.ErrBatchNotFound)
}
