package ports

import (
	"context"
	"testing"
	"time"

	"github.com/aretw0/bankocr/pkg/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// RunBatchStoreContract runs a suite of tests to verify that a BatchStore implementation
// adheres to the defined interface contract.
func RunBatchStoreContract(t *testing.T, store BatchStore) {
	t.Helper()
	ctx := context.Background()
	batchID := "contract-test-batch-" + time.Now().Format("20060102150405")

	newBatch := func(id string) domain.Batch {
		return domain.Batch{
			ID:        id,
			Source:    "contract.txt",
			CreatedAt: time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC),
			Entries: []domain.Entry{
				{
					Index:   0,
					Line:    1,
					Display: domain.NewDisplayLine("a", "b", "c"),
					Reading: domain.Reading{Digits: "457508000"},
					Status:  domain.StatusOK,
				},
				{
					Index:   1,
					Line:    5,
					Reading: domain.Reading{Digits: "86110??36", Illegible: []int{5, 6}},
					Status:  domain.StatusIllegible,
				},
			},
		}
	}

	t.Run("Save and Load", func(t *testing.T) {
		batch := newBatch(batchID)

		err := store.Save(ctx, batchID, batch)
		require.NoError(t, err, "Save should not return error")

		loaded, err := store.Load(ctx, batchID)
		require.NoError(t, err, "Load should not return error")
		assert.Equal(t, batch.ID, loaded.ID)
		assert.Equal(t, batch.Source, loaded.Source)
		assert.True(t, batch.CreatedAt.Equal(loaded.CreatedAt))
		require.Len(t, loaded.Entries, 2)
		assert.Equal(t, batch.Entries[0].Display, loaded.Entries[0].Display)
		assert.Equal(t, batch.Entries[1].Reading, loaded.Entries[1].Reading)
		assert.Equal(t, domain.StatusIllegible, loaded.Entries[1].Status)
	})

	t.Run("Load is isolated from caller mutation", func(t *testing.T) {
		batch := newBatch(batchID + "-iso")
		require.NoError(t, store.Save(ctx, batch.ID, batch))
		batch.Entries[0].Status = domain.StatusError

		loaded, err := store.Load(ctx, batch.ID)
		require.NoError(t, err)
		assert.Equal(t, domain.StatusOK, loaded.Entries[0].Status)

		loaded.Entries[0].Status = domain.StatusInvalid
		again, err := store.Load(ctx, batch.ID)
		require.NoError(t, err)
		assert.Equal(t, domain.StatusOK, again.Entries[0].Status)

		_ = store.Delete(ctx, batch.ID)
	})

	t.Run("Load Non-Existent", func(t *testing.T) {
		_, err := store.Load(ctx, "non-existent-"+batchID)
		assert.ErrorIs(t, err, domain.ErrBatchNotFound)
	})

	t.Run("Delete", func(t *testing.T) {
		err := store.Save(ctx, batchID, newBatch(batchID))
		require.NoError(t, err)

		err = store.Delete(ctx, batchID)
		require.NoError(t, err, "Delete should not return error")

		_, err = store.Load(ctx, batchID)
		assert.ErrorIs(t, err, domain.ErrBatchNotFound, "Load after Delete should return ErrBatchNotFound")

		assert.NoError(t, store.Delete(ctx, batchID), "Deleting twice should not fail")
	})

	t.Run("List", func(t *testing.T) {
		id1 := batchID + "-1"
		id2 := batchID + "-2"
		_ = store.Save(ctx, id1, newBatch(id1))
		_ = store.Save(ctx, id2, newBatch(id2))

		defer func() {
			_ = store.Delete(ctx, id1)
			_ = store.Delete(ctx, id2)
		}()

		ids, err := store.List(ctx)
		require.NoError(t, err)
		assert.Contains(t, ids, id1)
		assert.Contains(t, ids, id2)
	})
}
