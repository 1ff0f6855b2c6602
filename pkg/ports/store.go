package ports

import (
	"context"

	"github.com/aretw0/bankocr/pkg/domain"
)

// BatchStore defines the interface for persisting decoded batches.
type BatchStore interface {
	// Save persists the batch under the given ID, replacing any previous value.
	Save(ctx context.Context, id string, batch domain.Batch) error

	// Load retrieves the batch for a given ID.
	// Returns domain.ErrBatchNotFound if the batch does not exist.
	Load(ctx context.Context, id string) (domain.Batch, error)

	// Delete removes the batch for a given ID. Deleting a missing batch is not an error.
	Delete(ctx context.Context, id string) error

	// List returns the IDs of the stored batches.
	List(ctx context.Context) ([]string, error)
}
