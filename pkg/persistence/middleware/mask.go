package middleware

import (
	"context"
	"strings"

	"github.com/aretw0/bankocr/pkg/domain"
	"github.com/aretw0/bankocr/pkg/ports"
)

// MaskRune replaces hidden account digits in stored batches.
const MaskRune = '*'

type maskMiddleware struct {
	next    ports.BatchStore
	visible int
}

// NewMaskMiddleware creates a middleware that stores account numbers with all
// but the last visible digits masked. The scanned rows are dropped too,
// since they spell out the full number.
func NewMaskMiddleware(visible int) Middleware {
	if visible < 0 {
		visible = 0
	}
	return func(next ports.BatchStore) ports.BatchStore {
		return &maskMiddleware{next: next, visible: visible}
	}
}

func (m *maskMiddleware) Save(ctx context.Context, id string, batch domain.Batch) error {
	// Clone so the caller keeps the clear batch.
	masked := batch.Clone()
	for i := range masked.Entries {
		e := &masked.Entries[i]
		e.Reading.Digits = MaskDigits(e.Reading.Digits, m.visible)
		e.Display = domain.DisplayLine{}
	}
	return m.next.Save(ctx, id, masked)
}

func (m *maskMiddleware) Load(ctx context.Context, id string) (domain.Batch, error) {
	return m.next.Load(ctx, id)
}

func (m *maskMiddleware) Delete(ctx context.Context, id string) error {
	return m.next.Delete(ctx, id)
}

func (m *maskMiddleware) List(ctx context.Context) ([]string, error) {
	return m.next.List(ctx)
}

// MaskDigits keeps the last visible characters of digits and masks the rest.
func MaskDigits(digits string, visible int) string {
	if len(digits) <= visible {
		return digits
	}
	cut := len(digits) - visible
	return strings.Repeat(string(MaskRune), cut) + digits[cut:]
}
