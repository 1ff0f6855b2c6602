package ocr

import (
	"fmt"

	"github.com/aretw0/bankocr/pkg/domain"
)

// DigitDecoder resolves a single glyph to its digit character.
type DigitDecoder struct {
	catalog Catalog
}

// NewDigitDecoder creates a decoder backed by the canonical catalog.
func NewDigitDecoder() DigitDecoder {
	return DigitDecoder{}
}

// Decode returns the digit character ('0'-'9') printed by g.
// Any glyph outside the catalog, including empty or malformed ones,
// yields domain.ErrUnrecognizedGlyph.
func (d DigitDecoder) Decode(g domain.Glyph) (rune, error) {
	digit, ok := d.catalog.Lookup(g)
	if !ok {
		if !g.WellFormed() {
			return domain.IllegibleMark, fmt.Errorf("%w: %w", domain.ErrUnrecognizedGlyph, domain.ErrMalformedGlyph)
		}
		return domain.IllegibleMark, domain.ErrUnrecognizedGlyph
	}
	return rune('0' + digit), nil
}
