package domain

import "errors"

// ErrMalformedLine is returned when a display line does not have three rows of LineWidth characters.
var ErrMalformedLine = errors.New("malformed display line")

// ErrMalformedGlyph is returned when a glyph does not have three rows of GlyphWidth characters.
var ErrMalformedGlyph = errors.New("malformed glyph")

// ErrUnrecognizedGlyph is returned when a glyph matches none of the canonical digit patterns.
var ErrUnrecognizedGlyph = errors.New("unrecognized glyph")

// ErrBatchNotFound is returned when a batch ID cannot be found in the store.
var ErrBatchNotFound = errors.New("batch not found")
