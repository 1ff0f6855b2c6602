package ocr

import "github.com/aretw0/bankocr/pkg/domain"

// canonical holds the printed pattern of each digit, indexed by value.
var canonical = [10]domain.Glyph{
	{" _ ", "| |", "|_|"},
	{"   ", "  |", "  |"},
	{" _ ", " _|", "|_ "},
	{" _ ", " _|", " _|"},
	{"   ", "|_|", "  |"},
	{" _ ", "|_ ", " _|"},
	{" _ ", "|_ ", "|_|"},
	{" _ ", "  |", "  |"},
	{" _ ", "|_|", "|_|"},
	{" _ ", "|_|", " _|"},
}

// Catalog maps canonical glyph patterns to digits.
// The zero value is ready to use.
type Catalog struct{}

// Lookup returns the digit whose canonical pattern equals g row by row.
// The second result is false when no pattern matches.
func (Catalog) Lookup(g domain.Glyph) (int, bool) {
	for digit, pattern := range canonical {
		if pattern == g {
			return digit, true
		}
	}
	return -1, false
}

// Glyph returns the canonical pattern of digit d.
func (Catalog) Glyph(d int) (domain.Glyph, bool) {
	if d < 0 || d >= len(canonical) {
		return domain.Glyph{}, false
	}
	return canonical[d], true
}
