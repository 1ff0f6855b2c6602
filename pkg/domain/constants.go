package domain

// Display geometry of the scanning machine.
const (
	// GlyphRows is the number of printed rows per glyph and per line.
	GlyphRows = 3
	// GlyphWidth is the number of columns of a single glyph.
	GlyphWidth = 3
	// DigitsPerLine is the number of glyphs in an account number.
	DigitsPerLine = 9
	// LineWidth is the number of columns of a full display line.
	LineWidth = GlyphWidth * DigitsPerLine
)

// IllegibleMark replaces the digit of a glyph that matches no canonical pattern.
const IllegibleMark = '?'
