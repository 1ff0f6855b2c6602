package domain

import "strings"

// Glyph is the printed form of one digit: three rows, top to bottom.
// A Glyph is well-formed only if every row is exactly GlyphWidth characters.
type Glyph [GlyphRows]string

// NewGlyph builds a Glyph from its three rows.
func NewGlyph(top, middle, bottom string) Glyph {
	return Glyph{top, middle, bottom}
}

// WellFormed reports whether every row is exactly GlyphWidth characters wide.
func (g Glyph) WellFormed() bool {
	for _, row := range g {
		if len(row) != GlyphWidth {
			return false
		}
	}
	return true
}

func (g Glyph) String() string {
	return strings.Join(g[:], "\n")
}

// DisplayLine is the printed form of one account number: three rows, top to bottom.
// A DisplayLine is well-formed only if every row is exactly LineWidth characters.
type DisplayLine [GlyphRows]string

// NewDisplayLine builds a DisplayLine from its three rows.
func NewDisplayLine(top, middle, bottom string) DisplayLine {
	return DisplayLine{top, middle, bottom}
}

// ParseDisplayLine splits text on newlines and uses the first three rows.
// Missing rows are left empty; a trailing carriage return is dropped from each row.
func ParseDisplayLine(text string) DisplayLine {
	var line DisplayLine
	rows := strings.Split(text, "\n")
	for i := 0; i < GlyphRows && i < len(rows); i++ {
		line[i] = strings.TrimSuffix(rows[i], "\r")
	}
	return line
}

// WellFormed reports whether every row is exactly LineWidth characters wide.
func (l DisplayLine) WellFormed() bool {
	for _, row := range l {
		if len(row) != LineWidth {
			return false
		}
	}
	return true
}

// Glyph returns the glyph at position i (0 is the leftmost digit).
// The line must be well-formed and i must be in [0, DigitsPerLine).
func (l DisplayLine) Glyph(i int) Glyph {
	start := i * GlyphWidth
	var g Glyph
	for r, row := range l {
		g[r] = row[start : start+GlyphWidth]
	}
	return g
}

func (l DisplayLine) String() string {
	return strings.Join(l[:], "\n")
}
