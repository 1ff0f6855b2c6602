package ocr

import (
	"errors"
	"fmt"
	"strings"

	"github.com/aretw0/bankocr/pkg/domain"
)

// LineDecoder decodes full display lines into account numbers.
type LineDecoder struct {
	digits DigitDecoder
}

// NewLineDecoder creates a line decoder backed by the canonical catalog.
func NewLineDecoder() LineDecoder {
	return LineDecoder{digits: NewDigitDecoder()}
}

// Decode validates the shape of line and decodes its glyphs left to right.
//
// It returns domain.ErrMalformedLine if any row is not exactly
// domain.LineWidth characters. Unrecognized glyphs are not an error: they are
// reported through Reading.Illegible and marked in Reading.Digits.
func (d LineDecoder) Decode(line domain.DisplayLine) (domain.Reading, error) {
	for i, row := range line {
		if len(row) != domain.LineWidth {
			return domain.Reading{}, fmt.Errorf("%w: row %d has %d characters, want %d",
				domain.ErrMalformedLine, i, len(row), domain.LineWidth)
		}
	}

	var (
		sb      strings.Builder
		reading domain.Reading
	)
	sb.Grow(domain.DigitsPerLine)
	for pos := 0; pos < domain.DigitsPerLine; pos++ {
		ch, err := d.digits.Decode(line.Glyph(pos))
		if err != nil {
			if !errors.Is(err, domain.ErrUnrecognizedGlyph) {
				return domain.Reading{}, err
			}
			reading.Illegible = append(reading.Illegible, pos)
		}
		sb.WriteRune(ch)
	}
	reading.Digits = sb.String()
	return reading, nil
}
