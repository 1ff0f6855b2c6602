package ocr

import (
	"fmt"
	"strings"

	"github.com/aretw0/bankocr/pkg/domain"
)

// Encode prints digits the way the scanning machine does.
// It is the inverse of LineDecoder.Decode for legible readings.
func Encode(digits string) (domain.DisplayLine, error) {
	if len(digits) != domain.DigitsPerLine {
		return domain.DisplayLine{}, fmt.Errorf("%w: got %d characters", ErrNotAccountNumber, len(digits))
	}

	var (
		catalog Catalog
		rows    [domain.GlyphRows]strings.Builder
	)
	for i := 0; i < len(digits); i++ {
		g, ok := catalog.Glyph(int(digits[i]) - '0')
		if !ok {
			return domain.DisplayLine{}, fmt.Errorf("%w: %q at position %d", ErrNotAccountNumber, digits[i], i)
		}
		for r := range rows {
			rows[r].WriteString(g[r])
		}
	}
	return domain.NewDisplayLine(rows[0].String(), rows[1].String(), rows[2].String()), nil
}
