/*
Package ocr decodes the seven-segment style account numbers printed by the scanning machine.

Decoding is split in three layers, each usable on its own:

  - Catalog: the ten canonical glyph patterns for the digits 0-9.
  - DigitDecoder: resolves one Glyph to its digit through the Catalog.
  - LineDecoder: validates a DisplayLine and decodes its nine glyphs left to right.

All three are pure and safe for concurrent use: the catalog is built once at
package initialization and never mutated afterwards.

# Outcomes

A line whose rows are not all 27 characters wide is rejected with
domain.ErrMalformedLine. A glyph that matches no canonical pattern does not fail
the line: its position is filled with domain.IllegibleMark and recorded in
Reading.Illegible, so a caller sees exactly which digits could not be read.

	r, err := ocr.NewLineDecoder().Decode(line)
	if err != nil {
		// errors.Is(err, domain.ErrMalformedLine)
	}
	fmt.Println(r.Digits, ocr.Classify(r))
*/
package ocr
