package ocr

import "github.com/aretw0/bankocr/pkg/domain"

// Decoder turns display lines into classified entries.
type Decoder struct {
	lines LineDecoder
}

// NewDecoder creates a Decoder backed by the canonical catalog.
func NewDecoder() Decoder {
	return Decoder{lines: NewLineDecoder()}
}

// DecodeEntry decodes and classifies a single display line.
// A malformed line yields an entry with StatusInvalid and the error message.
func (d Decoder) DecodeEntry(line domain.DisplayLine) domain.Entry {
	entry := domain.Entry{Display: line}
	reading, err := d.lines.Decode(line)
	if err != nil {
		entry.Status = domain.StatusInvalid
		entry.Err = err.Error()
		return entry
	}
	entry.Reading = reading
	entry.Status = Classify(reading)
	return entry
}

// DecodeAll decodes lines in order. A malformed line never stops the batch.
func (d Decoder) DecodeAll(lines []domain.DisplayLine) []domain.Entry {
	entries := make([]domain.Entry, len(lines))
	for i, line := range lines {
		entries[i] = d.DecodeEntry(line)
		entries[i].Index = i
	}
	return entries
}
