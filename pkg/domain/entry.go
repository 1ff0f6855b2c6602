package domain

import "time"

// Status classifies a decoded entry.
type Status string

const (
	StatusOK        Status = "OK"  // Legible and checksum valid
	StatusIllegible Status = "ILL" // At least one glyph is unrecognized
	StatusError     Status = "ERR" // Legible but checksum invalid
	StatusInvalid   Status = "INV" // Malformed display line
)

// Reading is the outcome of decoding a well-formed DisplayLine.
type Reading struct {
	// Digits holds one character per glyph, left to right.
	// Unrecognized glyphs are replaced by IllegibleMark.
	Digits string `json:"digits"`

	// Illegible lists the positions of unrecognized glyphs, left to right.
	Illegible []int `json:"illegible,omitempty"`
}

// Legible reports whether every glyph was recognized.
func (r Reading) Legible() bool {
	return len(r.Illegible) == 0
}

// Entry is one scanned account number and its decoding outcome.
type Entry struct {
	Index   int         `json:"index"`
	Line    int         `json:"line,omitempty"` // 1-based source line of the top row
	Display DisplayLine `json:"rows"`
	Reading Reading     `json:"reading"`
	Status  Status      `json:"status"`
	Err     string      `json:"error,omitempty"`
}

// Batch is the set of entries decoded from one source.
type Batch struct {
	ID        string    `json:"id"`
	Source    string    `json:"source,omitempty"`
	CreatedAt time.Time `json:"created_at"`
	Entries   []Entry   `json:"entries"`
}

// Counts tallies the entries of the batch per status.
func (b Batch) Counts() map[Status]int {
	counts := make(map[Status]int, 4)
	for _, e := range b.Entries {
		counts[e.Status]++
	}
	return counts
}

// Clone returns a deep copy of the batch so stores can isolate their state from callers.
func (b Batch) Clone() Batch {
	out := b
	if b.Entries == nil {
		return out
	}
	out.Entries = make([]Entry, len(b.Entries))
	for i, e := range b.Entries {
		if e.Reading.Illegible != nil {
			e.Reading.Illegible = append([]int(nil), e.Reading.Illegible...)
		}
		out.Entries[i] = e
	}
	return out
}
