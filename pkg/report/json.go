package report

import (
	"bufio"
	"encoding/json"
	"io"

	"github.com/aretw0/bankocr/pkg/domain"
)

func init() {
	Register("json", WriteJSON)
	Register("jsonl", WriteJSONL)
}

// WriteJSON prints all entries as an indented JSON array.
func WriteJSON(w io.Writer, entries []domain.Entry) error {
	if entries == nil {
		entries = []domain.Entry{}
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(entries)
}

// WriteJSONL prints one JSON object per entry.
func WriteJSONL(w io.Writer, entries []domain.Entry) error {
	bw := bufio.NewWriter(w)
	enc := json.NewEncoder(bw)
	for _, e := range entries {
		if err := enc.Encode(e); err != nil {
			return err
		}
	}
	return bw.Flush()
}
