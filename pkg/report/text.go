package report

import (
	"bufio"
	"io"

	"github.com/aretw0/bankocr/pkg/domain"
)

// InvalidMarker is printed in place of the digits of a malformed entry.
const InvalidMarker = "INVALID"

func init() {
	Register("text", WriteText)
}

// FormatEntry renders one entry the way the text report prints it:
// the digits, followed by the status unless it is OK.
func FormatEntry(e domain.Entry) string {
	switch e.Status {
	case domain.StatusInvalid:
		return InvalidMarker
	case domain.StatusOK:
		return e.Reading.Digits
	default:
		return e.Reading.Digits + " " + string(e.Status)
	}
}

// WriteText prints one line per entry.
func WriteText(w io.Writer, entries []domain.Entry) error {
	bw := bufio.NewWriter(w)
	for _, e := range entries {
		if _, err := bw.WriteString(FormatEntry(e) + "\n"); err != nil {
			return err
		}
	}
	return bw.Flush()
}
