package tui

import (
	"bufio"
	"io"
	"strings"

	"github.com/aretw0/bankocr/pkg/domain"
	"github.com/aretw0/bankocr/pkg/report"
	"github.com/muesli/termenv"
)

var statusColors = map[domain.Status]string{
	domain.StatusOK:        "#22c55e",
	domain.StatusError:     "#f59e0b",
	domain.StatusIllegible: "#e879f9",
	domain.StatusInvalid:   "#ef4444",
}

// StatusWriter prints the text report with statuses coloured for the terminal.
type StatusWriter struct {
	profile termenv.Profile
}

// NewStatusWriter detects the colour profile of w.
func NewStatusWriter(w io.Writer) StatusWriter {
	return StatusWriter{profile: termenv.NewOutput(w).Profile}
}

// NewStatusWriterWithProfile forces a colour profile (termenv.Ascii disables colour).
func NewStatusWriterWithProfile(p termenv.Profile) StatusWriter {
	return StatusWriter{profile: p}
}

// Format renders one entry like report.FormatEntry, colouring the status
// (or the whole INVALID marker).
func (sw StatusWriter) Format(e domain.Entry) string {
	plain := report.FormatEntry(e)
	color := sw.profile.Color(statusColors[e.Status])

	switch e.Status {
	case domain.StatusOK:
		return plain
	case domain.StatusInvalid:
		return sw.profile.String(plain).Foreground(color).Bold().String()
	}

	digits, status, ok := strings.Cut(plain, " ")
	if !ok {
		return plain
	}
	return digits + " " + sw.profile.String(status).Foreground(color).String()
}

// Write prints one line per entry.
func (sw StatusWriter) Write(w io.Writer, entries []domain.Entry) error {
	bw := bufio.NewWriter(w)
	for _, e := range entries {
		if _, err := bw.WriteString(sw.Format(e) + "\n"); err != nil {
			return err
		}
	}
	return bw.Flush()
}
