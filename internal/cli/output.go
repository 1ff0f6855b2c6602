package cli

import (
	"bytes"
	"fmt"
	"io"
	"os"

	"github.com/aretw0/bankocr/internal/presentation/tui"
	"github.com/aretw0/bankocr/pkg/domain"
	"github.com/aretw0/bankocr/pkg/report"
	"golang.org/x/term"
)

// IsTerminal reports whether f is attached to a terminal.
func IsTerminal(f *os.File) bool {
	return term.IsTerminal(int(f.Fd()))
}

// WriteReport prints entries in format. On a terminal, the text report
// gets coloured statuses and markdown is rendered with glamour.
func WriteReport(w io.Writer, format string, entries []domain.Entry, tty bool) error {
	if !tty {
		return report.Write(format, w, entries)
	}

	switch format {
	case "text":
		return tui.NewStatusWriter(w).Write(w, entries)
	case "markdown":
		var md bytes.Buffer
		if err := report.WriteMarkdown(&md, entries); err != nil {
			return err
		}
		render, err := tui.NewRenderer()
		if err != nil {
			return fmt.Errorf("failed to create renderer: %w", err)
		}
		out, err := render(md.String())
		if err != nil {
			return fmt.Errorf("failed to render report: %w", err)
		}
		_, err = io.WriteString(w, out)
		return err
	default:
		return report.Write(format, w, entries)
	}
}
