package report

import (
	"bufio"
	"fmt"
	"io"

	"github.com/aretw0/bankocr/pkg/domain"
)

func init() {
	Register("markdown", WriteMarkdown)
}

var summaryOrder = []domain.Status{
	domain.StatusOK,
	domain.StatusError,
	domain.StatusIllegible,
	domain.StatusInvalid,
}

// WriteMarkdown prints a table of entries followed by a status summary.
func WriteMarkdown(w io.Writer, entries []domain.Entry) error {
	bw := bufio.NewWriter(w)
	counts := make(map[domain.Status]int, len(summaryOrder))

	fmt.Fprintln(bw, "# Scan report")
	fmt.Fprintln(bw)
	fmt.Fprintln(bw, "| # | Line | Account | Status |")
	fmt.Fprintln(bw, "|---|------|---------|--------|")
	for _, e := range entries {
		counts[e.Status]++
		account := "`" + e.Reading.Digits + "`"
		if e.Status == domain.StatusInvalid {
			account = InvalidMarker
		}
		fmt.Fprintf(bw, "| %d | %d | %s | %s |\n", e.Index+1, e.Line, account, e.Status)
	}

	fmt.Fprintln(bw)
	fmt.Fprintf(bw, "**%d entries**", len(entries))
	for _, s := range summaryOrder {
		fmt.Fprintf(bw, " · %s: %d", s, counts[s])
	}
	fmt.Fprintln(bw)
	return bw.Flush()
}
