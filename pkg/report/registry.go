package report

import (
	"fmt"
	"io"
	"sort"

	"github.com/aretw0/bankocr/pkg/domain"
)

// WriteFunc renders entries to w.
type WriteFunc func(w io.Writer, entries []domain.Entry) error

var writers = map[string]WriteFunc{}

// Register installs fn as the writer for format. Last registration wins.
func Register(format string, fn WriteFunc) { writers[format] = fn }

// Write renders entries with the writer registered for format.
func Write(format string, w io.Writer, entries []domain.Entry) error {
	fn, ok := writers[format]
	if !ok {
		return fmt.Errorf("unknown report format %q (no writer registered)", format)
	}
	return fn(w, entries)
}

// Formats lists the registered format names in sorted order.
func Formats() []string {
	names := make([]string, 0, len(writers))
	for name := range writers {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
