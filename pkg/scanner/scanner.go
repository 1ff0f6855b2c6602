// Package scanner reads the entry files produced by the scanning machine.
//
// Each entry is three rows of pipes and underscores, normally followed by a
// blank separator line. A file usually holds around 500 entries.
package scanner

import (
	"bufio"
	"io"
	"strings"

	"github.com/aretw0/bankocr/pkg/domain"
)

// maxLineSize bounds a single row; longer rows are reported by bufio as ErrTooLong.
const maxLineSize = 1 << 20

// Record is one raw entry read from a file.
type Record struct {
	Index   int                // 0-based position of the entry in the file
	Line    int                // 1-based line number of the top row
	Display domain.DisplayLine // Rows as read (padded if requested)
}

// Option configures a Scanner.
type Option func(*Scanner)

// WithPadding right-pads short rows with spaces to domain.LineWidth.
// Editors often strip trailing whitespace from scanner files, which would
// otherwise turn every affected entry into a malformed line.
func WithPadding(enabled bool) Option {
	return func(s *Scanner) {
		s.pad = enabled
	}
}

// Scanner splits a stream into entry records.
// It is not safe for concurrent use.
type Scanner struct {
	sc      *bufio.Scanner
	pad     bool
	line    int
	index   int
	pending []string
}

// New creates a Scanner reading from r.
func New(r io.Reader, opts ...Option) *Scanner {
	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 0, 4096), maxLineSize)
	s := &Scanner{sc: sc}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Next returns the next entry, or io.EOF when the input is exhausted.
//
// Empty lines are separators and are skipped. With padding on, an empty line
// is kept as a stripped top row only when two non-empty rows follow it and
// those are closed by an empty line or the end of input. A truncated entry at
// the end of the input is returned with its missing rows left empty so the
// decoder reports it as malformed.
func (s *Scanner) Next() (Record, error) {
	for {
		top, ok := s.readLine()
		if !ok {
			return Record{}, s.eof()
		}
		if top == "" && (!s.pad || !s.strippedTop()) {
			continue
		}

		rec := Record{Index: s.index, Line: s.line}
		rec.Display[0] = top
		read := 1
		for ; read < domain.GlyphRows; read++ {
			row, ok := s.readLine()
			if !ok {
				break
			}
			rec.Display[read] = row
		}

		if sep, ok := s.readLine(); ok && sep != "" {
			s.unread(sep)
		}

		if s.pad {
			for i := 0; i < read; i++ {
				rec.Display[i] = padRow(rec.Display[i])
			}
		}
		s.index++
		return rec, nil
	}
}

// ReadAll reads every remaining entry.
func ReadAll(r io.Reader, opts ...Option) ([]Record, error) {
	s := New(r, opts...)
	var out []Record
	for {
		rec, err := s.Next()
		if err == io.EOF {
			return out, nil
		}
		if err != nil {
			return out, err
		}
		out = append(out, rec)
	}
}

// fill buffers up to n lines ahead of the read position.
func (s *Scanner) fill(n int) {
	for len(s.pending) < n && s.sc.Scan() {
		s.pending = append(s.pending, strings.TrimSuffix(s.sc.Text(), "\r"))
	}
}

func (s *Scanner) readLine() (string, bool) {
	s.fill(1)
	if len(s.pending) == 0 {
		return "", false
	}
	line := s.pending[0]
	s.pending = s.pending[1:]
	s.line++
	return line, true
}

func (s *Scanner) unread(line string) {
	s.pending = append([]string{line}, s.pending...)
	s.line--
}

// strippedTop reports whether the empty line just read is the top row of an
// entry like all ones, whose blanks were trimmed away.
func (s *Scanner) strippedTop() bool {
	s.fill(domain.GlyphRows)
	if len(s.pending) < 2 || s.pending[0] == "" || s.pending[1] == "" {
		return false
	}
	return len(s.pending) == 2 || s.pending[2] == ""
}

func (s *Scanner) eof() error {
	if err := s.sc.Err(); err != nil {
		return err
	}
	return io.EOF
}

func padRow(row string) string {
	if len(row) >= domain.LineWidth {
		return row
	}
	return row + strings.Repeat(" ", domain.LineWidth-len(row))
}
