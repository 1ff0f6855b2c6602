package tui

import (
	"bytes"
	"strings"
	"testing"

	"github.com/aretw0/bankocr/pkg/domain"
	"github.com/aretw0/bankocr/pkg/report"
	"github.com/muesli/termenv"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var entries = []domain.Entry{
	{Reading: domain.Reading{Digits: "457508000"}, Status: domain.StatusOK},
	{Reading: domain.Reading{Digits: "664371495"}, Status: domain.StatusError},
	{Reading: domain.Reading{Digits: "86110??36", Illegible: []int{5, 6}}, Status: domain.StatusIllegible},
	{Status: domain.StatusInvalid, Err: "malformed line"},
}

func TestStatusWriter_AsciiMatchesTextReport(t *testing.T) {
	var colored, plain bytes.Buffer

	require.NoError(t, NewStatusWriterWithProfile(termenv.Ascii).Write(&colored, entries))
	require.NoError(t, report.WriteText(&plain, entries))

	assert.Equal(t, plain.String(), colored.String())
}

func TestStatusWriter_ColorsStatuses(t *testing.T) {
	sw := NewStatusWriterWithProfile(termenv.TrueColor)

	assert.Equal(t, "457508000", sw.Format(entries[0]), "OK entries stay plain")

	errLine := sw.Format(entries[1])
	assert.True(t, strings.HasPrefix(errLine, "664371495 "))
	assert.Contains(t, errLine, "\x1b[")
	assert.Contains(t, errLine, "ERR")

	invLine := sw.Format(entries[3])
	assert.Contains(t, invLine, "\x1b[")
	assert.Contains(t, invLine, report.InvalidMarker)
}

func TestPrintBanner(t *testing.T) {
	var buf bytes.Buffer
	PrintBanner(&buf, "1.2.3")

	out := buf.String()
	assert.Contains(t, out, "v1.2.3")
	assert.NotContains(t, out, "\x1b[", "a buffer is not a terminal")
}

func TestRenderer(t *testing.T) {
	render, err := NewRenderer()
	require.NoError(t, err)

	var md bytes.Buffer
	require.NoError(t, report.WriteMarkdown(&md, entries))

	out, err := render(md.String())
	require.NoError(t, err)
	assert.Contains(t, out, "Scan report")
	assert.Contains(t, out, "664371495")
}
