package report_test

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	"github.com/aretw0/bankocr/pkg/domain"
	"github.com/aretw0/bankocr/pkg/report"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleEntries() []domain.Entry {
	return []domain.Entry{
		{Index: 0, Line: 1, Reading: domain.Reading{Digits: "457508000"}, Status: domain.StatusOK},
		{Index: 1, Line: 5, Reading: domain.Reading{Digits: "664371495"}, Status: domain.StatusError},
		{Index: 2, Line: 9, Reading: domain.Reading{Digits: "86110??36", Illegible: []int{5, 6}}, Status: domain.StatusIllegible},
		{Index: 3, Line: 13, Status: domain.StatusInvalid, Err: "malformed display line"},
	}
}

func TestWriteText(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, report.Write("text", &buf, sampleEntries()))
	assert.Equal(t, "457508000\n664371495 ERR\n86110??36 ILL\nINVALID\n", buf.String())
}

func TestWriteJSON(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, report.Write("json", &buf, sampleEntries()))

	var got []domain.Entry
	require.NoError(t, json.Unmarshal(buf.Bytes(), &got))
	require.Len(t, got, 4)
	assert.Equal(t, domain.StatusIllegible, got[2].Status)
	assert.Equal(t, []int{5, 6}, got[2].Reading.Illegible)
	assert.Equal(t, "malformed display line", got[3].Err)
}

func TestWriteJSON_EmptyIsArray(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, report.WriteJSON(&buf, nil))
	assert.Equal(t, "[]\n", buf.String())
}

func TestWriteJSONL(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, report.Write("jsonl", &buf, sampleEntries()))

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	require.Len(t, lines, 4)
	var first domain.Entry
	require.NoError(t, json.Unmarshal([]byte(lines[0]), &first))
	assert.Equal(t, "457508000", first.Reading.Digits)
	assert.Equal(t, domain.StatusOK, first.Status)
}

func TestWriteMarkdown(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, report.Write("markdown", &buf, sampleEntries()))

	out := buf.String()
	assert.Contains(t, out, "| 1 | 1 | `457508000` | OK |")
	assert.Contains(t, out, "| 4 | 13 | INVALID | INV |")
	assert.Contains(t, out, "**4 entries** · OK: 1 · ERR: 1 · ILL: 1 · INV: 1")
}

func TestWrite_UnknownFormat(t *testing.T) {
	err := report.Write("xml", &bytes.Buffer{}, nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), `"xml"`)
}

func TestFormats(t *testing.T) {
	assert.Equal(t, []string{"json", "jsonl", "markdown", "text"}, report.Formats())
}
