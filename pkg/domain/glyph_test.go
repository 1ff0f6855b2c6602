package domain_test

import (
	"testing"

	"github.com/aretw0/bankocr/pkg/domain"
	"github.com/stretchr/testify/assert"
)

func TestGlyph_WellFormed(t *testing.T) {
	assert.True(t, domain.NewGlyph(" _ ", "| |", "|_|").WellFormed())
	assert.False(t, domain.NewGlyph("", "", "").WellFormed())
	assert.False(t, domain.NewGlyph(" _ ", "| |", "|_|  ").WellFormed())
}

func TestParseDisplayLine(t *testing.T) {
	line := domain.ParseDisplayLine("a\r\nb\nc\nd")
	assert.Equal(t, domain.NewDisplayLine("a", "b", "c"), line)

	short := domain.ParseDisplayLine("only")
	assert.Equal(t, domain.NewDisplayLine("only", "", ""), short)
	assert.False(t, short.WellFormed())
}

func TestDisplayLine_Glyph(t *testing.T) {
	line := domain.NewDisplayLine(
		"    _  _     _  _  _  _  _ ",
		"  | _| _||_||_ |_   ||_||_|",
		"  ||_  _|  | _||_|  ||_| _|",
	)
	assert.True(t, line.WellFormed())
	assert.Equal(t, domain.NewGlyph("   ", "  |", "  |"), line.Glyph(0))
	assert.Equal(t, domain.NewGlyph(" _ ", "|_|", " _|"), line.Glyph(8))
}

func TestBatch_CountsAndClone(t *testing.T) {
	b := domain.Batch{Entries: []domain.Entry{
		{Status: domain.StatusOK},
		{Status: domain.StatusIllegible, Reading: domain.Reading{Digits: "1????????", Illegible: []int{1, 2}}},
		{Status: domain.StatusOK},
	}}

	counts := b.Counts()
	assert.Equal(t, 2, counts[domain.StatusOK])
	assert.Equal(t, 1, counts[domain.StatusIllegible])
	assert.Zero(t, counts[domain.StatusInvalid])

	c := b.Clone()
	c.Entries[1].Reading.Illegible[0] = 7
	c.Entries[0].Status = domain.StatusError
	assert.Equal(t, 1, b.Entries[1].Reading.Illegible[0])
	assert.Equal(t, domain.StatusOK, b.Entries[0].Status)
}
