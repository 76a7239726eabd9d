package observability

import (
	"bytes"
	"errors"
	"strings"
	"testing"

	"github.com/jonathan/resume-ats/internal/types"
	"github.com/stretchr/testify/assert"
)

func TestBand(t *testing.T) {
	tests := []struct {
		score    int
		expected string
	}{
		{100, BandStrong},
		{80, BandStrong},
		{79, BandFair},
		{50, BandFair},
		{49, BandWeak},
		{0, BandWeak},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.expected, Band(tt.score), "Band(%d)", tt.score)
	}
}

func TestPrintScore(t *testing.T) {
	var buf bytes.Buffer
	p := NewPrinter(&buf)

	result := types.ScoreResult{
		Score: 65,
		Checks: []types.Check{
			{Label: "Contact & Essential Links", Passed: true, Suggestion: "Contact info is solid.", Points: 15, MaxPoints: 15},
			{Label: "Professional Summary", Passed: false, Suggestion: "Summary should be 30-70 words for better ATS reading.", Points: 5, MaxPoints: 15},
		},
	}

	p.PrintScore("jane.json", result)
	output := buf.String()

	assert.Contains(t, output, "ATS SCORE: jane.json")
	assert.Contains(t, output, "65/100 (fair)")
	assert.Contains(t, output, "Checks passed: 1 of 2")
	assert.Contains(t, output, "✓ Contact & Essential Links (15/15)")
	assert.Contains(t, output, "✗ Professional Summary (5/15)")
	assert.Contains(t, output, "Pro tip")

	// Order is preserved
	assert.Less(t, strings.Index(output, "Contact"), strings.Index(output, "Professional Summary"))
}

func TestPrintScore_BoxLinesAlign(t *testing.T) {
	var buf bytes.Buffer
	p := NewPrinter(&buf)

	p.PrintScore("", types.ScoreResult{Checks: []types.Check{
		{Label: "Experience Impact", Suggestion: strings.Repeat("verbose suggestion ", 12)},
	}})

	for _, line := range strings.Split(strings.TrimSpace(buf.String()), "\n") {
		assert.Equal(t, boxWidth, len([]rune(line)), "line %q", line)
	}
}

func TestPrintError(t *testing.T) {
	var buf bytes.Buffer
	NewPrinter(&buf).PrintError("bad.json", errors.New("record does not match schema"))

	assert.Contains(t, buf.String(), "bad.json")
	assert.Contains(t, buf.String(), "record does not match schema")
}

func TestWrap(t *testing.T) {
	assert.Nil(t, wrap("", 10))
	assert.Equal(t, []string{"one two", "three"}, wrap("one two three", 8))
	assert.Equal(t, []string{"unbreakableword"}, wrap("unbreakableword", 5))
}
