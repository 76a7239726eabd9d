// Package observability provides formatted terminal output for score reports.
package observability

import (
	"fmt"
	"io"
	"strings"
	"unicode/utf8"

	"github.com/jonathan/resume-ats/internal/types"
)

const (
	// boxWidth is the default width for formatted output boxes
	boxWidth = 72
	// indent is the prefix for suggestion lines under a check
	indent = "    "
)

// Score bands shown next to the total.
const (
	BandStrong = "strong"
	BandFair   = "fair"
	BandWeak   = "weak"
)

// Band classifies a total score: 80 and above is strong, 50 and above is fair.
func Band(score int) string {
	switch {
	case score >= 80:
		return BandStrong
	case score >= 50:
		return BandFair
	default:
		return BandWeak
	}
}

// Printer handles formatted output of score results
type Printer struct {
	out io.Writer
}

// NewPrinter creates a new Printer that writes to the given writer
func NewPrinter(out io.Writer) *Printer {
	return &Printer{out: out}
}

// printBox prints a formatted box with a title and content
//
//nolint:errcheck // writing to a terminal; errors are not recoverable
func (p *Printer) printBox(title string, content string) {
	border := strings.Repeat("─", boxWidth-2)
	fmt.Fprintf(p.out, "┌%s┐\n", border)
	fmt.Fprintf(p.out, "│ %s │\n", pad(title, boxWidth-4))
	fmt.Fprintf(p.out, "├%s┤\n", border)

	for _, line := range strings.Split(content, "\n") {
		if utf8.RuneCountInString(line) > boxWidth-4 {
			line = string([]rune(line)[:boxWidth-7]) + "..."
		}
		fmt.Fprintf(p.out, "│ %s │\n", pad(line, boxWidth-4))
	}

	fmt.Fprintf(p.out, "└%s┘\n", border)
}

// pad right-pads s with spaces to width runes.
func pad(s string, width int) string {
	if n := utf8.RuneCountInString(s); n < width {
		return s + strings.Repeat(" ", width-n)
	}
	return s
}

// PrintScore outputs a score report. Checks are printed in the order given.
func (p *Printer) PrintScore(name string, result types.ScoreResult) {
	var sb strings.Builder

	sb.WriteString(fmt.Sprintf("ATS Score: %d/100 (%s)\n", result.Score, Band(result.Score)))
	sb.WriteString(fmt.Sprintf("Checks passed: %d of %d\n\n", result.PassedCount(), len(result.Checks)))

	for _, c := range result.Checks {
		mark := "✗"
		if c.Passed {
			mark = "✓"
		}
		sb.WriteString(fmt.Sprintf("%s %s (%d/%d)\n", mark, c.Label, c.Points, c.MaxPoints))
		for _, line := range wrap(c.Suggestion, boxWidth-4-len(indent)) {
			sb.WriteString(indent + line + "\n")
		}
	}

	sb.WriteString("\nPro tip: focus on action verbs and metrics.")

	title := "ATS SCORE"
	if name != "" {
		title += ": " + name
	}
	p.printBox(title, sb.String())
}

// PrintError outputs a record that could not be scored.
func (p *Printer) PrintError(name string, err error) {
	p.printBox("ATS SCORE: "+name, "error: "+err.Error())
}

// wrap splits text into lines of at most width runes, breaking on spaces.
func wrap(text string, width int) []string {
	fields := strings.Fields(text)
	if len(fields) == 0 {
		return nil
	}

	var lines []string
	line := fields[0]
	for _, w := range fields[1:] {
		if utf8.RuneCountInString(line)+1+utf8.RuneCountInString(w) > width {
			lines = append(lines, line)
			line = w
			continue
		}
		line += " " + w
	}
	return append(lines, line)
}
