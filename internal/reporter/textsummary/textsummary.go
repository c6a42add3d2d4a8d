package textsummary

import (
	"fmt"
	"io"

	"github.com/IgorBayerl/linecount/internal/linecounter"
)

// TextReportBuilder writes the result of a counting run as plain text.
type TextReportBuilder struct {
	out       io.Writer
	breakdown bool
}

// NewTextReportBuilder creates a builder writing to out. With breakdown set,
// one line per root follows the total.
func NewTextReportBuilder(out io.Writer, breakdown bool) *TextReportBuilder {
	return &TextReportBuilder{out: out, breakdown: breakdown}
}

// CreateReport writes the total line and, if enabled, the per-root breakdown.
func (b *TextReportBuilder) CreateReport(summary *linecounter.Summary) error {
	if summary == nil {
		return fmt.Errorf("no summary to report")
	}
	if _, err := fmt.Fprintf(b.out, "Total number of lines in all files: %d\n", summary.Total); err != nil {
		return fmt.Errorf("failed to write total: %w", err)
	}
	if !b.breakdown {
		return nil
	}

	width := 0
	for _, rc := range summary.Roots {
		width = max(width, len(rc.Root.String()))
	}
	for _, rc := range summary.Roots {
		if _, err := fmt.Fprintf(b.out, "  %-*s %d lines in %d %s\n", width, rc.Root.String(), rc.Lines, rc.Files, plural(rc.Files, "file")); err != nil {
			return fmt.Errorf("failed to write breakdown: %w", err)
		}
	}
	return nil
}

func plural(n int, word string) string {
	if n == 1 {
		return word
	}
	return word + "s"
}
