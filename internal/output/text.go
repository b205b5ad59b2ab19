package output

import (
	"fmt"
	"io"
	"strings"

	"github.com/dshills/codeprobe/internal/analysis"
)

// TextWriter outputs a human-readable text report.
type TextWriter struct{}

func (t *TextWriter) Write(w io.Writer, report *Report) error {
	ew := &errWriter{w: w}
	r := report.Result

	ew.printf("codeprobe analysis of %s", displayPath(report.Path))
	if report.Provider != "" {
		ew.printf(" (%s", report.Provider)
		if report.Model != "" {
			ew.printf("/%s", report.Model)
		}
		ew.printf(")")
	}
	ew.println("")
	ew.println(strings.Repeat("─", 60))
	ew.printf("Issues: %d total", r.Count())
	if !r.Clean() {
		ew.printf(" (%d errors, %d code smells, %d potential bugs)",
			len(r.Errors), len(r.CodeSmells), len(r.PotentialBugs))
	}
	ew.println("")
	ew.println(strings.Repeat("─", 60))

	if r.Clean() {
		ew.printf("\n%s\n", analysis.CleanMessage)
		return ew.err
	}

	for _, c := range analysis.Categories() {
		issues := r.Issues(c)
		if len(issues) == 0 {
			continue
		}
		ew.printf("\n%s %s (%d)\n", categoryIcon(c), strings.ToUpper(categoryTitle(c)), len(issues))
		ew.println(strings.Repeat("─", 40))
		for _, issue := range issues {
			lines := wrapText(issue.Description, 70)
			ew.printf("  %-9s %s\n", lineLabel(issue), lines[0])
			for _, line := range lines[1:] {
				ew.printf("  %-9s %s\n", "", line)
			}
		}
	}

	if report.Duration > 0 {
		ew.printf("\n%s\n", strings.Repeat("─", 60))
		ew.printf("Completed in %dms\n", report.Duration.Milliseconds())
	}
	return ew.err
}

// errWriter wraps an io.Writer and captures the first error.
type errWriter struct {
	w   io.Writer
	err error
}

func (ew *errWriter) printf(format string, args ...any) {
	if ew.err != nil {
		return
	}
	_, ew.err = fmt.Fprintf(ew.w, format, args...)
}

func (ew *errWriter) println(s string) {
	if ew.err != nil {
		return
	}
	_, ew.err = fmt.Fprintln(ew.w, s)
}

func categoryIcon(c analysis.Category) string {
	switch c {
	case analysis.CategoryErrors:
		return "[!!]"
	case analysis.CategoryPotentialBugs:
		return "[!]"
	case analysis.CategoryCodeSmells:
		return "[-]"
	default:
		return "[?]"
	}
}

// wrapText splits text into lines of at most width characters, breaking on
// whitespace. It always returns at least one line.
func wrapText(text string, width int) []string {
	if len(text) <= width {
		return []string{text}
	}
	var lines []string
	var current strings.Builder
	for _, word := range strings.Fields(text) {
		if current.Len()+len(word)+1 > width && current.Len() > 0 {
			lines = append(lines, current.String())
			current.Reset()
		}
		if current.Len() > 0 {
			current.WriteString(" ")
		}
		current.WriteString(word)
	}
	if current.Len() > 0 {
		lines = append(lines, current.String())
	}
	if len(lines) == 0 {
		return []string{""}
	}
	return lines
}
