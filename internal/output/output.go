package output

import (
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/dshills/codeprobe/internal/analysis"
)

// Report is one analysis result together with the context it was produced in.
type Report struct {
	Path     string
	Provider string
	Model    string
	Version  string
	Duration time.Duration
	Result   analysis.Result
}

// Writer writes a report in a specific format.
type Writer interface {
	Write(w io.Writer, report *Report) error
}

// Formats lists the supported format names.
func Formats() []string {
	return []string{"text", "json", "markdown", "sarif"}
}

// GetWriter returns a writer for the specified format.
func GetWriter(format string) (Writer, error) {
	switch strings.ToLower(format) {
	case "", "text":
		return &TextWriter{}, nil
	case "json":
		return &JSONWriter{}, nil
	case "markdown", "md":
		return &MarkdownWriter{}, nil
	case "sarif":
		return &SARIFWriter{}, nil
	default:
		return nil, fmt.Errorf("unsupported output format: %s (want one of %s)", format, strings.Join(Formats(), ", "))
	}
}

// WriteReport writes the report to outPath, or to stdout when outPath is empty.
func WriteReport(report *Report, format, outPath string, stdout io.Writer) (err error) {
	writer, err := GetWriter(format)
	if err != nil {
		return err
	}

	if outPath == "" {
		return writer.Write(stdout, report)
	}

	f, err := os.Create(outPath)
	if err != nil {
		return fmt.Errorf("creating output file: %w", err)
	}
	defer func() {
		if cerr := f.Close(); cerr != nil && err == nil {
			err = fmt.Errorf("closing output file: %w", cerr)
		}
	}()
	return writer.Write(f, report)
}

var categoryTitles = map[analysis.Category]string{
	analysis.CategoryErrors:        "Errors",
	analysis.CategoryCodeSmells:    "Code smells",
	analysis.CategoryPotentialBugs: "Potential bugs",
}

func categoryTitle(c analysis.Category) string {
	if t, ok := categoryTitles[c]; ok {
		return t
	}
	return string(c)
}

func lineLabel(issue analysis.Issue) string {
	if issue.LineNumber == nil {
		return "-"
	}
	return fmt.Sprintf("line %d", *issue.LineNumber)
}

func displayPath(p string) string {
	if p == "" {
		return "(stdin)"
	}
	return p
}
