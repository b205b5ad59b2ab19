package output

import (
	"fmt"
	"io"

	"github.com/dshills/codeprobe/internal/analysis"
)

// JSONWriter writes the same JSON body the gateway returns: the clean message
// when there are no issues, the three issue lists otherwise.
type JSONWriter struct{}

func (j *JSONWriter) Write(w io.Writer, report *Report) error {
	if err := analysis.WriteBody(w, report.Result); err != nil {
		return fmt.Errorf("writing JSON: %w", err)
	}
	return nil
}
