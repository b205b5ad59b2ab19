package output

import (
	"bytes"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dshills/codeprobe/internal/analysis"
)

func TestTextWriter_WithIssues(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, (&TextWriter{}).Write(&buf, sampleReport()))
	out := buf.String()

	assert.Contains(t, out, "codeprobe analysis of pkg/test.py (openai/gpt-4o-mini)")
	assert.Contains(t, out, "Issues: 3 total (1 errors, 1 code smells, 1 potential bugs)")
	assert.Contains(t, out, "[!!] ERRORS (1)")
	assert.Contains(t, out, "[!] POTENTIAL BUGS (1)")
	assert.Contains(t, out, "line 2    Possible division by zero")
	assert.Contains(t, out, "-         Function is too long")
	assert.Contains(t, out, "Completed in 1500ms")

	// Categories appear in canonical order.
	assert.Less(t, strings.Index(out, "ERRORS"), strings.Index(out, "CODE SMELLS"))
	assert.Less(t, strings.Index(out, "CODE SMELLS"), strings.Index(out, "POTENTIAL BUGS"))
}

func TestTextWriter_Clean(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, (&TextWriter{}).Write(&buf, cleanReport()))
	out := buf.String()

	assert.Contains(t, out, "Issues: 0 total\n")
	assert.Contains(t, out, analysis.CleanMessage)
	assert.NotContains(t, out, "ERRORS")
}

func TestTextWriter_WrapsLongDescriptions(t *testing.T) {
	report := &Report{Result: analysis.Result{Errors: []analysis.Issue{{
		Description: strings.Repeat("word ", 30),
		LineNumber:  analysis.Line(1),
	}}}}
	var buf bytes.Buffer
	require.NoError(t, (&TextWriter{}).Write(&buf, report))

	assert.Contains(t, buf.String(), "(stdin)")
	for _, line := range strings.Split(buf.String(), "\n") {
		assert.LessOrEqual(t, len([]rune(line)), 82, line)
	}
}

type failingWriter struct{}

func (failingWriter) Write([]byte) (int, error) { return 0, errors.New("disk full") }

func TestTextWriter_PropagatesWriteError(t *testing.T) {
	err := (&TextWriter{}).Write(failingWriter{}, sampleReport())
	assert.EqualError(t, err, "disk full")
}
