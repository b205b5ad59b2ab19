package analysis

import (
	"encoding/json"
	"io"
)

// CleanMessage is returned in place of a result when no issues were reported.
const CleanMessage = "No issues found. The code appears clean and well-structured."

// Category names one of the three issue sequences of a Result.
type Category string

const (
	CategoryErrors        Category = "errors"
	CategoryCodeSmells    Category = "code_smells"
	CategoryPotentialBugs Category = "potential_bugs"
)

// Categories returns the categories in their canonical order.
func Categories() []Category {
	return []Category{CategoryErrors, CategoryCodeSmells, CategoryPotentialBugs}
}

// Issue is a single finding reported by the collaborator.
type Issue struct {
	Description string `json:"description"`
	LineNumber  *int   `json:"line_number"`
}

// Line returns a pointer to n, for building issues with a line number.
func Line(n int) *int {
	return &n
}

// Result is the structured outcome of one analysis.
type Result struct {
	Errors        []Issue `json:"errors"`
	CodeSmells    []Issue `json:"code_smells"`
	PotentialBugs []Issue `json:"potential_bugs"`
}

// Clean reports whether all three sequences are empty.
func (r Result) Clean() bool {
	return r.Count() == 0
}

// Count returns the total number of issues across all categories.
func (r Result) Count() int {
	return len(r.Errors) + len(r.CodeSmells) + len(r.PotentialBugs)
}

// Issues returns the sequence stored under c.
func (r Result) Issues(c Category) []Issue {
	switch c {
	case CategoryErrors:
		return r.Errors
	case CategoryCodeSmells:
		return r.CodeSmells
	case CategoryPotentialBugs:
		return r.PotentialBugs
	default:
		return nil
	}
}

// normalize replaces nil sequences with empty ones so that they encode as [].
func (r Result) normalize() Result {
	if r.Errors == nil {
		r.Errors = []Issue{}
	}
	if r.CodeSmells == nil {
		r.CodeSmells = []Issue{}
	}
	if r.PotentialBugs == nil {
		r.PotentialBugs = []Issue{}
	}
	return r
}

// Message is the informational body sent for a clean result.
type Message struct {
	Message string `json:"message"`
}

// Body returns the value that should be serialized for r: the clean message
// when r has no issues, r itself otherwise.
func Body(r Result) any {
	if r.Clean() {
		return Message{Message: CleanMessage}
	}
	return r.normalize()
}

// WriteBody encodes Body(r) to w as one line of JSON. HTML characters are not
// escaped, so descriptions pass through as written.
func WriteBody(w io.Writer, r Result) error {
	enc := json.NewEncoder(w)
	enc.SetEscapeHTML(false)
	return enc.Encode(Body(r))
}
