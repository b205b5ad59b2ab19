package analysis

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"math"
	"strings"
)

// SchemaError reports a collaborator reply that is valid JSON but does not
// have the shape of a Result.
type SchemaError struct {
	Path   string
	Reason string
}

func (e *SchemaError) Error() string {
	return fmt.Sprintf("response does not match %s schema: %s: %s", SchemaName, e.Path, e.Reason)
}

type wireResult struct {
	Errors        *[]wireIssue `json:"errors"`
	CodeSmells    *[]wireIssue `json:"code_smells"`
	PotentialBugs *[]wireIssue `json:"potential_bugs"`
}

type wireIssue struct {
	Description *string         `json:"description"`
	LineNumber  json.RawMessage `json:"line_number"`
}

// ParseResult decodes a collaborator reply into a Result. Keys must match
// exactly, including case. Missing keys and wrongly typed values are rejected.
func ParseResult(content string) (Result, error) {
	content = stripFences(content)
	if content == "" {
		return Result{}, errors.New("empty response")
	}

	dec := json.NewDecoder(strings.NewReader(content))
	dec.DisallowUnknownFields()

	var w wireResult
	if err := dec.Decode(&w); err != nil {
		return Result{}, fmt.Errorf("invalid JSON object: %w", err)
	}
	if _, err := dec.Token(); !errors.Is(err, io.EOF) {
		return Result{}, errors.New("invalid JSON object: trailing data after result")
	}
	if err := checkKeys(content); err != nil {
		return Result{}, err
	}

	var (
		r   Result
		err error
	)
	if r.Errors, err = convertIssues(string(CategoryErrors), w.Errors); err != nil {
		return Result{}, err
	}
	if r.CodeSmells, err = convertIssues(string(CategoryCodeSmells), w.CodeSmells); err != nil {
		return Result{}, err
	}
	if r.PotentialBugs, err = convertIssues(string(CategoryPotentialBugs), w.PotentialBugs); err != nil {
		return Result{}, err
	}
	return r, nil
}

// checkKeys rejects keys that differ from the schema only in case, which
// encoding/json would otherwise accept.
func checkKeys(content string) error {
	var top map[string]json.RawMessage
	if err := json.Unmarshal([]byte(content), &top); err != nil {
		return fmt.Errorf("invalid JSON object: %w", err)
	}
	for key, raw := range top {
		switch Category(key) {
		case CategoryErrors, CategoryCodeSmells, CategoryPotentialBugs:
		default:
			return &SchemaError{Path: key, Reason: "unknown key"}
		}
		var items []map[string]json.RawMessage
		if err := json.Unmarshal(raw, &items); err != nil {
			continue
		}
		for i, item := range items {
			for k := range item {
				if k != "description" && k != "line_number" {
					return &SchemaError{Path: fmt.Sprintf("%s[%d].%s", key, i, k), Reason: "unknown key"}
				}
			}
		}
	}
	return nil
}

func convertIssues(key string, raw *[]wireIssue) ([]Issue, error) {
	if raw == nil {
		return nil, &SchemaError{Path: key, Reason: "missing array"}
	}
	issues := make([]Issue, 0, len(*raw))
	for i, wi := range *raw {
		path := fmt.Sprintf("%s[%d]", key, i)
		if wi.Description == nil {
			return nil, &SchemaError{Path: path + ".description", Reason: "missing string"}
		}
		line, err := parseLineNumber(wi.LineNumber)
		if err != nil {
			return nil, &SchemaError{Path: path + ".line_number", Reason: err.Error()}
		}
		issues = append(issues, Issue{Description: *wi.Description, LineNumber: line})
	}
	return issues, nil
}

// parseLineNumber accepts an absent value, null, or an integral JSON number.
func parseLineNumber(raw json.RawMessage) (*int, error) {
	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 || bytes.Equal(raw, []byte("null")) {
		return nil, nil
	}
	var f float64
	if err := json.Unmarshal(raw, &f); err != nil {
		return nil, fmt.Errorf("expected integer or null, got %s", raw)
	}
	if f != math.Trunc(f) || f > math.MaxInt32 || f < math.MinInt32 {
		return nil, fmt.Errorf("expected integer or null, got %s", raw)
	}
	return Line(int(f)), nil
}

// stripFences removes a surrounding markdown code fence, which some models add
// even when asked for bare JSON.
func stripFences(content string) string {
	content = strings.TrimSpace(content)
	if !strings.HasPrefix(content, "```") {
		return content
	}
	lines := strings.Split(content, "\n")
	if len(lines) < 2 {
		return content
	}
	end := len(lines)
	if strings.TrimSpace(lines[end-1]) == "```" {
		end--
	}
	return strings.TrimSpace(strings.Join(lines[1:end], "\n"))
}
