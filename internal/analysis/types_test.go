package analysis

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestResultClean(t *testing.T) {
	assert.True(t, Result{}.Clean())
	assert.True(t, Result{Errors: []Issue{}, CodeSmells: []Issue{}, PotentialBugs: []Issue{}}.Clean())

	for _, c := range Categories() {
		var r Result
		switch c {
		case CategoryErrors:
			r.Errors = []Issue{{Description: "x"}}
		case CategoryCodeSmells:
			r.CodeSmells = []Issue{{Description: "x"}}
		case CategoryPotentialBugs:
			r.PotentialBugs = []Issue{{Description: "x"}}
		}
		assert.False(t, r.Clean(), string(c))
		assert.Equal(t, 1, r.Count())
		assert.Len(t, r.Issues(c), 1)
	}
	assert.Nil(t, Result{}.Issues("style"))
}

func TestBody_Clean(t *testing.T) {
	data, err := json.Marshal(Body(Result{}))
	require.NoError(t, err)
	assert.JSONEq(t, `{"message": "No issues found. The code appears clean and well-structured."}`, string(data))
}

func TestBody_WithIssues(t *testing.T) {
	r := Result{PotentialBugs: []Issue{
		{Description: "Possible division by zero", LineNumber: Line(2)},
		{Description: "Unchecked input"},
	}}

	data, err := json.Marshal(Body(r))
	require.NoError(t, err)
	assert.JSONEq(t, `{
		"errors": [],
		"code_smells": [],
		"potential_bugs": [
			{"description": "Possible division by zero", "line_number": 2},
			{"description": "Unchecked input", "line_number": null}
		]
	}`, string(data))
}

func TestSchemaMatchesResultKeys(t *testing.T) {
	s := Schema()
	props, ok := s["properties"].(map[string]any)
	require.True(t, ok)

	for _, c := range Categories() {
		p, ok := props[string(c)].(map[string]any)
		require.True(t, ok, "schema is missing %s", c)
		items := p["items"].(map[string]any)
		issueProps := items["properties"].(map[string]any)
		assert.Contains(t, issueProps, "description")
		assert.Contains(t, issueProps, "line_number")
	}
	assert.Len(t, props, len(Categories()))
}

func TestInstructions(t *testing.T) {
	for _, want := range []string{"Syntax errors", "Code smells", "Potential bugs", `"errors"`, `"code_smells"`, `"potential_bugs"`} {
		assert.Contains(t, Instructions(), want)
	}
}

func TestWriteBody(t *testing.T) {
	var buf bytes.Buffer
	r := Result{Errors: []Issue{{Description: "x < y && y > z", LineNumber: Line(7)}}}

	require.NoError(t, WriteBody(&buf, r))
	assert.Equal(t,
		`{"errors":[{"description":"x < y && y > z","line_number":7}],"code_smells":[],"potential_bugs":[]}`+"\n",
		buf.String())
}
