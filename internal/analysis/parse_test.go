package analysis

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseResult(t *testing.T) {
	tests := []struct {
		name    string
		content string
		want    Result
	}{
		{
			name:    "all empty",
			content: `{"errors":[],"code_smells":[],"potential_bugs":[]}`,
			want:    Result{Errors: []Issue{}, CodeSmells: []Issue{}, PotentialBugs: []Issue{}},
		},
		{
			name: "mixed issues keep order and line numbers",
			content: `{
				"errors": [{"description": "missing colon", "line_number": 1}],
				"code_smells": [
					{"description": "magic number", "line_number": null},
					{"description": "long method", "line_number": 40}
				],
				"potential_bugs": []
			}`,
			want: Result{
				Errors: []Issue{{Description: "missing colon", LineNumber: Line(1)}},
				CodeSmells: []Issue{
					{Description: "magic number"},
					{Description: "long method", LineNumber: Line(40)},
				},
				PotentialBugs: []Issue{},
			},
		},
		{
			name:    "line number may be omitted",
			content: `{"errors":[{"description":"x"}],"code_smells":[],"potential_bugs":[]}`,
			want:    Result{Errors: []Issue{{Description: "x"}}, CodeSmells: []Issue{}, PotentialBugs: []Issue{}},
		},
		{
			name:    "integral float line number",
			content: `{"errors":[],"code_smells":[],"potential_bugs":[{"description":"x","line_number":7.0}]}`,
			want:    Result{Errors: []Issue{}, CodeSmells: []Issue{}, PotentialBugs: []Issue{{Description: "x", LineNumber: Line(7)}}},
		},
		{
			name:    "markdown fence",
			content: "```json\n{\"errors\":[],\"code_smells\":[],\"potential_bugs\":[]}\n```",
			want:    Result{Errors: []Issue{}, CodeSmells: []Issue{}, PotentialBugs: []Issue{}},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseResult(tt.content)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestParseResult_Rejects(t *testing.T) {
	tests := []struct {
		name       string
		content    string
		schemaPath string
	}{
		{name: "empty", content: "  "},
		{name: "not json", content: "looks fine to me"},
		{name: "array instead of object", content: `[]`},
		{name: "trailing data", content: `{"errors":[],"code_smells":[],"potential_bugs":[]} extra`},
		{name: "unknown key", content: `{"errors":[],"code_smells":[],"potential_bugs":[],"style":[]}`},
		{name: "unknown issue key", content: `{"errors":[{"description":"x","severity":"high"}],"code_smells":[],"potential_bugs":[]}`},
		{name: "capitalized key", content: `{"Errors":[],"code_smells":[],"potential_bugs":[]}`, schemaPath: "Errors"},
		{name: "capitalized issue key", content: `{"errors":[{"Description":"x"}],"code_smells":[],"potential_bugs":[]}`, schemaPath: "errors[0].Description"},
		{name: "duplicate key in other case", content: `{"errors":[],"ERRORS":[],"code_smells":[],"potential_bugs":[]}`, schemaPath: "ERRORS"},
		{name: "missing key", content: `{"errors":[],"code_smells":[]}`, schemaPath: "potential_bugs"},
		{name: "null array", content: `{"errors":null,"code_smells":[],"potential_bugs":[]}`, schemaPath: "errors"},
		{name: "missing description", content: `{"errors":[],"code_smells":[{"line_number":3}],"potential_bugs":[]}`, schemaPath: "code_smells[0].description"},
		{name: "fractional line", content: `{"errors":[{"description":"x","line_number":1.5}],"code_smells":[],"potential_bugs":[]}`, schemaPath: "errors[0].line_number"},
		{name: "string line", content: `{"errors":[{"description":"x","line_number":"3"}],"code_smells":[],"potential_bugs":[]}`, schemaPath: "errors[0].line_number"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseResult(tt.content)
			require.Error(t, err)
			if tt.schemaPath != "" {
				var schemaErr *SchemaError
				require.ErrorAs(t, err, &schemaErr)
				assert.Equal(t, tt.schemaPath, schemaErr.Path)
			}
		})
	}
}

func TestStripFences(t *testing.T) {
	assert.Equal(t, "{}", stripFences("```\n{}\n```"))
	assert.Equal(t, "{}", stripFences("```json\n{}"))
	assert.Equal(t, "{}", stripFences("  {}  "))
	assert.Equal(t, "```", stripFences("```"))
}
