package output

import (
	"crypto/sha256"
	"encoding/json"
	"fmt"
	"io"
	"path/filepath"

	"github.com/dshills/codeprobe/internal/analysis"
)

// SARIFWriter outputs issues in SARIF v2.1.0 format.
type SARIFWriter struct{}

func (s *SARIFWriter) Write(w io.Writer, report *Report) error {
	data, err := json.MarshalIndent(buildSARIF(report), "", "  ")
	if err != nil {
		return fmt.Errorf("marshaling SARIF: %w", err)
	}
	if _, err := w.Write(data); err != nil {
		return fmt.Errorf("writing SARIF: %w", err)
	}
	_, err = fmt.Fprintln(w)
	return err
}

// SARIF schema types (v2.1.0)

type sarifLog struct {
	Version string     `json:"version"`
	Schema  string     `json:"$schema"`
	Runs    []sarifRun `json:"runs"`
}

type sarifRun struct {
	Tool    sarifTool     `json:"tool"`
	Results []sarifResult `json:"results"`
}

type sarifTool struct {
	Driver sarifDriver `json:"driver"`
}

type sarifDriver struct {
	Name           string      `json:"name"`
	Version        string      `json:"version,omitempty"`
	InformationURI string      `json:"informationUri"`
	Rules          []sarifRule `json:"rules"`
}

type sarifRule struct {
	ID               string             `json:"id"`
	Name             string             `json:"name"`
	ShortDescription sarifMessage       `json:"shortDescription"`
	DefaultConfig    sarifDefaultConfig `json:"defaultConfiguration"`
}

type sarifDefaultConfig struct {
	Level string `json:"level"`
}

type sarifResult struct {
	RuleID              string            `json:"ruleId"`
	RuleIndex           int               `json:"ruleIndex"`
	Level               string            `json:"level"`
	Message             sarifMessage      `json:"message"`
	Locations           []sarifLocation   `json:"locations,omitempty"`
	PartialFingerprints map[string]string `json:"partialFingerprints,omitempty"`
}

type sarifMessage struct {
	Text string `json:"text"`
}

type sarifLocation struct {
	PhysicalLocation sarifPhysicalLocation `json:"physicalLocation"`
}

type sarifPhysicalLocation struct {
	ArtifactLocation sarifArtifactLocation `json:"artifactLocation"`
	Region           *sarifRegion          `json:"region,omitempty"`
}

type sarifArtifactLocation struct {
	URI string `json:"uri"`
}

type sarifRegion struct {
	StartLine int `json:"startLine"`
}

func buildSARIF(report *Report) sarifLog {
	rules := make([]sarifRule, 0, len(analysis.Categories()))
	results := []sarifResult{}

	for i, c := range analysis.Categories() {
		rules = append(rules, sarifRule{
			ID:               ruleID(c),
			Name:             string(c),
			ShortDescription: sarifMessage{Text: categoryTitle(c)},
			DefaultConfig:    sarifDefaultConfig{Level: categoryLevel(c)},
		})

		for _, issue := range report.Result.Issues(c) {
			result := sarifResult{
				RuleID:    ruleID(c),
				RuleIndex: i,
				Level:     categoryLevel(c),
				Message:   sarifMessage{Text: issue.Description},
				PartialFingerprints: map[string]string{
					"codeprobe/v1": fingerprint(c, issue.Description),
				},
			}
			if report.Path != "" {
				loc := sarifLocation{PhysicalLocation: sarifPhysicalLocation{
					ArtifactLocation: sarifArtifactLocation{URI: filepath.ToSlash(report.Path)},
				}}
				// SARIF lines are 1-based.
				if issue.LineNumber != nil && *issue.LineNumber > 0 {
					loc.PhysicalLocation.Region = &sarifRegion{StartLine: *issue.LineNumber}
				}
				result.Locations = []sarifLocation{loc}
			}
			results = append(results, result)
		}
	}

	return sarifLog{
		Version: "2.1.0",
		Schema:  "https://raw.githubusercontent.com/oasis-tcs/sarif-spec/main/sarif-2.1/schema/sarif-schema-2.1.0.json",
		Runs: []sarifRun{
			{
				Tool: sarifTool{
					Driver: sarifDriver{
						Name:           "codeprobe",
						Version:        report.Version,
						InformationURI: "https://github.com/dshills/codeprobe",
						Rules:          rules,
					},
				},
				Results: results,
			},
		},
	}
}

func ruleID(c analysis.Category) string {
	return "codeprobe/" + string(c)
}

// categoryLevel maps an issue category to a SARIF level.
func categoryLevel(c analysis.Category) string {
	switch c {
	case analysis.CategoryErrors:
		return "error"
	case analysis.CategoryPotentialBugs:
		return "warning"
	default:
		return "note"
	}
}

// fingerprint is stable across runs for the same category and description.
func fingerprint(c analysis.Category, description string) string {
	h := sha256.Sum256([]byte(string(c) + "/" + description))
	return fmt.Sprintf("%x", h[:8])
}
