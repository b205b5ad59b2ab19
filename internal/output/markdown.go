package output

import (
	"io"
	"path/filepath"
	"strings"

	"github.com/dshills/codeprobe/internal/analysis"
)

// MarkdownWriter outputs a PR-comment-friendly markdown report.
type MarkdownWriter struct{}

func (m *MarkdownWriter) Write(w io.Writer, report *Report) error {
	ew := &errWriter{w: w}
	r := report.Result

	ew.printf("## codeprobe: `%s`\n\n", displayPath(report.Path))

	ew.printf("| Category | Count |\n")
	ew.printf("|----------|-------|\n")
	for _, c := range analysis.Categories() {
		ew.printf("| %s | %d |\n", categoryTitle(c), len(r.Issues(c)))
	}
	ew.printf("| **Total** | **%d** |\n\n", r.Count())

	if r.Clean() {
		ew.printf("%s :white_check_mark:\n", analysis.CleanMessage)
		return ew.err
	}

	lang := inferLang(report.Path)
	for _, c := range analysis.Categories() {
		issues := r.Issues(c)
		if len(issues) == 0 {
			continue
		}
		ew.printf("<details>\n<summary>%s %s (%d)</summary>\n\n", mdCategoryIcon(c), categoryTitle(c), len(issues))
		for _, issue := range issues {
			if issue.LineNumber != nil {
				ew.printf("- **Line %d:** %s\n", *issue.LineNumber, mdEscape(issue.Description))
			} else {
				ew.printf("- %s\n", mdEscape(issue.Description))
			}
		}
		ew.printf("\n</details>\n\n")
	}

	if lang != "" || report.Provider != "" {
		ew.printf("*")
		if lang != "" {
			ew.printf("%s source", lang)
		}
		if report.Provider != "" {
			if lang != "" {
				ew.printf(", ")
			}
			ew.printf("analyzed by %s", report.Provider)
		}
		if report.Duration > 0 {
			ew.printf(" in %dms", report.Duration.Milliseconds())
		}
		ew.printf("*\n")
	}
	return ew.err
}

func mdCategoryIcon(c analysis.Category) string {
	switch c {
	case analysis.CategoryErrors:
		return ":red_circle:"
	case analysis.CategoryPotentialBugs:
		return ":orange_circle:"
	case analysis.CategoryCodeSmells:
		return ":yellow_circle:"
	default:
		return ":white_circle:"
	}
}

// mdEscape keeps a description on one list item line.
func mdEscape(s string) string {
	return strings.Join(strings.Fields(s), " ")
}

var langMap = map[string]string{
	".go":   "go",
	".py":   "python",
	".js":   "javascript",
	".ts":   "typescript",
	".tsx":  "tsx",
	".jsx":  "jsx",
	".rs":   "rust",
	".java": "java",
	".rb":   "ruby",
	".cpp":  "cpp",
	".c":    "c",
	".cs":   "csharp",
	".php":  "php",
	".sh":   "bash",
	".sql":  "sql",
	".yaml": "yaml",
	".yml":  "yaml",
	".tf":   "hcl",
}

func inferLang(path string) string {
	return langMap[strings.ToLower(filepath.Ext(path))]
}

