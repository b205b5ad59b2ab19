package redact

import "regexp"

// Placeholder replaces every detected secret.
const Placeholder = "[REDACTED]"

type rule struct {
	name string
	re   *regexp.Regexp
}

// rules are applied in order; provider-specific shapes come before the
// generic ones so that a key is masked as one span.
var rules = []rule{
	{"private-key", regexp.MustCompile(`-----BEGIN[ \t]+(?:RSA[ \t]+|EC[ \t]+|OPENSSH[ \t]+)?PRIVATE KEY-----`)},
	{"aws-access-key-id", regexp.MustCompile(`AKIA[0-9A-Z]{16}`)},
	{"aws-secret-access-key", regexp.MustCompile(`(?i)aws[_-]?secret[_-]?access[_-]?key[ \t]*[:=][ \t]*["']?[A-Za-z0-9/+=]{40}["']?`)},
	{"anthropic-key", regexp.MustCompile(`sk-ant-[A-Za-z0-9_-]{20,}`)},
	{"openai-key", regexp.MustCompile(`sk-(?:proj-)?[A-Za-z0-9_-]{20,}`)},
	{"github-token", regexp.MustCompile(`gh[pousr]_[A-Za-z0-9_]{36,}`)},
	{"slack-token", regexp.MustCompile(`xox[bporas]-[A-Za-z0-9-]{10,}`)},
	{"jwt", regexp.MustCompile(`eyJ[A-Za-z0-9_-]{10,}\.eyJ[A-Za-z0-9_-]{10,}\.[A-Za-z0-9_-]{10,}`)},
	{"bearer", regexp.MustCompile(`(?i)Bearer[ \t]+[A-Za-z0-9._~+/-]{20,}=*`)},
	{"url-credentials", regexp.MustCompile(`(?i)\b[a-z][a-z0-9+.-]*://[^\s:/@]+:[^\s@/]+@`)},
	{"api-key-assignment", regexp.MustCompile(`(?i)(?:api[_-]?key|apikey|api[_-]?secret)[ \t]*[:=][ \t]*["']?[A-Za-z0-9/+=_-]{20,}["']?`)},
	{"secret-assignment", regexp.MustCompile(`(?i)(?:secret|token|password|passwd|credential)[ \t]*[:=][ \t]*["'][^"'\n]{8,}["']`)},
	{"hex-secret-assignment", regexp.MustCompile(`(?i)(?:key|secret|token)[ \t]*[:=][ \t]*["']?[0-9a-f]{32,}["']?`)},
}

// Secrets replaces detected secrets in text with [REDACTED]. Matches never
// span a newline, so the line structure of text is preserved.
func Secrets(text string) string {
	for _, r := range rules {
		text = r.re.ReplaceAllLiteralString(text, Placeholder)
	}
	return text
}

// Detect returns the names of the rules that match text, in rule order.
func Detect(text string) []string {
	var names []string
	for _, r := range rules {
		if r.re.MatchString(text) {
			names = append(names, r.name)
		}
	}
	return names
}
