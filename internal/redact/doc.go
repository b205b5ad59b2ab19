// Package redact masks likely secrets in source text before it is sent to an
// LLM provider. Redaction is opt-in (privacy.redactSecrets).
//
// Detection uses regex heuristics covering common secret shapes: API keys,
// JWTs, private key headers, AWS credentials, bearer tokens, credentials
// embedded in connection URLs, and provider-specific tokens (Anthropic,
// OpenAI, GitHub, Slack). Each match is replaced with [REDACTED], so line
// numbers in the masked text still match the original.
package redact
