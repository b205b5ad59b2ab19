// Package output formats analysis reports for display or machine consumption.
//
// Four formats are supported:
//   - text: human-readable terminal output (default)
//   - json: exactly the body the gateway returns for the same result
//   - markdown: summary table plus one section per issue category
//   - sarif: SARIF v2.1.0 for upload to code scanning tools
//
// Use [GetWriter] to obtain a [Writer] for a given format string, or
// [WriteReport] to render straight to a file or stdout.
package output
