// Package gateway is the HTTP surface of codeprobe.
//
// POST /analyze accepts a multipart upload in the "file" field, validates it
// (present, named, UTF-8), hands the text to an [Analyzer], and writes either
// the analysis result, a fixed clean-code message, or {"error": ...}. Every
// failure maps to exactly one [Kind], and each Kind to one status code and
// message; see errors.go.
//
// Handlers hold no mutable state. The surrounding [Server] adds request ids,
// access logging, panic recovery and CORS, and shuts down gracefully when its
// context is cancelled.
package gateway
