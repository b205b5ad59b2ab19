// Package analysis defines the code-analysis contract shared by the gateway,
// the CLI and the LLM providers.
//
// [Result] and [Issue] are the only shapes that cross the boundary. The same
// contract is published to providers as a JSON Schema ([Schema]) and enforced
// on the way back by a strict decoder ([ParseResult]): unknown keys, missing
// arrays, and non-integral line numbers are rejected rather than guessed at.
//
// [Analyzer] forwards a whole source file to a [providers.Reviewer] as a
// single request with the fixed [Instructions]. It does not retry, chunk, or
// cache; each call either yields a complete Result or an error.
package analysis
