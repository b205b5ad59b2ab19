// Package providers implements the Reviewer interface for each supported LLM
// provider.
//
// Supported providers: OpenAI (openai-go), Anthropic (anthropic-sdk-go),
// Google Gemini (genai), Ollama for local models, and LM Studio through its
// OpenAI-compatible endpoint.
//
// Every adapter makes exactly one API call per Review: SDK-level retries are
// disabled and no client timeout is set, so the caller's context alone bounds
// the call. When the request carries a [Schema], OpenAI, Gemini and Ollama
// enforce it natively; Anthropic receives it in the system prompt.
//
// Use [New] to obtain a Reviewer by provider name and model string, and
// [Unavailable] to stand in for one whose credentials are missing.
package providers
