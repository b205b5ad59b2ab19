// Package config loads and merges codeprobe configuration from multiple sources.
//
// Precedence (highest to lowest):
//  1. CLI flags
//  2. Environment variables (CODEPROBE_PROVIDER, CODEPROBE_ADDR, etc.)
//  3. A .env file in the working directory (never overrides the real environment)
//  4. Config file ($XDG_CONFIG_HOME/codeprobe/config.yaml or config.json)
//  5. Built-in defaults
//
// Use [Load] to obtain a merged [Config], [Save] to write one back, and
// [SetField] to update a single dotted key.
package config
