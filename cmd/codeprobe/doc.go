// Codeprobe is an HTTP gateway that asks an LLM to review one uploaded source
// file and returns its errors, code smells and potential bugs as JSON.
//
// Usage:
//
//	codeprobe serve                      # listen on :8000 for POST /analyze
//	codeprobe analyze main.py            # analyze a local file
//	codeprobe analyze - --format json    # analyze stdin, print the gateway body
//	codeprobe config init                # write a default config file
//	codeprobe models doctor              # check provider credentials
//
// Example request against a running server:
//
//	curl -F file=@test.py http://localhost:8000/analyze
package main
