package gateway

import (
	"errors"
	"net/http"
)

// Kind classifies a failed /analyze request.
type Kind int

const (
	KindMissingFile Kind = iota + 1
	KindEmptyFilename
	KindFileRead
	KindAnalysis
)

type kindInfo struct {
	name    string
	status  int
	message string
	// detail appends the underlying error to message.
	detail bool
}

var kindTable = map[Kind]kindInfo{
	KindMissingFile:   {"MissingFileError", http.StatusBadRequest, "No file uploaded", false},
	KindEmptyFilename: {"EmptyFilenameError", http.StatusBadRequest, "Empty filename", false},
	KindFileRead:      {"FileReadError", http.StatusBadRequest, "Failed to read file", true},
	KindAnalysis:      {"AnalysisError", http.StatusInternalServerError, "Analysis failed", true},
}

func (k Kind) String() string {
	if info, ok := kindTable[k]; ok {
		return info.name
	}
	return "UnknownError"
}

// Error is a request failure together with the HTTP response it maps to.
type Error struct {
	Kind Kind
	Err  error
}

func newError(kind Kind, err error) *Error {
	return &Error{Kind: kind, Err: err}
}

// Error returns the client-facing message.
func (e *Error) Error() string {
	info, ok := kindTable[e.Kind]
	if !ok {
		info = kindTable[KindAnalysis]
	}
	if info.detail && e.Err != nil {
		return info.message + ": " + e.Err.Error()
	}
	return info.message
}

func (e *Error) Unwrap() error { return e.Err }

// Status returns the HTTP status code for the error.
func (e *Error) Status() int {
	if info, ok := kindTable[e.Kind]; ok {
		return info.status
	}
	return http.StatusInternalServerError
}

// asError maps any error to a gateway Error. Unclassified errors are treated as
// analysis failures.
func asError(err error) *Error {
	var ge *Error
	if errors.As(err, &ge) {
		return ge
	}
	return newError(KindAnalysis, err)
}
