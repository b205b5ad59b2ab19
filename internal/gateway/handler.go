package gateway

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/dshills/codeprobe/internal/analysis"
)

// Analyzer runs one analysis of a decoded source file.
type Analyzer interface {
	Analyze(ctx context.Context, source string) (analysis.Result, error)
}

// Handlers serves the gateway routes. It is stateless apart from its
// read-only dependencies.
type Handlers struct {
	analyzer       Analyzer
	maxUploadBytes int64
}

// NewHandlers creates Handlers backed by analyzer. A positive maxUploadBytes
// caps the request body size.
func NewHandlers(analyzer Analyzer, maxUploadBytes int64) *Handlers {
	return &Handlers{analyzer: analyzer, maxUploadBytes: maxUploadBytes}
}

type healthResponse struct {
	Status string `json:"status"`
}

type errorResponse struct {
	Error string `json:"error"`
}

func (h *Handlers) Health(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, healthResponse{Status: "ok"})
}

// Analyze handles POST /analyze.
func (h *Handlers) Analyze(w http.ResponseWriter, r *http.Request) {
	if h.maxUploadBytes > 0 {
		r.Body = http.MaxBytesReader(w, r.Body, h.maxUploadBytes)
	}

	result, err := h.analyze(r)
	if err != nil {
		respondError(w, err)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	_ = analysis.WriteBody(w, result)
}

func (h *Handlers) analyze(r *http.Request) (analysis.Result, error) {
	upload, err := readUpload(r, FileField)
	if err != nil {
		return analysis.Result{}, err
	}

	source, err := analysis.DecodeSource(upload.Data)
	if err != nil {
		return analysis.Result{}, newError(KindFileRead, err)
	}

	result, err := h.analyzer.Analyze(r.Context(), source)
	if err != nil {
		return analysis.Result{}, newError(KindAnalysis, err)
	}
	return result, nil
}

func respondJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	enc := json.NewEncoder(w)
	enc.SetEscapeHTML(false)
	_ = enc.Encode(payload)
}

func respondError(w http.ResponseWriter, err error) {
	ge := asError(err)
	respondJSON(w, ge.Status(), errorResponse{Error: ge.Error()})
}
