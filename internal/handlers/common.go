package handlers

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/imagesleuth/imagesleuth/internal/analysis"
	"github.com/imagesleuth/imagesleuth/internal/config"
	"github.com/imagesleuth/imagesleuth/internal/models"
)

type Handler struct {
	service   *analysis.Service
	maxUpload int64
}

func New(cfg *config.Config) (*Handler, error) {
	service, err := analysis.NewService(cfg)
	if err != nil {
		return nil, err
	}
	return &Handler{
		service:   service,
		maxUpload: cfg.MaxUploadBytes(),
	}, nil
}

// NewWithService wires an explicit pipeline, mainly for tests.
func NewWithService(service *analysis.Service, maxUpload int64) *Handler {
	return &Handler{service: service, maxUpload: maxUpload}
}

// Service exposes the pipeline so serve can warm the model at startup.
func (h *Handler) Service() *analysis.Service {
	return h.service
}

// Response helpers
func (h *Handler) writeJSON(w http.ResponseWriter, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(data); err != nil {
		slog.Error("Unable to encode JSON response", "err", err)
		http.Error(w, "Internal server error", http.StatusInternalServerError)
	}
}

// writeAnalyzeError responds with the failure variant of the analyze
// envelope, mapping the error taxonomy onto a status code.
func (h *Handler) writeAnalyzeError(w http.ResponseWriter, err error) {
	code := statusFor(err)
	slog.Error("Analysis request failed", "status", code, "err", err)

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	resp := models.AnalyzeResponse{Success: false, Error: err.Error()}
	if encodeErr := json.NewEncoder(w).Encode(resp); encodeErr != nil {
		slog.Error("Unable to encode error response", "err", encodeErr)
	}
}

func (h *Handler) writeError(w http.ResponseWriter, message string, code int) {
	slog.Error(message)
	http.Error(w, message, code)
}

func statusFor(err error) int {
	switch {
	case errors.Is(err, models.ErrInvalidImage):
		return http.StatusBadRequest
	case errors.Is(err, models.ErrUploadTooLarge):
		return http.StatusRequestEntityTooLarge
	case errors.Is(err, models.ErrModelUnavailable):
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}
