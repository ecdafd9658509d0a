package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/imagesleuth/imagesleuth/internal/models"
)

func (h *Handler) HandleAnalyze(w http.ResponseWriter, r *http.Request) {
	if r.Method != "POST" {
		h.writeError(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	// Check if this is a JSON request with an image URL
	contentType := r.Header.Get("Content-Type")
	if strings.Contains(contentType, "application/json") {
		h.handleURLAnalyze(w, r)
		return
	}

	h.handleFileAnalyze(w, r)
}

func (h *Handler) handleFileAnalyze(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, h.maxUpload+1024)

	file, header, err := r.FormFile("image")
	if err != nil {
		file, header, err = r.FormFile("file")
	}
	if err != nil {
		// A body past the MaxBytesReader cap fails the multipart parse
		// itself; that is a size rejection, not a malformed form.
		var maxErr *http.MaxBytesError
		if errors.As(err, &maxErr) {
			h.writeAnalyzeError(w, fmt.Errorf("%w: max %d bytes", models.ErrUploadTooLarge, h.maxUpload))
			return
		}
		h.writeAnalyzeError(w, fmt.Errorf("%w: no image field in form", models.ErrInvalidImage))
		return
	}
	defer file.Close()

	imageBytes, err := io.ReadAll(io.LimitReader(file, h.maxUpload+1))
	if err != nil {
		h.writeAnalyzeError(w, fmt.Errorf("%w: reading upload: %v", models.ErrTransientIO, err))
		return
	}
	if int64(len(imageBytes)) > h.maxUpload {
		h.writeAnalyzeError(w, fmt.Errorf("%w: max %d bytes", models.ErrUploadTooLarge, h.maxUpload))
		return
	}

	h.runAnalysis(w, r, imageBytes, header.Filename)
}

func (h *Handler) handleURLAnalyze(w http.ResponseWriter, r *http.Request) {
	var request struct {
		ImageURL string `json:"image_url"`
	}
	if err := json.NewDecoder(r.Body).Decode(&request); err != nil {
		h.writeError(w, "Invalid JSON: "+err.Error(), http.StatusBadRequest)
		return
	}
	if request.ImageURL == "" {
		h.writeError(w, "image_url is required", http.StatusBadRequest)
		return
	}

	imageBytes, err := h.downloadImage(r.Context(), request.ImageURL)
	if err != nil {
		h.writeAnalyzeError(w, err)
		return
	}

	parts := strings.Split(request.ImageURL, "/")
	filename := parts[len(parts)-1]
	if filename == "" {
		filename = "image.jpg"
	}

	h.runAnalysis(w, r, imageBytes, filename)
}

func (h *Handler) runAnalysis(w http.ResponseWriter, r *http.Request, imageBytes []byte, filename string) {
	report, err := h.service.Analyze(r.Context(), imageBytes, filename)
	if err != nil {
		h.writeAnalyzeError(w, err)
		return
	}

	h.writeJSON(w, models.AnalyzeResponse{
		Success:       true,
		IsAI:          report.Detection.IsAI(),
		Confidence:    report.Detection.Confidence,
		Detection:     report.Detection.Formatted(),
		SpectrumImage: report.Spectrum.DataURI,
		Analysis:      report.Spectrum.Summary,
		ReportID:      report.ID,
	})
}

func (h *Handler) downloadImage(ctx context.Context, imageURL string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, "GET", imageURL, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create download request: %w", err)
	}

	client := &http.Client{Timeout: 60 * time.Second}
	resp, err := client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to download image: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("failed to download image: HTTP %d", resp.StatusCode)
	}

	imageBytes, err := io.ReadAll(io.LimitReader(resp.Body, h.maxUpload+1))
	if err != nil {
		return nil, fmt.Errorf("failed to read image data: %w", err)
	}
	if int64(len(imageBytes)) > h.maxUpload {
		return nil, fmt.Errorf("%w: remote image exceeds %d bytes", models.ErrUploadTooLarge, h.maxUpload)
	}

	return imageBytes, nil
}
