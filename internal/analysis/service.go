// Package analysis composes the detector and the spectral analyzer into
// the single pipeline behind every front-end: one image in, one combined
// report out.
package analysis

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"

	"github.com/imagesleuth/imagesleuth/internal/config"
	"github.com/imagesleuth/imagesleuth/internal/detector"
	"github.com/imagesleuth/imagesleuth/internal/imageio"
	"github.com/imagesleuth/imagesleuth/internal/models"
	"github.com/imagesleuth/imagesleuth/internal/spectral"
	"github.com/imagesleuth/imagesleuth/internal/storage"
	"github.com/imagesleuth/imagesleuth/internal/utils"
)

// Service runs the full analysis pipeline and records completed reports.
type Service struct {
	detector  *detector.Detector
	analyzer  *spectral.Analyzer
	store     *storage.ReportStore
	uploadDir string
}

// NewService builds the pipeline from configuration.
func NewService(cfg *config.Config) (*Service, error) {
	det, err := detector.New(cfg)
	if err != nil {
		return nil, err
	}
	return &Service{
		detector:  det,
		analyzer:  spectral.New(spectral.DefaultSize),
		store:     storage.New(),
		uploadDir: cfg.UploadDir,
	}, nil
}

// NewServiceWith wires explicit collaborators, mainly for tests.
func NewServiceWith(det *detector.Detector, analyzer *spectral.Analyzer, store *storage.ReportStore, uploadDir string) *Service {
	return &Service{detector: det, analyzer: analyzer, store: store, uploadDir: uploadDir}
}

// Store exposes the report store for the read-only report endpoints.
func (s *Service) Store() *storage.ReportStore {
	return s.store
}

// Warm eagerly touches the detection model so the first request does
// not pay the cold-load cost.
func (s *Service) Warm(ctx context.Context) {
	s.detector.Warm(ctx)
}

// Analyze runs detection and spectral analysis on one uploaded image.
// Either both stages succeed and the combined report is returned and
// retained, or the request fails as a whole. The upload is spooled to a
// content-hash temp file for the duration of the request and removed
// afterwards.
func (s *Service) Analyze(ctx context.Context, imageBytes []byte, filename string) (*models.AnalysisReport, error) {
	width, height, err := imageio.Dimensions(imageBytes)
	if err != nil {
		return nil, err
	}

	tempPath, err := s.spoolUpload(imageBytes, filename)
	if err != nil {
		return nil, err
	}
	defer func() {
		if err := os.Remove(tempPath); err != nil {
			slog.Warn("Failed to remove temp upload", "path", tempPath, "err", err)
		}
	}()

	started := time.Now()

	detection, err := s.detector.Detect(ctx, imageBytes)
	if err != nil {
		return nil, fmt.Errorf("detection failed: %w", err)
	}

	spectrum, err := s.analyzer.Analyze(imageBytes)
	if err != nil {
		return nil, fmt.Errorf("spectral analysis failed: %w", err)
	}

	report := &models.AnalysisReport{
		ID:        uuid.NewString(),
		Filename:  filename,
		Width:     width,
		Height:    height,
		Detection: detection,
		Spectrum:  spectrum,
		CreatedAt: time.Now(),
	}
	s.store.Set(report.ID, report)

	slog.Info("Analysis complete",
		"report_id", report.ID,
		"label", detection.Label,
		"confidence", detection.Confidence,
		"anomalies", spectrum.Stats.AnomalyCount,
		"duration", time.Since(started))

	return report, nil
}

// spoolUpload writes the upload to {uploadDir}/{md5}{ext}. The content
// hash keeps concurrent uploads of different images from colliding.
func (s *Service) spoolUpload(imageBytes []byte, filename string) (string, error) {
	if err := os.MkdirAll(s.uploadDir, 0755); err != nil {
		return "", fmt.Errorf("%w: creating upload dir: %v", models.ErrTransientIO, err)
	}

	ext := filepath.Ext(filename)
	if ext == "" {
		ext = ".img"
	}
	tempPath := filepath.Join(s.uploadDir, utils.CalculateDataMD5(imageBytes)+ext)

	if err := os.WriteFile(tempPath, imageBytes, 0644); err != nil {
		return "", fmt.Errorf("%w: writing temp upload: %v", models.ErrTransientIO, err)
	}
	return tempPath, nil
}
