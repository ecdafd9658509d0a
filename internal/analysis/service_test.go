package analysis

import (
	"bytes"
	"context"
	"errors"
	"image"
	"image/png"
	"os"
	"testing"

	"github.com/imagesleuth/imagesleuth/internal/detector"
	"github.com/imagesleuth/imagesleuth/internal/models"
	"github.com/imagesleuth/imagesleuth/internal/providers"
	"github.com/imagesleuth/imagesleuth/internal/spectral"
	"github.com/imagesleuth/imagesleuth/internal/storage"
)

type stubProvider struct {
	scores []models.LabelScore
	err    error
}

func (p *stubProvider) Classify(context.Context, providers.Config) ([]models.LabelScore, error) {
	return p.scores, p.err
}

func testImage(t *testing.T) []byte {
	t.Helper()
	img := image.NewGray(image.Rect(0, 0, 24, 18))
	for i := range img.Pix {
		img.Pix[i] = uint8(i * 7 % 256)
	}
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		t.Fatalf("Failed to encode test image: %v", err)
	}
	return buf.Bytes()
}

func newTestService(t *testing.T, provider providers.Provider) *Service {
	t.Helper()
	det := detector.NewWithProvider(provider, "test/model", "")
	return NewServiceWith(det, spectral.New(32), storage.New(), t.TempDir())
}

func TestAnalyze(t *testing.T) {
	provider := &stubProvider{scores: []models.LabelScore{
		{Label: "artificial", Score: 0.88},
		{Label: "human", Score: 0.12},
	}}
	service := newTestService(t, provider)

	report, err := service.Analyze(context.Background(), testImage(t), "sample.png")
	if err != nil {
		t.Fatalf("Analyze failed: %v", err)
	}

	if report.ID == "" {
		t.Error("Expected report ID")
	}
	if report.Width != 24 || report.Height != 18 {
		t.Errorf("Expected 24x18, got %dx%d", report.Width, report.Height)
	}
	if report.Detection == nil || report.Detection.Label != models.VerdictArtificial {
		t.Errorf("Unexpected detection: %+v", report.Detection)
	}
	if report.Spectrum == nil || report.Spectrum.Size != 32 {
		t.Errorf("Unexpected spectrum: %+v", report.Spectrum)
	}

	stored, exists := service.Store().Get(report.ID)
	if !exists {
		t.Fatal("Expected report to be retained")
	}
	if stored.ID != report.ID {
		t.Errorf("Stored report mismatch: %s vs %s", stored.ID, report.ID)
	}
}

func TestAnalyzeInvalidImage(t *testing.T) {
	service := newTestService(t, &stubProvider{})

	_, err := service.Analyze(context.Background(), []byte("not an image"), "x.png")
	if !errors.Is(err, models.ErrInvalidImage) {
		t.Errorf("Expected ErrInvalidImage, got %v", err)
	}
	if len(service.Store().GetAll()) != 0 {
		t.Error("Failed analysis must not be retained")
	}
}

func TestAnalyzeDetectorFailure(t *testing.T) {
	provider := &stubProvider{err: models.ErrModelUnavailable}
	service := newTestService(t, provider)

	_, err := service.Analyze(context.Background(), testImage(t), "x.png")
	if !errors.Is(err, models.ErrModelUnavailable) {
		t.Errorf("Expected ErrModelUnavailable, got %v", err)
	}
	if len(service.Store().GetAll()) != 0 {
		t.Error("Failed analysis must not be retained")
	}
}

func TestAnalyzeCleansUpSpool(t *testing.T) {
	provider := &stubProvider{scores: []models.LabelScore{{Label: "real", Score: 0.9}, {Label: "artificial", Score: 0.1}}}
	det := detector.NewWithProvider(provider, "test/model", "")
	uploadDir := t.TempDir()
	service := NewServiceWith(det, spectral.New(32), storage.New(), uploadDir)

	if _, err := service.Analyze(context.Background(), testImage(t), "sample.png"); err != nil {
		t.Fatalf("Analyze failed: %v", err)
	}

	entries, err := os.ReadDir(uploadDir)
	if err != nil {
		t.Fatalf("Failed to read upload dir: %v", err)
	}
	if len(entries) != 0 {
		t.Errorf("Expected empty upload dir after analysis, found %d entries", len(entries))
	}
}
