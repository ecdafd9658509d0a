package detector

import (
	"context"
	"errors"
	"fmt"
	"sync/atomic"
	"testing"

	"github.com/imagesleuth/imagesleuth/internal/models"
	"github.com/imagesleuth/imagesleuth/internal/providers"
)

// fakeProvider returns canned scores per model, or an error.
type fakeProvider struct {
	scores map[string][]models.LabelScore
	errs   map[string]error
	calls  atomic.Int64
}

func (f *fakeProvider) Classify(_ context.Context, config providers.Config) ([]models.LabelScore, error) {
	f.calls.Add(1)
	if err, ok := f.errs[config.Model]; ok {
		return nil, err
	}
	if scores, ok := f.scores[config.Model]; ok {
		return scores, nil
	}
	return nil, fmt.Errorf("no stub for model %s", config.Model)
}

func TestMapScores(t *testing.T) {
	tests := []struct {
		name          string
		scores        []models.LabelScore
		expectedLabel models.Verdict
		expectedConf  float64
	}{
		{
			name:          "artificial keyword",
			scores:        []models.LabelScore{{Label: "artificial", Score: 0.97}, {Label: "human", Score: 0.03}},
			expectedLabel: models.VerdictArtificial,
			expectedConf:  97,
		},
		{
			name:          "ai_generated style label",
			scores:        []models.LabelScore{{Label: "ai_generated", Score: 0.81}, {Label: "real", Score: 0.19}},
			expectedLabel: models.VerdictArtificial,
			expectedConf:  81,
		},
		{
			name:          "real photo label",
			scores:        []models.LabelScore{{Label: "photo", Score: 0.88}, {Label: "fake", Score: 0.12}},
			expectedLabel: models.VerdictReal,
			expectedConf:  88,
		},
		{
			name:          "human label maps to real",
			scores:        []models.LabelScore{{Label: "human-made", Score: 0.66}},
			expectedLabel: models.VerdictReal,
			expectedConf:  66,
		},
		{
			name: "unknown top label falls through to AI-flavored runner-up",
			scores: []models.LabelScore{
				{Label: "class_0", Score: 0.55},
				{Label: "stable_diffusion", Score: 0.45},
			},
			expectedLabel: models.VerdictArtificial,
			expectedConf:  45,
		},
		{
			name:          "unknown negated label maps to artificial",
			scores:        []models.LabelScore{{Label: "not_a_camera_shot", Score: 0.7}},
			expectedLabel: models.VerdictArtificial,
			expectedConf:  70,
		},
		{
			name:          "unknown label defaults to real",
			scores:        []models.LabelScore{{Label: "class_1", Score: 0.52}},
			expectedLabel: models.VerdictReal,
			expectedConf:  52,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := mapScores(tt.scores)
			if result.Label != tt.expectedLabel {
				t.Errorf("Expected label %s, got %s", tt.expectedLabel, result.Label)
			}
			if result.Confidence != tt.expectedConf {
				t.Errorf("Expected confidence %.1f, got %.1f", tt.expectedConf, result.Confidence)
			}
			if result.Confidence < 0 || result.Confidence > 100 {
				t.Errorf("Confidence %.1f outside [0,100]", result.Confidence)
			}
		})
	}
}

func TestDetect(t *testing.T) {
	provider := &fakeProvider{
		scores: map[string][]models.LabelScore{
			"primary": {{Label: "artificial", Score: 0.93}, {Label: "real", Score: 0.07}},
		},
	}
	d := NewWithProvider(provider, "primary", "fallback")

	result, err := d.Detect(context.Background(), probeImage())
	if err != nil {
		t.Fatalf("Detect failed: %v", err)
	}
	if result.Label != models.VerdictArtificial {
		t.Errorf("Expected artificial, got %s", result.Label)
	}
	if result.Confidence != 93 {
		t.Errorf("Expected confidence 93, got %.1f", result.Confidence)
	}
	if result.Model != "primary" {
		t.Errorf("Expected model primary, got %s", result.Model)
	}
	if !result.IsAI() {
		t.Error("Expected IsAI true")
	}
}

func TestDetectInvalidImage(t *testing.T) {
	provider := &fakeProvider{}
	d := NewWithProvider(provider, "primary", "")

	for _, input := range [][]byte{nil, {}, []byte("plain text file")} {
		_, err := d.Detect(context.Background(), input)
		if !errors.Is(err, models.ErrInvalidImage) {
			t.Errorf("Expected ErrInvalidImage for %q, got %v", input, err)
		}
	}
	if n := provider.calls.Load(); n != 0 {
		t.Errorf("Provider must not be called for invalid input, got %d calls", n)
	}
}

func TestDetectFallback(t *testing.T) {
	provider := &fakeProvider{
		errs: map[string]error{
			"primary": fmt.Errorf("%w: model is loading", models.ErrModelUnavailable),
		},
		scores: map[string][]models.LabelScore{
			"fallback": {{Label: "real", Score: 0.78}, {Label: "fake", Score: 0.22}},
		},
	}
	d := NewWithProvider(provider, "primary", "fallback")

	result, err := d.Detect(context.Background(), probeImage())
	if err != nil {
		t.Fatalf("Detect failed: %v", err)
	}
	if result.Model != "fallback" {
		t.Errorf("Expected fallback model, got %s", result.Model)
	}
	if result.Label != models.VerdictReal {
		t.Errorf("Expected real, got %s", result.Label)
	}
	if provider.calls.Load() != 2 {
		t.Errorf("Expected 2 provider calls (primary + fallback), got %d", provider.calls.Load())
	}

	// The fallback switch is sticky: the next request skips the primary.
	if _, err := d.Detect(context.Background(), probeImage()); err != nil {
		t.Fatalf("Second detect failed: %v", err)
	}
	if provider.calls.Load() != 3 {
		t.Errorf("Expected 3 total calls after sticky fallback, got %d", provider.calls.Load())
	}
	if d.Model() != "fallback" {
		t.Errorf("Expected active model fallback, got %s", d.Model())
	}
}

func TestDetectBothModelsUnavailable(t *testing.T) {
	provider := &fakeProvider{
		errs: map[string]error{
			"primary":  fmt.Errorf("%w: down", models.ErrModelUnavailable),
			"fallback": fmt.Errorf("%w: also down", models.ErrModelUnavailable),
		},
	}
	d := NewWithProvider(provider, "primary", "fallback")

	_, err := d.Detect(context.Background(), probeImage())
	if !errors.Is(err, models.ErrModelUnavailable) {
		t.Fatalf("Expected ErrModelUnavailable, got %v", err)
	}
	if provider.calls.Load() != 2 {
		t.Errorf("Expected exactly 2 attempts, got %d", provider.calls.Load())
	}
	if d.Model() != "primary" {
		t.Errorf("Failed fallback must not become sticky, active model is %s", d.Model())
	}
}

func TestProviderFor(t *testing.T) {
	for _, name := range []string{"huggingface", "ollama", "openai", "gemini"} {
		if _, err := providerFor(name); err != nil {
			t.Errorf("Expected provider %s to resolve, got %v", name, err)
		}
	}
	if _, err := providerFor("mystery"); err == nil {
		t.Error("Expected error for unknown provider")
	}
}
