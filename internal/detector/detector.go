package detector

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"sync"
	"sync/atomic"

	"github.com/imagesleuth/imagesleuth/internal/config"
	"github.com/imagesleuth/imagesleuth/internal/gemini"
	"github.com/imagesleuth/imagesleuth/internal/huggingface"
	"github.com/imagesleuth/imagesleuth/internal/imageio"
	"github.com/imagesleuth/imagesleuth/internal/models"
	"github.com/imagesleuth/imagesleuth/internal/ollama"
	"github.com/imagesleuth/imagesleuth/internal/openai"
	"github.com/imagesleuth/imagesleuth/internal/providers"
)

// Keyword tables for mapping a model's own label vocabulary onto the
// artificial/real verdict. Different detection models use different
// label names ("fake", "ai_generated", "human", ...).
var (
	aiKeywords   = []string{"artificial", "fake", "ai", "generated", "synthetic", "diffusion", "gan", "stable"}
	realKeywords = []string{"real", "natural", "photo", "authentic", "human"}
)

// Detector wraps a pretrained image classifier reached through a
// provider. The provider holds no state, so one Detector serves
// concurrent requests without locking; the only mutable state is the
// sticky fallback switch, flipped at most once.
type Detector struct {
	provider      providers.Provider
	model         string
	fallbackModel string

	warmOnce    sync.Once
	useFallback atomic.Bool
}

// New builds a Detector from configuration, selecting the provider by
// name.
func New(cfg *config.Config) (*Detector, error) {
	provider, err := providerFor(cfg.Provider)
	if err != nil {
		return nil, err
	}
	return &Detector{
		provider:      provider,
		model:         cfg.Model,
		fallbackModel: cfg.FallbackModel,
	}, nil
}

// NewWithProvider builds a Detector around an explicit provider.
func NewWithProvider(provider providers.Provider, model, fallbackModel string) *Detector {
	return &Detector{
		provider:      provider,
		model:         model,
		fallbackModel: fallbackModel,
	}
}

func providerFor(name string) (providers.Provider, error) {
	switch name {
	case "huggingface":
		return huggingface.New(), nil
	case "ollama":
		return ollama.New(), nil
	case "openai":
		return openai.New(), nil
	case "gemini":
		return gemini.New(), nil
	default:
		return nil, fmt.Errorf("unsupported detector provider: %s", name)
	}
}

// Model returns the identifier currently used for inference.
func (d *Detector) Model() string {
	if d.useFallback.Load() {
		return d.fallbackModel
	}
	return d.model
}

// Warm touches the model once so the first user request does not pay
// the cold-load cost. Failures are logged and left for Detect to
// handle; warming is best-effort.
func (d *Detector) Warm(ctx context.Context) {
	d.warmOnce.Do(func() {
		slog.Info("Warming detection model", "model", d.model)
		probe := probeImage()
		if _, err := d.Detect(ctx, probe); err != nil {
			slog.Warn("Model warm-up failed, will retry lazily", "model", d.model, "err", err)
		}
	})
}

// Detect classifies raw image bytes as artificial or real. Undecodable
// input fails with ErrInvalidImage; an unreachable primary model is
// retried once against the fallback identifier before failing with
// ErrModelUnavailable.
func (d *Detector) Detect(ctx context.Context, imageBytes []byte) (*models.DetectionResult, error) {
	_, mime, err := imageio.Decode(imageBytes)
	if err != nil {
		return nil, err
	}

	model := d.Model()
	scores, err := d.classify(ctx, model, mime, imageBytes)
	if err != nil && errors.Is(err, models.ErrModelUnavailable) && !d.useFallback.Load() && d.fallbackModel != "" {
		slog.Warn("Primary model unavailable, trying fallback", "model", model, "fallback", d.fallbackModel, "err", err)
		scores, err = d.classify(ctx, d.fallbackModel, mime, imageBytes)
		if err == nil {
			d.useFallback.Store(true)
			model = d.fallbackModel
		}
	}
	if err != nil {
		return nil, err
	}

	result := mapScores(scores)
	result.Model = model
	slog.Info("Detection complete", "model", model, "label", result.Label, "confidence", result.Confidence)
	return result, nil
}

func (d *Detector) classify(ctx context.Context, model, mime string, imageBytes []byte) ([]models.LabelScore, error) {
	return d.provider.Classify(ctx, providers.Config{
		Model:    model,
		Image:    imageBytes,
		MIMEType: mime,
	})
}

// mapScores turns the model's label distribution into a verdict. The
// top label is matched against the keyword tables; when it matches
// neither, the remaining predictions are consulted for an AI-flavored
// label before falling back to the top label's polarity.
func mapScores(scores []models.LabelScore) *models.DetectionResult {
	top := scores[0]
	labelText := strings.ToLower(top.Label)

	isAI := containsAny(labelText, aiKeywords)
	isReal := containsAny(labelText, realKeywords)

	if !isAI && !isReal && len(scores) > 1 {
		for _, s := range scores[1:] {
			if containsAny(strings.ToLower(s.Label), aiKeywords) {
				top = s
				isAI = true
				break
			}
		}
	}

	var label models.Verdict
	switch {
	case isAI:
		label = models.VerdictArtificial
	case isReal:
		label = models.VerdictReal
	case strings.Contains(labelText, "not"):
		label = models.VerdictArtificial
	default:
		label = models.VerdictReal
	}

	return &models.DetectionResult{
		Label:      label,
		Confidence: top.Score * 100,
		Scores:     scores,
	}
}

func containsAny(s string, keywords []string) bool {
	for _, k := range keywords {
		if strings.Contains(s, k) {
			return true
		}
	}
	return false
}
