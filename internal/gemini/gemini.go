package gemini

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/google/generative-ai-go/genai"
	"github.com/imagesleuth/imagesleuth/internal/models"
	"github.com/imagesleuth/imagesleuth/internal/providers"
	"google.golang.org/api/option"
)

// Gemini is a provider that classifies images through Google Gemini.
type Gemini struct{}

// New returns a new Gemini provider
func New() *Gemini {
	return &Gemini{}
}

// Classify sends the image and the verdict prompt to Gemini and parses
// the constrained reply into a score distribution.
func (g *Gemini) Classify(ctx context.Context, config providers.Config) ([]models.LabelScore, error) {
	apiKey := os.Getenv("GEMINI_API_KEY")
	if apiKey == "" {
		return nil, fmt.Errorf("%w: GEMINI_API_KEY environment variable not set", models.ErrModelUnavailable)
	}

	client, err := genai.NewClient(ctx, option.WithAPIKey(apiKey))
	if err != nil {
		return nil, fmt.Errorf("%w: failed to create gemini client: %v", models.ErrModelUnavailable, err)
	}
	defer client.Close()

	model := client.GenerativeModel(config.Model)
	model.SetTemperature(float32(config.Temperature))

	format := strings.TrimPrefix(config.MIMEType, "image/")
	resp, err := model.GenerateContent(ctx,
		genai.ImageData(format, config.Image),
		genai.Text(providers.VerdictPrompt),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to generate content: %w", err)
	}

	if len(resp.Candidates) == 0 {
		return nil, fmt.Errorf("no candidates returned from Gemini")
	}

	candidate := resp.Candidates[0]
	if candidate.Content == nil || len(candidate.Content.Parts) == 0 {
		return nil, fmt.Errorf("empty content returned from Gemini")
	}

	txt, ok := candidate.Content.Parts[0].(genai.Text)
	if !ok {
		return nil, fmt.Errorf("unexpected response format from Gemini")
	}

	return providers.ParseVerdictText(string(txt))
}
