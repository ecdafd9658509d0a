package ollama

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"

	"github.com/imagesleuth/imagesleuth/internal/models"
	"github.com/imagesleuth/imagesleuth/internal/providers"
)

// Ollama is a provider that classifies images through a locally hosted
// vision model's generate endpoint.
type Ollama struct{}

// New returns a new Ollama provider
func New() *Ollama {
	return &Ollama{}
}

// Classify sends the image and the verdict prompt to Ollama and parses
// the constrained reply into a score distribution.
func (o *Ollama) Classify(ctx context.Context, config providers.Config) ([]models.LabelScore, error) {
	ollamaURL := os.Getenv("OLLAMA_URL")
	if ollamaURL == "" {
		ollamaURL = "http://localhost:11434"
	}
	url := ollamaURL + "/api/generate"

	requestBody, err := json.Marshal(map[string]interface{}{
		"model":  config.Model,
		"prompt": providers.VerdictPrompt,
		"images": []string{base64.StdEncoding.EncodeToString(config.Image)},
		"stream": false,
		"options": map[string]interface{}{
			"temperature": config.Temperature,
		},
	})
	if err != nil {
		return nil, fmt.Errorf("failed to marshal request body: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, "POST", url, bytes.NewBuffer(requestBody))
	if err != nil {
		return nil, fmt.Errorf("failed to create new request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	client := &http.Client{}
	resp, err := client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", models.ErrModelUnavailable, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		if resp.StatusCode == http.StatusNotFound {
			return nil, fmt.Errorf("%w: model %s not pulled: %s", models.ErrModelUnavailable, config.Model, string(body))
		}
		return nil, fmt.Errorf("received non-200 status code: %d - %s", resp.StatusCode, string(body))
	}

	var response struct {
		Response string `json:"response"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&response); err != nil {
		return nil, fmt.Errorf("failed to decode response body: %w", err)
	}

	return providers.ParseVerdictText(response.Response)
}
