package huggingface

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
	"time"

	"github.com/imagesleuth/imagesleuth/internal/models"
	"github.com/imagesleuth/imagesleuth/internal/providers"
)

// HuggingFace is a provider backed by the Hugging Face serverless
// inference API. Image-classification models take raw image bytes and
// return a label/score distribution, which maps directly onto the
// detector's contract.
type HuggingFace struct{}

// New returns a new HuggingFace provider
func New() *HuggingFace {
	return &HuggingFace{}
}

// Classify runs a single forward pass through the named model.
func (h *HuggingFace) Classify(ctx context.Context, config providers.Config) ([]models.LabelScore, error) {
	baseURL := os.Getenv("HF_API_URL")
	if baseURL == "" {
		baseURL = "https://api-inference.huggingface.co"
	}
	url := baseURL + "/models/" + config.Model

	req, err := http.NewRequestWithContext(ctx, "POST", url, bytes.NewReader(config.Image))
	if err != nil {
		return nil, fmt.Errorf("failed to create new request: %w", err)
	}
	req.Header.Set("Content-Type", config.MIMEType)
	if token := os.Getenv("HF_API_TOKEN"); token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	client := &http.Client{Timeout: 60 * time.Second}
	resp, err := client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", models.ErrModelUnavailable, err)
	}
	defer resp.Body.Close()

	switch resp.StatusCode {
	case http.StatusOK:
	case http.StatusServiceUnavailable:
		// The serverless API returns 503 while weights are cold-loading.
		body, _ := io.ReadAll(resp.Body)
		return nil, fmt.Errorf("%w: model %s is loading: %s", models.ErrModelUnavailable, config.Model, string(body))
	case http.StatusNotFound:
		return nil, fmt.Errorf("%w: model %s not found", models.ErrModelUnavailable, config.Model)
	default:
		body, _ := io.ReadAll(resp.Body)
		return nil, fmt.Errorf("received non-200 status code: %d - %s", resp.StatusCode, string(body))
	}

	var scores []models.LabelScore
	if err := json.NewDecoder(resp.Body).Decode(&scores); err != nil {
		return nil, fmt.Errorf("failed to decode response body: %w", err)
	}
	if len(scores) == 0 {
		return nil, fmt.Errorf("empty prediction from model %s", config.Model)
	}

	return scores, nil
}
