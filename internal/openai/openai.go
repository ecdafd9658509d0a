package openai

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

// OpenAI is a provider that classifies images through the chat
// completions API with an inline image part.
type OpenAI struct{}

// New returns a new OpenAI provider
func New() *OpenAI {
	return &OpenAI{}
}

// Classify sends the image and the verdict prompt to OpenAI and parses
// the constrained reply into a score distribution.
func (o *OpenAI) Classify(ctx context.Context, config providers.Config) ([]models.LabelScore, error) {
	apiKey := os.Getenv("OPENAI_API_KEY")
	if apiKey == "" {
		return nil, fmt.Errorf("%w: OPENAI_API_KEY environment variable not set", models.ErrModelUnavailable)
	}

	url := "https://api.openai.com/v1/chat/completions"
	dataURI := fmt.Sprintf("data:%s;base64,%s", config.MIMEType, base64.StdEncoding.EncodeToString(config.Image))

	requestBody, err := json.Marshal(map[string]interface{}{
		"model": config.Model,
		"messages": []map[string]interface{}{
			{
				"role": "user",
				"content": []map[string]interface{}{
					{"type": "text", "text": providers.VerdictPrompt},
					{"type": "image_url", "image_url": map[string]string{"url": dataURI}},
				},
			},
		},
		"temperature": config.Temperature,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to marshal request body: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, "POST", url, bytes.NewBuffer(requestBody))
	if err != nil {
		return nil, fmt.Errorf("failed to create new request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+apiKey)

	client := &http.Client{}
	resp, err := client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", models.ErrModelUnavailable, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		return nil, fmt.Errorf("received non-200 status code: %d - %s", resp.StatusCode, string(body))
	}

	var response struct {
		Choices []struct {
			Message struct {
				Content string `json:"content"`
			} `json:"message"`
		} `json:"choices"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&response); err != nil {
		return nil, fmt.Errorf("failed to decode response body: %w", err)
	}

	if len(response.Choices) == 0 {
		return nil, fmt.Errorf("no choices returned from OpenAI")
	}

	return providers.ParseVerdictText(response.Choices[0].Message.Content)
}
