package providers

import (
	"context"

	"github.com/imagesleuth/imagesleuth/internal/models"
)

// Config represents one classification request to an inference provider.
type Config struct {
	Model       string
	Image       []byte
	MIMEType    string
	Temperature float64
}

// Provider defines the interface for a pretrained image classifier
// reached over an inference API. Implementations are stateless; the same
// provider value may serve concurrent requests.
type Provider interface {
	Classify(ctx context.Context, config Config) ([]models.LabelScore, error)
}
