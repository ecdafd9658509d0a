package providers

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/imagesleuth/imagesleuth/internal/models"
)

// VerdictPrompt is the instruction sent to vision LLM providers that
// have no native image-classification head. The strict output contract
// keeps parsing deterministic.
const VerdictPrompt = `You are an AI-generated image detector.

Look at the attached image and decide whether it was produced by a
generative model (GAN, diffusion, or similar) or is a real photograph
or human-made image.

Respond with ONLY a JSON object, no prose, in exactly this form:
{"label": "artificial", "confidence": 87.5}

"label" must be "artificial" or "real". "confidence" is your certainty
in the chosen label as a percentage between 50 and 100.`

type verdictAnswer struct {
	Label      string  `json:"label"`
	Confidence float64 `json:"confidence"`
}

// ParseVerdictText parses a vision LLM's reply into a two-entry score
// distribution. It accepts the strict JSON contract, including replies
// wrapped in markdown fences, and falls back to keyword scanning for
// models that ignore the output format.
func ParseVerdictText(text string) ([]models.LabelScore, error) {
	cleaned := strings.TrimSpace(text)
	cleaned = strings.TrimPrefix(cleaned, "```json")
	cleaned = strings.TrimPrefix(cleaned, "```")
	cleaned = strings.TrimSuffix(cleaned, "```")
	cleaned = strings.TrimSpace(cleaned)

	// The model may prepend prose despite instructions; find the object.
	if idx := strings.Index(cleaned, "{"); idx >= 0 {
		if end := strings.LastIndex(cleaned, "}"); end > idx {
			var answer verdictAnswer
			if err := json.Unmarshal([]byte(cleaned[idx:end+1]), &answer); err == nil {
				return scoresFromAnswer(answer)
			}
		}
	}

	lower := strings.ToLower(cleaned)
	switch {
	case strings.Contains(lower, "artificial"), strings.Contains(lower, "ai-generated"), strings.Contains(lower, "generated"):
		return scoresFromAnswer(verdictAnswer{Label: "artificial", Confidence: 50})
	case strings.Contains(lower, "real"), strings.Contains(lower, "photograph"):
		return scoresFromAnswer(verdictAnswer{Label: "real", Confidence: 50})
	}

	return nil, fmt.Errorf("unparseable verdict: %q", text)
}

func scoresFromAnswer(answer verdictAnswer) ([]models.LabelScore, error) {
	label := strings.ToLower(strings.TrimSpace(answer.Label))
	if label != "artificial" && label != "real" {
		return nil, fmt.Errorf("unexpected verdict label: %q", answer.Label)
	}

	conf := answer.Confidence
	if conf < 0 || conf > 100 {
		return nil, fmt.Errorf("confidence out of range: %f", answer.Confidence)
	}
	if conf == 0 {
		conf = 50
	}

	other := "real"
	if label == "real" {
		other = "artificial"
	}

	return []models.LabelScore{
		{Label: label, Score: conf / 100},
		{Label: other, Score: 1 - conf/100},
	}, nil
}
