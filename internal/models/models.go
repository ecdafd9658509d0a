package models

import (
	"fmt"
	"strings"
	"time"
)

// Verdict is the detector's classification of an image.
type Verdict string

const (
	VerdictArtificial Verdict = "artificial"
	VerdictReal       Verdict = "real"
)

// LabelScore is one entry of the classifier's output distribution,
// using the model's own label vocabulary.
type LabelScore struct {
	Label string  `json:"label"`
	Score float64 `json:"score"`
}

// DetectionResult holds the outcome of a single classifier forward pass.
// Immutable once produced.
type DetectionResult struct {
	Label      Verdict      `json:"label"`
	Confidence float64      `json:"confidence"` // 0-100, winning class probability
	Model      string       `json:"model"`      // model identifier that produced the result
	Scores     []LabelScore `json:"scores,omitempty"`
}

// IsAI reports whether the detector classified the image as generated.
func (r *DetectionResult) IsAI() bool {
	return r.Label == VerdictArtificial
}

// Formatted returns a user-facing one-liner, e.g. "97.3% Artificial".
func (r *DetectionResult) Formatted() string {
	label := string(r.Label)
	if label != "" {
		label = strings.ToUpper(label[:1]) + label[1:]
	}
	return fmt.Sprintf("%.1f%% %s", r.Confidence, label)
}

// SpectrumStats carries the statistics computed over the magnitude
// spectrum outside the DC exclusion disk.
type SpectrumStats struct {
	Mean           float64 `json:"mean"`
	StdDev         float64 `json:"std_dev"`
	Max            float64 `json:"max"`
	AnomalyCount   int     `json:"anomaly_count"`   // pixels above mean + 3*stddev
	BrightFraction float64 `json:"bright_fraction"` // log-magnitude pixels above fixed threshold
	SymmetryScore  float64 `json:"symmetry_score"`  // rotational symmetry of the spectrum, 0-1
}

// SpectrumReport is the rendered log-magnitude spectrum plus the
// heuristic summary derived from it.
type SpectrumReport struct {
	PNG     []byte        `json:"-"`
	DataURI string        `json:"data_uri"`
	Size    int           `json:"size"` // rendered spectrum is Size x Size pixels
	Stats   SpectrumStats `json:"stats"`
	Summary string        `json:"summary"`
}

// AnalysisReport is one completed analysis request. Reports live only in
// the in-memory store; nothing outlives the process.
type AnalysisReport struct {
	ID        string           `json:"id"`
	Filename  string           `json:"filename"`
	Width     int              `json:"width"`
	Height    int              `json:"height"`
	Detection *DetectionResult `json:"detection"`
	Spectrum  *SpectrumReport  `json:"spectrum"`
	CreatedAt time.Time        `json:"created_at"`
}

// AnalyzeResponse is the JSON body returned by POST /analyze.
type AnalyzeResponse struct {
	Success       bool    `json:"success"`
	IsAI          bool    `json:"is_ai"`
	Confidence    float64 `json:"confidence"`
	Detection     string  `json:"detection,omitempty"` // e.g. "97.3% Artificial"
	SpectrumImage string  `json:"spectrum_image,omitempty"`
	Analysis      string  `json:"analysis,omitempty"`
	ReportID      string  `json:"report_id,omitempty"`
	Error         string  `json:"error,omitempty"`
}
