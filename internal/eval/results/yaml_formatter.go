package results

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/imagesleuth/imagesleuth/internal/eval/metrics"
	"gopkg.in/yaml.v3"
)

// EvalConfig represents the configuration section of the eval YAML
type EvalConfig struct {
	Provider    string `yaml:"provider"`
	Model       string `yaml:"model"`
	DatasetPath string `yaml:"datasetpath"`
	SampleSize  int    `yaml:"samplesize"`
	Timestamp   string `yaml:"timestamp"`
}

// EvalResult represents a single benchmark result
type EvalResult struct {
	Identifier     string  `yaml:"identifier"`
	Expected       string  `yaml:"expected"`
	Predicted      string  `yaml:"predicted"`
	Confidence     float64 `yaml:"confidence"`
	Generator      string  `yaml:"generator,omitempty"`
	Correct        bool    `yaml:"correct"`
	ProcessingMs   int64   `yaml:"processingms"`
	Error          string  `yaml:"error,omitempty"`
}

// EvalSummary represents the aggregate section of the eval YAML
type EvalSummary struct {
	TotalRecords            int     `yaml:"totalrecords"`
	SuccessCount            int     `yaml:"successcount"`
	FailureCount            int     `yaml:"failurecount"`
	Accuracy                float64 `yaml:"accuracy"`
	ArtificialPrecision     float64 `yaml:"artificialprecision"`
	ArtificialRecall        float64 `yaml:"artificialrecall"`
	RealPrecision           float64 `yaml:"realprecision"`
	RealRecall              float64 `yaml:"realrecall"`
	MeanConfidenceCorrect   float64 `yaml:"meanconfidencecorrect"`
	MeanConfidenceIncorrect float64 `yaml:"meanconfidenceincorrect"`
	AverageProcessingMs     int64   `yaml:"averageprocessingms"`
}

// EvalSpec represents the complete evaluation report
type EvalSpec struct {
	Config  EvalConfig   `yaml:"config"`
	Summary EvalSummary  `yaml:"summary"`
	Results []EvalResult `yaml:"results"`
}

// SaveToYAML saves benchmark results to a YAML file in the evals/
// directory and returns the written path.
func SaveToYAML(datasetPath string, agg *metrics.AggregateResults) (string, error) {
	if err := os.MkdirAll("evals", 0755); err != nil {
		return "", fmt.Errorf("failed to create evals directory: %w", err)
	}

	timestamp := time.Now().Format("2006-01-02_15-04-05")

	spec := EvalSpec{
		Config: EvalConfig{
			Provider:    agg.Provider,
			Model:       agg.Model,
			DatasetPath: datasetPath,
			SampleSize:  agg.SampleSize,
			Timestamp:   timestamp,
		},
		Summary: EvalSummary{
			TotalRecords:            agg.TotalRecords,
			SuccessCount:            agg.SuccessCount,
			FailureCount:            agg.FailureCount,
			Accuracy:                agg.Accuracy,
			ArtificialPrecision:     agg.ArtificialStats.Precision,
			ArtificialRecall:        agg.ArtificialStats.Recall,
			RealPrecision:           agg.RealStats.Precision,
			RealRecall:              agg.RealStats.Recall,
			MeanConfidenceCorrect:   agg.MeanConfidenceCorrect,
			MeanConfidenceIncorrect: agg.MeanConfidenceIncorrect,
			AverageProcessingMs:     agg.AverageProcessingTime.Milliseconds(),
		},
	}

	for _, r := range agg.Results {
		spec.Results = append(spec.Results, EvalResult{
			Identifier:   r.Identifier,
			Expected:     string(r.Expected),
			Predicted:    string(r.Predicted),
			Confidence:   r.Confidence,
			Generator:    r.Generator,
			Correct:      r.Correct(),
			ProcessingMs: r.ProcessingTime.Milliseconds(),
			Error:        r.Error,
		})
	}

	data, err := yaml.Marshal(&spec)
	if err != nil {
		return "", fmt.Errorf("failed to marshal results: %w", err)
	}

	model := strings.ReplaceAll(agg.Model, "/", "_")
	path := filepath.Join("evals", fmt.Sprintf("%s_%s_%s.yaml", agg.Provider, model, timestamp))
	if err := os.WriteFile(path, data, 0644); err != nil {
		return "", fmt.Errorf("failed to write results file: %w", err)
	}

	return path, nil
}
