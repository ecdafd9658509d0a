package metrics

import (
	"time"

	"github.com/imagesleuth/imagesleuth/internal/models"
)

// RecordResult represents the detector's outcome on a single benchmark
// sample.
type RecordResult struct {
	Identifier     string
	Expected       models.Verdict
	Predicted      models.Verdict
	Confidence     float64
	Generator      string
	ProcessingTime time.Duration
	Error          string // If detection failed
}

// Correct reports whether the prediction matched the ground truth.
func (r *RecordResult) Correct() bool {
	return r.Error == "" && r.Expected == r.Predicted
}

// ClassStats contains precision/recall inputs for one verdict class.
type ClassStats struct {
	TruePositives  int
	FalsePositives int
	FalseNegatives int
	Precision      float64
	Recall         float64
}

// AggregateResults represents aggregated benchmark metrics.
type AggregateResults struct {
	TotalRecords int
	SuccessCount int
	FailureCount int

	Accuracy float64

	// Confusion counts, keyed by ground truth
	ArtificialStats ClassStats
	RealStats       ClassStats

	// Mean confidence split by correctness
	MeanConfidenceCorrect   float64
	MeanConfidenceIncorrect float64

	// Timing
	AverageProcessingTime time.Duration
	TotalProcessingTime   time.Duration

	// Detailed results
	Results []RecordResult

	// Metadata
	EvaluationDate time.Time
	Provider       string
	Model          string
	SampleSize     int
}

// Aggregate computes summary metrics over per-record results.
func Aggregate(results []RecordResult, provider, model string) *AggregateResults {
	agg := &AggregateResults{
		TotalRecords:   len(results),
		Results:        results,
		EvaluationDate: time.Now(),
		Provider:       provider,
		Model:          model,
		SampleSize:     len(results),
	}

	correct := 0
	var confCorrect, confIncorrect float64
	nCorrect, nIncorrect := 0, 0

	for _, r := range results {
		if r.Error != "" {
			agg.FailureCount++
			continue
		}
		agg.SuccessCount++
		agg.TotalProcessingTime += r.ProcessingTime

		if r.Correct() {
			correct++
			confCorrect += r.Confidence
			nCorrect++
		} else {
			confIncorrect += r.Confidence
			nIncorrect++
		}

		tallyConfusion(agg, r)
	}

	if agg.SuccessCount > 0 {
		agg.Accuracy = float64(correct) / float64(agg.SuccessCount)
		agg.AverageProcessingTime = agg.TotalProcessingTime / time.Duration(agg.SuccessCount)
	}
	if nCorrect > 0 {
		agg.MeanConfidenceCorrect = confCorrect / float64(nCorrect)
	}
	if nIncorrect > 0 {
		agg.MeanConfidenceIncorrect = confIncorrect / float64(nIncorrect)
	}

	finalizeClass(&agg.ArtificialStats)
	finalizeClass(&agg.RealStats)

	return agg
}

func tallyConfusion(agg *AggregateResults, r RecordResult) {
	switch {
	case r.Expected == models.VerdictArtificial && r.Predicted == models.VerdictArtificial:
		agg.ArtificialStats.TruePositives++
	case r.Expected == models.VerdictArtificial && r.Predicted == models.VerdictReal:
		agg.ArtificialStats.FalseNegatives++
		agg.RealStats.FalsePositives++
	case r.Expected == models.VerdictReal && r.Predicted == models.VerdictReal:
		agg.RealStats.TruePositives++
	case r.Expected == models.VerdictReal && r.Predicted == models.VerdictArtificial:
		agg.RealStats.FalseNegatives++
		agg.ArtificialStats.FalsePositives++
	}
}

func finalizeClass(c *ClassStats) {
	if c.TruePositives+c.FalsePositives > 0 {
		c.Precision = float64(c.TruePositives) / float64(c.TruePositives+c.FalsePositives)
	}
	if c.TruePositives+c.FalseNegatives > 0 {
		c.Recall = float64(c.TruePositives) / float64(c.TruePositives+c.FalseNegatives)
	}
}
