package dataset

import "github.com/imagesleuth/imagesleuth/internal/models"

// BenchmarkRecord is one labeled sample in an AI-vs-real benchmark
// dataset. Records reference their image either by local path or by URL.
type BenchmarkRecord struct {
	// Primary key
	Identifier string `json:"identifier" parquet:"identifier"`

	// Exactly one of these locates the image
	ImagePath string `json:"image_path" parquet:"image_path"`
	ImageURL  string `json:"image_url" parquet:"image_url"`

	// Ground truth: "ai" (or "artificial"/"fake"/"generated") vs
	// "real" (or "photo"/"natural")
	Label string `json:"label" parquet:"label"`

	// Generator that produced the sample, empty for real images
	Generator string `json:"generator" parquet:"generator"`
}

// ExpectedVerdict normalizes the ground-truth label onto the detector's
// verdict space. Unknown labels default to real.
func (r *BenchmarkRecord) ExpectedVerdict() models.Verdict {
	switch r.Label {
	case "ai", "artificial", "fake", "generated", "synthetic":
		return models.VerdictArtificial
	default:
		return models.VerdictReal
	}
}
