package evalcmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/imagesleuth/imagesleuth/internal/eval/dataset"
)

// NewRunCmd creates the run command for benchmarking the detector
func NewRunCmd() *cobra.Command {
	var datasetPath string
	var provider string
	var model string
	var sampleSize int
	var concurrency int

	cmd := &cobra.Command{
		Use:   "run",
		Short: "Benchmark the detector against a labeled dataset",
		Long: `Runs the detector over every record of a labeled AI-vs-real dataset
(.parquet or .jsonl) and reports accuracy, per-class precision/recall,
and confidence calibration. Results are written to evals/*.yaml.`,
		Example: `  # Evaluate 25 records with the default provider
  imagesleuth eval run --dataset bench.jsonl --sample 25

  # Full dataset against a specific model
  imagesleuth eval run --dataset bench.parquet --provider huggingface --model Organika/sdxl-detector`,
		RunE: func(cmd *cobra.Command, args []string) error {
			if _, err := os.Stat(datasetPath); os.IsNotExist(err) {
				return fmt.Errorf("dataset file not found: %s\n\nDownload the benchmark first:\n  imagesleuth eval download", datasetPath)
			}
			return executeRun(cmd.Context(), datasetPath, provider, model, sampleSize, concurrency)
		},
	}

	cmd.Flags().StringVar(&datasetPath, "dataset", "bench.jsonl", "Path to the labeled dataset (.parquet or .jsonl)")
	cmd.Flags().StringVar(&provider, "provider", "", "Detector provider (default from DETECTOR_PROVIDER)")
	cmd.Flags().StringVar(&model, "model", "", "Model identifier (default from DETECTOR_MODEL)")
	cmd.Flags().IntVar(&sampleSize, "sample", -1, "Number of records to evaluate (-1 for all)")
	cmd.Flags().IntVar(&concurrency, "concurrency", 2, "Concurrent detection requests")

	return cmd
}

// NewDownloadCmd creates the download command for fetching the benchmark
// dataset from HuggingFace
func NewDownloadCmd() *cobra.Command {
	var repo string
	var filename string
	var force bool

	cmd := &cobra.Command{
		Use:   "download",
		Short: "Download the benchmark dataset from HuggingFace",
		RunE: func(cmd *cobra.Command, args []string) error {
			downloader := dataset.NewDownloader(dataset.DownloadConfig{
				Repo:          repo,
				ForceDownload: force,
				Token:         os.Getenv("HF_API_TOKEN"),
			})

			path, err := downloader.DownloadDataset(filename)
			if err != nil {
				return err
			}

			fmt.Printf("Dataset ready: %s\n", path)
			fmt.Printf("\nRun the benchmark with:\n  imagesleuth eval run --dataset %s\n", path)
			return nil
		},
	}

	cmd.Flags().StringVar(&repo, "repo", dataset.HFDatasetRepo, "HuggingFace dataset repository")
	cmd.Flags().StringVar(&filename, "file", "bench.parquet", "Dataset file to download")
	cmd.Flags().BoolVar(&force, "force", false, "Re-download even if cached")

	return cmd
}
