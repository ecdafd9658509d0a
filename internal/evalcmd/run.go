package evalcmd

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/imagesleuth/imagesleuth/internal/config"
	"github.com/imagesleuth/imagesleuth/internal/detector"
	"github.com/imagesleuth/imagesleuth/internal/eval/dataset"
	"github.com/imagesleuth/imagesleuth/internal/eval/metrics"
	"github.com/imagesleuth/imagesleuth/internal/eval/results"
)

func executeRun(ctx context.Context, datasetPath, provider, model string, sampleSize, concurrency int) error {
	slog.Info("Starting benchmark run", "dataset", datasetPath, "provider", provider, "model", model)

	loader := dataset.NewLoader(datasetPath)
	records, err := loader.Load()
	if err != nil {
		return fmt.Errorf("failed to load dataset: %w", err)
	}
	slog.Info("Dataset loaded", "records", len(records))

	if sampleSize > 0 && sampleSize < len(records) {
		records = records[:sampleSize]
	}

	cfg := config.Load()
	if provider != "" {
		cfg.Provider = provider
	}
	if model != "" {
		cfg.Model = model
	}

	det, err := detector.New(cfg)
	if err != nil {
		return err
	}

	// A zero-capacity semaphore would block every worker.
	if concurrency < 1 {
		concurrency = 1
	}

	slog.Info("Processing records", "count", len(records), "concurrency", concurrency)

	var wg sync.WaitGroup
	semaphore := make(chan struct{}, concurrency)
	resultsChan := make(chan metrics.RecordResult, len(records))

	for i, record := range records {
		wg.Add(1)
		go func(idx int, record dataset.BenchmarkRecord) {
			defer wg.Done()
			semaphore <- struct{}{}        // Acquire
			defer func() { <-semaphore }() // Release

			slog.Info("Processing record", "id", record.Identifier, "progress", fmt.Sprintf("%d/%d", idx+1, len(records)))
			resultsChan <- processRecord(ctx, det, loader, record)
		}(i, record)
	}

	go func() {
		wg.Wait()
		close(resultsChan)
	}()

	collected := make([]metrics.RecordResult, 0, len(records))
	for result := range resultsChan {
		collected = append(collected, result)
	}

	agg := metrics.Aggregate(collected, cfg.Provider, cfg.Model)

	path, err := results.SaveToYAML(datasetPath, agg)
	if err != nil {
		return fmt.Errorf("failed to save results: %w", err)
	}

	printSummary(agg)
	fmt.Printf("\nResults saved to: %s\n", path)
	return nil
}

func processRecord(ctx context.Context, det *detector.Detector, loader *dataset.Loader, record dataset.BenchmarkRecord) metrics.RecordResult {
	result := metrics.RecordResult{
		Identifier: record.Identifier,
		Expected:   record.ExpectedVerdict(),
		Generator:  record.Generator,
	}

	imageBytes, err := loader.LoadImage(&record)
	if err != nil {
		result.Error = fmt.Sprintf("failed to load image: %v", err)
		return result
	}

	started := time.Now()
	detection, err := det.Detect(ctx, imageBytes)
	result.ProcessingTime = time.Since(started)
	if err != nil {
		result.Error = fmt.Sprintf("detection failed: %v", err)
		return result
	}

	result.Predicted = detection.Label
	result.Confidence = detection.Confidence
	return result
}

func printSummary(agg *metrics.AggregateResults) {
	fmt.Printf("\n=== Benchmark Summary ===\n")
	fmt.Printf("Provider/model:   %s / %s\n", agg.Provider, agg.Model)
	fmt.Printf("Records:          %d (%d ok, %d failed)\n", agg.TotalRecords, agg.SuccessCount, agg.FailureCount)
	fmt.Printf("Accuracy:         %.1f%%\n", agg.Accuracy*100)
	fmt.Printf("Artificial P/R:   %.2f / %.2f\n", agg.ArtificialStats.Precision, agg.ArtificialStats.Recall)
	fmt.Printf("Real P/R:         %.2f / %.2f\n", agg.RealStats.Precision, agg.RealStats.Recall)
	fmt.Printf("Mean confidence:  %.1f%% when correct, %.1f%% when wrong\n",
		agg.MeanConfidenceCorrect, agg.MeanConfidenceIncorrect)
	fmt.Printf("Avg time/record:  %s\n", agg.AverageProcessingTime)
}
