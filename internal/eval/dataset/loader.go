package dataset

import (
	"bufio"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"os"
	"path/filepath"
	"strings"

	"github.com/parquet-go/parquet-go"
)

// Loader handles loading of benchmark datasets
type Loader struct {
	datasetPath string
}

// NewLoader creates a new dataset loader
func NewLoader(datasetPath string) *Loader {
	return &Loader{
		datasetPath: datasetPath,
	}
}

// Load loads records from a dataset file (JSONL or Parquet)
func (l *Loader) Load() ([]BenchmarkRecord, error) {
	ext := strings.ToLower(filepath.Ext(l.datasetPath))

	switch ext {
	case ".parquet":
		return l.loadParquet()
	case ".jsonl", ".json":
		return l.loadJSONL()
	default:
		return nil, fmt.Errorf("unsupported file format: %s (supported: .parquet, .jsonl)", ext)
	}
}

// loadJSONL loads records from a JSONL file
func (l *Loader) loadJSONL() ([]BenchmarkRecord, error) {
	slog.Debug("Opening JSONL file", "path", l.datasetPath)

	file, err := os.Open(l.datasetPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open dataset file: %w", err)
	}
	defer file.Close()

	var records []BenchmarkRecord
	scanner := bufio.NewScanner(file)

	lineNum := 0
	for scanner.Scan() {
		lineNum++
		line := scanner.Bytes()

		if len(line) == 0 {
			continue
		}

		var record BenchmarkRecord
		if err := json.Unmarshal(line, &record); err != nil {
			return nil, fmt.Errorf("failed to parse JSON at line %d: %w", lineNum, err)
		}

		records = append(records, record)
	}

	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("error reading dataset: %w", err)
	}

	slog.Debug("Finished reading JSONL file", "total_records", len(records))

	return records, nil
}

// loadParquet loads records from a Parquet file
func (l *Loader) loadParquet() ([]BenchmarkRecord, error) {
	slog.Debug("Opening Parquet file", "path", l.datasetPath)

	file, err := os.Open(l.datasetPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open parquet file: %w", err)
	}
	defer file.Close()

	info, err := file.Stat()
	if err != nil {
		return nil, fmt.Errorf("failed to stat file: %w", err)
	}

	rows, err := parquet.Read[BenchmarkRecord](file, info.Size())
	if err != nil {
		return nil, fmt.Errorf("failed to read parquet rows: %w", err)
	}

	slog.Debug("Finished reading Parquet file", "total_records", len(rows))

	return rows, nil
}

// LoadImage resolves the record's image, reading the local path when set
// and fetching the URL otherwise. Relative paths resolve against the
// dataset file's directory.
func (l *Loader) LoadImage(record *BenchmarkRecord) ([]byte, error) {
	if record.ImagePath != "" {
		path := record.ImagePath
		if !filepath.IsAbs(path) {
			path = filepath.Join(filepath.Dir(l.datasetPath), path)
		}
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("failed to read sample image: %w", err)
		}
		return data, nil
	}

	if record.ImageURL == "" {
		return nil, fmt.Errorf("record %s has neither image_path nor image_url", record.Identifier)
	}

	resp, err := http.Get(record.ImageURL)
	if err != nil {
		return nil, fmt.Errorf("failed to download sample image: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("failed to download sample image: HTTP %d", resp.StatusCode)
	}

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read sample image: %w", err)
	}
	return data, nil
}
