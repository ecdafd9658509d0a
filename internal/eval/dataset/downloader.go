package dataset

import (
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"os"
	"path/filepath"
	"strings"
)

const (
	// HuggingFace dataset repository carrying the labeled AI-vs-real
	// benchmark split
	HFDatasetRepo = "imagesleuth/ai-or-not-bench"

	// HuggingFace URLs
	HFResolveURL = "https://huggingface.co/datasets/%s/resolve/main/%s"

	// Default cache directory (similar to Python's datasets library)
	DefaultCacheDir = "~/.cache/huggingface/datasets"
)

// DownloadConfig configures dataset downloading
type DownloadConfig struct {
	Repo          string
	CacheDir      string
	ForceDownload bool
	Token         string // HuggingFace token for private datasets
}

// Downloader handles downloading and caching datasets from HuggingFace
type Downloader struct {
	config DownloadConfig
}

// NewDownloader creates a new dataset downloader
func NewDownloader(config DownloadConfig) *Downloader {
	if config.Repo == "" {
		config.Repo = HFDatasetRepo
	}
	if config.CacheDir == "" {
		config.CacheDir = DefaultCacheDir
	}

	// Expand ~ to home directory
	if strings.HasPrefix(config.CacheDir, "~") {
		homeDir, err := os.UserHomeDir()
		if err == nil {
			config.CacheDir = filepath.Join(homeDir, config.CacheDir[1:])
		}
	}

	return &Downloader{
		config: config,
	}
}

// DownloadDataset downloads the named dataset file from HuggingFace,
// returning the path to the cached copy.
func (d *Downloader) DownloadDataset(filename string) (string, error) {
	cacheDir := filepath.Join(d.config.CacheDir, d.config.Repo)
	if err := os.MkdirAll(cacheDir, 0755); err != nil {
		return "", fmt.Errorf("failed to create cache directory: %w", err)
	}

	cachePath := filepath.Join(cacheDir, filename)

	if !d.config.ForceDownload {
		if _, err := os.Stat(cachePath); err == nil {
			slog.Info("Using cached dataset", "path", cachePath)
			return cachePath, nil
		}
	}

	url := fmt.Sprintf(HFResolveURL, d.config.Repo, filename)
	slog.Info("Downloading dataset", "url", url)

	req, err := http.NewRequest("GET", url, nil)
	if err != nil {
		return "", fmt.Errorf("failed to create request: %w", err)
	}
	if d.config.Token != "" {
		req.Header.Set("Authorization", "Bearer "+d.config.Token)
	}

	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("failed to download dataset: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("failed to download dataset: HTTP %d", resp.StatusCode)
	}

	tmpPath := cachePath + ".partial"
	out, err := os.Create(tmpPath)
	if err != nil {
		return "", fmt.Errorf("failed to create cache file: %w", err)
	}

	written, err := io.Copy(out, resp.Body)
	closeErr := out.Close()
	if err != nil {
		os.Remove(tmpPath)
		return "", fmt.Errorf("failed to write dataset: %w", err)
	}
	if closeErr != nil {
		os.Remove(tmpPath)
		return "", fmt.Errorf("failed to close cache file: %w", closeErr)
	}

	if err := os.Rename(tmpPath, cachePath); err != nil {
		return "", fmt.Errorf("failed to finalize cache file: %w", err)
	}

	slog.Info("Dataset downloaded", "path", cachePath, "bytes", written)
	return cachePath, nil
}
