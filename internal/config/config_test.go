package config

import "testing"

func TestLoadDefaults(t *testing.T) {
	for _, key := range []string{
		"IMAGESLEUTH_PORT",
		"IMAGESLEUTH_MAX_UPLOAD_MB",
		"IMAGESLEUTH_UPLOAD_DIR",
		"DETECTOR_PROVIDER",
		"DETECTOR_MODEL",
		"DETECTOR_FALLBACK_MODEL",
	} {
		t.Setenv(key, "")
	}

	cfg := Load()

	if cfg.Port != DefaultPort {
		t.Errorf("Expected port %s, got %s", DefaultPort, cfg.Port)
	}
	if cfg.MaxUploadMB != DefaultMaxUploadMB {
		t.Errorf("Expected max upload %d, got %d", DefaultMaxUploadMB, cfg.MaxUploadMB)
	}
	if cfg.UploadDir != DefaultUploadDir {
		t.Errorf("Expected upload dir %s, got %s", DefaultUploadDir, cfg.UploadDir)
	}
	if cfg.Provider != DefaultProvider {
		t.Errorf("Expected provider %s, got %s", DefaultProvider, cfg.Provider)
	}
	if cfg.Model != DefaultModel {
		t.Errorf("Expected model %s, got %s", DefaultModel, cfg.Model)
	}
	if cfg.FallbackModel != DefaultFallbackModel {
		t.Errorf("Expected fallback model %s, got %s", DefaultFallbackModel, cfg.FallbackModel)
	}
}

func TestLoadOverrides(t *testing.T) {
	t.Setenv("IMAGESLEUTH_PORT", "9090")
	t.Setenv("IMAGESLEUTH_MAX_UPLOAD_MB", "4")
	t.Setenv("IMAGESLEUTH_UPLOAD_DIR", "/tmp/sleuth")
	t.Setenv("DETECTOR_PROVIDER", "ollama")
	t.Setenv("DETECTOR_MODEL", "llava:13b")
	t.Setenv("DETECTOR_FALLBACK_MODEL", "")

	cfg := Load()

	if cfg.Port != "9090" {
		t.Errorf("Expected port 9090, got %s", cfg.Port)
	}
	if cfg.MaxUploadMB != 4 {
		t.Errorf("Expected max upload 4, got %d", cfg.MaxUploadMB)
	}
	if cfg.UploadDir != "/tmp/sleuth" {
		t.Errorf("Expected upload dir /tmp/sleuth, got %s", cfg.UploadDir)
	}
	if cfg.Provider != "ollama" {
		t.Errorf("Expected provider ollama, got %s", cfg.Provider)
	}
	if cfg.Model != "llava:13b" {
		t.Errorf("Expected model llava:13b, got %s", cfg.Model)
	}
	if cfg.FallbackModel != DefaultFallbackModel {
		t.Errorf("Expected empty override to fall back to default, got %s", cfg.FallbackModel)
	}
}

func TestLoadBadInt(t *testing.T) {
	tests := []struct {
		name  string
		value string
	}{
		{"not a number", "sixteen"},
		{"zero", "0"},
		{"negative", "-5"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv("IMAGESLEUTH_MAX_UPLOAD_MB", tt.value)
			cfg := Load()
			if cfg.MaxUploadMB != DefaultMaxUploadMB {
				t.Errorf("Expected fallback to %d, got %d", DefaultMaxUploadMB, cfg.MaxUploadMB)
			}
		})
	}
}

func TestMaxUploadBytes(t *testing.T) {
	cfg := &Config{MaxUploadMB: 2}
	if got := cfg.MaxUploadBytes(); got != 2*1024*1024 {
		t.Errorf("Expected 2 MiB in bytes, got %d", got)
	}
}
