package models

import (
	"errors"
	"fmt"
	"testing"
)

func TestFormatted(t *testing.T) {
	tests := []struct {
		name   string
		result DetectionResult
		want   string
	}{
		{"artificial", DetectionResult{Label: VerdictArtificial, Confidence: 97.3}, "97.3% Artificial"},
		{"real", DetectionResult{Label: VerdictReal, Confidence: 84}, "84.0% Real"},
		{"rounding", DetectionResult{Label: VerdictReal, Confidence: 12.34}, "12.3% Real"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.result.Formatted(); got != tt.want {
				t.Errorf("Formatted() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestIsAI(t *testing.T) {
	artificial := DetectionResult{Label: VerdictArtificial}
	real := DetectionResult{Label: VerdictReal}

	if !artificial.IsAI() {
		t.Error("Expected artificial verdict to be AI")
	}
	if real.IsAI() {
		t.Error("Expected real verdict to not be AI")
	}
}

func TestSentinelErrorsAreDistinct(t *testing.T) {
	sentinels := []error{ErrInvalidImage, ErrModelUnavailable, ErrUploadTooLarge, ErrTransientIO}

	for i, a := range sentinels {
		for j, b := range sentinels {
			if i != j && errors.Is(a, b) {
				t.Errorf("Sentinel %v should not match %v", a, b)
			}
		}
	}

	wrapped := fmt.Errorf("context: %w", ErrModelUnavailable)
	if !errors.Is(wrapped, ErrModelUnavailable) {
		t.Error("Expected wrapped sentinel to match with errors.Is")
	}
}
