package cmd

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/imagesleuth/imagesleuth/internal/analysis"
	"github.com/imagesleuth/imagesleuth/internal/config"
	"github.com/spf13/cobra"
)

func newAnalyzeCmd() *cobra.Command {
	var spectrumOut string

	cmd := &cobra.Command{
		Use:   "analyze <image>",
		Short: "Analyze a single image from the command line",
		Long: `Runs the full pipeline on one image file: prints the AI/real
verdict and the spectral heuristic summary, and writes the rendered
spectrum PNG next to the input (or to --spectrum-out).`,
		Example: `  imagesleuth analyze photo.jpg

  imagesleuth analyze render.png --spectrum-out /tmp/spectrum.png`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			imagePath := args[0]
			imageBytes, err := os.ReadFile(imagePath)
			if err != nil {
				return fmt.Errorf("failed to read image: %w", err)
			}

			service, err := analysis.NewService(config.Load())
			if err != nil {
				return err
			}

			report, err := service.Analyze(cmd.Context(), imageBytes, filepath.Base(imagePath))
			if err != nil {
				return err
			}

			if spectrumOut == "" {
				ext := filepath.Ext(imagePath)
				spectrumOut = strings.TrimSuffix(imagePath, ext) + "_spectrum.png"
			}
			if err := os.WriteFile(spectrumOut, report.Spectrum.PNG, 0644); err != nil {
				return fmt.Errorf("failed to write spectrum image: %w", err)
			}

			fmt.Printf("Verdict:    %s\n", report.Detection.Formatted())
			fmt.Printf("Model:      %s\n", report.Detection.Model)
			fmt.Printf("Dimensions: %dx%d\n", report.Width, report.Height)
			fmt.Printf("Spectrum:   %s\n\n%s\n", spectrumOut, report.Spectrum.Summary)
			return nil
		},
	}

	cmd.Flags().StringVar(&spectrumOut, "spectrum-out", "", "Path for the rendered spectrum PNG")

	return cmd
}
