package cmd

import (
	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

func NewRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "imagesleuth",
		Short: "AI-generated image detection with spectral fingerprinting",
		Long: `Imagesleuth classifies images as AI-generated or real using a
pretrained vision classifier, and renders the image's log-magnitude
Fourier spectrum so periodic generation artifacts can be inspected by
eye.

It ships a web server, a desktop GUI, a one-shot CLI analyzer, and an
evaluation harness for benchmarking the detector on labeled datasets.`,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			// Load .env file if present (ignore errors)
			_ = godotenv.Load()
		},
	}

	// Add subcommands
	cmd.AddCommand(newServeCmd())
	cmd.AddCommand(newGUICmd())
	cmd.AddCommand(newAnalyzeCmd())
	cmd.AddCommand(newEvalCmd())

	return cmd
}
