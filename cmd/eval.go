package cmd

import (
	"github.com/imagesleuth/imagesleuth/internal/evalcmd"
	"github.com/spf13/cobra"
)

func newEvalCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "eval",
		Short: "Detector benchmarking tools",
		Long: `Benchmarking tools for measuring detection accuracy against labeled
AI-vs-real image datasets.

Supports downloading a benchmark dataset from HuggingFace, running the
detector over it, and writing per-record and aggregate results.`,
	}

	// Add eval subcommands
	cmd.AddCommand(evalcmd.NewRunCmd())
	cmd.AddCommand(evalcmd.NewDownloadCmd())

	return cmd
}
