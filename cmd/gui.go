package cmd

import (
	"github.com/imagesleuth/imagesleuth/internal/analysis"
	"github.com/imagesleuth/imagesleuth/internal/config"
	"github.com/imagesleuth/imagesleuth/internal/gui"
	"github.com/spf13/cobra"
)

func newGUICmd() *cobra.Command {
	return &cobra.Command{
		Use:   "gui",
		Short: "Start the desktop interface",
		Long: `Opens the desktop window. Drop an image onto the window or pick one
with the file dialog; the verdict, confidence, spectrum, and heuristic
summary are shown once analysis completes.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			service, err := analysis.NewService(config.Load())
			if err != nil {
				return err
			}
			gui.New(service).Run()
			return nil
		},
	}
}
