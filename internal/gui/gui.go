// Package gui implements the desktop front-end. All widget mutation
// happens on the fyne main loop; analysis runs in a background goroutine
// per selected image, with a generation counter dropping stale results
// when the user picks a new image mid-analysis.
package gui

import (
	"context"
	"fmt"
	"image/color"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"sync/atomic"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/app"
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/storage"
	"fyne.io/fyne/v2/theme"
	"fyne.io/fyne/v2/widget"

	"github.com/imagesleuth/imagesleuth/internal/analysis"
	"github.com/imagesleuth/imagesleuth/internal/models"
)

type uiState int

const (
	stateIdle uiState = iota
	stateAnalyzing
	stateDone
	stateError
)

var imageExtensions = []string{".jpg", ".jpeg", ".png", ".gif", ".webp"}

// App is the desktop front-end around the analysis pipeline.
type App struct {
	service *analysis.Service

	fyneApp fyne.App
	window  fyne.Window

	preview      *canvas.Image
	dropHint     *widget.Label
	statusLabel  *widget.Label
	verdictLabel *canvas.Text
	confLabel    *widget.Label
	spectrum     *canvas.Image
	summaryLabel *widget.Label
	clearButton  *widget.Button

	state      uiState
	generation atomic.Int64
}

// New builds the application window around an analysis service.
func New(service *analysis.Service) *App {
	a := &App{
		service: service,
		fyneApp: app.New(),
	}
	a.buildUI()
	return a
}

// Run shows the window and blocks until the user closes it.
func (a *App) Run() {
	// Warm the model while the user is still choosing an image.
	go a.service.Warm(context.Background())
	a.window.ShowAndRun()
}

func (a *App) buildUI() {
	a.window = a.fyneApp.NewWindow("Imagesleuth")
	a.window.Resize(fyne.NewSize(1100, 650))

	a.preview = &canvas.Image{FillMode: canvas.ImageFillContain}
	a.preview.SetMinSize(fyne.NewSize(380, 380))
	a.dropHint = widget.NewLabel("Drop an image here\nor use Open Image")
	a.dropHint.Alignment = fyne.TextAlignCenter

	openButton := widget.NewButtonWithIcon("Open Image", theme.FolderOpenIcon(), a.openImageDialog)
	a.clearButton = widget.NewButtonWithIcon("Clear", theme.DeleteIcon(), a.clear)
	a.clearButton.Disable()

	a.statusLabel = widget.NewLabel("Ready to analyze")

	a.verdictLabel = canvas.NewText("No image analyzed yet", color.Gray{Y: 128})
	a.verdictLabel.TextSize = 28
	a.verdictLabel.TextStyle = fyne.TextStyle{Bold: true}
	a.verdictLabel.Alignment = fyne.TextAlignCenter

	a.confLabel = widget.NewLabel("")
	a.confLabel.Alignment = fyne.TextAlignCenter

	a.spectrum = &canvas.Image{FillMode: canvas.ImageFillContain}
	a.spectrum.SetMinSize(fyne.NewSize(320, 320))

	a.summaryLabel = widget.NewLabel("Frequency-domain analysis will appear here")
	a.summaryLabel.Wrapping = fyne.TextWrapWord

	left := container.NewBorder(
		widget.NewLabelWithStyle("Upload Image", fyne.TextAlignLeading, fyne.TextStyle{Bold: true}),
		container.NewVBox(container.NewGridWithColumns(2, openButton, a.clearButton), a.statusLabel),
		nil, nil,
		container.NewStack(a.preview, a.dropHint),
	)

	right := container.NewBorder(
		container.NewVBox(
			widget.NewLabelWithStyle("Primary Detection", fyne.TextAlignLeading, fyne.TextStyle{Bold: true}),
			a.verdictLabel,
			a.confLabel,
			widget.NewSeparator(),
			widget.NewLabelWithStyle("Spectral Fingerprint", fyne.TextAlignLeading, fyne.TextStyle{Bold: true}),
		),
		a.summaryLabel,
		nil, nil,
		a.spectrum,
	)

	split := container.NewHSplit(left, right)
	split.SetOffset(0.42)
	a.window.SetContent(split)

	a.window.SetOnDropped(func(_ fyne.Position, uris []fyne.URI) {
		if len(uris) == 0 {
			return
		}
		a.loadFromPath(uris[0].Path())
	})
}

func (a *App) openImageDialog() {
	fd := dialog.NewFileOpen(func(reader fyne.URIReadCloser, err error) {
		if err != nil || reader == nil {
			return
		}
		defer reader.Close()
		a.loadFromPath(reader.URI().Path())
	}, a.window)
	fd.SetFilter(storage.NewExtensionFileFilter(imageExtensions))
	fd.Show()
}

func (a *App) loadFromPath(path string) {
	ext := strings.ToLower(filepath.Ext(path))
	supported := false
	for _, e := range imageExtensions {
		if ext == e {
			supported = true
			break
		}
	}
	if !supported {
		a.setError(fmt.Sprintf("Unsupported file type: %s", ext))
		return
	}

	imageBytes, err := os.ReadFile(path)
	if err != nil {
		a.setError(fmt.Sprintf("Could not read file: %v", err))
		return
	}

	a.startAnalysis(imageBytes, filepath.Base(path))
}

// startAnalysis transitions to Analyzing, shows the local preview
// immediately, and kicks off the background worker. A newer selection
// supersedes any in-flight one; the old result is dropped on arrival.
func (a *App) startAnalysis(imageBytes []byte, filename string) {
	gen := a.generation.Add(1)

	a.state = stateAnalyzing
	a.dropHint.Hide()
	a.preview.Resource = fyne.NewStaticResource(filename, imageBytes)
	a.preview.Refresh()
	a.statusLabel.SetText("Analyzing " + filename + "...")
	a.verdictLabel.Text = "Analyzing..."
	a.verdictLabel.Color = color.Gray{Y: 128}
	a.verdictLabel.Refresh()
	a.confLabel.SetText("")
	a.clearButton.Disable()

	go func() {
		report, err := a.service.Analyze(context.Background(), imageBytes, filename)
		fyne.Do(func() {
			if a.generation.Load() != gen {
				// A newer image was selected while this one was running.
				return
			}
			if err != nil {
				slog.Error("Analysis failed", "file", filename, "err", err)
				a.setError(err.Error())
				return
			}
			a.showResult(report)
		})
	}()
}

func (a *App) showResult(report *models.AnalysisReport) {
	a.state = stateDone

	if report.Detection.IsAI() {
		a.verdictLabel.Text = "AI-GENERATED"
		a.verdictLabel.Color = color.NRGBA{R: 231, G: 76, B: 60, A: 255}
	} else {
		a.verdictLabel.Text = "REAL"
		a.verdictLabel.Color = color.NRGBA{R: 46, G: 204, B: 113, A: 255}
	}
	a.verdictLabel.Refresh()
	a.confLabel.SetText(fmt.Sprintf("%.1f%% confidence (%s)", report.Detection.Confidence, report.Detection.Model))

	a.spectrum.Resource = fyne.NewStaticResource("spectrum.png", report.Spectrum.PNG)
	a.spectrum.Refresh()
	a.summaryLabel.SetText(report.Spectrum.Summary)

	a.statusLabel.SetText("Done - " + report.Filename)
	a.clearButton.Enable()
}

func (a *App) setError(message string) {
	a.state = stateError
	a.statusLabel.SetText("Error: " + message)
	a.verdictLabel.Text = "Analysis failed"
	a.verdictLabel.Color = color.NRGBA{R: 231, G: 76, B: 60, A: 255}
	a.verdictLabel.Refresh()
	a.clearButton.Enable()
}

// clear resets the window to the idle state and discards the previewed
// image and any shown results.
func (a *App) clear() {
	a.state = stateIdle
	a.generation.Add(1)

	a.preview.Resource = nil
	a.preview.Refresh()
	a.dropHint.Show()
	a.spectrum.Resource = nil
	a.spectrum.Refresh()

	a.verdictLabel.Text = "No image analyzed yet"
	a.verdictLabel.Color = color.Gray{Y: 128}
	a.verdictLabel.Refresh()
	a.confLabel.SetText("")
	a.summaryLabel.SetText("Frequency-domain analysis will appear here")
	a.statusLabel.SetText("Ready to analyze")
	a.clearButton.Disable()
}
