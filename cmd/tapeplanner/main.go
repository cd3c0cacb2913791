// TapePlanner: tape cutting planner
//
// A cross-platform desktop application that splits raw tape lengths
// into standard class A and class B pieces at an accepted piece ratio.
//
// Build:
//   go build -o tapeplanner ./cmd/tapeplanner
//
// Cross-compile:
//   GOOS=windows GOARCH=amd64 go build -o tapeplanner.exe ./cmd/tapeplanner
//   GOOS=darwin  GOARCH=amd64 go build -o tapeplanner-darwin ./cmd/tapeplanner
//
// Using fyne-cross (recommended for proper packaging):
//   go install github.com/fyne-io/fyne-cross@latest
//   fyne-cross windows -arch=amd64
//   fyne-cross darwin  -arch=amd64,arm64

package main

import (
	"fmt"
	"os"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/app"
	"fyne.io/fyne/v2/theme"
	"go.uber.org/zap"

	"github.com/piwi3910/TapePlanner/internal/ui"
)

func main() {
	logger, err := zap.NewDevelopment()
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to initialize logger: %v\n", err)
		os.Exit(1)
	}

	application := app.NewWithID("com.piwi3910.tapeplanner")
	application.SetIcon(theme.ContentCutIcon())

	window := application.NewWindow("Tape Planner")

	appUI := ui.NewApp(application, window, logger)
	appUI.SetupMenus()
	window.SetContent(appUI.Build())
	window.SetOnClosed(appUI.Shutdown)
	window.Resize(fyne.NewSize(1000, 700))
	window.CenterOnScreen()
	window.ShowAndRun()
}
