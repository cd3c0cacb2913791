package ui

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/driver/desktop"
	"fyne.io/fyne/v2/theme"
	"fyne.io/fyne/v2/widget"
	fynetooltip "github.com/dweymouth/fyne-tooltip"
	"go.uber.org/zap"

	"github.com/piwi3910/TapePlanner/internal/export"
	tapeimporter "github.com/piwi3910/TapePlanner/internal/importer"
	"github.com/piwi3910/TapePlanner/internal/model"
	"github.com/piwi3910/TapePlanner/internal/planner"
	"github.com/piwi3910/TapePlanner/internal/project"
	"github.com/piwi3910/TapePlanner/internal/ui/widgets"
)

// TapePlaceholder is shown in empty tape rows.
const TapePlaceholder = "Enter tape length min 300 m"

// App holds all application state and UI references.
type App struct {
	app        fyne.App
	window     fyne.Window
	logger     *zap.Logger
	config     model.AppConfig
	configPath string
	theme      *PlannerTheme
	planner    *planner.Planner
	history    *History
	list       model.TapeList

	report *planner.Report
	cancel context.CancelFunc
	seq    uint64

	// UI references for dynamic updates
	tapesContainer *fyne.Container
	resultText     *widget.RichText
	barsContainer  *fyne.Container
	status         *widget.Label
}

// NewApp loads the config and restores the last session's tapes. A nil
// logger disables logging.
func NewApp(application fyne.App, window fyne.Window, logger *zap.Logger) *App {
	if logger == nil {
		logger = zap.NewNop()
	}
	a := &App{
		app:        application,
		window:     window,
		logger:     logger,
		configPath: project.DefaultConfigPath(),
		history:    NewHistory(),
		list:       model.NewTapeList(),
	}

	cfg, err := project.LoadAppConfig(a.configPath)
	if err != nil {
		logger.Warn("using default config", zap.String("path", a.configPath), zap.Error(err))
		cfg = model.DefaultAppConfig()
	}
	a.theme = NewPlannerTheme(cfg.Theme)
	a.applyConfig(cfg)

	for _, raw := range cfg.LastTapes {
		a.list.Tapes = append(a.list.Tapes, model.NewTape(raw))
	}
	if len(a.list.Tapes) == 0 {
		a.list.Tapes = append(a.list.Tapes, model.NewTape(""))
	}
	return a
}

// SetupMenus creates the native menu bar for the application.
func (a *App) SetupMenus() {
	fileMenu := fyne.NewMenu("File",
		fyne.NewMenuItem("New Tape List", func() {
			a.replaceList(model.NewTapeList())
		}),
		fyne.NewMenuItem("Open Tape List...", a.loadTapeList),
		fyne.NewMenuItem("Save Tape List...", a.saveTapeList),
		fyne.NewMenuItemSeparator(),
		fyne.NewMenuItem("Import Tapes from CSV/Excel...", a.importTapes),
		fyne.NewMenuItemSeparator(),
		fyne.NewMenuItem("Export PDF Report...", func() {
			a.exportReport("cutting-plan.pdf", func(path string, r planner.Report) error {
				return export.ExportPDF(path, r)
			})
		}),
		fyne.NewMenuItem("Export Piece Labels...", func() {
			a.exportReport("labels.pdf", func(path string, r planner.Report) error {
				return export.ExportLabels(path, r.Allocation)
			})
		}),
		fyne.NewMenuItem("Export Excel...", func() {
			a.exportReport("cutting-plan.xlsx", export.ExportExcel)
		}),
		fyne.NewMenuItemSeparator(),
		fyne.NewMenuItem("Backup / Restore...", a.showBackupDialog),
	)

	editMenu := fyne.NewMenu("Edit",
		fyne.NewMenuItem("Undo", a.undo),
		fyne.NewMenuItem("Redo", a.redo),
		fyne.NewMenuItemSeparator(),
		fyne.NewMenuItem("Clear All Tapes", func() {
			a.pushHistory("Clear tapes")
			a.list.Tapes = []model.Tape{model.NewTape("")}
			a.refreshTapeList()
		}),
	)

	toolsMenu := fyne.NewMenu("Tools",
		fyne.NewMenuItem("Calculate", a.runCalculate),
		fyne.NewMenuItem("Settings...", a.showSettingsDialog),
	)

	helpMenu := fyne.NewMenu("Help",
		fyne.NewMenuItem("About", a.showAboutDialog),
	)

	a.window.SetMainMenu(fyne.NewMainMenu(fileMenu, editMenu, toolsMenu, helpMenu))

	undoKey := &desktop.CustomShortcut{KeyName: fyne.KeyZ, Modifier: fyne.KeyModifierShortcutDefault}
	redoKey := &desktop.CustomShortcut{KeyName: fyne.KeyY, Modifier: fyne.KeyModifierShortcutDefault}
	a.window.Canvas().AddShortcut(undoKey, func(fyne.Shortcut) { a.undo() })
	a.window.Canvas().AddShortcut(redoKey, func(fyne.Shortcut) { a.redo() })
}

func (a *App) showAboutDialog() {
	dialog.ShowInformation(
		"About Tape Planner",
		"Tape Planner\n\n"+
			"Splits raw tape lengths into standard class A (300.0 to 360.0 m)\n"+
			"and class B (361.0 to 600.0 m) pieces so that the A:B piece\n"+
			"count is 2:1, 5:2 or 3:2.\n\n"+
			"Version 1.0.0",
		a.window,
	)
}

// Build constructs the full UI and returns the root container.
func (a *App) Build() fyne.CanvasObject {
	a.tapesContainer = container.NewVBox()
	a.refreshTapeList()

	addBtn := widget.NewButtonWithIcon("Add tape", theme.ContentAddIcon(), a.addTape)
	deleteBtn := widget.NewButtonWithIcon("Delete tape", theme.ContentRemoveIcon(), a.deleteLastTape)
	calcBtn := newButtonWithTooltip("Calculate", theme.MediaPlayIcon(), "Search for an accepted A:B ratio", a.runCalculate)
	calcBtn.Importance = widget.HighImportance

	tapesPanel := container.NewBorder(
		container.NewVBox(
			widget.NewLabelWithStyle("Tapes", fyne.TextAlignLeading, fyne.TextStyle{Bold: true}),
			container.NewGridWithColumns(3, addBtn, deleteBtn, calcBtn),
		),
		nil, nil, nil,
		container.NewVScroll(a.tapesContainer),
	)

	a.resultText = widget.NewRichText()
	a.resultText.Wrapping = fyne.TextWrapWord
	a.status = widget.NewLabel("")
	a.barsContainer = container.NewStack(widgets.RenderAllocation(nil))

	resultsPanel := container.NewBorder(
		nil, a.status, nil, nil,
		container.NewVSplit(container.NewVScroll(a.resultText), a.barsContainer),
	)

	split := container.NewHSplit(tapesPanel, resultsPanel)
	split.SetOffset(0.35)

	return fynetooltip.AddWindowToolTipLayer(split, a.window.Canvas())
}

// ─── Tape rows ─────────────────────────────────────────────

func (a *App) refreshTapeList() {
	a.tapesContainer.RemoveAll()

	if len(a.list.Tapes) == 0 {
		a.tapesContainer.Add(widget.NewLabel("No tapes yet. Click 'Add tape' to begin."))
		return
	}

	for i := range a.list.Tapes {
		idx := i
		entry := widget.NewEntry()
		entry.SetPlaceHolder(TapePlaceholder)
		entry.SetText(a.list.Tapes[idx].Raw)
		entry.OnChanged = func(text string) {
			if idx < len(a.list.Tapes) {
				a.list.Tapes[idx].Raw = text
			}
		}
		entry.OnSubmitted = func(string) { a.runCalculate() }

		removeBtn := newIconButtonWithTooltip(theme.DeleteIcon(), "Remove this tape", func() {
			a.removeTape(idx)
		})

		label := widget.NewLabel(fmt.Sprintf("%d.", idx+1))
		a.tapesContainer.Add(container.NewBorder(nil, nil, label, removeBtn, entry))
	}
	a.tapesContainer.Refresh()
}

func (a *App) addTape() {
	a.pushHistory("Add tape")
	a.list.Tapes = append(a.list.Tapes, model.NewTape(""))
	a.refreshTapeList()
}

// deleteLastTape removes the bottom row.
func (a *App) deleteLastTape() {
	if len(a.list.Tapes) == 0 {
		return
	}
	a.removeTape(len(a.list.Tapes) - 1)
}

func (a *App) removeTape(idx int) {
	if idx < 0 || idx >= len(a.list.Tapes) {
		return
	}
	a.pushHistory("Delete tape")
	a.list.Tapes = append(a.list.Tapes[:idx:idx], a.list.Tapes[idx+1:]...)
	a.refreshTapeList()
}

// replaceList swaps in a different tape list and forgets undo history.
func (a *App) replaceList(list model.TapeList) {
	if len(list.Tapes) == 0 {
		list.Tapes = []model.Tape{model.NewTape("")}
	}
	a.list = list
	a.history.Clear()
	a.refreshTapeList()
	a.showReport(nil)
}

// ─── Undo / Redo ───────────────────────────────────────────

func (a *App) pushHistory(label string) {
	a.history.Push(MakeSnapshot(a.list.Tapes, label))
}

func (a *App) undo() {
	snap, ok := a.history.Undo(MakeSnapshot(a.list.Tapes, "current"))
	if !ok {
		return
	}
	a.list.Tapes = snap.Tapes
	a.refreshTapeList()
}

func (a *App) redo() {
	snap, ok := a.history.Redo(MakeSnapshot(a.list.Tapes, "current"))
	if !ok {
		return
	}
	a.list.Tapes = snap.Tapes
	a.refreshTapeList()
}

// ─── Calculation ───────────────────────────────────────────

// runCalculate starts a calculation in the background. Starting a new one
// cancels the previous run and its result is discarded.
func (a *App) runCalculate() {
	if a.cancel != nil {
		a.cancel()
	}
	ctx, cancel := context.WithCancel(context.Background())
	a.cancel = cancel
	a.seq++
	seq := a.seq

	raw := a.list.RawEntries()
	p := a.planner
	a.status.SetText("Calculating...")

	go func() {
		defer cancel()
		report := p.Run(ctx, raw)
		fyne.Do(func() {
			if seq != a.seq {
				return
			}
			a.cancel = nil
			a.showReport(&report)
		})
	}()
}

// showReport renders a finished calculation, or clears the result area when report is nil.
func (a *App) showReport(report *planner.Report) {
	a.report = report
	a.barsContainer.RemoveAll()

	if report == nil {
		a.resultText.Segments = nil
		a.resultText.Refresh()
		a.status.SetText("")
		a.barsContainer.Add(widgets.RenderAllocation(nil))
		return
	}

	a.resultText.Segments = richSegments(report.Lines)
	a.resultText.Refresh()

	if report.Solved() {
		a.barsContainer.Add(widgets.RenderAllocation(&report.Allocation))
		a.status.SetText(fmt.Sprintf("Found after %d search nodes", report.Stats.Nodes))
	} else {
		a.barsContainer.Add(widgets.RenderAllocation(nil))
		a.status.SetText(fmt.Sprintf("%d search nodes", report.Stats.Nodes))
	}
	a.barsContainer.Refresh()
}

// ─── Files ─────────────────────────────────────────────────

func (a *App) saveTapeList() {
	d := dialog.NewFileSave(func(writer fyne.URIWriteCloser, err error) {
		if err != nil || writer == nil {
			return
		}
		defer writer.Close()
		path := writer.URI().Path()
		a.list.Name = strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
		if err := project.Save(path, a.list); err != nil {
			dialog.ShowError(err, a.window)
			return
		}
		a.rememberFile(path)
	}, a.window)
	d.SetFileName(a.list.Name + project.FileExtension)
	d.Show()
}

func (a *App) loadTapeList() {
	d := dialog.NewFileOpen(func(reader fyne.URIReadCloser, err error) {
		if err != nil || reader == nil {
			return
		}
		defer reader.Close()
		path := reader.URI().Path()
		list, err := project.Load(path)
		if err != nil {
			dialog.ShowError(err, a.window)
			return
		}
		a.replaceList(list)
		a.rememberFile(path)
	}, a.window)
	d.Show()
}

func (a *App) rememberFile(path string) {
	a.config.AddRecentFile(path)
	if err := a.saveConfig(); err != nil {
		a.logger.Warn("failed to save config", zap.Error(err))
	}
}

func (a *App) importTapes() {
	dialog.ShowFileOpen(func(reader fyne.URIReadCloser, err error) {
		if err != nil || reader == nil {
			return
		}
		defer reader.Close()
		a.handleImportResult(tapeimporter.ImportFile(reader.URI().Path()))
	}, a.window)
}

func (a *App) handleImportResult(result tapeimporter.ImportResult) {
	if len(result.Errors) > 0 {
		errorMsg := "Errors encountered during import:\n\n" + strings.Join(result.Errors, "\n")
		dialog.ShowError(fmt.Errorf("%s", errorMsg), a.window)
	}
	for _, w := range result.Warnings {
		a.logger.Warn("import warning", zap.String("warning", w))
	}

	if len(result.Tapes) == 0 {
		return
	}

	a.pushHistory("Import tapes")
	// An untouched single empty row is replaced rather than kept.
	if len(a.list.Tapes) == 1 && strings.TrimSpace(a.list.Tapes[0].Raw) == "" {
		a.list.Tapes = nil
	}
	a.list.Tapes = append(a.list.Tapes, result.Tapes...)
	a.refreshTapeList()

	msg := fmt.Sprintf("Imported %d tapes.", len(result.Tapes))
	if len(result.Errors) > 0 {
		msg += fmt.Sprintf("\n\n%d rows had errors and were skipped.", len(result.Errors))
	}
	dialog.ShowInformation("Import Complete", msg, a.window)
}

// exportReport saves the last solved report through write.
func (a *App) exportReport(defaultName string, write func(string, planner.Report) error) {
	if a.report == nil || !a.report.Solved() {
		dialog.ShowInformation("No results", "Run a successful calculation before exporting.", a.window)
		return
	}
	report := *a.report

	d := dialog.NewFileSave(func(writer fyne.URIWriteCloser, err error) {
		if err != nil || writer == nil {
			return
		}
		path := writer.URI().Path()
		writer.Close()
		if err := write(path, report); err != nil {
			dialog.ShowError(err, a.window)
			return
		}
		dialog.ShowInformation("Export Complete", fmt.Sprintf("Saved to %s", path), a.window)
	}, a.window)
	d.SetFileName(defaultName)
	d.Show()
}

// Shutdown cancels a running calculation and stores the session tapes.
func (a *App) Shutdown() {
	if a.cancel != nil {
		a.cancel()
	}
	if err := a.saveConfig(); err != nil {
		a.logger.Warn("failed to save session", zap.Error(err))
	}
	_ = a.logger.Sync()
}
