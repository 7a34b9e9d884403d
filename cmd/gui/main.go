package main

import (
	"context"
	"fmt"
	"strings"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/app"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/lang"
	"fyne.io/fyne/v2/storage"
	"fyne.io/fyne/v2/theme"
	"fyne.io/fyne/v2/widget"
	"github.com/kacebover/pcap-scanner/analyzer"
	"github.com/kacebover/pcap-scanner/gui/controller"
)

// dialogPresenter shows outcomes as Fyne modal dialogs
type dialogPresenter struct {
	window fyne.Window
}

func (p dialogPresenter) ShowInformation(title, message string) {
	dialog.ShowInformation(title, message, p.window)
}

// ShowError shows err's text unchanged under title.
// dialog.ShowError is not used because it capitalizes the message.
func (p dialogPresenter) ShowError(title string, err error) {
	d, _ := newErrorDialog(title, err, p.window)
	d.Show()
}

func newErrorDialog(title string, err error, parent fyne.Window) (dialog.Dialog, *widget.Label) {
	body := widget.NewLabel(err.Error())
	body.Wrapping = fyne.TextWrapWord

	content := container.NewBorder(nil, nil, widget.NewIcon(theme.ErrorIcon()), nil, body)
	return dialog.NewCustom(title, lang.L("OK"), content, parent), body
}

// ScannerGUI represents the GUI application
type ScannerGUI struct {
	app       fyne.App
	window    fyne.Window
	ctrl      *controller.AnalysisController
	presenter controller.Presenter

	// Buttons
	analyzeButton  *widget.Button
	rerunButton    *widget.Button
	settingsButton *widget.Button
	helpButton     *widget.Button

	// Recent captures
	recentSelect *widget.Select

	statusLabel *widget.Label
}

// NewScannerGUI creates a new GUI instance
func NewScannerGUI() *ScannerGUI {
	a := app.NewWithID("com.pcapscanner.app")
	return newScannerGUI(a, controller.NewAnalysisController())
}

func newScannerGUI(a fyne.App, ctrl *controller.AnalysisController) *ScannerGUI {
	cfg := ctrl.GetConfig()

	w := a.NewWindow("PCAP Scanner GUI")
	w.Resize(fyne.NewSize(float32(cfg.WindowWidth), float32(cfg.WindowHeight)))
	w.CenterOnScreen()

	sg := &ScannerGUI{
		app:       a,
		window:    w,
		ctrl:      ctrl,
		presenter: dialogPresenter{window: w},
	}

	sg.buildUI()

	ctrl.SetOnLogMessage(func(level controller.LogLevel, message string) {
		if level == controller.LogDebug {
			return
		}
		sg.statusLabel.SetText(message)
	})

	if warning := ctrl.CheckDependencies(); warning != "" {
		sg.statusLabel.SetText("⚠️ " + warning)
	}
	return sg
}

func (sg *ScannerGUI) buildUI() {
	sg.analyzeButton = widget.NewButton("Select PCAP File and Analyze", sg.onAnalyze)
	sg.analyzeButton.Importance = widget.HighImportance

	sg.recentSelect = widget.NewSelect(nil, nil)
	sg.recentSelect.PlaceHolder = "Recent captures"
	sg.rerunButton = widget.NewButton("Analyze Again", sg.onRerun)
	sg.refreshRecent()

	sg.settingsButton = widget.NewButton("Settings", sg.showSettings)
	sg.settingsButton.Importance = widget.LowImportance

	sg.helpButton = widget.NewButton("Help", sg.showHelp)
	sg.helpButton.Importance = widget.LowImportance

	sg.statusLabel = widget.NewLabel("Ready")
	sg.statusLabel.Wrapping = fyne.TextWrapWord

	recentRow := container.NewBorder(nil, nil, nil, sg.rerunButton, sg.recentSelect)
	footer := container.NewBorder(nil, nil, nil,
		container.NewHBox(sg.settingsButton, sg.helpButton),
		sg.statusLabel,
	)

	content := container.NewPadded(container.NewVBox(
		sg.analyzeButton,
		recentRow,
		widget.NewSeparator(),
		footer,
	))

	sg.window.SetContent(content)
}

// onAnalyze opens the capture selection dialog
func (sg *ScannerGUI) onAnalyze() {
	if sg.ctrl.IsRunning() {
		return
	}

	fd := dialog.NewFileOpen(func(reader fyne.URIReadCloser, err error) {
		if err != nil {
			sg.ctrl.Present(analyzer.Outcome{Kind: analyzer.OutcomeFault, Err: err}, sg.presenter)
			return
		}
		path := ""
		if reader != nil {
			path = reader.URI().Path()
			_ = reader.Close()
		}
		sg.analyze(path)
	}, sg.window)

	fd.SetFilter(storage.NewExtensionFileFilter(sg.ctrl.Filter().Extensions))
	if dir := sg.ctrl.GetConfig().LastDir; dir != "" {
		if lister, err := storage.ListerForURI(storage.NewFileURI(dir)); err == nil {
			fd.SetLocation(lister)
		}
	}
	fd.Show()
}

// onRerun analyzes the capture picked from the recent list
func (sg *ScannerGUI) onRerun() {
	if sg.recentSelect.Selected == "" {
		return
	}
	sg.analyze(sg.recentSelect.Selected)
}

// analyze runs the scanner on the UI goroutine. The window does not repaint
// until the scanner exits.
func (sg *ScannerGUI) analyze(path string) {
	sg.analyzeButton.Disable()
	sg.rerunButton.Disable()
	defer func() {
		sg.analyzeButton.Enable()
		sg.refreshRecent()
	}()

	outcome := sg.ctrl.Analyze(context.Background(), path)

	switch outcome.Kind {
	case analyzer.OutcomeCancelled:
		sg.statusLabel.SetText("Ready")
	case analyzer.OutcomeSuccess:
		sg.statusLabel.SetText("✅ Report: " + outcome.ReportPath)
	default:
		sg.statusLabel.SetText("❌ Analysis failed")
	}

	sg.ctrl.Present(outcome, sg.presenter)
}

func (sg *ScannerGUI) refreshRecent() {
	recent := sg.ctrl.GetConfig().RecentFiles
	sg.recentSelect.SetOptions(recent)
	if len(recent) == 0 {
		sg.recentSelect.Disable()
		sg.rerunButton.Disable()
		return
	}
	sg.recentSelect.Enable()
	sg.rerunButton.Enable()
}

func (sg *ScannerGUI) showSettings() {
	cfg := sg.ctrl.GetConfig()

	scannerEntry := widget.NewEntry()
	scannerEntry.SetText(cfg.ScannerPath)

	reportEntry := widget.NewEntry()
	reportEntry.SetText(cfg.ReportPath)

	extsEntry := widget.NewEntry()
	extsEntry.SetText(strings.Join(cfg.FilterExtensions, ", "))

	formItems := []*widget.FormItem{
		widget.NewFormItem("Scanner", scannerEntry),
		widget.NewFormItem("Report", reportEntry),
		widget.NewFormItem("Extensions", extsEntry),
	}

	dialog.ShowForm("Settings", "Save", "Cancel", formItems, func(confirm bool) {
		if !confirm {
			return
		}
		if err := sg.applySettings(scannerEntry.Text, reportEntry.Text, extsEntry.Text); err != nil {
			dialog.ShowError(err, sg.window)
			return
		}
		sg.statusLabel.SetText("✅ Settings saved")
	}, sg.window)
}

// applySettings updates the controller configuration from form values
func (sg *ScannerGUI) applySettings(scanner, report, exts string) error {
	cfg := sg.ctrl.GetConfig().Clone()
	cfg.ScannerPath = strings.TrimSpace(scanner)
	cfg.ReportPath = strings.TrimSpace(report)
	cfg.FilterExtensions = parseExtensions(exts)

	if err := sg.ctrl.UpdateConfig(cfg); err != nil {
		return fmt.Errorf("failed to save settings: %w", err)
	}
	return nil
}

// parseExtensions splits a comma separated list and adds missing dots
func parseExtensions(s string) []string {
	var exts []string
	for _, e := range strings.Split(s, ",") {
		e = strings.ToLower(strings.TrimSpace(e))
		e = strings.TrimPrefix(e, "*")
		if e == "" || e == "." {
			continue
		}
		if !strings.HasPrefix(e, ".") {
			e = "." + e
		}
		exts = append(exts, e)
	}
	return exts
}

func (sg *ScannerGUI) showHelp() {
	cfg := sg.ctrl.GetConfig()
	helpText := fmt.Sprintf(`Select a capture file (%s) to analyze it.

The scanner %s is run with the capture path.
On success the report %s is opened in the default viewer.
On failure the scanner's error output is shown.`,
		strings.Join(cfg.FilterExtensions, ", "), cfg.ScannerPath, cfg.ReportPath)

	dialog.ShowInformation("Help", helpText, sg.window)
}

func (sg *ScannerGUI) Run() {
	sg.window.ShowAndRun()
}

func main() {
	gui := NewScannerGUI()
	gui.Run()
}
