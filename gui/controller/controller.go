// Package controller provides the bridge between UI and the analysis pipeline
package controller

import (
	"context"
	"runtime"
	"sync"

	"github.com/kacebover/pcap-scanner/analyzer"
)

// Dialog texts for terminal outcomes
const (
	SuccessTitle   = "Success"
	SuccessMessage = "Analysis complete! Report opened."
	ErrorTitle     = "Error"
)

// LogLevel represents log message severity
type LogLevel = analyzer.LogLevel

const (
	LogInfo    = analyzer.LogInfo
	LogWarning = analyzer.LogWarning
	LogError   = analyzer.LogError
	LogDebug   = analyzer.LogDebug
)

// Presenter shows modal dialogs to the user
type Presenter interface {
	ShowInformation(title, message string)
	ShowError(title string, err error)
}

// AnalysisController runs analyses and maps their outcomes to dialogs
type AnalysisController struct {
	config   *AppConfig
	runner   analyzer.ProcessRunner
	launcher analyzer.ArtifactLauncher
	orch     *analyzer.Orchestrator

	saveConfig func(*AppConfig) error

	// Callbacks
	onLogMessage  func(LogLevel, string)
	onStateChange func(analyzer.State)
	onComplete    func(analyzer.Outcome)

	mu      sync.Mutex
	running bool
}

// NewAnalysisController creates a controller using the saved configuration,
// the exec runner and the host platform's opener
func NewAnalysisController() *AnalysisController {
	return NewAnalysisControllerWith(LoadConfig(), analyzer.NewExecRunner(), analyzer.NewLauncher(runtime.GOOS))
}

// NewAnalysisControllerWith creates a controller with explicit collaborators
func NewAnalysisControllerWith(config *AppConfig, runner analyzer.ProcessRunner, launcher analyzer.ArtifactLauncher) *AnalysisController {
	if config == nil {
		config = DefaultConfig()
	}
	ctrl := &AnalysisController{
		config:     config,
		runner:     runner,
		launcher:   launcher,
		saveConfig: SaveConfig,
	}
	ctrl.rebuild()
	return ctrl
}

// rebuild recreates the orchestrator after a configuration change
func (ac *AnalysisController) rebuild() {
	ac.orch = analyzer.NewOrchestrator(ac.config.EngineConfig(), ac.runner, ac.launcher)
	ac.orch.SetOnLog(ac.log)
	ac.orch.SetOnStateChange(func(s analyzer.State) {
		if ac.onStateChange != nil {
			ac.onStateChange(s)
		}
	})
}

// SetOnLogMessage sets the callback for log messages
func (ac *AnalysisController) SetOnLogMessage(callback func(LogLevel, string)) {
	ac.onLogMessage = callback
}

// SetOnStateChange sets the callback for state changes
func (ac *AnalysisController) SetOnStateChange(callback func(analyzer.State)) {
	ac.onStateChange = callback
}

// SetOnComplete sets the callback invoked with every terminal outcome
func (ac *AnalysisController) SetOnComplete(callback func(analyzer.Outcome)) {
	ac.onComplete = callback
}

// GetConfig returns the current configuration
func (ac *AnalysisController) GetConfig() *AppConfig {
	return ac.config
}

// Filter returns the selection filter for the file dialog
func (ac *AnalysisController) Filter() analyzer.FileFilter {
	return ac.orch.Config().Filter
}

// UpdateConfig updates and saves configuration
func (ac *AnalysisController) UpdateConfig(config *AppConfig) error {
	config.ValidateConfig()
	ac.config = config
	ac.rebuild()
	return ac.saveConfig(config)
}

// IsRunning reports whether an analysis is in flight
func (ac *AnalysisController) IsRunning() bool {
	ac.mu.Lock()
	defer ac.mu.Unlock()
	return ac.running
}

// Run performs selection and analysis with the given selector
func (ac *AnalysisController) Run(ctx context.Context, selector analyzer.FileSelector) analyzer.Outcome {
	if !ac.begin() {
		return analyzer.Outcome{Kind: analyzer.OutcomeCancelled}
	}
	defer ac.end()
	return ac.finish(ac.orch.Run(ctx, selector))
}

// Analyze runs the scanner on a path chosen by a callback-driven dialog
func (ac *AnalysisController) Analyze(ctx context.Context, path string) analyzer.Outcome {
	if !ac.begin() {
		return analyzer.Outcome{Kind: analyzer.OutcomeCancelled}
	}
	defer ac.end()
	return ac.finish(ac.orch.Analyze(ctx, path))
}

func (ac *AnalysisController) begin() bool {
	ac.mu.Lock()
	busy := ac.running
	ac.running = true
	ac.mu.Unlock()

	if busy {
		ac.log(LogWarning, "Analysis already running")
		return false
	}
	return true
}

func (ac *AnalysisController) end() {
	ac.mu.Lock()
	ac.running = false
	ac.mu.Unlock()
}

func (ac *AnalysisController) finish(outcome analyzer.Outcome) analyzer.Outcome {
	if outcome.InputPath != "" {
		ac.config.AddRecentFile(outcome.InputPath)
		if err := ac.saveConfig(ac.config); err != nil {
			ac.log(LogWarning, "Failed to save history: "+err.Error())
		}
	}
	if ac.onComplete != nil {
		ac.onComplete(outcome)
	}
	return outcome
}

// Present shows exactly one dialog for a terminal outcome, none for a cancel
func (ac *AnalysisController) Present(outcome analyzer.Outcome, p Presenter) {
	switch outcome.Kind {
	case analyzer.OutcomeSuccess:
		p.ShowInformation(SuccessTitle, SuccessMessage)
	case analyzer.OutcomeToolFailure, analyzer.OutcomeFault:
		p.ShowError(ErrorTitle, outcome.Err)
	}
}

// CheckDependencies returns a warning for missing external tools, or ""
func (ac *AnalysisController) CheckDependencies() string {
	var launcher *analyzer.CommandLauncher
	if cl, ok := ac.launcher.(*analyzer.CommandLauncher); ok {
		launcher = cl
	}
	dc := analyzer.NewDependencyChecker(ac.config.ScannerPath, launcher)
	dc.CheckAll()
	warning := dc.FormatMissingWarning()
	if warning != "" {
		ac.log(LogWarning, warning)
	}
	return warning
}

func (ac *AnalysisController) log(level LogLevel, message string) {
	if ac.onLogMessage != nil {
		ac.onLogMessage(level, message)
	}
}
