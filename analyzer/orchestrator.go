// Package analyzer runs an external capture analysis tool and interprets its result
package analyzer

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
)

// Config holds the fixed collaborators of the pipeline
type Config struct {
	ScannerPath string     // executable invoked as "<ScannerPath> <capture>"
	ReportPath  string     // where the tool writes its report on success
	Filter      FileFilter // offered by the selection dialog
}

// DefaultConfig returns the default configuration
func DefaultConfig() Config {
	return Config{
		ScannerPath: "./pcap_scanner.sh",
		ReportPath:  filepath.Join("report", "report.pdf"),
		Filter:      PCAPFilter,
	}
}

// FileSelector solicits a capture path from the user.
// An empty path with a nil error means the user cancelled.
type FileSelector interface {
	SelectFile(ctx context.Context, filter FileFilter) (string, error)
}

// ProcessRunner runs an external program to completion with captured output.
// A non-zero exit status is reported through ProcessResult, not as an error.
type ProcessRunner interface {
	Run(ctx context.Context, name string, args ...string) (*ProcessResult, error)
}

// ArtifactLauncher opens a file with the platform's default application
type ArtifactLauncher interface {
	Launch(path string) error
}

// SelectorFunc adapts a function to FileSelector
type SelectorFunc func(ctx context.Context, filter FileFilter) (string, error)

// SelectFile calls f
func (f SelectorFunc) SelectFile(ctx context.Context, filter FileFilter) (string, error) {
	return f(ctx, filter)
}

// Orchestrator binds selection, tool invocation and report opening into one
// synchronous operation. It keeps no state between runs.
type Orchestrator struct {
	config   Config
	runner   ProcessRunner
	launcher ArtifactLauncher

	onStateChange func(State)
	onLog         func(LogLevel, string)
}

// NewOrchestrator creates a new orchestrator
func NewOrchestrator(config Config, runner ProcessRunner, launcher ArtifactLauncher) *Orchestrator {
	return &Orchestrator{
		config:   config,
		runner:   runner,
		launcher: launcher,
	}
}

// SetOnStateChange sets the callback for pipeline state transitions
func (o *Orchestrator) SetOnStateChange(callback func(State)) {
	o.onStateChange = callback
}

// SetOnLog sets the callback for log messages
func (o *Orchestrator) SetOnLog(callback func(LogLevel, string)) {
	o.onLog = callback
}

// Config returns the orchestrator configuration
func (o *Orchestrator) Config() Config {
	return o.config
}

// Run performs the full pipeline: select a capture, analyze it, open the report.
func (o *Orchestrator) Run(ctx context.Context, selector FileSelector) (outcome Outcome) {
	defer o.recoverFault(&outcome, "")

	o.setState(StateSelecting)
	path, err := selector.SelectFile(ctx, o.config.Filter)
	if err != nil {
		return o.fault("", fmt.Errorf("file selection failed: %w", err))
	}
	return o.Analyze(ctx, path)
}

// Analyze runs the tool on an already selected path. An empty path is a
// cancelled selection and ends the run without invoking anything.
func (o *Orchestrator) Analyze(ctx context.Context, path string) (outcome Outcome) {
	defer o.recoverFault(&outcome, path)

	if path == "" {
		o.log(LogDebug, "Selection cancelled")
		o.setState(StateIdle)
		return Outcome{Kind: OutcomeCancelled}
	}

	o.setState(StateInvoking)
	o.log(LogInfo, "Analyzing "+path)

	if o.runner == nil {
		return o.fault(path, errors.New("no process runner configured"))
	}
	result, err := o.runner.Run(ctx, o.config.ScannerPath, path)
	if err != nil {
		return o.fault(path, err)
	}

	if !result.Success() {
		o.log(LogError, fmt.Sprintf("Scanner exited with status %d", result.ExitCode))
		o.setState(StateResolved)
		return Outcome{
			Kind:      OutcomeToolFailure,
			InputPath: path,
			Result:    result,
			Err:       &ToolError{ExitCode: result.ExitCode, Stderr: result.Stderr},
		}
	}

	o.log(LogInfo, fmt.Sprintf("Scanner finished in %s", result.Duration))

	if o.launcher == nil {
		return o.fault(path, errors.New("no artifact launcher configured"))
	}
	if err := o.launcher.Launch(o.config.ReportPath); err != nil {
		return o.fault(path, err)
	}
	o.log(LogInfo, "Opened report "+o.config.ReportPath)

	o.setState(StateResolved)
	return Outcome{
		Kind:       OutcomeSuccess,
		InputPath:  path,
		ReportPath: o.config.ReportPath,
		Result:     result,
	}
}

func (o *Orchestrator) fault(path string, err error) Outcome {
	o.log(LogError, err.Error())
	o.setState(StateResolved)
	return Outcome{Kind: OutcomeFault, InputPath: path, Err: err}
}

// recoverFault turns a panicking collaborator into a fault outcome
func (o *Orchestrator) recoverFault(outcome *Outcome, path string) {
	if r := recover(); r != nil {
		var err error
		switch v := r.(type) {
		case error:
			err = v
		default:
			err = fmt.Errorf("%v", v)
		}
		*outcome = o.fault(path, err)
	}
}

func (o *Orchestrator) setState(state State) {
	if o.onStateChange != nil {
		o.onStateChange(state)
	}
}

func (o *Orchestrator) log(level LogLevel, message string) {
	if o.onLog != nil {
		o.onLog(level, message)
	}
}
