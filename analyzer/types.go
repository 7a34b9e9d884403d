package analyzer

import (
	"path/filepath"
	"strings"
	"time"
)

// State represents the orchestrator's position in the analysis pipeline
type State int

const (
	StateIdle State = iota
	StateSelecting
	StateInvoking
	StateResolved
)

func (s State) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateSelecting:
		return "selecting"
	case StateInvoking:
		return "invoking"
	case StateResolved:
		return "resolved"
	default:
		return "unknown"
	}
}

// LogLevel represents log message severity
type LogLevel int

const (
	LogInfo LogLevel = iota
	LogWarning
	LogError
	LogDebug
)

func (l LogLevel) String() string {
	switch l {
	case LogInfo:
		return "INFO"
	case LogWarning:
		return "WARN"
	case LogError:
		return "ERROR"
	case LogDebug:
		return "DEBUG"
	default:
		return "?"
	}
}

// FileFilter restricts file selection to a set of extensions
type FileFilter struct {
	Description string
	Extensions  []string // with leading dot, e.g. ".pcap"
}

// PCAPFilter is the filter offered by the capture selection dialog
var PCAPFilter = FileFilter{
	Description: "PCAP Files",
	Extensions:  []string{".pcap"},
}

// Match reports whether path has one of the filter's extensions.
// An empty filter matches everything.
func (f FileFilter) Match(path string) bool {
	if len(f.Extensions) == 0 {
		return true
	}
	ext := strings.ToLower(filepath.Ext(path))
	for _, e := range f.Extensions {
		if strings.ToLower(e) == ext {
			return true
		}
	}
	return false
}

// Pattern returns the filter as a glob list, e.g. "*.pcap"
func (f FileFilter) Pattern() string {
	patterns := make([]string, 0, len(f.Extensions))
	for _, e := range f.Extensions {
		patterns = append(patterns, "*"+e)
	}
	return strings.Join(patterns, ";")
}

// ProcessResult holds the captured outcome of one external tool run
type ProcessResult struct {
	ExitCode int
	Stdout   string
	Stderr   string
	Duration time.Duration
}

// Success reports whether the tool exited with status 0
func (r *ProcessResult) Success() bool {
	return r != nil && r.ExitCode == 0
}

// OutcomeKind distinguishes the terminal results of a run
type OutcomeKind int

const (
	// OutcomeCancelled means the user dismissed the file dialog
	OutcomeCancelled OutcomeKind = iota
	// OutcomeSuccess means the tool exited 0 and the report was handed to the launcher
	OutcomeSuccess
	// OutcomeToolFailure means the tool exited non-zero
	OutcomeToolFailure
	// OutcomeFault means the invocation machinery itself failed
	OutcomeFault
)

func (k OutcomeKind) String() string {
	switch k {
	case OutcomeCancelled:
		return "cancelled"
	case OutcomeSuccess:
		return "success"
	case OutcomeToolFailure:
		return "tool-failure"
	case OutcomeFault:
		return "fault"
	default:
		return "unknown"
	}
}

// Outcome is the result of a single "run analysis" activation
type Outcome struct {
	Kind       OutcomeKind
	InputPath  string
	ReportPath string
	Result     *ProcessResult // nil unless the tool ran to completion
	Err        error          // *ToolError for tool failures, the fault otherwise
}

// Message returns the text shown to the user for failed outcomes
func (o Outcome) Message() string {
	if o.Err == nil {
		return ""
	}
	return o.Err.Error()
}

// IsError reports whether the outcome should be surfaced as an error
func (o Outcome) IsError() bool {
	return o.Kind == OutcomeToolFailure || o.Kind == OutcomeFault
}

// ToolError is a failure reported by the analysis tool through its exit status.
// Its text is exactly what the tool wrote to stderr, possibly empty.
type ToolError struct {
	ExitCode int
	Stderr   string
}

func (e *ToolError) Error() string {
	return e.Stderr
}
