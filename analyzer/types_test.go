package analyzer

import (
	"errors"
	"testing"
)

// TestFileFilter_Match tests extension matching
func TestFileFilter_Match(t *testing.T) {
	tests := []struct {
		path     string
		expected bool
	}{
		{"/tmp/sample.pcap", true},
		{"/tmp/SAMPLE.PCAP", true},
		{"capture.pcapng", false},
		{"/tmp/report.pdf", false},
		{"/tmp/noext", false},
		{"", false},
	}

	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			if got := PCAPFilter.Match(tt.path); got != tt.expected {
				t.Errorf("Match(%q) = %v, want %v", tt.path, got, tt.expected)
			}
		})
	}

	if !(FileFilter{}).Match("anything.bin") {
		t.Error("empty filter should match everything")
	}
}

// TestFileFilter_Pattern tests glob rendering
func TestFileFilter_Pattern(t *testing.T) {
	if got := PCAPFilter.Pattern(); got != "*.pcap" {
		t.Errorf("Pattern() = %q, want *.pcap", got)
	}
	f := FileFilter{Extensions: []string{".pcap", ".cap"}}
	if got := f.Pattern(); got != "*.pcap;*.cap" {
		t.Errorf("Pattern() = %q", got)
	}
}

// TestToolError tests that the message is the raw stderr
func TestToolError(t *testing.T) {
	var err error = &ToolError{ExitCode: 1, Stderr: "malformed capture"}
	if err.Error() != "malformed capture" {
		t.Errorf("Error() = %q", err.Error())
	}

	empty := Outcome{Kind: OutcomeToolFailure, Err: &ToolError{ExitCode: 1}}
	if empty.Message() != "" {
		t.Errorf("Message() = %q, want empty", empty.Message())
	}

	var toolErr *ToolError
	if !errors.As(empty.Err, &toolErr) {
		t.Error("errors.As should find *ToolError")
	}
}

// TestOutcomeKind_String tests kind names
func TestOutcomeKind_String(t *testing.T) {
	tests := map[OutcomeKind]string{
		OutcomeCancelled:   "cancelled",
		OutcomeSuccess:     "success",
		OutcomeToolFailure: "tool-failure",
		OutcomeFault:       "fault",
		OutcomeKind(42):    "unknown",
	}
	for kind, want := range tests {
		if got := kind.String(); got != want {
			t.Errorf("%d.String() = %q, want %q", int(kind), got, want)
		}
	}
}

// TestProcessResult_Success tests nil safety
func TestProcessResult_Success(t *testing.T) {
	var r *ProcessResult
	if r.Success() {
		t.Error("nil result should not be successful")
	}
	if !(&ProcessResult{}).Success() {
		t.Error("exit 0 should be successful")
	}
}
