package analyzer

import (
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"testing"
)

// TestDependencyChecker_Scanner tests scanner resolution
func TestDependencyChecker_Scanner(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("permission bits are not meaningful on Windows")
	}
	dir := t.TempDir()

	executable := filepath.Join(dir, "pcap_scanner.sh")
	if err := os.WriteFile(executable, []byte("#!/bin/sh\n"), 0755); err != nil {
		t.Fatal(err)
	}
	plain := filepath.Join(dir, "plain.sh")
	if err := os.WriteFile(plain, []byte("#!/bin/sh\n"), 0644); err != nil {
		t.Fatal(err)
	}

	tests := []struct {
		name     string
		path     string
		expected bool
	}{
		{"executable", executable, true},
		{"not executable", plain, false},
		{"missing", filepath.Join(dir, "missing.sh"), false},
		{"directory", dir + string(filepath.Separator), false},
		{"empty", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			dc := NewDependencyChecker(tt.path, nil)
			if got := dc.IsScannerAvailable(); got != tt.expected {
				t.Errorf("IsScannerAvailable() = %v, want %v", got, tt.expected)
			}
		})
	}
}

// TestDependencyChecker_MissingWarning tests warning formatting
func TestDependencyChecker_MissingWarning(t *testing.T) {
	dc := NewDependencyChecker(filepath.Join(t.TempDir(), "missing.sh"),
		&CommandLauncher{Name: "definitely-not-an-opener-xyz"})
	results := dc.CheckAll()

	if len(results) != 2 {
		t.Fatalf("CheckAll returned %d results, want 2", len(results))
	}

	missing := dc.GetMissingDependencies()
	if len(missing) != 2 {
		t.Fatalf("missing = %d, want 2", len(missing))
	}
	// sorted by key: opener before scanner
	if missing[0].Name != "Report opener" || missing[1].Name != "PCAP scanner" {
		t.Errorf("unexpected order: %s, %s", missing[0].Name, missing[1].Name)
	}

	warning := dc.FormatMissingWarning()
	if !strings.Contains(warning, "PCAP scanner not found") {
		t.Errorf("warning missing scanner: %q", warning)
	}
	if dc.IsOpenerAvailable() {
		t.Error("opener should not be available")
	}
}

// TestDependencyChecker_NoWarningWhenPresent tests the all-available case
func TestDependencyChecker_NoWarningWhenPresent(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("uses POSIX utilities")
	}
	script := filepath.Join(t.TempDir(), "scan.sh")
	if err := os.WriteFile(script, []byte("#!/bin/sh\n"), 0755); err != nil {
		t.Fatal(err)
	}

	dc := NewDependencyChecker(script, &CommandLauncher{Name: "sh"})
	dc.CheckAll()
	if w := dc.FormatMissingWarning(); w != "" {
		t.Errorf("FormatMissingWarning() = %q, want empty", w)
	}
}
