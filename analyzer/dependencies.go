package analyzer

import (
	"fmt"
	"os"
	"os/exec"
	"runtime"
	"sort"
	"strings"
)

// DependencyStatus represents the status of a single external tool
type DependencyStatus struct {
	Name        string
	Available   bool
	Path        string
	Required    bool
	Description string
	InstallHint string
}

// DependencyChecker checks that the scanner and the report opener can be started
type DependencyChecker struct {
	scannerPath string
	openerName  string
	goos        string
	results     map[string]*DependencyStatus
}

// NewDependencyChecker creates a checker for the given scanner and opener
func NewDependencyChecker(scannerPath string, launcher *CommandLauncher) *DependencyChecker {
	opener := ""
	if launcher != nil {
		opener = launcher.Name
	}
	return &DependencyChecker{
		scannerPath: scannerPath,
		openerName:  opener,
		goos:        runtime.GOOS,
		results:     make(map[string]*DependencyStatus),
	}
}

// CheckAll checks all dependencies and returns their statuses.
// The opener is only checked when one was given.
func (dc *DependencyChecker) CheckAll() map[string]*DependencyStatus {
	dc.checkScanner()
	if dc.openerName != "" {
		dc.checkOpener()
	}
	return dc.results
}

// checkScanner resolves the analysis executable
func (dc *DependencyChecker) checkScanner() {
	status := &DependencyStatus{
		Name:        "PCAP scanner",
		Required:    true,
		Description: "Analyzes the capture and writes the PDF report",
		InstallHint: fmt.Sprintf("Place %s next to the application and make it executable", dc.scannerPath),
	}

	if path, err := resolveExecutable(dc.scannerPath); err == nil {
		status.Available = true
		status.Path = path
	}

	dc.results["scanner"] = status
}

// checkOpener resolves the default-application launcher
func (dc *DependencyChecker) checkOpener() {
	status := &DependencyStatus{
		Name:        "Report opener",
		Required:    false,
		Description: "Opens the generated report in the default viewer",
		InstallHint: dc.getOpenerInstallHint(),
	}

	if path, err := exec.LookPath(dc.openerName); err == nil {
		status.Available = true
		status.Path = path
	}

	dc.results["opener"] = status
}

// resolveExecutable finds name on PATH, or checks it directly when it
// contains a path separator
func resolveExecutable(name string) (string, error) {
	if name == "" {
		return "", fmt.Errorf("empty executable name")
	}
	if !strings.ContainsAny(name, `/\`) {
		return exec.LookPath(name)
	}
	info, err := os.Stat(name)
	if err != nil {
		return "", err
	}
	if info.IsDir() {
		return "", fmt.Errorf("%s is a directory", name)
	}
	if runtime.GOOS != "windows" && info.Mode().Perm()&0111 == 0 {
		return "", fmt.Errorf("%s is not executable", name)
	}
	return name, nil
}

// getOpenerInstallHint returns platform-specific install instructions
func (dc *DependencyChecker) getOpenerInstallHint() string {
	switch dc.goos {
	case "darwin":
		return "open is part of macOS"
	case "linux":
		return "sudo apt install xdg-utils"
	case "windows":
		return "start is built into cmd.exe"
	default:
		return "Install xdg-utils for your system"
	}
}

// IsScannerAvailable returns true if the scanner can be executed
func (dc *DependencyChecker) IsScannerAvailable() bool {
	if dc.results["scanner"] == nil {
		dc.checkScanner()
	}
	return dc.results["scanner"].Available
}

// IsOpenerAvailable returns true if the report opener is on PATH
func (dc *DependencyChecker) IsOpenerAvailable() bool {
	if dc.results["opener"] == nil {
		dc.checkOpener()
	}
	return dc.results["opener"].Available
}

// GetMissingDependencies returns dependencies that are not available, sorted by name
func (dc *DependencyChecker) GetMissingDependencies() []*DependencyStatus {
	var missing []*DependencyStatus
	for _, status := range dc.sorted() {
		if !status.Available {
			missing = append(missing, status)
		}
	}
	return missing
}

func (dc *DependencyChecker) sorted() []*DependencyStatus {
	keys := make([]string, 0, len(dc.results))
	for k := range dc.results {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	statuses := make([]*DependencyStatus, 0, len(keys))
	for _, k := range keys {
		statuses = append(statuses, dc.results[k])
	}
	return statuses
}

// FormatMissingWarning returns a one-line warning about missing dependencies
func (dc *DependencyChecker) FormatMissingWarning() string {
	missing := dc.GetMissingDependencies()
	if len(missing) == 0 {
		return ""
	}

	parts := make([]string, 0, len(missing))
	for _, status := range missing {
		parts = append(parts, fmt.Sprintf("%s not found (%s)", status.Name, status.InstallHint))
	}
	return strings.Join(parts, "; ")
}
