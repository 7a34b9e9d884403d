package controller

import (
	"encoding/json"
	"os"
	"path/filepath"
	"runtime"

	"github.com/kacebover/pcap-scanner/analyzer"
)

const maxRecentFiles = 10

// AppConfig holds all application configuration
type AppConfig struct {
	// Analysis settings
	ScannerPath      string   `json:"scanner_path"`
	ReportPath       string   `json:"report_path"`
	FilterExtensions []string `json:"filter_extensions"`

	// Window settings
	WindowWidth  int `json:"window_width"`
	WindowHeight int `json:"window_height"`

	// Selection history
	LastDir     string   `json:"last_dir"`
	RecentFiles []string `json:"recent_files"`
}

// DefaultConfig returns the default configuration
func DefaultConfig() *AppConfig {
	engine := analyzer.DefaultConfig()

	return &AppConfig{
		ScannerPath:      engine.ScannerPath,
		ReportPath:       engine.ReportPath,
		FilterExtensions: append([]string(nil), engine.Filter.Extensions...),

		WindowWidth:  420,
		WindowHeight: 160,

		RecentFiles: []string{},
	}
}

// getConfigDir returns the configuration directory path
func getConfigDir() string {
	var configDir string

	switch runtime.GOOS {
	case "windows":
		configDir = os.Getenv("APPDATA")
		if configDir == "" {
			configDir = filepath.Join(os.Getenv("USERPROFILE"), "AppData", "Roaming")
		}
	case "darwin":
		homeDir, _ := os.UserHomeDir()
		configDir = filepath.Join(homeDir, "Library", "Application Support")
	default: // linux and others
		configDir = os.Getenv("XDG_CONFIG_HOME")
		if configDir == "" {
			homeDir, _ := os.UserHomeDir()
			configDir = filepath.Join(homeDir, ".config")
		}
	}

	return filepath.Join(configDir, "PCAPScanner")
}

// getConfigPath returns the full path to the config file
func getConfigPath() string {
	return filepath.Join(getConfigDir(), "config.json")
}

// LoadConfig loads configuration from disk or returns defaults
func LoadConfig() *AppConfig {
	config := DefaultConfig()

	data, err := os.ReadFile(getConfigPath())
	if err != nil {
		return config
	}

	if err := json.Unmarshal(data, config); err != nil {
		return DefaultConfig()
	}

	config.ValidateConfig()
	return config
}

// SaveConfig saves configuration to disk
func SaveConfig(config *AppConfig) error {
	data, err := json.MarshalIndent(config, "", "  ")
	if err != nil {
		return err
	}

	if err := os.MkdirAll(getConfigDir(), 0755); err != nil {
		return err
	}
	return os.WriteFile(getConfigPath(), data, 0644)
}

// AddRecentFile records a selected capture and its directory
func (c *AppConfig) AddRecentFile(path string) {
	// Remove if already exists
	newFiles := make([]string, 0, len(c.RecentFiles)+1)
	newFiles = append(newFiles, path)

	for _, f := range c.RecentFiles {
		if f != path {
			newFiles = append(newFiles, f)
		}
	}

	if len(newFiles) > maxRecentFiles {
		newFiles = newFiles[:maxRecentFiles]
	}

	c.RecentFiles = newFiles
	c.LastDir = filepath.Dir(path)
}

// ValidateConfig normalizes configuration values, restoring defaults for blanks
func (c *AppConfig) ValidateConfig() {
	defaults := DefaultConfig()

	if c.ScannerPath == "" {
		c.ScannerPath = defaults.ScannerPath
	}
	if c.ReportPath == "" {
		c.ReportPath = defaults.ReportPath
	}
	if len(c.FilterExtensions) == 0 {
		c.FilterExtensions = defaults.FilterExtensions
	}

	if c.WindowWidth < 320 {
		c.WindowWidth = 320
	}
	if c.WindowHeight < 120 {
		c.WindowHeight = 120
	}

	if len(c.RecentFiles) > maxRecentFiles {
		c.RecentFiles = c.RecentFiles[:maxRecentFiles]
	}
}

// Clone creates a deep copy of the config
func (c *AppConfig) Clone() *AppConfig {
	clone := *c

	if c.FilterExtensions != nil {
		clone.FilterExtensions = make([]string, len(c.FilterExtensions))
		copy(clone.FilterExtensions, c.FilterExtensions)
	}
	if c.RecentFiles != nil {
		clone.RecentFiles = make([]string, len(c.RecentFiles))
		copy(clone.RecentFiles, c.RecentFiles)
	}

	return &clone
}

// EngineConfig converts the settings into the orchestrator's configuration
func (c *AppConfig) EngineConfig() analyzer.Config {
	return analyzer.Config{
		ScannerPath: c.ScannerPath,
		ReportPath:  c.ReportPath,
		Filter: analyzer.FileFilter{
			Description: analyzer.PCAPFilter.Description,
			Extensions:  append([]string(nil), c.FilterExtensions...),
		},
	}
}
