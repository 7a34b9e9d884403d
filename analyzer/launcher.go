package analyzer

import (
	"fmt"
	"os/exec"
)

// CommandLauncher opens artifacts by starting a platform opener command
type CommandLauncher struct {
	Name string
	Args []string // placed before the artifact path
}

// NewLauncher returns the default-application opener for goos
func NewLauncher(goos string) *CommandLauncher {
	switch goos {
	case "darwin":
		return &CommandLauncher{Name: "open"}
	case "windows":
		// the empty argument is the window title consumed by start
		return &CommandLauncher{Name: "cmd", Args: []string{"/c", "start", ""}}
	default: // linux, freebsd, openbsd, netbsd
		return &CommandLauncher{Name: "xdg-open"}
	}
}

// Command returns the exec.Cmd that would open path
func (l *CommandLauncher) Command(path string) *exec.Cmd {
	args := make([]string, 0, len(l.Args)+1)
	args = append(args, l.Args...)
	args = append(args, path)
	return exec.Command(l.Name, args...)
}

// Launch starts the opener without waiting for it. The opener's own exit
// status is not inspected; only a failure to start it is returned.
func (l *CommandLauncher) Launch(path string) error {
	cmd := l.Command(path)
	if err := cmd.Start(); err != nil {
		return fmt.Errorf("failed to open %s: %w", path, err)
	}
	go func() { _ = cmd.Wait() }()
	return nil
}
