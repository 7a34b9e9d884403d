package main

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"
)

func newGUICmd(out io.Writer) *cobra.Command {
	return &cobra.Command{
		Use:   "gui",
		Short: "Show how to build the desktop front-end",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			LaunchGUI(out)
		},
	}
}

// LaunchGUI prints instructions for the Fyne build (requires Fyne to be installed)
func LaunchGUI(out io.Writer) {
	// The desktop front-end is a separate binary so the terminal one
	// builds without cgo and OpenGL headers.
	fmt.Fprintln(out, "To launch the GUI version, build the GUI from cmd/gui:")
	fmt.Fprintln(out, "  go build -o pcap-scanner-gui ./cmd/gui")
	fmt.Fprintln(out, "Then run: ./pcap-scanner-gui")
}
