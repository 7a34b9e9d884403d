package main

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/kacebover/pcap-scanner/analyzer"
	"github.com/kacebover/pcap-scanner/gui/controller"
)

// errAnalysisFailed marks a failure already reported to the user
var errAnalysisFailed = errors.New("analysis failed")

func main() {
	root := newRootCmd(controller.NewAnalysisController(), os.Stdin, os.Stdout, os.Stderr)
	if err := root.Execute(); err != nil {
		if !errors.Is(err, errAnalysisFailed) {
			fmt.Fprintln(os.Stderr, "Error:", err)
		}
		os.Exit(1)
	}
}

func newRootCmd(ctrl *controller.AnalysisController, in io.Reader, out, errOut io.Writer) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "pcap-scanner [capture.pcap]",
		Short: "Analyze a PCAP capture and open the generated report",
		Long: `pcap-scanner runs the capture scanner on a .pcap file and opens the
PDF report it produces with the system's default viewer.

If no file is given, the path is read from standard input.
An empty answer cancels.`,
		Args:          cobra.MaximumNArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			selector := &terminalSelector{in: in, out: out}
			if len(args) == 1 {
				selector.arg = args[0]
			}
			return runAnalysis(cmd.Context(), ctrl, selector, &consolePresenter{out: out, errOut: errOut}, errOut)
		},
	}

	cmd.SetIn(in)
	cmd.SetOut(out)
	cmd.SetErr(errOut)
	cmd.AddCommand(newGUICmd(out))
	return cmd
}

func runAnalysis(ctx context.Context, ctrl *controller.AnalysisController, selector analyzer.FileSelector, p controller.Presenter, errOut io.Writer) error {
	if ctx == nil {
		ctx = context.Background()
	}

	ctrl.SetOnLogMessage(func(level controller.LogLevel, message string) {
		if level == controller.LogWarning || level == controller.LogError {
			fmt.Fprintf(errOut, "[%s] %s\n", level, message)
		}
	})

	outcome := ctrl.Run(ctx, selector)
	ctrl.Present(outcome, p)

	if outcome.IsError() {
		return errAnalysisFailed
	}
	return nil
}

// terminalSelector takes the capture path from an argument or a prompt
type terminalSelector struct {
	arg string
	in  io.Reader
	out io.Writer
}

func (s *terminalSelector) SelectFile(ctx context.Context, filter analyzer.FileFilter) (string, error) {
	path := s.arg
	if path == "" {
		fmt.Fprintf(s.out, "%s (%s), empty to cancel: ", filter.Description, filter.Pattern())
		line, err := bufio.NewReader(s.in).ReadString('\n')
		if err != nil && !errors.Is(err, io.EOF) {
			return "", err
		}
		path = line
	}

	path = strings.TrimSpace(path)
	if path == "" {
		return "", nil
	}
	if !filter.Match(path) {
		return "", fmt.Errorf("%s is not a %s file", path, filter.Pattern())
	}
	return filepath.Abs(path)
}

// consolePresenter prints outcomes instead of showing dialogs
type consolePresenter struct {
	out    io.Writer
	errOut io.Writer
}

func (p *consolePresenter) ShowInformation(title, message string) {
	fmt.Fprintf(p.out, "%s: %s\n", title, message)
}

func (p *consolePresenter) ShowError(title string, err error) {
	msg := err.Error()
	fmt.Fprint(p.errOut, msg)
	if !strings.HasSuffix(msg, "\n") {
		fmt.Fprintln(p.errOut)
	}
}
