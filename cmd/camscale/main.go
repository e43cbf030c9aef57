package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/fatih/color"

	"github.com/llekiMnitsuJ/HDR-Bravos-CamScale-PDFscrape/internal/camscale"
)

var (
	version   = "dev"     // This will be set by build flags
	buildTime = "unknown" // This will be set by build flags
	gitCommit = "unknown" // This will be set by build flags
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	cmd := NewCommand()
	if err := cmd.ExecuteContext(ctx); err != nil {
		handleCmdError(os.Stderr, err)
		stop()
		os.Exit(1)
	}
}

// handleCmdError prints a hint for the report errors a user can act on
func handleCmdError(w io.Writer, err error) {
	var fe *camscale.FormatError
	switch {
	case errors.As(err, &fe):
		fmt.Fprintln(w, color.RedString("\nReport line did not match the expected layout"))
		fmt.Fprintf(w, "  - Field %s, expected %s\n", fe.Field, fe.Expected)
		fmt.Fprintln(w, "  - Re-run with '--policy lenient' to skip unreadable reports")
	case errors.Is(err, camscale.ErrAmbiguousReportKind):
		fmt.Fprintln(w, color.RedString("\nNot a position verification or calibration report"))
		fmt.Fprintln(w, "  - Check that '--pattern' only matches CamScale reports")
	case errors.Is(err, camscale.ErrNoCalibrationEvents):
		fmt.Fprintln(w, color.RedString("\nNo Post-Calibration record found"))
		fmt.Fprintln(w, "  - Calibration intervals need at least one calibration report in the directory")
	}
}
