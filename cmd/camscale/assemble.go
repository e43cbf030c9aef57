package main

import (
	"fmt"
	"io"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/llekiMnitsuJ/HDR-Bravos-CamScale-PDFscrape/internal/export"
	"github.com/llekiMnitsuJ/HDR-Bravos-CamScale-PDFscrape/internal/pdf"
)

// NewAssembleCommand builds the attributed table for a directory of reports
func NewAssembleCommand(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "assemble [dir]",
		Short: "Assemble all reports in a directory into one calibration-attributed table",
		Long: "Find every report matching --pattern in the directory (default --dir), parse them, " +
			"sort the records by datetime and attribute each record to the most recent " +
			"Post-Calibration event. The table is written to --output, or summarized on stdout.",
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			directory := a.cfg.ReportDirectory
			if len(args) == 1 {
				dir, err := absDir(args[0])
				if err != nil {
					return err
				}
				directory = dir
			}

			svc, err := a.service(directory)
			if err != nil {
				return err
			}
			result, err := svc.AssembleDirectory(cmd.Context(), directory)
			if err != nil {
				return err
			}

			printSummary(cmd.OutOrStdout(), result)

			if a.cfg.OutputPath == "" {
				return nil
			}
			if err := export.WriteFile(a.cfg.OutputPath, outputFormat(cmd, a), result.Table); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s table written to %s\n", okMark(), a.cfg.OutputPath)
			return nil
		},
	}
}

func printSummary(w io.Writer, result *pdf.AssembleResult) {
	fmt.Fprintf(w, "%s %s\n", bold("Directory:"), result.Directory)
	fmt.Fprintf(w, "%s %s\n", bold("Pattern:"), result.Pattern)
	fmt.Fprintf(w, "%s %d of %d report(s), %d record(s)\n", bold("Parsed:"), result.Parsed, result.Sources, result.Table.Len())

	if len(result.Skipped) > 0 {
		fmt.Fprintf(w, "%s %s\n", bold("Skipped:"), color.YellowString("%d report(s)", len(result.Skipped)))
		for _, sk := range result.Skipped {
			fmt.Fprintf(w, "  %s %s: %s\n", failMark(), sk.Source, sk.Reason)
		}
	}
}

func okMark() string {
	return color.New(color.Bold, color.FgGreen).Sprint("✔")
}

func failMark() string {
	return color.New(color.Bold, color.FgRed).Sprint("✘")
}

func bold(format string, a ...interface{}) string {
	return color.New(color.Bold).Sprintf(format, a...)
}
