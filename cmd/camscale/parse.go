package main

import (
	"fmt"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/llekiMnitsuJ/HDR-Bravos-CamScale-PDFscrape/internal/camscale"
	"github.com/llekiMnitsuJ/HDR-Bravos-CamScale-PDFscrape/internal/export"
)

// NewParseCommand parses a single report
func NewParseCommand(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "parse <file>",
		Short: "Parse one report and print its records",
		Long: "Parse one position verification or calibration report. Verification reports " +
			"yield one record, calibration reports a PreCalibration and a PostCalibration record. " +
			"The records are printed as JSON unless --output is given.",
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			path, err := filepath.Abs(args[0])
			if err != nil {
				return fmt.Errorf("failed to resolve %s: %w", args[0], err)
			}
			svc, err := a.service(filepath.Dir(path))
			if err != nil {
				return err
			}
			records, err := svc.ParseReportFile(path)
			if err != nil {
				return err
			}

			table := &camscale.Table{Records: records}
			if a.cfg.OutputPath != "" {
				if err := export.WriteFile(a.cfg.OutputPath, outputFormat(cmd, a), table); err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "%s %d record(s) written to %s\n", okMark(), table.Len(), a.cfg.OutputPath)
				return nil
			}
			return export.WriteJSON(cmd.OutOrStdout(), table)
		},
	}
}

// outputFormat honors an explicit --format and otherwise follows the output
// file extension
func outputFormat(cmd *cobra.Command, a *app) string {
	if f := cmd.Flags().Lookup("format"); f != nil && f.Changed {
		return a.cfg.OutputFormat
	}
	return export.FormatFromPath(a.cfg.OutputPath)
}
