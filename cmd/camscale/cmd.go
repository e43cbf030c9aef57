package main

import (
	"fmt"
	"path/filepath"
	"runtime"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/llekiMnitsuJ/HDR-Bravos-CamScale-PDFscrape/internal/config"
	"github.com/llekiMnitsuJ/HDR-Bravos-CamScale-PDFscrape/internal/logging"
	"github.com/llekiMnitsuJ/HDR-Bravos-CamScale-PDFscrape/internal/pdf"
)

// app carries the configuration loaded before every subcommand runs
type app struct {
	cfg    *config.Config
	logger *zap.Logger
}

// NewCommand builds the camscale command tree
func NewCommand() *cobra.Command {
	a := &app{}

	cmd := &cobra.Command{
		Use:          "camscale",
		Short:        "camscale turns Bravos CamScale position reports into an attributed table",
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return a.setup(cmd)
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			if a.logger != nil {
				_ = a.logger.Sync()
			}
		},
	}

	config.RegisterFlags(cmd.PersistentFlags(), config.DefaultConfig())

	cmd.AddCommand(
		NewParseCommand(a),
		NewAssembleCommand(a),
		NewVersionCommand(),
	)

	return cmd
}

func (a *app) setup(cmd *cobra.Command) error {
	cfg, err := config.Load(cmd.Flags())
	if err != nil {
		return err
	}
	logger, err := logging.New(cfg.LogLevel)
	if err != nil {
		return err
	}
	if version != "dev" {
		cfg.Version = version
	}
	a.cfg = cfg
	a.logger = logger
	a.logger.Debug("loaded configuration", zap.Stringer("config", cfg))
	return nil
}

// service builds a report service rooted at directory
func (a *app) service(directory string) (*pdf.Service, error) {
	return pdf.NewService(pdf.Options{
		MaxFileSize: a.cfg.MaxFileSize,
		Directory:   directory,
		Pattern:     a.cfg.FilePattern,
		Layout:      a.cfg.ReportLayout(),
		Policy:      a.cfg.ErrorPolicy(),
		Logger:      a.logger,
	})
}

// NewVersionCommand prints build information
func NewVersionCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version",
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return nil
		},
		Run: func(cmd *cobra.Command, args []string) {
			w := cmd.OutOrStdout()
			fmt.Fprintf(w, "camscale %s\n", version)
			fmt.Fprintf(w, "Build Time: %s\n", buildTime)
			fmt.Fprintf(w, "Git Commit: %s\n", gitCommit)
			fmt.Fprintf(w, "Built with: %s\n", runtime.Version())
		},
	}
}

func absDir(path string) (string, error) {
	dir, err := filepath.Abs(path)
	if err != nil {
		return "", fmt.Errorf("failed to resolve %s: %w", path, err)
	}
	return dir, nil
}
