package main

import (
	"context"
	"fmt"
	"io"
	"log"
	"os"
	"os/signal"
	"runtime"
	"syscall"

	"go.uber.org/zap"

	"github.com/llekiMnitsuJ/HDR-Bravos-CamScale-PDFscrape/internal/config"
	"github.com/llekiMnitsuJ/HDR-Bravos-CamScale-PDFscrape/internal/logging"
	"github.com/llekiMnitsuJ/HDR-Bravos-CamScale-PDFscrape/internal/mcp"
	"github.com/llekiMnitsuJ/HDR-Bravos-CamScale-PDFscrape/internal/pdf"
)

var (
	version   = "dev"     // This will be set by build flags
	buildTime = "unknown" // This will be set by build flags
	gitCommit = "unknown" // This will be set by build flags
)

func main() {
	// Check for version flag before parsing other flags
	if hasVersionFlag(os.Args[1:]) {
		printVersion(os.Stdout)
		return
	}

	cfg, err := config.LoadFromFlags()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	// Set version if it was provided during build
	if version != "dev" {
		cfg.Version = version
	}

	logger, err := logging.New(cfg.LogLevel)
	if err != nil {
		log.Fatalf("Failed to create logger: %v", err)
	}
	defer logger.Sync() //nolint:errcheck

	logger.Debug("starting with configuration", zap.Stringer("config", cfg))

	server, err := newServer(cfg, logger)
	if err != nil {
		logger.Fatal("failed to create MCP server", zap.Error(err))
	}

	// The parent process controls our lifecycle over stdio; signals end it early
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM, syscall.SIGHUP)
	defer stop()

	if err := server.Run(ctx); err != nil {
		logger.Error("server error", zap.Error(err))
		os.Exit(1)
	}
}

// newServer wires the report service into an MCP server
func newServer(cfg *config.Config, logger *zap.Logger) (*mcp.Server, error) {
	service, err := pdf.NewService(pdf.Options{
		MaxFileSize: cfg.MaxFileSize,
		Directory:   cfg.ReportDirectory,
		Pattern:     cfg.FilePattern,
		Layout:      cfg.ReportLayout(),
		Policy:      cfg.ErrorPolicy(),
		Logger:      logger,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create report service: %w", err)
	}
	return mcp.NewServer(cfg, service, logger)
}

func hasVersionFlag(args []string) bool {
	for _, arg := range args {
		if arg == "-version" || arg == "--version" || arg == "-v" {
			return true
		}
	}
	return false
}

// printVersion prints version information
func printVersion(w io.Writer) {
	fmt.Fprintf(w, "CamScale MCP Server\n")
	fmt.Fprintf(w, "Version: %s\n", version)
	fmt.Fprintf(w, "Build Time: %s\n", buildTime)
	fmt.Fprintf(w, "Git Commit: %s\n", gitCommit)
	fmt.Fprintf(w, "Built with: %s\n", runtime.Version())
}
