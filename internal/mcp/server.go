package mcp

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
	"go.uber.org/zap"

	"github.com/llekiMnitsuJ/HDR-Bravos-CamScale-PDFscrape/internal/camscale"
	"github.com/llekiMnitsuJ/HDR-Bravos-CamScale-PDFscrape/internal/config"
	"github.com/llekiMnitsuJ/HDR-Bravos-CamScale-PDFscrape/internal/export"
	"github.com/llekiMnitsuJ/HDR-Bravos-CamScale-PDFscrape/internal/pdf"
)

// Text output formats of the assemble tool, besides the export formats
const (
	FormatSummary = "summary"
)

// Server represents the MCP server instance
type Server struct {
	config    *config.Config
	service   *pdf.Service
	mcpServer *server.MCPServer
	logger    *zap.Logger
}

// NewServer creates a new MCP server instance
func NewServer(cfg *config.Config, service *pdf.Service, logger *zap.Logger) (*Server, error) {
	if cfg == nil {
		return nil, fmt.Errorf("config cannot be nil")
	}
	if service == nil {
		return nil, fmt.Errorf("report service cannot be nil")
	}
	if logger == nil {
		logger = zap.NewNop()
	}

	mcpServer := server.NewMCPServer(
		cfg.ServerName,
		cfg.Version,
		server.WithToolCapabilities(false),
		server.WithRecovery(),
	)

	s := &Server{
		config:    cfg,
		service:   service,
		mcpServer: mcpServer,
		logger:    logger,
	}

	s.registerTools()

	return s, nil
}

// registerTools registers all available MCP tools
func (s *Server) registerTools() {
	parseReportTool := mcp.NewTool(
		"camscale_parse_report",
		mcp.WithDescription("Parse one Bravos CamScale position verification or calibration report into measurement records"),
		mcp.WithString("path",
			mcp.Required(),
			mcp.Description("Path to the report PDF or .txt pdftotext dump, absolute or relative to the report directory"),
		),
	)
	s.mcpServer.AddTool(parseReportTool, s.handleParseReport)

	assembleTableTool := mcp.NewTool(
		"camscale_assemble_table",
		mcp.WithDescription("Parse every report in a directory, sort the records by datetime and attribute each to its calibration interval"),
		mcp.WithString("directory",
			mcp.Description("Directory containing the reports (uses default if empty)"),
		),
		mcp.WithString("policy",
			mcp.Description("Failing report policy: strict aborts, lenient skips and lists the report"),
			mcp.Enum(camscale.PolicyStrict, camscale.PolicyLenient),
		),
		mcp.WithString("format",
			mcp.Description("Output format of the table"),
			mcp.Enum(FormatSummary, export.FormatCSV, export.FormatJSON),
		),
	)
	s.mcpServer.AddTool(assembleTableTool, s.handleAssembleTable)

	reportStatsTool := mcp.NewTool(
		"camscale_report_stats",
		mcp.WithDescription("Get size, page count and producer metadata of one report file"),
		mcp.WithString("path",
			mcp.Required(),
			mcp.Description("Path to the report, absolute or relative to the report directory"),
		),
	)
	s.mcpServer.AddTool(reportStatsTool, s.handleReportStats)

	directoryStatsTool := mcp.NewTool(
		"camscale_directory_stats",
		mcp.WithDescription("Count and size the report files an assemble run would parse, without parsing them"),
		mcp.WithString("directory",
			mcp.Description("Directory containing the reports (uses default if empty)"),
		),
	)
	s.mcpServer.AddTool(directoryStatsTool, s.handleDirectoryStats)

	serverInfoTool := mcp.NewTool(
		"camscale_server_info",
		mcp.WithDescription("Get server configuration, known report layouts and error policies"),
	)
	s.mcpServer.AddTool(serverInfoTool, s.handleServerInfo)
}

// Handler functions
func (s *Server) handleParseReport(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	path, err := request.RequireString("path")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	records, err := s.service.ParseReportFile(path)
	if err != nil {
		s.logger.Warn("parse report failed", zap.String("path", path), zap.Error(err))
		return mcp.NewToolResultError(err.Error()), nil
	}

	var buf bytes.Buffer
	fmt.Fprintf(&buf, "Parsed report: %s\n", path)
	fmt.Fprintf(&buf, "Records: %d\n\n", len(records))
	if err := export.WriteJSON(&buf, &camscale.Table{Records: records}); err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	return mcp.NewToolResultText(buf.String()), nil
}

func (s *Server) handleAssembleTable(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args := request.GetArguments()

	directory := s.config.ReportDirectory // default
	if dir, ok := args["directory"].(string); ok && dir != "" {
		directory = dir
	}

	policy := s.service.Policy()
	if p, ok := args["policy"].(string); ok && p != "" {
		parsed, err := camscale.ParsePolicy(p)
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		policy = parsed
	}

	format := FormatSummary
	if f, ok := args["format"].(string); ok && f != "" {
		format = strings.ToLower(f)
	}

	result, err := s.service.AssembleDirectoryWithPolicy(ctx, directory, policy)
	if err != nil {
		s.logger.Warn("assemble table failed", zap.String("directory", directory), zap.Error(err))
		return mcp.NewToolResultError(err.Error()), nil
	}

	var buf bytes.Buffer
	switch format {
	case FormatSummary:
		s.formatAssembleSummary(&buf, result)
	case export.FormatCSV, export.FormatJSON:
		if err := export.Write(&buf, format, result.Table); err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
	default:
		return mcp.NewToolResultError(fmt.Sprintf("unsupported format %q (must be one of %s, %s, %s)",
			format, FormatSummary, export.FormatCSV, export.FormatJSON)), nil
	}

	return mcp.NewToolResultText(buf.String()), nil
}

func (s *Server) handleReportStats(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	path, err := request.RequireString("path")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	stats, err := s.service.FileStats(path)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	var buf bytes.Buffer
	fmt.Fprintf(&buf, "Report: %s\n", stats.Path)
	fmt.Fprintf(&buf, "Size: %d bytes\n", stats.Size)
	fmt.Fprintf(&buf, "Pages: %d\n", stats.Pages)
	fmt.Fprintf(&buf, "Modified: %s\n", stats.ModifiedDate)
	if stats.Producer != "" {
		fmt.Fprintf(&buf, "Producer: %s\n", stats.Producer)
	}
	if stats.Creator != "" {
		fmt.Fprintf(&buf, "Creator: %s\n", stats.Creator)
	}
	if stats.CreatedDate != "" {
		fmt.Fprintf(&buf, "Created: %s\n", stats.CreatedDate)
	}

	return mcp.NewToolResultText(buf.String()), nil
}

func (s *Server) handleDirectoryStats(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	directory := request.GetString("directory", s.config.ReportDirectory)

	stats, err := s.service.DirectoryStats(directory)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	var buf bytes.Buffer
	fmt.Fprintf(&buf, "Report files in %s matching %s: %d\n", stats.Directory, stats.Pattern, stats.TotalFiles)
	fmt.Fprintf(&buf, "PDF files: %d\n", stats.PDFFiles)
	fmt.Fprintf(&buf, "Text dumps: %d\n", stats.TextDumps)
	fmt.Fprintf(&buf, "Total size: %d bytes\n", stats.TotalSize)
	if stats.TotalFiles > 0 {
		fmt.Fprintf(&buf, "Average size: %d bytes\n", stats.AverageFileSize())
		fmt.Fprintf(&buf, "Largest: %s (%d bytes)\n", stats.LargestFileName, stats.LargestFileSize)
		fmt.Fprintf(&buf, "Smallest: %s (%d bytes)\n", stats.SmallestFileName, stats.SmallestFileSize)
		fmt.Fprintf(&buf, "Modified: %s to %s\n", stats.OldestModified, stats.NewestModified)
	}

	return mcp.NewToolResultText(buf.String()), nil
}

func (s *Server) handleServerInfo(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	var buf bytes.Buffer
	fmt.Fprintf(&buf, "%s v%s - Server Information\n\n", s.config.ServerName, s.config.Version)
	fmt.Fprintf(&buf, "Report directory: %s\n", s.service.Directory())
	fmt.Fprintf(&buf, "File pattern: %s\n", s.config.FilePattern)
	fmt.Fprintf(&buf, "Error policy: %s\n", s.service.Policy())
	fmt.Fprintf(&buf, "Report layout: %s\n", s.config.Layout)
	fmt.Fprintf(&buf, "Max file size: %d bytes\n\n", s.service.GetMaxFileSize())
	fmt.Fprintf(&buf, "Known layouts: %s\n", strings.Join(camscale.LayoutNames(), ", "))
	fmt.Fprintf(&buf, "Policies: %s, %s\n\n", camscale.PolicyStrict, camscale.PolicyLenient)
	buf.WriteString("Tools:\n")
	buf.WriteString("  camscale_parse_report    parse one report into its records\n")
	buf.WriteString("  camscale_assemble_table  build the calibration-attributed table for a directory\n")
	buf.WriteString("  camscale_report_stats    size and metadata of one report\n")
	buf.WriteString("  camscale_directory_stats count the reports an assemble run would parse\n")
	buf.WriteString("  camscale_server_info     this information\n")

	return mcp.NewToolResultText(buf.String()), nil
}

// formatAssembleSummary writes one line per record after the run totals
func (s *Server) formatAssembleSummary(w io.Writer, result *pdf.AssembleResult) {
	fmt.Fprintf(w, "Assembled %d record(s) from %d of %d report(s) in %s\n",
		result.Table.Len(), result.Parsed, result.Sources, result.Directory)
	fmt.Fprintf(w, "Pattern: %s\n", result.Pattern)

	if len(result.Skipped) > 0 {
		fmt.Fprintf(w, "\nSkipped %d report(s):\n", len(result.Skipped))
		for _, sk := range result.Skipped {
			fmt.Fprintf(w, "  %s: %s\n", sk.Source, sk.Reason)
		}
	}

	fmt.Fprintf(w, "\n%-19s  %-7s  %-16s  %-19s  %s\n", "datetime", "channel", "MeasureType", "currentCalDateTime", "days_from_cal")
	for _, r := range result.Table.Records {
		cal, days := "", ""
		if r.Attribution != nil {
			cal = r.Attribution.CurrentCalDateTime
			days = fmt.Sprintf("%.3f", r.Attribution.DaysFromCal)
		}
		fmt.Fprintf(w, "%-19s  %-7d  %-16s  %-19s  %s\n", r.Datetime, r.Channel, r.MeasureType, cal, days)
	}
}

// Run serves MCP over stdin and stdout until ctx is done or stdin closes
func (s *Server) Run(ctx context.Context) error {
	return s.Serve(ctx, os.Stdin, os.Stdout)
}

// Serve runs the stdio transport over the given streams
func (s *Server) Serve(ctx context.Context, in io.Reader, out io.Writer) error {
	s.logger.Info("starting MCP server",
		zap.String("name", s.config.ServerName),
		zap.String("version", s.config.Version),
		zap.String("directory", s.service.Directory()))

	stdio := server.NewStdioServer(s.mcpServer)
	stdio.SetErrorLogger(zap.NewStdLog(s.logger))

	if err := stdio.Listen(ctx, in, out); err != nil && ctx.Err() == nil {
		return fmt.Errorf("MCP server error: %w", err)
	}
	return nil
}

// MCPServer exposes the underlying server for in-process clients
func (s *Server) MCPServer() *server.MCPServer {
	return s.mcpServer
}
