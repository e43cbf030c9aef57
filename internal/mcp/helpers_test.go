package mcp

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/llekiMnitsuJ/HDR-Bravos-CamScale-PDFscrape/internal/config"
	"github.com/llekiMnitsuJ/HDR-Bravos-CamScale-PDFscrape/internal/pdf"
)

func reportDump(title, datetime string, deviations ...string) string {
	lines := []string{
		title,
		"physicist / Room 3 / BRV1234 / " + datetime,
		"",
		"Position Verification Test",
		"Check Device",
		"Check Device Channel 7",
		"Check Device CamScale SN CS-0042",
		"",
		"Cycle Counters",
		"Component SN Drive Wheel Cable",
		"",
		"Dummy Cable D-778 1200 340 56",
		"Source Cable S-991 980 310 44",
		"",
		"Deviation From Target Positions [cm]",
		"Dummy Source",
		"90 120 150 90 120 150",
	}
	lines = append(lines, deviations...)
	if len(deviations) == 1 {
		lines = append(lines, "")
	}
	lines = append(lines, "", "Result: Passed", "Console Version BravosConsole 1.4.2", "Page 1 of 1")
	return strings.Join(lines, "\r\n") + "\f"
}

// writeReports fills dir with a calibration followed by two verifications
func writeReports(t *testing.T, dir string) {
	t.Helper()
	reports := map[string]string{
		"PVT_001.txt": reportDump("BRAVOS : Position Calibration Report", "2024-01-10 08:00:00",
			"Pre-Calibration 0.11 0.12 0.13 0.14 0.15 0.16",
			"Post-Calibration 0.01 0.02 0.03 0.04 0.05 0.06"),
		"PVT_002.txt": reportDump("BRAVOS : Position Verification Report", "2024-01-11 08:00:00",
			"Measured 0.1 0.2 0.3 0.4 0.5 0.6"),
		"PVT_003.txt": reportDump("BRAVOS : Position Verification Report", "2024-01-20 20:00:00",
			"Measured 0.1 0.2 0.3 0.4 0.5 0.6"),
	}
	for name, content := range reports {
		if err := os.WriteFile(filepath.Join(dir, name), []byte(content), 0o644); err != nil {
			t.Fatalf("failed to write %s: %v", name, err)
		}
	}
}

// newTestServer builds a server over dir matching PVT*.txt dumps
func newTestServer(t *testing.T, dir string) *Server {
	t.Helper()
	cfg := config.DefaultConfig()
	cfg.ReportDirectory = dir
	cfg.FilePattern = "PVT*.txt"
	cfg.ServerName = "test-server"

	service, err := pdf.NewService(pdf.Options{
		MaxFileSize: cfg.MaxFileSize,
		Directory:   dir,
		Pattern:     cfg.FilePattern,
		Policy:      cfg.ErrorPolicy(),
	})
	if err != nil {
		t.Fatalf("failed to create report service: %v", err)
	}
	server, err := NewServer(cfg, service, nil)
	if err != nil {
		t.Fatalf("failed to create server: %v", err)
	}
	return server
}

func callRequest(args map[string]interface{}) mcp.CallToolRequest {
	return mcp.CallToolRequest{
		Params: mcp.CallToolParams{
			Arguments: args,
		},
	}
}

// extractTextFromResult extracts text content from MCP result
func extractTextFromResult(result *mcp.CallToolResult) string {
	if result == nil || len(result.Content) == 0 {
		return ""
	}
	for _, content := range result.Content {
		if textContent, ok := content.(mcp.TextContent); ok {
			return textContent.Text
		}
		if textContentPtr, ok := content.(*mcp.TextContent); ok {
			return textContentPtr.Text
		}
	}
	return ""
}

// writeBroken adds a report whose title matches neither report kind
func writeBroken(t *testing.T, dir string) {
	t.Helper()
	content := reportDump("BRAVOS : Source Exchange Report", "2024-01-09 08:00:00", "Measured 0.1 0.2 0.3 0.4 0.5 0.6")
	if err := os.WriteFile(filepath.Join(dir, "PVT_000.txt"), []byte(content), 0o644); err != nil {
		t.Fatalf("failed to write broken report: %v", err)
	}
}
