package pdf

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
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

func verificationDump(datetime string) string {
	return reportDump("BRAVOS : Position Verification Report", datetime,
		"Measured 0.1 0.2 0.3 0.4 0.5 0.6")
}

func calibrationDump(datetime string) string {
	return reportDump("BRAVOS : Position Calibration Report", datetime,
		"Pre-Calibration 0.11 0.12 0.13 0.14 0.15 0.16",
		"Post-Calibration 0.01 0.02 0.03 0.04 0.05 0.06")
}

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("Failed to write %s: %v", name, err)
	}
	return path
}
