package camscale

import "strings"

type reportOpts struct {
	title    string
	datetime string
	pre      string
	post     string
	measured string
}

func verificationReport(datetime string) string {
	return buildReport(reportOpts{
		title:    BravosV1.VerificationTitle,
		datetime: datetime,
		measured: "Measured 0.1 0.2 0.3 0.4 0.5 0.6",
	})
}

func calibrationReport(datetime string) string {
	return buildReport(reportOpts{
		title:    BravosV1.CalibrationTitle,
		datetime: datetime,
		pre:      "Pre-Calibration 0.11 -0.12 0.13 0.14 0.15 0.16",
		post:     "Post-Calibration 0.01 0.02 -0.03 0.04 0.05 0.06",
	})
}

// buildReport lays lines out the way the bravos-v1 page does.
func buildReport(o reportOpts) string {
	lines := []string{
		o.title,
		"physicist / Room 3 / BRV1234 / " + o.datetime,
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
	if o.measured != "" {
		lines = append(lines, o.measured, "")
	} else {
		lines = append(lines, o.pre, o.post)
	}
	lines = append(lines,
		"",
		"Result: Passed",
		"Console Version BravosConsole 1.4.2",
		"Page 1 of 1",
	)
	return strings.Join(lines, "\r\n")
}
