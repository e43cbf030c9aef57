package camscale

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

// Labels that open the deviation rows.
const (
	LabelMeasured        = "Measured"
	LabelPreCalibration  = "Pre-Calibration"
	LabelPostCalibration = "Post-Calibration"
)

// Subjects of the two cable lines.
const (
	SubjectDummy  = "Dummy"
	SubjectSource = "Source"
)

// ParseReportKind matches the title line against the layout's two titles.
// Neither matching is not an error here; the parser rejects it.
func ParseReportKind(line string, layout Layout) ReportKind {
	s := strings.TrimSpace(line)
	return ReportKind{
		Verification: s == layout.VerificationTitle,
		Calibration:  s == layout.CalibrationTitle,
	}
}

// ParseHeader splits "User / Room / SerialNumber / datetime".
func ParseHeader(line string, timeLayouts []string) (Header, error) {
	parts := strings.Split(strings.TrimSpace(line), "/")
	if len(parts) != 4 {
		return Header{}, newFormatError("header", line,
			fmt.Sprintf("4 '/'-separated parts (User/Room/SerialNumber/datetime), found %d", len(parts)))
	}
	h := Header{
		User:         strings.TrimSpace(parts[0]),
		Room:         strings.TrimSpace(parts[1]),
		SerialNumber: strings.TrimSpace(parts[2]),
		Datetime:     strings.TrimSpace(parts[3]),
	}
	t, err := parseTimestamp(h.Datetime, timeLayouts)
	if err != nil {
		fe := newFormatError("datetime", line, fmt.Sprintf("a timestamp in one of %q", timeLayouts))
		fe.Err = err
		return Header{}, fe
	}
	h.Time = t
	return h, nil
}

func parseTimestamp(s string, layouts []string) (time.Time, error) {
	var firstErr error
	for _, l := range layouts {
		t, err := time.Parse(l, s)
		if err == nil {
			return t, nil
		}
		if firstErr == nil {
			firstErr = err
		}
	}
	if firstErr == nil {
		firstErr = fmt.Errorf("no timestamp layouts configured")
	}
	return time.Time{}, firstErr
}

// ParseChannel reads "... Channel <n>".
func ParseChannel(line string) (int, error) {
	tokens := strings.Fields(line)
	if len(tokens) < 2 || tokens[len(tokens)-2] != "Channel" {
		return 0, newFormatError("Channel", line, `"Channel <number>" at the end of the line`)
	}
	n, err := strconv.Atoi(tokens[len(tokens)-1])
	if err != nil {
		fe := newFormatError("Channel", line, "an integer channel number")
		fe.Err = err
		return 0, fe
	}
	return n, nil
}

// ParseCamScaleSerial reads "... CamScale SN <serial>".
func ParseCamScaleSerial(line string) (string, error) {
	tokens := strings.Fields(line)
	n := len(tokens)
	if n < 3 || tokens[n-2] != "SN" || tokens[n-3] != "CamScale" {
		return "", newFormatError("CamScaleSN", line, `"CamScale SN <serial>" at the end of the line`)
	}
	return tokens[n-1], nil
}

// ParseCableLine reads "<subject> Cable <SN> <drive> <wheel> <cable>".
func ParseCableLine(line, subject string) (Cable, error) {
	tokens := strings.Fields(line)
	field := subject + "Cable"
	if len(tokens) != 6 {
		return Cable{}, newFormatError(field, line, fmt.Sprintf("6 tokens, found %d", len(tokens)))
	}
	if tokens[0] != subject || tokens[1] != "Cable" {
		return Cable{}, newFormatError(field, line, fmt.Sprintf("line to start with %q", subject+" Cable"))
	}
	return Cable{
		SN:          tokens[2],
		DriveCycles: tokens[3],
		WheelCycles: tokens[4],
		CableCycles: tokens[5],
	}, nil
}

// ParseDeviationLine reads "<label> d90 d120 d150 s90 s120 s150" and stamps mt.
func ParseDeviationLine(line, expectedLabel string, mt MeasureType) (Deviations, error) {
	tokens := strings.Fields(line)
	field := expectedLabel + " deviations"
	if len(tokens) != 7 {
		return Deviations{}, newFormatError(field, line, fmt.Sprintf("7 tokens, found %d", len(tokens)))
	}
	if tokens[0] != expectedLabel {
		return Deviations{}, newFormatError(field, line, fmt.Sprintf("line to start with %q", expectedLabel))
	}
	var vals [6]float64
	for i, tok := range tokens[1:] {
		v, err := strconv.ParseFloat(tok, 64)
		if err != nil {
			fe := newFormatError(field, line, fmt.Sprintf("a number at token %d, got %q", i+1, tok))
			fe.Err = err
			return Deviations{}, fe
		}
		vals[i] = v
	}
	return Deviations{
		DummyAt90:   vals[0],
		DummyAt120:  vals[1],
		DummyAt150:  vals[2],
		SourceAt90:  vals[3],
		SourceAt120: vals[4],
		SourceAt150: vals[5],
		MeasureType: mt,
	}, nil
}

// ParseConsoleVersion reads "Console Version <a> <b>" from the line fromEnd
// positions before the end of lines.
func ParseConsoleVersion(lines []string, fromEnd int) (string, error) {
	idx := len(lines) - fromEnd
	if fromEnd < 1 || idx < 0 {
		return "", newFormatError("ConsoleVersion", "",
			fmt.Sprintf("at least %d lines, found %d", fromEnd, len(lines)))
	}
	line := lines[idx]
	tokens := strings.Fields(line)
	if len(tokens) != 4 || tokens[0] != "Console" || tokens[1] != "Version" {
		return "", newFormatError("ConsoleVersion", line, `"Console Version <name> <number>"`)
	}
	return strings.Join(tokens[2:], " "), nil
}
