package camscale

import (
	"fmt"
	"sort"
)

// Layout maps the logical parts of one report format to their line offsets.
// A change in the device's report generator needs a new Layout, not new
// extractor code.
type Layout struct {
	Name string

	VerificationTitle string
	CalibrationTitle  string

	TitleLine       int
	HeaderLine      int
	ChannelLine     int
	CamScaleLine    int
	DummyCableLine  int
	SourceCableLine int
	// FirstDeviationLine holds the Measured row of a verification report and
	// the Pre-Calibration row of a calibration report.
	FirstDeviationLine int
	// PostCalibrationLine holds the Post-Calibration row of a calibration report.
	PostCalibrationLine int
	// ConsoleVersionFromEnd counts back from the last line (1 is the last line).
	ConsoleVersionFromEnd int

	// TimeLayouts are tried in order when parsing the header datetime.
	TimeLayouts []string
}

// BravosV1 is the Position Verification / Calibration report layout.
var BravosV1 = Layout{
	Name:                  "bravos-v1",
	VerificationTitle:     "BRAVOS : Position Verification Report",
	CalibrationTitle:      "BRAVOS : Position Calibration Report",
	TitleLine:             0,
	HeaderLine:            1,
	ChannelLine:           5,
	CamScaleLine:          6,
	DummyCableLine:        11,
	SourceCableLine:       12,
	FirstDeviationLine:    17,
	PostCalibrationLine:   18,
	ConsoleVersionFromEnd: 2,
	TimeLayouts: []string{
		"2006-01-02 15:04:05",
		"2006-01-02 15:04",
		"2006-01-02T15:04:05",
		"2006-01-02",
	},
}

// Layouts lists the known layouts by name.
var Layouts = map[string]Layout{
	BravosV1.Name: BravosV1,
}

// DefaultLayout is used when no layout is configured.
const DefaultLayout = "bravos-v1"

// LookupLayout returns the named layout.
func LookupLayout(name string) (Layout, error) {
	if name == "" {
		name = DefaultLayout
	}
	l, ok := Layouts[name]
	if !ok {
		return Layout{}, fmt.Errorf("unknown report layout %q (known: %v)", name, LayoutNames())
	}
	return l, nil
}

// LayoutNames returns the known layout names, sorted.
func LayoutNames() []string {
	names := make([]string, 0, len(Layouts))
	for n := range Layouts {
		names = append(names, n)
	}
	sort.Strings(names)
	return names
}
