// Package camscale turns Bravos position verification and calibration
// report text into time-ordered measurement records.
package camscale

import (
	"encoding/json"
	"strconv"
	"time"
)

// MeasureType distinguishes the deviation row a record was built from.
type MeasureType string

const (
	MeasureVerification    MeasureType = "Verification"
	MeasurePreCalibration  MeasureType = "PreCalibration"
	MeasurePostCalibration MeasureType = "PostCalibration"
)

// ReportKind holds the two mutually exclusive title flags.
type ReportKind struct {
	Verification bool `json:"verification"`
	Calibration  bool `json:"calibration"`
}

// Header is the slash-delimited second line of a report.
type Header struct {
	User         string    `json:"User"`
	Room         string    `json:"Room"`
	SerialNumber string    `json:"SerialNumber"`
	Datetime     string    `json:"datetime"`
	Time         time.Time `json:"-"`
}

// Cable is one "Dummy Cable ..." or "Source Cable ..." line. Cycle counts are
// kept as printed on the report.
type Cable struct {
	SN          string `json:"SN"`
	DriveCycles string `json:"DriveCycles"`
	WheelCycles string `json:"WheelCycles"`
	CableCycles string `json:"CableCycles"`
}

// CycleCounts is the numeric form of a cable's counters.
type CycleCounts struct {
	Drive int64
	Wheel int64
	Cable int64
}

// Counts parses the cycle counters as integers.
func (c Cable) Counts() (CycleCounts, error) {
	var out CycleCounts
	fields := []struct {
		name string
		raw  string
		dst  *int64
	}{
		{"DriveCycles", c.DriveCycles, &out.Drive},
		{"WheelCycles", c.WheelCycles, &out.Wheel},
		{"CableCycles", c.CableCycles, &out.Cable},
	}
	for _, f := range fields {
		n, err := strconv.ParseInt(f.raw, 10, 64)
		if err != nil {
			fe := newFormatError(f.name, f.raw, "an integer cycle count")
			fe.Err = err
			return CycleCounts{}, fe
		}
		*f.dst = n
	}
	return out, nil
}

// Identity is the device block shared by every record of a report.
type Identity struct {
	Channel        int    `json:"Channel"`
	CamScaleSN     string `json:"CamScaleSN"`
	Dummy          Cable  `json:"Dummy"`
	Source         Cable  `json:"Source"`
	ConsoleVersion string `json:"ConsoleVersion"`
}

// Deviations are the measured deviations in cm at the 90/120/150 cm targets.
type Deviations struct {
	DummyAt90   float64     `json:"DummyDeviationAt90cm_cm"`
	DummyAt120  float64     `json:"DummyDeviationAt120cm_cm"`
	DummyAt150  float64     `json:"DummyDeviationAt150cm_cm"`
	SourceAt90  float64     `json:"SourceDeviationAt90cm_cm"`
	SourceAt120 float64     `json:"SourceDeviationAt120cm_cm"`
	SourceAt150 float64     `json:"SourceDeviationAt150cm_cm"`
	MeasureType MeasureType `json:"MeasureType"`
}

// Attribution is the calibration epoch a record belongs to.
type Attribution struct {
	CurrentCalDateTime string    `json:"currentCalDateTime"`
	CalTime            time.Time `json:"-"`
	DaysFromCal        float64   `json:"days_from_cal"`
}

// Record is one measurement event.
type Record struct {
	ReportKind
	Header
	Identity
	Deviations
	Attribution *Attribution
}

// Columns is the stable column set handed to export collaborators.
var Columns = []string{
	"verification", "calibration",
	"User", "Room", "SerialNumber", "datetime",
	"Channel", "CamScaleSN",
	"DummySN", "DummyDriveCycles", "DummyWheelCycles", "DummyCableCycles",
	"SourceSN", "SourceDriveCycles", "SourceWheelCycles", "SourceCableCycles",
	"ConsoleVersion",
	"DummyDeviationAt90cm_cm", "DummyDeviationAt120cm_cm", "DummyDeviationAt150cm_cm",
	"SourceDeviationAt90cm_cm", "SourceDeviationAt120cm_cm", "SourceDeviationAt150cm_cm",
	"MeasureType",
	"currentCalDateTime", "days_from_cal",
}

// Values returns the record's cells in Columns order. The two attribution
// cells are nil until the record has been attributed.
func (r Record) Values() []any {
	vals := []any{
		r.Verification, r.Calibration,
		r.User, r.Room, r.SerialNumber, r.Datetime,
		r.Channel, r.CamScaleSN,
		r.Dummy.SN, r.Dummy.DriveCycles, r.Dummy.WheelCycles, r.Dummy.CableCycles,
		r.Source.SN, r.Source.DriveCycles, r.Source.WheelCycles, r.Source.CableCycles,
		r.ConsoleVersion,
		r.DummyAt90, r.DummyAt120, r.DummyAt150,
		r.SourceAt90, r.SourceAt120, r.SourceAt150,
		string(r.MeasureType),
	}
	if r.Attribution == nil {
		return append(vals, nil, nil)
	}
	return append(vals, r.Attribution.CurrentCalDateTime, r.Attribution.DaysFromCal)
}

// Map returns the record keyed by column name.
func (r Record) Map() map[string]any {
	vals := r.Values()
	m := make(map[string]any, len(Columns))
	for i, c := range Columns {
		m[c] = vals[i]
	}
	return m
}

// MarshalJSON encodes the record as its column-keyed Map.
func (r Record) MarshalJSON() ([]byte, error) {
	return json.Marshal(r.Map())
}

// Table is the ordered set of records assembled from a corpus.
type Table struct {
	Records []Record
}

// Len returns the number of records.
func (t *Table) Len() int { return len(t.Records) }

// Append adds every record of one report.
func (t *Table) Append(records ...Record) {
	t.Records = append(t.Records, records...)
}
