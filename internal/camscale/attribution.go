package camscale

import (
	"sort"
	"time"

	"go.uber.org/zap"
)

// Sentinel bounds of the calibration boundary list.
const (
	LowerBoundDateTime = "1900-01-01 00:00:00"
	UpperBoundDateTime = "3000-12-31 23:59:59"
)

var (
	lowerBound = time.Date(1900, time.January, 1, 0, 0, 0, 0, time.UTC)
	upperBound = time.Date(3000, time.December, 31, 23, 59, 59, 0, time.UTC)
)

type boundary struct {
	label string
	at    time.Time
}

// AttributeCalibrationIntervals assigns every record the most recent
// PostCalibration event strictly before it and the days elapsed since. A
// PostCalibration record anchors its own epoch. Records at or before the first
// calibration are attributed to the lower sentinel bound.
//
// Calibrations sharing a timestamp collapse into one boundary; the first one
// in table order supplies the label.
//
// The table is left untouched when no calibration event exists.
func AttributeCalibrationIntervals(t *Table, logger *zap.Logger) error {
	if logger == nil {
		logger = zap.NewNop()
	}

	cals := calibrationBoundaries(t.Records)
	if len(cals) == 0 {
		return &NoCalibrationEventsError{Records: len(t.Records)}
	}

	bounds := make([]boundary, 0, len(cals)+2)
	bounds = append(bounds, boundary{label: LowerBoundDateTime, at: lowerBound})
	bounds = append(bounds, cals...)
	bounds = append(bounds, boundary{label: UpperBoundDateTime, at: upperBound})

	for i := range t.Records {
		r := &t.Records[i]
		var epoch boundary
		if r.MeasureType == MeasurePostCalibration {
			epoch = boundary{label: r.Datetime, at: r.Time}
		} else {
			epoch = epochOf(bounds, r.Time)
		}
		r.Attribution = &Attribution{
			CurrentCalDateTime: epoch.label,
			CalTime:            epoch.at,
			DaysFromCal:        r.Time.Sub(epoch.at).Hours() / 24,
		}
	}

	logger.Debug("attributed calibration intervals",
		zap.Int("calibrations", len(cals)), zap.Int("records", len(t.Records)))
	return nil
}

// calibrationBoundaries returns the distinct PostCalibration times, ascending.
func calibrationBoundaries(records []Record) []boundary {
	var out []boundary
	for _, r := range records {
		if r.MeasureType == MeasurePostCalibration {
			out = append(out, boundary{label: r.Datetime, at: r.Time})
		}
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].at.Before(out[j].at) })

	uniq := out[:0]
	for _, b := range out {
		if len(uniq) > 0 && uniq[len(uniq)-1].at.Equal(b.at) {
			continue
		}
		uniq = append(uniq, b)
	}
	return uniq
}

// epochOf returns bounds[i] for the greatest i with bounds[i] < at, so that at
// falls in the half-open interval (bounds[i], bounds[i+1]]. Times at or before
// the lower bound stay on it; times past the upper bound stay with the last
// calibration.
func epochOf(bounds []boundary, at time.Time) boundary {
	// first index whose time is not before at
	idx := sort.Search(len(bounds), func(k int) bool { return !bounds[k].at.Before(at) })
	switch {
	case idx == 0:
		return bounds[0]
	case idx > len(bounds)-1:
		return bounds[len(bounds)-2]
	}
	return bounds[idx-1]
}
