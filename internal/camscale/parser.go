package camscale

import (
	"fmt"
	"strings"

	"go.uber.org/zap"
)

// Parser maps the lines of one report page onto records using a Layout.
type Parser struct {
	layout Layout
	logger *zap.Logger
}

// NewParser creates a parser for the given layout. A nil logger discards output.
func NewParser(layout Layout, logger *zap.Logger) *Parser {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Parser{layout: layout, logger: logger}
}

// Layout returns the layout the parser was built with.
func (p *Parser) Layout() Layout { return p.layout }

// SplitLines trims the page block and splits it into lines, accepting CRLF,
// CR or LF separators.
func SplitLines(page string) []string {
	s := strings.ReplaceAll(page, "\r\n", "\n")
	s = strings.ReplaceAll(s, "\r", "\n")
	return strings.Split(strings.TrimSpace(s), "\n")
}

type page struct {
	source string
	lines  []string
}

func (pg page) line(field string, i int) (string, error) {
	if i < 0 || i >= len(pg.lines) {
		return "", newFormatError(field, "",
			fmt.Sprintf("line %d to exist, page has %d lines", i, len(pg.lines))).at(pg.source, i)
	}
	return pg.lines[i], nil
}

// Parse parses one report page. A verification report yields one record, a
// calibration report yields its PreCalibration and PostCalibration records.
func (p *Parser) Parse(source, text string) ([]Record, error) {
	l := p.layout
	pg := page{source: source, lines: SplitLines(text)}
	log := p.logger.With(zap.String("source", source))

	title, err := pg.line("title", l.TitleLine)
	if err != nil {
		return nil, err
	}
	kind := ParseReportKind(title, l)
	log.Debug("parsed report kind", zap.String("line", title),
		zap.Bool("verification", kind.Verification), zap.Bool("calibration", kind.Calibration))
	if kind.Verification == kind.Calibration {
		return nil, &AmbiguousReportKindError{
			Source:       source,
			Title:        strings.TrimSpace(title),
			Verification: kind.Verification,
			Calibration:  kind.Calibration,
		}
	}

	var rec Record
	rec.ReportKind = kind

	steps := []struct {
		field string
		index int
		parse func(line string) error
	}{
		{"header", l.HeaderLine, func(s string) (err error) {
			rec.Header, err = ParseHeader(s, l.TimeLayouts)
			return err
		}},
		{"Channel", l.ChannelLine, func(s string) (err error) {
			rec.Channel, err = ParseChannel(s)
			return err
		}},
		{"CamScaleSN", l.CamScaleLine, func(s string) (err error) {
			rec.CamScaleSN, err = ParseCamScaleSerial(s)
			return err
		}},
		{"DummyCable", l.DummyCableLine, func(s string) (err error) {
			rec.Dummy, err = ParseCableLine(s, SubjectDummy)
			return err
		}},
		{"SourceCable", l.SourceCableLine, func(s string) (err error) {
			rec.Source, err = ParseCableLine(s, SubjectSource)
			return err
		}},
	}
	for _, st := range steps {
		line, err := pg.line(st.field, st.index)
		if err != nil {
			return nil, err
		}
		if err := st.parse(line); err != nil {
			return nil, locate(err, source, st.index)
		}
		log.Debug("parsed line", zap.String("field", st.field), zap.Int("index", st.index), zap.String("line", line))
	}

	rec.ConsoleVersion, err = ParseConsoleVersion(pg.lines, l.ConsoleVersionFromEnd)
	if err != nil {
		return nil, locate(err, source, len(pg.lines)-l.ConsoleVersionFromEnd)
	}
	log.Debug("parsed console version", zap.String("ConsoleVersion", rec.ConsoleVersion))

	if kind.Verification {
		dev, err := p.deviations(pg, l.FirstDeviationLine, LabelMeasured, MeasureVerification)
		if err != nil {
			return nil, err
		}
		rec.Deviations = dev
		return []Record{rec}, nil
	}

	pre, err := p.deviations(pg, l.FirstDeviationLine, LabelPreCalibration, MeasurePreCalibration)
	if err != nil {
		return nil, err
	}
	post, err := p.deviations(pg, l.PostCalibrationLine, LabelPostCalibration, MeasurePostCalibration)
	if err != nil {
		return nil, err
	}
	preRec, postRec := rec, rec
	preRec.Deviations = pre
	postRec.Deviations = post
	return []Record{preRec, postRec}, nil
}

func (p *Parser) deviations(pg page, index int, label string, mt MeasureType) (Deviations, error) {
	line, err := pg.line(label+" deviations", index)
	if err != nil {
		return Deviations{}, err
	}
	dev, err := ParseDeviationLine(line, label, mt)
	if err != nil {
		return Deviations{}, locate(err, pg.source, index)
	}
	p.logger.Debug("parsed deviations", zap.String("source", pg.source), zap.Int("index", index),
		zap.String("MeasureType", string(mt)), zap.String("line", line))
	return dev, nil
}

func locate(err error, source string, index int) error {
	if fe, ok := err.(*FormatError); ok {
		return fe.at(source, index)
	}
	return err
}

// ParseSource parses the first page of a report source.
func (p *Parser) ParseSource(src Source) ([]Record, error) {
	pages, err := src.Pages()
	if err != nil {
		return nil, &SourceError{Source: src.ID(), Err: err}
	}
	if len(pages) == 0 {
		return nil, &SourceError{Source: src.ID(), Err: fmt.Errorf("report has no pages")}
	}
	return p.Parse(src.ID(), pages[0])
}
