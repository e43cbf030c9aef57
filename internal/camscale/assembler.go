package camscale

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"go.uber.org/zap"
)

// Source is one report handle resolved by an external collaborator.
type Source interface {
	ID() string
	Pages() ([]string, error)
}

// TextSource is a report already held as page text.
type TextSource struct {
	Name string
	Text []string
}

// NewTextSource builds a single-page source.
func NewTextSource(name, text string) TextSource {
	return TextSource{Name: name, Text: []string{text}}
}

func (s TextSource) ID() string { return s.Name }

func (s TextSource) Pages() ([]string, error) { return s.Text, nil }

// Policy selects how the assembler reacts to a failing report.
type Policy int

const (
	// AbortOnError stops at the first failing report.
	AbortOnError Policy = iota
	// SkipAndCollect records the failure and continues.
	SkipAndCollect
)

// Policy names as used in configuration.
const (
	PolicyStrict  = "strict"
	PolicyLenient = "lenient"
)

// ParsePolicy maps "strict" and "lenient" to a Policy.
func ParsePolicy(s string) (Policy, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case PolicyStrict, "":
		return AbortOnError, nil
	case PolicyLenient:
		return SkipAndCollect, nil
	default:
		return AbortOnError, fmt.Errorf("unknown error policy %q (must be %q or %q)", s, PolicyStrict, PolicyLenient)
	}
}

func (p Policy) String() string {
	if p == SkipAndCollect {
		return PolicyLenient
	}
	return PolicyStrict
}

// SkippedSource is a report left out of the table under SkipAndCollect.
type SkippedSource struct {
	Source string `json:"source"`
	Err    error  `json:"-"`
	Reason string `json:"reason"`
}

// Result is the outcome of assembling a corpus.
type Result struct {
	Table   *Table          `json:"-"`
	Sources int             `json:"sources"`
	Parsed  int             `json:"parsed"`
	Skipped []SkippedSource `json:"skipped,omitempty"`
}

// Assembler parses a collection of sources into one time-ordered table.
type Assembler struct {
	parser *Parser
	policy Policy
	logger *zap.Logger
}

// NewAssembler creates an assembler. A nil logger discards output.
func NewAssembler(parser *Parser, policy Policy, logger *zap.Logger) *Assembler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Assembler{parser: parser, policy: policy, logger: logger}
}

// Assemble parses every source, appends their records and sorts the table by
// datetime ascending. A report contributes all of its records or none.
func (a *Assembler) Assemble(ctx context.Context, sources []Source) (*Result, error) {
	res := &Result{Table: &Table{}, Sources: len(sources)}

	for _, src := range sources {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		records, err := a.parser.ParseSource(src)
		if err != nil {
			if a.policy == AbortOnError {
				return nil, err
			}
			a.logger.Warn("skipping report", zap.String("source", src.ID()), zap.Error(err))
			res.Skipped = append(res.Skipped, SkippedSource{Source: src.ID(), Err: err, Reason: err.Error()})
			continue
		}

		a.logger.Info("parsed report", zap.String("source", src.ID()), zap.Int("records", len(records)))
		res.Table.Append(records...)
		res.Parsed++
	}

	SortByTime(res.Table)
	return res, nil
}

// SortByTime orders records by their parsed datetime. Records sharing a
// timestamp keep their input order, so a calibration report's PreCalibration
// row stays ahead of its PostCalibration row.
func SortByTime(t *Table) {
	sort.SliceStable(t.Records, func(i, j int) bool {
		return t.Records[i].Time.Before(t.Records[j].Time)
	})
}
