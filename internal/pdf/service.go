package pdf

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/llekiMnitsuJ/HDR-Bravos-CamScale-PDFscrape/internal/camscale"
	"github.com/llekiMnitsuJ/HDR-Bravos-CamScale-PDFscrape/internal/pdf/security"
)

// Options configures a Service
type Options struct {
	MaxFileSize int64
	Directory   string
	Pattern     string
	Layout      camscale.Layout
	Policy      camscale.Policy
	Logger      *zap.Logger
}

// Service exposes the two report entry points: parse one report file and
// assemble an attributed table from a directory
type Service struct {
	maxFileSize   int64
	pattern       string
	reader        *Reader
	validator     *Validator
	search        *Search
	stats         *Stats
	parser        *camscale.Parser
	policy        camscale.Policy
	pathValidator *security.PathValidator
	logger        *zap.Logger
}

// NewService creates a new report service with all components
func NewService(opts Options) (*Service, error) {
	if opts.MaxFileSize <= 0 {
		return nil, fmt.Errorf("maximum file size must be positive")
	}
	pathValidator, err := security.NewPathValidator(opts.Directory)
	if err != nil {
		return nil, fmt.Errorf("failed to create path validator: %w", err)
	}
	if opts.Layout.Name == "" {
		opts.Layout = camscale.BravosV1
	}
	if opts.Pattern == "" {
		opts.Pattern = DefaultPattern
	}
	logger := opts.Logger
	if logger == nil {
		logger = zap.NewNop()
	}

	return &Service{
		maxFileSize:   opts.MaxFileSize,
		pattern:       opts.Pattern,
		reader:        NewReader(opts.MaxFileSize),
		validator:     NewValidator(opts.MaxFileSize),
		search:        NewSearch(),
		stats:         NewStats(opts.MaxFileSize),
		parser:        camscale.NewParser(opts.Layout, logger),
		policy:        opts.Policy,
		pathValidator: pathValidator,
		logger:        logger,
	}, nil
}

// ParseReportFile parses the first page of one report file. A relative path
// is taken relative to the configured directory.
func (s *Service) ParseReportFile(path string) ([]camscale.Record, error) {
	resolved, err := s.pathValidator.Resolve(path)
	if err != nil {
		return nil, fmt.Errorf("security validation failed: %w", err)
	}
	return s.parser.ParseSource(NewFileSource(resolved, s.reader, s.validator))
}

// AssembleDirectory finds the report files in directory, parses them under
// the service's policy, sorts the records by datetime and attributes each to
// its calibration epoch. An empty directory argument uses the configured one
// and a relative one is taken below it.
func (s *Service) AssembleDirectory(ctx context.Context, directory string) (*AssembleResult, error) {
	return s.AssembleDirectoryWithPolicy(ctx, directory, s.policy)
}

// AssembleDirectoryWithPolicy is AssembleDirectory with an explicit policy
func (s *Service) AssembleDirectoryWithPolicy(ctx context.Context, directory string, policy camscale.Policy) (*AssembleResult, error) {
	directory, err := s.resolveDirectory(directory)
	if err != nil {
		return nil, err
	}

	files, err := s.search.FindReports(directory, s.pattern)
	if err != nil {
		return nil, err
	}
	s.logger.Info("found report files",
		zap.String("directory", directory), zap.String("pattern", s.pattern), zap.Int("files", len(files)))

	sources := make([]camscale.Source, 0, len(files))
	for _, f := range files {
		sources = append(sources, NewFileSource(f.Path, s.reader, s.validator))
	}

	res, err := camscale.NewAssembler(s.parser, policy, s.logger).Assemble(ctx, sources)
	if err != nil {
		return nil, err
	}
	if err := camscale.AttributeCalibrationIntervals(res.Table, s.logger); err != nil {
		return nil, err
	}

	return &AssembleResult{
		Result:    res,
		Directory: directory,
		Pattern:   s.pattern,
		Files:     files,
	}, nil
}

// FileStats returns size, page count and producer metadata of one report
func (s *Service) FileStats(path string) (*FileStats, error) {
	resolved, err := s.pathValidator.Resolve(path)
	if err != nil {
		return nil, fmt.Errorf("security validation failed: %w", err)
	}
	return s.stats.GetFileStats(resolved)
}

// DirectoryStats summarizes the reports AssembleDirectory would parse. An
// empty directory argument uses the configured one.
func (s *Service) DirectoryStats(directory string) (*DirectoryStats, error) {
	directory, err := s.resolveDirectory(directory)
	if err != nil {
		return nil, err
	}
	return s.stats.GetDirectoryStats(directory, s.pattern)
}

// resolveDirectory maps an empty directory to the configured one and a
// relative directory to a path below it, then checks it stays inside.
func (s *Service) resolveDirectory(directory string) (string, error) {
	if directory == "" {
		directory = s.pathValidator.GetConfiguredDirectory()
	}
	resolved, err := s.pathValidator.Resolve(directory)
	if err != nil {
		return "", fmt.Errorf("security validation failed: %w", err)
	}
	if err := s.pathValidator.ValidateDirectory(resolved); err != nil {
		return "", fmt.Errorf("security validation failed: %w", err)
	}
	return resolved, nil
}

// Policy returns the configured error policy
func (s *Service) Policy() camscale.Policy {
	return s.policy
}

// Directory returns the configured report directory
func (s *Service) Directory() string {
	return s.pathValidator.GetConfiguredDirectory()
}

// GetMaxFileSize returns the maximum file size limit
func (s *Service) GetMaxFileSize() int64 {
	return s.maxFileSize
}
