package pdf

import "github.com/llekiMnitsuJ/HDR-Bravos-CamScale-PDFscrape/internal/camscale"

// FileSource is a report file whose pages are extracted on demand
type FileSource struct {
	path      string
	reader    *Reader
	validator *Validator
}

var _ camscale.Source = (*FileSource)(nil)

// NewFileSource creates a source for one report file
func NewFileSource(path string, reader *Reader, validator *Validator) *FileSource {
	return &FileSource{path: path, reader: reader, validator: validator}
}

// ID returns the file path
func (s *FileSource) ID() string { return s.path }

// Pages validates the file and extracts its page texts
func (s *FileSource) Pages() ([]string, error) {
	if _, err := s.validator.ValidateFile(s.path); err != nil {
		return nil, err
	}
	return s.reader.ReadPages(s.path)
}
