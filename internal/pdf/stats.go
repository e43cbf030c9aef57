package pdf

import (
	"fmt"
	"os"
	"strings"

	"github.com/ledongthuc/pdf"
)

// Stats summarizes report files before they are parsed
type Stats struct {
	search    *Search
	validator *Validator
}

// NewStats creates a new report stats analyzer with the specified constraints
func NewStats(maxFileSize int64) *Stats {
	return &Stats{
		search:    NewSearch(),
		validator: NewValidator(maxFileSize),
	}
}

// FileStats describes one report file
type FileStats struct {
	Path         string `json:"path"`
	Size         int64  `json:"size"`
	Pages        int    `json:"pages"`
	ModifiedDate string `json:"modified_date"`
	Producer     string `json:"producer,omitempty"`
	Creator      string `json:"creator,omitempty"`
	CreatedDate  string `json:"created_date,omitempty"`
}

// DirectoryStats describes the report files matching a pattern
type DirectoryStats struct {
	Directory        string `json:"directory"`
	Pattern          string `json:"pattern"`
	TotalFiles       int    `json:"total_files"`
	PDFFiles         int    `json:"pdf_files"`
	TextDumps        int    `json:"text_dumps"`
	InvalidFiles     int    `json:"invalid_files"`
	TotalSize        int64  `json:"total_size"`
	LargestFileName  string `json:"largest_file_name,omitempty"`
	LargestFileSize  int64  `json:"largest_file_size"`
	SmallestFileName string `json:"smallest_file_name,omitempty"`
	SmallestFileSize int64  `json:"smallest_file_size"`
	OldestModified   string `json:"oldest_modified,omitempty"`
	NewestModified   string `json:"newest_modified,omitempty"`
}

// GetFileStats returns the size, page count and producer metadata of a report
func (s *Stats) GetFileStats(path string) (*FileStats, error) {
	pages, err := s.validator.ValidateFile(path)
	if err != nil {
		return nil, err
	}
	fileInfo, err := os.Stat(path)
	if err != nil {
		return nil, fmt.Errorf("cannot access file: %w", err)
	}

	result := &FileStats{
		Path:         path,
		Size:         fileInfo.Size(),
		Pages:        pages,
		ModifiedDate: fileInfo.ModTime().Format("2006-01-02 15:04:05"),
	}
	if !isPDF(path) {
		return result, nil
	}

	f, r, err := pdf.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open PDF: %w", err)
	}
	defer f.Close()
	extractMetadata(r, result)

	return result, nil
}

// GetDirectoryStats aggregates the report files FindReports would return
func (s *Stats) GetDirectoryStats(directory, pattern string) (*DirectoryStats, error) {
	files, err := s.search.FindReports(directory, pattern)
	if err != nil {
		return nil, err
	}
	if pattern == "" {
		pattern = DefaultPattern
	}

	result := &DirectoryStats{Directory: directory, Pattern: pattern}
	for _, f := range files {
		result.TotalFiles++
		result.TotalSize += f.Size
		if info, err := os.Stat(f.Path); err != nil || s.validator.ValidateFileInfo(f.Path, info) != nil {
			result.InvalidFiles++
		}
		if isTextDump(f.Path) {
			result.TextDumps++
		} else {
			result.PDFFiles++
		}

		if f.Size > result.LargestFileSize {
			result.LargestFileSize = f.Size
			result.LargestFileName = f.Name
		}
		if result.SmallestFileName == "" || f.Size < result.SmallestFileSize {
			result.SmallestFileSize = f.Size
			result.SmallestFileName = f.Name
		}

		// ModifiedTime sorts lexically
		if result.OldestModified == "" || f.ModifiedTime < result.OldestModified {
			result.OldestModified = f.ModifiedTime
		}
		if f.ModifiedTime > result.NewestModified {
			result.NewestModified = f.ModifiedTime
		}
	}

	return result, nil
}

// AverageFileSize returns the mean report size, or 0 for an empty directory
func (d *DirectoryStats) AverageFileSize() int64 {
	if d.TotalFiles == 0 {
		return 0
	}
	return d.TotalSize / int64(d.TotalFiles)
}

// extractMetadata copies the document info entries the console writes
func extractMetadata(r *pdf.Reader, result *FileStats) {
	defer func() {
		// Malformed info dictionaries panic inside the library
		_ = recover()
	}()

	trailer := r.Trailer()
	if trailer.IsNull() {
		return
	}
	info := trailer.Key("Info")
	if info.IsNull() {
		return
	}

	result.Producer = infoString(info, "Producer")
	result.Creator = infoString(info, "Creator")
	result.CreatedDate = infoString(info, "CreationDate")
}

func infoString(info pdf.Value, key string) string {
	v := info.Key(key)
	if v.IsNull() {
		return ""
	}
	return strings.TrimSpace(v.Text())
}
