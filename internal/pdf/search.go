package pdf

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
)

// DefaultPattern matches the file names the device gives its position reports
const DefaultPattern = "PVT*.pdf"

// Search discovers report files in a directory
type Search struct{}

// NewSearch creates a new report search handler
func NewSearch() *Search {
	return &Search{}
}

// FindReports lists the regular files directly inside directory whose name
// matches pattern, ignoring case, sorted by name. Matching files are returned
// even when empty or oversized; FileSource.Pages validates them so the
// failure reaches the assembler's error policy.
func (s *Search) FindReports(directory, pattern string) ([]FileInfo, error) {
	if directory == "" {
		return nil, fmt.Errorf("directory cannot be empty")
	}
	if pattern == "" {
		pattern = DefaultPattern
	}
	if _, err := filepath.Match(pattern, ""); err != nil {
		return nil, fmt.Errorf("invalid file pattern %q: %w", pattern, err)
	}

	absDirectory, err := filepath.Abs(directory)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve directory path: %w", err)
	}

	entries, err := os.ReadDir(absDirectory)
	if os.IsNotExist(err) {
		return nil, fmt.Errorf("directory does not exist: %s", directory)
	}
	if err != nil {
		return nil, fmt.Errorf("cannot read directory %s: %w", directory, err)
	}

	lowerPattern := strings.ToLower(pattern)
	var files []FileInfo
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		if ok, _ := filepath.Match(lowerPattern, strings.ToLower(entry.Name())); !ok {
			continue
		}

		info, err := entry.Info()
		if err != nil {
			continue
		}

		files = append(files, FileInfo{
			Path:         filepath.Join(absDirectory, entry.Name()),
			Name:         info.Name(),
			Size:         info.Size(),
			ModifiedTime: info.ModTime().Format("2006-01-02 15:04:05"),
		})
	}

	sort.Slice(files, func(i, j int) bool { return files[i].Name < files[j].Name })
	return files, nil
}
