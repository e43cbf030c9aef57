// Package export writes an assembled record table for spreadsheet and
// plotting tools.
package export

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/llekiMnitsuJ/HDR-Bravos-CamScale-PDFscrape/internal/camscale"
)

// Supported output formats
const (
	FormatXLSX = "xlsx"
	FormatCSV  = "csv"
	FormatJSON = "json"
)

// Formats lists the supported output formats
var Formats = []string{FormatXLSX, FormatCSV, FormatJSON}

// SheetName is the worksheet written by the xlsx exporter
const SheetName = "camscale"

// Write renders the table to w in the given format
func Write(w io.Writer, format string, t *camscale.Table) error {
	switch strings.ToLower(format) {
	case FormatXLSX:
		return WriteXLSX(w, t)
	case FormatCSV:
		return WriteCSV(w, t)
	case FormatJSON:
		return WriteJSON(w, t)
	default:
		return fmt.Errorf("unsupported export format %q (must be one of %v)", format, Formats)
	}
}

// WriteFile writes the table to path. An empty format is taken from the
// file extension.
func WriteFile(path, format string, t *camscale.Table) error {
	if format == "" {
		format = FormatFromPath(path)
	}
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create %s: %w", path, err)
	}
	if err := Write(f, format, t); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

// FormatFromPath maps a file extension to a format, defaulting to xlsx
func FormatFromPath(path string) string {
	ext := strings.TrimPrefix(strings.ToLower(filepath.Ext(path)), ".")
	for _, f := range Formats {
		if f == ext {
			return f
		}
	}
	return FormatXLSX
}

// cellString formats one cell for text formats; unattributed cells are empty
func cellString(v any) string {
	switch x := v.(type) {
	case nil:
		return ""
	case string:
		return x
	case bool:
		if x {
			return "True"
		}
		return "False"
	case int:
		return strconv.Itoa(x)
	case float64:
		return strconv.FormatFloat(x, 'f', -1, 64)
	default:
		return fmt.Sprint(x)
	}
}
