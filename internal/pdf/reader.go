package pdf

import (
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/ledongthuc/pdf"
	"github.com/pkg/errors"
)

const (
	// pdftotext separates pages with a form feed
	pageSeparator = "\f"
	// a vertical gap wider than this many font sizes becomes a blank line
	blankLineGap = 1.8
	// a horizontal gap wider than this share of the font size becomes a space
	wordGap = 0.15
)

// Reader turns a report file into its page texts
type Reader struct {
	maxFileSize int64
	maxTextSize int
}

// NewReader creates a new report reader with the specified constraints
func NewReader(maxFileSize int64) *Reader {
	return &Reader{
		maxFileSize: maxFileSize,
		maxTextSize: 1024 * 1024, // 1MB per page is far beyond any report page
	}
}

// ReadPages returns one string per page, lines separated by "\r\n" the way
// pdftotext lays them out. Files with a .txt extension are read as pdftotext
// dumps.
func (r *Reader) ReadPages(path string) ([]string, error) {
	if path == "" {
		return nil, errors.New("path cannot be empty")
	}

	if isTextDump(path) {
		return r.readTextDump(path)
	}

	f, reader, err := pdf.Open(path)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to open PDF %s", path)
	}
	defer f.Close()

	pages := make([]string, 0, reader.NumPage())
	for pageNum := 1; pageNum <= reader.NumPage(); pageNum++ {
		page := reader.Page(pageNum)
		if page.V.IsNull() {
			pages = append(pages, "")
			continue
		}

		text, err := pageText(page)
		if err != nil {
			return nil, errors.Wrapf(err, "failed to extract text from page %d of %s", pageNum, path)
		}
		if len(text) > r.maxTextSize {
			return nil, errors.Errorf("page %d of %s exceeds %d bytes of text", pageNum, path, r.maxTextSize)
		}
		pages = append(pages, text)
	}

	if len(pages) == 0 {
		return nil, errors.Errorf("no pages in PDF %s", path)
	}
	return pages, nil
}

func (r *Reader) readTextDump(path string) ([]string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to read text dump %s", path)
	}
	if int64(len(data)) > r.maxFileSize {
		return nil, errors.Errorf("file too large: %d bytes (max: %d bytes)", len(data), r.maxFileSize)
	}

	pages := strings.Split(string(data), pageSeparator)
	// pdftotext terminates the last page with a form feed too
	if len(pages) > 1 && strings.TrimSpace(pages[len(pages)-1]) == "" {
		pages = pages[:len(pages)-1]
	}
	return pages, nil
}

// pageText rebuilds the page's lines from positioned text runs, falling back
// to the library's plain text when rows cannot be computed.
func pageText(page pdf.Page) (string, error) {
	rows, err := page.GetTextByRow()
	if err != nil || len(rows) == 0 {
		return page.GetPlainText(nil)
	}

	// PDF y grows upwards
	sort.SliceStable(rows, func(i, j int) bool { return rows[i].Position > rows[j].Position })

	var lines []string
	var prevPos int64
	for i, row := range rows {
		if len(row.Content) == 0 {
			continue
		}
		size := row.Content[0].FontSize
		if size <= 0 {
			size = 10
		}
		if i > 0 && float64(prevPos-row.Position) > blankLineGap*size {
			lines = append(lines, "")
		}
		lines = append(lines, joinRow(row.Content))
		prevPos = row.Position
	}
	return strings.Join(lines, "\r\n"), nil
}

func joinRow(texts pdf.TextHorizontal) string {
	runs := append(pdf.TextHorizontal(nil), texts...)
	sort.SliceStable(runs, func(i, j int) bool { return runs[i].X < runs[j].X })

	var b strings.Builder
	var end float64
	for i, t := range runs {
		if i > 0 && t.X-end > wordGap*t.FontSize && !strings.HasPrefix(t.S, " ") {
			b.WriteByte(' ')
		}
		b.WriteString(t.S)
		end = t.X + t.W
	}
	return strings.Join(strings.Fields(b.String()), " ")
}

func isTextDump(path string) bool {
	return strings.EqualFold(filepath.Ext(path), ".txt")
}

func isPDF(path string) bool {
	return strings.EqualFold(filepath.Ext(path), ".pdf")
}
