package pdf

import (
	"fmt"
	"os"

	"github.com/pdfcpu/pdfcpu/pkg/api"
	"github.com/pdfcpu/pdfcpu/pkg/pdfcpu/model"
	"github.com/pkg/errors"
)

// Validator checks report files before their text is extracted
type Validator struct {
	maxFileSize int64
}

// NewValidator creates a new report file validator with the specified constraints
func NewValidator(maxFileSize int64) *Validator {
	return &Validator{
		maxFileSize: maxFileSize,
	}
}

// ValidateFileInfo performs basic validation on file info without opening the file
func (v *Validator) ValidateFileInfo(filePath string, fileInfo os.FileInfo) error {
	if fileInfo.IsDir() {
		return fmt.Errorf("path is a directory, not a file: %s", filePath)
	}

	if !isPDF(filePath) && !isTextDump(filePath) {
		return fmt.Errorf("file is not a PDF or text dump: %s", filePath)
	}

	if fileInfo.Size() == 0 {
		return fmt.Errorf("file is empty: %s", filePath)
	}

	if fileInfo.Size() > v.maxFileSize {
		return fmt.Errorf("file too large: %d bytes (max: %d bytes)",
			fileInfo.Size(), v.maxFileSize)
	}

	return nil
}

// ValidateFile stats the file and, for PDFs, checks that pdfcpu can read its
// page tree. It returns the page count, or 0 for text dumps.
func (v *Validator) ValidateFile(filePath string) (int, error) {
	if filePath == "" {
		return 0, errors.New("path cannot be empty")
	}

	fileInfo, err := os.Stat(filePath)
	if os.IsNotExist(err) {
		return 0, fmt.Errorf("file does not exist: %s", filePath)
	}
	if err != nil {
		return 0, errors.Wrap(err, "cannot access file")
	}

	if err := v.ValidateFileInfo(filePath, fileInfo); err != nil {
		return 0, err
	}

	if !isPDF(filePath) {
		return 0, nil
	}
	return v.pageCount(filePath)
}

func (v *Validator) pageCount(filePath string) (int, error) {
	file, err := os.Open(filePath)
	if err != nil {
		return 0, errors.Wrap(err, "failed to open PDF file")
	}
	defer file.Close()

	conf := model.NewDefaultConfiguration()
	conf.ValidationMode = model.ValidationRelaxed

	ctx, err := api.ReadContext(file, conf)
	if err != nil {
		return 0, errors.Wrapf(err, "invalid PDF file %s", filePath)
	}

	if err := ctx.EnsurePageCount(); err != nil {
		return 0, errors.Wrapf(err, "failed to read page tree of %s", filePath)
	}

	if ctx.PageCount == 0 {
		return 0, fmt.Errorf("PDF has no pages: %s", filePath)
	}
	return ctx.PageCount, nil
}
