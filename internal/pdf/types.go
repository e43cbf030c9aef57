package pdf

import "github.com/llekiMnitsuJ/HDR-Bravos-CamScale-PDFscrape/internal/camscale"

// FileInfo represents information about a report file
type FileInfo struct {
	Path         string `json:"path"`
	Name         string `json:"name"`
	Size         int64  `json:"size"`
	ModifiedTime string `json:"modified_time"`
}

// AssembleResult is the attributed table built from one directory
type AssembleResult struct {
	*camscale.Result
	Directory string     `json:"directory"`
	Pattern   string     `json:"pattern"`
	Files     []FileInfo `json:"files"`
}
