package export

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/llekiMnitsuJ/HDR-Bravos-CamScale-PDFscrape/internal/camscale"
)

// WriteJSON writes the records as an array of column-keyed objects
func WriteJSON(w io.Writer, t *camscale.Table) error {
	rows := make([]map[string]any, 0, t.Len())
	for _, r := range t.Records {
		rows = append(rows, r.Map())
	}

	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(rows); err != nil {
		return fmt.Errorf("failed to encode json: %w", err)
	}
	return nil
}
