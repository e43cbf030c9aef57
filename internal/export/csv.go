package export

import (
	"encoding/csv"
	"fmt"
	"io"

	"github.com/llekiMnitsuJ/HDR-Bravos-CamScale-PDFscrape/internal/camscale"
)

// WriteCSV writes a header row followed by one row per record
func WriteCSV(w io.Writer, t *camscale.Table) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(camscale.Columns); err != nil {
		return fmt.Errorf("failed to write csv header: %w", err)
	}

	row := make([]string, len(camscale.Columns))
	for i, r := range t.Records {
		for j, v := range r.Values() {
			row[j] = cellString(v)
		}
		if err := cw.Write(row); err != nil {
			return fmt.Errorf("failed to write csv row %d: %w", i+1, err)
		}
	}

	cw.Flush()
	return cw.Error()
}
