package export

import (
	"bytes"
	"encoding/csv"
	"fmt"

	"github.com/hosfile/prepay-api/internal/models"
)

// CSV renders the listing as comma-separated values with a header row.
func CSV(items []models.Submission) ([]byte, error) {
	buf := &bytes.Buffer{}
	w := csv.NewWriter(buf)
	if err := w.Write(columns); err != nil {
		return nil, fmt.Errorf("write csv header: %w", err)
	}
	for _, item := range items {
		if err := w.Write(rowOf(item)); err != nil {
			return nil, fmt.Errorf("write csv row: %w", err)
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return nil, fmt.Errorf("flush csv: %w", err)
	}
	return buf.Bytes(), nil
}
