package report

import (
	"bytes"
	"encoding/csv"
	"fmt"
)

// encodeCSV writes the document as RFC 4180 CSV: one header row and one row
// per transaction. Field quoting is handled by the encoder, so embedded
// delimiters can never split a cell.
func encodeCSV(doc Document) (Export, error) {
	var buf bytes.Buffer
	w := csv.NewWriter(&buf)

	if err := w.Write(doc.Header); err != nil {
		return Export{}, fmt.Errorf("write csv header: %w", err)
	}
	for _, row := range doc.Rows {
		if err := w.Write(row); err != nil {
			return Export{}, fmt.Errorf("write csv row: %w", err)
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return Export{}, fmt.Errorf("flush csv: %w", err)
	}

	return Export{
		Data:      buf.Bytes(),
		MediaType: "text/csv",
		Filename:  filename("csv"),
	}, nil
}
