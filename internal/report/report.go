// Package report turns a resolved transaction view into a downloadable
// tabular document. Row selection reuses the core query pipeline; both
// encodings (CSV and PDF) render from the same intermediate of ordered
// columns and ordered cell strings.
package report

import (
	"errors"
	"fmt"
	"strings"

	"finsight/internal/core"
)

const (
	ColID          Column = "id"
	ColDate        Column = "date"
	ColAmount      Column = "amount"
	ColCategory    Column = "category"
	ColStatus      Column = "status"
	ColOwner       Column = "owner"
	ColUserProfile Column = "user_profile"
	ColCreatedAt   Column = "createdAt"
	ColUpdatedAt   Column = "updatedAt"
)

const (
	FormatCSV Format = "csv"
	FormatPDF Format = "pdf"
)

// dateLayout is the locale date form used for every date-valued cell.
const dateLayout = "02 Jan 2006"

type (
	// Column is one whitelisted export column identifier.
	Column string

	// Format selects the output encoding.
	Format string

	// Request describes one export: the ordered column projection, the row
	// selection parameters, and the encoding.
	Request struct {
		Columns []string
		Query   core.Query
		Format  Format
	}

	// Export is a finished document ready to stream to the caller.
	Export struct {
		Data      []byte
		MediaType string
		Filename  string
	}

	// Document is the encoding-independent intermediate: one header row and
	// one rendered row per transaction, cell order matching column order.
	Document struct {
		Header []string
		Rows   [][]string
	}

	// columnSpec binds a column identifier to its header title and cell
	// accessor, avoiding untyped field lookup by string key.
	columnSpec struct {
		title  string
		render func(core.Transaction) string
	}
)

// ErrNoData marks an export whose row selection matched nothing. It is a
// user-facing "no data" outcome, distinct from a validation failure.
var ErrNoData = errors.New("no transactions match the report parameters")

// ErrNoColumns marks a request with an empty column list.
var ErrNoColumns = errors.New("at least one column is required")

var columns = map[Column]columnSpec{
	ColID:       {"Id", func(t core.Transaction) string { return t.ID }},
	ColDate:     {"Date", func(t core.Transaction) string { return t.Date.Format(dateLayout) }},
	ColAmount:   {"Amount (in $)", func(t core.Transaction) string { return t.Amount.String() }},
	ColCategory: {"Category", func(t core.Transaction) string { return string(t.Category) }},
	ColStatus:   {"Status", func(t core.Transaction) string { return string(t.Status) }},
	ColOwner:    {"Owner", func(t core.Transaction) string { return t.Owner }},
	ColUserProfile: {"User Profile", func(t core.Transaction) string {
		return t.UserProfile
	}},
	ColCreatedAt: {"Created At", func(t core.Transaction) string { return t.CreatedAt.Format(dateLayout) }},
	ColUpdatedAt: {"Updated At", func(t core.Transaction) string { return t.UpdatedAt.Format(dateLayout) }},
}

// ParseColumns validates a requested projection against the whitelist. The
// request fails wholesale when any identifier is unknown; the error names
// every offender.
func ParseColumns(requested []string) ([]Column, error) {
	if len(requested) == 0 {
		return nil, ErrNoColumns
	}
	out := make([]Column, 0, len(requested))
	var invalid []string
	for _, raw := range requested {
		c := Column(raw)
		if _, ok := columns[c]; !ok {
			invalid = append(invalid, raw)
			continue
		}
		out = append(out, c)
	}
	if len(invalid) > 0 {
		return nil, core.NewValidationError(invalid...)
	}
	return out, nil
}

// ParseFormat maps a request parameter to a format, defaulting to PDF for
// blank input.
func ParseFormat(s string) (Format, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "csv":
		return FormatCSV, nil
	case "pdf", "":
		return FormatPDF, nil
	default:
		return "", core.NewValidationError("format")
	}
}

// Build runs the full export pipeline over an owner snapshot: validate the
// projection, select and order rows with the shared query pipeline, render
// the intermediate, then encode.
func Build(ts []core.Transaction, req Request) (Export, error) {
	cols, err := ParseColumns(req.Columns)
	if err != nil {
		return Export{}, err
	}

	rows := req.Query.RunUnpaginated(ts)
	if len(rows) == 0 {
		return Export{}, ErrNoData
	}

	doc := render(cols, rows)
	switch req.Format {
	case FormatCSV:
		return encodeCSV(doc)
	case FormatPDF:
		return encodePDF(doc)
	default:
		return Export{}, core.NewValidationError("format")
	}
}

func render(cols []Column, ts []core.Transaction) Document {
	doc := Document{
		Header: make([]string, len(cols)),
		Rows:   make([][]string, len(ts)),
	}
	for i, c := range cols {
		doc.Header[i] = columns[c].title
	}
	for i, t := range ts {
		row := make([]string, len(cols))
		for j, c := range cols {
			row[j] = sanitizeCell(columns[c].render(t))
		}
		doc.Rows[i] = row
	}
	return doc
}

// sanitizeCell strips control characters so no field content can corrupt
// the tabular structure of either encoding.
func sanitizeCell(s string) string {
	return strings.Map(func(r rune) rune {
		if r == '\n' || r == '\r' || r == '\t' {
			return ' '
		}
		if r < 32 {
			return -1
		}
		return r
	}, s)
}

func filename(ext string) string {
	return fmt.Sprintf("transaction-report.%s", ext)
}
