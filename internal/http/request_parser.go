package http

import (
	"encoding/json"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"finsight/internal/core"
)

// maxBodyBytes caps request bodies; payloads here are small JSON documents.
const maxBodyBytes = 1 << 20

// decodeJSON reads a capped JSON body into dst.
func decodeJSON(r *http.Request, dst any) error {
	body, err := io.ReadAll(io.LimitReader(r.Body, maxBodyBytes))
	if err != nil {
		return err
	}
	return json.Unmarshal(body, dst)
}

// parseQuery builds the display query from URL parameters. Bad values fall
// back to the neutral default rather than erroring; the query pipeline
// clamps pagination anyway.
func parseQuery(values url.Values) core.Query {
	q := core.Query{
		Search:   strings.TrimSpace(values.Get("search")),
		Category: strings.TrimSpace(values.Get("category")),
		Status:   strings.TrimSpace(values.Get("status")),
		Sort:     core.ParseSortOrder(values.Get("sort")),
		Page:     1,
	}

	if v := strings.TrimSpace(values.Get("page")); v != "" {
		if p, err := strconv.Atoi(v); err == nil {
			q.Page = p
		}
	}
	if v := strings.TrimSpace(values.Get("from")); v != "" {
		if t, err := time.Parse("2006-01-02", v); err == nil {
			q.From = t
		}
	}
	if v := strings.TrimSpace(values.Get("to")); v != "" {
		if t, err := time.Parse("2006-01-02", v); err == nil {
			q.To = t
		}
	}

	return q
}

// parseYearMonth extracts a chart drill-down target from query parameters.
// Returns ok=false when neither parameter is present (monthly view).
func parseYearMonth(values url.Values) (year int, month time.Month, ok bool, err error) {
	yearStr := strings.TrimSpace(values.Get("year"))
	monthStr := strings.TrimSpace(values.Get("month"))
	if yearStr == "" && monthStr == "" {
		return 0, 0, false, nil
	}

	var fields []string
	y, convErr := strconv.Atoi(yearStr)
	if convErr != nil || y < 1 {
		fields = append(fields, "year")
	}
	m, convErr := strconv.Atoi(monthStr)
	if convErr != nil || m < 1 || m > 12 {
		fields = append(fields, "month")
	}
	if len(fields) > 0 {
		return 0, 0, false, core.NewValidationError(fields...)
	}
	return y, time.Month(m), true, nil
}
