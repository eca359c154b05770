package report

import (
	"bytes"
	"errors"
	"strings"
	"testing"
	"time"

	"finsight/internal/core"
)

func sample() []core.Transaction {
	d := func(s string) time.Time {
		t, _ := time.Parse("2006-01-02", s)
		return t
	}
	return []core.Transaction{
		{ID: "t1", Date: d("2024-01-05"), Amount: core.Money{Cents: 10000}, Category: core.Revenue, Status: core.Paid, Owner: "u1", CreatedAt: d("2024-01-05"), UpdatedAt: d("2024-01-06")},
		{ID: "t2", Date: d("2024-01-10"), Amount: core.Money{Cents: 4000}, Category: core.Expense, Status: core.Pending, Owner: "u1", CreatedAt: d("2024-01-10"), UpdatedAt: d("2024-01-10")},
	}
}

func TestParseColumnsWhitelist(t *testing.T) {
	cols, err := ParseColumns([]string{"date", "amount", "status"})
	if err != nil {
		t.Fatalf("expected ok, got %v", err)
	}
	if len(cols) != 3 || cols[0] != ColDate || cols[1] != ColAmount {
		t.Fatalf("column order must be preserved: %v", cols)
	}

	_, err = ParseColumns([]string{"date", "amount", "bogus"})
	var verr *core.ValidationError
	if !errors.As(err, &verr) {
		t.Fatalf("expected ValidationError, got %v", err)
	}
	if !strings.Contains(verr.Error(), "bogus") {
		t.Fatalf("error must name the offending column: %v", verr)
	}

	_, err = ParseColumns([]string{"a", "b"})
	if errors.As(err, &verr); len(verr.Fields) != 2 {
		t.Fatalf("every offender must be named, got %v", verr)
	}

	if _, err := ParseColumns(nil); !errors.Is(err, ErrNoColumns) {
		t.Fatalf("empty projection needs its own error, got %v", err)
	}
}

func TestBuildRejectsWholesale(t *testing.T) {
	_, err := Build(sample(), Request{
		Columns: []string{"date", "nope"},
		Format:  FormatCSV,
	})
	var verr *core.ValidationError
	if !errors.As(err, &verr) {
		t.Fatalf("expected ValidationError, got %v", err)
	}
}

func TestBuildNoData(t *testing.T) {
	_, err := Build(sample(), Request{
		Columns: []string{"date"},
		Query:   core.Query{Category: "revenue", Status: "pending"},
		Format:  FormatCSV,
	})
	if !errors.Is(err, ErrNoData) {
		t.Fatalf("expected ErrNoData, got %v", err)
	}
}

func TestBuildCSV(t *testing.T) {
	exp, err := Build(sample(), Request{
		Columns: []string{"date", "amount", "category"},
		Query:   core.Query{Sort: core.SortAmountDesc},
		Format:  FormatCSV,
	})
	if err != nil {
		t.Fatalf("expected ok, got %v", err)
	}
	if exp.MediaType != "text/csv" || exp.Filename != "transaction-report.csv" {
		t.Fatalf("wrong envelope: %+v", exp)
	}

	lines := strings.Split(strings.TrimSpace(string(exp.Data)), "\n")
	if len(lines) != 3 {
		t.Fatalf("expected header + 2 rows, got %d lines", len(lines))
	}
	if lines[0] != "Date,Amount (in $),Category" {
		t.Fatalf("header wrong: %q", lines[0])
	}
	// Sort by amount desc puts the 100.00 revenue row first; amounts are
	// plain decimals, not currency-formatted.
	if !strings.Contains(lines[1], "100.00") || strings.Contains(lines[1], "$") {
		t.Fatalf("first row wrong: %q", lines[1])
	}
	if !strings.Contains(lines[1], "05 Jan 2024") {
		t.Fatalf("dates must use the locale form: %q", lines[1])
	}
}

func TestCSVEscapesEmbeddedDelimiters(t *testing.T) {
	ts := sample()
	ts[0].UserProfile = "https://cdn.example.com/u1.png?a=1,b=2"
	exp, err := Build(ts, Request{
		Columns: []string{"id", "user_profile"},
		Format:  FormatCSV,
	})
	if err != nil {
		t.Fatalf("expected ok, got %v", err)
	}
	lines := strings.Split(strings.TrimSpace(string(exp.Data)), "\n")
	// The embedded comma must be quoted away, keeping two logical columns.
	if !strings.Contains(lines[1], `"`) {
		t.Fatalf("embedded delimiter must be escaped: %q", lines[1])
	}
}

func TestBuildPDF(t *testing.T) {
	exp, err := Build(sample(), Request{
		Columns: []string{"id", "date", "amount", "category", "status"},
		Format:  FormatPDF,
	})
	if err != nil {
		t.Fatalf("expected ok, got %v", err)
	}
	if exp.MediaType != "application/pdf" || exp.Filename != "transaction-report.pdf" {
		t.Fatalf("wrong envelope: %+v", exp)
	}
	if !bytes.HasPrefix(exp.Data, []byte("%PDF")) {
		t.Fatalf("output is not a PDF document")
	}
}

func TestParseFormat(t *testing.T) {
	cases := []struct {
		in   string
		want Format
		ok   bool
	}{
		{"csv", FormatCSV, true},
		{"CSV", FormatCSV, true},
		{"pdf", FormatPDF, true},
		{"", FormatPDF, true},
		{"xlsx", "", false},
	}
	for _, tc := range cases {
		got, err := ParseFormat(tc.in)
		if tc.ok && (err != nil || got != tc.want) {
			t.Fatalf("%q: expected %q, got %q (err=%v)", tc.in, tc.want, got, err)
		}
		if !tc.ok && err == nil {
			t.Fatalf("%q: expected error", tc.in)
		}
	}
}

func TestSanitizeCell(t *testing.T) {
	if got := sanitizeCell("a\nb\rc\td"); got != "a b c d" {
		t.Fatalf("control characters must become spaces, got %q", got)
	}
}
