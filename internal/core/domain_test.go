package core

import (
	"strings"
	"testing"
	"time"
)

func TestParseCategory(t *testing.T) {
	cases := []struct {
		in   string
		want Category
		ok   bool
	}{
		{"Revenue", Revenue, true},
		{"revenue", Revenue, true},
		{"EXPENSE", Expense, true},
		{" expense ", Expense, true},
		{"income", "", false},
		{"", "", false},
	}
	for i, tc := range cases {
		got, err := ParseCategory(tc.in)
		if tc.ok && (err != nil || got != tc.want) {
			t.Fatalf("case %d: expected %q, got %q (err=%v)", i, tc.want, got, err)
		}
		if !tc.ok && err == nil {
			t.Fatalf("case %d: expected error for %q", i, tc.in)
		}
	}
}

func TestParseStatus(t *testing.T) {
	cases := []struct {
		in   string
		want Status
		ok   bool
	}{
		{"Paid", Paid, true},
		{"pending", Pending, true},
		{"FAILED", Failed, true},
		{"done", "", false},
	}
	for i, tc := range cases {
		got, err := ParseStatus(tc.in)
		if tc.ok && (err != nil || got != tc.want) {
			t.Fatalf("case %d: expected %q, got %q (err=%v)", i, tc.want, got, err)
		}
		if !tc.ok && err == nil {
			t.Fatalf("case %d: expected error for %q", i, tc.in)
		}
	}
}

func TestCategorySignDefaultsToExpense(t *testing.T) {
	if Revenue.Sign() != 1 {
		t.Fatalf("Revenue sign should be +1")
	}
	if Expense.Sign() != -1 {
		t.Fatalf("Expense sign should be -1")
	}
	// Unknown categories fall back to the Expense sign rather than erroring.
	if Category("").Sign() != -1 || Category("Garbage").Sign() != -1 {
		t.Fatalf("unknown category should default to Expense sign")
	}
}

func TestTransactionValidate(t *testing.T) {
	good := Transaction{
		ID:       "tx-1",
		Date:     time.Date(2024, 1, 5, 0, 0, 0, 0, time.UTC),
		Amount:   Money{Cents: 10000},
		Category: Revenue,
		Status:   Paid,
		Owner:    "u1",
	}
	if err := good.Validate(); err != nil {
		t.Fatalf("expected ok, got %v", err)
	}

	cases := []struct {
		name  string
		mut   func(tx *Transaction)
		field string
	}{
		{"zero date", func(tx *Transaction) { tx.Date = time.Time{} }, "date"},
		{"zero amount", func(tx *Transaction) { tx.Amount = Money{} }, "amount"},
		{"negative amount", func(tx *Transaction) { tx.Amount = Money{Cents: -50} }, "amount"},
		{"bad category", func(tx *Transaction) { tx.Category = "Income" }, "category"},
		{"bad status", func(tx *Transaction) { tx.Status = "Done" }, "status"},
		{"blank owner", func(tx *Transaction) { tx.Owner = "  " }, "owner"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			tx := good
			tc.mut(&tx)
			err := tx.Validate()
			if err == nil {
				t.Fatalf("expected error")
			}
			if !strings.Contains(err.Error(), tc.field) {
				t.Fatalf("error should name field %q, got %q", tc.field, err.Error())
			}
		})
	}
}

func TestPatchValidateAndApply(t *testing.T) {
	if err := (Patch{}).Validate(); err != nil {
		t.Fatalf("empty patch should validate, got %v", err)
	}

	bad := Money{Cents: 0}
	if err := (Patch{Amount: &bad}).Validate(); err == nil {
		t.Fatalf("expected error for zero amount patch")
	}

	base := Transaction{
		ID:       "tx-1",
		Date:     time.Date(2024, 1, 5, 0, 0, 0, 0, time.UTC),
		Amount:   Money{Cents: 100},
		Category: Revenue,
		Status:   Pending,
		Owner:    "u1",
	}
	amount := Money{Cents: 250}
	status := Paid
	got := (Patch{Amount: &amount, Status: &status}).Apply(base)
	if got.Amount.Cents != 250 || got.Status != Paid {
		t.Fatalf("patch not applied: %+v", got)
	}
	if got.ID != base.ID || got.Owner != base.Owner || !got.Date.Equal(base.Date) {
		t.Fatalf("patch touched untargeted fields: %+v", got)
	}
}
