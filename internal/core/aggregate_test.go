package core

import "testing"

func TestSummarizeEndToEnd(t *testing.T) {
	ts := []Transaction{
		tx("t1", "u1", 10000, Revenue, Paid, "2024-01-05"),
		tx("t2", "u1", 4000, Expense, Pending, "2024-01-10"),
		tx("t3", "u1", 2000, Expense, Paid, "2024-02-01"),
	}
	s := Summarize(ts)

	if s.Balance.Cents != 8000 {
		t.Fatalf("balance: expected 8000 (pending expense excluded), got %d", s.Balance.Cents)
	}
	if s.TotalRevenue.Cents != 10000 {
		t.Fatalf("total revenue: expected 10000, got %d", s.TotalRevenue.Cents)
	}
	if s.TotalExpenses.Cents != 6000 {
		t.Fatalf("total expenses: expected 6000, got %d", s.TotalExpenses.Cents)
	}
	if s.Savings.Cents != 4000 {
		t.Fatalf("savings: expected 4000, got %d", s.Savings.Cents)
	}
	if s.PaidRevenue.Cents != 10000 || s.PendingRevenue.Cents != 0 {
		t.Fatalf("revenue breakdown wrong: paid=%d pending=%d", s.PaidRevenue.Cents, s.PendingRevenue.Cents)
	}
	if s.PaidExpense.Cents != 2000 || s.PendingExpense.Cents != 4000 {
		t.Fatalf("expense breakdown wrong: paid=%d pending=%d", s.PaidExpense.Cents, s.PendingExpense.Cents)
	}
}

func TestBalanceIgnoresPending(t *testing.T) {
	ts := []Transaction{
		tx("t1", "u1", 99999, Revenue, Pending, "2024-01-05"),
		tx("t2", "u1", 12345, Expense, Pending, "2024-01-10"),
	}
	s := Summarize(ts)
	if s.Balance.Cents != 0 {
		t.Fatalf("pending-only set must yield zero balance, got %d", s.Balance.Cents)
	}
	if s.Savings.Cents != 99999-12345 {
		t.Fatalf("savings must include pending, got %d", s.Savings.Cents)
	}
}

func TestSavingsIdentity(t *testing.T) {
	sets := [][]Transaction{
		nil,
		{tx("a", "u1", 100, Revenue, Paid, "2024-01-01")},
		{
			tx("a", "u1", 300, Revenue, Pending, "2024-01-01"),
			tx("b", "u1", 500, Expense, Paid, "2024-02-01"),
			tx("c", "u1", 700, Expense, Failed, "2024-03-01"),
		},
	}
	for i, ts := range sets {
		s := Summarize(ts)
		if s.Savings.Cents != s.TotalRevenue.Cents-s.TotalExpenses.Cents {
			t.Fatalf("set %d: savings != revenue - expenses", i)
		}
	}
}

func TestSummarizeEmptySet(t *testing.T) {
	s := Summarize(nil)
	if s.Balance.Cents != 0 || s.Savings.Cents != 0 || s.TotalRevenue.Cents != 0 || s.TotalExpenses.Cents != 0 {
		t.Fatalf("empty set must be all zeros: %+v", s)
	}
}

func TestFailedStatusCountsInTotalsOnly(t *testing.T) {
	ts := []Transaction{
		tx("a", "u1", 1000, Revenue, Failed, "2024-01-01"),
	}
	s := Summarize(ts)
	if s.TotalRevenue.Cents != 1000 {
		t.Fatalf("failed transactions still count toward totals, got %d", s.TotalRevenue.Cents)
	}
	if s.Balance.Cents != 0 || s.PaidRevenue.Cents != 0 || s.PendingRevenue.Cents != 0 {
		t.Fatalf("failed transactions must not hit balance or breakdowns: %+v", s)
	}
}
