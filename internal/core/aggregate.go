package core

// Summary holds the derived figures for one owner's full transaction set.
// It is always computed over the unfiltered snapshot; display-time search,
// filter and sort state never influence it.
type Summary struct {
	Balance        Money
	TotalRevenue   Money
	TotalExpenses  Money
	Savings        Money
	PaidRevenue    Money
	PendingRevenue Money
	PaidExpense    Money
	PendingExpense Money
}

// Summarize computes the summary figures under the inclusion rules:
//
//   - Balance counts Paid transactions only, signed by category.
//   - TotalRevenue/TotalExpenses count every status.
//   - Savings = TotalRevenue - TotalExpenses, Pending included.
//
// All accumulation is in integer cents.
func Summarize(ts []Transaction) Summary {
	var s Summary
	for _, t := range ts {
		revenue := t.Category.Sign() > 0
		if revenue {
			s.TotalRevenue.Cents += t.Amount.Cents
		} else {
			s.TotalExpenses.Cents += t.Amount.Cents
		}
		switch t.Status {
		case Paid:
			s.Balance.Cents += t.Category.Sign() * t.Amount.Cents
			if revenue {
				s.PaidRevenue.Cents += t.Amount.Cents
			} else {
				s.PaidExpense.Cents += t.Amount.Cents
			}
		case Pending:
			if revenue {
				s.PendingRevenue.Cents += t.Amount.Cents
			} else {
				s.PendingExpense.Cents += t.Amount.Cents
			}
		}
	}
	s.Savings.Cents = s.TotalRevenue.Cents - s.TotalExpenses.Cents
	return s
}
