package core

import (
	"sort"
	"strings"
	"time"
)

// PageSize is the fixed number of rows per display page. Reports bypass
// pagination entirely.
const PageSize = 10

// AdminIdentity is the privileged identity whose queries resolve against the
// sentinel owner instead of its own records.
const AdminIdentity = "admin"

// SentinelOwner is the fixed owner value holding the aggregate data set
// served to the privileged admin view. It is the single permitted exception
// to strict owner scoping.
const SentinelOwner = "all_users"

const (
	SortDateDesc   SortOrder = "date_desc"
	SortDateAsc    SortOrder = "date_asc"
	SortAmountDesc SortOrder = "amount_desc"
	SortAmountAsc  SortOrder = "amount_asc"
	SortOwnerDesc  SortOrder = "owner_desc"
	SortOwnerAsc   SortOrder = "owner_asc"
)

type (
	SortOrder string

	// Query carries the display/report parameters for one request. The zero
	// value means: no search, no filters, default sort, first page.
	Query struct {
		Search   string
		Category string
		Status   string
		From     time.Time
		To       time.Time
		Sort     SortOrder
		Page     int
	}

	// Page is one display page of the resolved view.
	Page struct {
		Rows       []Transaction
		TotalCount int
		Page       int
		TotalPages int
	}
)

// ParseSortOrder maps a request parameter to a sort order, falling back to
// date descending for unknown values.
func ParseSortOrder(s string) SortOrder {
	switch SortOrder(strings.ToLower(strings.TrimSpace(s))) {
	case SortDateAsc, SortDateDesc, SortAmountAsc, SortAmountDesc, SortOwnerAsc, SortOwnerDesc:
		return SortOrder(strings.ToLower(strings.TrimSpace(s)))
	default:
		return SortDateDesc
	}
}

// ScopeOwner maps a verified identity to the owner value its queries resolve
// against. The admin identity reads the sentinel aggregate set; everyone
// else reads exactly their own records.
func ScopeOwner(identity string) string {
	if identity == AdminIdentity {
		return SentinelOwner
	}
	return identity
}

// Run resolves the ordered, filtered, searched view of the given snapshot.
// The pipeline order is fixed: search, then filter, then sort, then
// paginate; totals always reflect the filtered set, not the raw one.
func (q Query) Run(ts []Transaction) Page {
	matched := q.sorted(q.filter(q.search(ts)))
	return paginate(matched, q.Page)
}

// RunUnpaginated resolves the same view without pagination, for exports.
func (q Query) RunUnpaginated(ts []Transaction) []Transaction {
	return q.sorted(q.filter(q.search(ts)))
}

// search keeps transactions whose owner id, decimal amount, or date (stored
// or "02 Jan 2006" form) contains the term, case-insensitively. A blank term
// matches everything.
func (q Query) search(ts []Transaction) []Transaction {
	term := strings.ToLower(strings.TrimSpace(q.Search))
	if term == "" {
		return ts
	}
	out := make([]Transaction, 0, len(ts))
	for _, t := range ts {
		if matchesTerm(t, term) {
			out = append(out, t)
		}
	}
	return out
}

func matchesTerm(t Transaction, term string) bool {
	candidates := []string{
		t.Owner,
		t.Amount.String(),
		t.Date.Format("2006-01-02"),
		t.Date.Format(time.RFC3339),
		t.Date.Format("02 Jan 2006"),
	}
	for _, c := range candidates {
		if strings.Contains(strings.ToLower(c), term) {
			return true
		}
	}
	return false
}

func (q Query) filter(ts []Transaction) []Transaction {
	category := strings.TrimSpace(q.Category)
	status := strings.TrimSpace(q.Status)
	if category == "" && status == "" && q.From.IsZero() && q.To.IsZero() {
		return ts
	}
	out := make([]Transaction, 0, len(ts))
	for _, t := range ts {
		if category != "" && !strings.EqualFold(string(t.Category), category) {
			continue
		}
		if status != "" && !strings.EqualFold(string(t.Status), status) {
			continue
		}
		if !q.From.IsZero() && dateOnly(t.Date).Before(dateOnly(q.From)) {
			continue
		}
		if !q.To.IsZero() && dateOnly(t.Date).After(dateOnly(q.To)) {
			continue
		}
		out = append(out, t)
	}
	return out
}

// dateOnly drops the time of day so range bounds compare whole calendar
// days. Bounds arrive as midnight values while stored dates may carry a
// time of day, and both range ends are inclusive.
func dateOnly(t time.Time) time.Time {
	y, m, d := t.UTC().Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// sorted returns a stably ordered copy; the input slice is never reordered
// in place so callers can treat snapshots as immutable.
func (q Query) sorted(ts []Transaction) []Transaction {
	out := append([]Transaction(nil), ts...)
	var less func(a, b Transaction) bool
	switch q.Sort {
	case SortDateAsc:
		less = func(a, b Transaction) bool { return a.Date.Before(b.Date) }
	case SortAmountAsc:
		less = func(a, b Transaction) bool { return a.Amount.Cents < b.Amount.Cents }
	case SortAmountDesc:
		less = func(a, b Transaction) bool { return a.Amount.Cents > b.Amount.Cents }
	case SortOwnerAsc:
		less = func(a, b Transaction) bool { return a.Owner < b.Owner }
	case SortOwnerDesc:
		less = func(a, b Transaction) bool { return a.Owner > b.Owner }
	default: // SortDateDesc
		less = func(a, b Transaction) bool { return a.Date.After(b.Date) }
	}
	sort.SliceStable(out, func(i, j int) bool { return less(out[i], out[j]) })
	return out
}

// paginate clamps the requested page into [1, totalPages] rather than
// erroring on out-of-range requests.
func paginate(ts []Transaction, page int) Page {
	total := len(ts)
	totalPages := (total + PageSize - 1) / PageSize
	if totalPages == 0 {
		totalPages = 1
	}
	if page < 1 {
		page = 1
	}
	if page > totalPages {
		page = totalPages
	}
	start := (page - 1) * PageSize
	end := start + PageSize
	if start > total {
		start = total
	}
	if end > total {
		end = total
	}
	return Page{
		Rows:       ts[start:end],
		TotalCount: total,
		Page:       page,
		TotalPages: totalPages,
	}
}
