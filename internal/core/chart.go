package core

import (
	"fmt"
	"sort"
	"time"
)

// Series is a pair of aligned time series for charting. Labels, Revenue and
// Expense always have equal length; a bucket without activity for one
// category carries 0, never a missing entry.
type Series struct {
	Labels  []string
	Revenue []float64
	Expense []float64
}

// MonthlySeries buckets transactions by (month, year) and sums the absolute
// amount per category. Bucket labels read "Jan 2024" and are ordered
// chronologically, not lexicographically.
func MonthlySeries(ts []Transaction) Series {
	type key struct {
		year  int
		month time.Month
	}
	revenue := make(map[key]int64)
	expense := make(map[key]int64)
	for _, t := range ts {
		k := key{year: t.Date.Year(), month: t.Date.Month()}
		cents := t.Amount.Cents
		if cents < 0 {
			cents = -cents
		}
		if t.Category.Sign() > 0 {
			revenue[k] += cents
		} else {
			expense[k] += cents
		}
	}

	keys := make([]key, 0, len(revenue)+len(expense))
	seen := make(map[key]struct{})
	for k := range revenue {
		keys = append(keys, k)
		seen[k] = struct{}{}
	}
	for k := range expense {
		if _, ok := seen[k]; !ok {
			keys = append(keys, k)
		}
	}
	sort.Slice(keys, func(i, j int) bool {
		if keys[i].year != keys[j].year {
			return keys[i].year < keys[j].year
		}
		return keys[i].month < keys[j].month
	})

	s := Series{
		Labels:  make([]string, len(keys)),
		Revenue: make([]float64, len(keys)),
		Expense: make([]float64, len(keys)),
	}
	for i, k := range keys {
		s.Labels[i] = fmt.Sprintf("%s %d", k.month.String()[:3], k.year)
		s.Revenue[i] = Money{Cents: revenue[k]}.Dollars()
		s.Expense[i] = Money{Cents: expense[k]}.Dollars()
	}
	return s
}

// DailySeries buckets one calendar month into per-day sums. Every day of the
// month gets a zero-padded label ("01".."31"), zero-activity days included;
// leap years are handled by computing the month length from the year.
func DailySeries(ts []Transaction, year int, month time.Month) Series {
	days := DaysInMonth(year, month)
	s := Series{
		Labels:  make([]string, days),
		Revenue: make([]float64, days),
		Expense: make([]float64, days),
	}
	revenue := make([]int64, days)
	expense := make([]int64, days)
	for _, t := range ts {
		if t.Date.Year() != year || t.Date.Month() != month {
			continue
		}
		d := t.Date.Day() - 1
		cents := t.Amount.Cents
		if cents < 0 {
			cents = -cents
		}
		if t.Category.Sign() > 0 {
			revenue[d] += cents
		} else {
			expense[d] += cents
		}
	}
	for i := 0; i < days; i++ {
		s.Labels[i] = fmt.Sprintf("%02d", i+1)
		s.Revenue[i] = Money{Cents: revenue[i]}.Dollars()
		s.Expense[i] = Money{Cents: expense[i]}.Dollars()
	}
	return s
}

// DaysInMonth returns the number of calendar days in the given month.
func DaysInMonth(year int, month time.Month) int {
	// Day 0 of the next month is the last day of this one.
	return time.Date(year, month+1, 0, 0, 0, 0, 0, time.UTC).Day()
}
