package ledger

import (
	"sort"

	"github.com/fmansouri/pocketledger/internal/model"
)

// Summary holds the headline numbers for a range.
type Summary struct {
	TotalIncome  float64
	TotalExpense float64
	Balance      float64
}

// CategoryTotal accumulates per-category amounts.
type CategoryTotal struct {
	Income  float64
	Expense float64
}

// OtherCategory groups records without a category tag.
const OtherCategory = "Other"

// TotalIncome sums income amounts over transactions inside rng.
func (s *Store) TotalIncome(rng Range) float64 {
	return s.sumByType(model.TypeIncome, rng)
}

// TotalExpense sums expense amounts over transactions inside rng.
func (s *Store) TotalExpense(rng Range) float64 {
	return s.sumByType(model.TypeExpense, rng)
}

// Balance is total income minus total expense for rng.
func (s *Store) Balance(rng Range) float64 {
	return s.TotalIncome(rng) - s.TotalExpense(rng)
}

// Stats computes the headline numbers for rng in one pass.
func (s *Store) Stats(rng Range) Summary {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.ensureReady("Stats")

	now := s.now()
	var sum Summary
	for _, t := range s.transactions {
		if !inRange(t.Date, rng, now) {
			continue
		}
		switch t.Type {
		case model.TypeIncome:
			sum.TotalIncome += t.Amount
		case model.TypeExpense:
			sum.TotalExpense += t.Amount
		}
	}
	sum.Balance = sum.TotalIncome - sum.TotalExpense
	return sum
}

// TotalOwed sums amounts over debts still unpaid.
func (s *Store) TotalOwed() float64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.ensureReady("TotalOwed")

	var total float64
	for _, d := range s.debts {
		if !d.IsPaid {
			total += d.Amount
		}
	}
	return total
}

// CategoryTotals breaks transactions inside rng down by category tag.
// Untagged records group under OtherCategory.
func (s *Store) CategoryTotals(rng Range) map[string]CategoryTotal {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.ensureReady("CategoryTotals")

	now := s.now()
	totals := make(map[string]CategoryTotal)
	for _, t := range s.transactions {
		if !inRange(t.Date, rng, now) {
			continue
		}
		cat := t.Category
		if cat == "" {
			cat = OtherCategory
		}
		ct := totals[cat]
		switch t.Type {
		case model.TypeIncome:
			ct.Income += t.Amount
		case model.TypeExpense:
			ct.Expense += t.Amount
		}
		totals[cat] = ct
	}
	return totals
}

// History returns the transactions inside rng sorted descending by
// date, for display. Records with missing or unparseable dates sort as
// the oldest possible value.
func (s *Store) History(rng Range) []model.Transaction {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.ensureReady("History")

	now := s.now()
	out := make([]model.Transaction, 0, len(s.transactions))
	for _, t := range s.transactions {
		if inRange(t.Date, rng, now) {
			out = append(out, t)
		}
	}

	sort.SliceStable(out, func(i, j int) bool {
		ti, _ := out[i].When()
		tj, _ := out[j].When()
		return ti.After(tj)
	})
	return out
}

func (s *Store) sumByType(tt model.TransactionType, rng Range) float64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.ensureReady("sum")

	now := s.now()
	var total float64
	for _, t := range s.transactions {
		if t.Type != tt {
			continue
		}
		if !inRange(t.Date, rng, now) {
			continue
		}
		total += t.Amount
	}
	return total
}
