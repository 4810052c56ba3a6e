package ledger

import (
	"context"
	"testing"
	"time"

	"github.com/fmansouri/pocketledger/internal/model"
	"github.com/fmansouri/pocketledger/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fixedNow pins the reference clock for range filtering.
var fixedNow = time.Date(2025, 6, 15, 12, 0, 0, 0, time.UTC)

func newClockedStore(t *testing.T) *Store {
	t.Helper()
	store := NewStore(testutil.NewKV(t), WithClock(func() time.Time { return fixedNow }))
	require.NoError(t, store.Hydrate(context.Background()))
	t.Cleanup(func() { _ = store.Close() })
	return store
}

func seedHistory(t *testing.T, store *Store) {
	t.Helper()
	for _, tx := range []model.Transaction{
		{ID: "today", Type: model.TypeExpense, Amount: 10, Date: "2025-06-15"},
		{ID: "yesterday", Type: model.TypeExpense, Amount: 20, Date: "2025-06-14"},
		{ID: "lastweek", Type: model.TypeIncome, Amount: 30, Date: "2025-06-09"},
		{ID: "threeweeks", Type: model.TypeIncome, Amount: 40, Date: "2025-05-28"},
		{ID: "ancient", Type: model.TypeExpense, Amount: 50, Date: "2024-01-01"},
		{ID: "undated", Type: model.TypeIncome, Amount: 60},
		{ID: "garbage", Type: model.TypeExpense, Amount: 70, Date: "not-a-date"},
	} {
		store.AddTransaction(tx)
	}
}

func historyIDs(items []model.Transaction) []string {
	ids := make([]string, len(items))
	for i, t := range items {
		ids[i] = t.ID
	}
	return ids
}

func TestHistory_RangeFilters(t *testing.T) {
	store := newClockedStore(t)
	seedHistory(t, store)

	tests := []struct {
		name string
		rng  Range
		want []string
	}{
		{
			name: "all includes everything regardless of date validity",
			rng:  RangeAll,
			want: []string{"today", "yesterday", "lastweek", "threeweeks", "ancient", "undated", "garbage"},
		},
		{
			name: "day matches today's calendar date only",
			rng:  RangeDay,
			want: []string{"today"},
		},
		{
			name: "week includes records up to seven days old",
			rng:  RangeWeek,
			want: []string{"today", "yesterday", "lastweek"},
		},
		{
			name: "month includes records up to thirty days old",
			rng:  RangeMonth,
			want: []string{"today", "yesterday", "lastweek", "threeweeks"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := historyIDs(store.History(tt.rng))
			assert.ElementsMatch(t, tt.want, got)
		})
	}
}

func TestHistory_SortsDescendingWithDatelessLast(t *testing.T) {
	store := newClockedStore(t)
	seedHistory(t, store)

	got := historyIDs(store.History(RangeAll))
	require.Len(t, got, 7)
	assert.Equal(t, []string{"today", "yesterday", "lastweek", "threeweeks", "ancient"}, got[:5])
	// Missing and unparseable dates sort as the oldest value, keeping
	// their insertion order.
	assert.Equal(t, []string{"undated", "garbage"}, got[5:])
}

func TestStats_PerRange(t *testing.T) {
	store := newClockedStore(t)
	seedHistory(t, store)

	all := store.Stats(RangeAll)
	assert.InDelta(t, 130, all.TotalIncome, 1e-9)
	assert.InDelta(t, 150, all.TotalExpense, 1e-9)
	assert.InDelta(t, -20, all.Balance, 1e-9)

	week := store.Stats(RangeWeek)
	assert.InDelta(t, 30, week.TotalIncome, 1e-9)
	assert.InDelta(t, 30, week.TotalExpense, 1e-9)
	assert.Zero(t, week.Balance)

	assert.InDelta(t, all.TotalIncome, store.TotalIncome(RangeAll), 1e-9)
	assert.InDelta(t, all.TotalExpense, store.TotalExpense(RangeAll), 1e-9)
}

func TestTotalOwed_ExcludesPaid(t *testing.T) {
	store := newClockedStore(t)

	store.AddDebt(model.Debt{ID: "d1", Person: "Omar", Amount: 100, Date: "2025-06-01"})
	store.AddDebt(model.Debt{ID: "d2", Person: "Lina", Amount: 250, Date: "2025-06-02"})
	store.ToggleDebtPaid("d1")

	assert.InDelta(t, 250, store.TotalOwed(), 1e-9)
	assert.Len(t, store.Debts(true), 1)
	assert.Len(t, store.Debts(false), 2)
}

func TestCategoryTotals_GroupsUntaggedUnderOther(t *testing.T) {
	store := newClockedStore(t)

	store.AddTransaction(model.Transaction{ID: "t1", Type: model.TypeExpense, Amount: 120, Category: "Food", Date: "2025-06-15"})
	store.AddTransaction(model.Transaction{ID: "t2", Type: model.TypeExpense, Amount: 80, Category: "Food", Date: "2025-06-14"})
	store.AddTransaction(model.Transaction{ID: "t3", Type: model.TypeIncome, Amount: 900, Category: "Salary", Date: "2025-06-01"})
	store.AddTransaction(model.Transaction{ID: "t4", Type: model.TypeExpense, Amount: 33, Date: "2025-06-15"})

	totals := store.CategoryTotals(RangeAll)
	require.Len(t, totals, 3)
	assert.InDelta(t, 200, totals["Food"].Expense, 1e-9)
	assert.InDelta(t, 900, totals["Salary"].Income, 1e-9)
	assert.InDelta(t, 33, totals[OtherCategory].Expense, 1e-9)

	day := store.CategoryTotals(RangeDay)
	require.Len(t, day, 2)
	assert.InDelta(t, 120, day["Food"].Expense, 1e-9)
}

func TestParseRange(t *testing.T) {
	for _, valid := range []string{"all", "day", "week", "month", ""} {
		_, err := ParseRange(valid)
		assert.NoError(t, err, valid)
	}

	_, err := ParseRange("year")
	assert.Error(t, err)
}
