// Package model defines the core domain types for pocketledger.
package model

import (
	"time"
)

// TransactionType distinguishes money coming in from money going out.
type TransactionType string

// Valid transaction types.
const (
	TypeIncome  TransactionType = "income"
	TypeExpense TransactionType = "expense"
)

// IsValid reports whether t is one of the known transaction types.
func (t TransactionType) IsValid() bool {
	return t == TypeIncome || t == TypeExpense
}

// Transaction represents a single recorded income or expense entry.
// Amounts are in the app's display currency. The store accepts whatever
// the caller supplies; validation happens at the command boundary.
type Transaction struct {
	ID          string          `json:"id"`
	Type        TransactionType `json:"type"`
	Amount      float64         `json:"amount"`
	Title       string          `json:"title,omitempty"`
	Description string          `json:"description,omitempty"`
	Date        string          `json:"date,omitempty"`
	Category    string          `json:"category,omitempty"`
	Note        string          `json:"note,omitempty"`
}

// Label returns the display label for the transaction, preferring the
// title over the description. Absent both, callers render a placeholder.
func (t *Transaction) Label() string {
	if t.Title != "" {
		return t.Title
	}
	return t.Description
}

// When parses the transaction's date string. The second return value is
// false when the date is missing or unparseable; such records are
// excluded from every date-bounded view and sort as the oldest value.
func (t *Transaction) When() (time.Time, bool) {
	return ParseDate(t.Date)
}
