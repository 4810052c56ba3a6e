package ledger

import (
	"context"
	"encoding/json"
	"strconv"
	"strings"

	"github.com/fmansouri/pocketledger/internal/common"
	"github.com/fmansouri/pocketledger/internal/model"
	"github.com/fmansouri/pocketledger/internal/service"
)

// Stored records may predate amount normalization: older snapshots hold
// amounts as JSON strings. Hydration coerces them; anything missing or
// non-numeric becomes 0.

type storedTransaction struct {
	ID          string                `json:"id"`
	Type        model.TransactionType `json:"type"`
	Amount      json.RawMessage       `json:"amount"`
	Title       string                `json:"title"`
	Description string                `json:"description"`
	Date        string                `json:"date"`
	Category    string                `json:"category"`
	Note        string                `json:"note"`
}

type storedDebt struct {
	ID     string          `json:"id"`
	Person string          `json:"person"`
	Amount json.RawMessage `json:"amount"`
	Date   string          `json:"date"`
	IsPaid bool            `json:"isPaid"`
}

func loadTransactions(ctx context.Context, kv service.KVStore) []model.Transaction {
	raw, ok, err := kv.Get(ctx, service.KeyTransactions)
	if err != nil {
		common.LogError(err, "ledger: load transactions failed", nil)
		return nil
	}
	if !ok {
		return nil
	}

	var stored []storedTransaction
	if err := json.Unmarshal([]byte(raw), &stored); err != nil {
		common.LogError(err, "ledger: parse transactions failed", nil)
		return nil
	}

	out := make([]model.Transaction, 0, len(stored))
	for _, st := range stored {
		out = append(out, model.Transaction{
			ID:          st.ID,
			Type:        st.Type,
			Amount:      coerceAmount(st.Amount),
			Title:       st.Title,
			Description: st.Description,
			Date:        st.Date,
			Category:    st.Category,
			Note:        st.Note,
		})
	}
	return out
}

func loadDebts(ctx context.Context, kv service.KVStore) []model.Debt {
	raw, ok, err := kv.Get(ctx, service.KeyDebts)
	if err != nil {
		common.LogError(err, "ledger: load debts failed", nil)
		return nil
	}
	if !ok {
		return nil
	}

	var stored []storedDebt
	if err := json.Unmarshal([]byte(raw), &stored); err != nil {
		common.LogError(err, "ledger: parse debts failed", nil)
		return nil
	}

	out := make([]model.Debt, 0, len(stored))
	for _, sd := range stored {
		out = append(out, model.Debt{
			ID:     sd.ID,
			Person: sd.Person,
			Amount: coerceAmount(sd.Amount),
			Date:   sd.Date,
			IsPaid: sd.IsPaid,
		})
	}
	return out
}

// coerceAmount parses a stored amount field that may be a JSON number,
// a quoted numeric string, or absent.
func coerceAmount(raw json.RawMessage) float64 {
	if len(raw) == 0 {
		return 0
	}

	var n float64
	if err := json.Unmarshal(raw, &n); err == nil {
		return n
	}

	var s string
	if err := json.Unmarshal(raw, &s); err == nil {
		if n, err := strconv.ParseFloat(strings.TrimSpace(s), 64); err == nil {
			return n
		}
	}
	return 0
}
