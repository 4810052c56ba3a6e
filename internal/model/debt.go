package model

// Debt represents money owed to or by a named counterparty.
type Debt struct {
	ID     string  `json:"id"`
	Person string  `json:"person"`
	Amount float64 `json:"amount"`
	Date   string  `json:"date"`
	IsPaid bool    `json:"isPaid"`
}
