package ledger

import "github.com/shopspring/decimal"

// Type classifies a transaction.
type Type string

const (
	TypeEarning    Type = "Earning"
	TypeSpend      Type = "Spend"
	TypeInvestment Type = "Investment"
)

// AllTypes returns all known transaction types.
func AllTypes() []Type {
	return []Type{TypeEarning, TypeSpend, TypeInvestment}
}

// IsValid returns true if the type is one of the known types.
func (t Type) IsValid() bool {
	switch t {
	case TypeEarning, TypeSpend, TypeInvestment:
		return true
	}
	return false
}

// Column names of the ledger file, in header order.
const (
	ColID          = "id"
	ColDate        = "date"
	ColType        = "type"
	ColCategory    = "category"
	ColAmount      = "amount"
	ColDescription = "description"
)

// Columns is the ledger file header, in order.
var Columns = []string{ColID, ColDate, ColType, ColCategory, ColAmount, ColDescription}

// Transaction is one recorded income/expense/investment event.
// IDs are unique per user and assigned as max-existing+1; the amount is
// sign-agnostic and stored as entered.
type Transaction struct {
	ID          int             `json:"id"`
	Date        Date            `json:"date"`
	Type        Type            `json:"type"`
	Category    string          `json:"category"`
	Amount      decimal.Decimal `json:"amount"`
	Description string          `json:"description"`
}
