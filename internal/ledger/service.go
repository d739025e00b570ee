package ledger

import (
	"context"
	"strings"

	"github.com/shopspring/decimal"

	apperrors "github.com/nmantri/spendwise/internal/shared/errors"
)

// Input holds the raw fields of a transaction as submitted by a client.
type Input struct {
	Date        string `json:"date"`
	Type        string `json:"type"`
	Category    string `json:"category"`
	Amount      string `json:"amount"`
	Description string `json:"description"`
}

// Filter narrows a ledger listing. Zero-value fields are ignored; the date
// range is inclusive on both ends.
type Filter struct {
	From     Date
	To       Date
	Category string
	Type     Type
}

// Matches reports whether tx passes the filter.
func (f Filter) Matches(tx Transaction) bool {
	if !f.From.IsZero() && tx.Date.Before(f.From) {
		return false
	}
	if !f.To.IsZero() && tx.Date.After(f.To) {
		return false
	}
	if f.Category != "" && tx.Category != f.Category {
		return false
	}
	if f.Type != "" && tx.Type != f.Type {
		return false
	}
	return true
}

// Service handles ledger business logic: validation in front of the store.
type Service struct {
	store Store
}

// NewService creates a new ledger service
func NewService(store Store) *Service {
	return &Service{store: store}
}

// Init creates the user's ledger file if it does not exist yet.
func (s *Service) Init(ctx context.Context, user string) error {
	return s.store.Init(ctx, user)
}

// Load returns the user's full ledger.
func (s *Service) Load(ctx context.Context, user string) ([]Transaction, error) {
	return s.store.Load(ctx, user)
}

// List returns the user's transactions matching the filter, in file order.
func (s *Service) List(ctx context.Context, user string, f Filter) ([]Transaction, error) {
	txs, err := s.store.Load(ctx, user)
	if err != nil {
		return nil, err
	}
	matched := make([]Transaction, 0, len(txs))
	for _, tx := range txs {
		if f.Matches(tx) {
			matched = append(matched, tx)
		}
	}
	return matched, nil
}

// Append validates in and appends it to the user's ledger. The whole write
// is rejected on any validation failure.
func (s *Service) Append(ctx context.Context, user string, in Input) (Transaction, error) {
	if in.Date == "" || in.Type == "" || in.Category == "" || in.Amount == "" {
		return Transaction{}, apperrors.Validation("date, type, category and amount are required")
	}

	date, err := ParseDate(in.Date)
	if err != nil {
		return Transaction{}, apperrors.Validation("invalid date %q, expected YYYY-MM-DD", in.Date)
	}

	txType := Type(in.Type)
	if !txType.IsValid() {
		return Transaction{}, apperrors.Validation("invalid type %q", in.Type)
	}

	amount, err := decimal.NewFromString(strings.TrimSpace(in.Amount))
	if err != nil {
		return Transaction{}, apperrors.Validation("amount %q is not a number", in.Amount)
	}

	tx := Transaction{
		Date:        date,
		Type:        txType,
		Category:    in.Category,
		Amount:      amount,
		Description: in.Description,
	}

	return s.store.Append(ctx, user, tx)
}

// Update applies the recognized column values in changes to the transaction
// with the given id. Unknown keys are dropped; supplied values are validated
// before anything is written.
func (s *Service) Update(ctx context.Context, user string, id int, changes map[string]string) error {
	clean := make(map[string]string, len(changes))
	for key, value := range changes {
		switch key {
		case ColDate:
			if _, err := ParseDate(value); err != nil {
				return apperrors.Validation("invalid date %q, expected YYYY-MM-DD", value)
			}
		case ColType:
			if !Type(value).IsValid() {
				return apperrors.Validation("invalid type %q", value)
			}
		case ColAmount:
			if _, err := decimal.NewFromString(strings.TrimSpace(value)); err != nil {
				return apperrors.Validation("amount %q is not a number", value)
			}
		case ColCategory, ColDescription:
			// free-form
		default:
			continue // unrecognized column
		}
		clean[key] = value
	}
	if len(clean) == 0 {
		return apperrors.Validation("no updatable fields provided")
	}
	return s.store.Update(ctx, user, id, clean)
}

// Delete removes the transaction with the given id. Deleting an absent id
// succeeds as a no-op.
func (s *Service) Delete(ctx context.Context, user string, id int) error {
	return s.store.Delete(ctx, user, id)
}

// Import replaces the user's entire ledger with txs.
func (s *Service) Import(ctx context.Context, user string, txs []Transaction) error {
	return s.store.Replace(ctx, user, txs)
}
