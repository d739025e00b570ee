package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/nmantri/spendwise/internal/ledger"
	"github.com/nmantri/spendwise/internal/transport/httpapi/middleware"
)

// LedgerServiceInterface defines the ledger operations needed by
// TransactionHandler.
type LedgerServiceInterface interface {
	List(ctx context.Context, user string, f ledger.Filter) ([]ledger.Transaction, error)
	Append(ctx context.Context, user string, in ledger.Input) (ledger.Transaction, error)
	Update(ctx context.Context, user string, id int, changes map[string]string) error
	Delete(ctx context.Context, user string, id int) error
}

// TransactionHandler handles transaction-related HTTP requests
type TransactionHandler struct {
	ledgerService LedgerServiceInterface
}

// NewTransactionHandler creates a new transaction handler
func NewTransactionHandler(ledgerService LedgerServiceInterface) *TransactionHandler {
	return &TransactionHandler{ledgerService: ledgerService}
}

// ListTransactions handles GET /transactions with optional start_date,
// end_date, category and type filters. The date range is inclusive.
func (h *TransactionHandler) ListTransactions(w http.ResponseWriter, r *http.Request) {
	username, ok := middleware.GetUsernameFromContext(r.Context())
	if !ok {
		respondError(w, "unauthorized", http.StatusUnauthorized)
		return
	}

	var f ledger.Filter
	q := r.URL.Query()
	if v := q.Get("start_date"); v != "" {
		d, err := ledger.ParseDate(v)
		if err != nil {
			respondError(w, "invalid start_date, expected YYYY-MM-DD", http.StatusBadRequest)
			return
		}
		f.From = d
	}
	if v := q.Get("end_date"); v != "" {
		d, err := ledger.ParseDate(v)
		if err != nil {
			respondError(w, "invalid end_date, expected YYYY-MM-DD", http.StatusBadRequest)
			return
		}
		f.To = d
	}
	f.Category = q.Get("category")
	f.Type = ledger.Type(q.Get("type"))

	txs, err := h.ledgerService.List(r.Context(), username, f)
	if err != nil {
		respondAppError(w, err)
		return
	}
	if txs == nil {
		txs = []ledger.Transaction{}
	}
	respondJSON(w, txs, http.StatusOK)
}

// CreateTransaction handles POST /transactions
func (h *TransactionHandler) CreateTransaction(w http.ResponseWriter, r *http.Request) {
	username, ok := middleware.GetUsernameFromContext(r.Context())
	if !ok {
		respondError(w, "unauthorized", http.StatusUnauthorized)
		return
	}

	var in ledger.Input
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		respondError(w, "invalid request body", http.StatusBadRequest)
		return
	}

	tx, err := h.ledgerService.Append(r.Context(), username, in)
	if err != nil {
		respondAppError(w, err)
		return
	}
	respondJSON(w, tx, http.StatusCreated)
}

// UpdateTransaction handles PUT /transactions/{id}. The body is a partial
// object; only recognized column names are applied.
func (h *TransactionHandler) UpdateTransaction(w http.ResponseWriter, r *http.Request) {
	username, ok := middleware.GetUsernameFromContext(r.Context())
	if !ok {
		respondError(w, "unauthorized", http.StatusUnauthorized)
		return
	}

	id, err := strconv.Atoi(chi.URLParam(r, "id"))
	if err != nil {
		respondError(w, "invalid transaction id", http.StatusBadRequest)
		return
	}

	dec := json.NewDecoder(r.Body)
	dec.UseNumber()
	var raw map[string]any
	if err := dec.Decode(&raw); err != nil {
		respondError(w, "invalid request body", http.StatusBadRequest)
		return
	}

	changes := make(map[string]string, len(raw))
	for key, value := range raw {
		switch v := value.(type) {
		case string:
			changes[key] = v
		case json.Number:
			changes[key] = v.String()
		default:
			respondError(w, "field "+key+" must be a string or number", http.StatusBadRequest)
			return
		}
	}

	if err := h.ledgerService.Update(r.Context(), username, id, changes); err != nil {
		respondAppError(w, err)
		return
	}
	respondJSON(w, map[string]string{"message": "transaction updated"}, http.StatusOK)
}

// DeleteTransaction handles DELETE /transactions/{id}. Deleting an absent
// id succeeds as a no-op.
func (h *TransactionHandler) DeleteTransaction(w http.ResponseWriter, r *http.Request) {
	username, ok := middleware.GetUsernameFromContext(r.Context())
	if !ok {
		respondError(w, "unauthorized", http.StatusUnauthorized)
		return
	}

	id, err := strconv.Atoi(chi.URLParam(r, "id"))
	if err != nil {
		respondError(w, "invalid transaction id", http.StatusBadRequest)
		return
	}

	if err := h.ledgerService.Delete(r.Context(), username, id); err != nil {
		respondAppError(w, err)
		return
	}
	respondJSON(w, map[string]string{"message": "transaction deleted"}, http.StatusOK)
}
