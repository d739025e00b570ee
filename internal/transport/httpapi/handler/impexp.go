package handler

import (
	"bytes"
	"context"
	"io"
	"net/http"

	"github.com/nmantri/spendwise/internal/impexp"
	"github.com/nmantri/spendwise/internal/ledger"
	"github.com/nmantri/spendwise/internal/transport/httpapi/middleware"
)

// maxImportSize bounds an uploaded import file.
const maxImportSize = 10 << 20 // 10 MiB

// LedgerImporter replaces a user's whole ledger with imported records.
type LedgerImporter interface {
	Load(ctx context.Context, user string) ([]ledger.Transaction, error)
	Import(ctx context.Context, user string, txs []ledger.Transaction) error
}

// ImpexpHandler handles ledger import and export requests.
type ImpexpHandler struct {
	ledgers LedgerImporter
}

// NewImpexpHandler creates a new import/export handler
func NewImpexpHandler(ledgers LedgerImporter) *ImpexpHandler {
	return &ImpexpHandler{ledgers: ledgers}
}

// ExportCSV handles GET /export/csv: the native tabular format as a file
// download.
func (h *ImpexpHandler) ExportCSV(w http.ResponseWriter, r *http.Request) {
	h.export(w, r, "csv", "text/csv; charset=utf-8", impexp.ExportCSV)
}

// ExportJSON handles GET /export/json: an array of objects with dates
// rendered as YYYY-MM-DD strings.
func (h *ImpexpHandler) ExportJSON(w http.ResponseWriter, r *http.Request) {
	h.export(w, r, "json", "application/json", impexp.ExportJSON)
}

func (h *ImpexpHandler) export(w http.ResponseWriter, r *http.Request, ext, contentType string, encode func(io.Writer, []ledger.Transaction) error) {
	username, ok := middleware.GetUsernameFromContext(r.Context())
	if !ok {
		respondError(w, "unauthorized", http.StatusUnauthorized)
		return
	}

	txs, err := h.ledgers.Load(r.Context(), username)
	if err != nil {
		respondAppError(w, err)
		return
	}

	// Encode into memory first so a failure can still produce a clean
	// error response.
	var buf bytes.Buffer
	if err := encode(&buf, txs); err != nil {
		respondAppError(w, err)
		return
	}

	w.Header().Set("Content-Type", contentType)
	w.Header().Set("Content-Disposition", `attachment; filename="`+username+`_expenses.`+ext+`"`)
	w.WriteHeader(http.StatusOK)
	w.Write(buf.Bytes())
}

// ImportCSV handles POST /import/csv. The upload destructively replaces the
// user's whole ledger; any schema or parse failure aborts the import with
// the existing ledger untouched.
func (h *ImpexpHandler) ImportCSV(w http.ResponseWriter, r *http.Request) {
	h.importFile(w, r, impexp.ImportCSV)
}

// ImportJSON handles POST /import/json.
func (h *ImpexpHandler) ImportJSON(w http.ResponseWriter, r *http.Request) {
	h.importFile(w, r, impexp.ImportJSON)
}

func (h *ImpexpHandler) importFile(w http.ResponseWriter, r *http.Request, parse func(io.Reader) ([]ledger.Transaction, error)) {
	username, ok := middleware.GetUsernameFromContext(r.Context())
	if !ok {
		respondError(w, "unauthorized", http.StatusUnauthorized)
		return
	}

	r.Body = http.MaxBytesReader(w, r.Body, maxImportSize)
	if err := r.ParseMultipartForm(maxImportSize); err != nil {
		respondError(w, "invalid multipart upload", http.StatusBadRequest)
		return
	}

	file, _, err := r.FormFile("file")
	if err != nil {
		respondError(w, "no file selected", http.StatusBadRequest)
		return
	}
	defer file.Close()

	txs, err := parse(file)
	if err != nil {
		respondAppError(w, err)
		return
	}

	if err := h.ledgers.Import(r.Context(), username, txs); err != nil {
		respondAppError(w, err)
		return
	}
	respondJSON(w, map[string]any{
		"message":  "data imported successfully",
		"imported": len(txs),
	}, http.StatusOK)
}
