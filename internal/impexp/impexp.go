// Package impexp converts between the ledger's records and the two exchange
// formats: tabular CSV (the native file shape) and a JSON array of objects.
// Imports are all-or-nothing: a missing required column or an unparseable
// row aborts the whole import before anything is written.
package impexp

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/nmantri/spendwise/internal/ledger"
	apperrors "github.com/nmantri/spendwise/internal/shared/errors"
)

// RequiredColumns must all be present in imported data. The id column is
// optional; missing ids are assigned 1..N positionally.
var RequiredColumns = []string{
	ledger.ColDate, ledger.ColType, ledger.ColCategory,
	ledger.ColAmount, ledger.ColDescription,
}

// ExportCSV writes the ledger in its native tabular format: a header row
// followed by one row per transaction.
func ExportCSV(w io.Writer, txs []ledger.Transaction) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(ledger.Columns); err != nil {
		return apperrors.IO(err, "writing export header")
	}
	for _, tx := range txs {
		row := []string{
			strconv.Itoa(tx.ID),
			tx.Date.String(),
			string(tx.Type),
			tx.Category,
			tx.Amount.String(),
			tx.Description,
		}
		if err := cw.Write(row); err != nil {
			return apperrors.IO(err, "writing export row")
		}
	}
	cw.Flush()
	if err := cw.Error(); err != nil {
		return apperrors.IO(err, "flushing export")
	}
	return nil
}

// ExportJSON writes the ledger as an array of objects with the date rendered
// as a YYYY-MM-DD string.
func ExportJSON(w io.Writer, txs []ledger.Transaction) error {
	if txs == nil {
		txs = []ledger.Transaction{}
	}
	enc := json.NewEncoder(w)
	if err := enc.Encode(txs); err != nil {
		return apperrors.IO(err, "encoding export")
	}
	return nil
}

// ImportCSV parses tabular data into transactions. The header must contain
// every required column, in any order.
func ImportCSV(r io.Reader) ([]ledger.Transaction, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1

	header, err := cr.Read()
	if err == io.EOF {
		return nil, apperrors.Schema("empty file, missing header row")
	}
	if err != nil {
		return nil, apperrors.Parse(err, "reading header row")
	}

	index := make(map[string]int, len(header))
	for i, name := range header {
		index[strings.TrimSpace(strings.ToLower(name))] = i
	}
	for _, col := range RequiredColumns {
		if _, ok := index[col]; !ok {
			return nil, apperrors.Schema("missing required column %q", col)
		}
	}
	idIdx, hasID := index[ledger.ColID]

	var txs []ledger.Transaction
	for line := 2; ; line++ {
		row, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, apperrors.Parse(err, "reading row %d", line)
		}

		field := func(i int) string {
			if i < len(row) {
				return strings.TrimSpace(row[i])
			}
			return ""
		}

		tx, err := buildTransaction(
			field(index[ledger.ColDate]),
			field(index[ledger.ColType]),
			field(index[ledger.ColCategory]),
			field(index[ledger.ColAmount]),
			field(index[ledger.ColDescription]),
		)
		if err != nil {
			return nil, fmt.Errorf("row %d: %w", line, err)
		}
		if hasID {
			if id, err := strconv.Atoi(field(idIdx)); err == nil {
				tx.ID = id
			}
		}
		txs = append(txs, tx)
	}
	return txs, nil
}

// jsonRecord mirrors one object of the JSON exchange format. Pointers detect
// absent keys so schema errors can be told apart from empty values.
type jsonRecord struct {
	ID          *int             `json:"id"`
	Date        *string          `json:"date"`
	Type        *string          `json:"type"`
	Category    *string          `json:"category"`
	Amount      *decimal.Decimal `json:"amount"`
	Description *string          `json:"description"`
}

// ImportJSON parses an array of objects into transactions. Every object must
// carry all required keys.
func ImportJSON(r io.Reader) ([]ledger.Transaction, error) {
	var records []jsonRecord
	if err := json.NewDecoder(r).Decode(&records); err != nil {
		return nil, apperrors.Parse(err, "decoding JSON import")
	}

	var txs []ledger.Transaction
	for i, rec := range records {
		if rec.Date == nil || rec.Type == nil || rec.Category == nil ||
			rec.Amount == nil || rec.Description == nil {
			return nil, apperrors.Schema("record %d is missing required columns", i+1)
		}
		tx, err := buildTransaction(*rec.Date, *rec.Type, *rec.Category, rec.Amount.String(), *rec.Description)
		if err != nil {
			return nil, fmt.Errorf("record %d: %w", i+1, err)
		}
		if rec.ID != nil {
			tx.ID = *rec.ID
		}
		txs = append(txs, tx)
	}
	return txs, nil
}

func buildTransaction(date, txType, category, amount, description string) (ledger.Transaction, error) {
	d, err := ledger.ParseDate(date)
	if err != nil {
		return ledger.Transaction{}, apperrors.Parse(err, "unparseable date %q", date)
	}
	amt, err := decimal.NewFromString(amount)
	if err != nil {
		return ledger.Transaction{}, apperrors.Validation("amount %q is not a number", amount)
	}
	return ledger.Transaction{
		Date:        d,
		Type:        ledger.Type(txType),
		Category:    category,
		Amount:      amt,
		Description: description,
	}, nil
}
