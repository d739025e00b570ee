package flatfile

import (
	"bytes"
	"context"
	"encoding/csv"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/nmantri/spendwise/internal/ledger"
	apperrors "github.com/nmantri/spendwise/internal/shared/errors"
)

// LedgerStore implements ledger.Store on a per-user CSV file with the
// header id,date,type,category,amount,description.
type LedgerStore struct {
	db *DB
}

var _ ledger.Store = (*LedgerStore)(nil)

// Init creates the user's ledger file with a header row if it is missing.
func (s *LedgerStore) Init(ctx context.Context, user string) error {
	lock := s.db.lockFor(user)
	lock.Lock()
	defer lock.Unlock()

	path := s.db.ledgerPath(user)
	if _, err := os.Stat(path); err == nil {
		return nil
	} else if !os.IsNotExist(err) {
		return apperrors.IO(err, "checking ledger file for %q", user)
	}
	return s.write(user, nil)
}

// Load reads the user's full ledger. A missing or empty file yields an
// empty slice.
func (s *LedgerStore) Load(ctx context.Context, user string) ([]ledger.Transaction, error) {
	lock := s.db.lockFor(user)
	lock.Lock()
	defer lock.Unlock()
	return s.load(user)
}

// Append assigns the next ID and rewrites the whole file.
func (s *LedgerStore) Append(ctx context.Context, user string, tx ledger.Transaction) (ledger.Transaction, error) {
	lock := s.db.lockFor(user)
	lock.Lock()
	defer lock.Unlock()

	txs, err := s.load(user)
	if err != nil {
		return ledger.Transaction{}, err
	}

	fileMax := 0
	for _, existing := range txs {
		if existing.ID > fileMax {
			fileMax = existing.ID
		}
	}
	tx.ID = s.db.nextID(user, fileMax)

	txs = append(txs, tx)
	if err := s.write(user, txs); err != nil {
		return ledger.Transaction{}, err
	}
	return tx, nil
}

// Update applies recognized column values to the transaction with the given
// id and rewrites the whole file. Values were validated by the caller; a
// value that still fails to parse here rejects the update.
func (s *LedgerStore) Update(ctx context.Context, user string, id int, changes map[string]string) error {
	lock := s.db.lockFor(user)
	lock.Lock()
	defer lock.Unlock()

	txs, err := s.load(user)
	if err != nil {
		return err
	}

	found := false
	for i := range txs {
		if txs[i].ID != id {
			continue
		}
		if err := applyChanges(&txs[i], changes); err != nil {
			return err
		}
		found = true
		break
	}
	if !found {
		return apperrors.NotFound("transaction")
	}
	return s.write(user, txs)
}

// Delete removes the transaction with the given id. An absent id is a
// no-op, not an error.
func (s *LedgerStore) Delete(ctx context.Context, user string, id int) error {
	lock := s.db.lockFor(user)
	lock.Lock()
	defer lock.Unlock()

	txs, err := s.load(user)
	if err != nil {
		return err
	}

	kept := txs[:0]
	for _, tx := range txs {
		if tx.ID != id {
			kept = append(kept, tx)
		}
	}
	return s.write(user, kept)
}

// Replace overwrites the user's entire ledger. When none of the incoming
// transactions carry an id they are numbered 1..N positionally; otherwise
// missing ids continue from the highest one present.
func (s *LedgerStore) Replace(ctx context.Context, user string, txs []ledger.Transaction) error {
	lock := s.db.lockFor(user)
	lock.Lock()
	defer lock.Unlock()

	maxID := 0
	for _, tx := range txs {
		if tx.ID > maxID {
			maxID = tx.ID
		}
	}
	for i := range txs {
		if txs[i].ID == 0 {
			maxID++
			txs[i].ID = maxID
		}
	}
	s.db.seedMaxSeen(user, maxID)
	return s.write(user, txs)
}

// load parses the user's ledger file. In lenient mode rows with unparseable
// id, date, or amount are dropped and logged; in strict mode they fail the
// load with a parse error.
func (s *LedgerStore) load(user string) ([]ledger.Transaction, error) {
	path := s.db.ledgerPath(user)
	f, err := os.Open(path)
	if os.IsNotExist(err) {
		return nil, nil
	}
	if err != nil {
		return nil, apperrors.IO(err, "opening ledger file for %q", user)
	}
	defer f.Close()

	cr := csv.NewReader(f)
	cr.FieldsPerRecord = -1

	header, err := cr.Read()
	if err == io.EOF {
		return nil, nil
	}
	if err != nil {
		return nil, apperrors.Parse(err, "reading ledger header for %q", user)
	}
	_ = header // fixed column order, header kept for the file format only

	var txs []ledger.Transaction
	for line := 2; ; line++ {
		row, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, apperrors.Parse(err, "reading ledger row %d for %q", line, user)
		}
		tx, err := parseRow(row)
		if err != nil {
			if s.db.strict {
				return nil, apperrors.Parse(err, "ledger row %d for %q", line, user)
			}
			s.db.log.Warn("dropping unparseable ledger row",
				"user", user, "line", line, "error", err.Error())
			continue
		}
		txs = append(txs, tx)
	}
	return txs, nil
}

// write rewrites the user's whole ledger file, header included.
func (s *LedgerStore) write(user string, txs []ledger.Transaction) error {
	var buf bytes.Buffer
	cw := csv.NewWriter(&buf)
	if err := cw.Write(ledger.Columns); err != nil {
		return apperrors.IO(err, "encoding ledger header for %q", user)
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
			return apperrors.IO(err, "encoding ledger row for %q", user)
		}
	}
	cw.Flush()
	if err := cw.Error(); err != nil {
		return apperrors.IO(err, "encoding ledger for %q", user)
	}

	if err := os.WriteFile(s.db.ledgerPath(user), buf.Bytes(), 0o644); err != nil {
		return apperrors.IO(err, "writing ledger file for %q", user)
	}
	return nil
}

func parseRow(row []string) (ledger.Transaction, error) {
	field := func(i int) string {
		if i < len(row) {
			return strings.TrimSpace(row[i])
		}
		return ""
	}

	id, err := strconv.Atoi(field(0))
	if err != nil {
		return ledger.Transaction{}, err
	}
	date, err := ledger.ParseDate(field(1))
	if err != nil {
		return ledger.Transaction{}, err
	}
	amount, err := decimal.NewFromString(field(4))
	if err != nil {
		return ledger.Transaction{}, err
	}

	return ledger.Transaction{
		ID:          id,
		Date:        date,
		Type:        ledger.Type(field(2)),
		Category:    field(3),
		Amount:      amount,
		Description: field(5),
	}, nil
}

func applyChanges(tx *ledger.Transaction, changes map[string]string) error {
	for key, value := range changes {
		switch key {
		case ledger.ColDate:
			date, err := ledger.ParseDate(value)
			if err != nil {
				return apperrors.Validation("invalid date %q", value)
			}
			tx.Date = date
		case ledger.ColType:
			tx.Type = ledger.Type(value)
		case ledger.ColCategory:
			tx.Category = value
		case ledger.ColAmount:
			amount, err := decimal.NewFromString(strings.TrimSpace(value))
			if err != nil {
				return apperrors.Validation("amount %q is not a number", value)
			}
			tx.Amount = amount
		case ledger.ColDescription:
			tx.Description = value
		}
	}
	return nil
}
