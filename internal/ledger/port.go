package ledger

import "context"

// Store defines the interface for ledger persistence. The flat-file
// implementation rewrites the whole file on every mutation; the interface
// keeps callers independent of that so an indexed store could be swapped in.
type Store interface {
	// Init creates the user's ledger file with a header row if it does
	// not exist yet.
	Init(ctx context.Context, user string) error

	// Load reads the user's full ledger. A missing or empty file yields
	// an empty slice, not an error.
	Load(ctx context.Context, user string) ([]Transaction, error)

	// Append assigns the next ID to tx, appends it, and rewrites the
	// file. Returns the stored transaction.
	Append(ctx context.Context, user string, tx Transaction) (Transaction, error)

	// Update applies the recognized column values in changes to the
	// transaction with the given id and rewrites the file.
	Update(ctx context.Context, user string, id int, changes map[string]string) error

	// Delete removes the transaction with the given id and rewrites the
	// file. Deleting an absent id is a no-op.
	Delete(ctx context.Context, user string, id int) error

	// Replace overwrites the user's entire ledger with txs, assigning
	// sequential IDs where missing.
	Replace(ctx context.Context, user string, txs []Transaction) error
}
