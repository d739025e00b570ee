// Package flatfile implements the ledger and settings stores on per-user
// files: a CSV ledger and a JSON settings file under one data directory.
// Every mutation is a full read-modify-write of the owning file, serialized
// by a per-username lock so concurrent requests cannot interleave writes.
package flatfile

import (
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/nmantri/spendwise/pkg/logger"
)

// Config holds flat-file store configuration.
type Config struct {
	// Dir is the data directory holding all per-user files.
	Dir string
	// Strict fails a load on unparseable rows instead of dropping them.
	Strict bool
}

// DB is the root of the flat-file storage. It owns the data directory and
// the per-user locks shared by the ledger and settings stores.
type DB struct {
	dir    string
	strict bool
	log    *logger.Logger

	mu      sync.Mutex
	locks   map[string]*sync.Mutex
	maxSeen map[string]int
}

// New creates the data directory if needed and returns the storage root.
func New(cfg Config, log *logger.Logger) (*DB, error) {
	if err := os.MkdirAll(cfg.Dir, 0o755); err != nil {
		return nil, fmt.Errorf("creating data directory %q: %w", cfg.Dir, err)
	}
	return &DB{
		dir:     cfg.Dir,
		strict:  cfg.Strict,
		log:     log,
		locks:   make(map[string]*sync.Mutex),
		maxSeen: make(map[string]int),
	}, nil
}

// Ledger returns the ledger store view of the database.
func (db *DB) Ledger() *LedgerStore { return &LedgerStore{db} }

// Settings returns the settings store view of the database.
func (db *DB) Settings() *SettingsStore { return &SettingsStore{db} }

// lockFor returns the mutex guarding all of a user's files. Holding it
// across the whole load-modify-save cycle makes concurrent mutations for
// the same user strictly ordered instead of last-writer-wins.
func (db *DB) lockFor(user string) *sync.Mutex {
	db.mu.Lock()
	defer db.mu.Unlock()
	l, ok := db.locks[user]
	if !ok {
		l = &sync.Mutex{}
		db.locks[user] = l
	}
	return l
}

// nextID returns the next transaction id for a user. It takes the highest
// id currently in the file and the highest id handed out since the process
// started, so deleting the newest record does not cause its id to be
// reassigned.
func (db *DB) nextID(user string, fileMax int) int {
	db.mu.Lock()
	defer db.mu.Unlock()
	highest := fileMax
	if seen := db.maxSeen[user]; seen > highest {
		highest = seen
	}
	next := highest + 1
	db.maxSeen[user] = next
	return next
}

// seedMaxSeen records the highest id assigned by a wholesale replace.
func (db *DB) seedMaxSeen(user string, highest int) {
	db.mu.Lock()
	defer db.mu.Unlock()
	db.maxSeen[user] = highest
}

func (db *DB) ledgerPath(user string) string {
	return filepath.Join(db.dir, user+"_expenses.csv")
}

func (db *DB) settingsPath(user string) string {
	return filepath.Join(db.dir, user+"_settings.json")
}
