package sqlite

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"go.uber.org/zap"
	_ "modernc.org/sqlite"

	"github.com/cratedig/crate/pkg/types"
)

// Database file name inside the data directory.
const dbFileName = "crate.db"

// Store is the crate repository: one SQLite handle on a database file in
// the data directory. All entity operations hang off it.
type Store struct {
	mu     sync.RWMutex
	db     *sql.DB
	open   bool
	config types.Config
	logger *zap.Logger
}

// Open creates the data directory if needed, opens the SQLite database,
// and applies the schema. The caller must Close the returned store.
func Open(config types.Config, logger *zap.Logger) (*Store, error) {
	if err := config.Validate(); err != nil {
		return nil, err
	}
	if logger == nil {
		logger = zap.NewNop()
	}

	if err := os.MkdirAll(config.DataDir, 0o755); err != nil {
		return nil, fmt.Errorf("creating data dir: %w", err)
	}

	// The pragma rides in the DSN so every pooled connection enforces
	// foreign keys, not just the one a bare Exec would hit.
	dbPath := filepath.Join(config.DataDir, dbFileName)
	db, err := sql.Open("sqlite", dbPath+"?_pragma=foreign_keys(1)")
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}

	for _, ddl := range schemaDDL {
		if _, err := db.Exec(ddl); err != nil {
			db.Close()
			return nil, fmt.Errorf("applying schema: %w", err)
		}
	}
	for _, ddl := range indexDDL {
		if _, err := db.Exec(ddl); err != nil {
			db.Close()
			return nil, fmt.Errorf("creating index: %w", err)
		}
	}
	if _, err := db.Exec(fmt.Sprintf("PRAGMA user_version = %d;", schemaVersion)); err != nil {
		db.Close()
		return nil, fmt.Errorf("setting schema version: %w", err)
	}

	logger.Debug("store opened", zap.String("path", dbPath))

	return &Store{
		db:     db,
		open:   true,
		config: config,
		logger: logger,
	}, nil
}

// Close releases the database handle. Close is idempotent; after Close
// all operations return ErrStoreClosed.
func (s *Store) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.open {
		return nil
	}
	if err := s.db.Close(); err != nil {
		return fmt.Errorf("closing database: %w", err)
	}
	s.open = false
	return nil
}

// Reset deletes every row from every table. Used by integration setups
// that need a clean slate without re-creating the data directory.
func (s *Store) Reset() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.open {
		return types.ErrStoreClosed
	}

	for _, table := range []string{"item_stacks", "items", "stacks"} {
		if _, err := s.db.Exec("DELETE FROM " + table); err != nil {
			return fmt.Errorf("resetting %s: %w", table, err)
		}
	}
	// Restart rowid allocation so fresh databases and reset databases
	// hand out the same ids.
	if _, err := s.db.Exec("DELETE FROM sqlite_sequence WHERE name IN ('items', 'stacks')"); err != nil {
		return fmt.Errorf("resetting sequences: %w", err)
	}

	s.logger.Info("store reset")
	return nil
}

// checkOpen returns ErrStoreClosed when the store has been closed.
// The caller must hold s.mu (read or write).
func (s *Store) checkOpen() error {
	if !s.open {
		return types.ErrStoreClosed
	}
	return nil
}
