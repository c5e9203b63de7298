// Export and import of the whole crate as JSONL snapshots.
package sqlite

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// Snapshot file names inside an export directory.
const (
	itemsFile      = "items.jsonl"
	stacksFile     = "stacks.jsonl"
	itemStacksFile = "item_stacks.jsonl"
	manifestFile   = "manifest.json"
)

// manifest identifies one export snapshot.
type manifest struct {
	SnapshotID    string `json:"snapshot_id"`
	SchemaVersion int    `json:"schema_version"`
	CreatedAt     string `json:"created_at"`
	Items         int    `json:"items"`
	Stacks        int    `json:"stacks"`
	Memberships   int    `json:"memberships"`
}

// itemRecord is the JSONL wire form of an items row.
type itemRecord struct {
	ItemID    int64  `json:"item_id"`
	URL       string `json:"url"`
	Title     string `json:"title"`
	Artist    string `json:"artist"`
	Kind      string `json:"kind"`
	Rating    int    `json:"rating"`
	Note      string `json:"note"`
	CreatedAt string `json:"created_at"`
	UpdatedAt string `json:"updated_at"`
}

// stackRecord is the JSONL wire form of a stacks row.
type stackRecord struct {
	StackID   int64  `json:"stack_id"`
	Name      string `json:"name"`
	CreatedAt string `json:"created_at"`
}

// membershipRecord is the JSONL wire form of an item_stacks row.
type membershipRecord struct {
	ItemID    int64  `json:"item_id"`
	StackID   int64  `json:"stack_id"`
	CreatedAt string `json:"created_at"`
}

// newSnapshotID generates a UUID v7 for the export manifest, falling
// back to v4 if v7 generation fails.
func newSnapshotID() string {
	id, err := uuid.NewV7()
	if err != nil {
		return uuid.New().String()
	}
	return id.String()
}

// ExportJSONL writes the whole store to dir as JSONL files plus a
// manifest, creating dir if needed.
func (s *Store) ExportJSONL(dir string) (string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if err := s.checkOpen(); err != nil {
		return "", err
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("creating export dir: %w", err)
	}

	items, err := s.exportRows(
		"SELECT item_id, url, title, artist, kind, rating, note, created_at, updated_at FROM items ORDER BY item_id",
		func(rows *sql.Rows) (any, error) {
			var r itemRecord
			err := rows.Scan(&r.ItemID, &r.URL, &r.Title, &r.Artist, &r.Kind,
				&r.Rating, &r.Note, &r.CreatedAt, &r.UpdatedAt)
			return r, err
		})
	if err != nil {
		return "", fmt.Errorf("exporting items: %w", err)
	}
	stacks, err := s.exportRows(
		"SELECT stack_id, name, created_at FROM stacks ORDER BY stack_id",
		func(rows *sql.Rows) (any, error) {
			var r stackRecord
			err := rows.Scan(&r.StackID, &r.Name, &r.CreatedAt)
			return r, err
		})
	if err != nil {
		return "", fmt.Errorf("exporting stacks: %w", err)
	}
	memberships, err := s.exportRows(
		"SELECT item_id, stack_id, created_at FROM item_stacks ORDER BY rowid",
		func(rows *sql.Rows) (any, error) {
			var r membershipRecord
			err := rows.Scan(&r.ItemID, &r.StackID, &r.CreatedAt)
			return r, err
		})
	if err != nil {
		return "", fmt.Errorf("exporting memberships: %w", err)
	}

	if err := writeSnapshotFile(dir, itemsFile, items); err != nil {
		return "", err
	}
	if err := writeSnapshotFile(dir, stacksFile, stacks); err != nil {
		return "", err
	}
	if err := writeSnapshotFile(dir, itemStacksFile, memberships); err != nil {
		return "", err
	}

	m := manifest{
		SnapshotID:    newSnapshotID(),
		SchemaVersion: schemaVersion,
		CreatedAt:     time.Now().UTC().Format(time.RFC3339),
		Items:         len(items),
		Stacks:        len(stacks),
		Memberships:   len(memberships),
	}
	if err := writeManifest(dir, m); err != nil {
		return "", err
	}

	s.logger.Info("exported snapshot",
		zap.String("snapshot_id", m.SnapshotID),
		zap.Int("items", m.Items),
		zap.Int("stacks", m.Stacks))
	return m.SnapshotID, nil
}

// exportRows runs a query and marshals each row to a JSONL record.
// The caller must hold s.mu.
func (s *Store) exportRows(query string, scan func(*sql.Rows) (any, error)) ([]json.RawMessage, error) {
	rows, err := s.db.Query(query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var records []json.RawMessage
	for rows.Next() {
		rec, err := scan(rows)
		if err != nil {
			return nil, err
		}
		data, err := json.Marshal(rec)
		if err != nil {
			return nil, err
		}
		records = append(records, data)
	}
	return records, rows.Err()
}

// ImportJSONL loads a snapshot directory produced by ExportJSONL into
// the store, replacing current contents. Malformed lines are skipped.
func (s *Store) ImportJSONL(dir string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.checkOpen(); err != nil {
		return err
	}

	itemRecs, err := readSnapshotFile(dir, itemsFile)
	if err != nil {
		return fmt.Errorf("reading items snapshot: %w", err)
	}
	stackRecs, err := readSnapshotFile(dir, stacksFile)
	if err != nil {
		return fmt.Errorf("reading stacks snapshot: %w", err)
	}
	memberRecs, err := readSnapshotFile(dir, itemStacksFile)
	if err != nil {
		return fmt.Errorf("reading memberships snapshot: %w", err)
	}

	tx, err := s.db.Begin()
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback()

	for _, table := range []string{"item_stacks", "items", "stacks"} {
		if _, err := tx.Exec("DELETE FROM " + table); err != nil {
			return fmt.Errorf("clearing %s: %w", table, err)
		}
	}

	for _, raw := range itemRecs {
		var r itemRecord
		if err := json.Unmarshal(raw, &r); err != nil {
			continue
		}
		if _, err := tx.Exec(`
			INSERT INTO items (item_id, url, title, artist, kind, rating, note, created_at, updated_at)
			VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
			r.ItemID, r.URL, r.Title, r.Artist, r.Kind, r.Rating, r.Note,
			r.CreatedAt, r.UpdatedAt); err != nil {
			return fmt.Errorf("importing item %d: %w", r.ItemID, err)
		}
	}
	for _, raw := range stackRecs {
		var r stackRecord
		if err := json.Unmarshal(raw, &r); err != nil {
			continue
		}
		if _, err := tx.Exec(
			"INSERT INTO stacks (stack_id, name, created_at) VALUES (?, ?, ?)",
			r.StackID, r.Name, r.CreatedAt); err != nil {
			return fmt.Errorf("importing stack %d: %w", r.StackID, err)
		}
	}
	for _, raw := range memberRecs {
		var r membershipRecord
		if err := json.Unmarshal(raw, &r); err != nil {
			continue
		}
		// Memberships referencing rows the snapshot lost are dropped.
		if _, err := tx.Exec(`
			INSERT OR IGNORE INTO item_stacks (item_id, stack_id, created_at)
			SELECT ?, ?, ?
			WHERE EXISTS (SELECT 1 FROM items WHERE item_id = ?)
			  AND EXISTS (SELECT 1 FROM stacks WHERE stack_id = ?)`,
			r.ItemID, r.StackID, r.CreatedAt, r.ItemID, r.StackID); err != nil {
			return fmt.Errorf("importing membership: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("committing import: %w", err)
	}

	fields := []zap.Field{
		zap.String("dir", dir),
		zap.Int("items", len(itemRecs)),
		zap.Int("stacks", len(stackRecs)),
	}
	if m, ok := readManifest(dir); ok {
		fields = append(fields, zap.String("snapshot_id", m.SnapshotID))
	}
	s.logger.Info("imported snapshot", fields...)
	return nil
}
