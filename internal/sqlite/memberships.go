package sqlite

import (
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/cratedig/crate/pkg/types"
)

// AssignStack files an item into a stack. Assigning an existing
// membership is a no-op.
func (s *Store) AssignStack(itemID, stackID int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.checkOpen(); err != nil {
		return err
	}
	if err := s.requireItem(itemID); err != nil {
		return err
	}
	if err := s.requireStack(stackID); err != nil {
		return err
	}

	_, err := s.db.Exec(
		"INSERT OR IGNORE INTO item_stacks (item_id, stack_id, created_at) VALUES (?, ?, ?)",
		itemID, stackID, time.Now().UTC().Format(time.RFC3339))
	if err != nil {
		return fmt.Errorf("assigning stack: %w", err)
	}
	return nil
}

// UnassignStack removes an item from a stack. Removing a membership
// that does not exist is a no-op.
func (s *Store) UnassignStack(itemID, stackID int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.checkOpen(); err != nil {
		return err
	}
	if err := s.requireItem(itemID); err != nil {
		return err
	}
	if err := s.requireStack(stackID); err != nil {
		return err
	}

	_, err := s.db.Exec(
		"DELETE FROM item_stacks WHERE item_id = ? AND stack_id = ?", itemID, stackID)
	if err != nil {
		return fmt.Errorf("unassigning stack: %w", err)
	}
	return nil
}

// SetItemStacks replaces an item's memberships with exactly the given
// stack ids, in order.
func (s *Store) SetItemStacks(itemID int64, stackIDs []int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.checkOpen(); err != nil {
		return err
	}
	if err := s.requireItem(itemID); err != nil {
		return err
	}
	for _, sid := range stackIDs {
		if err := s.requireStack(sid); err != nil {
			return err
		}
	}

	tx, err := s.db.Begin()
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.Exec("DELETE FROM item_stacks WHERE item_id = ?", itemID); err != nil {
		return fmt.Errorf("clearing item memberships: %w", err)
	}
	now := time.Now().UTC().Format(time.RFC3339)
	for _, sid := range stackIDs {
		if _, err := tx.Exec(
			"INSERT OR IGNORE INTO item_stacks (item_id, stack_id, created_at) VALUES (?, ?, ?)",
			itemID, sid, now); err != nil {
			return fmt.Errorf("inserting item membership: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("committing memberships: %w", err)
	}
	return nil
}

// requireItem returns ErrNotFound unless the item exists.
// The caller must hold s.mu.
func (s *Store) requireItem(itemID int64) error {
	if itemID <= 0 {
		return types.ErrInvalidID
	}
	var exists int
	err := s.db.QueryRow("SELECT 1 FROM items WHERE item_id = ?", itemID).Scan(&exists)
	if errors.Is(err, sql.ErrNoRows) {
		return types.ErrNotFound
	}
	if err != nil {
		return fmt.Errorf("checking item: %w", err)
	}
	return nil
}

// requireStack returns ErrNotFound unless the stack exists.
// The caller must hold s.mu.
func (s *Store) requireStack(stackID int64) error {
	if stackID <= 0 {
		return types.ErrInvalidID
	}
	var exists int
	err := s.db.QueryRow("SELECT 1 FROM stacks WHERE stack_id = ?", stackID).Scan(&exists)
	if errors.Is(err, sql.ErrNoRows) {
		return types.ErrNotFound
	}
	if err != nil {
		return fmt.Errorf("checking stack: %w", err)
	}
	return nil
}
