package sqlite

import (
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/cratedig/crate/pkg/types"
)

// AddStack creates a new stack and returns it with its assigned ID.
// Names are unique ignoring case.
func (s *Store) AddStack(name string) (*types.Stack, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.checkOpen(); err != nil {
		return nil, err
	}
	name, err := types.NormalizeStackName(name)
	if err != nil {
		return nil, err
	}

	var existing int64
	err = s.db.QueryRow("SELECT stack_id FROM stacks WHERE name = ?", name).Scan(&existing)
	if err == nil {
		return nil, types.ErrDuplicateName
	}
	if !errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("checking stack name: %w", err)
	}

	now := time.Now().UTC()
	res, err := s.db.Exec(
		"INSERT INTO stacks (name, created_at) VALUES (?, ?)",
		name, now.Format(time.RFC3339))
	if err != nil {
		return nil, fmt.Errorf("inserting stack: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return nil, fmt.Errorf("reading stack id: %w", err)
	}
	return &types.Stack{ID: id, Name: name, CreatedAt: now}, nil
}

// GetStack retrieves a stack by ID.
func (s *Store) GetStack(id int64) (*types.Stack, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if err := s.checkOpen(); err != nil {
		return nil, err
	}
	if id <= 0 {
		return nil, types.ErrInvalidID
	}
	return s.scanStackRow(
		"SELECT stack_id, name, created_at FROM stacks WHERE stack_id = ?", id)
}

// FindStack retrieves a stack by name, ignoring case.
func (s *Store) FindStack(name string) (*types.Stack, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if err := s.checkOpen(); err != nil {
		return nil, err
	}
	name, err := types.NormalizeStackName(name)
	if err != nil {
		return nil, err
	}
	return s.scanStackRow(
		"SELECT stack_id, name, created_at FROM stacks WHERE name = ?", name)
}

// RenameStack changes a stack's name. The new name must not collide
// with another stack.
func (s *Store) RenameStack(id int64, name string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.checkOpen(); err != nil {
		return err
	}
	if id <= 0 {
		return types.ErrInvalidID
	}
	name, err := types.NormalizeStackName(name)
	if err != nil {
		return err
	}

	var otherID int64
	err = s.db.QueryRow(
		"SELECT stack_id FROM stacks WHERE name = ? AND stack_id != ?",
		name, id).Scan(&otherID)
	if err == nil {
		return types.ErrDuplicateName
	}
	if !errors.Is(err, sql.ErrNoRows) {
		return fmt.Errorf("checking stack name: %w", err)
	}

	res, err := s.db.Exec("UPDATE stacks SET name = ? WHERE stack_id = ?", name, id)
	if err != nil {
		return fmt.Errorf("renaming stack: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("checking rename: %w", err)
	}
	if n == 0 {
		return types.ErrNotFound
	}
	return nil
}

// DeleteStack removes a stack and its item memberships. Items filed
// into the stack are kept.
func (s *Store) DeleteStack(id int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.checkOpen(); err != nil {
		return err
	}
	if id <= 0 {
		return types.ErrInvalidID
	}

	var exists int
	if err := s.db.QueryRow(
		"SELECT 1 FROM stacks WHERE stack_id = ?", id).Scan(&exists); errors.Is(err, sql.ErrNoRows) {
		return types.ErrNotFound
	} else if err != nil {
		return fmt.Errorf("checking stack: %w", err)
	}

	if _, err := s.db.Exec("DELETE FROM item_stacks WHERE stack_id = ?", id); err != nil {
		return fmt.Errorf("deleting stack memberships: %w", err)
	}
	if _, err := s.db.Exec("DELETE FROM stacks WHERE stack_id = ?", id); err != nil {
		return fmt.Errorf("deleting stack: %w", err)
	}
	return nil
}

// ListStacks returns all stacks ordered by name, with per-stack item
// counts.
func (s *Store) ListStacks() ([]*types.Stack, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if err := s.checkOpen(); err != nil {
		return nil, err
	}

	rows, err := s.db.Query(`
		SELECT stacks.stack_id, stacks.name, stacks.created_at, COUNT(item_stacks.item_id)
		FROM stacks
		LEFT JOIN item_stacks ON item_stacks.stack_id = stacks.stack_id
		GROUP BY stacks.stack_id
		ORDER BY stacks.name COLLATE NOCASE`)
	if err != nil {
		return nil, fmt.Errorf("fetching stacks: %w", err)
	}
	defer rows.Close()

	stacks := []*types.Stack{}
	for rows.Next() {
		var st types.Stack
		var createdAt string
		if err := rows.Scan(&st.ID, &st.Name, &createdAt, &st.ItemCount); err != nil {
			return nil, fmt.Errorf("scanning stack: %w", err)
		}
		st.CreatedAt, err = time.Parse(time.RFC3339, createdAt)
		if err != nil {
			return nil, fmt.Errorf("parsing stack created_at: %w", err)
		}
		stacks = append(stacks, &st)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating stacks: %w", err)
	}
	return stacks, nil
}

// scanStackRow runs a single-row stack query. The caller must hold s.mu.
func (s *Store) scanStackRow(query string, args ...any) (*types.Stack, error) {
	var st types.Stack
	var createdAt string
	err := s.db.QueryRow(query, args...).Scan(&st.ID, &st.Name, &createdAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, types.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("scanning stack: %w", err)
	}
	st.CreatedAt, err = time.Parse(time.RFC3339, createdAt)
	if err != nil {
		return nil, fmt.Errorf("parsing stack created_at: %w", err)
	}
	return &st, nil
}
