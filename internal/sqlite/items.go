package sqlite

import (
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/cratedig/crate/internal/hydrate"
	"github.com/cratedig/crate/pkg/types"
)

// AddItem persists a new item and returns it with its assigned ID.
// The URL must not already be bookmarked.
func (s *Store) AddItem(item *types.Item) (*types.Item, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.checkOpen(); err != nil {
		return nil, err
	}
	// Stage defaults on a copy so the caller's struct stays untouched
	// when any check below fails.
	staged := *item
	if staged.Kind == "" {
		staged.Kind = types.KindOther
	}
	if err := staged.Validate(); err != nil {
		return nil, err
	}

	var existing int64
	err := s.db.QueryRow("SELECT item_id FROM items WHERE url = ?", staged.URL).Scan(&existing)
	if err == nil {
		return nil, types.ErrDuplicateURL
	}
	if !errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("checking URL: %w", err)
	}

	now := time.Now().UTC()
	staged.CreatedAt = now
	staged.UpdatedAt = now

	res, err := s.db.Exec(`
		INSERT INTO items (url, title, artist, kind, rating, note, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		staged.URL, staged.Title, staged.Artist, staged.Kind, staged.Rating, staged.Note,
		now.Format(time.RFC3339), now.Format(time.RFC3339))
	if err != nil {
		return nil, fmt.Errorf("inserting item: %w", err)
	}

	staged.ID, err = res.LastInsertId()
	if err != nil {
		return nil, fmt.Errorf("reading item id: %w", err)
	}
	if staged.Stacks == nil {
		staged.Stacks = []types.StackRef{}
	}
	*item = staged
	return item, nil
}

// GetItem retrieves an item by ID with its stacks hydrated.
func (s *Store) GetItem(id int64) (*types.Item, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if err := s.checkOpen(); err != nil {
		return nil, err
	}
	if id <= 0 {
		return nil, types.ErrInvalidID
	}

	row := s.db.QueryRow(
		"SELECT item_id, url, title, artist, kind, rating, note, created_at, updated_at FROM items WHERE item_id = ?",
		id)
	item, err := scanItem(row.Scan)
	if err != nil {
		return nil, err
	}

	rows, err := s.itemStackRows("WHERE item_stacks.item_id = ?", id)
	if err != nil {
		return nil, err
	}
	hydrated := hydrate.Join([]*types.Item{item}, itemKey, rows)
	attachStacks(hydrated)
	return item, nil
}

// UpdateItem updates the mutable fields of an existing item: title,
// artist, kind, rating, and note. URL and timestamps of creation are
// immutable.
func (s *Store) UpdateItem(item *types.Item) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.checkOpen(); err != nil {
		return err
	}
	if item.ID <= 0 {
		return types.ErrInvalidID
	}
	if item.Kind != "" && !types.ValidKind(item.Kind) {
		return types.ErrInvalidKind
	}
	if !types.ValidRating(item.Rating) {
		return types.ErrInvalidRating
	}

	item.UpdatedAt = time.Now().UTC()
	res, err := s.db.Exec(`
		UPDATE items SET title = ?, artist = ?, kind = ?, rating = ?, note = ?, updated_at = ?
		WHERE item_id = ?`,
		item.Title, item.Artist, item.Kind, item.Rating, item.Note,
		item.UpdatedAt.Format(time.RFC3339), item.ID)
	if err != nil {
		return fmt.Errorf("updating item: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("checking update: %w", err)
	}
	if n == 0 {
		return types.ErrNotFound
	}
	return nil
}

// RateItem sets an item's rating. Zero clears the rating.
func (s *Store) RateItem(id int64, rating int) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.checkOpen(); err != nil {
		return err
	}
	if id <= 0 {
		return types.ErrInvalidID
	}
	if !types.ValidRating(rating) {
		return types.ErrInvalidRating
	}

	res, err := s.db.Exec(
		"UPDATE items SET rating = ?, updated_at = ? WHERE item_id = ?",
		rating, time.Now().UTC().Format(time.RFC3339), id)
	if err != nil {
		return fmt.Errorf("rating item: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("checking rating update: %w", err)
	}
	if n == 0 {
		return types.ErrNotFound
	}
	return nil
}

// SetItemNote replaces an item's note.
func (s *Store) SetItemNote(id int64, note string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.checkOpen(); err != nil {
		return err
	}
	if id <= 0 {
		return types.ErrInvalidID
	}

	res, err := s.db.Exec(
		"UPDATE items SET note = ?, updated_at = ? WHERE item_id = ?",
		note, time.Now().UTC().Format(time.RFC3339), id)
	if err != nil {
		return fmt.Errorf("setting item note: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("checking note update: %w", err)
	}
	if n == 0 {
		return types.ErrNotFound
	}
	return nil
}

// DeleteItem removes an item and its stack memberships.
func (s *Store) DeleteItem(id int64) error {
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
		"SELECT 1 FROM items WHERE item_id = ?", id).Scan(&exists); errors.Is(err, sql.ErrNoRows) {
		return types.ErrNotFound
	} else if err != nil {
		return fmt.Errorf("checking item: %w", err)
	}

	if _, err := s.db.Exec("DELETE FROM item_stacks WHERE item_id = ?", id); err != nil {
		return fmt.Errorf("deleting item memberships: %w", err)
	}
	if _, err := s.db.Exec("DELETE FROM items WHERE item_id = ?", id); err != nil {
		return fmt.Errorf("deleting item: %w", err)
	}
	return nil
}

// ListItems returns items matching the filter, newest first, with
// stacks hydrated. Supported filter keys: stack_id (int64), kind
// (string), min_rating (int), search (string, matches title/artist/URL),
// limit (int), offset (int). An empty filter returns everything.
func (s *Store) ListItems(filter map[string]any) ([]*types.Item, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if err := s.checkOpen(); err != nil {
		return nil, err
	}

	query := "SELECT item_id, url, title, artist, kind, rating, note, created_at, updated_at FROM items"
	var conditions []string
	var args []any

	if v, ok := filter["stack_id"]; ok {
		sid, ok := toInt64(v)
		if !ok {
			return nil, types.ErrInvalidFilter
		}
		conditions = append(conditions,
			"item_id IN (SELECT item_id FROM item_stacks WHERE stack_id = ?)")
		args = append(args, sid)
	}
	if v, ok := filter["kind"]; ok {
		kind, ok := v.(string)
		if !ok {
			return nil, types.ErrInvalidFilter
		}
		conditions = append(conditions, "kind = ?")
		args = append(args, kind)
	}
	if v, ok := filter["min_rating"]; ok {
		r, ok := toInt64(v)
		if !ok {
			return nil, types.ErrInvalidFilter
		}
		conditions = append(conditions, "rating >= ?")
		args = append(args, r)
	}
	if v, ok := filter["search"]; ok {
		term, ok := v.(string)
		if !ok {
			return nil, types.ErrInvalidFilter
		}
		like := "%" + strings.ToLower(term) + "%"
		conditions = append(conditions,
			"(lower(title) LIKE ? OR lower(artist) LIKE ? OR lower(url) LIKE ?)")
		args = append(args, like, like, like)
	}

	if len(conditions) > 0 {
		query += " WHERE " + strings.Join(conditions, " AND ")
	}
	query += " ORDER BY created_at DESC, item_id DESC"

	var limit, offset int64
	if v, ok := filter["limit"]; ok {
		if limit, ok = toInt64(v); !ok {
			return nil, types.ErrInvalidFilter
		}
	}
	if v, ok := filter["offset"]; ok {
		if offset, ok = toInt64(v); !ok {
			return nil, types.ErrInvalidFilter
		}
	}
	if limit > 0 {
		query += fmt.Sprintf(" LIMIT %d", limit)
	} else if offset > 0 {
		// SQLite requires a LIMIT clause before OFFSET; -1 means no cap.
		query += " LIMIT -1"
	}
	if offset > 0 {
		query += fmt.Sprintf(" OFFSET %d", offset)
	}

	rows, err := s.db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("fetching items: %w", err)
	}
	defer rows.Close()

	items := []*types.Item{}
	for rows.Next() {
		item, err := scanItem(rows.Scan)
		if err != nil {
			return nil, err
		}
		items = append(items, item)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating items: %w", err)
	}

	assocs, err := s.itemStackRows("")
	if err != nil {
		return nil, err
	}
	attachStacks(hydrate.Join(items, itemKey, assocs))
	return items, nil
}

// itemKey extracts the hydration key from an item.
func itemKey(it *types.Item) int64 { return it.ID }

// attachStacks copies hydrated stack summaries back onto the item
// structs.
func attachStacks(records []hydrate.Record[*types.Item]) {
	for _, rec := range records {
		stacks := make([]types.StackRef, len(rec.Stacks))
		for i, ref := range rec.Stacks {
			stacks[i] = types.StackRef{ID: ref.ID, Name: ref.Name}
		}
		rec.Parent.Stacks = stacks
	}
}

// itemStackRows runs the item-to-stack join and returns flat association
// rows in assignment order. where, when non-empty, must start with
// "WHERE" and reference item_stacks columns.
func (s *Store) itemStackRows(where string, args ...any) ([]hydrate.Association, error) {
	query := `SELECT item_stacks.item_id, stacks.stack_id, stacks.name
		FROM item_stacks
		JOIN stacks ON stacks.stack_id = item_stacks.stack_id`
	if where != "" {
		query += " " + where
	}
	query += " ORDER BY item_stacks.rowid"

	rows, err := s.db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("querying item stacks: %w", err)
	}
	defer rows.Close()

	var assocs []hydrate.Association
	for rows.Next() {
		var a hydrate.Association
		if err := rows.Scan(&a.ItemID, &a.StackID, &a.Name); err != nil {
			return nil, fmt.Errorf("scanning item stack: %w", err)
		}
		assocs = append(assocs, a)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating item stacks: %w", err)
	}
	return assocs, nil
}

// scanItem converts one items row into a *types.Item. scan is either
// sql.Row.Scan or sql.Rows.Scan.
func scanItem(scan func(...any) error) (*types.Item, error) {
	var it types.Item
	var createdAt, updatedAt string
	err := scan(&it.ID, &it.URL, &it.Title, &it.Artist, &it.Kind, &it.Rating,
		&it.Note, &createdAt, &updatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, types.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("scanning item: %w", err)
	}
	it.CreatedAt, err = time.Parse(time.RFC3339, createdAt)
	if err != nil {
		return nil, fmt.Errorf("parsing item created_at: %w", err)
	}
	it.UpdatedAt, err = time.Parse(time.RFC3339, updatedAt)
	if err != nil {
		return nil, fmt.Errorf("parsing item updated_at: %w", err)
	}
	it.Stacks = []types.StackRef{}
	return &it, nil
}

// toInt64 converts the numeric types filters may carry to int64.
func toInt64(v any) (int64, bool) {
	switch n := v.(type) {
	case int:
		return int64(n), true
	case int64:
		return n, true
	case float64:
		return int64(n), true
	default:
		return 0, false
	}
}
