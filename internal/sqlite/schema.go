// Package sqlite implements the crate storage layer on a local SQLite
// database.
package sqlite

// Schema version recorded in the database user_version pragma.
const schemaVersion = 1

// Schema DDL for all tables.
const (
	createItems = `CREATE TABLE IF NOT EXISTS items (
    item_id INTEGER PRIMARY KEY AUTOINCREMENT,
    url TEXT NOT NULL UNIQUE,
    title TEXT NOT NULL DEFAULT '',
    artist TEXT NOT NULL DEFAULT '',
    kind TEXT NOT NULL DEFAULT 'other',
    rating INTEGER NOT NULL DEFAULT 0,
    note TEXT NOT NULL DEFAULT '',
    created_at TEXT NOT NULL,
    updated_at TEXT NOT NULL
);`

	createStacks = `CREATE TABLE IF NOT EXISTS stacks (
    stack_id INTEGER PRIMARY KEY AUTOINCREMENT,
    name TEXT NOT NULL UNIQUE COLLATE NOCASE,
    created_at TEXT NOT NULL
);`

	createItemStacks = `CREATE TABLE IF NOT EXISTS item_stacks (
    item_id INTEGER NOT NULL,
    stack_id INTEGER NOT NULL,
    created_at TEXT NOT NULL,
    PRIMARY KEY (item_id, stack_id),
    FOREIGN KEY (item_id) REFERENCES items(item_id),
    FOREIGN KEY (stack_id) REFERENCES stacks(stack_id)
);`
)

// Index DDL for common queries.
const (
	idxItemsRating     = `CREATE INDEX IF NOT EXISTS idx_items_rating ON items(rating);`
	idxItemsKind       = `CREATE INDEX IF NOT EXISTS idx_items_kind ON items(kind);`
	idxItemStacksStack = `CREATE INDEX IF NOT EXISTS idx_item_stacks_stack ON item_stacks(stack_id);`
)

// schemaDDL lists all CREATE TABLE statements in dependency order.
var schemaDDL = []string{
	createItems,
	createStacks,
	createItemStacks,
}

// indexDDL lists all CREATE INDEX statements.
var indexDDL = []string{
	idxItemsRating,
	idxItemsKind,
	idxItemStacksStack,
}
