package types

import (
	"strings"
	"time"
)

// Stack is a named collection items can be filed into. Stack names are
// unique ignoring case.
type Stack struct {
	ID        int64     `json:"id"`
	Name      string    `json:"name"`
	CreatedAt time.Time `json:"created_at"`

	// ItemCount is populated by list queries; it is not stored.
	ItemCount int `json:"item_count,omitempty"`
}

// StackRef is the lightweight stack summary carried on hydrated items.
type StackRef struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

// NormalizeStackName trims surrounding whitespace from a stack name.
// Returns ErrInvalidName when nothing remains.
func NormalizeStackName(name string) (string, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return "", ErrInvalidName
	}
	return name, nil
}
