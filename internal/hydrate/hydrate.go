// Package hydrate groups flat one-to-many join rows under their parent
// records. The store runs one query for items and one for the
// item-to-stack join, then uses Join to nest the stack summaries per
// item without a per-item query.
package hydrate

// Association is one row of a parent-to-child join: the parent's key,
// the child's id, and the child's display name.
type Association struct {
	ItemID  int64
	StackID int64
	Name    string
}

// StackRef is the child summary attached to hydrated records.
type StackRef struct {
	ID   int64
	Name string
}

// Record pairs a parent with its ordered child summaries. Parent is the
// caller's value, carried through untouched.
type Record[P any] struct {
	Parent P
	Stacks []StackRef
}

// Join groups assocs under parents by key. The output has the same
// length and order as parents. Each parent's Stacks holds exactly the
// summaries whose ItemID equals key(parent), in assocs order, and is
// empty (never nil) when nothing matches. Associations referencing a
// key no parent has are dropped. Parents are never inspected beyond the
// key func, so any extra fields pass through unchanged.
//
// When several parents share a key they all receive the same
// accumulated list.
func Join[P any](parents []P, key func(P) int64, assocs []Association) []Record[P] {
	buckets := make(map[int64][]StackRef, len(parents))
	for _, p := range parents {
		k := key(p)
		if _, ok := buckets[k]; !ok {
			buckets[k] = []StackRef{}
		}
	}

	for _, a := range assocs {
		refs, ok := buckets[a.ItemID]
		if !ok {
			continue
		}
		buckets[a.ItemID] = append(refs, StackRef{ID: a.StackID, Name: a.Name})
	}

	out := make([]Record[P], len(parents))
	for i, p := range parents {
		out[i] = Record[P]{Parent: p, Stacks: buckets[key(p)]}
	}
	return out
}
