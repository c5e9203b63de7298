package sqlite

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cratedig/crate/pkg/types"
)

func TestAssignStack(t *testing.T) {
	s := newTestStore(t)

	item := addTestItem(t, s, "https://example.test/a")
	stack, err := s.AddStack("chill")
	require.NoError(t, err)

	require.NoError(t, s.AssignStack(item.ID, stack.ID))

	// Assigning twice is a no-op, not an error.
	require.NoError(t, s.AssignStack(item.ID, stack.ID))

	got, err := s.GetItem(item.ID)
	require.NoError(t, err)
	require.Len(t, got.Stacks, 1)

	assert.ErrorIs(t, s.AssignStack(999, stack.ID), types.ErrNotFound)
	assert.ErrorIs(t, s.AssignStack(item.ID, 999), types.ErrNotFound)
	assert.ErrorIs(t, s.AssignStack(0, stack.ID), types.ErrInvalidID)
}

func TestUnassignStack(t *testing.T) {
	s := newTestStore(t)

	item := addTestItem(t, s, "https://example.test/a")
	stack, err := s.AddStack("chill")
	require.NoError(t, err)
	require.NoError(t, s.AssignStack(item.ID, stack.ID))

	require.NoError(t, s.UnassignStack(item.ID, stack.ID))

	got, err := s.GetItem(item.ID)
	require.NoError(t, err)
	assert.Empty(t, got.Stacks)

	// Unassigning an absent membership is a no-op.
	require.NoError(t, s.UnassignStack(item.ID, stack.ID))

	assert.ErrorIs(t, s.UnassignStack(999, stack.ID), types.ErrNotFound)
}

func TestSetItemStacks(t *testing.T) {
	s := newTestStore(t)

	item := addTestItem(t, s, "https://example.test/a")
	chill, err := s.AddStack("chill")
	require.NoError(t, err)
	hype, err := s.AddStack("hype")
	require.NoError(t, err)
	road, err := s.AddStack("road trip")
	require.NoError(t, err)

	require.NoError(t, s.AssignStack(item.ID, chill.ID))

	// Replace the whole membership set.
	require.NoError(t, s.SetItemStacks(item.ID, []int64{hype.ID, road.ID}))

	got, err := s.GetItem(item.ID)
	require.NoError(t, err)
	assert.Equal(t, []types.StackRef{
		{ID: hype.ID, Name: "hype"},
		{ID: road.ID, Name: "road trip"},
	}, got.Stacks)

	// Empty set clears all memberships.
	require.NoError(t, s.SetItemStacks(item.ID, nil))
	got, err = s.GetItem(item.ID)
	require.NoError(t, err)
	assert.Empty(t, got.Stacks)

	// Unknown stack id fails before any change is applied.
	require.NoError(t, s.SetItemStacks(item.ID, []int64{chill.ID}))
	err = s.SetItemStacks(item.ID, []int64{hype.ID, 999})
	assert.ErrorIs(t, err, types.ErrNotFound)
	got, err = s.GetItem(item.ID)
	require.NoError(t, err)
	assert.Equal(t, []types.StackRef{{ID: chill.ID, Name: "chill"}}, got.Stacks)
}
