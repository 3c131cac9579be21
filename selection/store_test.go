package selection

import (
	"testing"

	"sangamtransport/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()
	s, err := NewStore(t.TempDir())
	require.NoError(t, err)
	return s
}

func regKey(id int64) models.ConsignmentKey {
	return models.ConsignmentKey{Type: models.ConsignmentRegular, ID: id}
}

func staKey(id int64) models.ConsignmentKey {
	return models.ConsignmentKey{Type: models.ConsignmentStation, ID: id}
}

func TestGetOnFreshStoreIsEmpty(t *testing.T) {
	s := newTestStore(t)
	keys, err := s.Get(1)
	require.NoError(t, err)
	assert.Empty(t, keys)
}

func TestAddDeduplicates(t *testing.T) {
	s := newTestStore(t)

	keys, err := s.Add(1, regKey(5), regKey(5), regKey(7))
	require.NoError(t, err)
	assert.Len(t, keys, 2)

	keys, err = s.Add(1, regKey(7))
	require.NoError(t, err)
	assert.Len(t, keys, 2)
}

// A regular bilty and a station bilty with the same numeric id are different
// consignments and must coexist in the selection.
func TestCompositeKeysWithSameIDAreDistinct(t *testing.T) {
	s := newTestStore(t)

	keys, err := s.Add(1, regKey(5), staKey(5))
	require.NoError(t, err)
	require.Len(t, keys, 2)

	keys, err = s.Remove(1, regKey(5))
	require.NoError(t, err)
	require.Len(t, keys, 1)
	assert.Equal(t, staKey(5), keys[0])
}

func TestToggleTwiceRestoresMembership(t *testing.T) {
	s := newTestStore(t)

	_, err := s.Add(1, regKey(1), staKey(2))
	require.NoError(t, err)
	before, err := s.Get(1)
	require.NoError(t, err)

	// Toggle an absent key in, then back out.
	_, err = s.Toggle(1, regKey(9))
	require.NoError(t, err)
	mid, err := s.Get(1)
	require.NoError(t, err)
	assert.Len(t, mid, 3)

	_, err = s.Toggle(1, regKey(9))
	require.NoError(t, err)
	after, err := s.Get(1)
	require.NoError(t, err)
	assert.ElementsMatch(t, before, after)

	// Toggle a present key out, then back in.
	_, err = s.Toggle(1, staKey(2))
	require.NoError(t, err)
	_, err = s.Toggle(1, staKey(2))
	require.NoError(t, err)
	after, err = s.Get(1)
	require.NoError(t, err)
	assert.ElementsMatch(t, before, after)
}

func TestRemoveUnknownKeyIsNoop(t *testing.T) {
	s := newTestStore(t)

	_, err := s.Add(1, regKey(1))
	require.NoError(t, err)
	keys, err := s.Remove(1, regKey(999))
	require.NoError(t, err)
	assert.Len(t, keys, 1)
}

func TestClearEmptiesOnlyThatUser(t *testing.T) {
	s := newTestStore(t)

	_, err := s.Add(1, regKey(1))
	require.NoError(t, err)
	_, err = s.Add(2, regKey(2))
	require.NoError(t, err)

	require.NoError(t, s.Clear(1))

	keys, err := s.Get(1)
	require.NoError(t, err)
	assert.Empty(t, keys)

	keys, err = s.Get(2)
	require.NoError(t, err)
	assert.Len(t, keys, 1)
}

func TestSelectionSurvivesStoreRestart(t *testing.T) {
	dir := t.TempDir()
	s, err := NewStore(dir)
	require.NoError(t, err)
	_, err = s.Add(1, regKey(3), staKey(4))
	require.NoError(t, err)

	reopened, err := NewStore(dir)
	require.NoError(t, err)
	keys, err := reopened.Get(1)
	require.NoError(t, err)
	assert.ElementsMatch(t, []models.ConsignmentKey{regKey(3), staKey(4)}, keys)
}
