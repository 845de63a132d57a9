package store

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/require"
)

func TestInsertReturnsSequentialIDs(t *testing.T) {
	var s Store[string]
	a := s.Insert("a")
	b := s.Insert("b")

	require.Equal(t, ID[string](0), a)
	require.Equal(t, ID[string](1), b)
	require.Equal(t, "b", s.Get(b))
	require.True(t, s.Contains(b))
	require.False(t, s.Contains(ID[string](2)))
	require.Equal(t, 2, s.Len())
}

func TestValuesIsACopy(t *testing.T) {
	var s Store[int]
	s.Insert(1)
	s.Insert(2)

	vals := s.Values()
	vals[0] = 99
	if diff := cmp.Diff([]int{1, 2}, s.Values()); diff != "" {
		t.Errorf("Values mismatch (-want +got):\n%s", diff)
	}
}
