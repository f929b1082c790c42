package tree

import (
	"maps"
	"slices"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestSet(t *testing.T) {
	s, err := NewOrderedSet[string]()
	require.NoError(t, err)

	for _, k := range []string{"pear", "apple", "fig", "apple"} {
		_, err = s.Insert(k)
		require.NoError(t, err)
	}
	require.Equal(t, int64(3), s.Len())
	ok, err := s.Insert("fig")
	require.NoError(t, err)
	require.False(t, ok)

	require.True(t, s.Contains("pear"))
	require.False(t, s.Contains("kiwi"))
	require.Equal(t, []string{"apple", "fig", "pear"}, slices.Collect(s.All()))
	require.Equal(t, []string{"pear", "fig", "apple"}, slices.Collect(s.Backward()))

	minKey, ok := s.Min()
	require.True(t, ok)
	require.Equal(t, "apple", minKey)
	maxKey, ok := s.Max()
	require.True(t, ok)
	require.Equal(t, "pear", maxKey)

	require.True(t, s.Delete("fig"))
	require.False(t, s.Delete("fig"))
	require.NoError(t, Validate[string, string](s.Tree()))

	s.Clear()
	_, ok = s.Min()
	require.False(t, ok)
}

func TestMultiSet(t *testing.T) {
	s, err := NewMultiSet[string](func(i, j string) bool {
		return strings.ToLower(i) < strings.ToLower(j)
	})
	require.NoError(t, err)

	for _, k := range []string{"b", "A", "a", "c", "B"} {
		require.NoError(t, s.Insert(k))
	}
	require.Equal(t, []string{"A", "a", "b", "B", "c"}, slices.Collect(s.All()))
	require.Equal(t, int64(2), s.Count("a"))

	require.True(t, s.DeleteOne("a"))
	require.Equal(t, []string{"a", "b", "B", "c"}, slices.Collect(s.All()))
	require.Equal(t, int64(2), s.Delete("B"))
	require.False(t, s.DeleteOne("b"))
	require.Equal(t, int64(2), s.Len())
	require.NoError(t, Validate[string, string](s.Tree()))
}

func TestMap(t *testing.T) {
	m, err := NewOrderedMap[int, string]()
	require.NoError(t, err)

	require.NoError(t, m.Put(3, "c"))
	require.NoError(t, m.Put(1, "a"))
	require.NoError(t, m.Put(2, "b"))
	require.NoError(t, m.Put(3, "C"))
	require.Equal(t, int64(3), m.Len())

	ok, err := m.PutIfAbsent(2, "x")
	require.NoError(t, err)
	require.False(t, ok)

	v, ok := m.Get(3)
	require.True(t, ok)
	require.Equal(t, "C", v)
	_, ok = m.Get(4)
	require.False(t, ok)

	require.Equal(t, []int{1, 2, 3}, m.Keys())
	require.Equal(t, []string{"a", "b", "C"}, m.Values())
	require.Equal(t, map[int]string{1: "a", 2: "b", 3: "C"}, maps.Collect(m.All()))

	keys := make([]int, 0, 3)
	for k := range m.Backward() {
		keys = append(keys, k)
	}
	require.Equal(t, []int{3, 2, 1}, keys)

	v, ok = m.Delete(2)
	require.True(t, ok)
	require.Equal(t, "b", v)
	_, ok = m.Delete(2)
	require.False(t, ok)
	require.False(t, m.Contains(2))
	require.NoError(t, Validate[int, Pair[int, string]](m.Tree()))
}

func TestMultiMap(t *testing.T) {
	m, err := NewOrderedMultiMap[string, int]()
	require.NoError(t, err)

	require.NoError(t, m.Put("x", 1))
	require.NoError(t, m.Put("y", 2))
	require.NoError(t, m.Put("x", 3))
	require.NoError(t, m.Put("x", 5))

	require.Equal(t, []int{1, 3, 5}, m.GetAll("x"))
	require.Equal(t, []int{2}, m.GetAll("y"))
	require.Empty(t, m.GetAll("z"))

	require.Equal(t, int64(3), m.Delete("x"))
	require.Equal(t, int64(1), m.Len())
	require.Equal(t, map[string]int{"y": 2}, maps.Collect(m.All()))
}

func TestMapOutOfMemory(t *testing.T) {
	m, err := NewOrderedMap[int, int](
		WithRBTreeArenaOptions[int, Pair[int, int]](WithArenaLimit[Pair[int, int]](3)),
	)
	require.NoError(t, err)
	require.NoError(t, m.Put(1, 1))
	require.NoError(t, m.Put(2, 2))
	require.ErrorIs(t, m.Put(3, 3), ErrOutOfMemory)
	require.NoError(t, m.Put(2, 20))
	v, ok := m.Get(2)
	require.True(t, ok)
	require.Equal(t, 20, v)
}
