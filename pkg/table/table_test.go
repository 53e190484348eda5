package table

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func collect(t *testing.T, tb *PrefixTable[string], input string) []string {
	var found []string
	tb.Walk([]byte(input), func(n int, v string) bool {
		require.Equal(t, len(v), n)
		found = append(found, v)
		return false
	})
	return found
}

func TestWalkFindsAllPrefixKeys(t *testing.T) {
	tb := New[string]()
	for _, k := range []string{"apple", "applet", "apricot", "b"} {
		tb.Insert([]byte(k), k)
	}

	require.Equal(t, 4, tb.Size())
	require.Equal(t, 7, tb.MaxKeyLen())

	require.Equal(t, []string{"apple", "applet"}, collect(t, tb, "appletie"))
	require.Equal(t, []string{"apricot"}, collect(t, tb, "apricot"))
	require.Empty(t, collect(t, tb, "application"))
	require.Empty(t, collect(t, tb, "appl"))
	require.Equal(t, []string{"b"}, collect(t, tb, "banana"))
}

func TestWalkStopsWhenRequested(t *testing.T) {
	tb := New[int]()
	tb.Insert([]byte("ff"), 1)
	tb.Insert([]byte("ffd8"), 2)

	calls := 0
	tb.Walk([]byte("ffd8ff"), func(n int, v int) bool {
		calls++
		return true
	})
	require.Equal(t, 1, calls)
}

func TestInsertIgnoresEmptyKey(t *testing.T) {
	tb := New[int]()
	tb.Insert(nil, 1)
	require.Zero(t, tb.Size())

	v, ok := tb.Get([]byte("x"))
	require.False(t, ok)
	require.Zero(t, v)
}

func TestLongKeysAreExact(t *testing.T) {
	tb := New[string]()
	long := "89504e470d0a1a0a"
	tb.Insert([]byte(long), "png")

	require.Equal(t, []string{"png"}, collect(t, tb, long+"0000000d"))
	require.Empty(t, collect(t, tb, "89504e470d0a1a0b"))
}
