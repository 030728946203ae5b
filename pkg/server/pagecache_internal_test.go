package server

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPageCache_EvictsLeastRecentlyUsed(t *testing.T) {
	t.Parallel()

	c := newPageCache(10)
	c.put("a", []byte("aaaa"), c.gen())
	c.put("b", []byte("bbbb"), c.gen())

	_, ok := c.get("a")
	require.True(t, ok)

	c.put("c", []byte("cccc"), c.gen())

	_, ok = c.get("b")
	assert.False(t, ok, "b was least recently used")

	html, ok := c.get("a")
	require.True(t, ok)
	assert.Equal(t, "aaaa", string(html))
	assert.Equal(t, 2, c.len())

	hits, misses := c.stats()
	assert.Equal(t, int64(2), hits)
	assert.Equal(t, int64(1), misses)
}

func TestPageCache_ReplaceAndClear(t *testing.T) {
	t.Parallel()

	c := newPageCache(10)
	c.put("a", []byte("aa"), c.gen())
	c.put("a", []byte("aaaaaa"), c.gen())
	assert.Equal(t, 6, c.curSize)

	c.put("huge", make([]byte, 11), c.gen())
	assert.Equal(t, 1, c.len())

	c.clear()
	assert.Equal(t, 0, c.len())
	assert.Equal(t, 0, c.curSize)
}

func TestPageCache_DropsPageBuiltBeforeClear(t *testing.T) {
	t.Parallel()

	c := newPageCache(1 << 10)

	gen := c.gen()
	c.clear()
	c.put("report/summary", []byte("old"), gen)

	_, ok := c.get("report/summary")
	assert.False(t, ok)

	c.put("report/summary", []byte("new"), c.gen())

	html, ok := c.get("report/summary")
	require.True(t, ok)
	assert.Equal(t, "new", string(html))
}
