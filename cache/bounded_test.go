package cache

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestBoundedInsertAndContains(t *testing.T) {
	c := NewBounded[int, string](10)
	c.Insert(1, "a")
	c.Insert(2, "b")
	assert.True(t, c.Contains(1))
	assert.True(t, c.Contains(2))
	assert.False(t, c.Contains(3))
	assert.Equal(t, 2, c.Len())
}

func TestBoundedInsertIgnoresDuplicateKey(t *testing.T) {
	c := NewBounded[int, string](10)
	c.Insert(1, "a")
	c.Insert(1, "b")
	v, ok := c.Get(1)
	assert.True(t, ok)
	assert.Equal(t, "a", v)
	assert.Equal(t, 1, c.Len())
}

func TestBoundedPurgeEvictsNotUsefulFirst(t *testing.T) {
	c := NewBounded[int, string](10)
	c.Insert(1, "a")
	c.Insert(2, "b")
	c.Insert(3, "c")

	c.Visit(func(key int, _ string) bool { return key != 2 })
	removed := c.Purge()

	assert.Equal(t, []string{"b"}, removed)
	assert.Equal(t, 2, c.Len())
	assert.True(t, c.Contains(1))
	assert.False(t, c.Contains(2))
	assert.True(t, c.Contains(3))
}

func TestBoundedPurgeEvictsLeastRecentWhenOverCapacity(t *testing.T) {
	c := NewBounded[int, string](2)
	c.Insert(1, "a")
	c.Insert(2, "b")
	c.Insert(3, "c")

	// everything is still useful, but capacity is 2, so the oldest
	// insertion (1) must go.
	c.Visit(func(int, string) bool { return true })
	removed := c.Purge()

	assert.Equal(t, []string{"a"}, removed)
	assert.Equal(t, []int{2, 3}, c.Keys())
}

func TestBoundedPurgeNeverExceedsCapacity(t *testing.T) {
	c := NewBounded[int, string](3)
	for i := 0; i < 10; i++ {
		c.Insert(i, "x")
	}
	c.Visit(func(int, string) bool { return true })
	c.Purge()
	assert.LessOrEqual(t, c.Len(), 3)
}

func TestBoundedNotUsefulOutranksRecency(t *testing.T) {
	c := NewBounded[int, string](2)
	c.Insert(1, "a")
	c.Insert(2, "b")
	c.Insert(3, "c")

	// 3 is the most recently inserted but also not useful; it must be
	// evicted ahead of 1, the oldest, which is still useful.
	c.Visit(func(key int, _ string) bool { return key != 3 })
	removed := c.Purge()

	assert.Equal(t, []string{"c"}, removed)
	assert.True(t, c.Contains(1))
	assert.True(t, c.Contains(2))
}

func TestBoundedSetCapacityDoesNotEvictUntilNextPurge(t *testing.T) {
	c := NewBounded[int, string](10)
	c.Insert(1, "a")
	c.Insert(2, "b")
	c.SetCapacity(1)
	assert.Equal(t, 2, c.Len())

	c.Visit(func(int, string) bool { return true })
	c.Purge()
	assert.Equal(t, 1, c.Len())
}

func TestBoundedZeroCapacityOnlyEvictsUnused(t *testing.T) {
	c := NewBounded[int, string](0)
	c.Insert(1, "a")
	c.Insert(2, "b")
	c.Visit(func(key int, _ string) bool { return key == 1 })
	removed := c.Purge()
	assert.Equal(t, []string{"b"}, removed)
	assert.Equal(t, 1, c.Len())
}
