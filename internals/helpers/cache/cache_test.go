package cache

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSetGetDelete(t *testing.T) {
	c := New(0)

	c.Set("cases:list:p1", "payload", 0)
	v, ok := c.Get("cases:list:p1")
	require.True(t, ok)
	assert.Equal(t, "payload", v)

	c.Delete("cases:list:p1")
	_, ok = c.Get("cases:list:p1")
	assert.False(t, ok)
}

func TestGetRespectsTTL(t *testing.T) {
	c := New(0)

	c.Set("k", 1, 10*time.Millisecond)
	_, ok := c.Get("k")
	require.True(t, ok)

	time.Sleep(20 * time.Millisecond)
	_, ok = c.Get("k")
	assert.False(t, ok, "entry kadaluarsa harus hilang saat Get")
}

func TestInvalidateTopic(t *testing.T) {
	c := New(0)

	c.Set("cases:list:p1", 1, 0)
	c.Set("cases:list:p2", 2, 0)
	c.Set("categories:counts:x", 3, 0)

	n := c.InvalidateTopic("cases")
	assert.Equal(t, 2, n)

	_, ok := c.Get("categories:counts:x")
	assert.True(t, ok, "topic lain tidak boleh ikut terhapus")
	assert.Equal(t, 1, c.Len())
}
