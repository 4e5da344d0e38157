package ratelimit

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"praktikum_backend/internals/helpers/cache"
)

func newTestLimiter(t *testing.T, cfg Config) (*Limiter, *time.Time) {
	t.Helper()
	now := time.Date(2026, 8, 28, 10, 0, 0, 0, time.UTC)
	l := New(cache.New(0), cfg)
	l.SetNow(func() time.Time { return now })
	return l, &now
}

func TestAllowWithinSameSecond(t *testing.T) {
	l, _ := newTestLimiter(t, Config{WriteLimit: 2})
	user := uuid.New()

	// limit write=2: tiga call beruntun → [true, true, false]
	assert.True(t, l.Allow(user, "op", KindWrite, false))
	assert.True(t, l.Allow(user, "op", KindWrite, false))
	assert.False(t, l.Allow(user, "op", KindWrite, false))
}

func TestWindowSlides(t *testing.T) {
	l, now := newTestLimiter(t, Config{WriteLimit: 2})
	user := uuid.New()

	require.True(t, l.Allow(user, "op", KindWrite, false))
	require.True(t, l.Allow(user, "op", KindWrite, false))
	require.False(t, l.Allow(user, "op", KindWrite, false))

	// setelah timestamps lewat 60 detik, kuota pulih
	*now = now.Add(Window + time.Second)
	assert.True(t, l.Allow(user, "op", KindWrite, false))
}

func TestReadAndWriteBudgetsIndependent(t *testing.T) {
	l, _ := newTestLimiter(t, Config{ReadLimit: 1, WriteLimit: 1})
	user := uuid.New()

	assert.True(t, l.Allow(user, "cases.list", KindRead, false))
	assert.False(t, l.Allow(user, "cases.list", KindRead, false))

	// op berbeda punya window sendiri
	assert.True(t, l.Allow(user, "cases.update", KindWrite, false))
}

func TestBypassAndDisabled(t *testing.T) {
	l, _ := newTestLimiter(t, Config{WriteLimit: 1})
	user := uuid.New()

	require.True(t, l.Allow(user, "op", KindWrite, false))
	require.False(t, l.Allow(user, "op", KindWrite, false))
	// admin bypass tidak pernah ditolak dan tidak mengubah window
	assert.True(t, l.Allow(user, "op", KindWrite, true))
	assert.False(t, l.Allow(user, "op", KindWrite, false))

	ld, _ := newTestLimiter(t, Config{WriteLimit: 1, Disabled: true})
	for i := 0; i < 10; i++ {
		assert.True(t, ld.Allow(user, "op", KindWrite, false))
	}
}

func TestRemainingDoesNotConsume(t *testing.T) {
	l, _ := newTestLimiter(t, Config{ReadLimit: 3})
	user := uuid.New()

	assert.Equal(t, 3, l.Remaining(user, "op", KindRead))
	assert.Equal(t, 3, l.Remaining(user, "op", KindRead))

	require.True(t, l.Allow(user, "op", KindRead, false))
	assert.Equal(t, 2, l.Remaining(user, "op", KindRead))
}
