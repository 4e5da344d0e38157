// file: internals/helpers/ratelimit/ratelimit.go
package ratelimit

import (
	"fmt"
	"log"
	"time"

	"github.com/google/uuid"

	"praktikum_backend/internals/helpers/cache"
)

// Kind membedakan budget read vs write per window.
type Kind string

const (
	KindRead  Kind = "read"
	KindWrite Kind = "write"
)

const Window = 60 * time.Second

type Config struct {
	ReadLimit  int // default 60 req / window
	WriteLimit int // default 30 req / window
	Disabled   bool
}

// Limiter adalah sliding-window counter per (user, operation) di atas
// cache ber-TTL. Sengaja approximate dan tanpa lock lintas-request:
// backing store best-effort, dua request di instant yang sama boleh
// sama-sama lolos.
type Limiter struct {
	cache *cache.Cache
	cfg   Config
	now   func() time.Time
}

func New(c *cache.Cache, cfg Config) *Limiter {
	if cfg.ReadLimit <= 0 {
		cfg.ReadLimit = 60
	}
	if cfg.WriteLimit <= 0 {
		cfg.WriteLimit = 30
	}
	return &Limiter{cache: c, cfg: cfg, now: time.Now}
}

// SetNow override jam untuk test.
func (l *Limiter) SetNow(now func() time.Time) { l.now = now }

func (l *Limiter) limitFor(kind Kind) int {
	if kind == KindWrite {
		return l.cfg.WriteLimit
	}
	return l.cfg.ReadLimit
}

func key(userID uuid.UUID, op string) string {
	return fmt.Sprintf("ratelimit:%s:%s", userID, op)
}

// Allow cek & konsumsi satu slot window untuk (user, op).
// bypass=true (admin / limiter dimatikan) selalu lolos tanpa menyentuh window.
func (l *Limiter) Allow(userID uuid.UUID, op string, kind Kind, bypass bool) bool {
	if l.cfg.Disabled || bypass {
		return true
	}

	now := l.now()
	cutoff := now.Add(-Window).UnixNano()
	limit := l.limitFor(kind)

	stamps := l.window(userID, op)
	fresh := make([]int64, 0, len(stamps)+1)
	for _, ts := range stamps {
		if ts > cutoff {
			fresh = append(fresh, ts)
		}
	}

	if len(fresh) >= limit {
		log.Printf("[RATELIMIT] user=%s op=%s kind=%s ditolak (%d/%d dalam %s)",
			userID, op, kind, len(fresh), limit, Window)
		return false
	}

	fresh = append(fresh, now.UnixNano())
	l.cache.Set(key(userID, op), fresh, Window)
	return true
}

// Remaining hitung sisa kuota tanpa mengkonsumsi slot.
func (l *Limiter) Remaining(userID uuid.UUID, op string, kind Kind) int {
	limit := l.limitFor(kind)
	if l.cfg.Disabled {
		return limit
	}
	cutoff := l.now().Add(-Window).UnixNano()
	used := 0
	for _, ts := range l.window(userID, op) {
		if ts > cutoff {
			used++
		}
	}
	if used >= limit {
		return 0
	}
	return limit - used
}

func (l *Limiter) window(userID uuid.UUID, op string) []int64 {
	v, ok := l.cache.Get(key(userID, op))
	if !ok {
		return nil
	}
	stamps, ok := v.([]int64)
	if !ok {
		return nil
	}
	return stamps
}
