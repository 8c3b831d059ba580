// Package cache is the process-wide opcode/digest cache: an in-memory
// default, with an optional SQLite-backed persistent tier for deployments
// that want compiled templates to survive a process restart. Lookups that
// miss both tiers are deduplicated with singleflight so a burst of
// concurrent first-requests for the same template shape only compiles it
// once.
package cache

import (
	"context"
	"database/sql"
	"sync"

	"golang.org/x/sync/singleflight"
)

// Entry is one cached compilation result, opaque to this package: the
// opcode list and digest are marshaled by the caller (ssr.Opcodes and its
// fields are unexported, so this package never touches them directly — it
// only ever stores and returns the bytes the caller hands it).
type Entry struct {
	Digest  string
	Opcodes []byte
}

// Cache is safe for concurrent use. The zero value is a usable in-memory-
// only cache; call Open to add a persistent tier.
type Cache struct {
	mem   sync.Map // string -> *Entry
	group singleflight.Group
	db    *sql.DB
}

// New returns an in-memory-only cache.
func New() *Cache {
	return &Cache{}
}

// Get returns the cached entry for key, checking memory first and falling
// back to the persistent tier (if one is open), populating memory from a
// persistent hit so subsequent lookups avoid the round trip.
func (c *Cache) Get(ctx context.Context, key string) (*Entry, bool, error) {
	if v, ok := c.mem.Load(key); ok {
		return v.(*Entry), true, nil
	}
	if c.db == nil {
		return nil, false, nil
	}
	e, ok, err := c.getPersistent(ctx, key)
	if err != nil {
		return nil, false, err
	}
	if ok {
		c.mem.Store(key, e)
	}
	return e, ok, nil
}

// GetOrCompute returns the cached entry for key, computing and storing it
// via compute if absent. Concurrent calls for the same key that miss the
// cache share a single call to compute, via singleflight — the only
// concurrency-stampede protection the teacher's own per-instance cache
// fields (unguarded `lastTree`/`lastFingerprint`) did not need, since this
// cache is shared process-wide rather than one-per-template-instance.
func (c *Cache) GetOrCompute(ctx context.Context, key string, compute func() (*Entry, error)) (*Entry, error) {
	if e, ok, err := c.Get(ctx, key); err != nil {
		return nil, err
	} else if ok {
		return e, nil
	}

	v, err, _ := c.group.Do(key, func() (any, error) {
		if e, ok, err := c.Get(ctx, key); err != nil {
			return nil, err
		} else if ok {
			return e, nil
		}
		e, err := compute()
		if err != nil {
			return nil, err
		}
		if err := c.Put(ctx, key, e); err != nil {
			return nil, err
		}
		return e, nil
	})
	if err != nil {
		return nil, err
	}
	return v.(*Entry), nil
}

// Put stores e under key in memory and, if a persistent tier is open,
// there too.
func (c *Cache) Put(ctx context.Context, key string, e *Entry) error {
	c.mem.Store(key, e)
	if c.db == nil {
		return nil
	}
	return c.putPersistent(ctx, key, e)
}

func (c *Cache) getPersistent(ctx context.Context, key string) (*Entry, bool, error) {
	row := c.db.QueryRowContext(ctx, `SELECT digest, opcodes FROM template_cache WHERE key = ?`, key)
	var e Entry
	if err := row.Scan(&e.Digest, &e.Opcodes); err != nil {
		if err == sql.ErrNoRows {
			return nil, false, nil
		}
		return nil, false, err
	}
	return &e, true, nil
}

func (c *Cache) putPersistent(ctx context.Context, key string, e *Entry) error {
	_, err := c.db.ExecContext(ctx, `
		INSERT INTO template_cache (key, digest, opcodes) VALUES (?, ?, ?)
		ON CONFLICT(key) DO UPDATE SET digest = excluded.digest, opcodes = excluded.opcodes
	`, key, e.Digest, e.Opcodes)
	return err
}
