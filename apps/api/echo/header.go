package echoapi

import (
	"context"
	"sync"

	"github.com/trezcool/lessonnotes/core/profile"
)

// headerCache keeps the stored profile between requests.
// It is dropped whenever the profile changes and re-read on next use.
type headerCache struct {
	svc         *profile.Service
	unsubscribe func()

	mu      sync.RWMutex
	cached  *profile.Profile
	version int // bumped on every change; a read racing a change is not cached
}

func newHeaderCache(svc *profile.Service) *headerCache {
	c := &headerCache{svc: svc}
	c.unsubscribe = svc.Subscribe(c.invalidate)
	return c
}

func (c *headerCache) invalidate() {
	c.mu.Lock()
	c.cached = nil
	c.version++
	c.mu.Unlock()
}

func (c *headerCache) profile(ctx context.Context) (profile.Profile, error) {
	c.mu.RLock()
	cached, version := c.cached, c.version
	c.mu.RUnlock()
	if cached != nil {
		return *cached, nil
	}

	p, err := c.svc.Get(ctx)
	if err != nil {
		return profile.Profile{}, err
	}
	c.mu.Lock()
	if c.version == version {
		c.cached = &p
	}
	c.mu.Unlock()
	return p, nil
}

func (c *headerCache) close() {
	c.unsubscribe()
}
