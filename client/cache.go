// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package client

import (
	"context"
	"sync"

	"github.com/danielhkuo/querydesk/models"
)

type State int

const (
	StateLoading State = iota
	StateError
	StateSuccess
)

func (s State) String() string {
	switch s {
	case StateError:
		return "error"
	case StateSuccess:
		return "success"
	default:
		return "loading"
	}
}

type entry struct {
	data any
	err  error
}

// Cache holds the last result per request URL. Entries live until
// Invalidate; nothing refetches on its own.
type Cache struct {
	mu      sync.Mutex
	entries map[string]entry
}

func NewCache() *Cache {
	return &Cache{entries: make(map[string]entry)}
}

func (c *Cache) get(key string) (entry, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	e, ok := c.entries[key]
	return e, ok
}

func (c *Cache) set(key string, e entry) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries[key] = e
}

// Invalidate drops the entry for key
func (c *Cache) Invalidate(key string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.entries, key)
}

// Snapshot is what the presentation layer renders from
type Snapshot struct {
	State State
	Data  models.FormDataList
	Err   error
}

// FormDataResource is the cached form-data listing
type FormDataResource struct {
	client *Client
	cache  *Cache
	key    string

	// serializes fetches so one Load or Revalidate hits the server at a time
	fetchMu sync.Mutex
}

func NewFormDataResource(c *Client, cache *Cache) *FormDataResource {
	return &FormDataResource{client: c, cache: cache, key: c.FormDataURL()}
}

// Load fetches the listing on first use and returns the cached result after
func (r *FormDataResource) Load(ctx context.Context) Snapshot {
	r.fetchMu.Lock()
	defer r.fetchMu.Unlock()

	if e, ok := r.cache.get(r.key); ok {
		return snapshotOf(e)
	}
	return r.fetch(ctx)
}

// Revalidate invalidates the cached listing and fetches it again
func (r *FormDataResource) Revalidate(ctx context.Context) Snapshot {
	r.fetchMu.Lock()
	defer r.fetchMu.Unlock()

	r.cache.Invalidate(r.key)
	return r.fetch(ctx)
}

// State reports the current cache entry without fetching
func (r *FormDataResource) State() Snapshot {
	e, ok := r.cache.get(r.key)
	if !ok {
		return Snapshot{State: StateLoading}
	}
	return snapshotOf(e)
}

func (r *FormDataResource) fetch(ctx context.Context) Snapshot {
	list, err := r.client.ListFormData(ctx)
	e := entry{err: err}
	if err == nil {
		e.data = list
	}
	r.cache.set(r.key, e)
	return snapshotOf(e)
}

func snapshotOf(e entry) Snapshot {
	if e.err != nil {
		return Snapshot{State: StateError, Err: e.err}
	}
	list, _ := e.data.(models.FormDataList)
	return Snapshot{State: StateSuccess, Data: list}
}
