// Package optimistic keeps a local copy of a project's labels and applies
// deletes to it before the remote store confirms them.
package optimistic

import (
	"errors"
	"sync"

	"github.com/google/uuid"

	"github.com/thenoetrevino/hue/internal/hierarchy"
	"github.com/thenoetrevino/hue/internal/models"
)

// ErrUnknownToken is returned when a token was already settled or never issued
var ErrUnknownToken = errors.New("unknown or settled mutation token")

// Token identifies one applied, unsettled mutation
type Token string

// Mutation is a local change to the cached collection
type Mutation struct {
	LabelID string
}

// RemoveLabel removes the label with the given ID from the cache
func RemoveLabel(id string) Mutation {
	return Mutation{LabelID: id}
}

type applied struct {
	mutation Mutation
	removed  *models.Label // nil when the label was not cached
	index    int
	grave    *tombstone
}

// tombstone hides a deleted label from fetches that may predate the delete.
// settledAt is zero while the remote call is in flight. Every mutation owns
// its own tombstone, so two deletes of one label settle independently.
type tombstone struct {
	settledAt uint64
}

// hides reports whether the tombstone masks a fetch that started at since
func (ts *tombstone) hides(since uint64) bool {
	return ts.settledAt == 0 || ts.settledAt > since
}

// Cache is the local label collection. It is safe for concurrent use.
type Cache struct {
	mu         sync.Mutex
	labels     []*models.Label
	loaded     bool
	version    uint64
	lastFetch  uint64
	pending    map[Token]*applied
	tombstones map[string][]*tombstone
}

// NewCache returns an unloaded cache
func NewCache() *Cache {
	return &Cache{
		pending:    make(map[Token]*applied),
		tombstones: make(map[string][]*tombstone),
	}
}

// Version increases on every change. Pass the value read before a fetch
// starts to Replace.
func (c *Cache) Version() uint64 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.version
}

// IsLoaded reports whether a fetch has completed
func (c *Cache) IsLoaded() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.loaded
}

// Snapshot returns a copy of the collection that callers may keep
func (c *Cache) Snapshot() hierarchy.Collection {
	c.mu.Lock()
	defer c.mu.Unlock()
	if !c.loaded {
		return hierarchy.Unloaded()
	}
	return hierarchy.Loaded(models.CloneLabels(c.labels))
}

// Contains reports whether the label is currently cached
func (c *Cache) Contains(id string) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return indexOf(c.labels, id) >= 0
}

// Replace installs a fetched collection. since is the Version observed when
// the fetch started. Results older than an already installed fetch are
// dropped, and deleted labels never come back from a fetch that started
// before their delete settled. It reports whether the labels were installed.
func (c *Cache) Replace(labels []*models.Label, since uint64) bool {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.loaded && since < c.lastFetch {
		return false
	}

	next := make([]*models.Label, 0, len(labels))
	for _, l := range labels {
		if c.hidden(l.ID, since) {
			continue
		}
		next = append(next, l.Clone())
	}

	// A fetch started after a delete settled reflects it, so the tombstone
	// has done its job.
	for id, graves := range c.tombstones {
		live := graves[:0]
		for _, ts := range graves {
			if ts.hides(since) {
				live = append(live, ts)
			}
		}
		if len(live) == 0 {
			delete(c.tombstones, id)
		} else {
			c.tombstones[id] = live
		}
	}

	c.labels = next
	c.loaded = true
	c.lastFetch = since
	c.version++
	return true
}

// ApplyOptimistic applies m immediately and returns the token that later
// confirms or rolls it back. Removing a label that is not cached still
// yields a token.
func (c *Cache) ApplyOptimistic(m Mutation) Token {
	c.mu.Lock()
	defer c.mu.Unlock()

	a := &applied{mutation: m, index: -1, grave: &tombstone{}}
	if i := indexOf(c.labels, m.LabelID); i >= 0 {
		a.removed = c.labels[i]
		a.index = i
		c.labels = append(c.labels[:i:i], c.labels[i+1:]...)
	}
	c.tombstones[m.LabelID] = append(c.tombstones[m.LabelID], a.grave)

	token := Token(uuid.NewString())
	c.pending[token] = a
	c.version++
	return token
}

// Confirm settles a mutation the remote store accepted
func (c *Cache) Confirm(t Token) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	a, ok := c.pending[t]
	if !ok {
		return ErrUnknownToken
	}
	delete(c.pending, t)
	c.version++
	a.grave.settledAt = c.version

	// An earlier rollback of the same label may have put it back
	if i := indexOf(c.labels, a.mutation.LabelID); i >= 0 {
		c.labels = append(c.labels[:i:i], c.labels[i+1:]...)
	}
	return nil
}

// Rollback undoes a mutation the remote store rejected. The label goes back
// to its original position, or the end if the collection has since shrunk.
func (c *Cache) Rollback(t Token) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	a, ok := c.pending[t]
	if !ok {
		return ErrUnknownToken
	}
	delete(c.pending, t)
	c.dropTombstone(a)
	c.version++

	if a.removed == nil || indexOf(c.labels, a.removed.ID) >= 0 {
		return nil
	}
	if len(c.tombstones[a.removed.ID]) > 0 {
		// Another delete of this label is unsettled or confirmed. Hand the
		// removed copy to an unsettled one so its own rollback can restore it.
		for _, other := range c.pending {
			if other.mutation.LabelID == a.removed.ID && other.removed == nil {
				other.removed, other.index = a.removed, a.index
				break
			}
		}
		return nil
	}
	i := min(a.index, len(c.labels))
	c.labels = append(c.labels[:i:i], append([]*models.Label{a.removed}, c.labels[i:]...)...)
	return nil
}

// Pending returns the number of unsettled mutations
func (c *Cache) Pending() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.pending)
}

// hidden reports whether any tombstone of id masks a fetch started at since
func (c *Cache) hidden(id string, since uint64) bool {
	for _, ts := range c.tombstones[id] {
		if ts.hides(since) {
			return true
		}
	}
	return false
}

// dropTombstone drops a's own tombstone and leaves those of other mutations in place
func (c *Cache) dropTombstone(a *applied) {
	id := a.mutation.LabelID
	graves := c.tombstones[id]
	for i, ts := range graves {
		if ts == a.grave {
			graves = append(graves[:i:i], graves[i+1:]...)
			break
		}
	}
	if len(graves) == 0 {
		delete(c.tombstones, id)
		return
	}
	c.tombstones[id] = graves
}

func indexOf(labels []*models.Label, id string) int {
	for i, l := range labels {
		if l.ID == id {
			return i
		}
	}
	return -1
}
