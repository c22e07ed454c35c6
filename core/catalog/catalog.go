// Package catalog holds the ordered, append-only list of soundboard entries.
package catalog

import (
	"strconv"
	"sync"
	"time"

	"Sampler/model"
)

// Catalog is an ordered sequence of sounds. It only grows: entries are never
// edited, removed or reordered.
type Catalog struct {
	mu      sync.RWMutex
	sounds  []model.Sound
	index   map[string]int
	lastID  int64
	now     func() time.Time
	onAdded []func(model.Sound)
}

// New creates a catalog holding a copy of seed.
func New(seed []model.Sound) *Catalog {
	c := &Catalog{
		sounds: make([]model.Sound, 0, len(seed)),
		index:  make(map[string]int, len(seed)),
		now:    time.Now,
	}
	for _, s := range seed {
		c.appendLocked(s)
	}
	return c
}

// OnAdded registers fn to be called after every Append. Callbacks run on the
// appending goroutine, outside the catalog lock.
func (c *Catalog) OnAdded(fn func(model.Sound)) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.onAdded = append(c.onAdded, fn)
}

// Append adds s to the end of the catalog. It performs no validation.
func (c *Catalog) Append(s model.Sound) {
	c.mu.Lock()
	c.appendLocked(s)
	listeners := append([]func(model.Sound){}, c.onAdded...)
	c.mu.Unlock()

	for _, fn := range listeners {
		fn(s)
	}
}

func (c *Catalog) appendLocked(s model.Sound) {
	c.index[s.ID] = len(c.sounds)
	c.sounds = append(c.sounds, s)
}

// List returns a snapshot of the catalog in insertion order.
func (c *Catalog) List() []model.Sound {
	c.mu.RLock()
	defer c.mu.RUnlock()

	out := make([]model.Sound, len(c.sounds))
	copy(out, c.sounds)
	return out
}

// Get looks a sound up by id.
func (c *Catalog) Get(id string) (model.Sound, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	i, ok := c.index[id]
	if !ok {
		return model.Sound{}, false
	}
	return c.sounds[i], true
}

// Len returns the number of entries.
func (c *Catalog) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.sounds)
}

// NewID returns a fresh id derived from the current time in milliseconds.
// Ids are strictly increasing so two submissions within the same
// millisecond still get distinct ids.
func (c *Catalog) NewID() string {
	c.mu.Lock()
	defer c.mu.Unlock()

	ms := c.now().UnixMilli()
	if ms <= c.lastID {
		ms = c.lastID + 1
	}
	c.lastID = ms
	id := strconv.FormatInt(ms, 10)
	for {
		if _, taken := c.index[id]; !taken {
			return id
		}
		c.lastID++
		id = strconv.FormatInt(c.lastID, 10)
	}
}
