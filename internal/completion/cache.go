package completion

import (
	"container/list"
	"context"
	"sync"
	"time"
)

// Cache memoizes provider results per (cwd, input) with a TTL and LRU
// eviction. It is safe for concurrent use.
type Cache struct {
	p       Provider
	ttl     time.Duration
	maxSize int
	now     func() time.Time

	mu    sync.Mutex
	items map[string]*list.Element
	lru   *list.List
}

type cacheEntry struct {
	key     string
	at      time.Time
	results []Candidate
}

// NewCache wraps p. Results older than ttl are fetched again.
func NewCache(p Provider, ttl time.Duration, maxSize int) *Cache {
	if maxSize <= 0 {
		maxSize = 64
	}
	return &Cache{
		p:       p,
		ttl:     ttl,
		maxSize: maxSize,
		now:     time.Now,
		items:   make(map[string]*list.Element),
		lru:     list.New(),
	}
}

func (c *Cache) Complete(ctx context.Context, input, cwd string) ([]Candidate, error) {
	key := cwd + "\x00" + input
	if res, ok := c.get(key); ok {
		return res, nil
	}
	res, err := c.p.Complete(ctx, input, cwd)
	if err != nil {
		return nil, err
	}
	// Results cut short by the deadline are not worth keeping
	if ctx.Err() == nil {
		c.set(key, res)
	}
	return append([]Candidate(nil), res...), nil
}

func (c *Cache) get(key string) ([]Candidate, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	elem, ok := c.items[key]
	if !ok {
		return nil, false
	}
	entry := elem.Value.(*cacheEntry)
	if c.ttl > 0 && c.now().Sub(entry.at) > c.ttl {
		c.lru.Remove(elem)
		delete(c.items, key)
		return nil, false
	}
	c.lru.MoveToFront(elem)
	return append([]Candidate(nil), entry.results...), true
}

func (c *Cache) set(key string, res []Candidate) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if elem, ok := c.items[key]; ok {
		entry := elem.Value.(*cacheEntry)
		entry.at = c.now()
		entry.results = append([]Candidate(nil), res...)
		c.lru.MoveToFront(elem)
		return
	}
	elem := c.lru.PushFront(&cacheEntry{key: key, at: c.now(), results: append([]Candidate(nil), res...)})
	c.items[key] = elem
	for c.lru.Len() > c.maxSize {
		old := c.lru.Back()
		c.lru.Remove(old)
		delete(c.items, old.Value.(*cacheEntry).key)
	}
}

// Clear drops every entry.
func (c *Cache) Clear() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.items = make(map[string]*list.Element)
	c.lru.Init()
}

// Len is the number of cached entries.
func (c *Cache) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.lru.Len()
}
