package server

import (
	"sync"
	"sync/atomic"
)

// defaultPageCacheBytes bounds the rendered HTML kept between requests.
const defaultPageCacheBytes = 16 << 20

type pageEntry struct {
	id   string
	html []byte
	prev *pageEntry
	next *pageEntry
}

// pageCache is a byte-bounded LRU of rendered report pages. Pages depend
// on the shared filter and the row set, so the server clears it whenever
// either changes. Each clear starts a new generation; a page built under an
// older generation is never stored.
type pageCache struct {
	mu         sync.Mutex
	entries    map[string]*pageEntry
	head       *pageEntry // most recently used
	tail       *pageEntry // least recently used
	maxSize    int
	curSize    int
	generation uint64

	hits   atomic.Int64
	misses atomic.Int64
}

func newPageCache(maxBytes int) *pageCache {
	return &pageCache{entries: make(map[string]*pageEntry), maxSize: maxBytes}
}

func (c *pageCache) get(id string) ([]byte, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	ent, ok := c.entries[id]
	if !ok {
		c.misses.Add(1)

		return nil, false
	}

	c.hits.Add(1)
	c.moveToFront(ent)

	return ent.html, true
}

// gen returns the current generation. Read it before building a page and
// hand it back to put.
func (c *pageCache) gen() uint64 {
	c.mu.Lock()
	defer c.mu.Unlock()

	return c.generation
}

// stats reports cumulative lookups.
func (c *pageCache) stats() (hits, misses int64) {
	return c.hits.Load(), c.misses.Load()
}

// put stores html under id if no clear happened since gen was read. Pages
// larger than the whole cache are skipped.
func (c *pageCache) put(id string, html []byte, gen uint64) {
	if len(html) > c.maxSize {
		return
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	if gen != c.generation {
		return
	}

	if ent, ok := c.entries[id]; ok {
		c.curSize += len(html) - len(ent.html)
		ent.html = html
		c.moveToFront(ent)
	} else {
		ent = &pageEntry{id: id, html: html}
		c.entries[id] = ent
		c.curSize += len(html)
		c.addToFront(ent)
	}

	for c.curSize > c.maxSize && c.tail != nil {
		victim := c.tail
		c.remove(victim)
		delete(c.entries, victim.id)
		c.curSize -= len(victim.html)
	}
}

func (c *pageCache) clear() {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.entries = make(map[string]*pageEntry)
	c.head, c.tail = nil, nil
	c.curSize = 0
	c.generation++
}

func (c *pageCache) len() int {
	c.mu.Lock()
	defer c.mu.Unlock()

	return len(c.entries)
}

func (c *pageCache) moveToFront(ent *pageEntry) {
	if ent == c.head {
		return
	}

	c.remove(ent)
	c.addToFront(ent)
}

func (c *pageCache) addToFront(ent *pageEntry) {
	ent.prev = nil
	ent.next = c.head

	if c.head != nil {
		c.head.prev = ent
	}

	c.head = ent

	if c.tail == nil {
		c.tail = ent
	}
}

func (c *pageCache) remove(ent *pageEntry) {
	if ent.prev != nil {
		ent.prev.next = ent.next
	} else {
		c.head = ent.next
	}

	if ent.next != nil {
		ent.next.prev = ent.prev
	} else {
		c.tail = ent.prev
	}
}
