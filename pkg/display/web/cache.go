package web

import "sync"

type cacheEntry struct {
	hash uint64
	data []byte
}

// cache is a ring of recently sent payloads, indexed by their hash so
// that a repeated payload is sent as its index.
type cache struct {
	cache []cacheEntry
	idx   int
	size  int
	sync.RWMutex
}

func newCache(size int) *cache {
	return &cache{
		cache: make([]cacheEntry, size),
		size:  size,
	}
}

// add stores output in the next slot, evicting the oldest entry, and
// returns its index.
func (c *cache) add(hash uint64, output []byte) int {
	i := c.idx
	c.cache[i] = cacheEntry{hash: hash, data: output}
	c.idx = (c.idx + 1) % c.size
	return i
}

// index returns the slot holding hash, or -1.
func (c *cache) index(hash uint64) int {
	for i, e := range c.cache {
		if e.data != nil && e.hash == hash {
			return i
		}
	}

	return -1
}

func (c *cache) reset() {
	for i := range c.cache {
		c.cache[i] = cacheEntry{}
	}
	c.idx = 0
}
