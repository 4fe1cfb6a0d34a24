package course

import "sync"

// Cache memoizes computed roster rows keyed by student and data version. A
// version bump (any grade write) or an explicit Invalidate makes the entry a
// miss on the next read.
type Cache struct {
	mu      sync.RWMutex
	entries map[string]cacheEntry
}

type cacheEntry struct {
	version int64
	row     RosterRow
}

func NewCache() *Cache {
	return &Cache{entries: make(map[string]cacheEntry)}
}

func (c *Cache) get(studentID string, version int64) (RosterRow, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	e, ok := c.entries[studentID]
	if !ok || e.version != version {
		return RosterRow{}, false
	}
	return e.row, true
}

func (c *Cache) put(studentID string, version int64, row RosterRow) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries[studentID] = cacheEntry{version: version, row: row}
}

func (c *Cache) Invalidate(studentID string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.entries, studentID)
}

func (c *Cache) Reset() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries = make(map[string]cacheEntry)
}
