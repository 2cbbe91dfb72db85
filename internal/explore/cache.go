package explore

import "github.com/abhisek/pathfinder/internal/catalog"

// Status is the fetch state of a cache entry.
type Status int

const (
	StatusUnrequested Status = iota
	StatusLoading
	StatusLoaded
	StatusError
)

func (s Status) String() string {
	switch s {
	case StatusLoading:
		return "loading"
	case StatusLoaded:
		return "loaded"
	case StatusError:
		return "error"
	}
	return "unrequested"
}

// Entry is the cached state of one resource key. Data is set only when
// Loaded and Err only when Error; build entries with the constructors.
type Entry struct {
	Status     Status
	Generation uint64
	Data       any
	Err        string
}

// LoadingEntry marks a request in flight.
func LoadingEntry(gen uint64) Entry {
	return Entry{Status: StatusLoading, Generation: gen}
}

// LoadedEntry holds a completed result.
func LoadedEntry(gen uint64, data any) Entry {
	return Entry{Status: StatusLoaded, Generation: gen, Data: data}
}

// ErrorEntry holds a failed result.
func ErrorEntry(gen uint64, msg string) Entry {
	return Entry{Status: StatusError, Generation: gen, Err: msg}
}

// Cache maps resource keys to entries. Generations come from one counter
// shared by all keys, so they only increase for any given key and nothing
// is kept for keys without an entry. A key without an entry reports the
// generation of the last invalidation; a late response issued before its
// eviction can therefore never match.
//
// Cache is not safe for concurrent use. It is owned by the event loop.
type Cache struct {
	entries map[ResourceKey]Entry
	last    uint64
	floor   uint64
}

// NewCache creates an empty Cache.
func NewCache() *Cache {
	return &Cache{entries: make(map[ResourceKey]Entry)}
}

// Get returns the entry for key. Unknown keys yield an Unrequested entry
// carrying the generation of the last invalidation.
func (c *Cache) Get(key ResourceKey) Entry {
	if e, ok := c.entries[key]; ok {
		return e
	}
	return Entry{Status: StatusUnrequested, Generation: c.floor}
}

// Put stores e under key. An entry older than the key's current generation
// is ignored and Put reports false.
func (c *Cache) Put(key ResourceKey, e Entry) bool {
	if e.Generation < c.Get(key).Generation {
		return false
	}
	if e.Status == StatusUnrequested {
		delete(c.entries, key)
		return true
	}
	c.entries[key] = e
	return true
}

// NextGeneration returns a generation newer than any issued before.
func (c *Cache) NextGeneration() uint64 {
	c.last++
	return c.last
}

// Invalidate evicts every entry whose key matches pred and raises the
// generation floor so in-flight responses for them are discarded. It
// returns the evicted keys.
func (c *Cache) Invalidate(pred func(ResourceKey) bool) []ResourceKey {
	var evicted []ResourceKey
	for k := range c.entries {
		if !pred(k) {
			continue
		}
		delete(c.entries, k)
		evicted = append(evicted, k)
	}
	if len(evicted) > 0 {
		c.floor = c.NextGeneration()
	}
	return evicted
}

// Len returns the number of stored entries.
func (c *Cache) Len() int {
	return len(c.entries)
}

// Pathway finds a pathway by ID in any loaded pathway list.
func (c *Cache) Pathway(id string) (catalog.Pathway, bool) {
	for k, e := range c.entries {
		if k.Kind != KindPathways || e.Status != StatusLoaded {
			continue
		}
		for _, p := range e.Data.([]catalog.Pathway) {
			if p.ID == id {
				return p, true
			}
		}
	}
	return catalog.Pathway{}, false
}
