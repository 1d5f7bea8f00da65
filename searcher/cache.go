package searcher

import (
	lru "github.com/hashicorp/golang-lru/v2"
	"github.com/pkg/errors"
)

// cacheKey qualifies a state key with the plies left below it, so a value is
// only reused for a search of the same horizon.
type cacheKey struct {
	state     string
	remaining int
}

// Cache is a bounded transposition table. It is safe for concurrent use; the
// first value stored for a key wins and later puts are ignored, so results do
// not depend on goroutine scheduling. A nil *Cache stores nothing.
type Cache[V any] struct {
	entries *lru.Cache[cacheKey, V]
}

// NewCache returns a cache holding at most capacity entries, evicting the least
// recently used.
func NewCache[V any](capacity int) (*Cache[V], error) {
	entries, err := lru.New[cacheKey, V](capacity)
	if err != nil {
		return nil, errors.Wrapf(ErrConfiguration, "cache capacity %d: %v", capacity, err)
	}
	return &Cache[V]{entries: entries}, nil
}

func (c *Cache[V]) Get(key string, remaining int) (V, bool) {
	var zero V
	if c == nil {
		return zero, false
	}
	return c.entries.Get(cacheKey{state: key, remaining: remaining})
}

// Put stores v unless the key is already present. It reports whether v was
// stored.
func (c *Cache[V]) Put(key string, remaining int, v V) bool {
	if c == nil {
		return false
	}
	present, _ := c.entries.ContainsOrAdd(cacheKey{state: key, remaining: remaining}, v)
	return !present
}

func (c *Cache[V]) Len() int {
	if c == nil {
		return 0
	}
	return c.entries.Len()
}

func (c *Cache[V]) Purge() {
	if c == nil {
		return
	}
	c.entries.Purge()
}
