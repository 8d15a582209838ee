package prompt

import (
	"sync"

	"golang.org/x/sync/singleflight"
)

const coreKey = "\x00core"

// PromptCache memoizes the core prompt and per-area knowledge blocks for the
// life of the process. Entries are written once and never evicted; the set
// of keys is bounded by areas times episodes.
type PromptCache struct {
	mu      sync.RWMutex
	core    string
	hasCore bool
	areas   map[string]string

	group singleflight.Group
}

// NewPromptCache creates an empty cache.
func NewPromptCache() *PromptCache {
	return &PromptCache{areas: make(map[string]string)}
}

// Core returns the cached core prompt, calling build on first use.
func (c *PromptCache) Core(build func() string) string {
	c.mu.RLock()
	if c.hasCore {
		s := c.core
		c.mu.RUnlock()
		return s
	}
	c.mu.RUnlock()

	v, _, _ := c.group.Do(coreKey, func() (interface{}, error) {
		c.mu.RLock()
		if c.hasCore {
			s := c.core
			c.mu.RUnlock()
			return s, nil
		}
		c.mu.RUnlock()

		s := build()
		c.mu.Lock()
		c.core, c.hasCore = s, true
		c.mu.Unlock()
		return s, nil
	})
	return v.(string)
}

// Area returns the block cached under key, calling build on first use.
// Concurrent first callers for the same key share one build.
func (c *PromptCache) Area(key string, build func() string) string {
	if s, ok := c.lookup(key); ok {
		return s
	}

	v, _, _ := c.group.Do(key, func() (interface{}, error) {
		if s, ok := c.lookup(key); ok {
			return s, nil
		}
		s := build()
		c.mu.Lock()
		c.areas[key] = s
		c.mu.Unlock()
		return s, nil
	})
	return v.(string)
}

func (c *PromptCache) lookup(key string) (string, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	s, ok := c.areas[key]
	return s, ok
}

// Len reports how many area blocks are cached.
func (c *PromptCache) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.areas)
}

// Keys returns the cached area keys (unordered).
func (c *PromptCache) Keys() []string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	keys := make([]string, 0, len(c.areas))
	for k := range c.areas {
		keys = append(keys, k)
	}
	return keys
}
