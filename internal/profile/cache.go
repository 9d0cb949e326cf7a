package profile

import "sync"

// Cache stores computed profiles by firm name.
type Cache interface {
	Get(firm string) (*Profile, bool)
	Put(firm string, p *Profile)
	Invalidate(firm string)
}

// MemoryCache is a process-lifetime Cache safe for concurrent use.
type MemoryCache struct {
	mu       sync.RWMutex
	profiles map[string]*Profile
}

func NewMemoryCache() *MemoryCache {
	return &MemoryCache{profiles: make(map[string]*Profile)}
}

func (c *MemoryCache) Get(firm string) (*Profile, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	p, ok := c.profiles[firm]
	return p, ok
}

func (c *MemoryCache) Put(firm string, p *Profile) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.profiles == nil {
		c.profiles = make(map[string]*Profile)
	}
	c.profiles[firm] = p
}

func (c *MemoryCache) Invalidate(firm string) {
	c.mu.Lock()
	defer c.mu.Unlock()

	delete(c.profiles, firm)
}

// Len returns the number of cached profiles.
func (c *MemoryCache) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()

	return len(c.profiles)
}
