package cache

import (
	"errors"
	"sync"
	"sync/atomic"
	"time"

	"github.com/givplus/givlocal/core"
)

var ErrNotCached = errors.New("campaign not found in cache")

// Config configures cache behavior
type Config struct {
	TTL     time.Duration
	MaxSize int
}

// Stats tracks cache performance metrics
type Stats struct {
	Hits      int64         `json:"hits"`
	Misses    int64         `json:"misses"`
	Sets      int64         `json:"sets"`
	Deletes   int64         `json:"deletes"`
	Evictions int64         `json:"evictions"`
	Size      int           `json:"size"`
	TTL       time.Duration `json:"ttl"`
}

// CampaignCache is an in-memory read cache for campaign point lookups.
// Entries are invalidated on every campaign write, so a hit can only be
// stale by the TTL when some other process writes the database file.
type CampaignCache struct {
	cache   map[uint]*cachedRecord
	mu      sync.RWMutex
	ttl     time.Duration
	maxSize int

	// counters
	hits      int64
	misses    int64
	sets      int64
	deletes   int64
	evictions int64
}

type cachedRecord struct {
	campaign *core.Campaign
	cachedAt time.Time
}

// New creates a campaign cache with sane defaults for zero config values.
func New(c Config) *CampaignCache {
	if c.TTL == 0 {
		c.TTL = 5 * time.Minute
	}
	if c.MaxSize == 0 {
		c.MaxSize = 500
	}

	return &CampaignCache{
		cache:   make(map[uint]*cachedRecord),
		ttl:     c.TTL,
		maxSize: c.MaxSize,
	}
}

// Get retrieves a campaign from cache
func (c *CampaignCache) Get(id uint) (*core.Campaign, error) {
	c.mu.RLock()
	record, exists := c.cache[id]
	c.mu.RUnlock()

	if !exists {
		atomic.AddInt64(&c.misses, 1)
		return nil, ErrNotCached
	}

	if time.Since(record.cachedAt) > c.ttl {
		// expired
		atomic.AddInt64(&c.misses, 1)
		if err := c.Delete(id); err != nil {
			return nil, err
		}
		return nil, ErrNotCached
	}

	atomic.AddInt64(&c.hits, 1)
	return record.campaign, nil
}

// Set stores a campaign in cache
func (c *CampaignCache) Set(id uint, campaign *core.Campaign) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	// Simple eviction if full
	if len(c.cache) >= c.maxSize {
		for k := range c.cache {
			delete(c.cache, k)
			atomic.AddInt64(&c.evictions, 1)
			break
		}
	}

	c.cache[id] = &cachedRecord{
		campaign: campaign,
		cachedAt: time.Now(),
	}

	atomic.AddInt64(&c.sets, 1)
	return nil
}

// Delete removes a campaign from cache
func (c *CampaignCache) Delete(id uint) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if _, existed := c.cache[id]; existed {
		delete(c.cache, id)
		atomic.AddInt64(&c.deletes, 1)
	}
	return nil
}

// Clear removes all campaigns from cache
func (c *CampaignCache) Clear() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.cache = make(map[uint]*cachedRecord)
	return nil
}

// Len returns the number of cached campaigns
func (c *CampaignCache) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.cache)
}

// Stats returns cache statistics
func (c *CampaignCache) Stats() Stats {
	return Stats{
		Hits:      atomic.LoadInt64(&c.hits),
		Misses:    atomic.LoadInt64(&c.misses),
		Sets:      atomic.LoadInt64(&c.sets),
		Deletes:   atomic.LoadInt64(&c.deletes),
		Evictions: atomic.LoadInt64(&c.evictions),
		Size:      c.Len(),
		TTL:       c.ttl,
	}
}
