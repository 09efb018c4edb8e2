package calendar

import (
	"sync"

	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"
)

// CalendarLoader builds a calendar by name. *Loader implements it.
type CalendarLoader interface {
	Load(name string) (*Calendar, error)
}

// Cache loads each calendar at most once and hands the same instance to
// every caller. Concurrent requests for a name that is not cached yet
// share a single load. Failed loads are not cached.
type Cache struct {
	loader  CalendarLoader
	logger  *zap.Logger
	group   singleflight.Group
	mu      sync.RWMutex
	entries map[string]*Calendar
}

// NewCache creates a new Cache in front of loader
func NewCache(loader CalendarLoader, logger *zap.Logger) *Cache {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Cache{
		loader:  loader,
		logger:  logger,
		entries: make(map[string]*Calendar),
	}
}

// Get returns the named calendar, loading it on first use.
func (c *Cache) Get(name string) (*Calendar, error) {
	if cal, ok := c.lookup(name); ok {
		c.logger.Debug("Using cached calendar", zap.String("calendar", name))
		return cal, nil
	}

	v, err, shared := c.group.Do(name, func() (interface{}, error) {
		// A load that finished between lookup and Do has already stored it.
		if cal, ok := c.lookup(name); ok {
			return cal, nil
		}

		cal, err := c.loader.Load(name)
		if err != nil {
			return nil, err
		}

		c.mu.Lock()
		c.entries[name] = cal
		c.mu.Unlock()
		return cal, nil
	})
	if err != nil {
		c.logger.Warn("Failed to load calendar",
			zap.String("calendar", name),
			zap.Error(err))
		return nil, err
	}

	if shared {
		c.logger.Debug("Calendar load shared", zap.String("calendar", name))
	}
	return v.(*Calendar), nil
}

func (c *Cache) lookup(name string) (*Calendar, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	cal, ok := c.entries[name]
	return cal, ok
}

// Len returns the number of cached calendars.
func (c *Cache) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.entries)
}

// Purge clears the cache
func (c *Cache) Purge() {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.entries = make(map[string]*Calendar)
	c.logger.Info("Calendar cache cleared")
}
