package marketdata

import (
	"sync"
	"time"

	"github.com/shopspring/decimal"
)

// Cache holds the last fetched quote per symbol. Reads vastly outnumber
// writes; a single RWMutex is enough.
type Cache struct {
	mu        sync.RWMutex
	prices    map[string]decimal.Decimal
	updatedAt time.Time
}

// NewCache creates an empty price cache
func NewCache() *Cache {
	return &Cache{prices: make(map[string]decimal.Decimal)}
}

// Price returns the cached price for a symbol and whether one is present
func (c *Cache) Price(symbol string) (decimal.Decimal, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	p, ok := c.prices[symbol]
	return p, ok
}

// Snapshot returns a copy of all cached prices and the last refresh time
func (c *Cache) Snapshot() (map[string]decimal.Decimal, time.Time) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	out := make(map[string]decimal.Decimal, len(c.prices))
	for sym, p := range c.prices {
		out[sym] = p
	}
	return out, c.updatedAt
}

// Store merges the fetched quotes into the cache and stamps the refresh
// time. Symbols absent from the batch keep their previous price.
func (c *Cache) Store(prices map[string]decimal.Decimal) {
	c.mu.Lock()
	defer c.mu.Unlock()
	for sym, p := range prices {
		c.prices[sym] = p
	}
	c.updatedAt = time.Now()
}
