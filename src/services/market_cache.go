package services

import (
	"time"

	gocache "github.com/patrickmn/go-cache"
)

const (
	priceKeyPrefix        = "cmp:"
	fundamentalsKeyPrefix = "fund:"
)

// MarketCache is the shared TTL store in front of both market-data
// providers. An expired entry reads as absent; callers cannot distinguish
// "never cached" from "expired" and must not need to. Failed lookups are
// never written, so a failing symbol is retried on the next pass.
type MarketCache struct {
	store *gocache.Cache
}

// NewMarketCache creates a cache whose entries expire after ttl.
func NewMarketCache(ttl time.Duration) *MarketCache {
	// go-cache drops expired entries lazily on Get; the janitor interval
	// only bounds memory, which a few dozen symbols never stress.
	return &MarketCache{store: gocache.New(ttl, 2*ttl)}
}

// GetPrice returns the cached market price for symbol, if still fresh.
func (c *MarketCache) GetPrice(symbol string) (float64, bool) {
	v, found := c.store.Get(priceKeyPrefix + symbol)
	if !found {
		return 0, false
	}
	price, ok := v.(float64)
	return price, ok
}

// SetPrice stores a fetched market price under the symbol's price key.
func (c *MarketCache) SetPrice(symbol string, price float64) {
	c.store.SetDefault(priceKeyPrefix+symbol, price)
}

// GetFundamentals returns the cached fundamentals pair for symbol, if still fresh.
func (c *MarketCache) GetFundamentals(symbol string) (Fundamentals, bool) {
	v, found := c.store.Get(fundamentalsKeyPrefix + symbol)
	if !found {
		return Fundamentals{}, false
	}
	f, ok := v.(Fundamentals)
	return f, ok
}

// SetFundamentals stores a scraped fundamentals pair under the symbol's key.
func (c *MarketCache) SetFundamentals(symbol string, f Fundamentals) {
	c.store.SetDefault(fundamentalsKeyPrefix+symbol, f)
}
