// SPDX-FileCopyrightText: Winni Neessen <wn@neessen.dev>
//
// SPDX-License-Identifier: MIT

package geocode

import (
	"context"
	"errors"
	"strings"
	"sync"
	"time"
)

type lookupKind uint8

const (
	lookupGeocode lookupKind = iota
	lookupPostcode
)

type cacheKey struct {
	Provider string
	Kind     lookupKind
	Query    string
}

type cacheEntry struct {
	Result   Result
	Postcode string
	NotFound bool
	Expiry   time.Time
}

// CachedGeocoder wraps a Geocoder and keeps successful lookups for ttlHit and lookups
// that returned ErrNoResult for ttlMiss. Other errors are never cached.
type CachedGeocoder struct {
	coder   Geocoder
	ttlHit  time.Duration
	ttlMiss time.Duration
	now     func() time.Time

	mu    sync.RWMutex
	cache map[cacheKey]cacheEntry
}

func NewCachedGeocoder(coder Geocoder, ttlHit, ttlMiss time.Duration) *CachedGeocoder {
	return &CachedGeocoder{
		coder:   coder,
		ttlHit:  ttlHit,
		ttlMiss: ttlMiss,
		now:     time.Now,
		cache:   make(map[cacheKey]cacheEntry),
	}
}

func (c *CachedGeocoder) Name() string {
	return "geocoder cache using " + c.coder.Name()
}

func (c *CachedGeocoder) Geocode(ctx context.Context, query string) (Result, error) {
	query, err := NormalizeQuery(query)
	if err != nil {
		return Result{}, err
	}
	key := c.newKey(lookupGeocode, query)
	if entry, ok := c.lookup(key); ok {
		if entry.NotFound {
			return Result{}, ErrNoResult
		}
		return entry.Result, nil
	}

	result, err := c.coder.Geocode(ctx, query)
	if err != nil {
		if errors.Is(err, ErrNoResult) {
			c.store(key, cacheEntry{NotFound: true}, c.ttlMiss)
		}
		return result, err
	}
	c.store(key, cacheEntry{Result: result}, c.ttlHit)
	return result, nil
}

func (c *CachedGeocoder) Postcode(ctx context.Context, address string) (string, error) {
	address, err := NormalizeQuery(address)
	if err != nil {
		return "", err
	}
	key := c.newKey(lookupPostcode, address)
	if entry, ok := c.lookup(key); ok {
		if entry.NotFound {
			return "", ErrNoResult
		}
		return entry.Postcode, nil
	}

	postcode, err := c.coder.Postcode(ctx, address)
	if err != nil {
		if errors.Is(err, ErrNoResult) {
			c.store(key, cacheEntry{NotFound: true}, c.ttlMiss)
		}
		return postcode, err
	}
	c.store(key, cacheEntry{Postcode: postcode}, c.ttlHit)
	return postcode, nil
}

func (c *CachedGeocoder) lookup(key cacheKey) (cacheEntry, bool) {
	c.mu.RLock()
	entry, ok := c.cache[key]
	c.mu.RUnlock()
	if !ok {
		return cacheEntry{}, false
	}
	if c.now().Before(entry.Expiry) {
		return entry, true
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	if entry, ok = c.cache[key]; ok && !c.now().Before(entry.Expiry) {
		delete(c.cache, key)
	}
	return cacheEntry{}, false
}

// store adds the entry and drops all entries that have expired in the meantime.
func (c *CachedGeocoder) store(key cacheKey, entry cacheEntry, ttl time.Duration) {
	if ttl <= 0 {
		return
	}
	now := c.now()
	entry.Expiry = now.Add(ttl)

	c.mu.Lock()
	defer c.mu.Unlock()
	for k, e := range c.cache {
		if !now.Before(e.Expiry) {
			delete(c.cache, k)
		}
	}
	c.cache[key] = entry
}

// newKey folds case and whitespace so that "Red Square" and " red  square" share an entry.
func (c *CachedGeocoder) newKey(kind lookupKind, query string) cacheKey {
	return cacheKey{
		Provider: c.coder.Name(),
		Kind:     kind,
		Query:    strings.Join(strings.Fields(strings.ToLower(query)), " "),
	}
}
