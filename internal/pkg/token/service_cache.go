package token

import (
	"sync"
	"sync/atomic"
	"time"

	"github.com/patrickmn/go-cache"

	"github.com/odontocare/clinic-network/internal/core/domain"
)

const (
	DefaultServiceTTL    = time.Hour
	DefaultRenewalMargin = 2 * time.Minute
)

// ServiceTokenCache hands out service tokens, one per proxied role, minting a
// new one only when none is cached or the cached one is within the renewal
// margin of its expiry.
type ServiceTokenCache struct {
	codec  *Codec
	ttl    time.Duration
	margin time.Duration

	// Entries expire margin before the token does, so anything returned by
	// the store is safe to hand out.
	store  *cache.Cache
	locks  sync.Map // domain.Role -> *sync.Mutex
	minted atomic.Int64
	onMint func(proxied domain.Role)
}

// CacheOption customises a ServiceTokenCache.
type CacheOption func(*ServiceTokenCache)

// WithMintObserver registers fn to be called after every mint.
func WithMintObserver(fn func(proxied domain.Role)) CacheOption {
	return func(c *ServiceTokenCache) { c.onMint = fn }
}

// NewServiceTokenCache returns an empty cache. Non-positive durations fall
// back to the defaults.
func NewServiceTokenCache(codec *Codec, ttl, margin time.Duration, opts ...CacheOption) *ServiceTokenCache {
	if ttl <= 0 {
		ttl = DefaultServiceTTL
	}
	if margin <= 0 {
		margin = DefaultRenewalMargin
	}
	c := &ServiceTokenCache{
		codec:  codec,
		ttl:    ttl,
		margin: margin,
		store:  cache.New(cache.NoExpiration, ttl),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Token returns a service token proxying role. Concurrent callers asking
// for the same role while no usable token is cached share a single mint.
func (c *ServiceTokenCache) Token(proxied domain.Role) (string, error) {
	key := string(proxied)
	if tok, ok := c.store.Get(key); ok {
		return tok.(string), nil
	}

	mu := c.lockFor(proxied)
	mu.Lock()
	defer mu.Unlock()

	if tok, ok := c.store.Get(key); ok {
		return tok.(string), nil
	}

	signed, exp, err := c.codec.IssueService(proxied, c.ttl)
	if err != nil {
		return "", err
	}
	c.minted.Add(1)
	if c.onMint != nil {
		c.onMint(proxied)
	}

	// A token already inside the margin is handed out once and not stored:
	// go-cache treats a negative duration as "never expires".
	if d := time.Until(exp) - c.margin; d > 0 {
		c.store.Set(key, signed, d)
	}
	return signed, nil
}

// Minted reports how many tokens have been minted so far.
func (c *ServiceTokenCache) Minted() int64 {
	return c.minted.Load()
}

func (c *ServiceTokenCache) lockFor(proxied domain.Role) *sync.Mutex {
	mu, _ := c.locks.LoadOrStore(proxied, &sync.Mutex{})
	return mu.(*sync.Mutex)
}
