package identity

import (
	"time"

	"github.com/hashicorp/golang-lru/v2/expirable"
)

const (
	// RoleCacheSize bounds the role-id cache; the role table is tiny
	RoleCacheSize = 16
	// RoleCacheTTL is how long a cached role id stays valid
	RoleCacheTTL = time.Hour
)

// roleCache memoizes role name to id lookups with time-based expiry
type roleCache struct {
	lru *expirable.LRU[string, int]
}

func newRoleCache(size int, ttl time.Duration) *roleCache {
	return &roleCache{
		lru: expirable.NewLRU[string, int](size, nil, ttl),
	}
}

func (c *roleCache) Get(roleName string) (int, bool) {
	return c.lru.Get(roleName)
}

func (c *roleCache) Set(roleName string, id int) {
	c.lru.Add(roleName, id)
}
