package database

import "time"

// LinkCache adapts the Redis helpers to the links.Cache interface.
// Safe to use even when Redis is down: gets miss, sets are dropped.
type LinkCache struct{}

func (LinkCache) Get(key string, dest interface{}) error {
	return CacheGet(key, dest)
}

func (LinkCache) Set(key string, value interface{}, ttl time.Duration) error {
	return CacheSet(key, value, ttl)
}

func (LinkCache) Delete(keys ...string) error {
	return CacheDelete(keys...)
}
