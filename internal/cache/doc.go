// Package cache provides byte-oriented block caches used by the caching blob
// store. Model files are immutable, so cached blocks never go stale; entries
// only leave through capacity eviction or explicit invalidation after Put or
// Delete.
package cache
