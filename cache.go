package logsbloom

import (
	"fmt"
	"runtime"

	lru "github.com/hashicorp/golang-lru"
	"github.com/zeebo/xxh3"
)

// DigestCache memoizes Keccak256 digests of recently seen inputs.
//
// logsBloom inputs repeat heavily: the same contract addresses and event
// topics appear in log after log. The cache is split into independent LRU
// shards and inputs are routed to a shard by their xxh3 hash, so concurrent
// workers rarely contend on the same lock.
//
// A DigestCache is safe for concurrent use. Its Sum method is a Hasher.
type DigestCache struct {
	shards    []*lru.Cache
	numShards uint64
	mask      uint64 // numShards - 1, for fast modulo
}

// NewDigestCache creates a cache holding about size digests spread across
// numShards shards. numShards is rounded up to a power of 2.
func NewDigestCache(size int, numShards uint64) (*DigestCache, error) {
	if size <= 0 {
		return nil, fmt.Errorf("logsbloom: digest cache size must be positive, got %d", size)
	}
	numShards = nextPowerOf2(numShards)

	perShard := (uint64(size) + numShards - 1) / numShards
	shards := make([]*lru.Cache, numShards)
	for i := range shards {
		c, err := lru.New(int(perShard))
		if err != nil {
			return nil, fmt.Errorf("logsbloom: digest cache shard %d: %w", i, err)
		}
		shards[i] = c
	}

	return &DigestCache{
		shards:    shards,
		numShards: numShards,
		mask:      numShards - 1,
	}, nil
}

// NewDigestCacheDefault creates a cache with a shard count tuned to the
// current GOMAXPROCS value (minimum 4).
func NewDigestCacheDefault(size int) (*DigestCache, error) {
	numShards := max(uint64(runtime.GOMAXPROCS(0)), 4)
	return NewDigestCache(size, numShards)
}

// Sum returns Keccak256(data), computing it only on a cache miss.
func (c *DigestCache) Sum(data []byte) Digest {
	shard := c.shards[xxh3.Hash(data)&c.mask]
	key := string(data)
	if d, ok := shard.Get(key); ok {
		return d.(Digest)
	}
	d := Keccak256(data)
	shard.Add(key, d)
	return d
}

// Len returns the number of cached digests across all shards.
func (c *DigestCache) Len() int {
	var n int
	for _, s := range c.shards {
		n += s.Len()
	}
	return n
}

// NumShards returns the number of shards.
func (c *DigestCache) NumShards() uint64 {
	return c.numShards
}

// nextPowerOf2 returns the smallest power of 2 >= n.
func nextPowerOf2(n uint64) uint64 {
	if n == 0 {
		return 1
	}
	n--
	n |= n >> 1
	n |= n >> 2
	n |= n >> 4
	n |= n >> 8
	n |= n >> 16
	n |= n >> 32
	return n + 1
}
