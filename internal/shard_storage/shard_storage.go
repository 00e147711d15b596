// Package shard_storage holds a table in memory, split across shards that each carry their
// own lock, and serves it to the bulk reader as a store.RowStore.
//
// Point lookups hash the row key to a single shard. Scans, prefix and regex filters have no
// way to know which shard holds a key, so they visit every shard concurrently and merge the
// results. Scans only collect keys up front; column data is read one page at a time under the
// owning shard's read lock.
package shard_storage

import (
	"fmt"
	"github.com/cespare/xxhash/v2"
	"github.com/litetable/litetable-bulkread/internal/litetable"
	"sync"
)

// shard is a manager for a single shard of in-memory litetable.Data.
type shard struct {
	data  litetable.Data
	mutex sync.RWMutex
}

// initializeDataShards creates count empty shards.
func initializeDataShards(count int) ([]*shard, error) {
	if count <= 0 {
		return nil, fmt.Errorf("shard count must be greater than 0")
	}

	shards := make([]*shard, count)
	for i := 0; i < count; i++ {
		shards[i] = &shard{
			data: make(litetable.Data),
		}
	}

	return shards, nil
}

// getShardIndex determines which shard a particular row key belongs to.
func (m *Manager) getShardIndex(rowKey string) int {
	if m.shardCount <= 0 {
		return 0
	}
	return int(xxhash.Sum64String(rowKey) % uint64(m.shardCount))
}

// shardFor returns the shard owning rowKey.
func (m *Manager) shardFor(rowKey string) *shard {
	return m.shardMap[m.getShardIndex(rowKey)]
}

// forEachShard runs fn against every shard in its own goroutine and waits for all of them.
func (m *Manager) forEachShard(fn func(s *shard)) {
	var wg sync.WaitGroup
	wg.Add(len(m.shardMap))
	for _, s := range m.shardMap {
		go func(s *shard) {
			defer wg.Done()
			fn(s)
		}(s)
	}
	wg.Wait()
}
