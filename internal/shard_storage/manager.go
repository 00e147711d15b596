package shard_storage

import (
	"errors"
	"fmt"
	"github.com/litetable/litetable-bulkread/internal/litetable"
	"github.com/rs/zerolog/log"
	"time"
)

const defaultShardCount = 4

// Manager is the sharded in-memory row store.
type Manager struct {
	snapshotPath string

	shardCount int
	// shardMap is the locations of the running shards
	shardMap []*shard
}

type Config struct {
	// SnapshotPath is an optional snapshot file loaded by Start. Files ending in .zst are
	// zstd-compressed.
	SnapshotPath string
	ShardCount   int
}

func (c *Config) validate() error {
	var errGrp []error
	if c.ShardCount < 0 || c.ShardCount > 64 {
		errGrp = append(errGrp, fmt.Errorf("shard count must be between 1 and 64"))
	}
	return errors.Join(errGrp...)
}

// New creates an empty store. A zero ShardCount uses the default.
func New(cfg *Config) (*Manager, error) {
	if err := cfg.validate(); err != nil {
		return nil, err
	}

	count := cfg.ShardCount
	if count == 0 {
		count = defaultShardCount
	}

	shards, err := initializeDataShards(count)
	if err != nil {
		return nil, err
	}

	return &Manager{
		snapshotPath: cfg.SnapshotPath,
		shardCount:   count,
		shardMap:     shards,
	}, nil
}

// Start loads the configured snapshot, if any.
func (m *Manager) Start() error {
	if m.snapshotPath == "" {
		return nil
	}

	start := time.Now()
	data, err := readSnapshot(m.snapshotPath)
	if err != nil {
		return err
	}
	m.Load(data)

	log.Debug().
		Str("path", m.snapshotPath).
		Int("rows", len(data)).
		Str("duration", time.Since(start).String()).
		Msg("snapshot loaded")
	return nil
}

func (m *Manager) Stop() error {
	return nil
}

func (m *Manager) Name() string {
	return "Shard Storage"
}

// RowCount returns the number of rows across all shards.
func (m *Manager) RowCount() int {
	total := 0
	for _, s := range m.shardMap {
		s.mutex.RLock()
		total += len(s.data)
		s.mutex.RUnlock()
	}
	return total
}

// Data returns a deep copy of every row.
func (m *Manager) Data() litetable.Data {
	out := make(litetable.Data)
	for _, s := range m.shardMap {
		s.mutex.RLock()
		for rowKey, families := range s.data {
			out[rowKey] = copyRow(families)
		}
		s.mutex.RUnlock()
	}
	return out
}

func copyRow(families map[string]litetable.VersionedQualifier) map[string]litetable.VersionedQualifier {
	row := make(map[string]litetable.VersionedQualifier, len(families))
	for family, qualifiers := range families {
		row[family] = copyFamily(qualifiers)
	}
	return row
}

func copyFamily(qualifiers litetable.VersionedQualifier) litetable.VersionedQualifier {
	fam := make(litetable.VersionedQualifier, len(qualifiers))
	for q, values := range qualifiers {
		fam[q] = append([]litetable.TimestampedValue(nil), values...)
	}
	return fam
}
