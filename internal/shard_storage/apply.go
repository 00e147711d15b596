package shard_storage

import (
	"fmt"
	"github.com/litetable/litetable-bulkread/internal/litetable"
)

// Put appends a version of rowKey/family/qualifier.
func (m *Manager) Put(rowKey, family, qualifier string, timestamp int64, value []byte) error {
	return m.apply(rowKey, family, qualifier, litetable.TimestampedValue{
		Value:     value,
		Timestamp: timestamp,
	})
}

// PutTombstone hides every version of rowKey/family/qualifier at or before timestamp.
func (m *Manager) PutTombstone(rowKey, family, qualifier string, timestamp int64) error {
	return m.apply(rowKey, family, qualifier, litetable.TimestampedValue{
		Timestamp:   timestamp,
		IsTombstone: true,
	})
}

func (m *Manager) apply(rowKey, family, qualifier string, v litetable.TimestampedValue) error {
	if rowKey == "" || family == "" || qualifier == "" {
		return fmt.Errorf("row key, family and qualifier are required")
	}

	s := m.shardFor(rowKey)

	s.mutex.Lock()
	defer s.mutex.Unlock()

	if _, exists := s.data[rowKey]; !exists {
		s.data[rowKey] = make(map[string]litetable.VersionedQualifier)
	}
	if _, exists := s.data[rowKey][family]; !exists {
		s.data[rowKey][family] = make(litetable.VersionedQualifier)
	}
	s.data[rowKey][family][qualifier] = append(s.data[rowKey][family][qualifier], v)

	return nil
}

// Load merges data into the store, appending versions to any that already exist.
func (m *Manager) Load(data litetable.Data) {
	for rowKey, families := range data {
		s := m.shardFor(rowKey)

		s.mutex.Lock()
		row, exists := s.data[rowKey]
		if !exists {
			row = make(map[string]litetable.VersionedQualifier, len(families))
			s.data[rowKey] = row
		}
		for family, qualifiers := range families {
			if _, ok := row[family]; !ok {
				row[family] = make(litetable.VersionedQualifier, len(qualifiers))
			}
			for q, values := range qualifiers {
				row[family][q] = append(row[family][q], values...)
			}
		}
		s.mutex.Unlock()
	}
}
