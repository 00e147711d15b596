package shard_storage

import (
	"github.com/litetable/litetable-bulkread/internal/litetable"
	"github.com/rs/zerolog/log"
	"regexp"
	"strings"
	"sync"
)

// GetRowByFamily returns a copy of the qualifiers of one family of one row.
func (m *Manager) GetRowByFamily(key, family string) (litetable.VersionedQualifier, bool) {
	shardKey := m.getShardIndex(key)
	s := m.shardMap[shardKey]

	s.mutex.RLock()
	defer s.mutex.RUnlock()

	row, exists := s.data[key]
	if !exists {
		return nil, false
	}

	qualifiers, exists := row[family]
	if !exists {
		return nil, false
	}

	log.Debug().Msgf("found row %s in shard %d", key, shardKey)
	return copyFamily(qualifiers), true
}

// FilterRowsByPrefix has to query all shards to find all rows that match the data. Prefix queries
// are expensive in that they require locking all shards and scanning all data.
func (m *Manager) FilterRowsByPrefix(prefix string) (litetable.Data, bool) {
	return m.filterRows(func(rowKey string) bool {
		return strings.HasPrefix(rowKey, prefix)
	})
}

// FilterRowsByRegex returns a copy of every row whose key matches regex. An invalid pattern
// matches nothing.
func (m *Manager) FilterRowsByRegex(regex string) (litetable.Data, bool) {
	reg, err := regexp.Compile(regex)
	if err != nil {
		log.Debug().Err(err).Str("regex", regex).Msg("invalid row key regex")
		return litetable.Data{}, false
	}
	return m.filterRows(reg.MatchString)
}

func (m *Manager) filterRows(match func(rowKey string) bool) (litetable.Data, bool) {
	result := make(litetable.Data)
	var mutex sync.Mutex

	m.forEachShard(func(s *shard) {
		// Local results for this shard
		localMatches := make(litetable.Data)

		s.mutex.RLock()
		for rowKey, rowData := range s.data {
			if match(rowKey) {
				localMatches[rowKey] = copyRow(rowData)
			}
		}
		s.mutex.RUnlock()

		if len(localMatches) == 0 {
			return
		}

		// merge under lock
		mutex.Lock()
		for k, v := range localMatches {
			result[k] = v
		}
		mutex.Unlock()
	})

	return result, len(result) > 0
}
