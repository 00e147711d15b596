package shard_storage

import (
	"context"
	"fmt"
	"github.com/litetable/litetable-bulkread/internal/request"
	"github.com/litetable/litetable-bulkread/internal/store"
	"sort"
	"sync"
)

// rowHandle references a row by key; its data is read from the owning shard on every fetch.
type rowHandle struct {
	m   *Manager
	key string
}

func (h *rowHandle) Key() []byte {
	return []byte(h.key)
}

// HasColumn reports whether the row holds at least one live version for sel.
func (h *rowHandle) HasColumn(sel request.Selector) bool {
	s := h.m.shardFor(h.key)

	s.mutex.RLock()
	defer s.mutex.RUnlock()

	qualifiers, exists := s.data[h.key][sel.Family]
	if !exists {
		return false
	}
	if !sel.IsFamily() {
		return len(store.LatestN(qualifiers[sel.Qualifier], 1)) > 0
	}
	for _, values := range qualifiers {
		if len(store.LatestN(values, 1)) > 0 {
			return true
		}
	}
	return false
}

// rowIterator walks a sorted snapshot of the keys that were in range when the scan opened.
type rowIterator struct {
	m       *Manager
	keys    []string
	pos     int
	current *rowHandle
	err     error
	closed  bool
}

func (it *rowIterator) Next(ctx context.Context) bool {
	if it.closed || it.err != nil {
		return false
	}
	if err := ctx.Err(); err != nil {
		it.err = err
		return false
	}
	if it.pos >= len(it.keys) {
		it.current = nil
		return false
	}
	it.current = &rowHandle{m: it.m, key: it.keys[it.pos]}
	it.pos++
	return true
}

func (it *rowIterator) Row() store.RowHandle {
	return it.current
}

func (it *rowIterator) Err() error {
	return it.err
}

func (it *rowIterator) Close() error {
	it.closed = true
	it.keys = nil
	it.current = nil
	return nil
}

// OpenScan collects the keys inside rng from every shard. Every row in range is returned,
// whether or not it holds any of the requested columns.
func (m *Manager) OpenScan(ctx context.Context, rng store.RowRange, _ []request.Selector) (store.RowIterator, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return &rowIterator{
		m:    m,
		keys: m.keysInRange(rng),
	}, nil
}

// FetchPage pages one column of a row under the owning shard's read lock.
func (m *Manager) FetchPage(ctx context.Context, row store.RowHandle, req *store.PageRequest) (*store.Page, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	h, ok := row.(*rowHandle)
	if !ok || h.m != m {
		return nil, fmt.Errorf("row handle was not produced by this store")
	}

	s := m.shardFor(h.key)

	s.mutex.RLock()
	defer s.mutex.RUnlock()

	return store.PageColumn(req.Column.Family, s.data[h.key][req.Column.Family], req)
}

func (m *Manager) keysInRange(rng store.RowRange) []string {
	var keys []string
	var mutex sync.Mutex

	m.forEachShard(func(s *shard) {
		var local []string

		s.mutex.RLock()
		for rowKey := range s.data {
			if rng.Contains([]byte(rowKey)) {
				local = append(local, rowKey)
			}
		}
		s.mutex.RUnlock()

		mutex.Lock()
		keys = append(keys, local...)
		mutex.Unlock()
	})

	sort.Strings(keys)
	return keys
}
