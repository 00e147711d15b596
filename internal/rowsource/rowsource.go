// Package rowsource walks the rows of one key range of a row store in ascending key order.
package rowsource

import (
	"bytes"
	"context"
	"github.com/litetable/litetable-bulkread/internal/litetable"
	"github.com/litetable/litetable-bulkread/internal/request"
	"github.com/litetable/litetable-bulkread/internal/store"
	"github.com/rs/zerolog/log"
)

// Source is a forward-only, non-restartable sequence of rows within [start, end). Open a new
// Source to read the range again.
type Source struct {
	rng     store.RowRange
	it      store.RowIterator
	current store.RowHandle
	lastKey []byte
	err     error
	done    bool
	closed  bool
}

// Open starts the scan. Failing to open it is ErrStoreUnavailable.
func Open(ctx context.Context, rowStore store.RowStore, rng store.RowRange, columns []request.Selector) (*Source, error) {
	if len(rng.Start) > 0 && len(rng.End) > 0 && bytes.Compare(rng.Start, rng.End) > 0 {
		return nil, litetable.NewError(litetable.ErrMalformedRequest,
			"start key %q sorts after end key %q", rng.Start, rng.End)
	}

	it, err := rowStore.OpenScan(ctx, rng, columns)
	if err != nil {
		return nil, litetable.WrapError(litetable.ErrStoreUnavailable, err,
			"open scan [%q, %q)", rng.Start, rng.End)
	}

	return &Source{
		rng: rng,
		it:  it,
	}, nil
}

// Next advances to the next row in range. It returns false at the end of the range, after a
// failure (see Err) or once closed.
func (s *Source) Next(ctx context.Context) bool {
	if s.closed || s.done || s.err != nil {
		return false
	}

	for s.it.Next(ctx) {
		row := s.it.Row()
		key := row.Key()

		if s.rng.Before(key) {
			continue
		}
		if s.rng.After(key) {
			break
		}
		if s.lastKey != nil && bytes.Compare(key, s.lastKey) <= 0 {
			s.err = litetable.NewError(litetable.ErrStoreUnavailable,
				"scan returned key %q after %q", key, s.lastKey)
			s.current = nil
			return false
		}

		s.lastKey = append(s.lastKey[:0], key...)
		s.current = row
		return true
	}

	s.current = nil
	s.done = true
	if err := s.it.Err(); err != nil {
		s.err = litetable.WrapError(litetable.ErrStoreUnavailable, err, "scan failed after %q", s.lastKey)
	}
	return false
}

// Row returns the current row. Only valid after Next returned true.
func (s *Source) Row() store.RowHandle {
	return s.current
}

// Err returns the failure that ended the scan, if any.
func (s *Source) Err() error {
	return s.err
}

// Close releases the scan. It is safe to call more than once.
func (s *Source) Close() error {
	if s.closed {
		return nil
	}
	s.closed = true
	s.current = nil

	if err := s.it.Close(); err != nil {
		log.Debug().Err(err).Msg("closing row scan")
		return err
	}
	return nil
}
