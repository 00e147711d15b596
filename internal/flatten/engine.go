// Package flatten turns the rows of a sparse, versioned table into a flat sequence of records.
//
// Unpaged columns of a row are fetched once, in full, when the row begins. Paged columns each
// get a pager.Source. Every step fetches the next page of every source that still has pages
// and merges those pages with the unpaged data into one Record, so a row with paged columns
// produces as many records as its longest paged column has pages, and at most one page per
// paged column is held in memory at a time.
package flatten

import (
	"context"
	"errors"
	"github.com/litetable/litetable-bulkread/internal/litetable"
	"github.com/litetable/litetable-bulkread/internal/pager"
	"github.com/litetable/litetable-bulkread/internal/request"
	"github.com/litetable/litetable-bulkread/internal/store"
)

// State is the lifecycle of one row inside the engine.
type State int

const (
	Initializing State = iota
	Emitting
	Exhausted
)

func (s State) String() string {
	switch s {
	case Initializing:
		return "initializing"
	case Emitting:
		return "emitting"
	case Exhausted:
		return "exhausted"
	default:
		return "unknown"
	}
}

// Engine flattens rows of one table for one request.
type Engine struct {
	store   store.RowStore
	paged   []request.Column
	unpaged []request.Column
}

type Config struct {
	Store   store.RowStore
	Request *request.Request
}

func (c *Config) validate() error {
	var errGrp []error
	if c.Store == nil {
		errGrp = append(errGrp, errors.New("store is required"))
	}
	if err := c.Request.Validate(); err != nil {
		errGrp = append(errGrp, err)
	}
	return errors.Join(errGrp...)
}

// New partitions the request into paged and unpaged columns.
func New(cfg *Config) (*Engine, error) {
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return &Engine{
		store:   cfg.Store,
		paged:   cfg.Request.Paged(),
		unpaged: cfg.Request.Unpaged(),
	}, nil
}

// Begin initializes a row: unpaged columns are fetched in full and a pager is bound to every
// paged column. A failed fetch abandons the row.
func (e *Engine) Begin(ctx context.Context, row store.RowHandle) (*RowState, error) {
	rs := &RowState{
		key:     append([]byte(nil), row.Key()...),
		state:   Initializing,
		unpaged: make(map[request.Selector][]litetable.Cell, len(e.unpaged)),
	}

	for _, col := range e.unpaged {
		page, err := e.store.FetchPage(ctx, row, &store.PageRequest{
			Column:      col.Selector,
			MaxVersions: col.Versions(),
		})
		if err != nil {
			return nil, litetable.WrapError(litetable.ErrFetchFailed, err,
				"row %q column %s", row.Key(), col.Selector)
		}
		rs.unpaged[col.Selector] = page.Cells
		rs.order = append(rs.order, col.Selector)
	}

	for _, col := range e.paged {
		rs.sources = append(rs.sources, pager.New(e.store, row, col))
	}

	rs.state = Emitting
	return rs, nil
}

// RowState is the page-step iterator of one row.
type RowState struct {
	key     []byte
	state   State
	steps   int
	order   []request.Selector
	unpaged map[request.Selector][]litetable.Cell
	sources []pager.Source
}

// Key returns the row key.
func (rs *RowState) Key() []byte {
	return rs.key
}

// State returns where the row is in its lifecycle.
func (rs *RowState) State() State {
	return rs.state
}

// Steps returns the number of records emitted so far.
func (rs *RowState) Steps() int {
	return rs.steps
}

// Exhausted reports whether the row has no further records.
func (rs *RowState) Exhausted() bool {
	return rs.state == Exhausted
}

// Step fetches the next page of every source that still has pages and returns the merged
// record. A failed fetch returns the error and no record; the row must then be abandoned.
func (rs *RowState) Step(ctx context.Context) (*Record, error) {
	if rs.state != Emitting {
		return nil, errors.New("row has no further records")
	}

	rec := &Record{
		Key:     append([]byte(nil), rs.key...),
		Columns: make(map[request.Selector][]litetable.Cell, len(rs.unpaged)+len(rs.sources)),
	}

	done := true
	for _, src := range rs.sources {
		if src.Exhausted() {
			rec.Columns[src.Selector()] = []litetable.Cell{}
			continue
		}
		cells, hasMore, err := src.FetchNextPage(ctx)
		if err != nil {
			return nil, err
		}
		if cells == nil {
			cells = []litetable.Cell{}
		}
		rec.Columns[src.Selector()] = cells
		done = done && !hasMore
	}

	for _, sel := range rs.order {
		cells := make([]litetable.Cell, len(rs.unpaged[sel]))
		copy(cells, rs.unpaged[sel])
		rec.Columns[sel] = cells
	}

	rs.steps++
	if done {
		rs.state = Exhausted
	}
	return rec, nil
}

// Close drops the row's sources and cached data.
func (rs *RowState) Close() {
	rs.state = Exhausted
	rs.sources = nil
	rs.unpaged = nil
	rs.order = nil
}
