// Package cursor exposes the rows of a key range as one flat, pull-based stream of records.
//
// A Cursor composes a rowsource.Source with a flatten.Engine: each call to Next either steps
// the current row or, once that row is exhausted, moves the source to the next row in range
// and begins it. A row with paged columns produces several consecutive records sharing its
// key; every other row produces exactly one.
package cursor

import (
	"context"
	"errors"
	"github.com/google/uuid"
	"github.com/litetable/litetable-bulkread/internal/flatten"
	"github.com/litetable/litetable-bulkread/internal/litetable"
	"github.com/litetable/litetable-bulkread/internal/metrics"
	"github.com/litetable/litetable-bulkread/internal/request"
	"github.com/litetable/litetable-bulkread/internal/rowsource"
	"github.com/litetable/litetable-bulkread/internal/store"
	"github.com/rs/zerolog/log"
)

// Cursor is the sequential record cursor of one key range. It is not safe for concurrent use.
type Cursor struct {
	id      string
	engine  *flatten.Engine
	source  *rowsource.Source
	row     *flatten.RowState
	metrics *metrics.Metrics

	rows    int
	records int
	err     error
	done    bool
	closed  bool
}

type Config struct {
	Store   store.RowStore
	Range   store.RowRange
	Request *request.Request
	// Metrics is optional.
	Metrics *metrics.Metrics
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

// Open validates the request and opens the row scan. A malformed request is rejected before
// the store is contacted.
func Open(ctx context.Context, cfg *Config) (*Cursor, error) {
	if err := cfg.validate(); err != nil {
		return nil, err
	}

	rowStore := cfg.Store
	if cfg.Metrics != nil {
		rowStore = cfg.Metrics.Instrument(rowStore)
	}

	engine, err := flatten.New(&flatten.Config{
		Store:   rowStore,
		Request: cfg.Request,
	})
	if err != nil {
		return nil, err
	}

	source, err := rowsource.Open(ctx, rowStore, cfg.Range, cfg.Request.Selectors())
	if err != nil {
		return nil, err
	}

	c := &Cursor{
		id:      uuid.NewString(),
		engine:  engine,
		source:  source,
		metrics: cfg.Metrics,
	}

	log.Debug().Str("cursor", c.id).Msgf("opened cursor over [%q, %q)", cfg.Range.Start, cfg.Range.End)
	return c, nil
}

// ID identifies the cursor in logs.
func (c *Cursor) ID() string {
	return c.id
}

// Rows returns the number of rows begun so far.
func (c *Cursor) Rows() int {
	return c.rows
}

// Records returns the number of records returned so far.
func (c *Cursor) Records() int {
	return c.records
}

// Next fills rec with the next record. It returns false with a nil error once the range is
// exhausted. Any error aborts the cursor: later calls return the same error.
func (c *Cursor) Next(ctx context.Context, rec *flatten.Record) (bool, error) {
	if c.closed {
		return false, litetable.NewError(litetable.ErrCursorClosed, "cursor %s", c.id)
	}
	if c.err != nil {
		return false, c.err
	}
	if c.done {
		return false, nil
	}
	if rec == nil {
		return false, errors.New("record must not be nil")
	}

	for c.row == nil || c.row.Exhausted() {
		c.releaseRow()

		if !c.source.Next(ctx) {
			if err := c.source.Err(); err != nil {
				return false, c.fail(err)
			}
			c.done = true
			log.Debug().Str("cursor", c.id).Msgf("range exhausted after %d rows, %d records", c.rows, c.records)
			return false, nil
		}

		row, err := c.engine.Begin(ctx, c.source.Row())
		if err != nil {
			return false, c.fail(err)
		}
		c.row = row
		c.rows++
		if c.metrics != nil {
			c.metrics.RowsRead.Inc()
		}
	}

	next, err := c.row.Step(ctx)
	if err != nil {
		return false, c.fail(err)
	}

	*rec = *next
	c.records++
	if c.metrics != nil {
		c.metrics.RecordsEmitted.Inc()
	}
	return true, nil
}

// Close releases the row scan and the current row. Closing more than once is a no-op.
func (c *Cursor) Close() error {
	if c.closed {
		return nil
	}
	c.closed = true
	c.releaseRow()

	log.Debug().Str("cursor", c.id).Msgf("closed cursor after %d rows, %d records", c.rows, c.records)
	return c.source.Close()
}

func (c *Cursor) fail(err error) error {
	c.err = err
	c.releaseRow()
	log.Error().Err(err).Str("cursor", c.id).Msg("cursor aborted")
	return err
}

func (c *Cursor) releaseRow() {
	if c.row != nil {
		c.row.Close()
		c.row = nil
	}
}
