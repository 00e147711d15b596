// Package store defines what the bulk reader needs from a row store: a range scan that yields
// row handles, and a page fetch that returns one bounded slice of one column of a row.
package store

import (
	"bytes"
	"context"
	"github.com/litetable/litetable-bulkread/internal/litetable"
	"github.com/litetable/litetable-bulkread/internal/request"
)

//go:generate mockgen -destination=store_mock.go -package=store -source=store.go

// RowRange is the half-open key range [Start, End). An empty bound is unbounded.
type RowRange struct {
	Start []byte
	End   []byte
}

// Contains reports whether key falls inside the range.
func (r RowRange) Contains(key []byte) bool {
	return !r.Before(key) && !r.After(key)
}

// Before reports whether key sorts before the start of the range.
func (r RowRange) Before(key []byte) bool {
	return len(r.Start) > 0 && bytes.Compare(key, r.Start) < 0
}

// After reports whether key sorts at or beyond the end of the range.
func (r RowRange) After(key []byte) bool {
	return len(r.End) > 0 && bytes.Compare(key, r.End) >= 0
}

// RowHandle is a store-specific reference to one row produced by a scan.
type RowHandle interface {
	// Key returns the row key.
	Key() []byte
	// HasColumn reports whether the row holds any data for the selector. Fetchers use it to
	// avoid paging a column the row does not have.
	HasColumn(sel request.Selector) bool
}

// RowIterator walks the rows of a scan in ascending key order.
type RowIterator interface {
	// Next advances to the next row. It returns false at the end of the scan or on failure.
	Next(ctx context.Context) bool
	// Row returns the current row. Only valid after Next returned true.
	Row() RowHandle
	// Err returns the error that stopped the scan, if any.
	Err() error
	// Close releases the scan. It is safe to call more than once.
	Close() error
}

// PageRequest asks for one page of one column of a row.
type PageRequest struct {
	Column request.Selector
	// Token is the NextToken of the previous page; empty for the first page.
	Token string
	// PageSize bounds the qualifiers (family selectors) or versions (qualifier selectors) in
	// the page. Zero returns the whole column.
	PageSize int
	// MaxVersions caps the versions returned per qualifier.
	MaxVersions int
}

// Page is one slice of a column. An empty NextToken means the column has no further pages.
type Page struct {
	Cells     []litetable.Cell
	NextToken string
}

// RowStore is the row store consumed by the bulk reader.
type RowStore interface {
	// OpenScan starts a scan of rng. columns tells the store which families the reader cares
	// about; stores are free to ignore it.
	OpenScan(ctx context.Context, rng RowRange, columns []request.Selector) (RowIterator, error)
	// FetchPage returns one page of a column of a row produced by this store's scans.
	FetchPage(ctx context.Context, row RowHandle, req *PageRequest) (*Page, error)
}
