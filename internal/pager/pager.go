// Package pager fetches one paged column of one row, a page at a time.
package pager

import (
	"context"
	"github.com/litetable/litetable-bulkread/internal/litetable"
	"github.com/litetable/litetable-bulkread/internal/request"
	"github.com/litetable/litetable-bulkread/internal/store"
)

// Source is a paged column bound to one row.
type Source interface {
	// Selector is the column this source pages.
	Selector() request.Selector
	// FetchNextPage returns the next page and whether another page follows. Once it has
	// reported hasMore=false it returns empty pages without touching the store.
	FetchNextPage(ctx context.Context) (cells []litetable.Cell, hasMore bool, err error)
	// Exhausted reports whether the last page has been returned.
	Exhausted() bool
}

// New returns the Source for a paged column of row. Columns the row holds no data for get a
// source that yields a single empty page, so the store is never asked to page them.
func New(rowStore store.RowStore, row store.RowHandle, column request.Column) Source {
	if !row.HasColumn(column.Selector) {
		return &emptySource{selector: column.Selector}
	}
	return &fetcher{
		store:  rowStore,
		row:    row,
		column: column,
	}
}

// fetcher pages a column through the store, following the store's page tokens. Family
// selectors page by qualifier and qualifier selectors page by version; the store applies the
// unit, the fetcher only carries the position.
type fetcher struct {
	store     store.RowStore
	row       store.RowHandle
	column    request.Column
	token     string
	pages     int
	exhausted bool
}

func (f *fetcher) Selector() request.Selector {
	return f.column.Selector
}

func (f *fetcher) Exhausted() bool {
	return f.exhausted
}

func (f *fetcher) FetchNextPage(ctx context.Context) ([]litetable.Cell, bool, error) {
	if f.exhausted {
		return nil, false, nil
	}

	page, err := f.store.FetchPage(ctx, f.row, &store.PageRequest{
		Column:      f.column.Selector,
		Token:       f.token,
		PageSize:    f.column.PageSize,
		MaxVersions: f.column.Versions(),
	})
	if err != nil {
		return nil, false, litetable.WrapError(litetable.ErrFetchFailed, err,
			"row %q column %s page %d", f.row.Key(), f.column.Selector, f.pages+1)
	}

	f.pages++
	f.token = page.NextToken
	f.exhausted = page.NextToken == ""
	return page.Cells, !f.exhausted, nil
}

// emptySource stands in for a column the row does not have.
type emptySource struct {
	selector  request.Selector
	exhausted bool
}

func (e *emptySource) Selector() request.Selector {
	return e.selector
}

func (e *emptySource) Exhausted() bool {
	return e.exhausted
}

func (e *emptySource) FetchNextPage(context.Context) ([]litetable.Cell, bool, error) {
	e.exhausted = true
	return nil, false, nil
}
