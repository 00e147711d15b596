package flatten

import (
	"github.com/litetable/litetable-bulkread/internal/litetable"
	"github.com/litetable/litetable-bulkread/internal/request"
)

// Record is one page-step of one row. A row produces one or more records that share its key.
// Paged columns carry only the cells fetched in this step; unpaged columns carry their full
// data in every record of the row. Every requested selector has an entry, empty when the row
// has nothing (more) for it.
type Record struct {
	Key     []byte
	Columns map[request.Selector][]litetable.Cell
}

// Size returns the number of distinct family/qualifier pairs carried by the record.
func (r *Record) Size() int {
	seen := make(map[request.Selector]struct{})
	for _, cells := range r.Columns {
		for _, c := range cells {
			seen[request.Selector{Family: c.Family, Qualifier: c.Qualifier}] = struct{}{}
		}
	}
	return len(seen)
}

// CellCount returns the number of cells carried by the record.
func (r *Record) CellCount() int {
	n := 0
	for _, cells := range r.Columns {
		n += len(cells)
	}
	return n
}

// Row converts the record to the family → qualifier → versions layout. Requested families
// with no cells are present and empty.
func (r *Record) Row() *litetable.Row {
	row := &litetable.Row{
		Key:     string(r.Key),
		Columns: make(map[string]litetable.VersionedQualifier),
	}
	for sel, cells := range r.Columns {
		if _, ok := row.Columns[sel.Family]; !ok {
			row.Columns[sel.Family] = make(litetable.VersionedQualifier)
		}
		for _, c := range cells {
			row.Columns[sel.Family][c.Qualifier] = append(row.Columns[sel.Family][c.Qualifier],
				litetable.TimestampedValue{Value: c.Value, Timestamp: c.Timestamp})
		}
	}
	return row
}
