package store

import (
	"fmt"
	"github.com/litetable/litetable-bulkread/internal/litetable"
	"sort"
	"strconv"
)

// PageColumn cuts one page out of the qualifiers of a family. Stores that hold a row's family
// in memory use it to serve FetchPage. Qualifiers are paged in ascending name order and
// versions newest first; tombstoned versions never appear.
func PageColumn(family string, qualifiers litetable.VersionedQualifier, req *PageRequest) (*Page, error) {
	offset, err := decodeToken(req.Token)
	if err != nil {
		return nil, err
	}

	if !req.Column.IsFamily() {
		versions := LatestN(qualifiers[req.Column.Qualifier], req.MaxVersions)
		end, next := pageBounds(offset, len(versions), req.PageSize)
		page := &Page{NextToken: next}
		for _, v := range versions[min(offset, end):end] {
			page.Cells = append(page.Cells, toCell(family, req.Column.Qualifier, v))
		}
		return page, nil
	}

	// only qualifiers with a live version take part in family paging
	names := make([]string, 0, len(qualifiers))
	live := make(map[string][]litetable.TimestampedValue, len(qualifiers))
	for q, values := range qualifiers {
		if versions := LatestN(values, req.MaxVersions); len(versions) > 0 {
			names = append(names, q)
			live[q] = versions
		}
	}
	sort.Strings(names)

	end, next := pageBounds(offset, len(names), req.PageSize)
	page := &Page{NextToken: next}
	for _, q := range names[min(offset, end):end] {
		for _, v := range live[q] {
			page.Cells = append(page.Cells, toCell(family, q, v))
		}
	}
	return page, nil
}

// LatestN returns up to n live versions, newest first. A tombstone hides itself and every
// version at or before its timestamp. n <= 0 returns every live version. values is not
// modified.
func LatestN(values []litetable.TimestampedValue, n int) []litetable.TimestampedValue {
	if len(values) == 0 {
		return nil
	}

	sorted := make([]litetable.TimestampedValue, len(values))
	copy(sorted, values)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Timestamp > sorted[j].Timestamp
	})

	// First pass: Find the newest tombstone (if any)
	var tombstoneTimestamp int64
	var hasTombstone bool
	for _, v := range sorted {
		if v.IsTombstone && (!hasTombstone || v.Timestamp > tombstoneTimestamp) {
			tombstoneTimestamp = v.Timestamp
			hasTombstone = true
		}
	}

	// Second pass: Keep only values newer than the tombstone
	live := sorted[:0]
	for _, v := range sorted {
		if !v.IsTombstone && (!hasTombstone || v.Timestamp > tombstoneTimestamp) {
			live = append(live, v)
		}
	}

	if len(live) == 0 {
		return nil
	}
	if n <= 0 || n >= len(live) {
		return live
	}
	return live[:n]
}

// pageBounds returns the exclusive end of the page starting at offset and the token of the
// page after it, empty when this page reaches the last item.
func pageBounds(offset, total, pageSize int) (int, string) {
	if pageSize <= 0 {
		return total, ""
	}
	end := min(offset+pageSize, total)
	if end >= total {
		return total, ""
	}
	return end, strconv.Itoa(end)
}

func decodeToken(token string) (int, error) {
	if token == "" {
		return 0, nil
	}
	offset, err := strconv.Atoi(token)
	if err != nil || offset < 0 {
		return 0, fmt.Errorf("invalid page token: %q", token)
	}
	return offset, nil
}

func toCell(family, qualifier string, v litetable.TimestampedValue) litetable.Cell {
	return litetable.Cell{
		Family:    family,
		Qualifier: qualifier,
		Timestamp: v.Timestamp,
		Value:     v.Value,
	}
}
