package request

import (
	"github.com/litetable/litetable-bulkread/internal/litetable"
	"strconv"
	"strings"
)

const (
	columnSeparator = ";"
	allVersionsText = "all"
)

// Parse reads the text form of a request. Columns are separated by ';' and each column is a
// list of key=value fields:
//
//	family=info qualifier=name max_versions=9 page_size=1; family=jobs page_size=2
//
// max_versions accepts a positive number or "all". Every error wraps
// litetable.ErrMalformedRequest.
func Parse(input string) (*Request, error) {
	var columns []Column
	for _, segment := range strings.Split(input, columnSeparator) {
		if strings.TrimSpace(segment) == "" {
			continue
		}
		col, err := parseColumn(segment)
		if err != nil {
			return nil, err
		}
		columns = append(columns, *col)
	}
	return New(columns...)
}

func parseColumn(input string) (*Column, error) {
	col := &Column{}
	seen := make(map[string]bool)

	for _, part := range strings.Fields(input) {
		kv := strings.SplitN(part, "=", 2)
		if len(kv) != 2 || kv[1] == "" {
			return nil, litetable.NewError(litetable.ErrMalformedRequest,
				"fields must be key=value, got: %s", part)
		}

		key, value := kv[0], kv[1]
		if seen[key] {
			return nil, litetable.NewError(litetable.ErrMalformedRequest,
				"%s given twice in column: %s", key, strings.TrimSpace(input))
		}
		seen[key] = true

		switch key {
		case "family":
			col.Family = value
		case "qualifier":
			col.Qualifier = value
		case "max_versions":
			if value == allVersionsText {
				col.MaxVersions = AllVersions
				continue
			}
			n, err := strconv.Atoi(value)
			if err != nil {
				return nil, litetable.NewError(litetable.ErrMalformedRequest,
					"max_versions must be a number or %q. received %s", allVersionsText, value)
			}
			if n <= 0 {
				return nil, litetable.NewError(litetable.ErrMalformedRequest,
					"max_versions must be greater than 0. received %d", n)
			}
			col.MaxVersions = n
		case "page_size":
			n, err := strconv.Atoi(value)
			if err != nil {
				return nil, litetable.NewError(litetable.ErrMalformedRequest,
					"page_size must be a number. received %s", value)
			}
			if n <= 0 {
				return nil, litetable.NewError(litetable.ErrMalformedRequest,
					"page_size must be greater than 0. received %d", n)
			}
			col.PageSize = n
		default:
			return nil, litetable.NewError(litetable.ErrMalformedRequest, "unknown parameter: %s", key)
		}
	}

	if col.Family == "" {
		return nil, litetable.NewError(litetable.ErrMalformedRequest,
			"missing family in column: %s", strings.TrimSpace(input))
	}

	return col, nil
}

// Encode returns the text form of the request; Parse(r.Encode()) yields an equal request.
func (r *Request) Encode() string {
	parts := make([]string, 0, len(r.columns))
	for _, c := range r.columns {
		var b strings.Builder
		b.WriteString("family=" + c.Family)
		if !c.IsFamily() {
			b.WriteString(" qualifier=" + c.Qualifier)
		}
		switch v := c.Versions(); {
		case v == AllVersions:
			b.WriteString(" max_versions=" + allVersionsText)
		case v != DefaultMaxVersions:
			b.WriteString(" max_versions=" + strconv.Itoa(v))
		}
		if c.IsPaged() {
			b.WriteString(" page_size=" + strconv.Itoa(c.PageSize))
		}
		parts = append(parts, b.String())
	}
	return strings.Join(parts, columnSeparator+" ")
}
