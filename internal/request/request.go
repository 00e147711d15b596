// Package request describes which columns of a table a bulk read fetches and how each one is
// bounded: how many versions per qualifier, and whether the column is paged.
package request

import (
	"github.com/litetable/litetable-bulkread/internal/litetable"
	"math"
	"strings"
)

const (
	// AllVersions requests every live version of a qualifier.
	AllVersions = math.MaxInt32
	// DefaultMaxVersions is used when a column does not set MaxVersions.
	DefaultMaxVersions = 1
)

// Selector targets either a whole family (Qualifier empty) or a single qualifier of a family.
type Selector struct {
	Family    string
	Qualifier string
}

// IsFamily reports whether the selector covers every qualifier of its family.
func (s Selector) IsFamily() bool {
	return s.Qualifier == ""
}

func (s Selector) String() string {
	if s.IsFamily() {
		return s.Family
	}
	return s.Family + ":" + s.Qualifier
}

// Policy bounds how a column is fetched.
type Policy struct {
	// MaxVersions caps the versions returned per qualifier. Zero means DefaultMaxVersions.
	MaxVersions int
	// PageSize is the number of qualifiers (family selectors) or versions (qualifier
	// selectors) returned per fetch. Zero means the column is fetched in full.
	PageSize int
}

// IsPaged reports whether the column is fetched one page at a time.
func (p Policy) IsPaged() bool {
	return p.PageSize > 0
}

// Versions returns the effective version cap.
func (p Policy) Versions() int {
	if p.MaxVersions == 0 {
		return DefaultMaxVersions
	}
	return p.MaxVersions
}

// Column is one requested selector with its policy.
type Column struct {
	Selector
	Policy
}

// Request is an immutable, validated, ordered list of columns.
type Request struct {
	columns []Column
}

// New validates the columns and returns a Request holding a copy of them.
func New(columns ...Column) (*Request, error) {
	if err := validate(columns); err != nil {
		return nil, err
	}
	cols := make([]Column, len(columns))
	for i, c := range columns {
		c.MaxVersions = c.Versions()
		cols[i] = c
	}
	return &Request{columns: cols}, nil
}

// Validate re-checks the request. A nil or zero Request is malformed.
func (r *Request) Validate() error {
	if r == nil {
		return litetable.NewError(litetable.ErrMalformedRequest, "request is nil")
	}
	return validate(r.columns)
}

// Columns returns the requested columns in request order.
func (r *Request) Columns() []Column {
	cols := make([]Column, len(r.columns))
	copy(cols, r.columns)
	return cols
}

// Paged returns the columns that carry a page size, in request order.
func (r *Request) Paged() []Column {
	var cols []Column
	for _, c := range r.columns {
		if c.IsPaged() {
			cols = append(cols, c)
		}
	}
	return cols
}

// Unpaged returns the columns that are fetched in full, in request order.
func (r *Request) Unpaged() []Column {
	var cols []Column
	for _, c := range r.columns {
		if !c.IsPaged() {
			cols = append(cols, c)
		}
	}
	return cols
}

// Selectors returns every requested selector in request order.
func (r *Request) Selectors() []Selector {
	sels := make([]Selector, 0, len(r.columns))
	for _, c := range r.columns {
		sels = append(sels, c.Selector)
	}
	return sels
}

// Families returns the distinct requested families in request order.
func (r *Request) Families() []string {
	seen := make(map[string]struct{}, len(r.columns))
	var families []string
	for _, c := range r.columns {
		if _, ok := seen[c.Family]; ok {
			continue
		}
		seen[c.Family] = struct{}{}
		families = append(families, c.Family)
	}
	return families
}

func validate(columns []Column) error {
	if len(columns) == 0 {
		return litetable.NewError(litetable.ErrMalformedRequest, "request has no columns")
	}

	seen := make(map[Selector]struct{}, len(columns))
	wholeFamily := make(map[string]bool)
	for _, c := range columns {
		if c.Family == "" {
			return litetable.NewError(litetable.ErrMalformedRequest, "family is required")
		}
		if !validName(c.Family) || (!c.IsFamily() && !validName(c.Qualifier)) {
			return litetable.NewError(litetable.ErrMalformedRequest,
				"column %q must not contain whitespace, ';' or '='", c.Selector.String())
		}
		if c.PageSize < 0 {
			return litetable.NewError(litetable.ErrMalformedRequest,
				"page size must be positive for %s, got %d", c.Selector, c.PageSize)
		}
		if c.MaxVersions < 0 {
			return litetable.NewError(litetable.ErrMalformedRequest,
				"max versions must be positive for %s, got %d", c.Selector, c.MaxVersions)
		}
		if _, dup := seen[c.Selector]; dup {
			return litetable.NewError(litetable.ErrMalformedRequest,
				"column %s requested twice", c.Selector)
		}
		seen[c.Selector] = struct{}{}
		if c.IsFamily() {
			wholeFamily[c.Family] = true
		}
	}

	// a family selector already covers every qualifier of that family
	for sel := range seen {
		if !sel.IsFamily() && wholeFamily[sel.Family] {
			return litetable.NewError(litetable.ErrMalformedRequest,
				"column %s overlaps family %s", sel, sel.Family)
		}
	}

	return nil
}

func validName(name string) bool {
	return !strings.ContainsAny(name, " \t\r\n;=")
}
