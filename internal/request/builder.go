package request

import (
	"errors"
	"github.com/litetable/litetable-bulkread/internal/litetable"
)

// ColumnsDef groups selectors that share one policy:
//
//	request.Columns().WithMaxVersions(9).WithPageSize(1).Add("info", "name")
type ColumnsDef struct {
	policy         Policy
	maxVersionsSet bool
	pageSizeSet    bool
	selectors      []Selector
}

// Columns starts a new group with the default policy (latest version, unpaged).
func Columns() *ColumnsDef {
	return &ColumnsDef{}
}

func (d *ColumnsDef) WithMaxVersions(n int) *ColumnsDef {
	d.policy.MaxVersions = n
	d.maxVersionsSet = true
	return d
}

func (d *ColumnsDef) WithPageSize(n int) *ColumnsDef {
	d.policy.PageSize = n
	d.pageSizeSet = true
	return d
}

// Add requests a single qualifier.
func (d *ColumnsDef) Add(family, qualifier string) *ColumnsDef {
	d.selectors = append(d.selectors, Selector{Family: family, Qualifier: qualifier})
	return d
}

// AddFamily requests every qualifier of a family.
func (d *ColumnsDef) AddFamily(family string) *ColumnsDef {
	d.selectors = append(d.selectors, Selector{Family: family})
	return d
}

func (d *ColumnsDef) check() error {
	var errGrp []error
	if d.maxVersionsSet && d.policy.MaxVersions <= 0 {
		errGrp = append(errGrp, litetable.NewError(litetable.ErrMalformedRequest,
			"max versions must be positive, got %d", d.policy.MaxVersions))
	}
	if d.pageSizeSet && d.policy.PageSize <= 0 {
		errGrp = append(errGrp, litetable.NewError(litetable.ErrMalformedRequest,
			"page size must be positive, got %d", d.policy.PageSize))
	}
	return errors.Join(errGrp...)
}

// Builder accumulates column groups into a Request.
type Builder struct {
	defs []*ColumnsDef
}

func NewBuilder() *Builder {
	return &Builder{}
}

func (b *Builder) AddColumns(d *ColumnsDef) *Builder {
	b.defs = append(b.defs, d)
	return b
}

// Build validates every group and the resulting request.
func (b *Builder) Build() (*Request, error) {
	var columns []Column
	for _, d := range b.defs {
		if err := d.check(); err != nil {
			return nil, err
		}
		for _, sel := range d.selectors {
			columns = append(columns, Column{Selector: sel, Policy: d.policy})
		}
	}
	return New(columns...)
}
