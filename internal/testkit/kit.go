package testkit

import (
	"goprofile/domain/dataset"
)

// Builder assembles small datasets for tests
type Builder struct {
	name    string
	columns []dataset.Column
}

// NewBuilder starts a dataset with the given name
func NewBuilder(name string) *Builder {
	return &Builder{name: name}
}

// Column appends a column built from Go scalars; nil becomes missing
func (b *Builder) Column(name string, raw ...interface{}) *Builder {
	b.columns = append(b.columns, dataset.NewColumn(name, raw...))
	return b
}

// Floats appends a numeric column
func (b *Builder) Floats(name string, xs ...float64) *Builder {
	raw := make([]interface{}, len(xs))
	for i, x := range xs {
		raw[i] = x
	}
	return b.Column(name, raw...)
}

// Strings appends a string column; "" becomes missing
func (b *Builder) Strings(name string, ss ...string) *Builder {
	raw := make([]interface{}, len(ss))
	for i, s := range ss {
		raw[i] = s
	}
	return b.Column(name, raw...)
}

// Build returns the dataset with RowCount taken from the first column
func (b *Builder) Build() *dataset.Dataset {
	return dataset.New(b.name, b.columns...)
}

// Repeat returns n copies of v, handy for constant columns
func Repeat(v interface{}, n int) []interface{} {
	out := make([]interface{}, n)
	for i := range out {
		out[i] = v
	}
	return out
}
