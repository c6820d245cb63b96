package dataset

import (
	"goprofile/domain/core"
)

// Column is a named, ordered sequence of raw values
type Column struct {
	Name   string  `json:"name"`
	Values []Value `json:"values"`
}

// Dataset is an ordered list of row-aligned columns. It is owned by the
// caller; profiling only reads it.
type Dataset struct {
	Name     string   `json:"name,omitempty"`
	Columns  []Column `json:"columns"`
	RowCount int      `json:"row_count"`
}

// NewColumn builds a column from decoded Go scalars.
func NewColumn(name string, raw ...interface{}) Column {
	values := make([]Value, len(raw))
	for i, r := range raw {
		values[i] = FromAny(r)
	}
	return Column{Name: name, Values: values}
}

// New assembles a dataset whose row count is taken from the first column.
func New(name string, columns ...Column) *Dataset {
	rows := 0
	if len(columns) > 0 {
		rows = len(columns[0].Values)
	}
	return &Dataset{Name: name, Columns: columns, RowCount: rows}
}

// Validate checks the structural invariants: at least one column, unique
// non-empty names, and every column exactly RowCount long.
func (d *Dataset) Validate() error {
	if d == nil {
		return core.ErrNilDataset
	}
	if len(d.Columns) == 0 {
		return core.ErrNoColumns
	}

	seen := make(map[string]struct{}, len(d.Columns))
	for _, col := range d.Columns {
		if col.Name == "" {
			return core.ErrEmptyColumnName
		}
		if _, dup := seen[col.Name]; dup {
			return core.NewColumnError(core.ErrDuplicateColumn, col.Name)
		}
		seen[col.Name] = struct{}{}

		if len(col.Values) != d.RowCount {
			return core.NewRowCountError(col.Name, len(col.Values), d.RowCount)
		}
	}
	return nil
}

// ColumnIndex returns the position of the named column, or -1.
func (d *Dataset) ColumnIndex(name string) int {
	for i, col := range d.Columns {
		if col.Name == name {
			return i
		}
	}
	return -1
}

// ContentHash fingerprints names and value representations in order.
func (d *Dataset) ContentHash() core.Hash {
	h := core.NewHasher()
	h.WriteInt(d.RowCount)
	h.WriteInt(len(d.Columns))
	for _, col := range d.Columns {
		h.WriteString(col.Name)
		for _, v := range col.Values {
			h.WriteString(string(v.Type))
			h.WriteString(v.String())
		}
	}
	return h.Sum()
}
