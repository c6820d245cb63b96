package profile

import (
	"encoding/json"

	"gonum.org/v1/gonum/mat"
)

// CorrelationMatrix is the symmetric Pearson matrix over numerical columns,
// 1.0 on the diagonal
type CorrelationMatrix struct {
	columns []string
	values  *mat.SymDense
}

// NewCorrelationMatrix returns an identity matrix over columns.
func NewCorrelationMatrix(columns []string) *CorrelationMatrix {
	cols := append([]string(nil), columns...)
	m := &CorrelationMatrix{columns: cols}
	if len(cols) > 0 {
		m.values = mat.NewSymDense(len(cols), nil)
		for i := range cols {
			m.values.SetSym(i, i, 1.0)
		}
	}
	return m
}

// Set stores r at (i, j) and (j, i). Diagonal writes are ignored.
func (m *CorrelationMatrix) Set(i, j int, r float64) {
	if i == j {
		return
	}
	m.values.SetSym(i, j, r)
}

// At returns the coefficient at (i, j).
func (m *CorrelationMatrix) At(i, j int) float64 {
	return m.values.At(i, j)
}

// Columns returns the column names in matrix order.
func (m *CorrelationMatrix) Columns() []string {
	return append([]string(nil), m.columns...)
}

// Size returns the number of columns.
func (m *CorrelationMatrix) Size() int {
	return len(m.columns)
}

// Lookup returns the coefficient for two named columns.
func (m *CorrelationMatrix) Lookup(a, b string) (float64, bool) {
	i, j := -1, -1
	for k, name := range m.columns {
		if name == a {
			i = k
		}
		if name == b {
			j = k
		}
	}
	if i < 0 || j < 0 {
		return 0, false
	}
	return m.At(i, j), true
}

// Rows returns a dense row-major copy.
func (m *CorrelationMatrix) Rows() [][]float64 {
	n := m.Size()
	rows := make([][]float64, n)
	for i := 0; i < n; i++ {
		rows[i] = make([]float64, n)
		for j := 0; j < n; j++ {
			rows[i][j] = m.At(i, j)
		}
	}
	return rows
}

type matrixWire struct {
	Columns []string    `json:"columns" yaml:"columns"`
	Values  [][]float64 `json:"values" yaml:"values"`
}

func (m *CorrelationMatrix) wire() matrixWire {
	cols := m.Columns()
	if cols == nil {
		cols = []string{}
	}
	return matrixWire{Columns: cols, Values: m.Rows()}
}

// MarshalJSON writes {columns, values}
func (m *CorrelationMatrix) MarshalJSON() ([]byte, error) {
	return json.Marshal(m.wire())
}

// MarshalYAML writes {columns, values}
func (m *CorrelationMatrix) MarshalYAML() (interface{}, error) {
	return m.wire(), nil
}
