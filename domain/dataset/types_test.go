package dataset

import (
	"encoding/json"
	"errors"
	"math"
	"testing"

	"goprofile/domain/core"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		ds      *Dataset
		wantErr error
	}{
		{"nil dataset", nil, core.ErrNilDataset},
		{"no columns", &Dataset{RowCount: 3}, core.ErrNoColumns},
		{"empty name", New("x", NewColumn("", 1, 2)), core.ErrEmptyColumnName},
		{"duplicate", New("x", NewColumn("a", 1), NewColumn("a", 2)), core.ErrDuplicateColumn},
		{"ragged", New("x", NewColumn("a", 1, 2), NewColumn("b", 1)), core.ErrRowCountMismatch},
		{"valid", New("x", NewColumn("a", 1, nil), NewColumn("b", "x", "y")), nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.ds.Validate()
			if tt.wantErr == nil {
				assert.NoError(t, err)
				return
			}
			assert.True(t, errors.Is(err, tt.wantErr), "got %v", err)
			assert.True(t, core.IsInvalidInput(err))
		})
	}
}

func TestValueString(t *testing.T) {
	assert.Equal(t, "1", NewNumericValue(1).String())
	assert.Equal(t, "2.5", NewNumericValue(2.5).String())
	assert.Equal(t, "true", NewBooleanValue(true).String())
	assert.Equal(t, "A", NewStringValue("A").String())
	assert.Equal(t, "", NewMissingValue().String())
	assert.True(t, NewNumericValue(math.NaN()).IsMissing())
	assert.True(t, Value{}.IsMissing())
}

func TestColumnJSONDecoding(t *testing.T) {
	var col Column
	require.NoError(t, json.Unmarshal([]byte(`{"name":"c","values":[1.5,"x",null,true]}`), &col))

	require.Len(t, col.Values, 4)
	assert.Equal(t, ValueTypeNumeric, col.Values[0].Type)
	assert.Equal(t, 1.5, col.Values[0].Num)
	assert.Equal(t, ValueTypeString, col.Values[1].Type)
	assert.True(t, col.Values[2].IsMissing())
	assert.Equal(t, ValueTypeBoolean, col.Values[3].Type)

	out, err := json.Marshal(col)
	require.NoError(t, err)
	assert.JSONEq(t, `{"name":"c","values":[1.5,"x",null,true]}`, string(out))

	assert.Error(t, json.Unmarshal([]byte(`{"name":"c","values":[[1]]}`), &col))
}

func TestContentHashIsOrderSensitive(t *testing.T) {
	a := New("x", NewColumn("a", 1, 2), NewColumn("b", "p", "q"))
	b := New("x", NewColumn("a", 1, 2), NewColumn("b", "p", "q"))
	c := New("x", NewColumn("a", 2, 1), NewColumn("b", "p", "q"))

	assert.Equal(t, a.ContentHash(), b.ContentHash())
	assert.NotEqual(t, a.ContentHash(), c.ContentHash())
}
