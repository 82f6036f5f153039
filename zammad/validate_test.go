package zammad

import (
	"encoding/json"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAssertInteger(t *testing.T) {
	tests := []struct {
		name    string
		value   any
		want    int
		wantErr bool
	}{
		{name: "int", value: 42, want: 42},
		{name: "negative int", value: -7, want: -7},
		{name: "int64", value: int64(1 << 40), want: 1 << 40},
		{name: "uint8", value: uint8(200), want: 200},
		{name: "integral float", value: 3.0, want: 3},
		{name: "float32", value: float32(12), want: 12},
		{name: "numeric string", value: "17", want: 17},
		{name: "padded string", value: " 17 ", want: 17},
		{name: "float string", value: "5.0", want: 5},
		{name: "json number", value: json.Number("99"), want: 99},
		{name: "signed string", value: "+8", want: 8},
		{name: "negative float string", value: "-3.00", want: -3},
		{name: "max int64", value: int64(math.MaxInt64), want: math.MaxInt64},
		{name: "max int as uint64", value: uint64(math.MaxInt64), want: math.MaxInt64},
		{name: "min int string", value: "-9223372036854775808", want: math.MinInt64},
		{name: "largest exact float", value: float64(1 << 62), want: 1 << 62},
		{name: "uint64 overflow", value: uint64(math.MaxUint64), wantErr: true},
		{name: "uint overflow", value: uint(math.MaxUint), wantErr: true},
		{name: "float overflow", value: 1e20, wantErr: true},
		{name: "float at 2^63", value: float64(math.MaxInt64), wantErr: true},
		{name: "negative float overflow", value: -1e19, wantErr: true},
		{name: "string overflow", value: "9223372036854775808", wantErr: true},
		{name: "exponent string", value: "1e3", wantErr: true},
		{name: "hex string", value: "0x1A", wantErr: true},
		{name: "fractional string", value: "5.5", wantErr: true},
		{name: "bare dot", value: ".5", wantErr: true},
		{name: "json number exponent", value: json.Number("1e3"), wantErr: true},
		{name: "fractional float", value: 3.5, wantErr: true},
		{name: "NaN", value: math.NaN(), wantErr: true},
		{name: "infinity", value: math.Inf(1), wantErr: true},
		{name: "word", value: "abc", wantErr: true},
		{name: "empty string", value: "", wantErr: true},
		{name: "nil", value: nil, wantErr: true},
		{name: "bool", value: true, wantErr: true},
		{name: "slice", value: []int{1}, wantErr: true},
		{name: "map", value: map[string]int{"id": 1}, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := AssertInteger(tt.value)
			if tt.wantErr {
				require.Error(t, err)
				assert.True(t, IsInvalidRequest(err))
				assert.Contains(t, err.Error(), "Expected integer")
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestRequireKeys(t *testing.T) {
	object := map[string]json.RawMessage{
		"id":        json.RawMessage(`1`),
		"firstname": json.RawMessage(`"Nicole"`),
	}

	require.NoError(t, requireKeys(object, "id", "firstname"))
	require.NoError(t, requireKeys(object))

	err := requireKeys(object, "id", "lastname", "email")
	require.Error(t, err)

	var zerr *Error
	require.ErrorAs(t, err, &zerr)
	assert.Equal(t, KindUnexpectedResponse, zerr.Kind)
	assert.Equal(t, "lastname attribute missing", zerr.Message)
	assert.Equal(t, "lastname field", zerr.Expected)
	assert.Equal(t, "no lastname field present", zerr.Received)
}

func TestJSONKind(t *testing.T) {
	tests := []struct {
		raw      string
		expected string
	}{
		{``, "empty"},
		{`   `, "empty"},
		{`<html>`, "invalid"},
		{`{"a":1}`, "object"},
		{` [1,2]`, "array"},
		{`"text"`, "string"},
		{`true`, "boolean"},
		{`false`, "boolean"},
		{`null`, "null"},
		{`12.5`, "number"},
		{`-3`, "number"},
	}

	for _, tt := range tests {
		t.Run(tt.expected+" "+tt.raw, func(t *testing.T) {
			assert.Equal(t, tt.expected, jsonKind([]byte(tt.raw)))
		})
	}

	assert.True(t, isStructured([]byte(`{}`)))
	assert.True(t, isStructured([]byte(`[]`)))
	assert.False(t, isStructured([]byte(`"ok"`)))
	assert.False(t, isStructured(nil))
}

func TestDecodeObject(t *testing.T) {
	var w priorityWire

	t.Run("not an object", func(t *testing.T) {
		err := decodeObject([]byte(`[1]`), &w, "id")
		var zerr *Error
		require.ErrorAs(t, err, &zerr)
		assert.Equal(t, "Type of checked data is not object!", zerr.Message)
		assert.Equal(t, "array", zerr.Received)
	})

	t.Run("null", func(t *testing.T) {
		err := decodeObject([]byte(`null`), &w, "id")
		assert.True(t, IsUnexpectedResponse(err))
	})

	t.Run("wrong field type", func(t *testing.T) {
		err := decodeObject([]byte(`{"id":"one","name":"low"}`), &w, "id", "name")
		var zerr *Error
		require.ErrorAs(t, err, &zerr)
		assert.Equal(t, "id attribute has wrong type", zerr.Message)
		assert.Equal(t, "int", zerr.Expected)
		assert.Equal(t, "string", zerr.Received)
	})
}
