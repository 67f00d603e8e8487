package dbtypes

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNullDateScan(t *testing.T) {
	var d NullDate
	require.NoError(t, d.Scan(time.Date(2025, 3, 5, 0, 0, 0, 0, time.UTC)))
	assert.Equal(t, NullDate{String: "2025-03-05", Valid: true}, d)

	require.NoError(t, d.Scan("2025-03-05T00:00:00Z"))
	assert.Equal(t, "2025-03-05", d.String)

	require.NoError(t, d.Scan([]byte("2025-12-31")))
	assert.Equal(t, "2025-12-31", d.String)

	require.NoError(t, d.Scan("March 5"))
	assert.Equal(t, "March 5", d.String)

	require.NoError(t, d.Scan(nil))
	assert.False(t, d.Valid)

	assert.Error(t, d.Scan(42))
}

func TestNullDateValueAndJSON(t *testing.T) {
	v, err := NullDate{}.Value()
	require.NoError(t, err)
	assert.Nil(t, v)

	d := DateOf("2025-03-05")
	v, err = d.Value()
	require.NoError(t, err)
	assert.Equal(t, "2025-03-05", v)

	out, err := json.Marshal(map[string]NullDate{"a": d, "b": {}})
	require.NoError(t, err)
	assert.JSONEq(t, `{"a":"2025-03-05","b":null}`, string(out))

	var back struct {
		A NullDate `json:"a"`
		B NullDate `json:"b"`
	}
	require.NoError(t, json.Unmarshal(out, &back))
	assert.Equal(t, d, back.A)
	assert.False(t, back.B.Valid)
	assert.Nil(t, NullDate{}.Ptr())
}
