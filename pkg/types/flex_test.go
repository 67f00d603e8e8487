package types

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFlexUnmarshalScalars(t *testing.T) {
	var payload struct {
		Str   Flex `json:"str"`
		Num   Flex `json:"num"`
		Float Flex `json:"float"`
		True  Flex `json:"true"`
		False Flex `json:"false"`
		Null  Flex `json:"null"`
		Obj   Flex `json:"obj"`
		Miss  Flex `json:"missing"`
	}
	raw := `{"str":" 12.50 ","num":42,"float":3.75,"true":true,"false":false,"null":null,"obj":{"a":1}}`
	require.NoError(t, json.Unmarshal([]byte(raw), &payload))

	assert.Equal(t, "12.50", payload.Str.String())
	assert.Equal(t, "42", payload.Num.String())
	assert.Equal(t, "3.75", payload.Float.String())
	assert.Equal(t, "1", payload.True.String())
	assert.Equal(t, "0", payload.False.String())
	assert.True(t, payload.Null.IsEmpty())
	assert.True(t, payload.Obj.IsEmpty())
	assert.True(t, payload.Miss.IsEmpty())
}

func TestFlexMarshalsAsString(t *testing.T) {
	out, err := json.Marshal(map[string]Flex{"id": FlexFromInt(7)})
	require.NoError(t, err)
	assert.JSONEq(t, `{"id":"7"}`, string(out))
}
