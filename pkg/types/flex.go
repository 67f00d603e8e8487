package types

import (
	"bytes"
	"encoding/json"
	"strconv"
	"strings"
)

// Flex is a scalar decoded from JSON that may arrive as a string, number,
// boolean or null. Remote APIs are inconsistent about quoting, so every value
// is normalized to its string form; null and absent become "".
type Flex string

func (f *Flex) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) == 0 || bytes.Equal(data, []byte("null")) {
		*f = ""
		return nil
	}
	switch data[0] {
	case '"':
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*f = Flex(s)
	case 't', 'f':
		var b bool
		if err := json.Unmarshal(data, &b); err != nil {
			return err
		}
		if b {
			*f = "1"
		} else {
			*f = "0"
		}
	case '{', '[':
		// Nested values are not scalars; keep them empty rather than failing the page.
		*f = ""
	default:
		var n json.Number
		if err := json.Unmarshal(data, &n); err != nil {
			return err
		}
		*f = Flex(n.String())
	}
	return nil
}

func (f Flex) MarshalJSON() ([]byte, error) {
	return json.Marshal(string(f))
}

func (f Flex) String() string {
	return strings.TrimSpace(string(f))
}

func (f Flex) IsEmpty() bool {
	return f.String() == ""
}

// FlexFromInt is a convenience for callers building records in tests and fixtures.
func FlexFromInt(v int64) Flex {
	return Flex(strconv.FormatInt(v, 10))
}
