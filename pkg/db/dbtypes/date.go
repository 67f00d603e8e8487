package dbtypes

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"time"
)

const dateLayout = "2006-01-02"

// NullDate carries a calendar date as its YYYY-MM-DD text. Postgres drivers
// hand date columns back as time.Time and sqlite may hand back either form, so
// Scan normalizes both to the text the rest of the code compares against.
type NullDate struct {
	String string
	Valid  bool
}

// NewNullDate wraps an optional date string; nil yields a NULL date.
func NewNullDate(s *string) NullDate {
	if s == nil || *s == "" {
		return NullDate{}
	}
	return NullDate{String: *s, Valid: true}
}

// DateOf builds a valid NullDate from a literal.
func DateOf(s string) NullDate {
	return NewNullDate(&s)
}

func (d *NullDate) Scan(src any) error {
	switch v := src.(type) {
	case nil:
		*d = NullDate{}
	case time.Time:
		*d = NullDate{String: v.Format(dateLayout), Valid: true}
	case string:
		*d = NullDate{String: normalizeDate(v), Valid: true}
	case []byte:
		*d = NullDate{String: normalizeDate(string(v)), Valid: true}
	default:
		return fmt.Errorf("NullDate: unsupported Scan type %T", src)
	}
	return nil
}

func (d NullDate) Value() (driver.Value, error) {
	if !d.Valid {
		return nil, nil
	}
	return d.String, nil
}

func (d NullDate) Ptr() *string {
	if !d.Valid {
		return nil
	}
	s := d.String
	return &s
}

func (d NullDate) MarshalJSON() ([]byte, error) {
	if !d.Valid {
		return []byte("null"), nil
	}
	return json.Marshal(d.String)
}

func (d *NullDate) UnmarshalJSON(data []byte) error {
	var s *string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	*d = NewNullDate(s)
	return nil
}

// normalizeDate trims a timestamp rendering down to its date part when the
// prefix is a valid date, and leaves anything else untouched.
func normalizeDate(s string) string {
	if len(s) > len(dateLayout) {
		if _, err := time.Parse(dateLayout, s[:len(dateLayout)]); err == nil {
			return s[:len(dateLayout)]
		}
	}
	return s
}
