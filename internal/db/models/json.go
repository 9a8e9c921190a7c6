package models

import (
	"bytes"
	"database/sql/driver"
	"encoding/json"
	"fmt"
)

// JSON is a loosely typed JSON column.
// Older write paths stored objects as JSON encoded strings; UnmarshalJSON unwraps those
// so the column always holds the structured form when there is one.
type JSON []byte

// GormDataType stores JSON as text on every dialect.
func (JSON) GormDataType() string {
	return "text"
}

// Value implements driver.Valuer. Empty values are stored as NULL.
func (j JSON) Value() (driver.Value, error) {
	if len(j) == 0 {
		return nil, nil //nolint:nilnil
	}

	return string(j), nil
}

// Scan implements sql.Scanner.
func (j *JSON) Scan(src any) error {
	switch v := src.(type) {
	case nil:
		*j = nil
	case []byte:
		*j = append(JSON(nil), v...)
	case string:
		*j = JSON(v)
	default:
		return fmt.Errorf("models: cannot scan %T into JSON", src) //nolint:err113
	}

	return nil
}

// MarshalJSON implements json.Marshaler. Stored content that is not valid JSON is emitted as a string.
func (j JSON) MarshalJSON() ([]byte, error) {
	if len(j) == 0 {
		return []byte("null"), nil
	}

	if !json.Valid(j) {
		return json.Marshal(string(j)) //nolint:wrapcheck
	}

	return j, nil
}

// UnmarshalJSON implements json.Unmarshaler.
func (j *JSON) UnmarshalJSON(b []byte) error {
	*j = NormalizeJSON(b)

	return nil
}

// NormalizeJSON returns a copy of b with a JSON string holding an object or array unwrapped.
// null becomes empty. b must be valid JSON.
func NormalizeJSON(b []byte) JSON {
	b = bytes.TrimSpace(b)

	if len(b) == 0 || bytes.Equal(b, []byte("null")) {
		return nil
	}

	if b[0] == '"' {
		var s string
		if err := json.Unmarshal(b, &s); err == nil {
			inner := bytes.TrimSpace([]byte(s))
			if len(inner) > 0 && (inner[0] == '{' || inner[0] == '[') && json.Valid(inner) {
				return append(JSON(nil), inner...)
			}
		}
	}

	return append(JSON(nil), b...)
}

// MustJSON encodes v, panicking on failure. For literals in seeds and tests.
func MustJSON(v any) JSON {
	b, err := json.Marshal(v)
	if err != nil {
		panic(err)
	}

	return NormalizeJSON(b)
}

// Decode unmarshals the value into v.
func (j JSON) Decode(v any) error {
	if len(j) == 0 {
		return nil
	}

	return json.Unmarshal(j, v) //nolint:wrapcheck
}

// Any decodes into a generic value. Content that is not valid JSON comes back as the raw string.
func (j JSON) Any() any {
	if len(j) == 0 {
		return nil
	}

	var v any
	if err := json.Unmarshal(j, &v); err != nil {
		return string(j)
	}

	return v
}

// Text renders the value for plain text contexts: strings without quotes, everything else as JSON.
func (j JSON) Text() string {
	switch v := j.Any().(type) {
	case nil:
		return ""
	case string:
		return v
	default:
		return string(j)
	}
}

// String implements fmt.Stringer.
func (j JSON) String() string {
	return string(j)
}
