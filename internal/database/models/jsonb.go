package models

import (
	"database/sql/driver"
	"fmt"
)

// JSONB holds a raw jsonb document as the store returned it. Drivers hand jsonb back
// either as bytes or as text, so Scan accepts both.
type JSONB []byte

// Scan implements sql.Scanner
func (j *JSONB) Scan(value interface{}) error {
	switch v := value.(type) {
	case nil:
		*j = nil
	case []byte:
		*j = append((*j)[:0], v...)
	case string:
		*j = JSONB(v)
	default:
		return fmt.Errorf("unsupported jsonb source type %T", value)
	}
	return nil
}

// Value implements driver.Valuer
func (j JSONB) Value() (driver.Value, error) {
	if len(j) == 0 {
		return nil, nil
	}
	return string(j), nil
}

// MarshalJSON passes the document through unchanged
func (j JSONB) MarshalJSON() ([]byte, error) {
	if len(j) == 0 {
		return []byte("null"), nil
	}
	return j, nil
}

// UnmarshalJSON keeps a copy of the raw document
func (j *JSONB) UnmarshalJSON(data []byte) error {
	*j = append((*j)[:0], data...)
	return nil
}

// GormDataType declares the column type used by migrations
func (JSONB) GormDataType() string {
	return "jsonb"
}
