package models

import (
	"database/sql/driver"
	"encoding/json"
	"errors"
	"fmt"
)

// OdooString is a custom string type that handles Odoo's dynamic typing.
// Odoo returns `false` (boolean) for empty text fields instead of an empty string.
// This type implements json.Unmarshaler to handle both string and bool(false).
type OdooString string

// UnmarshalJSON handles dynamic typing from Odoo
func (os *OdooString) UnmarshalJSON(data []byte) error {
	// 1. Try string
	var s string
	if err := json.Unmarshal(data, &s); err == nil {
		*os = OdooString(s)
		return nil
	}

	// 2. Try boolean (Odoo returns false for empty strings)
	var b bool
	if err := json.Unmarshal(data, &b); err == nil {
		if !b {
			*os = ""
			return nil
		}
		// If true, it's weird for a string field, but let's treat as "true" string
		*os = "true"
		return nil
	}

	return errors.New("OdooString: cannot unmarshal value into string")
}

// Value implements driver.Valuer interface for database storage
func (os OdooString) Value() (driver.Value, error) {
	return string(os), nil
}

// Scan implements sql.Scanner interface for database retrieval
func (os *OdooString) Scan(value interface{}) error {
	if value == nil {
		*os = ""
		return nil
	}
	switch v := value.(type) {
	case string:
		*os = OdooString(v)
	case []byte:
		*os = OdooString(string(v))
	default:
		return fmt.Errorf("failed to scan OdooString: %v", value)
	}
	return nil
}

// String returns native string value
func (os OdooString) String() string {
	return string(os)
}

// OdooRelation handles many2one fields, which Odoo serializes as
// [id, "Display Name"] when set and `false` when empty.
type OdooRelation struct {
	ID   int64
	Name string
}

// UnmarshalJSON handles both the [id, name] pair and bool(false)
func (or *OdooRelation) UnmarshalJSON(data []byte) error {
	var pair []json.RawMessage
	if err := json.Unmarshal(data, &pair); err == nil {
		if len(pair) >= 1 {
			if err := json.Unmarshal(pair[0], &or.ID); err != nil {
				return fmt.Errorf("OdooRelation: bad id: %w", err)
			}
		}
		if len(pair) >= 2 {
			_ = json.Unmarshal(pair[1], &or.Name)
		}
		return nil
	}

	var b bool
	if err := json.Unmarshal(data, &b); err == nil && !b {
		*or = OdooRelation{}
		return nil
	}

	return errors.New("OdooRelation: cannot unmarshal value into relation")
}

// IDOrNil returns a pointer suitable for nullable foreign key columns
func (or OdooRelation) IDOrNil() *int64 {
	if or.ID == 0 {
		return nil
	}
	id := or.ID
	return &id
}
