package types

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
)

// Metadata represents a JSONB field for storing key-value pairs
type Metadata map[string]string

// Scan implements the sql.Scanner interface for Metadata
func (m *Metadata) Scan(value interface{}) error {
	if value == nil {
		*m = make(Metadata)
		return nil
	}

	bytes, ok := value.([]byte)
	if !ok {
		return fmt.Errorf("failed to unmarshal JSONB value: %v", value)
	}

	result := make(Metadata)
	err := json.Unmarshal(bytes, &result)
	*m = result
	return err
}

// Value implements the driver.Valuer interface for Metadata
func (m Metadata) Value() (driver.Value, error) {
	if m == nil {
		return json.Marshal(make(Metadata))
	}
	return json.Marshal(m)
}

// Document represents a semi-structured JSONB field (addresses, branding,
// fair-use policies, settings payloads). Unlike Metadata the values are not
// restricted to strings.
type Document map[string]interface{}

// Scan implements the sql.Scanner interface for Document
func (d *Document) Scan(value interface{}) error {
	if value == nil {
		*d = make(Document)
		return nil
	}

	bytes, ok := value.([]byte)
	if !ok {
		return fmt.Errorf("failed to unmarshal JSONB value: %v", value)
	}

	result := make(Document)
	err := json.Unmarshal(bytes, &result)
	*d = result
	return err
}

// Value implements the driver.Valuer interface for Document
func (d Document) Value() (driver.Value, error) {
	if d == nil {
		return json.Marshal(make(Document))
	}
	return json.Marshal(d)
}

// Tags represents a JSONB string array field
type Tags []string

// Scan implements the sql.Scanner interface for Tags
func (t *Tags) Scan(value interface{}) error {
	if value == nil {
		*t = Tags{}
		return nil
	}

	bytes, ok := value.([]byte)
	if !ok {
		return fmt.Errorf("failed to unmarshal JSONB value: %v", value)
	}

	result := Tags{}
	err := json.Unmarshal(bytes, &result)
	*t = result
	return err
}

// Value implements the driver.Valuer interface for Tags
func (t Tags) Value() (driver.Value, error) {
	if t == nil {
		return json.Marshal(Tags{})
	}
	return json.Marshal(t)
}
