package types

import "encoding/json"

// Optional is a JSON field wrapper that distinguishes "absent" from
// "present and null". A plain pointer cannot tell the two apart, which
// matters for nullable fields in partial updates.
type Optional[T any] struct {
	// Set reports whether the field appeared in the JSON payload.
	Set bool

	// Valid reports whether the field carried a non-null value.
	Valid bool

	// Value is the decoded value when Valid is true.
	Value T
}

func (o *Optional[T]) UnmarshalJSON(data []byte) error {
	o.Set = true
	if string(data) == "null" {
		return nil
	}
	if err := json.Unmarshal(data, &o.Value); err != nil {
		return err
	}
	o.Valid = true
	return nil
}

func (o Optional[T]) MarshalJSON() ([]byte, error) {
	if !o.Valid {
		return []byte("null"), nil
	}
	return json.Marshal(o.Value)
}
