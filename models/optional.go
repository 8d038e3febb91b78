package models

import (
	"bytes"
	"encoding/json"
)

// Optional is a JSON field that records presence separately from its value.
//
// Set is true when the key appeared in the document, even as null. Valid is
// true when the value decoded as T; null and values of the wrong JSON type
// leave it false instead of failing the whole body.
type Optional[T any] struct {
	Value T
	Set   bool
	Valid bool
}

// Some returns a present, valid Optional holding v.
func Some[T any](v T) Optional[T] {
	return Optional[T]{Value: v, Set: true, Valid: true}
}

func (o *Optional[T]) UnmarshalJSON(data []byte) error {
	o.Set = true
	o.Valid = false
	if bytes.Equal(bytes.TrimSpace(data), []byte("null")) {
		return nil
	}
	var v T
	if err := json.Unmarshal(data, &v); err != nil {
		return nil
	}
	o.Value = v
	o.Valid = true
	return nil
}

// Or returns the value when present and valid, otherwise def.
func (o Optional[T]) Or(def T) T {
	if o.Set && o.Valid {
		return o.Value
	}
	return def
}
