package services

import (
	"bytes"
	"encoding/json"
)

// NullableString tells an absent JSON field apart from an explicit null.
// Set is false when the field was not sent; Value is nil when it was null.
type NullableString struct {
	Set   bool
	Value *string
}

func (n *NullableString) UnmarshalJSON(b []byte) error {
	n.Set = true
	if bytes.Equal(b, []byte("null")) {
		n.Value = nil
		return nil
	}
	var s string
	if err := json.Unmarshal(b, &s); err != nil {
		return err
	}
	n.Value = &s
	return nil
}
