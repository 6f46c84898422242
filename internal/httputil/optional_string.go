package httputil

import (
	"bytes"
	"encoding/json"
	"fmt"
)

// OptionalString is a PATCH field (RFC 7396) that distinguishes absent from null:
//   - Present=false: field absent (keep the current value)
//   - Present=true, Value=nil: field is null (clear it, or move to the room root)
//   - Present=true, Value=&"x": field has a value
type OptionalString struct {
	Present bool
	Value   *string
}

// UnmarshalJSON only runs when the field is in the body, which is what sets Present
func (o *OptionalString) UnmarshalJSON(data []byte) error {
	o.Present = true
	if bytes.Equal(bytes.TrimSpace(data), []byte("null")) {
		o.Value = nil
		return nil
	}

	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return fmt.Errorf("expected a string or null")
	}
	o.Value = &s
	return nil
}

// NullIfEmpty treats "" as null. Clients send an empty folder id to mean the root.
func (o OptionalString) NullIfEmpty() OptionalString {
	if o.Present && o.Value != nil && *o.Value == "" {
		return OptionalString{Present: true}
	}
	return o
}
