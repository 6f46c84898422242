package dataroom

// Optional tracks tri-state semantics for PATCH-style updates (RFC 7396).
// This is transport-agnostic (no JSON tags) - handlers map from httputil.OptionalString.
//   - Present=false: field absent from request (don't change)
//   - Present=true, Value=nil: field is null (clear, or move to root for parent ids)
//   - Present=true, Value=&"id": field has value
type Optional struct {
	Present bool
	Value   *string
}

// Set returns a present Optional holding v
func Set(v string) Optional {
	return Optional{Present: true, Value: &v}
}

// Clear returns a present Optional holding null
func Clear() Optional {
	return Optional{Present: true}
}
