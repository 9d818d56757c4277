package kasane

// ResolvedValue is the effective value of a top-level key together with the
// location it came from.
//
// The three states can be distinguished as follows:
//   - Key does not exist: Exists=false, Value=nil, Location=""
//   - Explicit null: Exists=true, Value=nil (IsNull() returns true)
//   - Non-null value: Exists=true, Value=<value> (HasValue() returns true)
type ResolvedValue struct {
	// Value is a copy of the effective value; nil if Exists is false.
	Value any

	// Exists indicates whether any location defines the key.
	Exists bool

	// Location is the highest-priority location defining the key.
	Location Location
}

// IsNull returns true if the key exists but the value is explicitly null.
func (rv ResolvedValue) IsNull() bool {
	return rv.Exists && rv.Value == nil
}

// IsMissing returns true if the key does not exist in any location.
func (rv ResolvedValue) IsMissing() bool {
	return !rv.Exists
}

// HasValue returns true if the key exists and has a non-null value.
// This includes zero values like 0, "", and false.
func (rv ResolvedValue) HasValue() bool {
	return rv.Exists && rv.Value != nil
}
