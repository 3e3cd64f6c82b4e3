package warnings

import (
	"encoding/json"
	"time"
)

// Timestamp fields every warning carries.
const (
	FieldType    = "type"
	FieldIssued  = "issued"
	FieldUpdated = "updated"
	FieldOnset   = "onset"
	FieldExpiry  = "expiry"
)

// RawDocument is one fetched warning list as decoded from JSON. It is kept
// as fetched and never modified.
type RawDocument []map[string]any

// Entry is one normalized warning. Fields holds a copy of every provider
// field other than the type and the four timestamps; mutating it leaves the
// raw document untouched.
type Entry struct {
	Type    string
	Issued  time.Time
	Updated time.Time
	Onset   time.Time
	Expiry  time.Time
	Fields  map[string]any
}

// MarshalJSON flattens the passthrough fields next to the normalized ones.
func (e Entry) MarshalJSON() ([]byte, error) {
	out := make(map[string]any, len(e.Fields)+5)
	for k, v := range e.Fields {
		out[k] = v
	}
	out[FieldType] = e.Type
	out[FieldIssued] = e.Issued
	out[FieldUpdated] = e.Updated
	out[FieldOnset] = e.Onset
	out[FieldExpiry] = e.Expiry
	return json.Marshal(out)
}

// Result is the warning list returned to callers. Count always equals
// len(Warnings).
type Result struct {
	Count    int     `json:"count"`
	Warnings []Entry `json:"warnings"`
}

// Options control normalization.
type Options struct {
	// ConvertUTC converts every timestamp to UTC.
	ConvertUTC bool
	// ExcludeBlight drops warnings whose type is "blight".
	ExcludeBlight bool
}

// DefaultOptions converts to UTC and excludes blight warnings.
func DefaultOptions() Options {
	return Options{ConvertUTC: true, ExcludeBlight: true}
}
