package warnings

import (
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/i474232898/meteireann-weather/internal/common"
)

const blightType = "blight"

// Normalize builds a Result from a raw warning list. raw is only read, so
// calling Normalize again on the same document gives the same result.
// Warnings with a missing or malformed timestamp are skipped.
func Normalize(raw RawDocument, opts Options) Result {
	result := Result{Warnings: []Entry{}}

	for i, item := range raw {
		entry, err := normalizeEntry(item, opts.ConvertUTC)
		if err != nil {
			log.Printf("WARNING: skipping warning %d: %v", i, err)
			continue
		}
		if opts.ExcludeBlight && strings.EqualFold(entry.Type, blightType) {
			continue
		}
		result.Warnings = append(result.Warnings, entry)
	}

	result.Count = len(result.Warnings)
	return result
}

func normalizeEntry(item map[string]any, toUTC bool) (Entry, error) {
	entry := Entry{Fields: make(map[string]any, len(item))}

	if v, ok := item[FieldType]; ok {
		s, ok := v.(string)
		if !ok {
			return Entry{}, fmt.Errorf("%s is %T, not a string", FieldType, v)
		}
		entry.Type = s
	}

	stamps := []struct {
		field string
		dst   *time.Time
	}{
		{FieldIssued, &entry.Issued},
		{FieldUpdated, &entry.Updated},
		{FieldOnset, &entry.Onset},
		{FieldExpiry, &entry.Expiry},
	}
	for _, st := range stamps {
		ts, err := parseField(item, st.field)
		if err != nil {
			return Entry{}, err
		}
		if toUTC {
			ts = ts.UTC()
		}
		*st.dst = ts
	}

	for k, v := range item {
		switch k {
		case FieldType, FieldIssued, FieldUpdated, FieldOnset, FieldExpiry:
			continue
		}
		entry.Fields[k] = deepCopy(v)
	}
	return entry, nil
}

func parseField(item map[string]any, field string) (time.Time, error) {
	v, ok := item[field]
	if !ok {
		return time.Time{}, fmt.Errorf("missing %s", field)
	}
	s, ok := v.(string)
	if !ok {
		return time.Time{}, fmt.Errorf("%s is %T, not a string", field, v)
	}
	ts, err := common.ParseTimestamp(s)
	if err != nil {
		return time.Time{}, fmt.Errorf("%s: %w", field, err)
	}
	return ts, nil
}

// deepCopy clones the JSON container types so normalized entries never
// share maps or slices with the stored raw document.
func deepCopy(v any) any {
	switch t := v.(type) {
	case map[string]any:
		out := make(map[string]any, len(t))
		for k, inner := range t {
			out[k] = deepCopy(inner)
		}
		return out
	case []any:
		out := make([]any, len(t))
		for i, inner := range t {
			out[i] = deepCopy(inner)
		}
		return out
	default:
		return v
	}
}
