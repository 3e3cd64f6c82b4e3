package weather

import (
	"context"
	"time"
)

// Provider fetches and decodes the forecast document for a location.
type Provider interface {
	Name() string
	FetchForecast(ctx context.Context, loc Location) (*Document, error)
}

// Store is the contract the in-memory document store must satisfy. Save
// replaces the previous document for key.
type Store interface {
	Save(key string, doc *Document)
	Latest(key string) (*Document, error)
	StoredAt(key string) (time.Time, bool)
}
