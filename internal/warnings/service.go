package warnings

import (
	"context"
	"fmt"
	"log"
	"time"
)

// Provider fetches the raw warning list for a region code.
type Provider interface {
	Name() string
	FetchWarnings(ctx context.Context, region string) (RawDocument, error)
}

// Store holds the latest raw warning list per region code.
type Store interface {
	Save(key string, doc RawDocument)
	Latest(key string) (RawDocument, error)
	StoredAt(key string) (time.Time, bool)
}

// Service fetches warning lists and normalizes them on every read.
type Service struct {
	store    Store
	provider Provider
	opts     Options
	regions  []string
}

// NewService creates a Service for the given region codes.
func NewService(store Store, provider Provider, regions []string, opts Options) *Service {
	return &Service{
		store:    store,
		provider: provider,
		opts:     opts,
		regions:  regions,
	}
}

// Regions returns the configured region codes.
func (s *Service) Regions() []string {
	return s.regions
}

// FetchAndStore fetches the warning list for region and replaces the stored
// one. On failure the previous list is kept.
func (s *Service) FetchAndStore(ctx context.Context, region string) error {
	if s.provider == nil {
		return fmt.Errorf("no warning provider configured")
	}

	doc, err := s.provider.FetchWarnings(ctx, region)
	if err != nil {
		log.Printf("ERROR: provider %s warnings failed for %s: %v", s.provider.Name(), region, err)
		return err
	}

	s.store.Save(region, doc)
	log.Printf("DEBUG: stored %d raw warnings for %s", len(doc), region)
	return nil
}

// Warnings normalizes the stored list for region. Without a stored list
// the result is empty.
func (s *Service) Warnings(region string) Result {
	doc, err := s.store.Latest(region)
	if err != nil {
		return Normalize(nil, s.opts)
	}
	return Normalize(doc, s.opts)
}

// LastUpdated reports when the list for region was last replaced.
func (s *Service) LastUpdated(region string) (time.Time, bool) {
	return s.store.StoredAt(region)
}
