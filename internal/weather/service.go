package weather

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/jonboulle/clockwork"
)

// Service orchestrates fetching forecast documents and building snapshots
// from the stored ones.
type Service struct {
	store     Store
	provider  Provider
	clock     clockwork.Clock
	maxHours  float64
	locations []Location
}

// NewService creates a new Service. A nil clock uses the real clock and a
// non-positive maxHours falls back to DefaultMaxHours.
func NewService(store Store, provider Provider, locations []Location, clock clockwork.Clock, maxHours float64) *Service {
	if clock == nil {
		clock = clockwork.NewRealClock()
	}
	if maxHours <= 0 {
		maxHours = DefaultMaxHours
	}
	return &Service{
		store:     store,
		provider:  provider,
		clock:     clock,
		maxHours:  maxHours,
		locations: locations,
	}
}

// Locations returns the configured locations.
func (s *Service) Locations() []Location {
	return s.locations
}

// Location looks up a configured location by name.
func (s *Service) Location(name string) (Location, bool) {
	for _, loc := range s.locations {
		if loc.Name == name {
			return loc, true
		}
	}
	return Location{}, false
}

// FetchAndStore fetches a fresh document for loc and replaces the stored
// one. On failure the previous document is kept.
func (s *Service) FetchAndStore(ctx context.Context, loc Location) error {
	if s.provider == nil {
		return fmt.Errorf("no forecast provider configured")
	}

	doc, err := s.provider.FetchForecast(ctx, loc)
	if err != nil {
		log.Printf("ERROR: provider %s forecast failed for %s: %v", s.provider.Name(), loc.Name, err)
		return err
	}

	s.store.Save(loc.Key(), doc)
	log.Printf("DEBUG: stored forecast for %s with %d entries", loc.Name, len(doc.Entries))
	return nil
}

// CurrentWeather returns the hourly-mode snapshot for the current instant.
func (s *Service) CurrentWeather(loc Location) Snapshot {
	return BuildSnapshot(s.document(loc), s.clock.Now().UTC(), ModeHourly, s.maxHours)
}

// Weather returns the snapshot at an arbitrary instant.
func (s *Service) Weather(loc Location, t time.Time, mode Mode) Snapshot {
	return BuildSnapshot(s.document(loc), t, mode, s.maxHours)
}

// GetForecast returns the hourly (24 points) or daily (5 points) forecast
// for loc, with target instants computed in tz.
func (s *Service) GetForecast(loc Location, tz *time.Location, hourly bool) Forecast {
	if tz == nil {
		tz = time.UTC
	}
	return BuildForecast(s.document(loc), s.clock.Now(), tz, hourly, s.maxHours)
}

// LastUpdated reports when the document for loc was last replaced.
func (s *Service) LastUpdated(loc Location) (time.Time, bool) {
	return s.store.StoredAt(loc.Key())
}

// document returns the stored document, or nil when none is available.
func (s *Service) document(loc Location) *Document {
	doc, err := s.store.Latest(loc.Key())
	if err != nil {
		return nil
	}
	return doc
}
