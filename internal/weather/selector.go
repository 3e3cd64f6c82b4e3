package weather

import (
	"math"
	"sort"
	"time"
)

// DefaultMaxHours is the widest distance, in hours, an entry may sit from
// the target instant and still be selected.
const DefaultMaxHours = 6

// ScoredEntry pairs an entry with its distance from the target instant.
type ScoredEntry struct {
	Distance float64 // seconds
	Entry    *TimeEntry
}

// Distance is |To - t| + |From - t| in seconds.
func Distance(e *TimeEntry, t time.Time) float64 {
	return math.Abs(e.To.Sub(t).Seconds()) + math.Abs(e.From.Sub(t).Seconds())
}

// SelectEntries returns the entries relevant to t, nearest first. Entries
// that ended before t are never selected. Ties keep document order.
func SelectEntries(entries []TimeEntry, t time.Time, maxHours float64) []ScoredEntry {
	selected, _ := scan(entries, t, maxHours, false)
	return selected
}

// scan does selection and, when collectDaily is set, gathers the daily
// aggregate for t's calendar day in the same pass. The daily collection is
// not bounded by maxHours.
func scan(entries []TimeEntry, t time.Time, maxHours float64, collectDaily bool) ([]ScoredEntry, dailyAggregate) {
	var (
		selected []ScoredEntry
		daily    dailyAggregate
	)
	limit := maxHours * 3600
	year, month, day := t.Date()

	for i := range entries {
		e := &entries[i]
		if t.After(e.To) {
			continue
		}

		if collectDaily && (sameDay(e.From, year, month, day) || sameDay(e.To, year, month, day)) {
			daily.add(e)
		}

		d := Distance(e, t)
		if d > limit {
			continue
		}
		selected = append(selected, ScoredEntry{Distance: d, Entry: e})
	}

	sort.SliceStable(selected, func(i, j int) bool {
		return selected[i].Distance < selected[j].Distance
	})
	return selected, daily
}

func sameDay(ts time.Time, year int, month time.Month, day int) bool {
	y, m, d := ts.Date()
	return y == year && m == month && d == day
}
