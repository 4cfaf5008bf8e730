package clock

import (
	"time"

	lru "github.com/hashicorp/golang-lru/v2"

	"github.com/pondkeeper/pondkeeper/internal/domain"
	"github.com/pondkeeper/pondkeeper/internal/logger"
)

// locationCacheSize bounds the IANA location cache. There are ~600 zone names;
// real traffic concentrates on far fewer.
const locationCacheSize = 128

// Resolver resolves IANA zone names to locations, caching loads. Invalid or
// unrecognized zone names degrade to UTC instead of failing the caller.
type Resolver struct {
	cache *lru.Cache[string, *time.Location]
}

// NewResolver creates a timezone resolver with an LRU-backed location cache.
func NewResolver() *Resolver {
	cache, err := lru.New[string, *time.Location](locationCacheSize)
	if err != nil {
		// lru.New only fails on non-positive size
		panic(err)
	}
	return &Resolver{cache: cache}
}

// Resolve returns the location for zone, falling back to UTC on bad names.
func (r *Resolver) Resolve(zone string) *time.Location {
	if zone == "" || zone == "UTC" {
		return time.UTC
	}
	if loc, ok := r.cache.Get(zone); ok {
		return loc
	}

	loc, err := time.LoadLocation(zone)
	if err != nil {
		logger.Warn("Unrecognized timezone, falling back to UTC", "zone", zone)
		loc = time.UTC
	}
	r.cache.Add(zone, loc)
	return loc
}

// LocalHour returns the hour of day (0..23) of at in the given zone.
func (r *Resolver) LocalHour(zone string, at time.Time) int {
	return at.In(r.Resolve(zone)).Hour()
}

// LocalDate returns the calendar date (YYYY-MM-DD) of at in the given zone.
func (r *Resolver) LocalDate(zone string, at time.Time) string {
	return at.In(r.Resolve(zone)).Format(domain.DateLayout)
}

// LocalMonth returns the month key (YYYY-MM) of at in the given zone.
func (r *Resolver) LocalMonth(zone string, at time.Time) string {
	return at.In(r.Resolve(zone)).Format(domain.MonthLayout)
}

// LocalDay returns the day-of-month of at in the given zone.
func (r *Resolver) LocalDay(zone string, at time.Time) int {
	return at.In(r.Resolve(zone)).Day()
}
