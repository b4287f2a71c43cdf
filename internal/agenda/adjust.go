package agenda

import (
	"fmt"
	"time"

	gocache "github.com/patrickmn/go-cache"
)

const (
	adjustCacheExpiry  = time.Hour
	adjustCacheCleanup = 2 * time.Hour
)

// Adjuster converts stored wall-clock start times into instants in a
// display timezone. Conversions are memoized per event + zone pair; the
// cache key includes the event's start and duration, so a reloaded
// schedule never sees stale entries.
type Adjuster struct {
	cache *gocache.Cache
}

func NewAdjuster() *Adjuster {
	return &Adjuster{cache: gocache.New(adjustCacheExpiry, adjustCacheCleanup)}
}

type adjustedTimes struct {
	start time.Time
	end   time.Time
}

// Adjust interprets ev.StartDateTime as wall-clock time in meetingLoc,
// converts it to an absolute instant, and re-expresses it in displayLoc.
// The end is start plus duration in instant space, so durations stay
// correct across DST transitions.
func (a *Adjuster) Adjust(ev Event, meetingLoc, displayLoc *time.Location) (time.Time, time.Time, error) {
	key := fmt.Sprintf("%s|%s|%d|%s|%s", ev.ID, ev.StartDateTime, ev.Duration, meetingLoc, displayLoc)
	if cached, ok := a.cache.Get(key); ok {
		at := cached.(adjustedTimes)
		return at.start, at.end, nil
	}

	naive, err := time.ParseInLocation(StartTimeLayout, ev.StartDateTime, meetingLoc)
	if err != nil {
		return time.Time{}, time.Time{}, fmt.Errorf("parse start of event %s: %w", ev.ID, err)
	}
	start := naive.In(displayLoc)
	end := start.Add(time.Duration(ev.Duration) * time.Second)

	a.cache.Set(key, adjustedTimes{start: start, end: end}, gocache.DefaultExpiration)
	return start, end, nil
}
