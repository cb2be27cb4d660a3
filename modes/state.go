package modes

import (
	"fmt"
	"sync"

	"github.com/golang/geo/s2"
	cache "github.com/patrickmn/go-cache"
)

// Default eviction thresholds (§4.6). A sweep runs once the global
// message counter exceeds DefaultMaxMessageCount AND the map holds more
// than DefaultMaxAircraft entries; the sweep drops any aircraft whose
// last_used predates the latest observed timestamp by more than
// DefaultMaxAgeMillis. These are not per-aircraft budgets: a single
// continuously-transmitting aircraft is never evicted out from under
// itself merely for being long-lived or chatty.
const (
	DefaultMaxAircraft     = 30_000
	DefaultMaxMessageCount = 1_000_000
	DefaultMaxAgeMillis    = 3_600_000
)

// aircraftState is the mutable per-aircraft record the dispatcher
// consults and updates (§3, §4.5). It is stored by pointer in the cache
// and never referenced directly by a Message variant — every variant
// that needs a piece of it gets a StateSnapshot copy at construction
// time (§9).
type aircraftState struct {
	version      uint8
	nicSupplA    bool
	nicSupplC    uint8
	geoMinusBaro Optional[int32]

	cpr     cprSlot
	lastFix Optional[s2.LatLng] // prior trusted fix for the reasonableness test (§4.4)

	messageCount int
	firstSeen    int64
	lastSeen     int64
}

// aircraftStore is the correlator's per-aircraft memory: a map keyed by
// QualifiedAddress, backed by go-cache purely as a concurrent-safe
// container (§9: "a map, not hidden mutable fields behind an opaque
// handle"). Eviction follows §4.6 exactly: one monotonic counter of
// messages seen since the last sweep, plus the latest observed
// timestamp, both tracked here rather than per aircraft.
type aircraftStore struct {
	mu    sync.Mutex
	cache *cache.Cache

	messagesSinceSweep int
	latestTimestamp    int64

	sweepMessageThreshold int
	sweepMapSizeThreshold int
	maxAgeMillis          int64
}

func newAircraftStore(sweepMapSizeThreshold, sweepMessageThreshold int, maxAgeMillis int64) *aircraftStore {
	return &aircraftStore{
		cache:                 cache.New(cache.NoExpiration, cache.NoExpiration),
		sweepMessageThreshold: sweepMessageThreshold,
		sweepMapSizeThreshold: sweepMapSizeThreshold,
		maxAgeMillis:          maxAgeMillis,
	}
}

func cacheKey(addr QualifiedAddress) string {
	return fmt.Sprintf("%d:%02x%02x%02x", addr.Qualifier, addr.Address[0], addr.Address[1], addr.Address[2])
}

// touch fetches (creating if absent) the state for addr and records the
// arrival of a new message at tsMillis. Before doing so it advances the
// global message counter and, once that counter exceeds
// sweepMessageThreshold AND the map holds more than sweepMapSizeThreshold
// entries, runs a sweep dropping every aircraft stale relative to the
// latest observed timestamp (§4.6) — exactly the condition spec.md names,
// not a per-aircraft budget.
func (s *aircraftStore) touch(addr QualifiedAddress, tsMillis int64) *aircraftState {
	s.mu.Lock()
	defer s.mu.Unlock()

	if tsMillis > s.latestTimestamp {
		s.latestTimestamp = tsMillis
	}

	s.messagesSinceSweep++
	if s.messagesSinceSweep > s.sweepMessageThreshold && s.cache.ItemCount() > s.sweepMapSizeThreshold {
		s.sweepLocked(s.latestTimestamp, s.maxAgeMillis)
		s.messagesSinceSweep = 0
	}

	key := cacheKey(addr)
	if v, ok := s.cache.Get(key); ok {
		st := v.(*aircraftState)
		st.messageCount++
		st.lastSeen = tsMillis
		return st
	}

	st := &aircraftState{
		firstSeen:    tsMillis,
		lastSeen:     tsMillis,
		messageCount: 1,
	}
	s.cache.SetDefault(key, st)
	return st
}

// sweepLocked drops every aircraft whose last message predates
// referenceMillis by more than maxAgeMillis. Called with mu held.
func (s *aircraftStore) sweepLocked(referenceMillis int64, maxAgeMillis int64) int {
	removed := 0
	for k, item := range s.cache.Items() {
		st := item.Object.(*aircraftState)
		if referenceMillis-st.lastSeen > maxAgeMillis {
			s.cache.Delete(k)
			removed++
		}
	}
	return removed
}

// clearStale runs the same staleness pass as the automatic sweep, on
// demand, relative to a caller-supplied nowMillis (§4.6: "Explicit
// clear_stale() runs the same pass on demand").
func (s *aircraftStore) clearStale(nowMillis int64, maxAgeMillis int64) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.sweepLocked(nowMillis, maxAgeMillis)
}

func (s *aircraftStore) snapshot(addr QualifiedAddress) (StateSnapshot, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	v, ok := s.cache.Get(cacheKey(addr))
	if !ok {
		return StateSnapshot{}, false
	}
	st := v.(*aircraftState)
	return StateSnapshot{
		Version:      st.version,
		NICSupplA:    st.nicSupplA,
		NICSupplC:    st.nicSupplC,
		GeoMinusBaro: st.geoMinusBaro,
	}, true
}

func (s *aircraftStore) count() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.cache.ItemCount()
}
