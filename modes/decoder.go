package modes

import "github.com/golang/geo/s2"

// Option configures a Decoder at construction time.
type Option func(*Decoder)

// WithMaxAircraft overrides the map-size half of the sweep-triggering
// condition (§4.6, default DefaultMaxAircraft): a sweep only runs once
// the map holds more than this many aircraft AND the message counter has
// also passed its own threshold.
func WithMaxAircraft(n int) Option {
	return func(d *Decoder) { d.maxAircraft = n }
}

// WithMaxMessageCount overrides the global message-counter half of the
// sweep-triggering condition (§4.6, default DefaultMaxMessageCount). The
// counter tracks messages handled since the last sweep across every
// aircraft, not any single aircraft's own traffic volume.
func WithMaxMessageCount(n int) Option {
	return func(d *Decoder) { d.maxMessageCount = n }
}

// WithMaxAgeMillis overrides the staleness threshold a sweep applies to
// each aircraft's last-seen timestamp, relative to the latest observed
// timestamp (§4.6, default DefaultMaxAgeMillis).
func WithMaxAgeMillis(ms int64) Option {
	return func(d *Decoder) { d.maxAgeMillis = ms }
}

// WithReasonablenessThresholdNM overrides how far a newly decoded
// position may land from an aircraft's prior trusted fix before
// ExtractPosition rejects it (§4.4 "Reasonableness test", default
// DefaultReasonablenessThresholdNM).
func WithReasonablenessThresholdNM(nm float64) Option {
	return func(d *Decoder) { d.reasonablenessThresholdNM = nm }
}

// Decoder is the stateful entry point (§2): FrameParser plus Dispatcher
// plus the per-aircraft correlator rolled into one cooperative,
// non-concurrent-safe object (§5) — callers serialize their own access,
// exactly as the component table describes.
type Decoder struct {
	store *aircraftStore

	maxAircraft               int
	maxMessageCount           int
	maxAgeMillis              int64
	reasonablenessThresholdNM float64
}

// NewDecoder constructs a Decoder with the default eviction thresholds,
// or whatever Options override them.
func NewDecoder(opts ...Option) *Decoder {
	d := &Decoder{
		maxAircraft:               DefaultMaxAircraft,
		maxMessageCount:           DefaultMaxMessageCount,
		maxAgeMillis:              DefaultMaxAgeMillis,
		reasonablenessThresholdNM: DefaultReasonablenessThresholdNM,
	}
	for _, opt := range opts {
		opt(d)
	}
	d.store = newAircraftStore(d.maxAircraft, d.maxMessageCount, d.maxAgeMillis)
	return d
}

// Decode parses and dispatches a single raw 7- or 14-byte Mode S frame,
// observed at tsMillis (milliseconds since an arbitrary but monotonic
// epoch chosen by the caller — this decoder never reads the wall clock
// itself, §5).
func (d *Decoder) Decode(frame []byte, tsMillis int64) (Variant, error) {
	env, err := ParseFrame(frame)
	if err != nil {
		return nil, err
	}
	return dispatch(env, tsMillis, d.store)
}

// DecodeHex is Decode for the hex-string wire representation (§6).
func (d *Decoder) DecodeHex(s string, noCRC bool, tsMillis int64) (Variant, error) {
	env, err := ParseHexFrame(s, noCRC)
	if err != nil {
		return nil, err
	}
	return dispatch(env, tsMillis, d.store)
}

// IsAirbornePosition reports whether v is any version of Airborne
// Position.
func IsAirbornePosition(v Variant) bool {
	switch v.Kind() {
	case KindAirbornePositionV0, KindAirbornePositionV1, KindAirbornePositionV2:
		return true
	default:
		return false
	}
}

// IsSurfacePosition reports whether v is any version of Surface
// Position.
func IsSurfacePosition(v Variant) bool {
	switch v.Kind() {
	case KindSurfacePositionV0, KindSurfacePositionV1, KindSurfacePositionV2:
		return true
	default:
		return false
	}
}

// IsPosition reports whether v carries CPR-encoded position fields at
// all (airborne or surface).
func IsPosition(v Variant) bool {
	return IsAirbornePosition(v) || IsSurfacePosition(v)
}

// AdsbVersion returns the protocol version last observed for addr via an
// Operational Status message, or 0 (V0) if none has been seen.
func (d *Decoder) AdsbVersion(addr QualifiedAddress) uint8 {
	snap, ok := d.store.snapshot(addr)
	if !ok {
		return 0
	}
	return snap.Version
}

// GeoMinusBaro returns the most recently reported geometric-minus-
// barometric altitude difference for addr, if any (§4.3, carried via
// TFC19 velocity messages).
func (d *Decoder) GeoMinusBaro(addr QualifiedAddress) Optional[int32] {
	snap, ok := d.store.snapshot(addr)
	if !ok {
		return None[int32]()
	}
	return snap.GeoMinusBaro
}

// ClearStale evicts every aircraft whose most recent message is older
// than maxAgeMillis relative to nowMillis, returning the number removed
// (§6, §4.6).
func (d *Decoder) ClearStale(nowMillis int64, maxAgeMillis int64) int {
	return d.store.clearStale(nowMillis, maxAgeMillis)
}

// AircraftCount returns the number of aircraft currently tracked.
func (d *Decoder) AircraftCount() int {
	return d.store.count()
}

// ExtractPosition resolves a Position from v, an Airborne or Surface
// Position variant (§4.4). It first tries global decoding, pairing v
// against the opposite-parity frame most recently seen for the same
// aircraft within the validity window; if that is unavailable and
// receiver is non-nil, it falls back to local decoding of v's own frame
// against receiver. A position that lands further than the configured
// reasonableness threshold from the aircraft's prior accepted fix is
// rejected with ErrPositionUnreasonable rather than silently returned.
func (d *Decoder) ExtractPosition(v Variant, receiver *Position) (Position, error) {
	env := v.Envelope()
	addr := QualifiedAddress{Address: env.Address, Qualifier: env.Qualifier}

	var (
		oddFlag  bool
		surface  bool
		altitude Optional[int32]
		altType  AltitudeType
	)

	switch m := v.(type) {
	case AirbornePositionMsg:
		oddFlag = m.OddFlag
		altitude = m.Altitude
		if m.IsGNSSHeight {
			altType = AltitudeGeometricWGS84
		} else {
			altType = AltitudeBarometric
		}
	case SurfacePositionMsg:
		oddFlag, surface = m.OddFlag, true
		altitude = Some(int32(0))
		altType = AltitudeAboveGroundLevel
	default:
		return Position{}, ErrNotPositionVariant
	}

	d.store.mu.Lock()
	item, found := d.store.cache.Get(cacheKey(addr))
	if !found {
		d.store.mu.Unlock()
		return Position{}, ErrPositionUnavailable
	}
	st := item.(*aircraftState)
	even, odd := st.cpr.even, st.cpr.odd
	priorFix, hasPriorFix := st.lastFix.Get()
	d.store.mu.Unlock()

	var lat, lon float64
	var resolved bool

	if even.valid && odd.valid && abs64(even.tsMillis-odd.tsMillis) <= cprValidityWindowMillis(surface) {
		lat, lon, resolved = globalDecode(even, odd, surface, oddFlag)
	}

	if !resolved && receiver != nil {
		frame := even
		if oddFlag {
			frame = odd
		}
		if frame.valid {
			lat, lon, resolved = localDecode(receiver.LatLng, frame, oddFlag, surface, cprMaxRangeNM(surface))
		}
	}

	if !resolved {
		return Position{}, ErrPositionUnavailable
	}

	cand := s2.LatLngFromDegrees(lat, lon)
	if hasPriorFix && !positionConsistent(priorFix, cand, d.reasonablenessThresholdNM) {
		return Position{}, ErrPositionUnreasonable
	}

	d.store.mu.Lock()
	st.lastFix = Some(cand)
	d.store.mu.Unlock()

	return Position{
		LatLng:       cand,
		Altitude:     altitude,
		AltitudeType: altType,
	}, nil
}

func abs64(n int64) int64 {
	if n < 0 {
		return -n
	}
	return n
}
