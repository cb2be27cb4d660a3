package modes

import "math"

// nacvTable maps a raw 3-bit NACv code to its horizontal velocity error
// bound in m/s, per §4.3.
func nacvTable(raw uint8) float64 {
	switch raw {
	case 1:
		return 10
	case 2:
		return 3
	case 3:
		return 1
	case 4:
		return 0.3
	default:
		return -1 // unknown or > 10 m/s
	}
}

// decodeVerticalRate reads the shared vertical-rate encoding used by both
// TFC 19 families (§4.3: bit 35 source, bit 36 sign, bits 37-45 raw).
func decodeVerticalRate(br BitReader) (source uint8, sign bool, raw uint16, err error) {
	s, err := br.Uint(35, 1)
	if err != nil {
		return 0, false, 0, err
	}
	sg, err := br.Bool(36)
	if err != nil {
		return 0, false, 0, err
	}
	r, err := br.Uint(37, 9)
	if err != nil {
		return 0, false, 0, err
	}
	return uint8(s), sg, uint16(r), nil
}

// decodeGeoMinusBaro reads the shared geo-minus-baro encoding used by both
// TFC 19 families (§4.3: bit 46 sign, bits 47-53 raw).
func decodeGeoMinusBaro(br BitReader) (sign bool, raw uint8, err error) {
	sg, err := br.Bool(46)
	if err != nil {
		return false, 0, err
	}
	r, err := br.Uint(47, 7)
	if err != nil {
		return false, 0, err
	}
	return sg, uint8(r), nil
}

// VelocityOverGroundMsg decodes ADS-B TFC 19 subtypes 1-2, ground velocity
// expressed as East-West / North-South components.
type VelocityOverGroundMsg struct {
	Env              Envelope
	Subtype          uint8
	IntentChange     bool
	IFRCapability    bool
	NACv             float64
	EWVelocityKnots  Optional[int32] // signed, +east
	NSVelocityKnots  Optional[int32] // signed, +north
	vertSource       uint8
	vertSign         bool
	vertRaw          uint16
	geoMinusBaroSign bool
	geoMinusBaroRaw  uint8
}

func (m VelocityOverGroundMsg) Envelope() Envelope { return m.Env }
func (m VelocityOverGroundMsg) Kind() Kind         { return KindVelocityOverGround }

// HasVerticalRate reports whether the vertical rate field was populated.
func (m VelocityOverGroundMsg) HasVerticalRate() bool { return m.vertRaw != 0 }

// VerticalRateFPM returns the vertical rate in feet per minute (negative
// = descending). Sign is resolved here, at accessor time, not at
// construction, per the §9 design note: an unavailable magnitude must
// never accidentally read as negative.
func (m VelocityOverGroundMsg) VerticalRateFPM() Optional[int32] {
	if m.vertRaw == 0 {
		return None[int32]()
	}
	v := int32(m.vertRaw-1) * 64
	if m.vertSign {
		v = -v
	}
	return Some(v)
}

// VerticalRateSource reports whether the vertical rate is geometric (0)
// or barometric (1).
func (m VelocityOverGroundMsg) VerticalRateSource() uint8 { return m.vertSource }

// HasGeoMinusBaro reports whether the geo-minus-baro field was populated.
func (m VelocityOverGroundMsg) HasGeoMinusBaro() bool { return m.geoMinusBaroRaw != 0 }

// GeoMinusBaroFeet returns the difference between geometric and
// barometric altitude, in feet, signed.
func (m VelocityOverGroundMsg) GeoMinusBaroFeet() Optional[int32] {
	if m.geoMinusBaroRaw == 0 {
		return None[int32]()
	}
	v := int32(m.geoMinusBaroRaw-1) * 25
	if m.geoMinusBaroSign {
		v = -v
	}
	return Some(v)
}

// GroundSpeedKnots returns the combined ground speed derived from the
// East-West/North-South components, when both are available.
func (m VelocityOverGroundMsg) GroundSpeedKnots() Optional[float64] {
	ew, ewOK := m.EWVelocityKnots.Get()
	ns, nsOK := m.NSVelocityKnots.Get()
	if !ewOK || !nsOK {
		return None[float64]()
	}
	return Some(math.Hypot(float64(ew), float64(ns)))
}

// TrackDegrees returns the ground track derived from the velocity
// components, when available.
func (m VelocityOverGroundMsg) TrackDegrees() Optional[float64] {
	ew, ewOK := m.EWVelocityKnots.Get()
	ns, nsOK := m.NSVelocityKnots.Get()
	if !ewOK || !nsOK || (ew == 0 && ns == 0) {
		return None[float64]()
	}
	heading := math.Atan2(float64(ew), float64(ns)) * 180 / math.Pi
	if heading < 0 {
		heading += 360
	}
	return Some(heading)
}

// NewVelocityOverGroundMsg constructs a VelocityOverGroundMsg from env,
// whose TFC must be 19 and subtype in [1,2].
func NewVelocityOverGroundMsg(env Envelope) (VelocityOverGroundMsg, error) {
	me := env.ME()
	if me == nil {
		return VelocityOverGroundMsg{}, ErrBadFormat
	}
	br := NewBitReader(me)

	tfc, err := br.Uint(0, 5)
	if err != nil {
		return VelocityOverGroundMsg{}, err
	}
	if tfc != 19 {
		return VelocityOverGroundMsg{}, ErrBadFormat
	}
	subtype, err := br.Uint(5, 3)
	if err != nil {
		return VelocityOverGroundMsg{}, err
	}
	if subtype != 1 && subtype != 2 {
		return VelocityOverGroundMsg{}, ErrBadFormat
	}

	intentChange, err := br.Bool(8)
	if err != nil {
		return VelocityOverGroundMsg{}, err
	}
	ifrCap, err := br.Bool(9)
	if err != nil {
		return VelocityOverGroundMsg{}, err
	}
	nacvRaw, err := br.Uint(10, 3)
	if err != nil {
		return VelocityOverGroundMsg{}, err
	}

	ewSign, err := br.Bool(13)
	if err != nil {
		return VelocityOverGroundMsg{}, err
	}
	ewRaw, err := br.Uint(14, 10)
	if err != nil {
		return VelocityOverGroundMsg{}, err
	}
	nsSign, err := br.Bool(24)
	if err != nil {
		return VelocityOverGroundMsg{}, err
	}
	nsRaw, err := br.Uint(25, 10)
	if err != nil {
		return VelocityOverGroundMsg{}, err
	}

	vertSource, vertSign, vertRaw, err := decodeVerticalRate(br)
	if err != nil {
		return VelocityOverGroundMsg{}, err
	}
	gmbSign, gmbRaw, err := decodeGeoMinusBaro(br)
	if err != nil {
		return VelocityOverGroundMsg{}, err
	}

	scale := int32(1)
	if subtype == 2 {
		scale = 4 // supersonic ground velocity
	}

	m := VelocityOverGroundMsg{
		Env:              env,
		Subtype:          uint8(subtype),
		IntentChange:     intentChange,
		IFRCapability:    ifrCap,
		NACv:             nacvTable(uint8(nacvRaw)),
		vertSource:       vertSource,
		vertSign:         vertSign,
		vertRaw:          vertRaw,
		geoMinusBaroSign: gmbSign,
		geoMinusBaroRaw:  gmbRaw,
	}
	if ewRaw != 0 {
		v := (int32(ewRaw) - 1) * scale
		if ewSign {
			v = -v
		}
		m.EWVelocityKnots = Some(v)
	}
	if nsRaw != 0 {
		v := (int32(nsRaw) - 1) * scale
		if nsSign {
			v = -v
		}
		m.NSVelocityKnots = Some(v)
	}
	return m, nil
}

// AirspeedHeadingMsg decodes ADS-B TFC 19 subtypes 3-4, airspeed and
// heading (§4.3). Subtype 4 carries supersonic-scaled airspeed.
type AirspeedHeadingMsg struct {
	Env              Envelope
	Subtype          uint8
	IsSupersonic     bool
	IntentChange     bool
	IFRCapability    bool
	NACv             float64
	HeadingStatus    bool // v0: magnetic(0)/true(1) north; v1+: heading-available
	HeadingDegrees   Optional[float64]
	TrueAirspeed     bool // true = TAS, false = IAS
	airspeedRaw      uint16
	vertSource       uint8
	vertSign         bool
	vertRaw          uint16
	geoMinusBaroSign bool
	geoMinusBaroRaw  uint8
}

func (m AirspeedHeadingMsg) Envelope() Envelope { return m.Env }
func (m AirspeedHeadingMsg) Kind() Kind         { return KindAirspeedHeading }

// HasAirspeedInfo reports whether the airspeed field was populated.
func (m AirspeedHeadingMsg) HasAirspeedInfo() bool { return m.airspeedRaw != 0 }

// AirspeedKnots returns the airspeed in knots, scaled x4 for subtype 4
// (supersonic), absent when the raw field was zero.
func (m AirspeedHeadingMsg) AirspeedKnots() Optional[int32] {
	if m.airspeedRaw == 0 {
		return None[int32]()
	}
	v := int32(m.airspeedRaw) - 1
	if m.IsSupersonic {
		v *= 4
	}
	return Some(v)
}

// HasVerticalRate reports whether the vertical rate field was populated.
func (m AirspeedHeadingMsg) HasVerticalRate() bool { return m.vertRaw != 0 }

// VerticalRateFPM returns the vertical rate in feet per minute, resolved
// at accessor time (see §9 design note).
func (m AirspeedHeadingMsg) VerticalRateFPM() Optional[int32] {
	if m.vertRaw == 0 {
		return None[int32]()
	}
	v := int32(m.vertRaw-1) * 64
	if m.vertSign {
		v = -v
	}
	return Some(v)
}

// VerticalRateSource reports whether the vertical rate is geometric (0)
// or barometric (1).
func (m AirspeedHeadingMsg) VerticalRateSource() uint8 { return m.vertSource }

// HasGeoMinusBaro reports whether the geo-minus-baro field was populated.
func (m AirspeedHeadingMsg) HasGeoMinusBaro() bool { return m.geoMinusBaroRaw != 0 }

// GeoMinusBaroFeet returns the difference between geometric and
// barometric altitude, in feet, signed.
func (m AirspeedHeadingMsg) GeoMinusBaroFeet() Optional[int32] {
	if m.geoMinusBaroRaw == 0 {
		return None[int32]()
	}
	v := int32(m.geoMinusBaroRaw-1) * 25
	if m.geoMinusBaroSign {
		v = -v
	}
	return Some(v)
}

// NewAirspeedHeadingMsg constructs an AirspeedHeadingMsg from env, whose
// TFC must be 19 and subtype in [3,4].
func NewAirspeedHeadingMsg(env Envelope) (AirspeedHeadingMsg, error) {
	me := env.ME()
	if me == nil {
		return AirspeedHeadingMsg{}, ErrBadFormat
	}
	br := NewBitReader(me)

	tfc, err := br.Uint(0, 5)
	if err != nil {
		return AirspeedHeadingMsg{}, err
	}
	if tfc != 19 {
		return AirspeedHeadingMsg{}, ErrBadFormat
	}
	subtype, err := br.Uint(5, 3)
	if err != nil {
		return AirspeedHeadingMsg{}, err
	}
	if subtype != 3 && subtype != 4 {
		return AirspeedHeadingMsg{}, ErrBadFormat
	}

	intentChange, err := br.Bool(8)
	if err != nil {
		return AirspeedHeadingMsg{}, err
	}
	ifrCap, err := br.Bool(9)
	if err != nil {
		return AirspeedHeadingMsg{}, err
	}
	nacvRaw, err := br.Uint(10, 3)
	if err != nil {
		return AirspeedHeadingMsg{}, err
	}
	headingStatus, err := br.Bool(13)
	if err != nil {
		return AirspeedHeadingMsg{}, err
	}
	headingRaw, err := br.Uint(14, 10)
	if err != nil {
		return AirspeedHeadingMsg{}, err
	}
	trueAirspeed, err := br.Bool(24)
	if err != nil {
		return AirspeedHeadingMsg{}, err
	}
	airspeedRaw, err := br.Uint(25, 10)
	if err != nil {
		return AirspeedHeadingMsg{}, err
	}

	vertSource, vertSign, vertRaw, err := decodeVerticalRate(br)
	if err != nil {
		return AirspeedHeadingMsg{}, err
	}
	gmbSign, gmbRaw, err := decodeGeoMinusBaro(br)
	if err != nil {
		return AirspeedHeadingMsg{}, err
	}

	m := AirspeedHeadingMsg{
		Env:              env,
		Subtype:          uint8(subtype),
		IsSupersonic:     subtype == 4,
		IntentChange:     intentChange,
		IFRCapability:    ifrCap,
		NACv:             nacvTable(uint8(nacvRaw)),
		HeadingStatus:    headingStatus,
		TrueAirspeed:     trueAirspeed,
		airspeedRaw:      uint16(airspeedRaw),
		vertSource:       vertSource,
		vertSign:         vertSign,
		vertRaw:          vertRaw,
		geoMinusBaroSign: gmbSign,
		geoMinusBaroRaw:  gmbRaw,
	}
	if headingStatus {
		m.HeadingDegrees = Some(float64(headingRaw) * 360.0 / 1024.0)
	}
	return m, nil
}
