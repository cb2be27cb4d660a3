package modes

// AirbornePositionMsg decodes ADS-B TFC 9-18 (barometric altitude) and
// TFC 20-22 (GNSS height), the "Airborne Position" family (§3). It does
// not decode latitude/longitude itself — that requires pairing with the
// opposite-parity frame, done lazily by CPRDecoder (§4.4) — it only
// carries the raw CPR-encoded fields and altitude.
//
// The struct is shared across ADS-B protocol versions; Version plus Kind
// carries the per-version tag the spec's tagged-sum model calls for
// (AirbornePositionV0Msg/V1Msg/V2Msg), while NIC supplement availability
// differs: only V1/V2 carry NICSupplA, set by the dispatcher from
// per-aircraft state, never decoded from the frame itself.
type AirbornePositionMsg struct {
	Env          Envelope
	TFC          uint8
	Version      uint8
	IsGNSSHeight bool // true for TFC 20-22, false for TFC 9-18
	UTCSync      bool
	OddFlag      bool // true = odd CPR frame, false = even
	Altitude     Optional[int32]
	RawLatitude  uint32 // 17-bit CPR-encoded latitude
	RawLongitude uint32 // 17-bit CPR-encoded longitude
	NICSupplA    Optional[bool]
}

func (m AirbornePositionMsg) Envelope() Envelope { return m.Env }

func (m AirbornePositionMsg) Kind() Kind {
	switch m.Version {
	case 1:
		return KindAirbornePositionV1
	case 2:
		return KindAirbornePositionV2
	default:
		return KindAirbornePositionV0
	}
}

// NewAirbornePositionMsg constructs an AirbornePositionMsg from env, whose
// TFC must fall in [9,18] or [20,22], using the fixed byte-level layout
// the teacher's DecodeModesMessage uses for DF17 TFC 9-18 (msg[6..10]).
func NewAirbornePositionMsg(env Envelope, state StateSnapshot) (AirbornePositionMsg, error) {
	me := env.ME()
	if me == nil {
		return AirbornePositionMsg{}, ErrBadFormat
	}
	tfc := me[0] >> 3
	isGNSS := false
	switch {
	case tfc >= 9 && tfc <= 18:
		isGNSS = false
	case tfc >= 20 && tfc <= 22:
		isGNSS = true
	default:
		return AirbornePositionMsg{}, ErrBadFormat
	}

	msg := env.Raw
	altitude, ok := decodeAC12(msg)

	m := AirbornePositionMsg{
		Env:          env,
		TFC:          tfc,
		Version:      state.Version,
		IsGNSSHeight: isGNSS,
		UTCSync:      msg[6]&0x08 != 0,
		OddFlag:      msg[6]&0x04 != 0,
		RawLatitude:  ((uint32(msg[6]) & 3) << 15) | (uint32(msg[7]) << 7) | (uint32(msg[8]) >> 1),
		RawLongitude: ((uint32(msg[8]) & 1) << 16) | (uint32(msg[9]) << 8) | uint32(msg[10]),
	}
	if ok {
		m.Altitude = Some(altitude)
	}
	if state.Version >= 1 {
		m.NICSupplA = Some(state.NICSupplA)
	}
	return m, nil
}

// surfaceMovementTable converts the 7-bit ground movement field of a
// Surface Position message to ground speed in knots, per the DO-260
// non-linear movement table. ok is false for the reserved/no-data codes.
func surfaceMovementTable(raw uint8) (knots float64, ok bool) {
	switch {
	case raw == 0:
		return 0, false
	case raw == 1:
		return 0, true
	case raw >= 2 && raw <= 8:
		return 0.125 * float64(raw-1), true
	case raw >= 9 && raw <= 12:
		return 1 + 0.25*float64(raw-9), true
	case raw >= 13 && raw <= 38:
		return 2 + 0.5*float64(raw-13), true
	case raw >= 39 && raw <= 93:
		return 15 + float64(raw-39), true
	case raw >= 94 && raw <= 108:
		return 70 + 2*float64(raw-94), true
	case raw >= 109 && raw <= 123:
		return 100 + 5*float64(raw-109), true
	case raw == 124:
		return 175, true
	default:
		return 0, false
	}
}

// SurfacePositionMsg decodes ADS-B TFC 5-8, "Surface Position" (§3).
// Altitude is always 0/above-ground-level for surface traffic (§6); this
// variant instead carries ground movement and track.
type SurfacePositionMsg struct {
	Env          Envelope
	TFC          uint8
	Version      uint8
	UTCSync      bool
	OddFlag      bool
	GroundSpeed  Optional[float64] // knots
	TrackValid   bool
	GroundTrack  Optional[float64] // degrees
	RawLatitude  uint32
	RawLongitude uint32
	NICSupplA    Optional[bool]
	NICSupplC    Optional[uint8]
}

func (m SurfacePositionMsg) Envelope() Envelope { return m.Env }

func (m SurfacePositionMsg) Kind() Kind {
	switch m.Version {
	case 1:
		return KindSurfacePositionV1
	case 2:
		return KindSurfacePositionV2
	default:
		return KindSurfacePositionV0
	}
}

// NewSurfacePositionMsg constructs a SurfacePositionMsg from env, whose
// TFC must fall in [5,8].
func NewSurfacePositionMsg(env Envelope, state StateSnapshot) (SurfacePositionMsg, error) {
	me := env.ME()
	if me == nil {
		return SurfacePositionMsg{}, ErrBadFormat
	}
	br := NewBitReader(me)

	tfc, err := br.Uint(0, 5)
	if err != nil {
		return SurfacePositionMsg{}, err
	}
	if tfc < 5 || tfc > 8 {
		return SurfacePositionMsg{}, ErrBadFormat
	}

	movement, err := br.Uint(5, 7)
	if err != nil {
		return SurfacePositionMsg{}, err
	}
	trackValid, err := br.Bool(12)
	if err != nil {
		return SurfacePositionMsg{}, err
	}
	track, err := br.Uint(13, 7)
	if err != nil {
		return SurfacePositionMsg{}, err
	}
	tflag, err := br.Bool(20)
	if err != nil {
		return SurfacePositionMsg{}, err
	}
	fflag, err := br.Bool(21)
	if err != nil {
		return SurfacePositionMsg{}, err
	}
	lat, err := br.Uint(22, 17)
	if err != nil {
		return SurfacePositionMsg{}, err
	}
	lon, err := br.Uint(39, 17)
	if err != nil {
		return SurfacePositionMsg{}, err
	}

	m := SurfacePositionMsg{
		Env:          env,
		TFC:          uint8(tfc),
		Version:      state.Version,
		UTCSync:      tflag,
		OddFlag:      fflag,
		RawLatitude:  lat,
		RawLongitude: lon,
	}
	if speed, ok := surfaceMovementTable(uint8(movement)); ok {
		m.GroundSpeed = Some(speed)
	}
	m.TrackValid = trackValid
	if trackValid {
		m.GroundTrack = Some(float64(track) * 360.0 / 128.0)
	}
	if state.Version >= 1 {
		m.NICSupplA = Some(state.NICSupplA)
		m.NICSupplC = Some(state.NICSupplC)
	}
	return m, nil
}
