package modes

// OpStatusSubtype distinguishes the two Operational Status shapes: 0
// for airborne, 1 for surface. V1/V2 reports are split into separate
// struct types by subtype; only OperationalStatusV0Msg carries it as a
// field, and uses it solely to pick its Kind.
type OpStatusSubtype uint8

const (
	OpStatusAirborne OpStatusSubtype = 0
	OpStatusSurface  OpStatusSubtype = 1
)

// OperationalStatusV0Msg decodes ADS-B TFC 31 under protocol version 0,
// where airborne (subtype 0) and surface (subtype 1) reports share the
// same handling per the design note in §9: V0 never carries the
// NIC-supplement or version-dependent fields that distinguish the V1/V2
// shapes, so a single flat type suffices.
type OperationalStatusV0Msg struct {
	Env        Envelope
	Subtype    OpStatusSubtype
	Capability uint16
	Mode       uint16
}

func (m OperationalStatusV0Msg) Envelope() Envelope { return m.Env }

func (m OperationalStatusV0Msg) Kind() Kind {
	if m.Subtype == OpStatusSurface {
		return KindSurfaceOperationalStatusV0
	}
	return KindAirborneOperationalStatusV0
}

// AirborneOperationalStatusMsg decodes ADS-B TFC 31 subtype 0 under
// protocol version 1 or 2.
type AirborneOperationalStatusMsg struct {
	Env        Envelope
	Version    uint8
	Capability uint16
	Mode       uint16
	NICSupplA  bool
}

func (m AirborneOperationalStatusMsg) Envelope() Envelope { return m.Env }

func (m AirborneOperationalStatusMsg) Kind() Kind {
	if m.Version == 2 {
		return KindAirborneOperationalStatusV2
	}
	return KindAirborneOperationalStatusV1
}

// SurfaceOperationalStatusMsg decodes ADS-B TFC 31 subtype 1 under
// protocol version 1 or 2. Surface reports additionally carry a NIC
// supplement composite (NICSupplC) that airborne reports do not. The
// length/width class that surface reports also carry is not decoded.
type SurfaceOperationalStatusMsg struct {
	Env        Envelope
	Version    uint8
	Capability uint16
	Mode       uint16
	NICSupplA  bool
	NICSupplC  uint8
}

func (m SurfaceOperationalStatusMsg) Envelope() Envelope { return m.Env }

func (m SurfaceOperationalStatusMsg) Kind() Kind {
	if m.Version == 2 {
		return KindSurfaceOperationalStatusV2
	}
	return KindSurfaceOperationalStatusV1
}

// opStatusVersion reads and validates the 3-bit version field at ME bits
// 40-42, shared by every TFC 31 shape. Per the worked scenario in §8, a
// version code of 3 or more is itself a BadFormat condition, not merely
// an unknown version to pass through.
func opStatusVersion(br BitReader) (uint8, error) {
	v, err := br.Uint(40, 3)
	if err != nil {
		return 0, err
	}
	if v > 2 {
		return 0, ErrBadFormat
	}
	return uint8(v), nil
}

// NewOperationalStatusMsg dispatches ADS-B TFC 31 to one of
// OperationalStatusV0Msg, AirborneOperationalStatusMsg or
// SurfaceOperationalStatusMsg, keyed on the message's own subtype bits
// and the version reported in the message itself (§4.3: version is
// self-describing, not dependent on prior per-aircraft state).
func NewOperationalStatusMsg(env Envelope) (Variant, error) {
	me := env.ME()
	if me == nil {
		return nil, ErrBadFormat
	}
	br := NewBitReader(me)

	tfc, err := br.Uint(0, 5)
	if err != nil {
		return nil, err
	}
	if tfc != 31 {
		return nil, ErrBadFormat
	}
	subtypeRaw, err := br.Uint(5, 3)
	if err != nil {
		return nil, err
	}
	if subtypeRaw > 1 {
		return nil, ErrBadFormat
	}
	subtype := OpStatusSubtype(subtypeRaw)

	version, err := opStatusVersion(br)
	if err != nil {
		return nil, err
	}

	capability, err := br.Uint(8, 16)
	if err != nil {
		return nil, err
	}
	mode, err := br.Uint(24, 16)
	if err != nil {
		return nil, err
	}

	if version == 0 {
		return OperationalStatusV0Msg{
			Env:        env,
			Subtype:    subtype,
			Capability: uint16(capability),
			Mode:       uint16(mode),
		}, nil
	}

	// NIC_A (airborne and surface) sits at ME bit 43; NIC_C, a
	// surface-only composite, occupies ME bits 44-45 immediately after.
	nicA, err := br.Bool(43)
	if err != nil {
		return nil, err
	}

	if subtype == OpStatusSurface {
		nicC, err := br.Uint(44, 2)
		if err != nil {
			return nil, err
		}
		return SurfaceOperationalStatusMsg{
			Env:        env,
			Version:    version,
			Capability: uint16(capability),
			Mode:       uint16(mode),
			NICSupplA:  nicA,
			NICSupplC:  uint8(nicC),
		}, nil
	}

	return AirborneOperationalStatusMsg{
		Env:        env,
		Version:    version,
		Capability: uint16(capability),
		Mode:       uint16(mode),
		NICSupplA:  nicA,
	}, nil
}
