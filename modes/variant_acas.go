package modes

// EmergencyStatusMsg decodes ADS-B TFC 28 subtype 1, Emergency/Priority
// Status.
type EmergencyStatusMsg struct {
	Env            Envelope
	EmergencyState uint8 // 3-bit emergency/priority code, DO-260B Table 2-34
	Squawk         uint16
}

func (m EmergencyStatusMsg) Envelope() Envelope { return m.Env }
func (m EmergencyStatusMsg) Kind() Kind         { return KindEmergencyStatus }

func NewEmergencyStatusMsg(env Envelope) (EmergencyStatusMsg, error) {
	me := env.ME()
	if me == nil {
		return EmergencyStatusMsg{}, ErrBadFormat
	}
	br := NewBitReader(me)

	tfc, err := br.Uint(0, 5)
	if err != nil {
		return EmergencyStatusMsg{}, err
	}
	if tfc != 28 {
		return EmergencyStatusMsg{}, ErrBadFormat
	}
	st, err := br.Uint(5, 3)
	if err != nil {
		return EmergencyStatusMsg{}, err
	}
	if st != 1 {
		return EmergencyStatusMsg{}, ErrBadFormat
	}

	state, err := br.Uint(8, 3)
	if err != nil {
		return EmergencyStatusMsg{}, err
	}
	// The Mode A code here is carried straight (not Gillham-interleaved)
	// since the ES transmitter already has it in binary; read it as four
	// 3-bit octal digits, most significant first.
	var squawk uint16
	for i := 0; i < 4; i++ {
		digit, err := br.Uint(11+i*3, 3)
		if err != nil {
			return EmergencyStatusMsg{}, err
		}
		squawk = squawk*10 + uint16(digit)
	}

	return EmergencyStatusMsg{
		Env:            env,
		EmergencyState: uint8(state),
		Squawk:         squawk,
	}, nil
}

// TCASResolutionAdvisoryMsg decodes ADS-B TFC 28 subtype 2, 1090ES TCAS
// Resolution Advisory report (DO-260B §2.2.3.2.7.1).
type TCASResolutionAdvisoryMsg struct {
	Env             Envelope
	ActiveRA        uint16 // 14-bit active RA bitmask
	RATerminated    bool
	MultipleThreats bool
	ThreatType      uint8 // 0=no data, 1=ICAO24 identity, 2=altitude/bearing/range, 3=reserved
	ThreatID        uint32
}

func (m TCASResolutionAdvisoryMsg) Envelope() Envelope { return m.Env }
func (m TCASResolutionAdvisoryMsg) Kind() Kind         { return KindTCASResolutionAdvisory }

func NewTCASResolutionAdvisoryMsg(env Envelope) (TCASResolutionAdvisoryMsg, error) {
	me := env.ME()
	if me == nil {
		return TCASResolutionAdvisoryMsg{}, ErrBadFormat
	}
	br := NewBitReader(me)

	tfc, err := br.Uint(0, 5)
	if err != nil {
		return TCASResolutionAdvisoryMsg{}, err
	}
	if tfc != 28 {
		return TCASResolutionAdvisoryMsg{}, ErrBadFormat
	}
	st, err := br.Uint(5, 3)
	if err != nil {
		return TCASResolutionAdvisoryMsg{}, err
	}
	if st != 2 {
		return TCASResolutionAdvisoryMsg{}, ErrBadFormat
	}

	activeRA, err := br.Uint(8, 14)
	if err != nil {
		return TCASResolutionAdvisoryMsg{}, err
	}
	rat, err := br.Bool(22)
	if err != nil {
		return TCASResolutionAdvisoryMsg{}, err
	}
	mte, err := br.Bool(23)
	if err != nil {
		return TCASResolutionAdvisoryMsg{}, err
	}
	tti, err := br.Uint(24, 2)
	if err != nil {
		return TCASResolutionAdvisoryMsg{}, err
	}
	threatID, err := br.Uint(26, 26)
	if err != nil {
		return TCASResolutionAdvisoryMsg{}, err
	}

	return TCASResolutionAdvisoryMsg{
		Env:             env,
		ActiveRA:        uint16(activeRA),
		RATerminated:    rat,
		MultipleThreats: mte,
		ThreatType:      uint8(tti),
		ThreatID:        threatID,
	}, nil
}

// TargetStateStatusMsg decodes ADS-B TFC 29 subtype 1, Target State &
// Status (DO-260B §2.2.3.2.7.1). V0 transponders may not implement this
// message; the dispatcher suppresses construction per the rule in §4.3 and
// returns the raw envelope instead.
type TargetStateStatusMsg struct {
	Env            Envelope
	FMSAltitude    bool // true: target altitude source is FMS, false: MCP/FCU
	TargetAltitude Optional[int32]
	TargetHeading  Optional[float64]
	HorizontalMode bool // true: horizontal mode (LNAV/heading) is active
}

func (m TargetStateStatusMsg) Envelope() Envelope { return m.Env }
func (m TargetStateStatusMsg) Kind() Kind         { return KindTargetStateStatus }

func NewTargetStateStatusMsg(env Envelope) (TargetStateStatusMsg, error) {
	me := env.ME()
	if me == nil {
		return TargetStateStatusMsg{}, ErrBadFormat
	}
	br := NewBitReader(me)

	tfc, err := br.Uint(0, 5)
	if err != nil {
		return TargetStateStatusMsg{}, err
	}
	if tfc != 29 {
		return TargetStateStatusMsg{}, ErrBadFormat
	}
	st, err := br.Uint(5, 3)
	if err != nil {
		return TargetStateStatusMsg{}, err
	}
	if st != 1 {
		return TargetStateStatusMsg{}, ErrBadFormat
	}

	fmsAlt, err := br.Bool(8)
	if err != nil {
		return TargetStateStatusMsg{}, err
	}
	altRaw, err := br.Uint(9, 12)
	if err != nil {
		return TargetStateStatusMsg{}, err
	}
	hdgRaw, err := br.Uint(22, 9)
	if err != nil {
		return TargetStateStatusMsg{}, err
	}
	hdgValid, err := br.Bool(21)
	if err != nil {
		return TargetStateStatusMsg{}, err
	}
	horizMode, err := br.Bool(31)
	if err != nil {
		return TargetStateStatusMsg{}, err
	}

	m := TargetStateStatusMsg{
		Env:            env,
		FMSAltitude:    fmsAlt,
		HorizontalMode: horizMode,
	}
	if altRaw != 0 {
		m.TargetAltitude = Some(int32(altRaw)*32 - 1000)
	}
	if hdgValid {
		m.TargetHeading = Some(float64(hdgRaw) * 360.0 / 512.0)
	}
	return m, nil
}
