package modes

// ShortACASMsg decodes DF0, short air-air surveillance (TCAS acquisition).
type ShortACASMsg struct {
	Env      Envelope
	OnGround bool
	Altitude Optional[int32]
}

func (m ShortACASMsg) Envelope() Envelope { return m.Env }
func (m ShortACASMsg) Kind() Kind         { return KindShortACAS }

func NewShortACASMsg(env Envelope) (ShortACASMsg, error) {
	if env.DF != 0 {
		return ShortACASMsg{}, ErrBadFormat
	}
	msg := env.Raw
	alt, _, ok := decodeAC13(msg)
	m := ShortACASMsg{
		Env:      env,
		OnGround: msg[0]&0x04 != 0,
	}
	if ok {
		m.Altitude = Some(alt)
	}
	return m, nil
}

// AltitudeReplyMsg decodes DF4, Surveillance Altitude Reply.
type AltitudeReplyMsg struct {
	Env          Envelope
	FlightStatus uint8
	Altitude     Optional[int32]
}

func (m AltitudeReplyMsg) Envelope() Envelope { return m.Env }
func (m AltitudeReplyMsg) Kind() Kind         { return KindAltitudeReply }

func NewAltitudeReplyMsg(env Envelope) (AltitudeReplyMsg, error) {
	if env.DF != 4 {
		return AltitudeReplyMsg{}, ErrBadFormat
	}
	msg := env.Raw
	alt, _, ok := decodeAC13(msg)
	m := AltitudeReplyMsg{
		Env:          env,
		FlightStatus: msg[0] & 0x07,
	}
	if ok {
		m.Altitude = Some(alt)
	}
	return m, nil
}

// IdentifyReplyMsg decodes DF5, Surveillance Identity Reply (Mode A
// squawk).
type IdentifyReplyMsg struct {
	Env          Envelope
	FlightStatus uint8
	Squawk       uint16
}

func (m IdentifyReplyMsg) Envelope() Envelope { return m.Env }
func (m IdentifyReplyMsg) Kind() Kind         { return KindIdentifyReply }

func NewIdentifyReplyMsg(env Envelope) (IdentifyReplyMsg, error) {
	if env.DF != 5 {
		return IdentifyReplyMsg{}, ErrBadFormat
	}
	msg := env.Raw
	return IdentifyReplyMsg{
		Env:          env,
		FlightStatus: msg[0] & 0x07,
		Squawk:       decodeGillhamIdentity(msg),
	}, nil
}

// AllCallReplyMsg decodes DF11, All-Call Reply.
type AllCallReplyMsg struct {
	Env        Envelope
	Capability uint8
}

func (m AllCallReplyMsg) Envelope() Envelope { return m.Env }
func (m AllCallReplyMsg) Kind() Kind         { return KindAllCallReply }

func NewAllCallReplyMsg(env Envelope) (AllCallReplyMsg, error) {
	if env.DF != 11 {
		return AllCallReplyMsg{}, ErrBadFormat
	}
	return AllCallReplyMsg{
		Env:        env,
		Capability: env.Raw[0] & 0x07,
	}, nil
}

// LongACASMsg decodes DF16, Long Air-Air Surveillance (TCAS coordination
// reply).
type LongACASMsg struct {
	Env      Envelope
	OnGround bool
	Altitude Optional[int32]
}

func (m LongACASMsg) Envelope() Envelope { return m.Env }
func (m LongACASMsg) Kind() Kind         { return KindLongACAS }

func NewLongACASMsg(env Envelope) (LongACASMsg, error) {
	if env.DF != 16 {
		return LongACASMsg{}, ErrBadFormat
	}
	msg := env.Raw
	alt, _, ok := decodeAC13(msg)
	m := LongACASMsg{
		Env:      env,
		OnGround: msg[0]&0x04 != 0,
	}
	if ok {
		m.Altitude = Some(alt)
	}
	return m, nil
}

// CommBAltitudeReplyMsg decodes DF20, Comm-B Altitude Reply. The MB field
// (BDS register contents) is carried unparsed — BDS interpretation is out
// of scope (Non-goals).
type CommBAltitudeReplyMsg struct {
	Env          Envelope
	FlightStatus uint8
	Altitude     Optional[int32]
	MB           [7]byte
}

func (m CommBAltitudeReplyMsg) Envelope() Envelope { return m.Env }
func (m CommBAltitudeReplyMsg) Kind() Kind         { return KindCommBAltitudeReply }

func NewCommBAltitudeReplyMsg(env Envelope) (CommBAltitudeReplyMsg, error) {
	if env.DF != 20 {
		return CommBAltitudeReplyMsg{}, ErrBadFormat
	}
	msg := env.Raw
	alt, _, ok := decodeAC13(msg)
	m := CommBAltitudeReplyMsg{
		Env:          env,
		FlightStatus: msg[0] & 0x07,
	}
	if ok {
		m.Altitude = Some(alt)
	}
	copy(m.MB[:], msg[4:11])
	return m, nil
}

// CommBIdentifyReplyMsg decodes DF21, Comm-B Identify Reply.
type CommBIdentifyReplyMsg struct {
	Env          Envelope
	FlightStatus uint8
	Squawk       uint16
	MB           [7]byte
}

func (m CommBIdentifyReplyMsg) Envelope() Envelope { return m.Env }
func (m CommBIdentifyReplyMsg) Kind() Kind         { return KindCommBIdentifyReply }

func NewCommBIdentifyReplyMsg(env Envelope) (CommBIdentifyReplyMsg, error) {
	if env.DF != 21 {
		return CommBIdentifyReplyMsg{}, ErrBadFormat
	}
	msg := env.Raw
	m := CommBIdentifyReplyMsg{
		Env:          env,
		FlightStatus: msg[0] & 0x07,
		Squawk:       decodeGillhamIdentity(msg),
	}
	copy(m.MB[:], msg[4:11])
	return m, nil
}

// CommDELMMsg decodes DF24 and above, Comm-D Extended Length Message. Per
// Non-goals this decoder does not interpret the ND segment payload.
type CommDELMMsg struct {
	Env Envelope
	KE  bool // control/data flag
	MD  [10]byte
}

func (m CommDELMMsg) Envelope() Envelope { return m.Env }
func (m CommDELMMsg) Kind() Kind         { return KindCommDELM }

func NewCommDELMMsg(env Envelope) (CommDELMMsg, error) {
	if env.DF < 24 {
		return CommDELMMsg{}, ErrBadFormat
	}
	msg := env.Raw
	m := CommDELMMsg{
		Env: env,
		KE:  msg[0]&0x10 != 0,
	}
	copy(m.MD[:], msg[1:11])
	return m, nil
}
