package modes

// aisCharset is the 6-bit character set used by the callsign field of
// Identification messages and the Comm-B BDS 2,0 register. Index 0 is
// never valid data; it decodes to '?' like the teacher's table.
const aisCharset = "?ABCDEFGHIJKLMNOPQRSTUVWXYZ????? ???????????????0123456789??????"

// IdentificationMsg decodes ADS-B TFC 1-4, "Aircraft Identification and
// Category" (§3, §4.3).
type IdentificationMsg struct {
	Env           Envelope
	TFC           uint8
	CategorySet   byte // 'A'..'D', see SPEC_FULL.md §3
	CategoryIndex uint8
	Callsign      string // 8 characters, space-padded, not trimmed
}

func (m IdentificationMsg) Envelope() Envelope { return m.Env }
func (m IdentificationMsg) Kind() Kind         { return KindIdentification }

// NewIdentificationMsg constructs an IdentificationMsg from env, which
// must carry an ME payload whose TFC is in [1,4].
func NewIdentificationMsg(env Envelope) (IdentificationMsg, error) {
	me := env.ME()
	if me == nil {
		return IdentificationMsg{}, ErrBadFormat
	}
	br := NewBitReader(me)

	tfc, err := br.Uint(0, 5)
	if err != nil {
		return IdentificationMsg{}, err
	}
	if tfc < 1 || tfc > 4 {
		return IdentificationMsg{}, ErrBadFormat
	}

	cat, err := br.Uint(5, 3)
	if err != nil {
		return IdentificationMsg{}, err
	}

	var chars [8]byte
	for i := 0; i < 8; i++ {
		c, err := br.Uint(8+i*6, 6)
		if err != nil {
			return IdentificationMsg{}, err
		}
		chars[i] = aisCharset[c]
	}

	return IdentificationMsg{
		Env:           env,
		TFC:           uint8(tfc),
		CategorySet:   byte('A' + (tfc - 1)),
		CategoryIndex: uint8(cat),
		Callsign:      string(chars[:]),
	}, nil
}
