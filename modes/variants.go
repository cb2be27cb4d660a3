package modes

// Kind tags the closed set of message variants this decoder can produce
// (§3). Dispatch is a switch on Kind-producing logic (TFC/subtype/version),
// not virtual dispatch, per the "deep inheritance" design note in §9.
type Kind int

const (
	KindRawEnvelope Kind = iota
	KindShortACAS
	KindAltitudeReply
	KindIdentifyReply
	KindAllCallReply
	KindLongACAS
	KindIdentification
	KindSurfacePositionV0
	KindSurfacePositionV1
	KindSurfacePositionV2
	KindAirbornePositionV0
	KindAirbornePositionV1
	KindAirbornePositionV2
	KindVelocityOverGround
	KindAirspeedHeading
	KindEmergencyStatus
	KindTCASResolutionAdvisory
	KindTargetStateStatus
	KindAirborneOperationalStatusV0
	KindAirborneOperationalStatusV1
	KindAirborneOperationalStatusV2
	KindSurfaceOperationalStatusV0
	KindSurfaceOperationalStatusV1
	KindSurfaceOperationalStatusV2
	KindCommBAltitudeReply
	KindCommBIdentifyReply
	KindCommDELM
)

func (k Kind) String() string {
	switch k {
	case KindRawEnvelope:
		return "RawEnvelope"
	case KindShortACAS:
		return "ShortACAS"
	case KindAltitudeReply:
		return "AltitudeReply"
	case KindIdentifyReply:
		return "IdentifyReply"
	case KindAllCallReply:
		return "AllCallReply"
	case KindLongACAS:
		return "LongACAS"
	case KindIdentification:
		return "Identification"
	case KindSurfacePositionV0:
		return "SurfacePositionV0"
	case KindSurfacePositionV1:
		return "SurfacePositionV1"
	case KindSurfacePositionV2:
		return "SurfacePositionV2"
	case KindAirbornePositionV0:
		return "AirbornePositionV0"
	case KindAirbornePositionV1:
		return "AirbornePositionV1"
	case KindAirbornePositionV2:
		return "AirbornePositionV2"
	case KindVelocityOverGround:
		return "VelocityOverGround"
	case KindAirspeedHeading:
		return "AirspeedHeading"
	case KindEmergencyStatus:
		return "EmergencyStatus"
	case KindTCASResolutionAdvisory:
		return "TCASResolutionAdvisory"
	case KindTargetStateStatus:
		return "TargetStateStatus"
	case KindAirborneOperationalStatusV0:
		return "AirborneOperationalStatusV0"
	case KindAirborneOperationalStatusV1:
		return "AirborneOperationalStatusV1"
	case KindAirborneOperationalStatusV2:
		return "AirborneOperationalStatusV2"
	case KindSurfaceOperationalStatusV0:
		return "SurfaceOperationalStatusV0"
	case KindSurfaceOperationalStatusV1:
		return "SurfaceOperationalStatusV1"
	case KindSurfaceOperationalStatusV2:
		return "SurfaceOperationalStatusV2"
	case KindCommBAltitudeReply:
		return "CommBAltitudeReply"
	case KindCommBIdentifyReply:
		return "CommBIdentifyReply"
	case KindCommDELM:
		return "CommDELM"
	default:
		return "Unknown"
	}
}

// Variant is implemented by every decoded message shape, including the raw
// envelope fallback for shapes this decoder does not specialize.
type Variant interface {
	Envelope() Envelope
	Kind() Kind
}

// RawEnvelopeMsg is returned for any DF/TFC/subtype shape this decoder
// does not specialize (§3: "any other shape: the envelope itself,
// unchanged"), and for the TFC29 (Target State & Status) suppression case
// in §4.3.
type RawEnvelopeMsg struct {
	Env Envelope
}

func (m RawEnvelopeMsg) Envelope() Envelope { return m.Env }
func (m RawEnvelopeMsg) Kind() Kind         { return KindRawEnvelope }

// StateSnapshot is the per-aircraft state visible at decode time, threaded
// into variant construction for the families that need it (position, NIC
// supplements). Variants never hold a live reference to mutable state —
// only a copy taken at construction (§9 design note).
type StateSnapshot struct {
	Version      uint8
	NICSupplA    bool
	NICSupplC    uint8
	GeoMinusBaro Optional[int32]
}
