package modes

import "errors"

// Sentinel error kinds. The teacher's own error handling never needed more
// than a plain fmt.Errorf (see bruteForceAP in the original decoder), but
// the dispatcher here must let callers distinguish error kinds
// programmatically (§7 of the spec), so these are comparable sentinels
// instead of opaque strings.
var (
	// ErrFrameTooShort is returned by the BitReader and FrameParser when a
	// read or the frame itself is shorter than the shape it is being
	// decoded as requires.
	ErrFrameTooShort = errors.New("modes: frame too short")

	// ErrBadFormat is returned when the outer envelope is fine but an
	// inner field violates its own spec: wrong TFC for a typed subtype
	// constructor, an invalid subtype for a given TFC family, or an
	// unsupported Operational Status version.
	ErrBadFormat = errors.New("modes: bad format")

	// ErrUnspecifiedFormat marks a DF/first_field combination that is
	// reserved and not decodable. The dispatcher itself never returns
	// this — unknown shapes fall through to the raw envelope — it exists
	// for callers that want to classify a decoded envelope themselves.
	ErrUnspecifiedFormat = errors.New("modes: unspecified format")

	// ErrNotPositionVariant is returned by ExtractPosition when v carries
	// no CPR-encoded position fields at all.
	ErrNotPositionVariant = errors.New("modes: not a position variant")

	// ErrPositionUnavailable is returned by ExtractPosition when neither
	// global decoding (no valid opposite-parity pair within the window)
	// nor local decoding (no receiver position supplied, or the decoded
	// candidate falls outside the local-decode range) can resolve a
	// position.
	ErrPositionUnavailable = errors.New("modes: position unavailable")

	// ErrPositionUnreasonable is returned by ExtractPosition when a
	// globally or locally decoded position lands further than the
	// configured reasonableness threshold from the aircraft's prior
	// trusted fix (§4.4 "Reasonableness test").
	ErrPositionUnreasonable = errors.New("modes: position inconsistent with prior fix")
)
