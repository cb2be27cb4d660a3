package modes

import "github.com/golang/geo/s2"

// AltitudeType distinguishes the vertical reference a Position's altitude
// is expressed against (§3).
type AltitudeType uint8

const (
	AltitudeBarometric AltitudeType = iota
	AltitudeGeometricWGS84
	AltitudeAboveGroundLevel
)

func (t AltitudeType) String() string {
	switch t {
	case AltitudeGeometricWGS84:
		return "GeometricWGS84"
	case AltitudeAboveGroundLevel:
		return "AboveGroundLevel"
	default:
		return "Barometric"
	}
}

// Position is a resolved aircraft location: a WGS84 lat/lon pair plus an
// altitude tagged with the vertical reference it was reported against.
// It is produced only once CPRDecoder has paired an even and odd frame
// (or resolved one against a receiver-relative reference) — it is never
// carried on the Message variants themselves, per §9's "nullable scalars,
// not hidden state" note: a Position is either fully present or not
// produced at all.
type Position struct {
	LatLng       s2.LatLng
	Altitude     Optional[int32]
	AltitudeType AltitudeType
}

// Lat returns the latitude in degrees.
func (p Position) Lat() float64 { return p.LatLng.Lat.Degrees() }

// Lng returns the longitude in degrees.
func (p Position) Lng() float64 { return p.LatLng.Lng.Degrees() }
