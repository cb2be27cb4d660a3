package modes

import (
	"math"

	"github.com/golang/geo/s2"
)

// cprNLTable is the NL lookup table for latitudes 0-89 degrees, per
// DO-260B Table D-1 (zone count as a function of latitude).
var cprNLTable = [90]int{
	59, 59, 59, 59, 59, 59, 59, 59, 59, 58, 58, 58, 58, 58, 57, 57,
	57, 57, 57, 57, 56, 56, 56, 56, 56, 56, 55, 55, 55, 55, 55, 54, 54, 54, 54,
	54, 53, 53, 53, 53, 52, 52, 52, 52, 51, 51, 51, 51, 50, 50, 50, 49, 49, 49,
	48, 48, 48, 47, 47, 47, 46, 46, 46, 45, 45, 44, 44, 44, 43, 43, 42, 42, 41,
	41, 41, 40, 40, 39, 39, 38, 38, 37, 37, 36, 36, 35, 35, 34, 34, 33,
}

func cprMod(a, b int) int {
	r := a % b
	if r < 0 {
		r += b
	}
	return r
}

func cprNL(lat float64) int {
	if lat < 0 {
		lat = -lat
	}
	lat = math.Round(lat)
	if lat >= float64(len(cprNLTable)) {
		return 1
	}
	return cprNLTable[int(lat)]
}

func cprN(lat float64, odd bool) int {
	nl := cprNL(lat)
	if odd {
		nl--
	}
	if nl < 1 {
		nl = 1
	}
	return nl
}

func cprDlon(lat float64, odd, surface bool) float64 {
	span := 360.0
	if surface {
		span = 90.0
	}
	return span / float64(cprN(lat, odd))
}

// cprFrame is one half of an even/odd CPR pair, as carried by an Airborne
// or Surface Position message, tagged with the caller-supplied timestamp
// it was decoded at so the correlator can enforce the validity window
// (§4.4).
type cprFrame struct {
	rawLat, rawLon uint32
	tsMillis       int64
	valid          bool
}

// cprSlot holds the most recent even and odd CPR frames received for one
// aircraft. It is not itself goroutine-safe: StatefulDecoder serializes
// access, per the single-threaded-cooperative model (§5).
type cprSlot struct {
	even, odd cprFrame
}

// globalDecode pairs an even and an odd CPR-encoded frame into a single
// unambiguous latitude/longitude, following the standard CPR global
// decode algorithm (airDlat0=360/60, airDlat1=360/59). ok is false when
// the two frames straddle a latitude-zone boundary and cannot be
// reconciled.
func globalDecode(even, odd cprFrame, surface bool, useOdd bool) (lat, lon float64, ok bool) {
	airDlat0 := 360.0 / 60.0
	airDlat1 := 360.0 / 59.0
	if surface {
		// Surface position covers only a quarter of the longitude band
		// an airborne position does (90 degrees of latitude zone width
		// instead of 360), so the zone size shrinks by 4, not the raw
		// encoded fraction.
		airDlat0 /= 4
		airDlat1 /= 4
	}

	rlat0 := float64(even.rawLat) / 131072.0
	rlat1 := float64(odd.rawLat) / 131072.0
	rlon0 := float64(even.rawLon) / 131072.0
	rlon1 := float64(odd.rawLon) / 131072.0

	j := int(math.Floor((59.0*rlat0-60.0*rlat1)/1.0 + 0.5))

	lat0 := airDlat0 * (float64(cprMod(j, 60)) + rlat0)
	lat1 := airDlat1 * (float64(cprMod(j, 59)) + rlat1)

	if lat0 >= 270 {
		lat0 -= 360
	}
	if lat1 >= 270 {
		lat1 -= 360
	}

	if cprNL(lat0) != cprNL(lat1) {
		return 0, 0, false
	}

	lat = lat0
	if useOdd {
		lat = lat1
	}
	if lat < -90 || lat > 90 {
		return 0, 0, false
	}

	ni := cprN(lat, useOdd)
	m := int(math.Floor((rlon0*float64(cprNL(lat)-1)-rlon1*float64(cprNL(lat)))/1.0 + 0.5))

	var rlon float64
	if useOdd {
		rlon = rlon1
	} else {
		rlon = rlon0
	}
	lon = cprDlon(lat, useOdd, surface) * (float64(cprMod(m, ni)) + rlon)
	if lon > 180 {
		lon -= 360
	}

	return lat, lon, true
}

// localDecode resolves a single CPR-encoded frame against a known
// reference position (the receiver's own location, or the aircraft's
// last known position), per the CPR local decode algorithm. It is used
// when only one parity is available. maxRangeNM bounds how far the
// candidate may be from the reference before it is rejected as
// ambiguous (§4.4: ~180NM airborne, ~45NM surface).
func localDecode(ref s2.LatLng, frame cprFrame, odd, surface bool, maxRangeNM float64) (lat, lon float64, ok bool) {
	dlat := 360.0 / 60.0
	if odd {
		dlat = 360.0 / 59.0
	}
	if surface {
		dlat /= 4
	}

	rlat := float64(frame.rawLat) / 131072.0
	refLat := ref.Lat.Degrees()

	j := math.Floor(refLat/dlat) + math.Floor(0.5+cprModF(refLat/dlat, 1)-rlat)
	lat = dlat * (j + rlat)

	dlon := cprDlon(lat, odd, surface)

	rlon := float64(frame.rawLon) / 131072.0
	refLon := ref.Lng.Degrees()
	m := math.Floor(refLon/dlon) + math.Floor(0.5+cprModF(refLon/dlon, 1)-rlon)
	lon = dlon * (m + rlon)

	cand := s2.LatLngFromDegrees(lat, lon)
	dist := ref.Distance(cand).Radians() * earthRadiusNM
	if dist > maxRangeNM {
		return 0, 0, false
	}
	return lat, lon, true
}

func cprModF(a, b float64) float64 {
	r := math.Mod(a, b)
	if r < 0 {
		r += b
	}
	return r
}

const earthRadiusNM = 3440.065

// cprMaxRangeNM returns the reasonableness bound for local decode
// against a reference position (§4.4).
func cprMaxRangeNM(surface bool) float64 {
	if surface {
		return 45
	}
	return 180
}

// cprValidityWindowMillis returns how old the opposite-parity frame may
// be and still be eligible for pairing (§4.4): 10s airborne, 50s surface.
func cprValidityWindowMillis(surface bool) int64 {
	if surface {
		return 50000
	}
	return 10000
}

// DefaultReasonablenessThresholdNM bounds how far a freshly decoded
// position may land from an aircraft's prior trusted fix before it is
// rejected (§4.4 "Reasonableness test"). It is deliberately generous: it
// exists to catch gross CPR zone-ambiguity errors, not to second-guess
// ordinary travel between fixes.
const DefaultReasonablenessThresholdNM = 600.0

// positionConsistent reports whether cand lies within thresholdNM of
// prior, the aircraft's last accepted fix (§4.4 "Reasonableness test").
func positionConsistent(prior, cand s2.LatLng, thresholdNM float64) bool {
	dist := prior.Distance(cand).Radians() * earthRadiusNM
	return dist <= thresholdNM
}
