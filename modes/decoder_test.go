package modes

import (
	"testing"

	"github.com/golang/geo/s2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDecoder_Identification(t *testing.T) {
	d := NewDecoder()
	v, err := d.DecodeHex("884840D6202CC371C31DE0000000", false, 0)
	require.NoError(t, err)
	m, ok := v.(IdentificationMsg)
	require.True(t, ok)
	assert.Equal(t, "KLM1017 ", m.Callsign)
}

func TestDecoder_AirbornePositionV0(t *testing.T) {
	d := NewDecoder()
	v, err := d.Decode(mustHex(t, "8D4840D658C382BF20C350000000"), 0)
	require.NoError(t, err)
	assert.True(t, IsAirbornePosition(v))
	m := v.(AirbornePositionMsg)
	alt, ok := m.Altitude.Get()
	require.True(t, ok)
	assert.Equal(t, int32(38000), alt)
}

func TestDecoder_OperationalStatusUpdatesTrackedVersion(t *testing.T) {
	d := NewDecoder()
	addr := QualifiedAddress{Address: [3]byte{0x48, 0x40, 0xD6}}

	_, err := d.Decode(mustHex(t, "8D4840D6F8ABCD12343000000000"), 0)
	require.NoError(t, err)

	assert.Equal(t, uint8(1), d.AdsbVersion(addr))
}

func TestDecoder_SupersonicAirspeedScaling(t *testing.T) {
	d := NewDecoder()
	v, err := d.Decode(mustHex(t, "8D4840D69C000081600000000000"), 0)
	require.NoError(t, err)
	m := v.(AirspeedHeadingMsg)
	as, ok := m.AirspeedKnots().Get()
	require.True(t, ok)
	assert.Equal(t, int32(40), as)
}

func TestDecoder_OperationalStatusInvalidVersionIsBadFormat(t *testing.T) {
	d := NewDecoder()
	_, err := d.Decode(mustHex(t, "8D4840D6F8000000006000000000"), 0)
	assert.ErrorIs(t, err, ErrBadFormat)
}

func TestDecoder_TCASResolutionAdvisory(t *testing.T) {
	d := NewDecoder()
	v, err := d.Decode(mustHex(t, "8D4840D6E27FFE41234560000000"), 0)
	require.NoError(t, err)
	assert.Equal(t, KindTCASResolutionAdvisory, v.Kind())
}

func TestDecoder_EvictionSweepsStaleAircraftNotActiveOnes(t *testing.T) {
	// A tiny sweep-triggering condition (map size > 1, counter > 1) plus
	// a short staleness window: a stale aircraft last seen long before
	// the latest timestamp is swept away, but an aircraft that keeps
	// transmitting is never evicted out from under itself (§4.6).
	d := NewDecoder(WithMaxAircraft(1), WithMaxMessageCount(1), WithMaxAgeMillis(1000))

	stale := mustHex(t, "884840D6202CC371C31DE0000000")
	active := mustHex(t, "885840D6202CC371C31DE0000000")

	_, err := d.Decode(stale, 0)
	require.NoError(t, err)
	_, err = d.Decode(active, 1000)
	require.NoError(t, err)
	assert.Equal(t, 2, d.AircraftCount())

	// On this third decode the counter (3) is past 1 while the map size
	// (2) is above 1, triggering a sweep relative to the latest timestamp
	// (2000):
	// stale's last_used (0) is more than 1000ms behind and is dropped,
	// active's last_used (1000) is not.
	_, err = d.Decode(active, 2000)
	require.NoError(t, err)
	assert.Equal(t, 1, d.AircraftCount())
}

func TestDecoder_ExtractPosition_PairsEvenOdd(t *testing.T) {
	d := NewDecoder()

	_, err := d.Decode(mustHex(t, "8D4840D658B502DF574BFE000000"), 0)
	require.NoError(t, err)
	v, err := d.Decode(mustHex(t, "8D4840D658B5064A8D4537000000"), 1)
	require.NoError(t, err)

	pos, err := d.ExtractPosition(v, nil)
	require.NoError(t, err)
	assert.InDelta(t, 52.3086, pos.Lat(), 0.01)
	assert.InDelta(t, 4.7639, pos.Lng(), 0.01)
}

func TestDecoder_ExtractPosition_SurfaceAltitudeForcedToZero(t *testing.T) {
	d := NewDecoder()

	_, err := d.Decode(mustHex(t, "8D4840D63800037D572FF7000000"), 0)
	require.NoError(t, err)
	v, err := d.Decode(mustHex(t, "8D4840D63800052A2F14DD000000"), 1)
	require.NoError(t, err)
	require.True(t, IsSurfacePosition(v))

	pos, err := d.ExtractPosition(v, nil)
	require.NoError(t, err)
	assert.Equal(t, AltitudeAboveGroundLevel, pos.AltitudeType)
	alt, ok := pos.Altitude.Get()
	require.True(t, ok)
	assert.Equal(t, int32(0), alt)
	assert.InDelta(t, 52.3086, pos.Lat(), 0.01)
	assert.InDelta(t, 4.7639, pos.Lng(), 0.01)
}

func TestDecoder_ExtractPosition_LocalDecodeAgainstReceiver(t *testing.T) {
	d := NewDecoder()

	// Only the even frame is ever seen, so global decode has no pair to
	// work with; local decoding against a nearby receiver must resolve
	// the position instead (§4.4 "Local decoding").
	v, err := d.Decode(mustHex(t, "8D4840D658B502DF574BFE000000"), 0)
	require.NoError(t, err)

	receiver := &Position{LatLng: s2.LatLngFromDegrees(52.3, 4.76)}
	pos, err := d.ExtractPosition(v, receiver)
	require.NoError(t, err)
	assert.InDelta(t, 52.3086, pos.Lat(), 0.05)
	assert.InDelta(t, 4.7639, pos.Lng(), 0.05)
}

func TestDecoder_ExtractPosition_NotAPositionVariant(t *testing.T) {
	d := NewDecoder()
	v, err := d.DecodeHex("884840D6202CC371C31DE0000000", false, 0)
	require.NoError(t, err)

	_, err = d.ExtractPosition(v, nil)
	assert.ErrorIs(t, err, ErrNotPositionVariant)
}

func TestDecoder_ExtractPosition_RejectsUnreasonableJump(t *testing.T) {
	d := NewDecoder(WithReasonablenessThresholdNM(1))

	_, err := d.Decode(mustHex(t, "8D4840D658B502DF574BFE000000"), 0)
	require.NoError(t, err)
	v, err := d.Decode(mustHex(t, "8D4840D658B5064A8D4537000000"), 1)
	require.NoError(t, err)

	_, err = d.ExtractPosition(v, nil)
	require.NoError(t, err)

	// Re-observe the same odd frame long after the even frame's validity
	// window has lapsed, so global decoding is no longer available and
	// local decoding against a distant, fabricated receiver position is
	// the only way left to resolve a candidate. That candidate lands
	// nowhere near the fix just accepted above and must be rejected.
	v2, err := d.Decode(mustHex(t, "8D4840D658B5064A8D4537000000"), 100000)
	require.NoError(t, err)

	far := &Position{LatLng: s2.LatLngFromDegrees(10, 10)}
	_, err = d.ExtractPosition(v2, far)
	assert.ErrorIs(t, err, ErrPositionUnreasonable)
}

func TestDecoder_OperationalStatusReservedSubtypeFallsBackToRaw(t *testing.T) {
	// TFC31 subtype 2 is reserved; the dispatcher passes it through as
	// the raw envelope rather than treating it as a bad-format error,
	// the same as every other unrecognized subtype (§4.3).
	d := NewDecoder()
	v, err := d.Decode(mustHex(t, "8D4840D6FA000000000000000000"), 0)
	require.NoError(t, err)
	assert.Equal(t, KindRawEnvelope, v.Kind())
}

func TestDecoder_ClearStale(t *testing.T) {
	d := NewDecoder()
	_, err := d.Decode(mustHex(t, "884840D6202CC371C31DE0000000"), 0)
	require.NoError(t, err)

	removed := d.ClearStale(100000, 5000)
	assert.Equal(t, 1, removed)
	assert.Equal(t, 0, d.AircraftCount())
}

func mustHex(t *testing.T, s string) []byte {
	t.Helper()
	env, err := ParseHexFrame(s, false)
	require.NoError(t, err)
	return env.Raw
}
