package modes

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewVelocityOverGroundMsg(t *testing.T) {
	env, err := ParseHexFrame("8D4840D699086586688454000000", false)
	require.NoError(t, err)

	m, err := NewVelocityOverGroundMsg(env)
	require.NoError(t, err)
	assert.Equal(t, uint8(1), m.Subtype)
	assert.InDelta(t, 10.0, m.NACv, 0.001)

	ew, ok := m.EWVelocityKnots.Get()
	require.True(t, ok)
	assert.Equal(t, int32(100), ew)

	ns, ok := m.NSVelocityKnots.Get()
	require.True(t, ok)
	assert.Equal(t, int32(-50), ns)

	gs, ok := m.GroundSpeedKnots().Get()
	require.True(t, ok)
	assert.InDelta(t, 111.8, gs, 0.5)

	vr, ok := m.VerticalRateFPM().Get()
	require.True(t, ok)
	assert.Equal(t, int32(-2048), vr)

	gmb, ok := m.GeoMinusBaroFeet().Get()
	require.True(t, ok)
	assert.Equal(t, int32(500), gmb)

	assert.Equal(t, KindVelocityOverGround, m.Kind())
}

func TestNewAirspeedHeadingMsg_Subsonic(t *testing.T) {
	env, err := ParseHexFrame("8D4840D69B16001F704614000000", false)
	require.NoError(t, err)

	m, err := NewAirspeedHeadingMsg(env)
	require.NoError(t, err)
	assert.Equal(t, uint8(3), m.Subtype)
	assert.False(t, m.IsSupersonic)

	hdg, ok := m.HeadingDegrees.Get()
	require.True(t, ok)
	assert.InDelta(t, 180.0, hdg, 0.01)

	as, ok := m.AirspeedKnots().Get()
	require.True(t, ok)
	assert.Equal(t, int32(250), as)

	vr, ok := m.VerticalRateFPM().Get()
	require.True(t, ok)
	assert.Equal(t, int32(1024), vr)

	gmb, ok := m.GeoMinusBaroFeet().Get()
	require.True(t, ok)
	assert.Equal(t, int32(-100), gmb)
}

func TestNewAirspeedHeadingMsg_SupersonicScaling(t *testing.T) {
	env, err := ParseHexFrame("8D4840D69C000081600000000000", false)
	require.NoError(t, err)

	m, err := NewAirspeedHeadingMsg(env)
	require.NoError(t, err)
	assert.True(t, m.IsSupersonic)

	as, ok := m.AirspeedKnots().Get()
	require.True(t, ok)
	assert.Equal(t, int32(40), as)
}

func TestNewVelocityOverGroundMsg_RejectsWrongSubtype(t *testing.T) {
	env, err := ParseHexFrame("8D4840D69B16001F704614000000", false) // subtype 3
	require.NoError(t, err)
	_, err = NewVelocityOverGroundMsg(env)
	assert.ErrorIs(t, err, ErrBadFormat)
}
