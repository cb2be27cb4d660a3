package modes

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewAirbornePositionMsg_38000ft(t *testing.T) {
	env, err := ParseHexFrame("8D4840D658C382BF20C350000000", false)
	require.NoError(t, err)

	m, err := NewAirbornePositionMsg(env, StateSnapshot{})
	require.NoError(t, err)
	assert.Equal(t, uint8(11), m.TFC)
	assert.False(t, m.IsGNSSHeight)
	assert.False(t, m.UTCSync)
	assert.False(t, m.OddFlag)
	alt, ok := m.Altitude.Get()
	require.True(t, ok)
	assert.Equal(t, int32(38000), alt)
	assert.Equal(t, uint32(90000), m.RawLatitude)
	assert.Equal(t, uint32(50000), m.RawLongitude)
	assert.Equal(t, KindAirbornePositionV0, m.Kind())
}

func TestNewAirbornePositionMsg_NICSupplOnlyForV1Plus(t *testing.T) {
	env, err := ParseHexFrame("8D4840D658C382BF20C350000000", false)
	require.NoError(t, err)

	m0, err := NewAirbornePositionMsg(env, StateSnapshot{Version: 0})
	require.NoError(t, err)
	_, ok := m0.NICSupplA.Get()
	assert.False(t, ok)

	m1, err := NewAirbornePositionMsg(env, StateSnapshot{Version: 1, NICSupplA: true})
	require.NoError(t, err)
	v, ok := m1.NICSupplA.Get()
	require.True(t, ok)
	assert.True(t, v)
	assert.Equal(t, KindAirbornePositionV1, m1.Kind())
}

func TestSurfaceMovementTable(t *testing.T) {
	cases := []struct {
		raw      uint8
		wantOK   bool
		wantKnot float64
	}{
		{0, false, 0},
		{1, true, 0},
		{2, true, 0.125},
		{124, true, 175},
		{125, false, 0},
	}
	for _, c := range cases {
		knots, ok := surfaceMovementTable(c.raw)
		assert.Equal(t, c.wantOK, ok, "raw=%d", c.raw)
		if c.wantOK {
			assert.InDelta(t, c.wantKnot, knots, 0.001, "raw=%d", c.raw)
		}
	}
}

func TestNewSurfacePositionMsg_RejectsOutOfRangeTFC(t *testing.T) {
	env, err := ParseHexFrame("8D4840D658C382BF20C350000000", false) // TFC 11
	require.NoError(t, err)
	_, err = NewSurfacePositionMsg(env, StateSnapshot{})
	assert.ErrorIs(t, err, ErrBadFormat)
}
