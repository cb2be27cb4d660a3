package modes

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewOperationalStatusMsg_InvalidVersionIsBadFormat(t *testing.T) {
	env, err := ParseHexFrame("8D4840D6F8000000006000000000", false)
	require.NoError(t, err)

	_, err = NewOperationalStatusMsg(env)
	assert.ErrorIs(t, err, ErrBadFormat)
}

func TestNewOperationalStatusMsg_V1Airborne(t *testing.T) {
	env, err := ParseHexFrame("8D4840D6F8ABCD12343000000000", false)
	require.NoError(t, err)

	v, err := NewOperationalStatusMsg(env)
	require.NoError(t, err)

	m, ok := v.(AirborneOperationalStatusMsg)
	require.True(t, ok)
	assert.Equal(t, uint8(1), m.Version)
	assert.Equal(t, uint16(0xABCD), m.Capability)
	assert.Equal(t, uint16(0x1234), m.Mode)
	assert.True(t, m.NICSupplA)
	assert.Equal(t, KindAirborneOperationalStatusV1, m.Kind())
}

func TestNewOperationalStatusMsg_V0SharedShape(t *testing.T) {
	// TFC31, subtype1 (surface), version 0.
	env, err := ParseHexFrame("8D4840D6F9000000000000000000", false)
	require.NoError(t, err)

	v, err := NewOperationalStatusMsg(env)
	require.NoError(t, err)

	m, ok := v.(OperationalStatusV0Msg)
	require.True(t, ok)
	assert.Equal(t, OpStatusSurface, m.Subtype)
	assert.Equal(t, KindSurfaceOperationalStatusV0, m.Kind())
}
