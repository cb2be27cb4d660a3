package modes

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewEmergencyStatusMsg(t *testing.T) {
	env, err := ParseHexFrame("8D4840D6E1453800000000000000", false)
	require.NoError(t, err)

	m, err := NewEmergencyStatusMsg(env)
	require.NoError(t, err)
	assert.Equal(t, uint8(2), m.EmergencyState)
	assert.Equal(t, uint16(1234), m.Squawk)
	assert.Equal(t, KindEmergencyStatus, m.Kind())
}

func TestNewTCASResolutionAdvisoryMsg(t *testing.T) {
	env, err := ParseHexFrame("8D4840D6E27FFE41234560000000", false)
	require.NoError(t, err)

	m, err := NewTCASResolutionAdvisoryMsg(env)
	require.NoError(t, err)
	assert.Equal(t, uint16(0x1FFF), m.ActiveRA)
	assert.True(t, m.RATerminated)
	assert.False(t, m.MultipleThreats)
	assert.Equal(t, uint8(1), m.ThreatType)
	assert.Equal(t, uint32(0x123456), m.ThreatID)
	assert.Equal(t, KindTCASResolutionAdvisory, m.Kind())
}

func TestNewTCASResolutionAdvisoryMsg_RejectsWrongSubtype(t *testing.T) {
	env, err := ParseHexFrame("8D4840D6E1453800000000000000", false) // ST1, emergency status
	require.NoError(t, err)
	_, err = NewTCASResolutionAdvisoryMsg(env)
	assert.ErrorIs(t, err, ErrBadFormat)
}

func TestNewTargetStateStatusMsg_RejectsWrongTFC(t *testing.T) {
	env, err := ParseHexFrame("8D4840D6E27FFE41234560000000", false) // TFC 28
	require.NoError(t, err)
	_, err = NewTargetStateStatusMsg(env)
	assert.ErrorIs(t, err, ErrBadFormat)
}
