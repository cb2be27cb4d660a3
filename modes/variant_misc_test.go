package modes

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewShortACASMsg(t *testing.T) {
	frame := make([]byte, 7)
	frame[0] = 0x04 // on-ground bit set, DF 0
	env, err := ParseFrame(frame)
	require.NoError(t, err)

	m, err := NewShortACASMsg(env)
	require.NoError(t, err)
	assert.True(t, m.OnGround)
	assert.Equal(t, KindShortACAS, m.Kind())
}

func TestNewShortACASMsg_WrongDF(t *testing.T) {
	frame := make([]byte, 7)
	frame[0] = byte(4 << 3)
	env, err := ParseFrame(frame)
	require.NoError(t, err)
	_, err = NewShortACASMsg(env)
	assert.ErrorIs(t, err, ErrBadFormat)
}

func TestNewIdentifyReplyMsg(t *testing.T) {
	frame := make([]byte, 7)
	frame[0] = byte(5 << 3)
	env, err := ParseFrame(frame)
	require.NoError(t, err)
	m, err := NewIdentifyReplyMsg(env)
	require.NoError(t, err)
	assert.Equal(t, KindIdentifyReply, m.Kind())
}

func TestNewAllCallReplyMsg(t *testing.T) {
	frame := make([]byte, 7)
	frame[0] = byte(11<<3) | 0x05
	env, err := ParseFrame(frame)
	require.NoError(t, err)
	m, err := NewAllCallReplyMsg(env)
	require.NoError(t, err)
	assert.Equal(t, uint8(5), m.Capability)
}

func TestNewCommDELMMsg(t *testing.T) {
	frame := make([]byte, 14)
	frame[0] = byte(24 << 3)
	env, err := ParseFrame(frame)
	require.NoError(t, err)
	m, err := NewCommDELMMsg(env)
	require.NoError(t, err)
	assert.Equal(t, KindCommDELM, m.Kind())
}

func TestNewCommDELMMsg_RejectsLowDF(t *testing.T) {
	frame := make([]byte, 14)
	frame[0] = byte(20 << 3)
	env, err := ParseFrame(frame)
	require.NoError(t, err)
	_, err = NewCommDELMMsg(env)
	assert.ErrorIs(t, err, ErrBadFormat)
}
