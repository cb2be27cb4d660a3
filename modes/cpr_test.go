package modes

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCprNL_SymmetricAndMonotonic(t *testing.T) {
	assert.Equal(t, cprNL(52.3), cprNL(-52.3))
	assert.Equal(t, 59, cprNL(0))
	assert.Equal(t, 1, cprNL(89.9))
	// NL must never increase as |lat| increases.
	prev := cprNL(0)
	for lat := 1.0; lat < 89; lat++ {
		cur := cprNL(lat)
		assert.LessOrEqual(t, cur, prev)
		prev = cur
	}
}

func TestGlobalDecode_KnownPair(t *testing.T) {
	even := cprFrame{rawLat: 94123, rawLon: 84990}
	odd := cprFrame{rawLat: 75078, rawLon: 83255}

	lat, lon, ok := globalDecode(even, odd, false, true)
	assert.True(t, ok)
	assert.InDelta(t, 52.3086, lat, 0.01)
	assert.InDelta(t, 4.7639, lon, 0.01)

	lat2, lon2, ok := globalDecode(even, odd, false, false)
	assert.True(t, ok)
	assert.InDelta(t, lat, lat2, 0.01)
	assert.InDelta(t, lon, lon2, 0.01)
}

func TestCprValidityWindow(t *testing.T) {
	assert.Equal(t, int64(10000), cprValidityWindowMillis(false))
	assert.Equal(t, int64(50000), cprValidityWindowMillis(true))
}

func TestCprMaxRange(t *testing.T) {
	assert.Equal(t, 180.0, cprMaxRangeNM(false))
	assert.Equal(t, 45.0, cprMaxRangeNM(true))
}
