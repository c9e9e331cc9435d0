package led

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestScale(t *testing.T) {
	t.Parallel()

	assert.Equal(t, Red, Red.Scale(255))
	assert.Equal(t, Black, White.Scale(0))
	assert.Equal(t, RGB(0x7f, 0, 0), Red.Scale(127))
}

func TestEncodeFrame(t *testing.T) {
	t.Parallel()

	// 0xff expands to 8x 110 = 0b110110110110110110110110
	full := []byte{0xdb, 0x6d, 0xb6}
	// 0x00 expands to 8x 100 = 0b100100100100100100100100
	zero := []byte{0x92, 0x49, 0x24}

	frame := encodeFrame([]Color{Green}, 255)
	require.Equal(t, 9+latchBytes, len(frame))
	assert.Equal(t, full, frame[0:3], "G")
	assert.Equal(t, zero, frame[3:6], "R")
	assert.Equal(t, zero, frame[6:9], "B")
	for i := 9; i < len(frame); i++ {
		assert.Zero(t, frame[i])
	}

	// brightness=0 scales every channel to zero wire bits
	dark := encodeFrame([]Color{White, White}, 0)
	require.Equal(t, 18+latchBytes, len(dark))
	for i := 0; i < 18; i += 3 {
		assert.Equal(t, zero, dark[i:i+3])
	}
}
