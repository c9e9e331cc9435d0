package indicator

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/ivarc/trinkey-indicator/hardware/led"
)

func TestSplitCode(t *testing.T) {
	t.Parallel()

	for code := 0; code < 1000; code++ {
		bitIndex, rateIndex := SplitCode(code)
		assert.Equal(t, code%8, bitIndex)
		assert.Equal(t, code/8, rateIndex)
	}

	// negative input collapses to zero, same as a parse failure
	bitIndex, rateIndex := SplitCode(-3)
	assert.Zero(t, bitIndex)
	assert.Zero(t, rateIndex)
}

func TestPaletteClamp(t *testing.T) {
	t.Parallel()

	assert.Equal(t, led.Black, BitDepthColor(0))
	assert.Equal(t, led.Red, BitDepthColor(1))
	assert.Equal(t, led.DarkRed, BitDepthColor(4))
	// 5..7 come out of the mod 8 split, must hit the sentinel
	for i := 5; i <= 7; i++ {
		assert.Equal(t, led.DarkRed, BitDepthColor(i), "bit index %d", i)
	}
	assert.Equal(t, led.DarkRed, BitDepthColor(-1))

	assert.Equal(t, led.Black, SampleRateColor(0))
	assert.Equal(t, led.Orange, SampleRateColor(2))
	assert.Equal(t, led.Cream, SampleRateColor(9))
	for _, i := range []int{10, 99, 100000, -5} {
		assert.Equal(t, led.Cream, SampleRateColor(i), "rate index %d", i)
	}
}
