package indicator

import "github.com/ivarc/trinkey-indicator/hardware/led"

// Wire code packs both palette indexes: code = rate_index*8 + bit_index.
// The host encoder only produces bit_index 0..4 and rate_index 0..9, but
// the link is text typed by anything, so both lookups clamp to the last
// palette entry instead of trusting the arithmetic.

const BitIndexMod = 8

var sampleRateColors = [10]led.Color{
	led.Black,   // 0 no audio
	led.Red,     // 1 44.1k
	led.Orange,  // 2 48k
	led.Yellow,  // 3 88.2k
	led.Green,   // 4 96k
	led.Cyan,    // 5 176.4k
	led.Blue,    // 6 192k
	led.Purple,  // 7 352.8k
	led.Magenta, // 8 384k
	led.Cream,   // 9 unknown rate sentinel
}

var bitDepthColors = [5]led.Color{
	led.Black,   // 0 no audio
	led.Red,     // 1 16 bit
	led.Green,   // 2 24 bit
	led.White,   // 3 32 bit
	led.DarkRed, // 4 unknown depth sentinel
}

// SampleRateColor returns the palette entry for index i,
// the sentinel for any index outside the table.
func SampleRateColor(i int) led.Color {
	if i < 0 || i >= len(sampleRateColors) {
		return sampleRateColors[len(sampleRateColors)-1]
	}
	return sampleRateColors[i]
}

// BitDepthColor returns the palette entry for index i,
// the sentinel for any index outside the table. Indexes 5..7 are
// reachable from the mod 8 split and land on the sentinel too.
func BitDepthColor(i int) led.Color {
	if i < 0 || i >= len(bitDepthColors) {
		return bitDepthColors[len(bitDepthColors)-1]
	}
	return bitDepthColors[i]
}

// SplitCode decomposes a wire code into palette indexes.
func SplitCode(code int) (bitIndex, rateIndex int) {
	if code < 0 {
		code = 0
	}
	return code % BitIndexMod, code / BitIndexMod
}
