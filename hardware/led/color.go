package led

import "fmt"

// Color is a packed 0xRRGGBB value. The white channel of RGBW strips is
// not driven, four-color hardware renders these as RGB.
type Color uint32

func RGB(r, g, b uint8) Color {
	return Color(uint32(r)<<16 | uint32(g)<<8 | uint32(b))
}

func (c Color) R() uint8 { return uint8(c >> 16) }
func (c Color) G() uint8 { return uint8(c >> 8) }
func (c Color) B() uint8 { return uint8(c) }

func (c Color) String() string { return fmt.Sprintf("%06x", uint32(c)) }

// Scale multiplies each channel by (level+1)/256.
// level=255 is identity, level=0 extinguishes every channel.
func (c Color) Scale(level uint8) Color {
	m := uint32(level) + 1
	r := (uint32(c.R()) * m) >> 8
	g := (uint32(c.G()) * m) >> 8
	b := (uint32(c.B()) * m) >> 8
	return Color(r<<16 | g<<8 | b)
}

const (
	Black   Color = 0x000000
	Red     Color = 0xff0000
	Orange  Color = 0xff6000
	Yellow  Color = 0xffd000
	Green   Color = 0x00ff00
	Cyan    Color = 0x00ffff
	Blue    Color = 0x0000ff
	Purple  Color = 0x8000ff
	Magenta Color = 0xff00ff
	Cream   Color = 0xffdda0
	White   Color = 0xffffff
	DarkRed Color = 0x600000
)
