// Package led drives a short addressable LED strip.
package led

// Strip is the consumer side of an addressable strip driver.
// Implementations buffer pixel state, hardware sees changes on Refresh.
type Strip interface {
	NumPixels() int
	SetPixel(i int, c Color)
	Fill(c Color, start, count int)
	SetBrightness(level uint8)
	Refresh() error
	Close() error
}
