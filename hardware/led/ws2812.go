package led

import (
	"sync"

	"github.com/ivarc/trinkey-indicator/log2"
	"github.com/juju/errors"
	"periph.io/x/periph/conn/physic"
	"periph.io/x/periph/conn/spi"
	"periph.io/x/periph/conn/spi/spireg"
	"periph.io/x/periph/host"
)

const modName string = "ws2812"

// WS2812 wants 800kHz NRZ. At 2.4MHz SPI each strip bit becomes 3 wire
// bits: 0 -> 100, 1 -> 110. 24 color bits = 9 SPI bytes per pixel.
const spiSpeed = 2400 * physic.KiloHertz

// Strip latches on >=50us of idle low; 30 zero bytes at 2.4Mbps is 100us.
const latchBytes = 30

type WS2812 struct { //nolint:maligned
	Log        *log2.Log
	mu         sync.Mutex
	spiPort    spi.PortCloser
	spiConn    spi.Conn
	colors     []Color
	brightness uint8
}

var _ Strip = &WS2812{}

func NewWS2812(bus string, numPixels int, log *log2.Log) (*WS2812, error) {
	if numPixels <= 0 {
		return nil, errors.NotValidf("%s pixels=%d", modName, numPixels)
	}
	if _, err := host.Init(); err != nil {
		return nil, errors.Annotate(err, "periph/init")
	}
	spiPort, err := spireg.Open(bus)
	if err != nil {
		return nil, errors.Annotatef(err, "%s SPI open bus=%s", modName, bus)
	}
	spiConn, err := spiPort.Connect(spiSpeed, spi.Mode0, 8)
	if err != nil {
		spiPort.Close()
		return nil, errors.Annotatef(err, "%s SPI connect bus=%s", modName, bus)
	}
	self := &WS2812{
		Log:        log,
		spiPort:    spiPort,
		spiConn:    spiConn,
		colors:     make([]Color, numPixels),
		brightness: 255,
	}
	return self, nil
}

func (self *WS2812) NumPixels() int {
	return len(self.colors)
}

func (self *WS2812) SetPixel(i int, c Color) {
	self.mu.Lock()
	defer self.mu.Unlock()
	if i < 0 || i >= len(self.colors) {
		self.Log.Errorf("%s SetPixel out of range i=%d pixels=%d", modName, i, len(self.colors))
		return
	}
	self.colors[i] = c
}

func (self *WS2812) Fill(c Color, start, count int) {
	self.mu.Lock()
	defer self.mu.Unlock()
	for i := start; i < start+count; i++ {
		if i < 0 || i >= len(self.colors) {
			continue
		}
		self.colors[i] = c
	}
}

func (self *WS2812) SetBrightness(level uint8) {
	self.mu.Lock()
	defer self.mu.Unlock()
	self.brightness = level
}

func (self *WS2812) Refresh() error {
	self.mu.Lock()
	frame := encodeFrame(self.colors, self.brightness)
	self.mu.Unlock()
	if err := self.spiConn.Tx(frame, nil); err != nil {
		return errors.Annotatef(err, "%s refresh", modName)
	}
	return nil
}

func (self *WS2812) Close() error {
	return self.spiPort.Close()
}

// encodeFrame expands scaled GRB pixel bytes into the 3x SPI bitstream
// plus latch tail.
func encodeFrame(colors []Color, brightness uint8) []byte {
	buf := make([]byte, 0, len(colors)*9+latchBytes)
	for _, c := range colors {
		s := c.Scale(brightness)
		buf = appendByte3x(buf, s.G())
		buf = appendByte3x(buf, s.R())
		buf = appendByte3x(buf, s.B())
	}
	for i := 0; i < latchBytes; i++ {
		buf = append(buf, 0)
	}
	return buf
}

func appendByte3x(buf []byte, b byte) []byte {
	var acc uint32
	nbits := uint(0)
	for i := 7; i >= 0; i-- {
		if b&(1<<uint(i)) != 0 {
			acc = acc<<3 | 0b110
		} else {
			acc = acc<<3 | 0b100
		}
		nbits += 3
		for nbits >= 8 {
			nbits -= 8
			buf = append(buf, byte(acc>>nbits))
		}
	}
	return buf
}
