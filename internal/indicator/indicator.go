// Package indicator is the device-side control loop: serial code in,
// palette colors out to the LED strip, touch pads trim brightness.
package indicator

import (
	"bytes"
	"math"
	"strconv"
	"sync/atomic"
	"time"

	"github.com/juju/errors"
	"github.com/temoto/alive/v2"

	"github.com/ivarc/trinkey-indicator/hardware/led"
	"github.com/ivarc/trinkey-indicator/hardware/touch"
	"github.com/ivarc/trinkey-indicator/hardware/uart"
	"github.com/ivarc/trinkey-indicator/helpers/atomic_clock"
	"github.com/ivarc/trinkey-indicator/log2"
)

const (
	DefaultTick        = 100 * time.Millisecond
	DefaultReadTimeout = 50 * time.Millisecond
	DefaultThreshold   = 500
	DefaultBrightness  = 20
)

type Options struct { //nolint:maligned
	Strip       led.Strip
	Port        uart.Porter
	TouchDown   touch.Sensor // over threshold: brightness -1 per tick
	TouchUp     touch.Sensor // over threshold: brightness +1 per tick
	Threshold   int32
	Tick        time.Duration
	ReadTimeout time.Duration
	Brightness  uint8
}

// Core owns the whole display state: last decoded code and brightness.
// Exactly one goroutine runs Tick, other goroutines only read through
// the atomic getters.
type Core struct {
	Log         *log2.Log
	strip       led.Strip
	port        uart.Porter
	touchDown   touch.Sensor
	touchUp     touch.Sensor
	threshold   int32
	tick        time.Duration
	readTimeout time.Duration
	brightness  int32
	lastCode    int32
	lastInputAt *atomic_clock.Clock
}

func NewCore(log *log2.Log, opt Options) *Core {
	if opt.Strip == nil || opt.Port == nil || opt.TouchDown == nil || opt.TouchUp == nil {
		panic("code error indicator.NewCore() nil hardware")
	}
	self := &Core{
		Log:         log,
		strip:       opt.Strip,
		port:        opt.Port,
		touchDown:   opt.TouchDown,
		touchUp:     opt.TouchUp,
		threshold:   opt.Threshold,
		tick:        opt.Tick,
		readTimeout: opt.ReadTimeout,
		brightness:  int32(opt.Brightness),
		lastInputAt: atomic_clock.New(0),
	}
	if self.threshold == 0 {
		self.threshold = DefaultThreshold
	}
	if self.tick == 0 {
		self.tick = DefaultTick
	}
	if self.readTimeout == 0 {
		self.readTimeout = DefaultReadTimeout
	}
	return self
}

// Run paints the initial state and ticks until stop.
func (self *Core) Run(a *alive.Alive) {
	defer a.Done()
	self.strip.SetBrightness(self.Brightness())
	self.Render()

	stopCh := a.StopChan()
	t := time.NewTicker(self.tick)
	defer t.Stop()
	for {
		self.Tick()
		select {
		case <-t.C:
		case <-stopCh:
			return
		}
	}
}

// Tick is one polling cycle: serial first, then both touch channels
// unconditionally.
func (self *Core) Tick() {
	self.pollSerial()
	self.pollTouch()
}

func (self *Core) Brightness() uint8 { return uint8(atomic.LoadInt32(&self.brightness)) }
func (self *Core) LastCode() int     { return int(atomic.LoadInt32(&self.lastCode)) }

// LastInputAge returns time since the last decoded code, 0 before any.
func (self *Core) LastInputAge() time.Duration {
	if self.lastInputAt.IsZero() {
		return 0
	}
	return atomic_clock.Since(self.lastInputAt)
}

// Render repaints the strip from the current state. Safe to call
// repeatedly, unchanged state produces identical output.
func (self *Core) Render() {
	bitIndex, rateIndex := SplitCode(self.LastCode())
	self.strip.SetPixel(0, BitDepthColor(bitIndex))
	self.strip.Fill(SampleRateColor(rateIndex), 1, self.strip.NumPixels()-1)
	if err := self.strip.Refresh(); err != nil {
		self.Log.Error(errors.Annotate(err, "indicator render"))
	}
}

func (self *Core) pollSerial() {
	pending, err := self.port.Pending()
	if err != nil {
		self.Log.Error(errors.Annotate(err, "indicator serial"))
		return
	}
	if pending == 0 {
		return
	}
	token, err := self.port.ReadToken('\n', self.readTimeout)
	if err != nil {
		self.Log.Error(errors.Annotate(err, "indicator serial"))
		return
	}
	code := decode(token)
	atomic.StoreInt32(&self.lastCode, int32(code))
	self.lastInputAt.SetNow()
	self.Log.Debugf("indicator code=%d token='%s'", code, string(token))
	self.Render()
}

func (self *Core) pollTouch() {
	// not exclusive: both pads held in one tick cancel out
	if self.over(self.touchDown) {
		self.adjustBrightness(-1)
	}
	if self.over(self.touchUp) {
		self.adjustBrightness(+1)
	}
}

func (self *Core) over(s touch.Sensor) bool {
	v, err := s.Measure()
	if err != nil {
		self.Log.Error(errors.Annotatef(err, "indicator %s", s.String()))
		return false
	}
	return v > self.threshold
}

func (self *Core) adjustBrightness(delta int32) {
	b := atomic.LoadInt32(&self.brightness) + delta
	if b < 0 {
		b = 0
	} else if b > 255 {
		b = 255
	}
	atomic.StoreInt32(&self.brightness, b)
	self.strip.SetBrightness(uint8(b))
	self.Render()
}

// decode is deliberately permissive: anything that does not parse as a
// non-negative decimal integer becomes code 0 (blank display). Codes
// beyond int32 clamp instead of wrapping, they stay deep in sentinel
// territory for both palettes.
func decode(token []byte) int {
	token = bytes.TrimSpace(token)
	code, err := strconv.Atoi(string(token))
	if err != nil {
		// ErrRange keeps the sign, a huge valid integer is an
		// overflow code, not garbage
		if ne, ok := err.(*strconv.NumError); !ok || ne.Err != strconv.ErrRange {
			return 0
		}
	}
	if code < 0 {
		return 0
	}
	if code > math.MaxInt32 {
		code = math.MaxInt32
	}
	return code
}
