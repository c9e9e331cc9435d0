package state

import (
	"context"
	"fmt"
	"sync"

	"github.com/juju/errors"
	"github.com/temoto/alive/v2"

	"github.com/ivarc/trinkey-indicator/hardware/led"
	"github.com/ivarc/trinkey-indicator/hardware/touch"
	"github.com/ivarc/trinkey-indicator/hardware/uart"
	"github.com/ivarc/trinkey-indicator/internal/tele"
	"github.com/ivarc/trinkey-indicator/log2"
)

type Global struct {
	Alive    *alive.Alive
	Config   *Config
	Hardware struct {
		// These may only be preset by NewTestContext, production code
		// goes through the lazy accessors.
		Strip     led.Strip
		TouchDown touch.Sensor
		TouchUp   touch.Sensor
		Uart      uart.Porter
	}
	Log  *log2.Log
	Tele tele.Teler

	initStripOnce sync.Once
	initTouchOnce sync.Once
	initUartOnce  sync.Once
}

const ContextKey = "run/state-global"

func GetGlobal(ctx context.Context) *Global {
	v := ctx.Value(ContextKey)
	if v == nil {
		panic(fmt.Sprintf("context['%s'] is nil", ContextKey))
	}
	if g, ok := v.(*Global); ok {
		return g
	}
	panic(fmt.Sprintf("context['%s'] expected type *Global actual=%#v", ContextKey, v))
}

func NewContext(log *log2.Log, teler tele.Teler) (context.Context, *Global) {
	if log == nil {
		panic("code error NewContext() log=nil")
	}

	g := &Global{
		Alive: alive.NewAlive(),
		Log:   log,
		Tele:  teler,
	}
	ctx := context.Background()
	ctx = context.WithValue(ctx, ContextKey, g)
	return ctx, g
}

// If Init fails, consider Global is in broken state.
func (g *Global) Init(ctx context.Context, cfg *Config) error {
	g.Config = cfg

	if g.Config.Hardware.Led.Pixels == 0 {
		g.Config.Hardware.Led.Pixels = 4
	}
	if g.Config.Hardware.Touch.Threshold == 0 {
		g.Config.Hardware.Touch.Threshold = 500
	}
	if g.Config.Hardware.Touch.Oversample == 0 {
		g.Config.Hardware.Touch.Oversample = 10
	}
	if g.Config.Hardware.Uart.Baud == 0 {
		g.Config.Hardware.Uart.Baud = 9600
	}
	if g.Config.Indicator.TickMs == 0 {
		g.Config.Indicator.TickMs = 100
	}
	if g.Config.Indicator.Brightness == 0 {
		g.Config.Indicator.Brightness = 20
	}
	if g.Config.Indicator.Brightness > 255 {
		return errors.NotValidf("config: indicator.brightness=%d", g.Config.Indicator.Brightness)
	}
	if g.Config.Alsa.SampleSec == 0 {
		g.Config.Alsa.SampleSec = 5
	}

	if err := g.Tele.Init(ctx, g.Log, g.Config.Tele); err != nil {
		return errors.Annotate(err, "tele init")
	}
	return nil
}

func (g *Global) MustInit(ctx context.Context, cfg *Config) {
	err := g.Init(ctx, cfg)
	if err != nil {
		g.Log.Fatal(errors.ErrorStack(err))
	}
}

func (g *Global) Error(err error, args ...interface{}) {
	if err != nil {
		if len(args) != 0 {
			msg := args[0].(string)
			args = args[1:]
			err = errors.Annotatef(err, msg, args...)
		}
		g.Log.Errorf(errors.ErrorStack(err))
	}
}

func (g *Global) Stop() {
	g.Alive.Stop()
}
