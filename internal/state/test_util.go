package state

import (
	"context"
	"testing"

	"github.com/ivarc/trinkey-indicator/hardware/led"
	"github.com/ivarc/trinkey-indicator/hardware/touch"
	"github.com/ivarc/trinkey-indicator/hardware/uart"
	"github.com/ivarc/trinkey-indicator/internal/tele"
	"github.com/ivarc/trinkey-indicator/log2"
)

func NewTestContext(t testing.TB, confString string) (context.Context, *Global) {
	fs := NewMockFullReader(map[string]string{
		"test-inline": confString,
	})

	log := log2.NewTest(t, log2.LDebug)
	log.SetFlags(log2.LTestFlags)
	ctx, g := NewContext(log, tele.NewStub())

	cfg := MustReadConfig(log, fs, "test-inline")
	if cfg.Hardware.Led.Pixels == 0 {
		cfg.Hardware.Led.Pixels = 4
	}
	g.Hardware.Strip = led.NewMockStrip(cfg.Hardware.Led.Pixels)
	g.Hardware.TouchDown = touch.NewMockSensor("touch1", 0)
	g.Hardware.TouchUp = touch.NewMockSensor("touch2", 0)
	g.Hardware.Uart = uart.NewMockPort()
	g.MustInit(ctx, cfg)

	return ctx, g
}
