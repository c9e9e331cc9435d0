package state

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/ivarc/trinkey-indicator/log2"
)

func TestReadConfig(t *testing.T) {
	t.Parallel()

	type Case struct {
		name  string
		input string
		check func(testing.TB, context.Context)
	}
	cases := []Case{
		{"defaults", "", func(t testing.TB, ctx context.Context) {
			c := GetGlobal(ctx).Config
			assert.Equal(t, 4, c.Hardware.Led.Pixels)
			assert.Equal(t, 500, c.Hardware.Touch.Threshold)
			assert.Equal(t, 10, c.Hardware.Touch.Oversample)
			assert.Equal(t, 9600, c.Hardware.Uart.Baud)
			assert.Equal(t, 100, c.Indicator.TickMs)
			assert.Equal(t, 20, c.Indicator.Brightness)
			assert.Equal(t, 5, c.Alsa.SampleSec)
		}},

		{"uart",
			`hardware { uart { device = "/dev/shmoo" baud = 115200 } }`,
			func(t testing.TB, ctx context.Context) {
				c := GetGlobal(ctx).Config
				assert.Equal(t, "/dev/shmoo", c.Hardware.Uart.Device)
				assert.Equal(t, 115200, c.Hardware.Uart.Baud)
			},
		},

		{"led-touch",
			`hardware {
				led { spi_bus = "SPI0.0" pixels = 8 }
				touch { chip = "/dev/gpiochip0" down_line = 23 up_line = 24 threshold = 700 }
			}`,
			func(t testing.TB, ctx context.Context) {
				c := GetGlobal(ctx).Config
				assert.Equal(t, "SPI0.0", c.Hardware.Led.SpiBus)
				assert.Equal(t, 8, c.Hardware.Led.Pixels)
				assert.Equal(t, 23, c.Hardware.Touch.DownLine)
				assert.Equal(t, 24, c.Hardware.Touch.UpLine)
				assert.Equal(t, 700, c.Hardware.Touch.Threshold)
			},
		},

		{"tele",
			`tele {
				enable = true
				device_name = "living-room"
				mqtt_broker = "tcp://127.0.0.1:1883"
				persist_path = "/tmp/tele"
			}`,
			func(t testing.TB, ctx context.Context) {
				c := GetGlobal(ctx).Config
				assert.True(t, c.Tele.Enable)
				assert.Equal(t, "living-room", c.Tele.DeviceName)
				assert.Equal(t, "tcp://127.0.0.1:1883", c.Tele.MqttBroker)
			},
		},

		{"indicator",
			`indicator { tick_ms = 50 brightness = 40 }`,
			func(t testing.TB, ctx context.Context) {
				c := GetGlobal(ctx).Config
				assert.Equal(t, 50, c.Indicator.TickMs)
				assert.Equal(t, 40, c.Indicator.Brightness)
			},
		},
	}
	for _, c := range cases {
		c := c
		t.Run(c.name, func(t *testing.T) {
			ctx, _ := NewTestContext(t, c.input)
			c.check(t, ctx)
		})
	}
}

func TestConfigInclude(t *testing.T) {
	t.Parallel()

	fs := NewMockFullReader(map[string]string{
		"base": `
include "extra" {}
hardware { uart { device = "/dev/base" } }`,
		"extra": `hardware { uart { baud = 57600 } }`,
	})
	cfg := MustReadConfig(log2.NewTest(t, log2.LDebug), fs, "base")
	assert.Equal(t, "/dev/base", cfg.Hardware.Uart.Device)
	assert.Equal(t, 57600, cfg.Hardware.Uart.Baud)
}
