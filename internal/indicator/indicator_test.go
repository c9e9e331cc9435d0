package indicator

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ivarc/trinkey-indicator/hardware/led"
	"github.com/ivarc/trinkey-indicator/hardware/touch"
	"github.com/ivarc/trinkey-indicator/hardware/uart"
	"github.com/ivarc/trinkey-indicator/log2"
)

type testEnv struct {
	core  *Core
	strip *led.MockStrip
	port  *uart.MockPort
	down  *touch.MockSensor
	up    *touch.MockSensor
}

func newTestEnv(t testing.TB) *testEnv {
	env := &testEnv{
		strip: led.NewMockStrip(4),
		port:  uart.NewMockPort(),
		down:  touch.NewMockSensor("touch1", 0),
		up:    touch.NewMockSensor("touch2", 0),
	}
	env.core = NewCore(log2.NewTest(t, log2.LDebug), Options{
		Strip:      env.strip,
		Port:       env.port,
		TouchDown:  env.down,
		TouchUp:    env.up,
		Brightness: DefaultBrightness,
	})
	env.strip.SetBrightness(env.core.Brightness())
	return env
}

func (env *testEnv) feedTick(s string) {
	env.port.Feed(s)
	env.core.Tick()
}

func TestDecodeZeroToken(t *testing.T) {
	t.Parallel()

	env := newTestEnv(t)
	env.feedTick("0\n")
	assert.Equal(t, 0, env.core.LastCode())
	assert.Equal(t, []led.Color{led.Black, led.Black, led.Black, led.Black}, env.strip.Colors())
}

func TestDecodeCode17(t *testing.T) {
	t.Parallel()

	// 17 = rate 2 (48k orange) * 8 + depth 1 (16bit red)
	env := newTestEnv(t)
	env.feedTick("17\n")
	assert.Equal(t, 17, env.core.LastCode())
	assert.Equal(t, []led.Color{led.Red, led.Orange, led.Orange, led.Orange}, env.strip.Colors())
	assert.True(t, env.core.LastInputAge() >= 0)
}

func TestDecodeGarbage(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name  string
		token string
		code  int
	}{
		{"empty", "\n", 0},
		{"alpha", "banana\n", 0},
		{"negative", "-7\n", 0},
		{"spaces", "  33 \n", 33},
		{"overflow-rate", "99\n", 99},
	}
	for _, c := range cases {
		c := c
		t.Run(c.name, func(t *testing.T) {
			env := newTestEnv(t)
			env.feedTick(c.token)
			assert.Equal(t, c.code, env.core.LastCode())
		})
	}
}

func TestOverflowCodeHitsSentinels(t *testing.T) {
	t.Parallel()

	// 85 = rate 10 (beyond table) * 8 + depth 5 (hole in mod 8 range)
	env := newTestEnv(t)
	env.feedTick("85\n")
	colors := env.strip.Colors()
	assert.Equal(t, led.DarkRed, colors[0])
	for i := 1; i < 4; i++ {
		assert.Equal(t, led.Cream, colors[i])
	}
}

func TestHugeCodeClampsNotWraps(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name  string
		token string
	}{
		// 2^32+17 would read as 17 (48k/16bit) after int32 wraparound
		{"past-int32", "4294967313\n"},
		{"max-int32", "2147483647\n"},
		{"past-int64", "99999999999999999999\n"},
	}
	for _, c := range cases {
		c := c
		t.Run(c.name, func(t *testing.T) {
			env := newTestEnv(t)
			env.feedTick(c.token)
			colors := env.strip.Colors()
			assert.Equal(t, led.DarkRed, colors[0])
			for i := 1; i < 4; i++ {
				assert.Equal(t, led.Cream, colors[i])
			}
		})
	}
}

func TestRenderIdempotent(t *testing.T) {
	t.Parallel()

	env := newTestEnv(t)
	env.feedTick("17\n")
	before := env.strip.Colors()
	beforeB := env.strip.Brightness()

	env.core.Render()
	env.core.Render()
	assert.Equal(t, before, env.strip.Colors())
	assert.Equal(t, beforeB, env.strip.Brightness())
}

func TestBrightnessRampDown(t *testing.T) {
	t.Parallel()

	env := newTestEnv(t)
	env.down.SetReading(600)
	for i := 0; i < 5; i++ {
		env.core.Tick()
		assert.Equal(t, uint8(DefaultBrightness-1-i), env.strip.Brightness(), "tick %d", i)
	}
	assert.Equal(t, uint8(15), env.core.Brightness())
}

func TestBrightnessBothPadsCancel(t *testing.T) {
	t.Parallel()

	env := newTestEnv(t)
	for env.core.Brightness() > 10 {
		env.down.SetReading(600)
		env.core.Tick()
		env.down.SetReading(0)
	}
	require.Equal(t, uint8(10), env.core.Brightness())

	env.down.SetReading(600)
	env.up.SetReading(600)
	env.core.Tick()
	assert.Equal(t, uint8(10), env.core.Brightness())
}

func TestBrightnessClamp(t *testing.T) {
	t.Parallel()

	env := newTestEnv(t)
	env.down.SetReading(600)
	for i := 0; i < DefaultBrightness+10; i++ {
		env.core.Tick()
	}
	assert.Equal(t, uint8(0), env.core.Brightness())

	env.down.SetReading(0)
	env.up.SetReading(600)
	for i := 0; i < 300; i++ {
		env.core.Tick()
	}
	assert.Equal(t, uint8(255), env.core.Brightness())
}

func TestBrightnessThresholdIsLevelNotEdge(t *testing.T) {
	t.Parallel()

	env := newTestEnv(t)
	env.up.SetReading(500) // exactly at threshold, not over
	env.core.Tick()
	assert.Equal(t, uint8(DefaultBrightness), env.core.Brightness())

	env.up.SetReading(501)
	env.core.Tick()
	env.core.Tick()
	assert.Equal(t, uint8(DefaultBrightness+2), env.core.Brightness())
}

func TestTouchRerenderKeepsLastCode(t *testing.T) {
	t.Parallel()

	env := newTestEnv(t)
	env.feedTick("17\n")
	env.up.SetReading(600)
	env.core.Tick()
	// touch-triggered repaint must not blank the last color state
	assert.Equal(t, []led.Color{led.Red, led.Orange, led.Orange, led.Orange}, env.strip.Colors())
}

func TestBurstOneTokenPerTick(t *testing.T) {
	t.Parallel()

	env := newTestEnv(t)
	env.port.Feed("1\n2\n3\n")
	env.core.Tick()
	assert.Equal(t, 1, env.core.LastCode())
	env.core.Tick()
	assert.Equal(t, 2, env.core.LastCode())
	env.core.Tick()
	assert.Equal(t, 3, env.core.LastCode())
}

func TestSensorErrorIsAbsorbed(t *testing.T) {
	t.Parallel()

	env := newTestEnv(t)
	env.down.Err = fmt.Errorf("simulated touch failure")
	env.core.Tick()
	assert.Equal(t, uint8(DefaultBrightness), env.core.Brightness())
}
