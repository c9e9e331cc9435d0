package state

import (
	"github.com/juju/errors"

	"github.com/ivarc/trinkey-indicator/hardware/led"
	"github.com/ivarc/trinkey-indicator/hardware/touch"
	"github.com/ivarc/trinkey-indicator/hardware/uart"
)

func (g *Global) Strip() (led.Strip, error) {
	var err error
	g.initStripOnce.Do(func() {
		if g.Hardware.Strip != nil { // preset by test
			return
		}
		cfg := &g.Config.Hardware.Led
		var strip *led.WS2812
		strip, err = led.NewWS2812(cfg.SpiBus, cfg.Pixels, g.Log)
		if err != nil {
			err = errors.Annotatef(err, "config: led=%v", cfg)
			return
		}
		g.Hardware.Strip = strip
	})
	if err != nil {
		return nil, err
	}
	if g.Hardware.Strip == nil {
		return nil, errors.Errorf("code error Strip() init skipped")
	}
	return g.Hardware.Strip, nil
}

func (g *Global) TouchSensors() (down, up touch.Sensor, err error) {
	g.initTouchOnce.Do(func() {
		if g.Hardware.TouchDown != nil { // preset by test
			return
		}
		cfg := &g.Config.Hardware.Touch
		g.Hardware.TouchDown, err = touch.NewGpioSensor(cfg.Chip, uint32(cfg.DownLine), cfg.Oversample)
		if err != nil {
			err = errors.Annotatef(err, "config: touch=%v", cfg)
			return
		}
		g.Hardware.TouchUp, err = touch.NewGpioSensor(cfg.Chip, uint32(cfg.UpLine), cfg.Oversample)
		if err != nil {
			err = errors.Annotatef(err, "config: touch=%v", cfg)
			return
		}
	})
	if err != nil {
		return nil, nil, err
	}
	if g.Hardware.TouchDown == nil || g.Hardware.TouchUp == nil {
		return nil, nil, errors.Errorf("code error TouchSensors() init skipped")
	}
	return g.Hardware.TouchDown, g.Hardware.TouchUp, nil
}

func (g *Global) Uart() (uart.Porter, error) {
	var err error
	g.initUartOnce.Do(func() {
		if g.Hardware.Uart != nil { // preset by test
			return
		}
		cfg := &g.Config.Hardware.Uart
		port := uart.NewPort()
		if err = port.Open(cfg.Device, cfg.Baud); err != nil {
			err = errors.Annotatef(err, "config: uart=%v", cfg)
			return
		}
		g.Hardware.Uart = port
	})
	if err != nil {
		return nil, err
	}
	if g.Hardware.Uart == nil {
		return nil, errors.Errorf("code error Uart() init skipped")
	}
	return g.Hardware.Uart, nil
}
