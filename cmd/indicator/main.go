// Device-side daemon: drives the LED strip from serial codes and touch
// pads. See cmd/alsa-indicator for the host side.
package main

import (
	"flag"
	"os"
	"os/signal"
	"syscall"

	"github.com/coreos/go-systemd/daemon"
	"github.com/juju/errors"

	"github.com/ivarc/trinkey-indicator/helpers"
	"github.com/ivarc/trinkey-indicator/internal/indicator"
	"github.com/ivarc/trinkey-indicator/internal/state"
	"github.com/ivarc/trinkey-indicator/internal/tele"
	"github.com/ivarc/trinkey-indicator/log2"
)

var log = log2.NewStderr(log2.LInfo)

func main() {
	flagConfig := flag.String("config", "indicator.hcl", "")
	flagDebug := flag.Bool("debug", false, "")
	flag.Parse()

	if sdnotify("STATUS=init") {
		// under systemd, journal adds timestamps
		log.SetFlags(log2.LServiceFlags)
	} else {
		log.SetFlags(log2.LInteractiveFlags)
	}
	if *flagDebug {
		log.SetLevel(log2.LDebug)
	}

	ctx, g := state.NewContext(log, tele.NewStub())
	cfg := state.MustReadConfig(log, state.NewOsFullReader(), *flagConfig)
	g.MustInit(ctx, cfg)
	log.Debugf("config=%+v", cfg)

	strip, err := g.Strip()
	if err != nil {
		log.Fatal(errors.ErrorStack(err))
	}
	touchDown, touchUp, err := g.TouchSensors()
	if err != nil {
		log.Fatal(errors.ErrorStack(err))
	}
	port, err := g.Uart()
	if err != nil {
		log.Fatal(errors.ErrorStack(err))
	}

	core := indicator.NewCore(log, indicator.Options{
		Strip:       strip,
		Port:        port,
		TouchDown:   touchDown,
		TouchUp:     touchUp,
		Threshold:   int32(cfg.Hardware.Touch.Threshold),
		Tick:        helpers.IntMillisecondDefault(cfg.Indicator.TickMs, indicator.DefaultTick),
		ReadTimeout: helpers.IntMillisecondDefault(cfg.Indicator.ReadTimeoutMs, indicator.DefaultReadTimeout),
		Brightness:  uint8(cfg.Indicator.Brightness),
	})

	g.Alive.Add(1)
	go core.Run(g.Alive)
	sdnotify(daemon.SdNotifyReady)
	log.Infof("indicator running pixels=%d device=%s", cfg.Hardware.Led.Pixels, cfg.Hardware.Uart.Device)

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	<-sigCh
	log.Infof("stopping")
	sdnotify(daemon.SdNotifyStopping)
	g.Stop()
	g.Alive.Wait()
	strip.Close()
	port.Close()
}

func sdnotify(s string) bool {
	ok, err := daemon.SdNotify(false, s)
	if err != nil {
		log.Fatal("sdnotify: ", errors.ErrorStack(err))
	}
	return ok
}
