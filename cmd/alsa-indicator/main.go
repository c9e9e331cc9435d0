// Host-side daemon: watches ALSA for the playing sample rate and bit
// depth, sends the encoded value to the indicator over serial, and
// optionally publishes it over MQTT.
package main

import (
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/coreos/go-systemd/daemon"
	"github.com/juju/errors"

	"github.com/ivarc/trinkey-indicator/helpers"
	"github.com/ivarc/trinkey-indicator/internal/alsa"
	"github.com/ivarc/trinkey-indicator/internal/state"
	"github.com/ivarc/trinkey-indicator/internal/tele"
	"github.com/ivarc/trinkey-indicator/log2"
)

var log = log2.NewStderr(log2.LInfo)

func main() {
	flagConfig := flag.String("config", "alsa-indicator.hcl", "")
	flagDebug := flag.Bool("debug", false, "")
	flag.Parse()

	if sdnotify("STATUS=init") {
		log.SetFlags(log2.LServiceFlags)
	} else {
		log.SetFlags(log2.LInteractiveFlags)
	}
	if *flagDebug {
		log.SetLevel(log2.LDebug)
	}

	ctx, g := state.NewContext(log, tele.New())
	cfg := state.MustReadConfig(log, state.NewOsFullReader(), *flagConfig)
	g.MustInit(ctx, cfg)

	port, err := g.Uart()
	if err != nil {
		log.Fatal(errors.ErrorStack(err))
	}
	watcher := alsa.NewWatcher(log, cfg.Alsa.Root)
	samplePeriod := helpers.IntSecondDefault(cfg.Alsa.SampleSec, 5*time.Second)

	g.Alive.Add(1)
	go func() {
		defer g.Alive.Done()
		stopCh := g.Alive.StopChan()
		t := time.NewTicker(samplePeriod)
		defer t.Stop()
		lastCode := -1
		for {
			st := watcher.Poll()
			code := st.Code()
			// write every period like the indicator expects,
			// telemetry only on change
			if _, err := port.Write([]byte(fmt.Sprintf("%d\n", code))); err != nil {
				g.Error(errors.Annotate(err, "serial write"))
			}
			if code != lastCode {
				log.Infof("rate=%d depth=%d code=%d", st.SampleRate, st.BitDepth, code)
				g.Tele.State(tele.Status{
					Code:       code,
					SampleRate: st.SampleRate,
					BitDepth:   st.BitDepth,
				})
				lastCode = code
			}
			select {
			case <-t.C:
			case <-stopCh:
				return
			}
		}
	}()
	sdnotify(daemon.SdNotifyReady)
	log.Infof("alsa-indicator running root=%s period=%s", cfg.Alsa.Root, samplePeriod)

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	<-sigCh
	log.Infof("stopping")
	sdnotify(daemon.SdNotifyStopping)
	g.Stop()
	g.Alive.Wait()
	g.Tele.Close()
	port.Close()
}

func sdnotify(s string) bool {
	ok, err := daemon.SdNotify(false, s)
	if err != nil {
		log.Fatal("sdnotify: ", errors.ErrorStack(err))
	}
	return ok
}
