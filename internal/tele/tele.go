// Package tele publishes indicator status over MQTT, optional.
// Messages go through an on-disk queue so a broker outage loses nothing.
package tele

import (
	"context"
	"time"

	"github.com/juju/errors"
	"github.com/temoto/alive/v2"
	"github.com/temoto/spq"

	tele_config "github.com/ivarc/trinkey-indicator/internal/tele/config"
	"github.com/ivarc/trinkey-indicator/log2"
)

const DefaultNetworkTimeout = 30 * time.Second

const retryDelay = 5 * time.Second

type tele struct {
	config    tele_config.Config
	log       *log2.Log
	transport Transporter
	q         *spq.Queue
	alive     *alive.Alive
}

func New() Teler { return &tele{} }

// NewWithTransporter is the test entry point.
func NewWithTransporter(trans Transporter) Teler {
	return &tele{transport: trans}
}

func (self *tele) Init(ctx context.Context, log *log2.Log, cfg tele_config.Config) error {
	self.config = cfg
	self.log = log
	if self.config.LogDebug {
		self.log.SetLevel(log2.LDebug)
	}
	if !self.config.Enable {
		return nil
	}
	if self.config.PersistPath == "" {
		return errors.NotValidf("tele config: persist_path empty")
	}

	if self.transport == nil { // production path
		self.transport = &transportMqtt{}
	}
	if err := self.transport.Init(ctx, log, cfg); err != nil {
		return errors.Annotate(err, "tele transport")
	}

	var err error
	self.q, err = spq.Open(self.config.PersistPath)
	if err != nil {
		return errors.Annotate(err, "tele queue")
	}
	self.alive = alive.NewAlive()
	self.alive.Add(1)
	go self.qworker()
	return nil
}

func (self *tele) State(s Status) {
	if self.q == nil {
		return
	}
	if err := self.q.Push(s.Payload()); err != nil {
		self.log.Errorf("tele push err=%v", err)
	}
}

func (self *tele) Close() {
	if self.q == nil {
		return
	}
	self.alive.Stop()
	self.q.Close()
	self.alive.Wait()
	self.transport.Close()
}

func (self *tele) qworker() {
	defer self.alive.Done()
	stopCh := self.alive.StopChan()
	for {
		box, err := self.q.Peek()
		switch err {
		case nil:
			if self.transport.SendState(box.Bytes()) {
				if err = self.q.Delete(box); err != nil {
					self.log.Errorf("tele queue delete err=%v", err)
				}
				continue
			}
			// nack, try again later, newer state first
			if err = self.q.DeletePush(box); err != nil {
				self.log.Errorf("tele queue requeue err=%v", err)
			}
			select {
			case <-time.After(retryDelay):
			case <-stopCh:
				return
			}

		case spq.ErrClosed:
			return

		default:
			self.log.Errorf("CRITICAL tele queue err=%v", err)
			return
		}
	}
}
