package tele

import (
	"context"
	"fmt"
	"time"

	tele_config "github.com/ivarc/trinkey-indicator/internal/tele/config"
	"github.com/ivarc/trinkey-indicator/log2"
)

// Teler publishes indicator status to the outside world.
// Contract:
// - Init fails only with invalid config, network issues are ignored
// - State blocks at most for a disk write, delivery happens in background
// - Close blocks until queued messages are delivered or dropped
type Teler interface {
	Init(ctx context.Context, log *log2.Log, cfg tele_config.Config) error
	State(s Status)
	Close()
}

// Status is the payload: the wire code with its decoded components.
type Status struct {
	Code       int
	SampleRate int
	BitDepth   int
	Time       time.Time
}

func (s Status) Payload() []byte {
	t := s.Time
	if t.IsZero() {
		t = time.Now()
	}
	return []byte(fmt.Sprintf("code=%d rate=%d depth=%d time=%d",
		s.Code, s.SampleRate, s.BitDepth, t.Unix()))
}

// NewStub returns a Teler that swallows everything, for tests and for
// disabled telemetry.
func NewStub() Teler { return stub{} }

type stub struct{}

func (stub) Init(context.Context, *log2.Log, tele_config.Config) error { return nil }
func (stub) State(Status)                                              {}
func (stub) Close()                                                    {}
