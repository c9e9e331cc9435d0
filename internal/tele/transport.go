package tele

import (
	"context"

	tele_config "github.com/ivarc/trinkey-indicator/internal/tele/config"
	"github.com/ivarc/trinkey-indicator/log2"
)

// Transporter contract:
// - Init fails only with invalid config, ignores network errors
// - SendState delivers within timeout or returns false, caller retries
// - assume worst network quality: loss, reorder, duplicates
type Transporter interface {
	Init(ctx context.Context, log *log2.Log, cfg tele_config.Config) error
	SendState(payload []byte) bool
	Close()
}
