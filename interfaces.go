package go_payhost

import (
	"context"

	"github.com/stremovskyy/go-payhost/log"
)

// PayHost is the main SDK interface.
type PayHost interface {
	Payments() *PaymentService
	PreAuth() *PreAuthService

	Execute(ctx context.Context, p *Payload, runOpts ...RunOption) (*Result, error)
	Sign(body []byte) (string, error)

	SetLogLevel(level log.Level)
}

var _ PayHost = (*Client)(nil)
