// Package shutdown ties process lifetime to termination signals.
package shutdown

import (
	"context"
	"os/signal"
	"syscall"
)

// NotifyContext returns a context cancelled on SIGINT or SIGTERM.
func NotifyContext(parent context.Context) (context.Context, context.CancelFunc) {
	return signal.NotifyContext(parent, syscall.SIGINT, syscall.SIGTERM)
}
