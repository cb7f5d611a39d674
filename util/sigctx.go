package util

import (
	"context"
	"os"
	"os/signal"
)

// SignalContext returns a context which is canceled when any of the given
// signals is received. Calling the returned cancel func releases the signal
// handler.
func SignalContext(ctx context.Context, sigs ...os.Signal) (context.Context, context.CancelFunc) {
	sch := make(chan os.Signal, 1)
	sub, cancel := context.WithCancel(ctx)
	signal.Notify(sch, sigs...)

	go func() {
		defer signal.Stop(sch)
		select {
		case <-sub.Done():
		case <-sch:
			cancel()
		}
	}()

	return sub, cancel
}
