package agentdir

import (
	"context"
	"fmt"
	"time"
)

// defaultProbeInterval matches the cadence the front-end uses while waiting
// for the third-party widget script to attach itself.
const defaultProbeInterval = 300 * time.Millisecond

// WaitReady polls probe until it reports ready or the context expires. The
// embedded widget script loads outside our control, so readiness has to be
// observed rather than awaited; the context bounds the wait and turns an
// unready widget into an explicit error instead of an endless poll.
func WaitReady(ctx context.Context, interval time.Duration, probe func() bool) error {
	if interval <= 0 {
		interval = defaultProbeInterval
	}

	if probe() {
		return nil
	}

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return fmt.Errorf("widget runtime not ready: %w", ctx.Err())
		case <-ticker.C:
			if probe() {
				return nil
			}
		}
	}
}
