package jobs

import (
	"context"
	"log"
	"time"

	"github.com/diegonavarro95/parkify/internal/app"
	"github.com/diegonavarro95/parkify/internal/config"
)

// StartExpirySweeper runs the pass-expiry sweep on a fixed interval until the
// context is cancelled. A failed run is logged; the next tick starts fresh,
// so the sweeper heals itself by being periodic and idempotent.
func StartExpirySweeper(ctx context.Context, cfg config.Config, sweeper *app.Sweeper) {
	if !cfg.SweepEnabled {
		return
	}
	interval := cfg.SweepInterval
	if interval <= 0 {
		interval = 30 * time.Minute
	}
	timeout := cfg.SweepTimeout
	if timeout <= 0 {
		timeout = time.Minute
	}

	ticker := time.NewTicker(interval)
	go func() {
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				tickCtx, cancel := context.WithTimeout(ctx, timeout)
				expired, alerts, err := sweeper.Run(tickCtx)
				cancel()
				if err != nil {
					log.Printf("expiry sweep error: %v", err)
					continue
				}
				if expired > 0 || alerts > 0 {
					log.Printf("expiry sweep: %d passes expired, %d alerts raised", expired, alerts)
				}
			}
		}
	}()
}
