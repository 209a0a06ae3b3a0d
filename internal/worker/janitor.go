package worker

import (
	"context"
	"time"

	"go.uber.org/zap"
)

// Sweep reclaims expired state and reports how many items it removed.
type Sweep struct {
	Name string
	Run  func(ctx context.Context) int
}

// RunJanitor runs every sweep once per interval until ctx is cancelled.
func RunJanitor(ctx context.Context, interval time.Duration, logger *zap.Logger, sweeps ...Sweep) {
	if logger == nil {
		logger = zap.NewNop()
	}
	if interval <= 0 {
		interval = time.Minute
	}
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			for _, sweep := range sweeps {
				if removed := sweep.Run(ctx); removed > 0 {
					logger.Debug("janitor sweep", zap.String("sweep", sweep.Name), zap.Int("removed", removed))
				}
			}
		}
	}
}
