package crawler

import (
	"context"
	"time"
)

// pauseController abstracts the politeness pause between page writes so
// tests can run without real sleeps.
type pauseController interface {
	Pause(ctx context.Context, delay time.Duration)
}

type timerPauseController struct{}

func (p *timerPauseController) Pause(ctx context.Context, delay time.Duration) {
	if delay <= 0 {
		return
	}
	timer := time.NewTimer(delay)
	defer timer.Stop()
	select {
	case <-ctx.Done():
	case <-timer.C:
	}
}
