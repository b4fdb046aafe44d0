package artifact

import (
	"context"
	"time"
)

var (
	timeNow = time.Now
	sleep   = ctxSleep
)

func ctxSleep(ctx context.Context, d time.Duration) error {
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-t.C:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

func SetTimeNowFn(f func() time.Time) {
	timeNow = f
}

func SetSleepFn(f func(ctx context.Context, d time.Duration) error) {
	sleep = f
}

func RestoreClock() {
	timeNow = time.Now
	sleep = ctxSleep
}
