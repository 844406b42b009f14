package kitchen3d

import (
	"context"
	"time"
)

// DefaultFrameInterval is the 60 Hz animation rate.
const DefaultFrameInterval = time.Second / 60

// RunLoop ticks the scene every interval until ctx is cancelled. onFrame,
// if set, is called after each tick with the number of running animations.
// It returns ctx.Err().
func RunLoop(ctx context.Context, scene *Scene, clock Clock, interval time.Duration, onFrame func(running int)) error {
	if interval <= 0 {
		interval = DefaultFrameInterval
	}
	if clock == nil {
		clock = scene.Clock()
	}

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
			running := scene.Tick(clock.Now())
			if onFrame != nil {
				onFrame(running)
			}
		}
	}
}
