package kitchen3d

import "time"

// Clock supplies wall-clock time to the animation state machine.
type Clock interface {
	Now() time.Time
}

// SystemClock reads time.Now.
type SystemClock struct{}

func (SystemClock) Now() time.Time {
	return time.Now()
}
