package audio

import (
	"context"
	"time"
)

// Unavailable stands in for a capture source that failed to start. Every
// Record fails with Err, so each listening cycle yields no command while
// typed commands keep working.
type Unavailable struct {
	Err error
}

func (u Unavailable) Record(context.Context, time.Duration, time.Duration) ([]float32, error) {
	return nil, u.Err
}
