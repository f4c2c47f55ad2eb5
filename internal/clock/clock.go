package clock

import "time"

type Clock interface {
	Now() time.Time
}

// SystemClock is the production Clock. Tests substitute a fixed clock.
type SystemClock struct{}

func (SystemClock) Now() time.Time {
	return time.Now().UTC()
}
