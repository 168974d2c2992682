package clock

import "time"

// Clock supplies the current time. It is injected into services so that
// window and deadline checks are testable.
type Clock interface {
	Now() time.Time
}

type systemClock struct{}

func NewSystemClock() Clock {
	return systemClock{}
}

func (systemClock) Now() time.Time {
	return time.Now()
}
