package clock

import "time"

// Clock supplies session timestamps. SystemClock reads the wall clock in UTC;
// ManualScheduler also satisfies Clock with its virtual time.
type Clock interface {
	Now() time.Time
}

type SystemClock struct{}

func (SystemClock) Now() time.Time {
	return time.Now().UTC()
}
