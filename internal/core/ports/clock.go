package ports

import "time"

// Clock abstracts wall-clock time so services can be tested against a
// fixed instant.
type Clock interface {
	Now() time.Time
}

// SystemClock is the production Clock backed by time.Now.
type SystemClock struct{}

func (SystemClock) Now() time.Time { return time.Now() }
