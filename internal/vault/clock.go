package vault

import "time"

// Clock supplies wall time for record creation.
// Injected so that tests can pin timestamps.
type Clock interface {
	Now() time.Time
}

// SystemClock is the production Clock backed by time.Now.
type SystemClock struct{}

// Now returns the current wall time, truncated to millisecond
// precision to match the persisted representation.
func (SystemClock) Now() time.Time {
	return time.Now().Truncate(time.Millisecond)
}
