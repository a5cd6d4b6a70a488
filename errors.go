package settle

import (
	"fmt"
	"time"
)

// UsageError reports misuse of the package API, such as passing a nil
// callback where one is required. Construction-time validation fails
// fast by panicking with a *UsageError.
type UsageError struct {
	msg string
}

// Error returns the usage error message.
func (e *UsageError) Error() string { return e.msg }

// TimeoutError is the rejection reason used when a Deferred's timer
// fires and no handler settles it. After holds the configured
// duration.
type TimeoutError struct {
	After time.Duration
}

// Error returns the timeout message embedding the configured
// duration in milliseconds.
func (e *TimeoutError) Error() string {
	return fmt.Sprintf("Promise timed out after %d ms", e.After.Milliseconds())
}
