package settle

import (
	"context"
	"fmt"
	"runtime/trace"
)

const traceCategory = "settle"

// logf emits an execution-trace annotation for the package category.
// It is a no-op unless tracing is enabled (go test -trace, or
// runtime/trace.Start).
func logf(format string, args ...any) {
	if trace.IsEnabled() {
		trace.Log(context.Background(), traceCategory, fmt.Sprintf(format, args...))
	}
}
