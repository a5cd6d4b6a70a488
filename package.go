// Package settle provides deferred settlement primitives: an
// externally-settleable asynchronous result with observable state,
// optional timeout-driven auto-settlement, and an event handler
// surface, plus a serialization helper that forces successive
// asynchronous callbacks to run strictly in submission order.
//
// Key components:
//
//   - Deferred: The core abstraction, a placeholder for a value
//     supplied later via Resolve or Reject. A Deferred settles at
//     most once; an optional timer can settle it automatically, and
//     configurable handlers observe settlement events.
//
//   - Options: Per-Deferred configuration covering the timeout
//     duration, the event handlers, and extra handler arguments.
//
//   - Serial: A queue that runs submitted callbacks one at a time in
//     strict submission order, each waiting for the previous call to
//     settle before starting.
//
//   - Wrap: Produces a serialized, result-caching version of a
//     function, with an optional pre-flight hook and a predicate
//     that can permanently retire the wrapped function.
//
//   - Adapters and combinators: Resolve, From, Compose, After, All
//     and Race, for building Deferred values from plain values,
//     other awaitables, function pipelines and timers.
package settle
