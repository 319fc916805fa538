// Package trace records structured run events for cardgen.
//
// Events are spans (begin/end pairs) and points, tagged with a scope:
//
//   - ScopeDriver: the whole run (pairing trees, writing output)
//   - ScopePass: pipeline stages (load, parse, diff, render, index)
//   - ScopeFile: per-file work inside a worker
//
// The level picks which scopes are emitted: phase shows driver and pass
// events, detail adds per-file events, debug emits everything.
//
// # Usage
//
//	cardgen --old a --new b --out cards --trace=- --trace-level=detail
//
// Tracers travel through the pipeline in a context:
//
//	ctx = trace.WithTracer(ctx, tracer)
//	ctx, span := trace.Start(ctx, trace.ScopePass, "diff")
//	defer span.End("")
package trace
