// Package trace provides a tracing subsystem for docnorm.
//
// The trace package tracks driver runs, pipeline passes and per-file
// processing to help diagnose slow or stuck runs on large trees.
//
// # Usage
//
// Enable tracing via command-line flags:
//
//	docnorm fmt --trace=- --trace-level=detail src/
//
// # Architecture
//
//   - Nop: zero-overhead no-op tracer when disabled
//   - StreamTracer: immediate write to output (file/stderr)
//   - RingTracer: circular buffer, dumped when a run fails
//   - MultiTracer: combines multiple tracers
//
// # Levels
//
//   - LevelOff: no tracing
//   - LevelError: only the ring dump on failure
//   - LevelPhase: driver and pass boundaries
//   - LevelDetail: per-file events
//   - LevelDebug: everything including single docstrings
//
// # Context Propagation
//
//	ctx = trace.WithTracer(ctx, tracer)
//	t := trace.FromContext(ctx)
//
//	span := trace.Begin(t, trace.ScopePass, "collect", trace.ParentID(ctx))
//	files := collect()
//	span.Count(trace.CountFiles, len(files)).End("")
//
// fmt workers open one span per file with BeginFile and report to the
// Inflight registry, which heartbeats use to name the slowest file.
package trace
