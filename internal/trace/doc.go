// Package trace records what the compositor did to each document and block.
//
// # Usage
//
//	codenote render --trace=- --trace-level=detail docs/
//
// # Tracers
//
//   - Nop: zero-overhead tracer when disabled
//   - StreamTracer: immediate write to a file or stderr
//   - RingTracer: last N events in memory, dumped when a document fails
//   - MultiTracer: stream and ring together
//
// # Levels and scopes
//
// LevelPhase emits ScopeDocument and ScopeBlock spans, LevelDetail adds the
// pipeline stages of every block (ScopeStage), LevelDebug adds single fact
// decisions (ScopeFact): hovers dropped under a diagnostic, hovers demoted to
// static, completions pulled left. LevelError only fills the ring buffer.
//
// # Context propagation
//
//	ctx = trace.WithTracer(ctx, tracer)
//	ctx, span := trace.Start(ctx, trace.ScopeBlock, "block:ts")
//	defer span.End("")
//
// Start records the new span as the parent for everything begun under the
// returned context. Heartbeats report how many spans are still open.
package trace
