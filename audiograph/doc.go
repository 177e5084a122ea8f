// Package audiograph implements a plugin-interoperable audio processing
// graph: a directed acyclic graph of AudioNode instances that cooperatively
// transform interleaved float32 buffers. The graph schedules execution in
// topological order, sums fan-in edges, enforces acyclicity, and routes
// parameters to nodes by id.
//
// AudioGraph carries no internal lock; a caller sharing one graph between a
// control thread and a processing thread must add its own reader/writer
// coordination.
package audiograph
