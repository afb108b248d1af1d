// Package publish hands generated prompts to downstream consumers.
//
// Sinks receive every prompt the dashboard generates:
//   - FileSink atomically replaces a text file with the latest prompt
//   - StreamSink appends a JSON event to a Redis stream
//
// Sink failures never fail the user's request; callers log them.
package publish
